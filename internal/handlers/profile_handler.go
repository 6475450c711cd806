package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kairo_backend/internal/services"
	"kairo_backend/internal/services/dto"
)

type ProfileHandler struct {
	*BaseHandler
	profileService services.ProfileService
	statsService   services.StatsService
}

func NewProfileHandler(base *BaseHandler, profileService services.ProfileService, statsService services.StatsService) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    base,
		profileService: profileService,
		statsService:   statsService,
	}
}

// RegisterRoutes expects rg to already be behind the session gate.
func (h *ProfileHandler) RegisterRoutes(rg *gin.RouterGroup, requireApplicant gin.HandlerFunc) {
	profile := rg.Group("/profile")
	{
		profile.PUT("/name", h.UpdateName)

		applicant := profile.Group("")
		applicant.Use(requireApplicant)
		{
			applicant.GET("", h.GetApplicantProfile)
			applicant.PUT("/about", h.UpdateAbout)
			applicant.PUT("/contact", h.UpdateContact)

			applicant.POST("/skills", h.AddSkills)
			applicant.DELETE("/skills", h.RemoveSkill)

			applicant.POST("/experience", h.AddExperience)
			applicant.DELETE("/experience/:id", h.RemoveExperience)
			applicant.POST("/projects", h.AddProject)
			applicant.PUT("/projects/:id", h.UpdateProject)
			applicant.DELETE("/projects/:id", h.RemoveProject)
			applicant.POST("/education", h.AddEducation)
			applicant.DELETE("/education/:id", h.RemoveEducation)

			applicant.PUT("/links/:platform", h.UpdateLink)
			applicant.DELETE("/links/:platform", h.RemoveLink)
			applicant.GET("/coding-stats", h.CodingStats)
		}
	}
}

// RegisterPublicRoutes mounts read-only profile views; a session is optional.
func (h *ProfileHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.GET("/profiles/:id", h.PublicProfile)
}

func (h *ProfileHandler) PublicProfile(c *gin.Context) {
	profile, err := h.profileService.GetApplicantProfile(h.GetDB(c), c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetApplicantProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetApplicantProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) UpdateName(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateNameRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.profileService.UpdateName(h.GetDB(c), userID, req.Name); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"name": req.Name})
}

func (h *ProfileHandler) UpdateAbout(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateAboutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.profileService.UpdateAbout(h.GetDB(c), userID, req.About); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"about": req.About})
}

func (h *ProfileHandler) UpdateContact(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateContactRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.profileService.UpdateContact(h.GetDB(c), userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

func (h *ProfileHandler) AddSkills(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.AddSkillsRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	skills, err := h.profileService.AddSkills(h.GetDB(c), userID, req.Skills)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *ProfileHandler) RemoveSkill(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RemoveSkillRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	skills, err := h.profileService.RemoveSkill(h.GetDB(c), userID, req.Skill)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *ProfileHandler) AddExperience(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ExperienceRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	entry, err := h.profileService.AddExperience(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ProfileHandler) RemoveExperience(c *gin.Context) {
	h.removeEntry(c, h.profileService.RemoveExperience)
}

func (h *ProfileHandler) AddProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	entry, err := h.profileService.AddProject(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ProfileHandler) UpdateProject(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ProjectRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	entry, err := h.profileService.UpdateProject(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

func (h *ProfileHandler) RemoveProject(c *gin.Context) {
	h.removeEntry(c, h.profileService.RemoveProject)
}

func (h *ProfileHandler) AddEducation(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EducationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	entry, err := h.profileService.AddEducation(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *ProfileHandler) RemoveEducation(c *gin.Context) {
	h.removeEntry(c, h.profileService.RemoveEducation)
}

func (h *ProfileHandler) removeEntry(c *gin.Context, remove func(db *gorm.DB, userID, entryID string) error) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := remove(h.GetDB(c), userID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) UpdateLink(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateLinkRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.profileService.UpdateLink(h.GetDB(c), userID, c.Param("platform"), req.URL); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"platform": c.Param("platform"), "url": req.URL})
}

func (h *ProfileHandler) RemoveLink(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.UpdateLink(h.GetDB(c), userID, c.Param("platform"), ""); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProfileHandler) CodingStats(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	stats, err := h.statsService.CodingStats(c.Request.Context(), h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
