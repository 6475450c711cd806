package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairo_backend/internal/services"
	"kairo_backend/internal/services/dto"
)

// RecruiterHandler serves the recruiter console: posting management,
// application review and interview scheduling.
type RecruiterHandler struct {
	*BaseHandler
	internshipService  services.InternshipService
	applicationService services.ApplicationService
	companyService     services.CompanyService
	profileService     services.ProfileService
}

func NewRecruiterHandler(
	base *BaseHandler,
	internshipService services.InternshipService,
	applicationService services.ApplicationService,
	companyService services.CompanyService,
	profileService services.ProfileService,
) *RecruiterHandler {
	return &RecruiterHandler{
		BaseHandler:        base,
		internshipService:  internshipService,
		applicationService: applicationService,
		companyService:     companyService,
		profileService:     profileService,
	}
}

// RegisterRoutes expects rg to be behind the session gate plus the
// recruiter role check.
func (h *RecruiterHandler) RegisterRoutes(rg *gin.RouterGroup) {
	recruiter := rg.Group("/recruiter")
	{
		recruiter.GET("/profile", h.Profile)
		recruiter.GET("/company", h.Company)

		recruiter.GET("/internships", h.ListInternships)
		recruiter.POST("/internships", h.CreateInternship)
		recruiter.PUT("/internships/:id", h.UpdateInternship)
		recruiter.GET("/internships/:id/applications", h.ListApplications)

		recruiter.PUT("/applications/:id/status", h.UpdateApplicationStatus)
		recruiter.GET("/applications/recent", h.RecentApplications)
		recruiter.GET("/interviews", h.Interviews)
	}
}

func (h *RecruiterHandler) Profile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetRecruiterProfile(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *RecruiterHandler) Company(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	company, err := h.companyService.GetForRecruiter(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *RecruiterHandler) ListInternships(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	internships, err := h.internshipService.ListByRecruiter(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"internships": internships})
}

func (h *RecruiterHandler) CreateInternship(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateInternshipRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	internship, err := h.internshipService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, internship)
}

func (h *RecruiterHandler) UpdateInternship(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateInternshipRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	internship, err := h.internshipService.Update(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, internship)
}

func (h *RecruiterHandler) ListApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListByInternship(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *RecruiterHandler) UpdateApplicationStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	application, err := h.applicationService.UpdateStatus(h.GetDB(c), userID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, application)
}

func (h *RecruiterHandler) RecentApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	limit := ParseQueryInt(c, "limit", 10)
	applications, err := h.applicationService.ListRecent(h.GetDB(c), userID, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

func (h *RecruiterHandler) Interviews(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	interviews, err := h.applicationService.ListInterviews(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"interviews": interviews})
}
