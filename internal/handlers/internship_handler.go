package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairo_backend/internal/middleware"
	"kairo_backend/internal/services"
	"kairo_backend/internal/services/dto"
)

type InternshipHandler struct {
	*BaseHandler
	internshipService  services.InternshipService
	applicationService services.ApplicationService
}

func NewInternshipHandler(base *BaseHandler, internshipService services.InternshipService, applicationService services.ApplicationService) *InternshipHandler {
	return &InternshipHandler{
		BaseHandler:        base,
		internshipService:  internshipService,
		applicationService: applicationService,
	}
}

// RegisterPublicRoutes mounts browse endpoints. They work without a
// session; with one, listings carry the has_applied flag.
func (h *InternshipHandler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	internships := rg.Group("/internships")
	{
		internships.GET("", h.Search)
		internships.GET("/:slug", h.GetBySlug)
	}
}

// RegisterApplicantRoutes mounts endpoints behind the session gate with
// the applicant role.
func (h *InternshipHandler) RegisterApplicantRoutes(rg *gin.RouterGroup) {
	rg.POST("/internships/:id/apply", h.Apply)
	rg.GET("/applications", h.MyApplications)
}

func (h *InternshipHandler) Search(c *gin.Context) {
	var query dto.SearchInternshipsQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}

	applicantID := h.applicantProfileID(c)
	resp, err := h.internshipService.Search(h.GetDB(c), &query, applicantID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *InternshipHandler) GetBySlug(c *gin.Context) {
	applicantID := h.applicantProfileID(c)
	internship, err := h.internshipService.GetBySlug(h.GetDB(c), c.Param("slug"), applicantID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, internship)
}

func (h *InternshipHandler) Apply(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	application, err := h.applicationService.Apply(h.GetDB(c), userID, c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, application)
}

func (h *InternshipHandler) MyApplications(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	applications, err := h.applicationService.ListByApplicant(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": applications})
}

// applicantProfileID passes the optional session user through for
// has_applied marking. Empty when anonymous.
func (h *InternshipHandler) applicantProfileID(c *gin.Context) string {
	return middleware.GetUserID(c)
}
