package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairo_backend/internal/auth"
	"kairo_backend/internal/middleware"
	"kairo_backend/internal/services"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

// CompanyHandler serves the company console. Registration and login are
// public; everything else requires the company bearer token.
type CompanyHandler struct {
	*BaseHandler
	companyService services.CompanyService
	tokens         *auth.CompanyTokenManager
}

func NewCompanyHandler(base *BaseHandler, companyService services.CompanyService, tokens *auth.CompanyTokenManager) *CompanyHandler {
	return &CompanyHandler{BaseHandler: base, companyService: companyService, tokens: tokens}
}

func (h *CompanyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	company := rg.Group("/company")
	{
		company.POST("/register", h.Register)
		company.POST("/login", h.Login)

		console := company.Group("")
		console.Use(middleware.CompanyGate(h.tokens))
		{
			console.GET("", h.Get)
			console.PUT("", h.Update)
			console.GET("/recruiters", h.ListRecruiters)
			console.POST("/recruiters", h.AttachRecruiter)
			console.DELETE("/recruiters/:id", h.DetachRecruiter)
		}
	}
}

func (h *CompanyHandler) Register(c *gin.Context) {
	var req dto.RegisterCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	// optional address to mail the generated login id to
	notifyEmail := c.Query("notify_email")

	resp, err := h.companyService.Register(h.GetDB(c), &req, notifyEmail)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *CompanyHandler) Login(c *gin.Context) {
	var req dto.CompanyLoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.companyService.Login(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CompanyHandler) Get(c *gin.Context) {
	companyID, ok := h.authorizeCompany(c)
	if !ok {
		return
	}

	company, err := h.companyService.Get(h.GetDB(c), companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) Update(c *gin.Context) {
	companyID, ok := h.authorizeCompany(c)
	if !ok {
		return
	}

	var req dto.UpdateCompanyRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	company, err := h.companyService.Update(h.GetDB(c), companyID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, company)
}

func (h *CompanyHandler) ListRecruiters(c *gin.Context) {
	companyID, ok := h.authorizeCompany(c)
	if !ok {
		return
	}

	recruiters, err := h.companyService.ListRecruiters(h.GetDB(c), companyID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recruiters": recruiters})
}

func (h *CompanyHandler) AttachRecruiter(c *gin.Context) {
	companyID, ok := h.authorizeCompany(c)
	if !ok {
		return
	}

	var req dto.AttachRecruiterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	recruiter, err := h.companyService.AttachRecruiter(h.GetDB(c), companyID, req.Email)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recruiter)
}

func (h *CompanyHandler) DetachRecruiter(c *gin.Context) {
	companyID, ok := h.authorizeCompany(c)
	if !ok {
		return
	}

	if err := h.companyService.DetachRecruiter(h.GetDB(c), companyID, c.Param("id")); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CompanyHandler) authorizeCompany(c *gin.Context) (string, bool) {
	companyID := middleware.GetCompanyID(c)
	if companyID == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Company not authenticated"))
		return "", false
	}
	return companyID, true
}
