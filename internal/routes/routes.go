package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kairo_backend/internal/config"
	"kairo_backend/internal/handlers"
	"kairo_backend/internal/middleware"
	"kairo_backend/internal/models"
	"kairo_backend/internal/services"
)

// RegisterRoutes mounts the full HTTP API under /api/v1.
func RegisterRoutes(
	ginRouter *gin.Engine,
	cfg *config.Config,
	appHandlers *handlers.AppHandlers,
	resolver services.SessionResolver,
) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")

	cookieName := cfg.Session.CookieName
	sessionGate := middleware.SessionGate(resolver, cookieName)
	optionalSession := middleware.OptionalSession(resolver, cookieName)
	requireApplicant := middleware.RequireRole(models.UserRoleApplicant)
	requireRecruiter := middleware.RequireRole(models.UserRoleRecruiter)

	// no session required
	appHandlers.AuthHandler.RegisterRoutes(api)
	appHandlers.CompanyHandler.RegisterRoutes(api)
	appHandlers.UploadHandler.RegisterFileRoutes(api)

	// public browse; a session only enriches the response
	public := api.Group("")
	public.Use(optionalSession)
	appHandlers.InternshipHandler.RegisterPublicRoutes(public)
	appHandlers.ProfileHandler.RegisterPublicRoutes(public)

	// session required
	authed := api.Group("")
	authed.Use(sessionGate)
	{
		appHandlers.ProfileHandler.RegisterRoutes(authed, requireApplicant)
		appHandlers.UploadHandler.RegisterRoutes(authed, requireApplicant)

		applicant := authed.Group("")
		applicant.Use(requireApplicant)
		appHandlers.InternshipHandler.RegisterApplicantRoutes(applicant)

		recruiter := authed.Group("")
		recruiter.Use(requireRecruiter)
		appHandlers.RecruiterHandler.RegisterRoutes(recruiter)
		appHandlers.AnalyticsHandler.RegisterRoutes(recruiter)
	}
}
