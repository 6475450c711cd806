package handlers

import (
	"kairo_backend/internal/config"
	"kairo_backend/internal/services"
	"kairo_backend/internal/validator"
)

// AppHandlers holds every handler the router mounts.
type AppHandlers struct {
	AuthHandler       *AuthHandler
	ProfileHandler    *ProfileHandler
	InternshipHandler *InternshipHandler
	RecruiterHandler  *RecruiterHandler
	AnalyticsHandler  *AnalyticsHandler
	CompanyHandler    *CompanyHandler
	UploadHandler     *UploadHandler
}

func NewAppHandlers(cfg *config.Config, container *services.ServiceContainer) *AppHandlers {
	base := NewBaseHandler(validator.New())

	return &AppHandlers{
		AuthHandler:       NewAuthHandler(base, container.AuthService, container.SessionResolver, cfg.Session),
		ProfileHandler:    NewProfileHandler(base, container.ProfileService, container.StatsService),
		InternshipHandler: NewInternshipHandler(base, container.InternshipService, container.ApplicationService),
		RecruiterHandler:  NewRecruiterHandler(base, container.InternshipService, container.ApplicationService, container.CompanyService, container.ProfileService),
		AnalyticsHandler:  NewAnalyticsHandler(base, container.AnalyticsService),
		CompanyHandler:    NewCompanyHandler(base, container.CompanyService, container.CompanyTokens),
		UploadHandler:     NewUploadHandler(base, container.UploadService),
	}
}
