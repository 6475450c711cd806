package services

import (
	"database/sql"
	"time"

	"kairo_backend/internal/auth"
	"kairo_backend/internal/config"
	"kairo_backend/internal/email"
	"kairo_backend/internal/integrations"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/storage"
)

// ServiceContainer wires every service the handlers need.
type ServiceContainer struct {
	AuthService        AuthService
	ProfileService     ProfileService
	InternshipService  InternshipService
	ApplicationService ApplicationService
	CompanyService     CompanyService
	AnalyticsService   AnalyticsService
	UploadService      UploadService
	StatsService       StatsService
	EmailProvider      email.Provider

	// shared with the middleware guarding company console routes
	CompanyTokens *auth.CompanyTokenManager

	// shared with the session gate
	SessionResolver SessionResolver
}

// NewServiceContainer builds the full dependency graph. sqlDB is the raw
// connection backing the gorm handle, used by the analytics queries.
func NewServiceContainer(cfg *config.Config, sqlDB *sql.DB, store storage.Storage, emailProvider email.Provider) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	sessionRepo := repositories.NewSessionRepository()
	verifyRepo := repositories.NewVerificationTokenRepository()
	profileRepo := repositories.NewProfileRepository()
	companyRepo := repositories.NewCompanyRepository()
	internshipRepo := repositories.NewInternshipRepository()
	applicationRepo := repositories.NewApplicationRepository()
	analyticsRepo := repositories.NewAnalyticsRepository(sqlDB)

	tokenManager := auth.NewCompanyTokenManager(cfg.CompanyJWT.Secret, time.Duration(cfg.CompanyJWT.TTLHours)*time.Hour)

	leetcode := integrations.NewLeetCodeClient(cfg.Integrations.LeetCodeBaseURL)
	codeforces := integrations.NewCodeforcesClient(cfg.Integrations.CodeforcesBaseURL)
	github := integrations.NewGitHubClient(cfg.Integrations.GitHubBaseURL, cfg.Integrations.GitHubToken)

	return &ServiceContainer{
		AuthService:        NewAuthService(userRepo, sessionRepo, verifyRepo, profileRepo, emailProvider, cfg),
		ProfileService:     NewProfileService(profileRepo, userRepo),
		InternshipService:  NewInternshipService(internshipRepo, applicationRepo, profileRepo),
		ApplicationService: NewApplicationService(applicationRepo, internshipRepo, profileRepo, userRepo, emailProvider),
		CompanyService:     NewCompanyService(companyRepo, profileRepo, userRepo, tokenManager, emailProvider),
		AnalyticsService:   NewAnalyticsService(analyticsRepo, profileRepo),
		UploadService:      NewUploadService(store, profileRepo, userRepo),
		StatsService:       NewStatsService(profileRepo, leetcode, codeforces, github),
		EmailProvider:      emailProvider,
		CompanyTokens:      tokenManager,
		SessionResolver:    NewSessionResolver(sessionRepo, userRepo),
	}
}
