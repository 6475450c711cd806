package app

import (
	"database/sql"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kairo_backend/database"
	"kairo_backend/internal/config"
	"kairo_backend/internal/email"
	"kairo_backend/internal/handlers"
	"kairo_backend/internal/logger"
	"kairo_backend/internal/middleware"
	"kairo_backend/internal/routes"
	"kairo_backend/internal/services"
	"kairo_backend/internal/storage"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	gormDB, err := database.ConnectGorm()
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(); err != nil {
		logger.Fatal("Migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB, sqlDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// SetupRouter builds the full engine: storage, email, services, handlers,
// middleware and routes. Tests call it with their own DB handles.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB, sqlDB *sql.DB) *gin.Engine {
	store, err := storage.NewStorage(cfg.Storage)
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}
	logger.Info("Storage initialized", "type", cfg.Storage.Type)

	emailProvider := newEmailProvider(cfg)

	container := services.NewServiceContainer(cfg, sqlDB, store, emailProvider)
	appHandlers := handlers.NewAppHandlers(cfg, container)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := gin.New()
	ginRouter.Use(gin.Recovery())
	ginRouter.Use(middleware.RequestIDMiddleware())
	ginRouter.Use(middleware.LoggingMiddleware())
	ginRouter.Use(middleware.CORSMiddleware())
	ginRouter.Use(middleware.DBMiddleware(gormDB))

	routes.RegisterRoutes(ginRouter, cfg, appHandlers, container.SessionResolver)

	return ginRouter
}

// newEmailProvider builds the SMTP sender, or a log-only fallback when no
// SMTP host is configured (local development).
func newEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("SMTP not configured, emails will only be logged")
		return NewLogEmailProvider()
	}

	provider := email.NewGomailProvider(cfg.Email, email.NewTemplateManager())
	if err := provider.Validate(); err != nil {
		logger.Fatal("Email provider misconfigured", "error", err)
	}
	return provider
}
