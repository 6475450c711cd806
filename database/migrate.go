package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kairo_backend/internal/config"
	"kairo_backend/internal/logger"
	"kairo_backend/internal/models"
)

var gormDB *gorm.DB

// ConnectGorm opens (or reuses) the GORM connection configured in config.yaml.
func ConnectGorm() (*gorm.DB, error) {
	if gormDB != nil {
		return gormDB, nil
	}

	cfg := config.GetConfig()
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	gormDB = db
	return db, nil
}

// AutoMigrate creates or updates the schema for every model.
func AutoMigrate() error {
	db, err := ConnectGorm()
	if err != nil {
		return err
	}

	// uuid PKs depend on the extension being present
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to ensure uuid-ossp extension: %w", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.VerificationToken{},
		&models.ApplicantProfile{},
		&models.RecruiterProfile{},
		&models.Company{},
		&models.CompanyAuth{},
		&models.Internship{},
		&models.InternshipApplication{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}

	logger.Info("AutoMigrate completed")
	return nil
}
