package repositories

import (
	"errors"
	"time"

	"kairo_backend/internal/models"

	"gorm.io/gorm"
)

var ErrVerificationTokenNotFound = errors.New("verification token not found")

type VerificationTokenRepository interface {
	Create(db *gorm.DB, token *models.VerificationToken) error
	FindByToken(db *gorm.DB, token string) (*models.VerificationToken, error)
	DeleteByToken(db *gorm.DB, token string) error
	DeleteByIdentifier(db *gorm.DB, identifier string) error
	CleanExpired(db *gorm.DB) error
}

type verificationTokenRepository struct{}

func NewVerificationTokenRepository() VerificationTokenRepository {
	return &verificationTokenRepository{}
}

func (r *verificationTokenRepository) Create(db *gorm.DB, token *models.VerificationToken) error {
	return db.Create(token).Error
}

func (r *verificationTokenRepository) FindByToken(db *gorm.DB, tokenString string) (*models.VerificationToken, error) {
	var token models.VerificationToken
	if err := db.Where("token = ?", tokenString).First(&token).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVerificationTokenNotFound
		}
		return nil, err
	}
	return &token, nil
}

func (r *verificationTokenRepository) DeleteByToken(db *gorm.DB, tokenString string) error {
	return db.Where("token = ?", tokenString).Delete(&models.VerificationToken{}).Error
}

func (r *verificationTokenRepository) DeleteByIdentifier(db *gorm.DB, identifier string) error {
	return db.Where("identifier = ?", identifier).Delete(&models.VerificationToken{}).Error
}

func (r *verificationTokenRepository) CleanExpired(db *gorm.DB) error {
	return db.Where("expires_at < ?", time.Now()).Delete(&models.VerificationToken{}).Error
}
