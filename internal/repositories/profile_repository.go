package repositories

import (
	"errors"
	"time"

	"kairo_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrProfileNotFound   = errors.New("profile not found")
	ErrRecruiterNotFound = errors.New("recruiter profile not found")
)

type ProfileRepository interface {
	CreateApplicant(db *gorm.DB, profile *models.ApplicantProfile) error
	FindApplicantByUserID(db *gorm.DB, userID string) (*models.ApplicantProfile, error)
	FindApplicantByID(db *gorm.DB, id string) (*models.ApplicantProfile, error)
	UpdateApplicant(db *gorm.DB, profile *models.ApplicantProfile) error
	UpdateApplicantFields(db *gorm.DB, userID string, fields map[string]interface{}) error

	// MutateApplicant locks the applicant row, applies fn and saves the
	// result in one transaction. Used for the jsonb array fields so two
	// concurrent writers cannot lose each other's entries.
	MutateApplicant(db *gorm.DB, userID string, fn func(p *models.ApplicantProfile) error) (*models.ApplicantProfile, error)

	CreateRecruiter(db *gorm.DB, profile *models.RecruiterProfile) error
	FindRecruiterByUserID(db *gorm.DB, userID string) (*models.RecruiterProfile, error)
	UpdateRecruiter(db *gorm.DB, profile *models.RecruiterProfile) error
	FindRecruitersByCompanyID(db *gorm.DB, companyID string) ([]models.RecruiterProfile, error)
	DetachRecruiter(db *gorm.DB, recruiterID string) error
}

type profileRepository struct{}

func NewProfileRepository() ProfileRepository {
	return &profileRepository{}
}

func (r *profileRepository) CreateApplicant(db *gorm.DB, profile *models.ApplicantProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindApplicantByUserID(db *gorm.DB, userID string) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) FindApplicantByID(db *gorm.DB, id string) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateApplicant(db *gorm.DB, profile *models.ApplicantProfile) error {
	result := db.Save(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) UpdateApplicantFields(db *gorm.DB, userID string, fields map[string]interface{}) error {
	fields["updated_at"] = time.Now()
	result := db.Model(&models.ApplicantProfile{}).Where("user_id = ?", userID).Updates(fields)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *profileRepository) MutateApplicant(db *gorm.DB, userID string, fn func(p *models.ApplicantProfile) error) (*models.ApplicantProfile, error) {
	var profile models.ApplicantProfile
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProfileNotFound
			}
			return err
		}
		if err := fn(&profile); err != nil {
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) CreateRecruiter(db *gorm.DB, profile *models.RecruiterProfile) error {
	return db.Create(profile).Error
}

func (r *profileRepository) FindRecruiterByUserID(db *gorm.DB, userID string) (*models.RecruiterProfile, error) {
	var profile models.RecruiterProfile
	if err := db.Preload("Company").Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecruiterNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepository) UpdateRecruiter(db *gorm.DB, profile *models.RecruiterProfile) error {
	result := db.Save(profile)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecruiterNotFound
	}
	return nil
}

func (r *profileRepository) FindRecruitersByCompanyID(db *gorm.DB, companyID string) ([]models.RecruiterProfile, error) {
	var profiles []models.RecruiterProfile
	err := db.Preload("User").Where("company_id = ?", companyID).Find(&profiles).Error
	return profiles, err
}

func (r *profileRepository) DetachRecruiter(db *gorm.DB, recruiterID string) error {
	result := db.Model(&models.RecruiterProfile{}).Where("id = ?", recruiterID).Updates(map[string]interface{}{
		"company_id": nil,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecruiterNotFound
	}
	return nil
}
