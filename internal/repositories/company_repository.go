package repositories

import (
	"errors"

	"kairo_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCompanyNotFound     = errors.New("company not found")
	ErrCompanyAuthNotFound = errors.New("company credentials not found")
	ErrLoginIDTaken        = errors.New("login id already taken")
)

type CompanyRepository interface {
	Create(db *gorm.DB, company *models.Company) error
	FindByID(db *gorm.DB, id string) (*models.Company, error)
	Update(db *gorm.DB, company *models.Company) error

	CreateAuth(db *gorm.DB, auth *models.CompanyAuth) error
	FindAuthByLoginID(db *gorm.DB, loginID string) (*models.CompanyAuth, error)
	LoginIDExists(db *gorm.DB, loginID string) (bool, error)
}

type companyRepository struct{}

func NewCompanyRepository() CompanyRepository {
	return &companyRepository{}
}

func (r *companyRepository) Create(db *gorm.DB, company *models.Company) error {
	return db.Create(company).Error
}

func (r *companyRepository) FindByID(db *gorm.DB, id string) (*models.Company, error) {
	var company models.Company
	if err := db.First(&company, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Update(db *gorm.DB, company *models.Company) error {
	result := db.Save(company)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCompanyNotFound
	}
	return nil
}

func (r *companyRepository) CreateAuth(db *gorm.DB, auth *models.CompanyAuth) error {
	return db.Create(auth).Error
}

func (r *companyRepository) FindAuthByLoginID(db *gorm.DB, loginID string) (*models.CompanyAuth, error) {
	var auth models.CompanyAuth
	if err := db.Preload("Company").Where("login_id = ?", loginID).First(&auth).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCompanyAuthNotFound
		}
		return nil, err
	}
	return &auth, nil
}

func (r *companyRepository) LoginIDExists(db *gorm.DB, loginID string) (bool, error) {
	var count int64
	err := db.Model(&models.CompanyAuth{}).Where("login_id = ?", loginID).Count(&count).Error
	return count > 0, err
}
