package repositories

import (
	"errors"

	"kairo_backend/internal/models"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this internship")
)

type ApplicationRepository interface {
	Create(db *gorm.DB, application *models.InternshipApplication) error
	FindByID(db *gorm.DB, id string) (*models.InternshipApplication, error)
	FindByPair(db *gorm.DB, internshipID, applicantID string) (*models.InternshipApplication, error)
	FindByApplicantID(db *gorm.DB, applicantID string) ([]models.InternshipApplication, error)
	FindByInternshipID(db *gorm.DB, internshipID string) ([]models.InternshipApplication, error)
	FindRecentByRecruiterID(db *gorm.DB, recruiterID string, limit int) ([]models.InternshipApplication, error)
	FindInterviewsByRecruiterID(db *gorm.DB, recruiterID string) ([]models.InternshipApplication, error)
	Update(db *gorm.DB, application *models.InternshipApplication) error
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, application *models.InternshipApplication) error {
	var existing models.InternshipApplication
	err := db.Where("internship_id = ? AND applicant_id = ?",
		application.InternshipID, application.ApplicantID).First(&existing).Error
	if err == nil {
		return ErrDuplicateApplication
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := db.Create(application).Error; err != nil {
		// a concurrent apply can slip past the pre-check and hit the
		// unique (internship_id, applicant_id) index instead
		if isUniqueViolation(err) {
			return ErrDuplicateApplication
		}
		return err
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (r *applicationRepository) FindByID(db *gorm.DB, id string) (*models.InternshipApplication, error) {
	var application models.InternshipApplication
	if err := db.Preload("Internship").Preload("Applicant").First(&application, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByPair(db *gorm.DB, internshipID, applicantID string) (*models.InternshipApplication, error) {
	var application models.InternshipApplication
	err := db.Where("internship_id = ? AND applicant_id = ?", internshipID, applicantID).
		First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) FindByApplicantID(db *gorm.DB, applicantID string) ([]models.InternshipApplication, error) {
	var applications []models.InternshipApplication
	err := db.Preload("Internship").Preload("Internship.Company").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) FindByInternshipID(db *gorm.DB, internshipID string) ([]models.InternshipApplication, error) {
	var applications []models.InternshipApplication
	err := db.Preload("Applicant").
		Where("internship_id = ?", internshipID).
		Order("created_at DESC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) FindRecentByRecruiterID(db *gorm.DB, recruiterID string, limit int) ([]models.InternshipApplication, error) {
	if limit < 1 {
		limit = 10
	}
	var applications []models.InternshipApplication
	err := db.Preload("Applicant").Preload("Internship").
		Joins("JOIN internships ON internships.id = internship_applications.internship_id").
		Where("internships.recruiter_id = ?", recruiterID).
		Order("internship_applications.created_at DESC").
		Limit(limit).
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) FindInterviewsByRecruiterID(db *gorm.DB, recruiterID string) ([]models.InternshipApplication, error) {
	var applications []models.InternshipApplication
	err := db.Preload("Applicant").Preload("Internship").
		Joins("JOIN internships ON internships.id = internship_applications.internship_id").
		Where("internships.recruiter_id = ? AND internship_applications.select_interview = ?", recruiterID, true).
		Order("internship_applications.interview_date ASC").
		Find(&applications).Error
	return applications, err
}

func (r *applicationRepository) Update(db *gorm.DB, application *models.InternshipApplication) error {
	result := db.Save(application)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
