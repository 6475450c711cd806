package repositories

import (
	"encoding/json"
	"errors"
	"time"

	"kairo_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrInternshipNotFound = errors.New("internship not found")
	ErrSlugTaken          = errors.New("internship slug already taken")
)

type InternshipFilter struct {
	Search     string
	Type       models.InternshipType
	Mode       models.InternshipMode
	Location   string
	Category   string
	MinStipend *int
	MaxStipend *int
	// Skills matches postings whose skills_required overlaps any entry.
	Skills   []string
	Page     int
	PageSize int
}

type InternshipRepository interface {
	Create(db *gorm.DB, internship *models.Internship) error
	FindByID(db *gorm.DB, id string) (*models.Internship, error)
	FindBySlug(db *gorm.DB, slug string) (*models.Internship, error)
	SlugExists(db *gorm.DB, slug string) (bool, error)
	Update(db *gorm.DB, internship *models.Internship) error
	SetActive(db *gorm.DB, id string, active bool) error
	Search(db *gorm.DB, filter InternshipFilter) ([]models.Internship, int64, error)
	FindByRecruiterID(db *gorm.DB, recruiterID string) ([]models.Internship, error)
	IncrementApplications(db *gorm.DB, id string) error
}

type internshipRepository struct{}

func NewInternshipRepository() InternshipRepository {
	return &internshipRepository{}
}

func (r *internshipRepository) Create(db *gorm.DB, internship *models.Internship) error {
	return db.Create(internship).Error
}

func (r *internshipRepository) FindByID(db *gorm.DB, id string) (*models.Internship, error) {
	var internship models.Internship
	if err := db.Preload("Company").First(&internship, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	return &internship, nil
}

func (r *internshipRepository) FindBySlug(db *gorm.DB, slug string) (*models.Internship, error) {
	var internship models.Internship
	if err := db.Preload("Company").Where("slug = ?", slug).First(&internship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInternshipNotFound
		}
		return nil, err
	}
	return &internship, nil
}

func (r *internshipRepository) SlugExists(db *gorm.DB, slug string) (bool, error) {
	var count int64
	err := db.Model(&models.Internship{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *internshipRepository) Update(db *gorm.DB, internship *models.Internship) error {
	result := db.Save(internship)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInternshipNotFound
	}
	return nil
}

func (r *internshipRepository) SetActive(db *gorm.DB, id string, active bool) error {
	result := db.Model(&models.Internship{}).Where("id = ?", id).Updates(map[string]interface{}{
		"is_active":  active,
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrInternshipNotFound
	}
	return nil
}

func (r *internshipRepository) Search(db *gorm.DB, filter InternshipFilter) ([]models.Internship, int64, error) {
	query := db.Model(&models.Internship{}).Where("is_active = ?", true)

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Mode != "" {
		query = query.Where("mode = ?", filter.Mode)
	}
	if filter.Location != "" {
		query = query.Where("location ILIKE ?", "%"+filter.Location+"%")
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.MinStipend != nil {
		query = query.Where("stipend >= ?", *filter.MinStipend)
	}
	if filter.MaxStipend != nil {
		query = query.Where("stipend <= ?", *filter.MaxStipend)
	}
	if len(filter.Skills) > 0 {
		// jsonb containment per skill, OR'd: any listed skill matches
		overlap := db.Session(&gorm.Session{NewDB: true})
		for i, skill := range filter.Skills {
			needle, _ := json.Marshal([]string{skill})
			if i == 0 {
				overlap = overlap.Where("skills_required @> ?", string(needle))
			} else {
				overlap = overlap.Or("skills_required @> ?", string(needle))
			}
		}
		query = query.Where(overlap)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	var internships []models.Internship
	err := query.Preload("Company").
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&internships).Error
	return internships, total, err
}

func (r *internshipRepository) FindByRecruiterID(db *gorm.DB, recruiterID string) ([]models.Internship, error) {
	var internships []models.Internship
	err := db.Where("recruiter_id = ?", recruiterID).Order("created_at DESC").Find(&internships).Error
	return internships, err
}

func (r *internshipRepository) IncrementApplications(db *gorm.DB, id string) error {
	return db.Model(&models.Internship{}).Where("id = ?", id).
		UpdateColumn("applications_count", gorm.Expr("applications_count + 1")).Error
}
