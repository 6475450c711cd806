package dto

import (
	"time"

	"kairo_backend/internal/models"
)

type CreateInternshipRequest struct {
	Title          string                `json:"title" binding:"required,min=3,max=150"`
	Description    string                `json:"description" binding:"required,max=10000"`
	Category       string                `json:"category" binding:"max=60"`
	Type           models.InternshipType `json:"type" binding:"required,oneof=full_time part_time"`
	Mode           models.InternshipMode `json:"mode" binding:"required,oneof=remote onsite hybrid"`
	Location       string                `json:"location" binding:"max=100"`
	Duration       string                `json:"duration" binding:"max=60"`
	Stipend        *int                  `json:"stipend" binding:"omitempty,min=0"`
	StipendType    models.StipendType    `json:"stipend_type" binding:"omitempty,oneof=paid unpaid performance_based"`
	Openings       int                   `json:"openings" binding:"omitempty,min=1,max=1000"`
	SkillsRequired []string              `json:"skills_required" binding:"omitempty,dive,max=50"`
	Perks          []string              `json:"perks" binding:"omitempty,dive,max=100"`
	Requirements   string                `json:"requirements" binding:"max=5000"`
	ApplyBy        *time.Time            `json:"apply_by"`
}

type UpdateInternshipRequest struct {
	Title          string                `json:"title" binding:"omitempty,min=3,max=150"`
	Description    string                `json:"description" binding:"omitempty,max=10000"`
	Category       string                `json:"category" binding:"max=60"`
	Type           models.InternshipType `json:"type" binding:"omitempty,oneof=full_time part_time"`
	Mode           models.InternshipMode `json:"mode" binding:"omitempty,oneof=remote onsite hybrid"`
	Location       string                `json:"location" binding:"max=100"`
	Duration       string                `json:"duration" binding:"max=60"`
	Stipend        *int                  `json:"stipend" binding:"omitempty,min=0"`
	StipendType    models.StipendType    `json:"stipend_type" binding:"omitempty,oneof=paid unpaid performance_based"`
	Openings       *int                  `json:"openings" binding:"omitempty,min=1,max=1000"`
	SkillsRequired []string              `json:"skills_required" binding:"omitempty,dive,max=50"`
	Perks          []string              `json:"perks" binding:"omitempty,dive,max=100"`
	Requirements   string                `json:"requirements" binding:"max=5000"`
	ApplyBy        *time.Time            `json:"apply_by"`
	IsActive       *bool                 `json:"is_active"`
}

type SearchInternshipsQuery struct {
	Search     string `form:"search"`
	Type       string `form:"type" binding:"omitempty,oneof=full_time part_time"`
	Mode       string `form:"mode" binding:"omitempty,oneof=remote onsite hybrid"`
	Location   string `form:"location"`
	Category   string `form:"category"`
	MinStipend *int   `form:"min_stipend" binding:"omitempty,min=0"`
	MaxStipend *int   `form:"max_stipend" binding:"omitempty,min=0"`
	// comma-separated; a posting matches when it requires any listed skill
	Skills   string `form:"skills"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

type InternshipDTO struct {
	ID                string                `json:"id"`
	Title             string                `json:"title"`
	Slug              string                `json:"slug"`
	Description       string                `json:"description"`
	Category          string                `json:"category,omitempty"`
	Type              models.InternshipType `json:"type"`
	Mode              models.InternshipMode `json:"mode"`
	Location          string                `json:"location,omitempty"`
	Duration          string                `json:"duration,omitempty"`
	Stipend           *int                  `json:"stipend,omitempty"`
	StipendType       models.StipendType    `json:"stipend_type,omitempty"`
	Openings          int                   `json:"openings,omitempty"`
	SkillsRequired    []string              `json:"skills_required"`
	Perks             []string              `json:"perks,omitempty"`
	Requirements      string                `json:"requirements,omitempty"`
	ApplyBy           *time.Time            `json:"apply_by,omitempty"`
	IsActive          bool                  `json:"is_active"`
	ApplicationsCount int                   `json:"applications_count"`
	Company           *CompanyDTO           `json:"company,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`

	// set only on listings returned to an authenticated applicant
	HasApplied bool `json:"has_applied,omitempty"`
}

func NewInternshipDTO(internship *models.Internship) *InternshipDTO {
	d := &InternshipDTO{
		ID:                internship.ID,
		Title:             internship.Title,
		Slug:              internship.Slug,
		Description:       internship.Description,
		Category:          internship.Category,
		Type:              internship.Type,
		Mode:              internship.Mode,
		Location:          internship.Location,
		Duration:          internship.Duration,
		Stipend:           internship.Stipend,
		StipendType:       internship.StipendType,
		Openings:          internship.Openings,
		SkillsRequired:    internship.GetSkillsRequired(),
		Perks:             internship.GetPerks(),
		Requirements:      internship.Requirements,
		ApplyBy:           internship.ApplyBy,
		IsActive:          internship.IsActive,
		ApplicationsCount: internship.ApplicationsCount,
		CreatedAt:         internship.CreatedAt,
	}
	if internship.Company != nil {
		d.Company = NewCompanyDTO(internship.Company)
	}
	return d
}

type InternshipListResponse struct {
	Internships []InternshipDTO `json:"internships"`
	Total       int64           `json:"total"`
	Page        int             `json:"page"`
	PageSize    int             `json:"page_size"`
}
