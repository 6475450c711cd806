package services

import (
	"fmt"
	"regexp"
	"strings"

	"gorm.io/gorm"

	"kairo_backend/internal/models"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type InternshipService interface {
	// applicantUserID is optional; when present, results carry has_applied.
	Search(db *gorm.DB, query *dto.SearchInternshipsQuery, applicantUserID string) (*dto.InternshipListResponse, error)
	GetBySlug(db *gorm.DB, slug, applicantUserID string) (*dto.InternshipDTO, error)
	GetByID(db *gorm.DB, id string) (*dto.InternshipDTO, error)

	Create(db *gorm.DB, recruiterUserID string, req *dto.CreateInternshipRequest) (*dto.InternshipDTO, error)
	Update(db *gorm.DB, recruiterUserID, internshipID string, req *dto.UpdateInternshipRequest) (*dto.InternshipDTO, error)
	ListByRecruiter(db *gorm.DB, recruiterUserID string) ([]dto.InternshipDTO, error)
}

type InternshipServiceImpl struct {
	internshipRepo  repositories.InternshipRepository
	applicationRepo repositories.ApplicationRepository
	profileRepo     repositories.ProfileRepository
}

func NewInternshipService(
	internshipRepo repositories.InternshipRepository,
	applicationRepo repositories.ApplicationRepository,
	profileRepo repositories.ProfileRepository,
) InternshipService {
	return &InternshipServiceImpl{
		internshipRepo:  internshipRepo,
		applicationRepo: applicationRepo,
		profileRepo:     profileRepo,
	}
}

func (s *InternshipServiceImpl) Search(db *gorm.DB, query *dto.SearchInternshipsQuery, applicantUserID string) (*dto.InternshipListResponse, error) {
	filter := repositories.InternshipFilter{
		Search:     query.Search,
		Type:       models.InternshipType(query.Type),
		Mode:       models.InternshipMode(query.Mode),
		Location:   query.Location,
		Category:   query.Category,
		MinStipend: query.MinStipend,
		MaxStipend: query.MaxStipend,
		Skills:     splitSkills(query.Skills),
		Page:       query.Page,
		PageSize:   query.PageSize,
	}
	internships, total, err := s.internshipRepo.Search(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	applicantID := s.applicantProfileID(db, applicantUserID)
	resp := &dto.InternshipListResponse{
		Internships: make([]dto.InternshipDTO, 0, len(internships)),
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
	}
	for i := range internships {
		d := dto.NewInternshipDTO(&internships[i])
		if applicantID != "" {
			d.HasApplied = s.hasApplied(db, internships[i].ID, applicantID)
		}
		resp.Internships = append(resp.Internships, *d)
	}
	return resp, nil
}

// applicantProfileID maps a session user to their applicant profile id.
// Anonymous users and recruiters come back empty.
func (s *InternshipServiceImpl) applicantProfileID(db *gorm.DB, applicantUserID string) string {
	if applicantUserID == "" {
		return ""
	}
	profile, err := s.profileRepo.FindApplicantByUserID(db, applicantUserID)
	if err != nil {
		return ""
	}
	return profile.ID
}

func (s *InternshipServiceImpl) hasApplied(db *gorm.DB, internshipID, applicantID string) bool {
	_, err := s.applicationRepo.FindByPair(db, internshipID, applicantID)
	return err == nil
}

func (s *InternshipServiceImpl) GetBySlug(db *gorm.DB, slug, applicantUserID string) (*dto.InternshipDTO, error) {
	internship, err := s.internshipRepo.FindBySlug(db, slug)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInternshipNotFound) {
			return nil, apperrors.NewNotFoundError("internship", "Internship not found")
		}
		return nil, apperrors.InternalError(err)
	}
	d := dto.NewInternshipDTO(internship)
	if applicantID := s.applicantProfileID(db, applicantUserID); applicantID != "" {
		d.HasApplied = s.hasApplied(db, internship.ID, applicantID)
	}
	return d, nil
}

func (s *InternshipServiceImpl) GetByID(db *gorm.DB, id string) (*dto.InternshipDTO, error) {
	internship, err := s.internshipRepo.FindByID(db, id)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInternshipNotFound) {
			return nil, apperrors.NewNotFoundError("internship", "Internship not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewInternshipDTO(internship), nil
}

func (s *InternshipServiceImpl) Create(db *gorm.DB, recruiterUserID string, req *dto.CreateInternshipRequest) (*dto.InternshipDTO, error) {
	recruiter, err := s.recruiterWithCompany(db, recruiterUserID)
	if err != nil {
		return nil, err
	}

	slug, err := s.uniqueSlug(db, req.Title)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	internship := &models.Internship{
		Title:        req.Title,
		Slug:         slug,
		Description:  req.Description,
		Category:     req.Category,
		Type:         req.Type,
		Mode:         req.Mode,
		Location:     req.Location,
		Duration:     req.Duration,
		Stipend:      req.Stipend,
		StipendType:  req.StipendType,
		Openings:     req.Openings,
		Requirements: req.Requirements,
		ApplyBy:      req.ApplyBy,
		IsActive:     true,
		CompanyID:    *recruiter.CompanyID,
		RecruiterID:  recruiter.ID,
	}
	internship.SetSkillsRequired(req.SkillsRequired)
	internship.SetPerks(req.Perks)

	if err := s.internshipRepo.Create(db, internship); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewInternshipDTO(internship), nil
}

func (s *InternshipServiceImpl) Update(db *gorm.DB, recruiterUserID, internshipID string, req *dto.UpdateInternshipRequest) (*dto.InternshipDTO, error) {
	recruiter, err := s.recruiterWithCompany(db, recruiterUserID)
	if err != nil {
		return nil, err
	}

	internship, err := s.internshipRepo.FindByID(db, internshipID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInternshipNotFound) {
			return nil, apperrors.NewNotFoundError("internship", "Internship not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if internship.RecruiterID != recruiter.ID {
		return nil, apperrors.ErrNotOwner
	}

	if req.Title != "" && req.Title != internship.Title {
		internship.Title = req.Title
		slug, err := s.uniqueSlug(db, req.Title)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		internship.Slug = slug
	}
	if req.Description != "" {
		internship.Description = req.Description
	}
	if req.Type != "" {
		internship.Type = req.Type
	}
	if req.Mode != "" {
		internship.Mode = req.Mode
	}
	if req.Location != "" {
		internship.Location = req.Location
	}
	if req.Category != "" {
		internship.Category = req.Category
	}
	if req.Duration != "" {
		internship.Duration = req.Duration
	}
	if req.Stipend != nil {
		internship.Stipend = req.Stipend
	}
	if req.StipendType != "" {
		internship.StipendType = req.StipendType
	}
	if req.Requirements != "" {
		internship.Requirements = req.Requirements
	}
	if req.Openings != nil {
		internship.Openings = *req.Openings
	}
	if req.SkillsRequired != nil {
		internship.SetSkillsRequired(req.SkillsRequired)
	}
	if req.Perks != nil {
		internship.SetPerks(req.Perks)
	}
	if req.ApplyBy != nil {
		internship.ApplyBy = req.ApplyBy
	}
	if req.IsActive != nil {
		internship.IsActive = *req.IsActive
	}

	if err := s.internshipRepo.Update(db, internship); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewInternshipDTO(internship), nil
}

func (s *InternshipServiceImpl) ListByRecruiter(db *gorm.DB, recruiterUserID string) ([]dto.InternshipDTO, error) {
	recruiter, err := s.recruiterWithCompany(db, recruiterUserID)
	if err != nil {
		return nil, err
	}
	internships, err := s.internshipRepo.FindByRecruiterID(db, recruiter.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.InternshipDTO, 0, len(internships))
	for i := range internships {
		result = append(result, *dto.NewInternshipDTO(&internships[i]))
	}
	return result, nil
}

func (s *InternshipServiceImpl) recruiterWithCompany(db *gorm.DB, recruiterUserID string) (*models.RecruiterProfile, error) {
	recruiter, err := s.profileRepo.FindRecruiterByUserID(db, recruiterUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecruiterNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Recruiter profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if recruiter.CompanyID == nil {
		return nil, apperrors.ErrNoCompany
	}
	return recruiter, nil
}

// splitSkills parses the comma-separated skills query parameter.
func splitSkills(raw string) []string {
	if raw == "" {
		return nil
	}
	var skills []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

var slugStripRe = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = slugStripRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// uniqueSlug appends a numeric suffix until the slug is free.
func (s *InternshipServiceImpl) uniqueSlug(db *gorm.DB, title string) (string, error) {
	base := slugify(title)
	if base == "" {
		base = "internship"
	}
	slug := base
	for i := 2; ; i++ {
		taken, err := s.internshipRepo.SlugExists(db, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
