package services

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kairo_backend/internal/models"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type ProfileService interface {
	GetApplicantProfile(db *gorm.DB, userID string) (*dto.ApplicantProfileDTO, error)
	GetRecruiterProfile(db *gorm.DB, userID string) (*dto.RecruiterProfileDTO, error)

	UpdateName(db *gorm.DB, userID, name string) error
	UpdateAbout(db *gorm.DB, userID, about string) error
	UpdateContact(db *gorm.DB, userID string, req *dto.UpdateContactRequest) error

	AddSkills(db *gorm.DB, userID string, skills []string) ([]string, error)
	RemoveSkill(db *gorm.DB, userID, skill string) ([]string, error)

	AddExperience(db *gorm.DB, userID string, req *dto.ExperienceRequest) (*models.ExperienceEntry, error)
	RemoveExperience(db *gorm.DB, userID, entryID string) error
	AddProject(db *gorm.DB, userID string, req *dto.ProjectRequest) (*models.ProjectEntry, error)
	UpdateProject(db *gorm.DB, userID, entryID string, req *dto.ProjectRequest) (*models.ProjectEntry, error)
	RemoveProject(db *gorm.DB, userID, entryID string) error
	AddEducation(db *gorm.DB, userID string, req *dto.EducationRequest) (*models.EducationEntry, error)
	RemoveEducation(db *gorm.DB, userID, entryID string) error

	UpdateLink(db *gorm.DB, userID, platform, url string) error
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) ProfileService {
	return &ProfileServiceImpl{profileRepo: profileRepo, userRepo: userRepo}
}

func (s *ProfileServiceImpl) GetApplicantProfile(db *gorm.DB, userID string) (*dto.ApplicantProfileDTO, error) {
	profile, err := s.profileRepo.FindApplicantByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Applicant profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewApplicantProfileDTO(profile, user), nil
}

func (s *ProfileServiceImpl) GetRecruiterProfile(db *gorm.DB, userID string) (*dto.RecruiterProfileDTO, error) {
	profile, err := s.profileRepo.FindRecruiterByUserID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecruiterNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Recruiter profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewRecruiterProfileDTO(profile, user), nil
}

func (s *ProfileServiceImpl) UpdateName(db *gorm.DB, userID, name string) error {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	user.Name = name
	if err := s.userRepo.Update(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ProfileServiceImpl) UpdateAbout(db *gorm.DB, userID, about string) error {
	return s.updateFields(db, userID, map[string]interface{}{"about": about})
}

func (s *ProfileServiceImpl) UpdateContact(db *gorm.DB, userID string, req *dto.UpdateContactRequest) error {
	return s.updateFields(db, userID, map[string]interface{}{
		"phone":         req.Phone,
		"contact_email": req.ContactEmail,
		"location":      req.Location,
	})
}

func (s *ProfileServiceImpl) updateFields(db *gorm.DB, userID string, fields map[string]interface{}) error {
	if err := s.profileRepo.UpdateApplicantFields(db, userID, fields); err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return apperrors.NewNotFoundError("profile", "Applicant profile not found")
		}
		return apperrors.InternalError(err)
	}
	return nil
}

// AddSkills unions the incoming skills into the stored set. Matching is
// case-insensitive; the first-seen spelling wins.
func (s *ProfileServiceImpl) AddSkills(db *gorm.DB, userID string, skills []string) ([]string, error) {
	var result []string
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		existing := p.GetSkills()
		seen := make(map[string]bool, len(existing))
		for _, skill := range existing {
			seen[strings.ToLower(skill)] = true
		}
		for _, skill := range skills {
			skill = strings.TrimSpace(skill)
			if skill == "" || seen[strings.ToLower(skill)] {
				continue
			}
			seen[strings.ToLower(skill)] = true
			existing = append(existing, skill)
		}
		p.SetSkills(existing)
		result = existing
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err)
	}
	return result, nil
}

func (s *ProfileServiceImpl) RemoveSkill(db *gorm.DB, userID, skill string) ([]string, error) {
	var result []string
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		kept := make([]string, 0)
		for _, existing := range p.GetSkills() {
			if !strings.EqualFold(existing, skill) {
				kept = append(kept, existing)
			}
		}
		p.SetSkills(kept)
		result = kept
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err)
	}
	return result, nil
}

func (s *ProfileServiceImpl) AddExperience(db *gorm.DB, userID string, req *dto.ExperienceRequest) (*models.ExperienceEntry, error) {
	entry := models.ExperienceEntry{
		ID:              uuid.NewString(),
		Role:            req.Role,
		Company:         req.Company,
		Duration:        req.Duration,
		Description:     req.Description,
		ReferenceEmails: req.ReferenceEmails,
	}
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		p.SetExperience(append(p.GetExperience(), entry))
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err)
	}
	return &entry, nil
}

func (s *ProfileServiceImpl) RemoveExperience(db *gorm.DB, userID, entryID string) error {
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		entries := p.GetExperience()
		kept := entries[:0]
		found := false
		for _, e := range entries {
			if e.ID == entryID {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if !found {
			return apperrors.NewNotFoundError("profile", "Experience entry not found")
		}
		p.SetExperience(kept)
		return nil
	})
	if err != nil {
		return s.mapMutateError(err)
	}
	return nil
}

func (s *ProfileServiceImpl) AddProject(db *gorm.DB, userID string, req *dto.ProjectRequest) (*models.ProjectEntry, error) {
	entry := models.ProjectEntry{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Tech:        req.Tech,
	}
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		p.SetProjects(append(p.GetProjects(), entry))
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err)
	}
	return &entry, nil
}

func (s *ProfileServiceImpl) UpdateProject(db *gorm.DB, userID, entryID string, req *dto.ProjectRequest) (*models.ProjectEntry, error) {
	updated := models.ProjectEntry{
		ID:          entryID,
		Title:       req.Title,
		Description: req.Description,
		Link:        req.Link,
		Tech:        req.Tech,
	}
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		entries := p.GetProjects()
		found := false
		for i, e := range entries {
			if e.ID == entryID {
				entries[i] = updated
				found = true
				break
			}
		}
		if !found {
			return apperrors.NewNotFoundError("profile", "Project entry not found")
		}
		p.SetProjects(entries)
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err)
	}
	return &updated, nil
}

func (s *ProfileServiceImpl) RemoveProject(db *gorm.DB, userID, entryID string) error {
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		entries := p.GetProjects()
		kept := entries[:0]
		found := false
		for _, e := range entries {
			if e.ID == entryID {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if !found {
			return apperrors.NewNotFoundError("profile", "Project entry not found")
		}
		p.SetProjects(kept)
		return nil
	})
	if err != nil {
		return s.mapMutateError(err)
	}
	return nil
}

func (s *ProfileServiceImpl) AddEducation(db *gorm.DB, userID string, req *dto.EducationRequest) (*models.EducationEntry, error) {
	entry := models.EducationEntry{
		ID:          uuid.NewString(),
		Institution: req.Institution,
		Degree:      req.Degree,
		Duration:    req.Duration,
		Grade:       req.Grade,
	}
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		p.SetEducation(append(p.GetEducation(), entry))
		return nil
	})
	if err != nil {
		return nil, s.mapMutateError(err)
	}
	return &entry, nil
}

func (s *ProfileServiceImpl) RemoveEducation(db *gorm.DB, userID, entryID string) error {
	_, err := s.profileRepo.MutateApplicant(db, userID, func(p *models.ApplicantProfile) error {
		entries := p.GetEducation()
		kept := entries[:0]
		found := false
		for _, e := range entries {
			if e.ID == entryID {
				found = true
				continue
			}
			kept = append(kept, e)
		}
		if !found {
			return apperrors.NewNotFoundError("profile", "Education entry not found")
		}
		p.SetEducation(kept)
		return nil
	})
	if err != nil {
		return s.mapMutateError(err)
	}
	return nil
}

func (s *ProfileServiceImpl) UpdateLink(db *gorm.DB, userID, platform, url string) error {
	var column string
	switch platform {
	case "github":
		column = "github_link"
	case "linkedin":
		column = "linkedin_link"
	case "leetcode":
		column = "leetcode_link"
	case "codeforces":
		column = "codeforces_link"
	default:
		return apperrors.NewBadRequestError("Unknown link platform: " + platform)
	}
	return s.updateFields(db, userID, map[string]interface{}{column: url})
}

func (s *ProfileServiceImpl) mapMutateError(err error) error {
	if apperrors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.NewNotFoundError("profile", "Applicant profile not found")
	}
	if appErr, ok := apperrors.AsAppError(err); ok {
		return appErr
	}
	return apperrors.InternalError(err)
}
