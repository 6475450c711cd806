package services

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kairo_backend/internal/email"
	"kairo_backend/internal/logger"
	"kairo_backend/internal/models"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type ApplicationService interface {
	// Apply submits the applicant's current profile snapshot to a posting.
	Apply(db *gorm.DB, applicantUserID, internshipID string) (*dto.ApplicationDTO, error)

	ListByApplicant(db *gorm.DB, applicantUserID string) ([]dto.ApplicationDTO, error)
	ListByInternship(db *gorm.DB, recruiterUserID, internshipID string) ([]dto.ApplicationDTO, error)
	ListRecent(db *gorm.DB, recruiterUserID string, limit int) ([]dto.ApplicationDTO, error)
	ListInterviews(db *gorm.DB, recruiterUserID string) ([]dto.ApplicationDTO, error)

	UpdateStatus(db *gorm.DB, recruiterUserID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationDTO, error)
}

type ApplicationServiceImpl struct {
	applicationRepo repositories.ApplicationRepository
	internshipRepo  repositories.InternshipRepository
	profileRepo     repositories.ProfileRepository
	userRepo        repositories.UserRepository
	emailSender     email.Provider
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	internshipRepo repositories.InternshipRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	emailSender email.Provider,
) ApplicationService {
	return &ApplicationServiceImpl{
		applicationRepo: applicationRepo,
		internshipRepo:  internshipRepo,
		profileRepo:     profileRepo,
		userRepo:        userRepo,
		emailSender:     emailSender,
	}
}

func (s *ApplicationServiceImpl) Apply(db *gorm.DB, applicantUserID, internshipID string) (*dto.ApplicationDTO, error) {
	profile, err := s.profileRepo.FindApplicantByUserID(db, applicantUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Applicant profile not found")
		}
		return nil, apperrors.InternalError(err)
	}

	internship, err := s.internshipRepo.FindByID(db, internshipID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrInternshipNotFound) {
			return nil, apperrors.NewNotFoundError("internship", "Internship not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if !internship.IsActive {
		return nil, apperrors.NewBadRequestError("This internship is no longer accepting applications")
	}
	if internship.ApplyBy != nil && time.Now().After(*internship.ApplyBy) {
		return nil, apperrors.NewBadRequestError("The application deadline has passed")
	}

	user, err := s.userRepo.FindByID(db, applicantUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	snapshot, _ := json.Marshal(dto.NewApplicantProfileDTO(profile, user))
	application := &models.InternshipApplication{
		InternshipID: internship.ID,
		ApplicantID:  profile.ID,
		Status:       models.ApplicationStatusApplied,
		IsApplied:    true,
		ResumeData:   datatypes.JSON(snapshot),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.applicationRepo.Create(tx, application); err != nil {
			if apperrors.Is(err, repositories.ErrDuplicateApplication) {
				return apperrors.ErrAlreadyApplied
			}
			return apperrors.InternalError(err)
		}
		return s.internshipRepo.IncrementApplications(tx, internship.ID)
	})
	if err != nil {
		if appErr, ok := apperrors.AsAppError(err); ok {
			return nil, appErr
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewApplicationDTO(application), nil
}

func (s *ApplicationServiceImpl) ListByApplicant(db *gorm.DB, applicantUserID string) ([]dto.ApplicationDTO, error) {
	profile, err := s.profileRepo.FindApplicantByUserID(db, applicantUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Applicant profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	applications, err := s.applicationRepo.FindByApplicantID(db, profile.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(applications), nil
}

func (s *ApplicationServiceImpl) ListByInternship(db *gorm.DB, recruiterUserID, internshipID string) ([]dto.ApplicationDTO, error) {
	if _, err := s.authorizeInternship(db, recruiterUserID, internshipID); err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.FindByInternshipID(db, internshipID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(applications), nil
}

func (s *ApplicationServiceImpl) ListRecent(db *gorm.DB, recruiterUserID string, limit int) ([]dto.ApplicationDTO, error) {
	recruiter, err := s.recruiter(db, recruiterUserID)
	if err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.FindRecentByRecruiterID(db, recruiter.ID, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(applications), nil
}

func (s *ApplicationServiceImpl) ListInterviews(db *gorm.DB, recruiterUserID string) ([]dto.ApplicationDTO, error) {
	recruiter, err := s.recruiter(db, recruiterUserID)
	if err != nil {
		return nil, err
	}
	applications, err := s.applicationRepo.FindInterviewsByRecruiterID(db, recruiter.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.toDTOs(applications), nil
}

func (s *ApplicationServiceImpl) UpdateStatus(db *gorm.DB, recruiterUserID, applicationID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationDTO, error) {
	application, err := s.applicationRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.NewNotFoundError("application", "Application not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if _, err := s.authorizeInternship(db, recruiterUserID, application.InternshipID); err != nil {
		return nil, err
	}

	if req.Status == models.ApplicationStatusInterview {
		if req.InterviewDate == nil || req.InterviewMode == "" {
			return nil, apperrors.NewBadRequestError("Interview mode and date are required when scheduling an interview")
		}
		application.InterviewMode = req.InterviewMode
		application.InterviewLocation = req.InterviewLocation
		application.InterviewDate = req.InterviewDate
		application.InterviewTime = req.InterviewTime
	}

	application.ApplyStatusFlags(req.Status)

	if err := s.applicationRepo.Update(db, application); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if req.Status == models.ApplicationStatusInterview {
		s.notifyInterview(db, application)
	}

	return dto.NewApplicationDTO(application), nil
}

// notifyInterview is best effort. A mail failure never rolls the status back.
func (s *ApplicationServiceImpl) notifyInterview(db *gorm.DB, application *models.InternshipApplication) {
	if s.emailSender == nil {
		return
	}
	profile, err := s.profileRepo.FindApplicantByID(db, application.ApplicantID)
	if err != nil {
		logger.Error("interview notification skipped", "application_id", application.ID, "error", err)
		return
	}
	user, err := s.userRepo.FindByID(db, profile.UserID)
	if err != nil {
		logger.Error("interview notification skipped", "application_id", application.ID, "error", err)
		return
	}

	title := ""
	if application.Internship != nil {
		title = application.Internship.Title
	}
	date := ""
	if application.InterviewDate != nil {
		date = application.InterviewDate.Format("2006-01-02")
	}
	if err := s.emailSender.SendInterviewInvite(user.Email, user.Name, title,
		application.InterviewMode, application.InterviewLocation, date, application.InterviewTime); err != nil {
		logger.Error("failed to send interview invite", "application_id", application.ID, "error", err)
	}
}

func (s *ApplicationServiceImpl) recruiter(db *gorm.DB, recruiterUserID string) (*models.RecruiterProfile, error) {
	recruiter, err := s.profileRepo.FindRecruiterByUserID(db, recruiterUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecruiterNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Recruiter profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return recruiter, nil
}

// authorizeInternship confirms the internship belongs to the calling
// recruiter before any application under it is exposed or mutated.
func (s *ApplicationServiceImpl) authorizeInternship(db *gorm.DB, recruiterUserID, internshipID string) (*models.Internship, error) {
	recruiter, err := s.recruiter(db, recruiterUserID)
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
	return internship, nil
}

func (s *ApplicationServiceImpl) toDTOs(applications []models.InternshipApplication) []dto.ApplicationDTO {
	result := make([]dto.ApplicationDTO, 0, len(applications))
	for i := range applications {
		result = append(result, *dto.NewApplicationDTO(&applications[i]))
	}
	return result
}
