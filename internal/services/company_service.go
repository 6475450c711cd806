package services

import (
	"gorm.io/gorm"

	"kairo_backend/internal/auth"
	"kairo_backend/internal/email"
	"kairo_backend/internal/logger"
	"kairo_backend/internal/models"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

// loginIDAttempts bounds collision retries when minting a company LoginID.
const loginIDAttempts = 5

type CompanyService interface {
	Register(db *gorm.DB, req *dto.RegisterCompanyRequest, notifyEmail string) (*dto.RegisterCompanyResponse, error)
	Login(db *gorm.DB, req *dto.CompanyLoginRequest) (*dto.CompanyLoginResponse, error)

	Get(db *gorm.DB, companyID string) (*dto.CompanyDTO, error)
	Update(db *gorm.DB, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyDTO, error)

	// GetForRecruiter returns the company the recruiter is attached to.
	GetForRecruiter(db *gorm.DB, recruiterUserID string) (*dto.CompanyDTO, error)

	ListRecruiters(db *gorm.DB, companyID string) ([]dto.RecruiterProfileDTO, error)
	AttachRecruiter(db *gorm.DB, companyID, recruiterEmail string) (*dto.RecruiterProfileDTO, error)
	DetachRecruiter(db *gorm.DB, companyID, recruiterID string) error
}

type CompanyServiceImpl struct {
	companyRepo  repositories.CompanyRepository
	profileRepo  repositories.ProfileRepository
	userRepo     repositories.UserRepository
	tokenManager *auth.CompanyTokenManager
	emailSender  email.Provider
}

func NewCompanyService(
	companyRepo repositories.CompanyRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	tokenManager *auth.CompanyTokenManager,
	emailSender email.Provider,
) CompanyService {
	return &CompanyServiceImpl{
		companyRepo:  companyRepo,
		profileRepo:  profileRepo,
		userRepo:     userRepo,
		tokenManager: tokenManager,
		emailSender:  emailSender,
	}
}

func (s *CompanyServiceImpl) Register(db *gorm.DB, req *dto.RegisterCompanyRequest, notifyEmail string) (*dto.RegisterCompanyResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	loginID, err := s.mintLoginID(db)
	if err != nil {
		return nil, err
	}

	company := &models.Company{
		Name:            req.Name,
		Industry:        req.Industry,
		Website:         req.Website,
		Description:     req.Description,
		Location:        req.Location,
		CompanySize:     req.CompanySize,
		EstablishedYear: req.EstablishedYear,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.companyRepo.Create(tx, company); err != nil {
			return err
		}
		return s.companyRepo.CreateAuth(tx, &models.CompanyAuth{
			CompanyID:    company.ID,
			LoginID:      loginID,
			PasswordHash: hash,
		})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if notifyEmail != "" && s.emailSender != nil {
		if err := s.emailSender.SendCompanyCredentials(notifyEmail, company.Name, loginID); err != nil {
			logger.Error("failed to send company credentials", "company_id", company.ID, "error", err)
		}
	}

	return &dto.RegisterCompanyResponse{ID: company.ID, LoginID: loginID}, nil
}

func (s *CompanyServiceImpl) mintLoginID(db *gorm.DB) (string, error) {
	for attempt := 0; attempt < loginIDAttempts; attempt++ {
		loginID, err := auth.GenerateCompanyLoginID()
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		taken, err := s.companyRepo.LoginIDExists(db, loginID)
		if err != nil {
			return "", apperrors.InternalError(err)
		}
		if !taken {
			return loginID, nil
		}
	}
	return "", apperrors.InternalError(repositories.ErrLoginIDTaken)
}

func (s *CompanyServiceImpl) Login(db *gorm.DB, req *dto.CompanyLoginRequest) (*dto.CompanyLoginResponse, error) {
	companyAuth, err := s.companyRepo.FindAuthByLoginID(db, req.LoginID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyAuthNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}
	if !auth.CheckPasswordHash(req.Password, companyAuth.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	token, err := s.tokenManager.Generate(companyAuth.CompanyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CompanyLoginResponse{Token: token}
	if companyAuth.Company != nil {
		resp.Company = *dto.NewCompanyDTO(companyAuth.Company)
	}
	return resp, nil
}

func (s *CompanyServiceImpl) Get(db *gorm.DB, companyID string) (*dto.CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCompanyDTO(company), nil
}

func (s *CompanyServiceImpl) Update(db *gorm.DB, companyID string, req *dto.UpdateCompanyRequest) (*dto.CompanyDTO, error) {
	company, err := s.companyRepo.FindByID(db, companyID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrCompanyNotFound) {
			return nil, apperrors.NewNotFoundError("company", "Company not found")
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != "" {
		company.Name = req.Name
	}
	if req.Industry != "" {
		company.Industry = req.Industry
	}
	if req.Website != "" {
		company.Website = req.Website
	}
	if req.Description != "" {
		company.Description = req.Description
	}
	if req.Location != "" {
		company.Location = req.Location
	}
	if req.CompanySize != "" {
		company.CompanySize = req.CompanySize
	}
	if req.EstablishedYear != 0 {
		company.EstablishedYear = req.EstablishedYear
	}

	if err := s.companyRepo.Update(db, company); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewCompanyDTO(company), nil
}

func (s *CompanyServiceImpl) GetForRecruiter(db *gorm.DB, recruiterUserID string) (*dto.CompanyDTO, error) {
	recruiter, err := s.profileRepo.FindRecruiterByUserID(db, recruiterUserID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrRecruiterNotFound) {
			return nil, apperrors.NewNotFoundError("profile", "Recruiter profile not found")
		}
		return nil, apperrors.InternalError(err)
	}
	if recruiter.CompanyID == nil || recruiter.Company == nil {
		return nil, apperrors.ErrNoCompany
	}
	return dto.NewCompanyDTO(recruiter.Company), nil
}

func (s *CompanyServiceImpl) ListRecruiters(db *gorm.DB, companyID string) ([]dto.RecruiterProfileDTO, error) {
	recruiters, err := s.profileRepo.FindRecruitersByCompanyID(db, companyID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	result := make([]dto.RecruiterProfileDTO, 0, len(recruiters))
	for i := range recruiters {
		result = append(result, *dto.NewRecruiterProfileDTO(&recruiters[i], recruiters[i].User))
	}
	return result, nil
}

func (s *CompanyServiceImpl) AttachRecruiter(db *gorm.DB, companyID, recruiterEmail string) (*dto.RecruiterProfileDTO, error) {
	user, err := s.userRepo.FindByEmail(db, recruiterEmail)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewNotFoundError("user", "No account with this email")
		}
		return nil, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleRecruiter {
		return nil, apperrors.NewBadRequestError("This account is not a recruiter account")
	}

	recruiter, err := s.profileRepo.FindRecruiterByUserID(db, user.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if recruiter.CompanyID != nil && *recruiter.CompanyID != companyID {
		return nil, apperrors.ErrConflict(nil, "company", "Recruiter is already attached to another company")
	}

	recruiter.CompanyID = &companyID
	if err := s.profileRepo.UpdateRecruiter(db, recruiter); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewRecruiterProfileDTO(recruiter, user), nil
}

func (s *CompanyServiceImpl) DetachRecruiter(db *gorm.DB, companyID, recruiterID string) error {
	recruiters, err := s.profileRepo.FindRecruitersByCompanyID(db, companyID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	for i := range recruiters {
		if recruiters[i].ID == recruiterID {
			if err := s.profileRepo.DetachRecruiter(db, recruiterID); err != nil {
				return apperrors.InternalError(err)
			}
			return nil
		}
	}
	return apperrors.NewNotFoundError("company", "Recruiter is not attached to this company")
}
