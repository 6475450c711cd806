package services

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"kairo_backend/internal/auth"
	"kairo_backend/internal/config"
	"kairo_backend/internal/email"
	"kairo_backend/internal/logger"
	"kairo_backend/internal/models"
	"kairo_backend/internal/repositories"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

const verificationTokenTTL = 10 * time.Minute

type AuthService interface {
	Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error)
	Signin(db *gorm.DB, req *dto.SigninRequest) (*dto.SessionResult, error)

	// VerifyEmail consumes the token and signs the user in.
	VerifyEmail(db *gorm.DB, token string) (*dto.SessionResult, error)

	Logout(db *gorm.DB, sessionToken string) error
	CurrentUser(db *gorm.DB, userID string) (*dto.UserDTO, error)
	ResendVerification(db *gorm.DB, emailAddr string) error
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	sessionRepo repositories.SessionRepository
	verifyRepo  repositories.VerificationTokenRepository
	profileRepo repositories.ProfileRepository
	emailSender email.Provider
	sessionTTL  time.Duration
	baseURL     string
}

func NewAuthService(
	userRepo repositories.UserRepository,
	sessionRepo repositories.SessionRepository,
	verifyRepo repositories.VerificationTokenRepository,
	profileRepo repositories.ProfileRepository,
	emailSender email.Provider,
	cfg *config.Config,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		verifyRepo:  verifyRepo,
		profileRepo: profileRepo,
		emailSender: emailSender,
		sessionTTL:  time.Duration(cfg.Session.TTLDays) * 24 * time.Hour,
		baseURL:     cfg.Server.BaseURL,
	}
}

func (s *AuthServiceImpl) Signup(db *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}
	if req.Role != models.UserRoleApplicant && req.Role != models.UserRoleRecruiter {
		return nil, apperrors.ErrInvalidUserRole
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         req.Role,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
				return apperrors.ErrEmailAlreadyExists
			}
			return apperrors.InternalError(err)
		}

		// role-specific profile shell so later profile writes always
		// have a row to lock
		switch req.Role {
		case models.UserRoleApplicant:
			if err := s.profileRepo.CreateApplicant(tx, &models.ApplicantProfile{UserID: user.ID}); err != nil {
				return apperrors.InternalError(err)
			}
		case models.UserRoleRecruiter:
			if err := s.profileRepo.CreateRecruiter(tx, &models.RecruiterProfile{UserID: user.ID}); err != nil {
				return apperrors.InternalError(err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.sendVerificationEmail(db, user); err != nil {
		// signup already committed; the user can request a resend
		logger.Error("failed to send verification email", "user_id", user.ID, "error", err)
	}

	return &dto.SignupResponse{ID: user.ID}, nil
}

func (s *AuthServiceImpl) sendVerificationEmail(db *gorm.DB, user *models.User) error {
	token, err := auth.GenerateToken()
	if err != nil {
		return err
	}

	// one outstanding token per address
	if err := s.verifyRepo.DeleteByIdentifier(db, user.Email); err != nil {
		return err
	}
	vt := &models.VerificationToken{
		Token:      token,
		Identifier: user.Email,
		ExpiresAt:  time.Now().Add(verificationTokenTTL),
	}
	if err := s.verifyRepo.Create(db, vt); err != nil {
		return err
	}

	verifyURL := fmt.Sprintf("%s/api/v1/auth/verify?token=%s", s.baseURL, token)
	return s.emailSender.SendVerification(user.Email, user.Name, verifyURL)
}

func (s *AuthServiceImpl) Signin(db *gorm.DB, req *dto.SigninRequest) (*dto.SessionResult, error) {
	user, err := s.userRepo.FindByEmail(db, req.Email)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}
	if !user.IsVerified() {
		return nil, apperrors.ErrEmailNotVerified
	}

	return s.createSession(db, user)
}

func (s *AuthServiceImpl) createSession(db *gorm.DB, user *models.User) (*dto.SessionResult, error) {
	token, err := auth.GenerateToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	session := &models.Session{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.sessionTTL),
	}
	if err := s.sessionRepo.Create(db, session); err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.SessionResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      dto.NewUserDTO(user),
	}, nil
}

func (s *AuthServiceImpl) VerifyEmail(db *gorm.DB, token string) (*dto.SessionResult, error) {
	vt, err := s.verifyRepo.FindByToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrVerificationTokenNotFound) {
			return nil, apperrors.ErrInvalidVerificationToken
		}
		return nil, apperrors.InternalError(err)
	}

	if vt.Expired() {
		_ = s.verifyRepo.DeleteByToken(db, token)
		return nil, apperrors.ErrInvalidVerificationToken
	}

	user, err := s.userRepo.FindByEmail(db, vt.Identifier)
	if err != nil {
		return nil, apperrors.ErrInvalidVerificationToken
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if !user.IsVerified() {
			if err := s.userRepo.MarkVerified(tx, user.ID, time.Now()); err != nil {
				return err
			}
		}
		// single use
		return s.verifyRepo.DeleteByToken(tx, token)
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	now := time.Now()
	user.EmailVerifiedAt = &now
	return s.createSession(db, user)
}

func (s *AuthServiceImpl) Logout(db *gorm.DB, sessionToken string) error {
	if sessionToken == "" {
		return nil
	}
	if err := s.sessionRepo.DeleteByToken(db, sessionToken); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *AuthServiceImpl) CurrentUser(db *gorm.DB, userID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError("Unknown user")
		}
		return nil, apperrors.InternalError(err)
	}
	u := dto.NewUserDTO(user)
	return &u, nil
}

// ResendVerification issues a fresh token. Responds the same for unknown
// addresses so it cannot be used to probe for accounts.
func (s *AuthServiceImpl) ResendVerification(db *gorm.DB, emailAddr string) error {
	user, err := s.userRepo.FindByEmail(db, emailAddr)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}
	if user.IsVerified() {
		return nil
	}
	if err := s.sendVerificationEmail(db, user); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
