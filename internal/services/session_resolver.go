package services

import (
	"gorm.io/gorm"

	"kairo_backend/internal/models"
	"kairo_backend/internal/repositories"
	"kairo_backend/pkg/apperrors"
)

// Principal is the identity attached to a request after the session gate.
type Principal struct {
	UserID string
	Role   models.UserRole
}

// SessionResolver turns a raw cookie token into a Principal. Unknown and
// expired tokens both come back as ErrInvalidToken; expired rows are
// deleted on sight.
type SessionResolver interface {
	Resolve(db *gorm.DB, token string) (*Principal, error)
}

type sessionResolver struct {
	sessionRepo repositories.SessionRepository
	userRepo    repositories.UserRepository
}

func NewSessionResolver(sessionRepo repositories.SessionRepository, userRepo repositories.UserRepository) SessionResolver {
	return &sessionResolver{sessionRepo: sessionRepo, userRepo: userRepo}
}

func (r *sessionResolver) Resolve(db *gorm.DB, token string) (*Principal, error) {
	if token == "" {
		return nil, apperrors.ErrInvalidToken
	}

	session, err := r.sessionRepo.FindByToken(db, token)
	if err != nil {
		if apperrors.Is(err, repositories.ErrSessionNotFound) {
			return nil, apperrors.ErrInvalidToken
		}
		return nil, apperrors.InternalError(err)
	}
	if session.Expired() {
		_ = r.sessionRepo.DeleteByToken(db, token)
		return nil, apperrors.ErrInvalidToken
	}

	user, err := r.userRepo.FindByID(db, session.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	return &Principal{UserID: user.ID, Role: user.Role}, nil
}
