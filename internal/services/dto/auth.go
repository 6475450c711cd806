package dto

import (
	"time"

	"kairo_backend/internal/models"
)

type SignupRequest struct {
	Name     string          `json:"name" binding:"required,min=2,max=100"`
	Email    string          `json:"email" binding:"required,email"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     models.UserRole `json:"role" binding:"required,oneof=applicant recruiter"`
}

type SignupResponse struct {
	ID string `json:"id"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SessionResult carries the minted session token alongside its expiry so
// the handler can set a cookie that dies together with the Session row.
type SessionResult struct {
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
	User      UserDTO   `json:"user"`
}

type UserDTO struct {
	ID       string          `json:"id"`
	Email    string          `json:"email"`
	Name     string          `json:"name"`
	Role     models.UserRole `json:"role"`
	Verified bool            `json:"verified"`
	ImageURL string          `json:"image_url,omitempty"`
}

func NewUserDTO(user *models.User) UserDTO {
	return UserDTO{
		ID:       user.ID,
		Email:    user.Email,
		Name:     user.Name,
		Role:     user.Role,
		Verified: user.IsVerified(),
		ImageURL: user.ImageURL,
	}
}
