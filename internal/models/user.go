package models

import "time"

type User struct {
	BaseModel
	Email           string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash    string     `gorm:"not null" json:"-"`
	Name            string     `gorm:"not null" json:"name"`
	Role            UserRole   `gorm:"type:varchar(20);not null" json:"role"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	ImageURL        string     `json:"image_url"`

	// Relations
	ApplicantProfile *ApplicantProfile `gorm:"foreignKey:UserID" json:"applicant_profile,omitempty"`
	RecruiterProfile *RecruiterProfile `gorm:"foreignKey:UserID" json:"recruiter_profile,omitempty"`
	Sessions         []Session         `gorm:"foreignKey:UserID" json:"-"`
}

// IsVerified reports whether the verification flow has completed.
func (u *User) IsVerified() bool {
	return u.EmailVerifiedAt != nil
}

// Session is the opaque credential-proof record behind the sessionToken
// cookie. A session is valid iff now < ExpiresAt and the token exists.
// One user may hold several concurrent sessions.
type Session struct {
	BaseModel
	Token     string    `gorm:"not null;uniqueIndex" json:"-"`
	UserID    string    `gorm:"not null;index" json:"user_id"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
}

// Expired reports whether the session is past its lifetime.
func (s *Session) Expired() bool {
	return !time.Now().Before(s.ExpiresAt)
}

// VerificationToken is a single-use proof of email ownership. The
// verification handler deletes it immediately after a successful
// consumption so a replay fails.
type VerificationToken struct {
	BaseModel
	Token      string    `gorm:"not null;uniqueIndex"`
	Identifier string    `gorm:"not null;index"` // the email being verified
	ExpiresAt  time.Time `gorm:"not null"`
}

func (t *VerificationToken) Expired() bool {
	return !time.Now().Before(t.ExpiresAt)
}
