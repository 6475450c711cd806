package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kairo_backend/internal/auth"
	"kairo_backend/internal/config"
	"kairo_backend/internal/email"
	"kairo_backend/internal/models"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type authFixture struct {
	users    *mockUserRepo
	sessions *mockSessionRepo
	tokens   *mockVerificationTokenRepo
	profiles *mockProfileRepo
	mail     *mockEmailProvider
}

func newAuthFixture(t *testing.T) (*authFixture, AuthService) {
	t.Helper()
	f := &authFixture{
		users:    newMockUserRepo(),
		sessions: newMockSessionRepo(),
		tokens:   newMockVerificationTokenRepo(),
		profiles: newMockProfileRepo(),
		mail:     &mockEmailProvider{},
	}
	cfg := &config.Config{
		Server:  config.ServerConfig{BaseURL: "http://localhost:8080"},
		Session: config.SessionConfig{TTLDays: 7},
	}
	svc := NewAuthService(f.users, f.sessions, f.tokens, f.profiles, f.mail, cfg)
	return f, svc
}

func signupApplicant(t *testing.T, svc AuthService, emailAddr string) string {
	t.Helper()
	resp, err := svc.Signup(newTestDB(), &dto.SignupRequest{
		Name:     "Aruzhan",
		Email:    emailAddr,
		Password: "password123",
		Role:     models.UserRoleApplicant,
	})
	require.NoError(t, err)
	return resp.ID
}

func TestSignupCreatesUserAndProfileShell(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	userID := signupApplicant(t, svc, "aruzhan@example.com")

	user, err := f.users.FindByID(nil, userID)
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleApplicant, user.Role)
	assert.False(t, user.IsVerified())
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = f.profiles.FindApplicantByUserID(nil, userID)
	assert.NoError(t, err)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "aruzhan@example.com", f.mail.sent[0].To)
	assert.Equal(t, email.TemplateVerification, f.mail.sent[0].Template)
}

func TestSignupRecruiterGetsRecruiterShell(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	resp, err := svc.Signup(newTestDB(), &dto.SignupRequest{
		Name:     "Dias",
		Email:    "dias@example.com",
		Password: "password123",
		Role:     models.UserRoleRecruiter,
	})
	require.NoError(t, err)

	_, err = f.profiles.FindRecruiterByUserID(nil, resp.ID)
	assert.NoError(t, err)
	_, err = f.profiles.FindApplicantByUserID(nil, resp.ID)
	assert.Error(t, err)
}

func TestSignupRejectsDuplicateEmail(t *testing.T) {
	t.Parallel()
	_, svc := newAuthFixture(t)

	signupApplicant(t, svc, "taken@example.com")
	_, err := svc.Signup(newTestDB(), &dto.SignupRequest{
		Name:     "Other",
		Email:    "taken@example.com",
		Password: "password123",
		Role:     models.UserRoleApplicant,
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)
}

func TestSignupRejectsWeakPasswordAndBadRole(t *testing.T) {
	t.Parallel()
	_, svc := newAuthFixture(t)

	_, err := svc.Signup(newTestDB(), &dto.SignupRequest{
		Name: "A", Email: "a@example.com", Password: "short", Role: models.UserRoleApplicant,
	})
	assert.ErrorIs(t, err, apperrors.ErrWeakPassword)

	_, err = svc.Signup(newTestDB(), &dto.SignupRequest{
		Name: "A", Email: "a@example.com", Password: "password123", Role: "admin",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidUserRole)
}

func TestSigninRequiresVerifiedEmail(t *testing.T) {
	t.Parallel()
	_, svc := newAuthFixture(t)

	signupApplicant(t, svc, "new@example.com")
	_, err := svc.Signin(newTestDB(), &dto.SigninRequest{
		Email: "new@example.com", Password: "password123",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailNotVerified)
}

func TestSigninWrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	userID := signupApplicant(t, svc, "known@example.com")
	now := time.Now()
	f.users.byID[userID].EmailVerifiedAt = &now

	_, errWrong := svc.Signin(newTestDB(), &dto.SigninRequest{
		Email: "known@example.com", Password: "wrongpassword",
	})
	_, errUnknown := svc.Signin(newTestDB(), &dto.SigninRequest{
		Email: "nobody@example.com", Password: "password123",
	})

	assert.ErrorIs(t, errWrong, apperrors.ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknown, apperrors.ErrInvalidCredentials)
	assert.Empty(t, f.sessions.byToken)
}

func TestSigninMintsSessionWithConfiguredTTL(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	userID := signupApplicant(t, svc, "ok@example.com")
	now := time.Now()
	f.users.byID[userID].EmailVerifiedAt = &now

	result, err := svc.Signin(newTestDB(), &dto.SigninRequest{
		Email: "ok@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, userID, result.User.ID)

	session, err := f.sessions.FindByToken(nil, result.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, session.UserID)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), session.ExpiresAt, time.Minute)
}

func TestVerifyEmailConsumesTokenAndSignsIn(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	userID := signupApplicant(t, svc, "verify@example.com")

	var token string
	for tok := range f.tokens.byToken {
		token = tok
	}
	require.NotEmpty(t, token)

	result, err := svc.VerifyEmail(newTestDB(), token)
	require.NoError(t, err)
	assert.True(t, result.User.Verified)
	assert.NotEmpty(t, result.Token)

	user, _ := f.users.FindByID(nil, userID)
	assert.True(t, user.IsVerified())

	// single use
	_, err = svc.VerifyEmail(newTestDB(), token)
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationToken)
}

func TestVerifyEmailRejectsExpiredToken(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	signupApplicant(t, svc, "late@example.com")
	f.tokens.byToken = map[string]*models.VerificationToken{
		"stale": {
			Token:      "stale",
			Identifier: "late@example.com",
			ExpiresAt:  time.Now().Add(-time.Minute),
		},
	}

	_, err := svc.VerifyEmail(newTestDB(), "stale")
	assert.ErrorIs(t, err, apperrors.ErrInvalidVerificationToken)
	assert.Empty(t, f.tokens.byToken, "expired token should be purged")
}

func TestLogoutDeletesSession(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	token, err := auth.GenerateToken()
	require.NoError(t, err)
	require.NoError(t, f.sessions.Create(nil, &models.Session{
		Token: token, UserID: "u1", ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, svc.Logout(newTestDB(), token))
	_, err = f.sessions.FindByToken(nil, token)
	assert.Error(t, err)

	// empty token is a no-op, not an error
	assert.NoError(t, svc.Logout(newTestDB(), ""))
}

func TestResendVerificationDoesNotProbeAccounts(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	assert.NoError(t, svc.ResendVerification(newTestDB(), "ghost@example.com"))
	assert.Empty(t, f.mail.sent)
}

func TestResendVerificationReplacesOutstandingToken(t *testing.T) {
	t.Parallel()
	f, svc := newAuthFixture(t)

	signupApplicant(t, svc, "again@example.com")
	require.Len(t, f.tokens.byToken, 1)

	require.NoError(t, svc.ResendVerification(newTestDB(), "again@example.com"))
	assert.Len(t, f.tokens.byToken, 1, "old token replaced, not stacked")
	assert.Len(t, f.mail.sent, 2)
}
