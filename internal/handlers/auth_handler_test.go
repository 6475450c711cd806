package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"kairo_backend/internal/config"
	"kairo_backend/internal/models"
	"kairo_backend/internal/services"
	"kairo_backend/internal/services/dto"
	"kairo_backend/internal/validator"
	"kairo_backend/pkg/apperrors"
	"kairo_backend/pkg/contextkeys"
	"kairo_backend/test/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

// stubAuthService returns canned results so the handler's HTTP surface can
// be tested in isolation.
type stubAuthService struct {
	sessionResult *dto.SessionResult
	loggedOut     []string
}

func (s *stubAuthService) Signup(_ *gorm.DB, req *dto.SignupRequest) (*dto.SignupResponse, error) {
	return &dto.SignupResponse{ID: "new-user"}, nil
}

func (s *stubAuthService) Signin(_ *gorm.DB, req *dto.SigninRequest) (*dto.SessionResult, error) {
	if req.Password != "password123" {
		return nil, apperrors.ErrInvalidCredentials
	}
	return s.sessionResult, nil
}

func (s *stubAuthService) VerifyEmail(_ *gorm.DB, token string) (*dto.SessionResult, error) {
	if token != "good-token" {
		return nil, apperrors.ErrInvalidVerificationToken
	}
	return s.sessionResult, nil
}

func (s *stubAuthService) Logout(_ *gorm.DB, sessionToken string) error {
	s.loggedOut = append(s.loggedOut, sessionToken)
	return nil
}

func (s *stubAuthService) CurrentUser(_ *gorm.DB, userID string) (*dto.UserDTO, error) {
	return &dto.UserDTO{ID: userID, Email: "u@example.com"}, nil
}

func (s *stubAuthService) ResendVerification(_ *gorm.DB, emailAddr string) error { return nil }

type allowAllResolver struct{}

func (allowAllResolver) Resolve(_ *gorm.DB, token string) (*services.Principal, error) {
	if token == "live-session" {
		return &services.Principal{UserID: "u1", Role: models.UserRoleApplicant}, nil
	}
	return nil, apperrors.ErrInvalidToken
}

func newAuthTestRouter(t *testing.T, svc services.AuthService) *gin.Engine {
	t.Helper()
	router := gin.New()
	db := helpers.NullDB()
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), db)
		c.Next()
	})

	sessionCfg := config.SessionConfig{TTLDays: 7, CookieName: "sessionToken"}
	handler := NewAuthHandler(NewBaseHandler(validator.New()), svc, allowAllResolver{}, sessionCfg)
	api := router.Group("/api/v1")
	handler.RegisterRoutes(api)
	return router
}

func sessionResultFixture() *dto.SessionResult {
	return &dto.SessionResult{
		Token:     "minted-token",
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
		User:      dto.UserDTO{ID: "u1", Email: "u@example.com", Role: models.UserRoleApplicant, Verified: true},
	}
}

func findCookie(t *testing.T, w *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := w.Result()
	defer res.Body.Close()
	for _, cookie := range res.Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestSignupReturns201(t *testing.T) {
	t.Parallel()
	router := newAuthTestRouter(t, &stubAuthService{})

	body := `{"name":"Aruzhan","email":"a@example.com","password":"password123","role":"applicant"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "new-user")
	assert.Nil(t, findCookie(t, w, "sessionToken"), "signup must not sign the user in")
}

func TestSignupRejectsMalformedBody(t *testing.T) {
	t.Parallel()
	router := newAuthTestRouter(t, &stubAuthService{})

	body := `{"name":"A","email":"not-an-email","password":"x","role":"admin"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing role and a short password are rejected before the service runs
	body = `{"name":"A","email":"a@b.com","password":"x"}`
	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSigninSetsSessionCookie(t *testing.T) {
	t.Parallel()
	router := newAuthTestRouter(t, &stubAuthService{sessionResult: sessionResultFixture()})

	body := `{"email":"u@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "minted-token", "token travels only in the cookie")

	cookie := findCookie(t, w, "sessionToken")
	require.NotNil(t, cookie)
	assert.Equal(t, "minted-token", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, "/", cookie.Path)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.InDelta(t, 7*24*3600, cookie.MaxAge, 60, "cookie lifetime mirrors the session row")
}

func TestSigninBadPasswordIs401WithoutCookie(t *testing.T) {
	t.Parallel()
	router := newAuthTestRouter(t, &stubAuthService{sessionResult: sessionResultFixture()})

	body := `{"email":"u@example.com","password":"wrongwrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signin", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, findCookie(t, w, "sessionToken"))
}

func TestVerifyConsumesTokenAndSignsIn(t *testing.T) {
	t.Parallel()
	router := newAuthTestRouter(t, &stubAuthService{sessionResult: sessionResultFixture()})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify?token=good-token", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, findCookie(t, w, "sessionToken"), "verification signs the user in")

	// missing and invalid tokens are both bad requests
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/verify?token=bad", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutClearsCookie(t *testing.T) {
	t.Parallel()
	svc := &stubAuthService{}
	router := newAuthTestRouter(t, svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "sessionToken", Value: "live-session"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"live-session"}, svc.loggedOut)

	cookie := findCookie(t, w, "sessionToken")
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestMeRequiresLiveSession(t *testing.T) {
	t.Parallel()
	router := newAuthTestRouter(t, &stubAuthService{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "sessionToken", Value: "live-session"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"id":"u1"`)
}
