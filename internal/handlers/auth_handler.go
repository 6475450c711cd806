package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"kairo_backend/internal/config"
	"kairo_backend/internal/middleware"
	"kairo_backend/internal/services"
	"kairo_backend/internal/services/dto"
	"kairo_backend/pkg/apperrors"
)

type AuthHandler struct {
	*BaseHandler
	authService services.AuthService
	resolver    services.SessionResolver
	sessionCfg  config.SessionConfig
}

func NewAuthHandler(base *BaseHandler, authService services.AuthService, resolver services.SessionResolver, sessionCfg config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		BaseHandler: base,
		authService: authService,
		resolver:    resolver,
		sessionCfg:  sessionCfg,
	}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/signin", h.Signin)
		auth.GET("/verify", h.Verify)
		auth.POST("/resend-verification", h.ResendVerification)
		auth.POST("/logout", h.Logout)
	}

	me := rg.Group("")
	me.Use(middleware.SessionGate(h.resolver, h.sessionCfg.CookieName))
	{
		me.GET("/auth/me", h.Me)
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	resp, err := h.authService.Signup(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req dto.SigninRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	result, err := h.authService.Signin(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result)
	c.JSON(http.StatusOK, result)
}

// Verify consumes an emailed token and signs the user in directly.
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing verification token"))
		return
	}

	result, err := h.authService.VerifyEmail(h.GetDB(c), token)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.setSessionCookie(c, result)
	c.JSON(http.StatusOK, result)
}

func (h *AuthHandler) ResendVerification(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	if err := h.authService.ResendVerification(h.GetDB(c), req.Email); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the address is registered, a verification email has been sent."})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, _ := c.Cookie(h.sessionCfg.CookieName)
	if err := h.authService.Logout(h.GetDB(c), token); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	h.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Signed out"})
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// setSessionCookie mirrors the Session row: same token, same lifetime.
func (h *AuthHandler) setSessionCookie(c *gin.Context, result *dto.SessionResult) {
	c.SetSameSite(http.SameSiteLaxMode)
	maxAge := int(time.Until(result.ExpiresAt).Seconds())
	c.SetCookie(h.sessionCfg.CookieName, result.Token, maxAge, "/", "", h.sessionCfg.CookieSecure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.sessionCfg.CookieName, "", -1, "/", "", h.sessionCfg.CookieSecure, true)
}
