package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"kairo_backend/internal/auth"
	"kairo_backend/internal/logger"
	"kairo_backend/internal/models"
	"kairo_backend/internal/services"
	"kairo_backend/pkg/apperrors"
	"kairo_backend/pkg/contextkeys"
)

const (
	ContextUserIDKey    = "userID"
	ContextRoleKey      = "role"
	ContextCompanyIDKey = "companyID"
)

// SessionGate authenticates a request by its session cookie. The token is
// checked against the sessions table including expiry; anything short of a
// valid, live session gets a uniform 401.
func SessionGate(resolver services.SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication required"))
			c.Abort()
			return
		}

		db := dbFromContext(c)
		principal, err := resolver.Resolve(db, token)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, principal.UserID)
		c.Set(ContextRoleKey, principal.Role)
		c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), principal.UserID))
		c.Next()
	}
}

// RequireRole allows the request through only when the session belongs to
// one of the given roles.
func RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	roleSet := make(map[models.UserRole]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}

	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Access denied"}})
			return
		}
		role, ok := roleVal.(models.UserRole)
		if !ok {
			if roleStr, isString := roleVal.(string); isString {
				role = models.UserRole(roleStr)
			} else {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Access denied"}})
				return
			}
		}
		if !roleSet[role] {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "Access denied"}})
			return
		}
		c.Next()
	}
}

// CompanyGate authenticates company console requests by bearer JWT.
func CompanyGate(tokens *auth.CompanyTokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authorization header missing or invalid"))
			c.Abort()
			return
		}

		claims, err := tokens.Parse(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextCompanyIDKey, claims.CompanyID)
		c.Next()
	}
}

// OptionalSession attaches a principal when a valid cookie is present but
// never rejects. Public listings use it to mark postings already applied to.
func OptionalSession(resolver services.SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			if principal, err := resolver.Resolve(dbFromContext(c), token); err == nil {
				c.Set(ContextUserIDKey, principal.UserID)
				c.Set(ContextRoleKey, principal.Role)
				c.Request = c.Request.WithContext(logger.WithUserID(c.Request.Context(), principal.UserID))
			}
		}
		c.Next()
	}
}

func GetUserID(c *gin.Context) string {
	if id, ok := c.Get(ContextUserIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func GetCompanyID(c *gin.Context) string {
	if id, ok := c.Get(ContextCompanyIDKey); ok {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}

func dbFromContext(c *gin.Context) *gorm.DB {
	if val, ok := c.Get(string(contextkeys.DBContextKey)); ok {
		if db, ok := val.(*gorm.DB); ok {
			return db
		}
	}
	return nil
}
