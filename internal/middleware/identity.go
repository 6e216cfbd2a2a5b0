package middleware

import (
	"net/http"
	"strings"

	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// UserIDHeader carries the opaque client identity in both directions.
	UserIDHeader = "X-User-ID"
	userIDKey    = "userID"
	// identities are stored in VARCHAR(36) columns
	maxUserIDLength = 36
)

// UserIdentity copies the client identity from the request header into the
// context. The identity is never authenticated.
func UserIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := strings.TrimSpace(c.GetHeader(UserIDHeader))
		if len(userID) > maxUserIDLength {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeBadRequest, "user identity is too long").WithField(UserIDHeader)
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
			return
		}
		if userID != "" {
			c.Set(userIDKey, userID)
		}
		c.Next()
	}
}

// EnsureUserID issues a fresh identity when the client has none. The identity
// is echoed in the X-User-ID response header for the client to keep.
func EnsureUserID(issue bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" && issue {
			c.Set(userIDKey, uuid.NewString())
		}
		if userID := CurrentUserID(c); userID != "" {
			c.Header(UserIDHeader, userID)
		}
		c.Next()
	}
}

// RequireUserID rejects requests that carry no identity
func RequireUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUserID(c) == "" {
			errorDetail := dto.NewErrorDetail(dto.ErrorCodeMissingIdentity, "user identity is required").WithField(UserIDHeader)
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(errorDetail))
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the client identity, or "" when there is none
func CurrentUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
