package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"jobboard.backend/internal/domain/entities"
	"jobboard.backend/internal/interfaces/http/response"
	"jobboard.backend/internal/usecases"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// TokenCookie carries the session token for browser clients
	TokenCookie = "token"
	// CurrentUserKey is the context key for the authorized account
	CurrentUserKey = "currentUser"
)

// Authorizer decides whether a token may perform an operation
type Authorizer interface {
	Authorize(ctx context.Context, token string, policy usecases.Policy) (*entities.User, error)
}

// RequireAuth runs the gate with policy and stores the authorized account in the context
func RequireAuth(gate Authorizer, policy usecases.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := gate.Authorize(c.Request.Context(), extractToken(c), policy)
		if err != nil {
			response.Abort(c, err)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// extractToken prefers the Authorization header and falls back to the session cookie
func extractToken(c *gin.Context) string {
	if header := c.GetHeader(AuthorizationHeader); header != "" {
		if len(header) > len(BearerPrefix) && strings.EqualFold(header[:len(BearerPrefix)], BearerPrefix) {
			return strings.TrimSpace(header[len(BearerPrefix):])
		}
		return ""
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie
	}
	return ""
}

// CurrentUser gets the authorized account from context
func CurrentUser(c *gin.Context) (*entities.User, bool) {
	val, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := val.(*entities.User)
	return user, ok && user != nil
}

// GetUserID gets the authorized user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	return user.ID, true
}
