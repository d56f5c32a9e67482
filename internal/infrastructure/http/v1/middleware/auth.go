package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"retailcore/internal/core/apperror"
	"retailcore/internal/domain/auth"
	"retailcore/internal/domain/users"
)

const identityKey = "identity"

// TokenValidator validates an access token string.
type TokenValidator interface {
	ValidateToken(tokenString string) (*auth.Identity, error)
}

// Auth middleware validates the bearer token and stores the caller
// identity in the gin context.
func Auth(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing authorization header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			abortUnauthorized(c, "invalid authorization header format")
			return
		}

		identity, err := validator.ValidateToken(parts[1])
		if err != nil {
			abortUnauthorized(c, "invalid token")
			return
		}

		c.Set(identityKey, identity)
		c.Set("user_id", identity.UserID)
		c.Next()
	}
}

// RequireRole checks that the authenticated caller holds one of the
// given roles. Must run after Auth.
func RequireRole(roles ...users.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if identity == nil {
			abortUnauthorized(c, "authentication required")
			return
		}

		for _, required := range roles {
			if identity.Role == required {
				c.Next()
				return
			}
		}

		_ = c.Error(apperror.NewForbidden("insufficient permissions"))
		c.Abort()
	}
}

// GetIdentity returns the authenticated caller, or nil.
func GetIdentity(c *gin.Context) *auth.Identity {
	if v, exists := c.Get(identityKey); exists {
		if identity, ok := v.(*auth.Identity); ok {
			return identity
		}
	}
	return nil
}

func abortUnauthorized(c *gin.Context, message string) {
	_ = c.Error(apperror.NewUnauthorized(message))
	c.Abort()
}
