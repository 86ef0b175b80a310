package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"jobforge_backend/internal/apperrors"
	"jobforge_backend/internal/auth"
	"jobforge_backend/internal/logger"
	"jobforge_backend/internal/models"
	"jobforge_backend/internal/repositories"
	"jobforge_backend/pkg/contextkeys"
)

// AuthGate authenticates every request from its Bearer token. Routes on
// the public allow-list pass through anonymously when no valid token is
// present; all other routes answer 401 with the precise failure kind.
func AuthGate(codec *auth.TokenCodec, users repositories.UserRepository, isPublic func(method, routePath string) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		required := !isPublic(c.Request.Method, c.FullPath())
		authenticate(c, codec, users, required)
	}
}

func authenticate(c *gin.Context, codec *auth.TokenCodec, users repositories.UserRepository, required bool) {
	raw := bearerToken(c)
	if raw == "" {
		if required {
			abortUnauthorized(c, apperrors.ErrAuthRequired)
			return
		}
		c.Next()
		return
	}

	claims, err := codec.Verify(raw)
	if err != nil {
		if required {
			abortUnauthorized(c, mapTokenError(err))
			return
		}
		c.Next()
		return
	}
	if !models.ValidRole(models.UserRole(claims.Role)) {
		if required {
			abortUnauthorized(c, apperrors.ErrInvalidUserRole)
			return
		}
		c.Next()
		return
	}

	// The account is re-read on every request so deactivation and role
	// changes take effect before the token expires.
	user, err := users.FindByID(claims.UserID)
	if err != nil {
		if required {
			abortUnauthorized(c, apperrors.ErrTokenRevoked)
			return
		}
		c.Next()
		return
	}
	if user.Deleted {
		if required {
			abortUnauthorized(c, apperrors.ErrAccountDeactivated)
			return
		}
		c.Next()
		return
	}
	if auth.IsRevoked(claims.Issued(), user.SessionInvalidatedAt) {
		if required {
			abortUnauthorized(c, apperrors.ErrTokenRevoked)
			return
		}
		c.Next()
		return
	}

	identity := auth.Identity{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		CompanyID: user.CompanyID,
	}
	c.Set(string(contextkeys.IdentityContextKey), identity)
	ctx := logger.WithUserID(c.Request.Context(), user.ID)
	c.Request = c.Request.WithContext(ctx)
	c.Next()
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return apperrors.ErrTokenExpired
	case errors.Is(err, auth.ErrBadSignature):
		return apperrors.ErrTokenBadSignature
	default:
		return apperrors.ErrTokenMalformed
	}
}

func abortUnauthorized(c *gin.Context, err error) {
	apperrors.HandleError(c, err)
	c.Abort()
}
