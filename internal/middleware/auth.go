// Package middleware provides HTTP middleware for the fiber app.
package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"petquote/internal/models"
	"petquote/internal/services/auth"
	"petquote/internal/utils/response"
)

const ClaimsKey = "claims"

// AuthMiddleware validates operator bearer tokens.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler checks the Authorization header, the token signature and expiry,
// and the operator's current token version, then stores the claims in
// the request locals.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Unauthorized(c, "invalid authorization format")
	}

	claims, err := m.authService.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Debug().Err(err).Msg("token rejected")
		return response.Unauthorized(c, "invalid token")
	}

	if err := m.authService.Verify(c.UserContext(), claims); err != nil {
		if errors.Is(err, auth.ErrSessionExpired) {
			return response.Unauthorized(c, "session expired")
		}
		return response.Unauthorized(c, "invalid token")
	}

	c.Locals(ClaimsKey, claims)
	return c.Next()
}

// HasPermission rejects requests whose claims lack the permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals(ClaimsKey).(*models.OperatorClaims)
		if !ok || claims == nil {
			return response.Unauthorized(c, "invalid claims")
		}
		if !claims.HasPermission(permission) {
			log.Info().Uint("operator_id", claims.OperatorID).Str("permission", permission).Msg("permission denied")
			return response.Forbidden(c, "insufficient permissions")
		}
		return c.Next()
	}
}
