package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	jwtPkg "github.com/sefazor/travelmarket-backend/pkg/jwt"
	"go.uber.org/zap"
)

const LoginPath = "/login"

const (
	localUserID = "userID"
	localClaims = "claims"
)

type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

func unauthenticated(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(models.RedirectResponse(msg, LoginPath))
}

func AuthMiddleware(tokens *jwtPkg.Manager, revocations RevocationChecker, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthenticated(c, "Authorization header is required")
		}
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return unauthenticated(c, "Invalid authorization header format")
		}

		claims, err := tokens.ValidateToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return unauthenticated(c, "Invalid token")
		}

		userID, err := claims.UserID()
		if err != nil {
			return unauthenticated(c, "Invalid user ID in token")
		}

		revoked, err := revocations.IsRevoked(c.UserContext(), claims.ID)
		if err != nil {
			logger.Error("revocation lookup failed", zap.Error(err))
			return c.Status(fiber.StatusServiceUnavailable).JSON(models.ErrorResponse("Could not verify session"))
		}
		if revoked {
			return unauthenticated(c, "Session has ended")
		}

		c.Locals(localUserID, userID)
		c.Locals(localClaims, claims)
		return c.Next()
	}
}

// UserID returns the authenticated account id, if any.
func UserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals(localUserID).(uint)
	return id, ok && id != 0
}

func Claims(c *fiber.Ctx) *jwtPkg.Claims {
	claims, _ := c.Locals(localClaims).(*jwtPkg.Claims)
	return claims
}
