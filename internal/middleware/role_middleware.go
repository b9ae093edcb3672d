package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"go.uber.org/zap"
)

type Access int

const (
	AccessGranted Access = iota
	AccessUnauthenticated
	AccessForbidden
)

func (a Access) String() string {
	switch a {
	case AccessGranted:
		return "granted"
	case AccessUnauthenticated:
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

// CheckAccess decides whether user may reach a route open to allowed.
// Superusers pass every gate.
func CheckAccess(user *models.User, profile *models.Profile, allowed models.RoleSet) Access {
	if user == nil || !user.IsActive {
		return AccessUnauthenticated
	}
	if user.IsSuperuser {
		return AccessGranted
	}
	if profile == nil || !allowed.Contains(profile.Role) {
		return AccessForbidden
	}
	return AccessGranted
}

type SubjectLoader interface {
	AccessSubject(userID uint) (*models.User, *models.Profile, error)
}

// RequireRoles must run after AuthMiddleware.
func RequireRoles(subjects SubjectLoader, allowed models.RoleSet, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := UserID(c)
		if !ok {
			return unauthenticated(c, "Login required")
		}

		user, profile, err := subjects.AccessSubject(userID)
		if err != nil && !errors.Is(err, service.ErrNotFound) {
			logger.Error("access lookup failed", zap.Uint("user_id", userID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Could not check permissions"))
		}

		switch CheckAccess(user, profile, allowed) {
		case AccessUnauthenticated:
			return unauthenticated(c, "Login required")
		case AccessForbidden:
			return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse("You do not have permission to access this page"))
		}
		return c.Next()
	}
}
