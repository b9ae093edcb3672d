package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/middleware"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
)

// respondError maps service errors onto status codes and the response envelope.
func respondError(c *fiber.Ctx, err error) error {
	var payErr *service.PaymentError
	switch {
	case errors.Is(err, errNoUser):
		return c.Status(fiber.StatusUnauthorized).JSON(models.RedirectResponse(err.Error(), middleware.LoginPath))
	case errors.As(err, &payErr):
		return c.Status(fiber.StatusBadGateway).JSON(models.RedirectResponse(err.Error(), payErr.Redirect))
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrInactiveAccount):
		return c.Status(fiber.StatusUnauthorized).JSON(models.ErrorResponse(err.Error()))
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInvalidTransition),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrReviewNotEligible):
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse("Internal server error"))
}

func paramID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

var errNoUser = errors.New("User not authenticated")

func currentUserID(c *fiber.Ctx) (uint, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, errNoUser
	}
	return id, nil
}
