package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
)

type UserHandler struct {
	userService *service.UserService
	validator   *utils.Validator
}

func NewUserHandler(userService *service.UserService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *UserHandler) GetMyProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	profile, err := h.userService.GetProfile(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(profile, ""))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	profile, err := h.userService.UpdateProfile(userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(profile, "Profile updated successfully"))
}

func (h *UserHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	dash, err := h.userService.Dashboard(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(dash, ""))
}
