package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/middleware"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *utils.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *utils.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req models.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.authService.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(user, "Registration successful. Please check your email to verify your account."))
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req models.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	resp, err := h.authService.Login(req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(resp, "Login successful"))
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.UserContext(), middleware.Claims(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Logged out"))
}

func (h *AuthHandler) VerifyEmail(c *fiber.Ctx) error {
	if err := h.authService.VerifyEmail(c.Params("uidb64"), c.Params("token")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Email verified. You can now log in."))
}

func (h *AuthHandler) ResendVerification(c *fiber.Ctx) error {
	var req models.ResendVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.authService.ResendVerification(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "If the account exists, a new verification email is on its way"))
}

func (h *AuthHandler) RequestPasswordReset(c *fiber.Ctx) error {
	var req models.ForgotPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.authService.RequestPasswordReset(c.UserContext(), req.Email); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "If the email exists, a reset link will be sent"))
}

func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var req models.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.authService.ResetPassword(c.Params("uidb64"), c.Params("token"), req.NewPassword); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Password has been reset"))
}
