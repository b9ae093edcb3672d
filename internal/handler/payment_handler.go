package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
)

type PaymentHandler struct {
	paymentService *service.PaymentService
	validator      *utils.Validator
}

func NewPaymentHandler(paymentService *service.PaymentService, validator *utils.Validator) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
		validator:      validator,
	}
}

func (h *PaymentHandler) CreateCheckoutSession(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.CreateCheckoutSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	session, err := h.paymentService.StartCheckout(c.UserContext(), userID, packageID, req.NumberOfTravelers)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(session, "Checkout session created"))
}

func (h *PaymentHandler) CheckoutSuccess(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	sessionID := c.Query("session_id")
	if sessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Missing session_id"))
	}

	booking, err := h.paymentService.CompleteCheckout(c.UserContext(), userID, sessionID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(booking, "Payment received, booking confirmed"))
}

func (h *PaymentHandler) CheckoutCancel(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := h.paymentService.CancelCheckout(c.UserContext(), userID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Checkout cancelled"))
}
