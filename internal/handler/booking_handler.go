package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
)

type BookingHandler struct {
	bookingService *service.BookingService
	reviewService  *service.ReviewService
	validator      *utils.Validator
}

func NewBookingHandler(bookingService *service.BookingService, reviewService *service.ReviewService, validator *utils.Validator) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		reviewService:  reviewService,
		validator:      validator,
	}
}

func (h *BookingHandler) BookPackage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	// An empty body books for a single traveler.
	var req models.BookRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
		}
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	booking, err := h.bookingService.BookPackage(userID, packageID, req.NumberOfTravelers)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(booking, "Booking created"))
}

func (h *BookingHandler) MyBookings(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	bookings, err := h.bookingService.MyBookings(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(bookings, ""))
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	booking, err := h.bookingService.CancelByTraveler(userID, bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(booking, "Booking cancelled"))
}

func (h *BookingHandler) BookingQRCode(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	png, err := h.bookingService.BookingQRCode(userID, bookingID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

func (h *BookingHandler) AddReview(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	review, err := h.reviewService.AddReview(userID, packageID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(review, "Review added"))
}
