package handler

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type VendorHandler struct {
	vendorService  *service.VendorService
	bookingService *service.BookingService
}

func NewVendorHandler(vendorService *service.VendorService, bookingService *service.BookingService) *VendorHandler {
	return &VendorHandler{
		vendorService:  vendorService,
		bookingService: bookingService,
	}
}

func (h *VendorHandler) Dashboard(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	dash, err := h.vendorService.Dashboard(userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(dash, ""))
}

func (h *VendorHandler) ExportBookings(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.vendorService.ExportBookings(userID)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="bookings-%s.xlsx"`, time.Now().Format(models.DateLayout)))
	return c.Send(data)
}

func (h *VendorHandler) ConfirmBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	booking, err := h.bookingService.ConfirmByVendor(c.UserContext(), userID, bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(booking, "Booking confirmed"))
}

func (h *VendorHandler) CancelBooking(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	bookingID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	booking, err := h.bookingService.CancelByVendor(userID, bookingID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(booking, "Booking cancelled"))
}
