package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
)

type AdminHandler struct {
	adminService *service.AdminService
	validator    *utils.Validator
}

func NewAdminHandler(adminService *service.AdminService, validator *utils.Validator) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator,
	}
}

// ListVendors accepts an optional ?status=pending|approved|rejected.
func (h *AdminHandler) ListVendors(c *fiber.Ctx) error {
	vendors, err := h.adminService.ListVendors(c.Query("status"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(vendors, ""))
}

func (h *AdminHandler) ApproveVendor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	vendor, err := h.adminService.ApproveVendor(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(vendor, "Vendor approved"))
}

func (h *AdminHandler) RejectVendor(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	vendor, err := h.adminService.RejectVendor(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(vendor, "Vendor rejected"))
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.adminService.ListUsers()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(users, ""))
}

func (h *AdminHandler) ActivateUser(c *fiber.Ctx) error {
	return h.setActive(c, true)
}

func (h *AdminHandler) DeactivateUser(c *fiber.Ctx) error {
	return h.setActive(c, false)
}

func (h *AdminHandler) setActive(c *fiber.Ctx, active bool) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.adminService.SetUserActive(id, active)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "User updated"))
}

func (h *AdminHandler) SetRole(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.SetRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.adminService.SetRole(id, req.Role)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "Role updated"))
}

func (h *AdminHandler) PromoteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.adminService.PromoteUser(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(user, "User promoted to administrator"))
}
