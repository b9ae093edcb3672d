package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/service"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
)

type PackageHandler struct {
	packageService *service.PackageService
	validator      *utils.Validator
}

func NewPackageHandler(packageService *service.PackageService, validator *utils.Validator) *PackageHandler {
	return &PackageHandler{
		packageService: packageService,
		validator:      validator,
	}
}

func (h *PackageHandler) Featured(c *fiber.Ctx) error {
	packages, err := h.packageService.Featured()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(packages, ""))
}

func (h *PackageHandler) ListPackages(c *fiber.Ctx) error {
	filter, err := parsePackageFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	packages, err := h.packageService.ListPackages(filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(packages, ""))
}

func (h *PackageHandler) TravelTypes(c *fiber.Ctx) error {
	types, err := h.packageService.TravelTypes()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(types, ""))
}

func (h *PackageHandler) GetPackage(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse("Package not found"))
	}

	detail, err := h.packageService.GetPackage(id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(detail, ""))
}

func (h *PackageHandler) ComparePackages(c *fiber.Ctx) error {
	var ids []uint
	for _, part := range strings.Split(c.Query("ids"), ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 32)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(fmt.Sprintf("invalid package id %q", part)))
		}
		ids = append(ids, uint(id))
	}

	packages, err := h.packageService.ComparePackages(ids)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(packages, ""))
}

func (h *PackageHandler) CreatePackage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}

	var req models.PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	pkg, err := h.packageService.CreatePackage(userID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(pkg, "Package created successfully"))
}

func (h *PackageHandler) UpdatePackage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.PackageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	pkg, err := h.packageService.UpdatePackage(userID, packageID, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(pkg, "Package updated successfully"))
}

func (h *PackageHandler) DeletePackage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.packageService.DeletePackage(c.UserContext(), userID, packageID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Package deleted successfully"))
}

func (h *PackageHandler) ManageItinerary(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.ItineraryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	pkg, err := h.packageService.ManageItinerary(userID, packageID, req.Days)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(pkg, "Itinerary updated"))
}

func (h *PackageHandler) AddImage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("No image provided"))
	}

	image, err := h.packageService.AddImage(c.UserContext(), userID, packageID, file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(image, "Image uploaded successfully"))
}

func (h *PackageHandler) RemoveImage(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return respondError(c, err)
	}
	packageID, err := paramID(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	imageID, err := paramID(c, "imageId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.packageService.RemoveImage(c.UserContext(), userID, packageID, imageID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(models.SuccessResponse(nil, "Image deleted successfully"))
}

func parsePackageFilter(c *fiber.Ctx) (models.PackageFilter, error) {
	filter := models.PackageFilter{
		Name:       strings.TrimSpace(c.Query("name")),
		Location:   strings.TrimSpace(c.Query("location")),
		TravelType: strings.TrimSpace(c.Query("travel_type")),
	}

	var err error
	if filter.PriceGT, err = queryFloat(c, "price_gt"); err != nil {
		return filter, err
	}
	if filter.PriceLT, err = queryFloat(c, "price_lt"); err != nil {
		return filter, err
	}
	if filter.StartDateGT, err = queryDate(c, "start_date_gt"); err != nil {
		return filter, err
	}
	if filter.StartDateLT, err = queryDate(c, "start_date_lt"); err != nil {
		return filter, err
	}
	return filter, nil
}

func queryFloat(c *fiber.Ctx, key string) (*float64, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &v, nil
}

func queryDate(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s, expected %s", key, models.DateLayout)
	}
	return &t, nil
}
