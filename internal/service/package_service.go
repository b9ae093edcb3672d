package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"github.com/sefazor/travelmarket-backend/pkg/storage"
	"github.com/sefazor/travelmarket-backend/pkg/utils"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	MaxImageSize     = 10 << 20
	FeaturedPackages = 6
)

type PackageService struct {
	packageRepo  *repository.PackageRepository
	vendorRepo   *repository.VendorRepository
	reviewRepo   *repository.ReviewRepository
	storage      storage.StorageService
	approvedOnly bool
	logger       *zap.Logger
}

func NewPackageService(
	packageRepo *repository.PackageRepository,
	vendorRepo *repository.VendorRepository,
	reviewRepo *repository.ReviewRepository,
	storage storage.StorageService,
	approvedOnly bool,
	logger *zap.Logger,
) *PackageService {
	return &PackageService{
		packageRepo:  packageRepo,
		vendorRepo:   vendorRepo,
		reviewRepo:   reviewRepo,
		storage:      storage,
		approvedOnly: approvedOnly,
		logger:       logger,
	}
}

func (s *PackageService) Featured() ([]models.TravelPackage, error) {
	return s.packageRepo.Featured(FeaturedPackages, s.approvedOnly)
}

func (s *PackageService) ListPackages(filter models.PackageFilter) ([]models.TravelPackage, error) {
	filter.ApprovedVendorOnly = s.approvedOnly
	return s.packageRepo.List(filter)
}

func (s *PackageService) TravelTypes() ([]string, error) {
	return s.packageRepo.TravelTypes()
}

func (s *PackageService) visible(pkg *models.TravelPackage) bool {
	if !s.approvedOnly {
		return true
	}
	return pkg.Vendor != nil && pkg.Vendor.Status == models.VendorStatusApproved
}

func (s *PackageService) GetPackage(id uint) (*models.PackageDetail, error) {
	pkg, err := s.packageRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "package")
	}
	if !s.visible(pkg) {
		return nil, fmt.Errorf("%w: package", ErrNotFound)
	}

	reviews, err := s.reviewRepo.ListByPackage(id)
	if err != nil {
		return nil, err
	}

	detail := &models.PackageDetail{
		Package:     *pkg,
		Reviews:     reviews,
		ReviewCount: len(reviews),
	}
	if len(reviews) > 0 {
		sum := 0
		for _, r := range reviews {
			sum += r.Rating
		}
		detail.AverageRating = float64(sum) / float64(len(reviews))
	}
	return detail, nil
}

// ComparePackages accepts two or three distinct packages.
func (s *PackageService) ComparePackages(ids []uint) ([]models.TravelPackage, error) {
	seen := make(map[uint]struct{}, len(ids))
	distinct := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		distinct = append(distinct, id)
	}
	if len(distinct) < 2 || len(distinct) > 3 {
		return nil, validationf("select 2 or 3 packages to compare")
	}

	pkgs, err := s.packageRepo.GetByIDs(distinct)
	if err != nil {
		return nil, err
	}
	if len(pkgs) != len(distinct) {
		return nil, fmt.Errorf("%w: package", ErrNotFound)
	}
	return pkgs, nil
}

func (s *PackageService) vendorFor(userID uint) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account has no vendor", ErrForbidden)
	}
	return vendor, err
}

// ownedPackage loads a package and checks that userID's vendor owns it.
func (s *PackageService) ownedPackage(userID, packageID uint) (*models.TravelPackage, error) {
	vendor, err := s.vendorFor(userID)
	if err != nil {
		return nil, err
	}
	pkg, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		return nil, notFound(err, "package")
	}
	if pkg.VendorID != vendor.ID {
		return nil, fmt.Errorf("%w: package belongs to another vendor", ErrForbidden)
	}
	return pkg, nil
}

func (s *PackageService) CreatePackage(userID uint, req models.PackageRequest) (*models.TravelPackage, error) {
	vendor, err := s.vendorFor(userID)
	if err != nil {
		return nil, err
	}

	pkg := &models.TravelPackage{VendorID: vendor.ID}
	if err := applyPackageRequest(pkg, req); err != nil {
		return nil, err
	}
	itinerary, err := itineraryFromRequest(req.Itinerary)
	if err != nil {
		return nil, err
	}
	pkg.Itinerary = itinerary

	pkg.Slug, err = s.freeSlug(models.PackageSlug(strings.TrimSpace(req.Name), vendor.ID))
	if err != nil {
		return nil, err
	}
	if err := s.packageRepo.Create(pkg); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationf("package slug %q is taken, try again", pkg.Slug)
		}
		return nil, err
	}

	s.logger.Info("package created", zap.Uint("package_id", pkg.ID), zap.Uint("vendor_id", vendor.ID))
	return s.packageRepo.GetByID(pkg.ID)
}

func (s *PackageService) UpdatePackage(userID, packageID uint, req models.PackageRequest) (*models.TravelPackage, error) {
	pkg, err := s.ownedPackage(userID, packageID)
	if err != nil {
		return nil, err
	}
	if err := applyPackageRequest(pkg, req); err != nil {
		return nil, err
	}

	// nil keeps the stored itinerary
	var itinerary []models.ItineraryDay
	if req.Itinerary != nil {
		if itinerary, err = itineraryFromRequest(req.Itinerary); err != nil {
			return nil, err
		}
	}
	if err := s.packageRepo.UpdateWithItinerary(pkg, itinerary); err != nil {
		return nil, err
	}
	return s.packageRepo.GetByID(pkg.ID)
}

func (s *PackageService) DeletePackage(ctx context.Context, userID, packageID uint) error {
	if _, err := s.ownedPackage(userID, packageID); err != nil {
		return err
	}

	keys, err := s.packageRepo.ImageKeys(packageID)
	if err != nil {
		return err
	}
	if err := s.packageRepo.Delete(packageID); err != nil {
		return err
	}

	for _, key := range keys {
		if err := s.storage.Delete(ctx, key); err != nil {
			s.logger.Warn("orphaned package image", zap.String("key", key), zap.Error(err))
		}
	}
	s.logger.Info("package deleted", zap.Uint("package_id", packageID))
	return nil
}

func (s *PackageService) ManageItinerary(userID, packageID uint, days []models.ItineraryDayRequest) (*models.TravelPackage, error) {
	if _, err := s.ownedPackage(userID, packageID); err != nil {
		return nil, err
	}
	itinerary, err := itineraryFromRequest(days)
	if err != nil {
		return nil, err
	}
	if err := s.packageRepo.ReplaceItinerary(packageID, itinerary); err != nil {
		return nil, err
	}
	return s.packageRepo.GetByID(packageID)
}

func (s *PackageService) AddImage(ctx context.Context, userID, packageID uint, file *multipart.FileHeader) (*models.PackageImage, error) {
	if _, err := s.ownedPackage(userID, packageID); err != nil {
		return nil, err
	}

	contentType := file.Header.Get("Content-Type")
	if !utils.IsSupportedImage(contentType) {
		return nil, validationf("unsupported image type %q", contentType)
	}
	if file.Size > MaxImageSize {
		return nil, validationf("image is larger than %d MB", MaxImageSize>>20)
	}

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	key := fmt.Sprintf("packages/%d/%d_%s%s", packageID, time.Now().Unix(), utils.GenerateRandomString(12), strings.ToLower(filepath.Ext(file.Filename)))
	if err := s.storage.Upload(ctx, key, src, contentType); err != nil {
		return nil, err
	}

	img := &models.PackageImage{
		PackageID:   packageID,
		ObjectKey:   key,
		URL:         s.storage.PublicURL(key),
		ContentType: contentType,
		FileSize:    file.Size,
	}
	if err := s.packageRepo.AddImage(img); err != nil {
		if delErr := s.storage.Delete(ctx, key); delErr != nil {
			s.logger.Warn("orphaned package image", zap.String("key", key), zap.Error(delErr))
		}
		return nil, err
	}
	return img, nil
}

func (s *PackageService) RemoveImage(ctx context.Context, userID, packageID, imageID uint) error {
	if _, err := s.ownedPackage(userID, packageID); err != nil {
		return err
	}
	img, err := s.packageRepo.GetImage(packageID, imageID)
	if err != nil {
		return notFound(err, "image")
	}
	if err := s.packageRepo.DeleteImage(img.ID); err != nil {
		return err
	}
	if err := s.storage.Delete(ctx, img.ObjectKey); err != nil {
		s.logger.Warn("orphaned package image", zap.String("key", img.ObjectKey), zap.Error(err))
	}
	return nil
}

// freeSlug returns base, or base with the first free numeric suffix. Slugs never change
// after creation, so a renamed package keeps holding its old one.
func (s *PackageService) freeSlug(base string) (string, error) {
	candidate := base
	for n := 2; ; n++ {
		taken, err := s.packageRepo.SlugExists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

func applyPackageRequest(pkg *models.TravelPackage, req models.PackageRequest) error {
	start, err := time.Parse(models.DateLayout, req.StartDate)
	if err != nil {
		return validationf("start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(models.DateLayout, req.EndDate)
	if err != nil {
		return validationf("end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return fmt.Errorf("%w: %v", ErrValidation, models.ErrInvalidDateRange)
	}
	if req.Price <= 0 {
		return validationf("price must be positive")
	}
	if req.DiscountPrice != nil && (*req.DiscountPrice <= 0 || *req.DiscountPrice >= req.Price) {
		return validationf("discount_price must be below price")
	}

	pkg.Name = strings.TrimSpace(req.Name)
	pkg.Description = req.Description
	pkg.Location = req.Location
	pkg.TravelType = req.TravelType
	pkg.Price = req.Price
	pkg.DiscountPrice = req.DiscountPrice
	pkg.StartDate = start
	pkg.EndDate = end
	return nil
}

func itineraryFromRequest(days []models.ItineraryDayRequest) ([]models.ItineraryDay, error) {
	seen := make(map[int]struct{}, len(days))
	out := make([]models.ItineraryDay, 0, len(days))
	for _, d := range days {
		title := strings.TrimSpace(d.Title)
		switch {
		case d.Day < 1:
			return nil, validationf("itinerary day must be at least 1")
		case title == "" || len(title) > 200:
			return nil, validationf("itinerary title must be 1 to 200 characters")
		case strings.TrimSpace(d.Description) == "":
			return nil, validationf("itinerary description is required")
		}
		if _, dup := seen[d.Day]; dup {
			return nil, validationf("itinerary day %d appears twice", d.Day)
		}
		seen[d.Day] = struct{}{}
		out = append(out, models.ItineraryDay{Day: d.Day, Title: title, Description: d.Description})
	}
	return out, nil
}
