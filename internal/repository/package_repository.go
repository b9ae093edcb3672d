package repository

import (
	"strings"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PackageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{db: db}
}

func orderedItinerary(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts the package together with its itinerary rows.
func (r *PackageRepository) Create(pkg *models.TravelPackage) error {
	for i := range pkg.Itinerary {
		pkg.Itinerary[i].Position = i
	}
	return r.db.Omit("Vendor", "Images").Create(pkg).Error
}

func (r *PackageRepository) GetByID(id uint) (*models.TravelPackage, error) {
	var pkg models.TravelPackage
	err := r.db.
		Preload("Vendor").
		Preload("Itinerary", orderedItinerary).
		Preload("Images").
		First(&pkg, id).Error
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *PackageRepository) GetByIDs(ids []uint) ([]models.TravelPackage, error) {
	var pkgs []models.TravelPackage
	err := r.db.
		Preload("Vendor").
		Preload("Itinerary", orderedItinerary).
		Preload("Images").
		Where("id IN ?", ids).
		Order("price ASC").
		Find(&pkgs).Error
	return pkgs, err
}

func (r *PackageRepository) List(filter models.PackageFilter) ([]models.TravelPackage, error) {
	var pkgs []models.TravelPackage
	q := r.db.Model(&models.TravelPackage{}).Preload("Images")

	if filter.ApprovedVendorOnly {
		q = q.Joins("JOIN vendors ON vendors.id = travel_packages.vendor_id").
			Where("vendors.status = ?", models.VendorStatusApproved)
	}
	if filter.Name != "" {
		q = q.Where("LOWER(travel_packages.name) LIKE ?", containsPattern(filter.Name))
	}
	if filter.Location != "" {
		q = q.Where("LOWER(travel_packages.location) LIKE ?", containsPattern(filter.Location))
	}
	if filter.TravelType != "" {
		q = q.Where("travel_packages.travel_type = ?", filter.TravelType)
	}
	if filter.PriceGT != nil {
		q = q.Where("travel_packages.price > ?", *filter.PriceGT)
	}
	if filter.PriceLT != nil {
		q = q.Where("travel_packages.price < ?", *filter.PriceLT)
	}
	if filter.StartDateGT != nil {
		q = q.Where("travel_packages.start_date > ?", models.DateOnly(*filter.StartDateGT))
	}
	if filter.StartDateLT != nil {
		q = q.Where("travel_packages.start_date < ?", models.DateOnly(*filter.StartDateLT))
	}

	err := q.Order("travel_packages.created_at DESC").Order("travel_packages.id DESC").Find(&pkgs).Error
	return pkgs, err
}

// Featured returns the newest packages for the home page.
func (r *PackageRepository) Featured(limit int, approvedOnly bool) ([]models.TravelPackage, error) {
	var pkgs []models.TravelPackage
	q := r.db.Preload("Images")
	if approvedOnly {
		q = q.Joins("JOIN vendors ON vendors.id = travel_packages.vendor_id").
			Where("vendors.status = ?", models.VendorStatusApproved)
	}
	err := q.Order("travel_packages.created_at DESC").Order("travel_packages.id DESC").Limit(limit).Find(&pkgs).Error
	return pkgs, err
}

func (r *PackageRepository) TravelTypes() ([]string, error) {
	var types []string
	err := r.db.Model(&models.TravelPackage{}).
		Where("travel_type <> ''").
		Distinct().
		Order("travel_type ASC").
		Pluck("travel_type", &types).Error
	return types, err
}

func (r *PackageRepository) ListByVendor(vendorID uint) ([]models.TravelPackage, error) {
	var pkgs []models.TravelPackage
	err := r.db.Preload("Images").
		Where("vendor_id = ?", vendorID).
		Order("created_at DESC").
		Find(&pkgs).Error
	return pkgs, err
}

// UpdateWithItinerary saves the package columns and, when days is non-nil, swaps the
// itinerary in the same transaction.
func (r *PackageRepository) UpdateWithItinerary(pkg *models.TravelPackage, days []models.ItineraryDay) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(pkg).Error; err != nil {
			return err
		}
		if days == nil {
			return nil
		}
		return replaceItinerary(tx, pkg.ID, days)
	})
}

// ReplaceItinerary swaps the whole itinerary in one transaction, keeping the given order.
func (r *PackageRepository) ReplaceItinerary(packageID uint, days []models.ItineraryDay) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return replaceItinerary(tx, packageID, days)
	})
}

func replaceItinerary(tx *gorm.DB, packageID uint, days []models.ItineraryDay) error {
	if err := tx.Where("package_id = ?", packageID).Delete(&models.ItineraryDay{}).Error; err != nil {
		return err
	}
	if len(days) == 0 {
		return nil
	}
	for i := range days {
		days[i].ID = 0
		days[i].PackageID = packageID
		days[i].Position = i
	}
	return tx.Create(&days).Error
}

// SlugExists reports whether any package already uses slug.
func (r *PackageRepository) SlugExists(slug string) (bool, error) {
	var n int64
	err := r.db.Model(&models.TravelPackage{}).Where("slug = ?", slug).Count(&n).Error
	return n > 0, err
}

// Delete removes the package and everything that hangs off it.
func (r *PackageRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, dep := range []interface{}{
			&models.ItineraryDay{},
			&models.PackageImage{},
			&models.Booking{},
			&models.Review{},
		} {
			if err := tx.Where("package_id = ?", id).Delete(dep).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.TravelPackage{}, id).Error
	})
}

func (r *PackageRepository) AddImage(img *models.PackageImage) error {
	return r.db.Create(img).Error
}

func (r *PackageRepository) GetImage(packageID, imageID uint) (*models.PackageImage, error) {
	var img models.PackageImage
	if err := r.db.Where("package_id = ?", packageID).First(&img, imageID).Error; err != nil {
		return nil, err
	}
	return &img, nil
}

func (r *PackageRepository) DeleteImage(imageID uint) error {
	return r.db.Delete(&models.PackageImage{}, imageID).Error
}

func (r *PackageRepository) ImageKeys(packageID uint) ([]string, error) {
	var keys []string
	err := r.db.Model(&models.PackageImage{}).Where("package_id = ?", packageID).Pluck("object_key", &keys).Error
	return keys, err
}

func containsPattern(s string) string {
	return "%" + strings.ToLower(strings.TrimSpace(s)) + "%"
}
