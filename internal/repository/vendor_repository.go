package repository

import (
	"github.com/sefazor/travelmarket-backend/internal/models"
	"gorm.io/gorm"
)

type VendorRepository struct {
	db *gorm.DB
}

func NewVendorRepository(db *gorm.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

func (r *VendorRepository) GetByID(id uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.First(&vendor, id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *VendorRepository) GetByProfileID(profileID uint) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.Where("profile_id = ?", profileID).First(&vendor).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// GetByUserID resolves the vendor owned by an account through its profile.
func (r *VendorRepository) GetByUserID(userID uint) (*models.Vendor, error) {
	var vendor models.Vendor
	err := r.db.Joins("JOIN profiles ON profiles.id = vendors.profile_id").
		Where("profiles.user_id = ?", userID).
		First(&vendor).Error
	if err != nil {
		return nil, err
	}
	return &vendor, nil
}

func (r *VendorRepository) Update(vendor *models.Vendor) error {
	return r.db.Omit("Profile").Save(vendor).Error
}

func (r *VendorRepository) SetStatus(id uint, status models.VendorStatus) error {
	return r.db.Model(&models.Vendor{}).Where("id = ?", id).Update("status", status).Error
}

// List returns every vendor, or only those in status when it is set.
func (r *VendorRepository) List(status models.VendorStatus) ([]models.Vendor, error) {
	var vendors []models.Vendor
	q := r.db.Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	err := q.Find(&vendors).Error
	return vendors, err
}
