package repository

import (
	"github.com/sefazor/travelmarket-backend/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func (r *ProfileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	if err := r.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepository) Create(profile *models.Profile) error {
	return r.db.Create(profile).Error
}

func (r *ProfileRepository) Update(profile *models.Profile) error {
	return r.db.Save(profile).Error
}

// SetRole changes the role and, when switching to vendor, makes sure a vendor row exists.
func (r *ProfileRepository) SetRole(profile *models.Profile, role models.Role, vendorName string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		profile.Role = role
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		if role != models.RoleVendor {
			return nil
		}
		vendor := models.Vendor{ProfileID: profile.ID, Name: vendorName, Status: models.VendorStatusPending}
		return tx.Where(models.Vendor{ProfileID: profile.ID}).FirstOrCreate(&vendor).Error
	})
}
