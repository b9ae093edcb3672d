package repository

import (
	"github.com/sefazor/travelmarket-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateAccount stores the user, its profile and, for vendors, the vendor row together.
func (r *UserRepository) CreateAccount(user *models.User, profile *models.Profile, vendor *models.Vendor) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.ID
		if err := tx.Create(profile).Error; err != nil {
			return err
		}
		if vendor != nil {
			vendor.ProfileID = profile.ID
			if err := tx.Create(vendor).Error; err != nil {
				return err
			}
		}
		user.Profile = profile
		return nil
	})
}

func (r *UserRepository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Profile").First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Preload("Profile").Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

// EmailExists ignores the user with excludeID so a profile update can keep its own address.
func (r *UserRepository) EmailExists(email string, excludeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).
		Where("LOWER(email) = LOWER(?) AND id <> ?", email, excludeID).
		Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) Update(user *models.User) error {
	return r.db.Omit(clause.Associations).Save(user).Error
}

func (r *UserRepository) UpdatePassword(userID uint, hash string) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("password", hash).Error
}

func (r *UserRepository) SetActive(userID uint, active bool) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).Update("is_active", active).Error
}

// SaveWithProfile writes the user and its profile in one transaction.
func (r *UserRepository) SaveWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(profile).Error; err != nil {
			return err
		}
		return tx.Omit(clause.Associations).Save(user).Error
	})
}

func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	err := r.db.Preload("Profile").Order("id ASC").Find(&users).Error
	return users, err
}
