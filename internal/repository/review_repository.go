package repository

import (
	"github.com/sefazor/travelmarket-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(review *models.Review) error {
	return r.db.Omit(clause.Associations).Create(review).Error
}

func (r *ReviewRepository) Exists(userID, packageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND package_id = ?", userID, packageID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepository) ListByPackage(packageID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := r.db.Preload("User").
		Where("package_id = ?", packageID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
