package repository

import (
	"errors"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

func (r *BookingRepository) Create(booking *models.Booking) error {
	return r.db.Omit(clause.Associations).Create(booking).Error
}

func (r *BookingRepository) GetByID(id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := r.db.Preload("Package").First(&booking, id).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

// ErrStatusChanged means the booking left the expected status before the write landed.
var ErrStatusChanged = errors.New("booking status changed concurrently")

// UpdateStatus writes booking.Status only if the row still holds from.
func (r *BookingRepository) UpdateStatus(booking *models.Booking, from models.BookingStatus) error {
	res := r.db.Model(&models.Booking{}).
		Where("id = ? AND status = ?", booking.ID, from).
		Update("status", booking.Status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

func (r *BookingRepository) ListByUser(userID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Package").
		Where("user_id = ?", userID).
		Order("booking_date DESC").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepository) ListByVendor(vendorID uint) ([]models.Booking, error) {
	var bookings []models.Booking
	err := r.db.Preload("Package").Preload("User").
		Joins("JOIN travel_packages ON travel_packages.id = bookings.package_id").
		Where("travel_packages.vendor_id = ?", vendorID).
		Order("bookings.booking_date DESC").
		Find(&bookings).Error
	return bookings, err
}

// VendorRevenue sums the confirmed bookings placed on the vendor's packages.
func (r *BookingRepository) VendorRevenue(vendorID uint) (float64, error) {
	var total float64
	err := r.db.Model(&models.Booking{}).
		Select("COALESCE(SUM(bookings.total_price), 0)").
		Joins("JOIN travel_packages ON travel_packages.id = bookings.package_id").
		Where("travel_packages.vendor_id = ? AND bookings.status = ?", vendorID, models.BookingStatusConfirmed).
		Scan(&total).Error
	return total, err
}

func (r *BookingRepository) ExportRows(vendorID uint) ([]models.BookingExportRow, error) {
	var rows []models.BookingExportRow
	err := r.db.Model(&models.Booking{}).
		Select(`bookings.id AS booking_id,
			travel_packages.name AS package_name,
			users.username AS traveler_username,
			users.email AS traveler_email,
			bookings.status AS status,
			bookings.number_of_travelers AS number_of_travelers,
			bookings.total_price AS total_price,
			bookings.booking_date AS booking_date`).
		Joins("JOIN travel_packages ON travel_packages.id = bookings.package_id").
		Joins("JOIN users ON users.id = bookings.user_id").
		Where("travel_packages.vendor_id = ?", vendorID).
		Order("bookings.id ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *BookingRepository) HasConfirmed(userID, packageID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).
		Where("user_id = ? AND package_id = ? AND status = ?", userID, packageID, models.BookingStatusConfirmed).
		Count(&count).Error
	return count > 0, err
}

func (r *BookingRepository) ExistsBySessionID(sessionID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Where("stripe_session_id = ?", sessionID).Count(&count).Error
	return count > 0, err
}

func (r *BookingRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Booking{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
