package service

import (
	"errors"
	"fmt"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"github.com/sefazor/travelmarket-backend/pkg/report"
	"gorm.io/gorm"
)

type VendorService struct {
	vendorRepo  *repository.VendorRepository
	packageRepo *repository.PackageRepository
	bookingRepo *repository.BookingRepository
}

func NewVendorService(
	vendorRepo *repository.VendorRepository,
	packageRepo *repository.PackageRepository,
	bookingRepo *repository.BookingRepository,
) *VendorService {
	return &VendorService{
		vendorRepo:  vendorRepo,
		packageRepo: packageRepo,
		bookingRepo: bookingRepo,
	}
}

func (s *VendorService) vendorFor(userID uint) (*models.Vendor, error) {
	vendor, err := s.vendorRepo.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account has no vendor", ErrForbidden)
	}
	return vendor, err
}

func (s *VendorService) Dashboard(userID uint) (*models.VendorDashboard, error) {
	vendor, err := s.vendorFor(userID)
	if err != nil {
		return nil, err
	}

	packages, err := s.packageRepo.ListByVendor(vendor.ID)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookingRepo.ListByVendor(vendor.ID)
	if err != nil {
		return nil, err
	}
	revenue, err := s.bookingRepo.VendorRevenue(vendor.ID)
	if err != nil {
		return nil, err
	}

	dash := &models.VendorDashboard{
		Vendor:       *vendor,
		Packages:     packages,
		Bookings:     bookings,
		TotalRevenue: revenue,
	}
	for _, b := range bookings {
		switch b.Status {
		case models.BookingStatusPending:
			dash.PendingCount++
		case models.BookingStatusConfirmed:
			dash.ConfirmedCount++
		}
	}
	return dash, nil
}

// ExportBookings returns the vendor's bookings as an xlsx workbook.
func (s *VendorService) ExportBookings(userID uint) ([]byte, error) {
	vendor, err := s.vendorFor(userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.bookingRepo.ExportRows(vendor.ID)
	if err != nil {
		return nil, err
	}
	return report.BookingsWorkbook(rows)
}
