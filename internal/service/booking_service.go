package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const QRCodeSize = 256

type BookingService struct {
	bookingRepo *repository.BookingRepository
	packageRepo *repository.PackageRepository
	vendorRepo  *repository.VendorRepository
	userRepo    *repository.UserRepository
	qr          QRGenerator
	mailer      Mailer
	logger      *zap.Logger
}

func NewBookingService(
	bookingRepo *repository.BookingRepository,
	packageRepo *repository.PackageRepository,
	vendorRepo *repository.VendorRepository,
	userRepo *repository.UserRepository,
	qr QRGenerator,
	mailer Mailer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookingRepo: bookingRepo,
		packageRepo: packageRepo,
		vendorRepo:  vendorRepo,
		userRepo:    userRepo,
		qr:          qr,
		mailer:      mailer,
		logger:      logger,
	}
}

// BookPackage records a pending booking; travelers defaults to one.
func (s *BookingService) BookPackage(userID, packageID uint, travelers int) (*models.Booking, error) {
	if travelers == 0 {
		travelers = 1
	}
	if travelers < 1 {
		return nil, validationf("number of travelers must be at least 1")
	}

	pkg, err := s.packageRepo.GetByID(packageID)
	if err != nil {
		return nil, notFound(err, "package")
	}

	booking := &models.Booking{
		UserID:            userID,
		PackageID:         pkg.ID,
		Status:            models.BookingStatusPending,
		NumberOfTravelers: travelers,
		TotalPrice:        models.BookingTotal(pkg.Price, travelers),
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		return nil, err
	}

	s.logger.Info("booking created", zap.Uint("booking_id", booking.ID), zap.Uint("package_id", pkg.ID))
	booking.Package = pkg
	return booking, nil
}

func (s *BookingService) MyBookings(userID uint) ([]models.Booking, error) {
	return s.bookingRepo.ListByUser(userID)
}

func (s *BookingService) CancelByTraveler(userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another traveler", ErrForbidden)
	}
	if err := s.transition(booking, models.BookingStatusCancelled); err != nil {
		return nil, err
	}
	return booking, nil
}

func (s *BookingService) ConfirmByVendor(ctx context.Context, userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.vendorBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(booking, models.BookingStatusConfirmed); err != nil {
		return nil, err
	}
	s.notifyConfirmed(ctx, booking)
	return booking, nil
}

func (s *BookingService) CancelByVendor(userID, bookingID uint) (*models.Booking, error) {
	booking, err := s.vendorBooking(userID, bookingID)
	if err != nil {
		return nil, err
	}
	if err := s.transition(booking, models.BookingStatusCancelled); err != nil {
		return nil, err
	}
	return booking, nil
}

// BookingQRCode renders the ticket of a confirmed booking for its traveler.
func (s *BookingService) BookingQRCode(userID, bookingID uint) ([]byte, error) {
	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking belongs to another traveler", ErrForbidden)
	}
	if booking.Status != models.BookingStatusConfirmed {
		return nil, validationf("only confirmed bookings have a ticket")
	}
	return s.qr.GenerateBookingQRCode(booking.ID, QRCodeSize)
}

func (s *BookingService) vendorBooking(userID, bookingID uint) (*models.Booking, error) {
	vendor, err := s.vendorRepo.GetByUserID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: account has no vendor", ErrForbidden)
	}
	if err != nil {
		return nil, err
	}

	booking, err := s.bookingRepo.GetByID(bookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if booking.Package == nil || booking.Package.VendorID != vendor.ID {
		return nil, fmt.Errorf("%w: booking is for another vendor's package", ErrForbidden)
	}
	return booking, nil
}

func (s *BookingService) transition(booking *models.Booking, next models.BookingStatus) error {
	prev := booking.Status
	if err := booking.Transition(next); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransition, err)
	}
	if err := s.bookingRepo.UpdateStatus(booking, prev); err != nil {
		booking.Status = prev
		if errors.Is(err, repository.ErrStatusChanged) {
			return fmt.Errorf("%w: booking %d is no longer %s", ErrInvalidTransition, booking.ID, prev)
		}
		return err
	}
	s.logger.Info("booking status changed", zap.Uint("booking_id", booking.ID), zap.String("status", string(next)))
	return nil
}

func (s *BookingService) notifyConfirmed(ctx context.Context, booking *models.Booking) {
	user, err := s.userRepo.GetByID(booking.UserID)
	if err != nil {
		s.logger.Warn("booking confirmation not sent", zap.Uint("booking_id", booking.ID), zap.Error(err))
		return
	}
	name := ""
	if booking.Package != nil {
		name = booking.Package.Name
	}
	if err := s.mailer.SendBookingConfirmedEmail(ctx, user.Email, user.FullName(), name, booking.ID); err != nil {
		s.logger.Warn("booking confirmation not sent", zap.Uint("booking_id", booking.ID), zap.Error(err))
	}
}
