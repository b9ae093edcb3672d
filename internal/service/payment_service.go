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

type PaymentService struct {
	gateway     PaymentGateway
	stager      CheckoutStager
	userRepo    *repository.UserRepository
	packageRepo *repository.PackageRepository
	bookingRepo *repository.BookingRepository
	mailer      Mailer
	logger      *zap.Logger
}

func NewPaymentService(
	gateway PaymentGateway,
	stager CheckoutStager,
	userRepo *repository.UserRepository,
	packageRepo *repository.PackageRepository,
	bookingRepo *repository.BookingRepository,
	mailer Mailer,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		gateway:     gateway,
		stager:      stager,
		userRepo:    userRepo,
		packageRepo: packageRepo,
		bookingRepo: bookingRepo,
		mailer:      mailer,
		logger:      logger,
	}
}

func packageRedirect(packageID uint) string {
	return fmt.Sprintf("/package/%d", packageID)
}

// StartCheckout opens a payment session and parks its details until the callback.
func (s *PaymentService) StartCheckout(ctx context.Context, userID, packageID uint, travelers int) (*models.CheckoutSession, error) {
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
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, notFound(err, "user")
	}

	session, err := s.gateway.CreateCheckoutSession(ctx, models.CheckoutParams{
		CustomerEmail:     user.Email,
		PackageID:         pkg.ID,
		PackageName:       pkg.Name,
		UnitPrice:         pkg.Price,
		NumberOfTravelers: travelers,
		UserID:            user.ID,
	})
	if err != nil {
		s.logger.Error("checkout session not created", zap.Uint("package_id", pkg.ID), zap.Error(err))
		return nil, &PaymentError{Redirect: packageRedirect(pkg.ID), Err: err}
	}

	staged := models.StagedCheckout{PackageID: pkg.ID, NumberOfTravelers: travelers, SessionID: session.ID}
	if err := s.stager.StageCheckout(ctx, userID, staged); err != nil {
		return nil, fmt.Errorf("stage checkout: %w", err)
	}
	return session, nil
}

// CompleteCheckout turns a paid session into exactly one confirmed booking.
// Provider errors and unpaid sessions leave the stage in place; it is consumed only once the
// session reports paid.
func (s *PaymentService) CompleteCheckout(ctx context.Context, userID uint, sessionID string) (*models.Booking, error) {
	staged, err := s.stager.PeekCheckout(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("read staged checkout: %w", err)
	}
	if staged == nil {
		return nil, validationf("no checkout in progress")
	}
	if sessionID == "" || staged.SessionID != sessionID {
		return nil, validationf("checkout session does not match")
	}

	session, err := s.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		s.logger.Warn("checkout session lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, &PaymentError{Redirect: packageRedirect(staged.PackageID), Err: err}
	}
	if session.Status != models.CheckoutStatusPaid {
		return nil, &PaymentError{
			Redirect: packageRedirect(staged.PackageID),
			Err:      fmt.Errorf("session %s is %q", sessionID, session.Status),
		}
	}

	// Only one concurrent callback gets the stage back from the atomic take.
	taken, err := s.stager.TakeCheckout(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("take staged checkout: %w", err)
	}
	if taken == nil || taken.SessionID != sessionID {
		if taken != nil {
			if err := s.stager.StageCheckout(ctx, userID, *taken); err != nil {
				s.logger.Warn("staged checkout lost", zap.Uint("user_id", userID), zap.Error(err))
			}
		}
		return nil, validationf("checkout already completed")
	}
	staged = taken

	exists, err := s.bookingRepo.ExistsBySessionID(sessionID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, validationf("checkout already completed")
	}

	pkg, err := s.packageRepo.GetByID(staged.PackageID)
	if err != nil {
		return nil, notFound(err, "package")
	}

	booking := &models.Booking{
		UserID:            userID,
		PackageID:         pkg.ID,
		Status:            models.BookingStatusConfirmed,
		NumberOfTravelers: staged.NumberOfTravelers,
		TotalPrice:        models.BookingTotal(pkg.Price, staged.NumberOfTravelers),
		StripeSessionID:   &sessionID,
	}
	if err := s.bookingRepo.Create(booking); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, validationf("checkout already completed")
		}
		if err := s.stager.StageCheckout(ctx, userID, *staged); err != nil {
			s.logger.Warn("staged checkout lost", zap.Uint("user_id", userID), zap.Error(err))
		}
		return nil, err
	}
	booking.Package = pkg

	s.logger.Info("checkout completed", zap.Uint("booking_id", booking.ID), zap.String("session_id", sessionID))
	if user, err := s.userRepo.GetByID(userID); err == nil {
		if err := s.mailer.SendBookingConfirmedEmail(ctx, user.Email, user.FullName(), pkg.Name, booking.ID); err != nil {
			s.logger.Warn("booking confirmation not sent", zap.Uint("booking_id", booking.ID), zap.Error(err))
		}
	}
	return booking, nil
}

func (s *PaymentService) CancelCheckout(ctx context.Context, userID uint) error {
	return s.stager.DiscardCheckout(ctx, userID)
}
