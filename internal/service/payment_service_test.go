package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/sefazor/travelmarket-backend/internal/repository"
	"github.com/sefazor/travelmarket-backend/internal/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type PaymentServiceSuite struct {
	suite.Suite
	db       *gorm.DB
	svc      *PaymentService
	stager   *memoryStager
	gateway  *fakeGateway
	mailer   *fakeMailer
	traveler *models.User
	pkg      *models.TravelPackage
	status   string
	getErr   error
}

func (s *PaymentServiceSuite) SetupTest() {
	t := s.T()
	s.db = testutil.NewDB(t)
	s.stager = newMemoryStager()
	s.mailer = &fakeMailer{}
	s.status = models.CheckoutStatusPaid
	s.getErr = nil
	s.gateway = &fakeGateway{
		CreateFn: func(_ context.Context, p models.CheckoutParams) (*models.CheckoutSession, error) {
			return &models.CheckoutSession{ID: "cs_test_1", URL: "https://pay.test/cs_test_1", Status: "unpaid"}, nil
		},
		GetFn: func(_ context.Context, id string) (*models.CheckoutSession, error) {
			if s.getErr != nil {
				return nil, s.getErr
			}
			return &models.CheckoutSession{ID: id, Status: s.status}, nil
		},
	}
	s.svc = NewPaymentService(
		s.gateway,
		s.stager,
		repository.NewUserRepository(s.db),
		repository.NewPackageRepository(s.db),
		repository.NewBookingRepository(s.db),
		s.mailer,
		zap.NewNop(),
	)

	_, v := testutil.CreateVendor(t, s.db, "acme", models.VendorStatusApproved)
	s.traveler = testutil.CreateUser(t, s.db, "ana", models.RoleTraveler)
	s.pkg = testutil.CreatePackage(t, s.db, v.ID, "Alps", 499.99, "2024-10-01", "2024-10-14")
}

func (s *PaymentServiceSuite) bookingCount() int64 {
	var n int64
	s.Require().NoError(s.db.Model(&models.Booking{}).Count(&n).Error)
	return n
}

func (s *PaymentServiceSuite) TestStartCheckout_StagesSession() {
	var got models.CheckoutParams
	s.gateway.CreateFn = func(_ context.Context, p models.CheckoutParams) (*models.CheckoutSession, error) {
		got = p
		return &models.CheckoutSession{ID: "cs_test_1", URL: "https://pay.test"}, nil
	}

	session, err := s.svc.StartCheckout(context.Background(), s.traveler.ID, s.pkg.ID, 2)
	s.Require().NoError(err)
	s.Equal("cs_test_1", session.ID)
	s.Equal(2, got.NumberOfTravelers)
	s.Equal(499.99, got.UnitPrice)
	s.Equal("ana@example.com", got.CustomerEmail)

	staged := s.stager.slots[s.traveler.ID]
	s.Equal(models.StagedCheckout{PackageID: s.pkg.ID, NumberOfTravelers: 2, SessionID: "cs_test_1"}, staged)
}

func (s *PaymentServiceSuite) TestStartCheckout_ProviderErrorStagesNothing() {
	s.gateway.CreateFn = func(context.Context, models.CheckoutParams) (*models.CheckoutSession, error) {
		return nil, errors.New("card network down")
	}

	_, err := s.svc.StartCheckout(context.Background(), s.traveler.ID, s.pkg.ID, 1)
	s.ErrorIs(err, ErrPaymentFailed)

	var perr *PaymentError
	s.Require().ErrorAs(err, &perr)
	s.Equal(fmt.Sprintf("/package/%d", s.pkg.ID), perr.Redirect)
	s.Empty(s.stager.slots)
}

func (s *PaymentServiceSuite) TestCompleteCheckout_CreatesExactlyOneBooking() {
	ctx := context.Background()
	_, err := s.svc.StartCheckout(ctx, s.traveler.ID, s.pkg.ID, 2)
	s.Require().NoError(err)

	booking, err := s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.Require().NoError(err)
	s.Equal(models.BookingStatusConfirmed, booking.Status)
	s.Equal(999.98, booking.TotalPrice)
	s.Equal("booking", s.mailer.last(s.T()).Kind)

	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.ErrorIs(err, ErrValidation)
	s.Equal(int64(1), s.bookingCount())
}

func (s *PaymentServiceSuite) TestCompleteCheckout_NothingStaged() {
	_, err := s.svc.CompleteCheckout(context.Background(), s.traveler.ID, "cs_test_1")
	s.ErrorIs(err, ErrValidation)
	s.Zero(s.bookingCount())
}

func (s *PaymentServiceSuite) TestCompleteCheckout_Unpaid() {
	ctx := context.Background()
	_, err := s.svc.StartCheckout(ctx, s.traveler.ID, s.pkg.ID, 1)
	s.Require().NoError(err)
	s.status = "unpaid"

	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.ErrorIs(err, ErrPaymentFailed)
	s.Zero(s.bookingCount())
}

func (s *PaymentServiceSuite) TestCompleteCheckout_RetryAfterProviderError() {
	ctx := context.Background()
	_, err := s.svc.StartCheckout(ctx, s.traveler.ID, s.pkg.ID, 2)
	s.Require().NoError(err)

	s.getErr = errors.New("stripe timeout")
	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.ErrorIs(err, ErrPaymentFailed)
	s.Zero(s.bookingCount())

	s.getErr = nil
	booking, err := s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.Require().NoError(err)
	s.Equal(2, booking.NumberOfTravelers)
	s.Equal(int64(1), s.bookingCount())

	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.ErrorIs(err, ErrValidation)
	s.Equal(int64(1), s.bookingCount())
}

func (s *PaymentServiceSuite) TestCompleteCheckout_RetryAfterUnpaid() {
	ctx := context.Background()
	_, err := s.svc.StartCheckout(ctx, s.traveler.ID, s.pkg.ID, 1)
	s.Require().NoError(err)

	s.status = "unpaid"
	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.ErrorIs(err, ErrPaymentFailed)

	s.status = models.CheckoutStatusPaid
	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.NoError(err)
	s.Equal(int64(1), s.bookingCount())
}

func (s *PaymentServiceSuite) TestCompleteCheckout_SessionMismatchKeepsStage() {
	ctx := context.Background()
	_, err := s.svc.StartCheckout(ctx, s.traveler.ID, s.pkg.ID, 1)
	s.Require().NoError(err)

	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_forged")
	s.ErrorIs(err, ErrValidation)
	s.Zero(s.bookingCount())

	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.NoError(err)
	s.Equal(int64(1), s.bookingCount())
}

func (s *PaymentServiceSuite) TestCancelCheckout_DiscardsStage() {
	ctx := context.Background()
	_, err := s.svc.StartCheckout(ctx, s.traveler.ID, s.pkg.ID, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.svc.CancelCheckout(ctx, s.traveler.ID))
	_, err = s.svc.CompleteCheckout(ctx, s.traveler.ID, "cs_test_1")
	s.ErrorIs(err, ErrValidation)
}

func TestPaymentServiceSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceSuite))
}
