package service

import (
	"context"
	"time"

	"github.com/sefazor/travelmarket-backend/internal/models"
)

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, p models.CheckoutParams) (*models.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error)
}

// CheckoutStager parks a checkout between the redirect to the payment page and its callback.
type CheckoutStager interface {
	StageCheckout(ctx context.Context, userID uint, staged models.StagedCheckout) error
	PeekCheckout(ctx context.Context, userID uint) (*models.StagedCheckout, error)
	TakeCheckout(ctx context.Context, userID uint) (*models.StagedCheckout, error)
	DiscardCheckout(ctx context.Context, userID uint) error
}

type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, until time.Time) error
}

type Mailer interface {
	SendVerificationEmail(ctx context.Context, to, fullName, uidb64, token string) error
	SendPasswordResetEmail(ctx context.Context, to, uidb64, token string) error
	SendBookingConfirmedEmail(ctx context.Context, to, fullName, packageName string, bookingID uint) error
}

type QRGenerator interface {
	GenerateBookingQRCode(bookingID uint, size int) ([]byte, error)
}
