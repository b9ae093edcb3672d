package payment

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
)

type StripeService struct {
	currency   string
	successURL string
	cancelURL  string
}

func NewStripeService(secretKey, currency, successURL, cancelURL string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		currency:   currency,
		successURL: successURL,
		cancelURL:  cancelURL,
	}
}

func (s *StripeService) CreateCheckoutSession(ctx context.Context, p models.CheckoutParams) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		CustomerEmail: stripe.String(p.CustomerEmail),
		PaymentMethodTypes: stripe.StringSlice([]string{
			"card",
		}),
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(s.currency),
					UnitAmount: stripe.Int64(toMinorUnits(p.UnitPrice)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(p.PackageName),
					},
				},
				Quantity: stripe.Int64(int64(p.NumberOfTravelers)),
			},
		},
		SuccessURL: stripe.String(s.successURL),
		CancelURL:  stripe.String(s.cancelURL),
	}
	params.Context = ctx

	params.AddMetadata("user_id", strconv.FormatUint(uint64(p.UserID), 10))
	params.AddMetadata("package_id", strconv.FormatUint(uint64(p.PackageID), 10))
	params.AddMetadata("number_of_travelers", strconv.Itoa(p.NumberOfTravelers))

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}

	return &models.CheckoutSession{
		ID:     sess.ID,
		URL:    sess.URL,
		Status: string(sess.PaymentStatus),
	}, nil
}

func (s *StripeService) GetCheckoutSession(ctx context.Context, sessionID string) (*models.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe get session: %w", err)
	}

	return &models.CheckoutSession{
		ID:     sess.ID,
		URL:    sess.URL,
		Status: string(sess.PaymentStatus),
	}, nil
}

// toMinorUnits converts an amount to cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
