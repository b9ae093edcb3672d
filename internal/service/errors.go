package service

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidTransition  = errors.New("invalid booking status change")
	ErrDuplicateReview    = errors.New("you have already reviewed this package")
	ErrReviewNotEligible  = errors.New("you can only review packages you have completed")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactiveAccount    = errors.New("account is not active")
	ErrPaymentFailed      = errors.New("payment failed")
)

// PaymentError carries where the client should go after a failed payment.
type PaymentError struct {
	Redirect string
	Err      error
}

func (e *PaymentError) Error() string {
	return fmt.Sprintf("%s: %v", ErrPaymentFailed, e.Err)
}

func (e *PaymentError) Unwrap() []error {
	return []error{ErrPaymentFailed, e.Err}
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// notFound maps gorm's missing-row error onto ErrNotFound and passes anything else through.
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return err
}
