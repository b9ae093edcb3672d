package models

import (
	"fmt"
	"math"
	"time"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions lists the allowed moves. Cancelled has no way out.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCancelled},
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Booking struct {
	ID                uint          `json:"id" gorm:"primaryKey"`
	UserID            uint          `json:"user_id" gorm:"index;not null"`
	PackageID         uint          `json:"package_id" gorm:"index;not null"`
	Status            BookingStatus `json:"status" gorm:"type:varchar(10);not null;default:'pending'"`
	NumberOfTravelers int           `json:"number_of_travelers" gorm:"not null;default:1"`
	TotalPrice        float64       `json:"total_price" gorm:"not null"`
	StripeSessionID   *string       `json:"-" gorm:"uniqueIndex"`
	BookingDate       time.Time     `json:"booking_date" gorm:"autoCreateTime"`
	UpdatedAt         time.Time     `json:"updated_at"`

	User    *User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Package *TravelPackage `json:"package,omitempty" gorm:"foreignKey:PackageID"`
}

// Transition moves the booking to next or reports why it cannot.
func (b *Booking) Transition(next BookingStatus) error {
	if !b.Status.CanTransitionTo(next) {
		return fmt.Errorf("booking %d cannot go from %s to %s", b.ID, b.Status, next)
	}
	b.Status = next
	return nil
}

// BookingTotal is price × travelers rounded to cents.
func BookingTotal(price float64, travelers int) float64 {
	return math.Round(price*float64(travelers)*100) / 100
}

// StagedCheckout is what a traveler parks before being sent to the payment page.
type StagedCheckout struct {
	PackageID         uint   `json:"package_id"`
	NumberOfTravelers int    `json:"number_of_travelers"`
	SessionID         string `json:"session_id"`
}

type BookingExportRow struct {
	BookingID         uint
	PackageName       string
	TravelerUsername  string
	TravelerEmail     string
	Status            BookingStatus
	NumberOfTravelers int
	TotalPrice        float64
	BookingDate       time.Time
}
