package models

import "time"

type VendorStatus string

const (
	VendorStatusPending  VendorStatus = "pending"
	VendorStatusApproved VendorStatus = "approved"
	VendorStatusRejected VendorStatus = "rejected"
)

func (s VendorStatus) Valid() bool {
	switch s {
	case VendorStatusPending, VendorStatusApproved, VendorStatusRejected:
		return true
	}
	return false
}

type Vendor struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	ProfileID   uint         `json:"profile_id" gorm:"uniqueIndex;not null"`
	Name        string       `json:"name" gorm:"not null"`
	Description string       `json:"description"`
	Website     string       `json:"website"`
	Status      VendorStatus `json:"status" gorm:"type:varchar(10);not null;default:'pending'"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`

	Profile *Profile `json:"-" gorm:"foreignKey:ProfileID"`
}

type VendorDashboard struct {
	Vendor         Vendor          `json:"vendor"`
	Packages       []TravelPackage `json:"packages"`
	Bookings       []Booking       `json:"bookings"`
	TotalRevenue   float64         `json:"total_revenue"`
	PendingCount   int             `json:"pending_count"`
	ConfirmedCount int             `json:"confirmed_count"`
}
