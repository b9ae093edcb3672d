package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

const DateLayout = "2006-01-02"

var ErrInvalidDateRange = errors.New("end date must not be before start date")

type TravelPackage struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	VendorID      uint      `json:"vendor_id" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Slug          string    `json:"slug" gorm:"uniqueIndex;not null"`
	Description   string    `json:"description"`
	Location      string    `json:"location"`
	TravelType    string    `json:"travel_type" gorm:"index"`
	Price         float64   `json:"price" gorm:"not null"`
	DiscountPrice *float64  `json:"discount_price,omitempty"`
	StartDate     time.Time `json:"start_date" gorm:"type:date;not null"`
	EndDate       time.Time `json:"end_date" gorm:"type:date;not null"`
	DurationDays  int       `json:"duration_days" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Vendor    *Vendor        `json:"vendor,omitempty" gorm:"foreignKey:VendorID"`
	Itinerary []ItineraryDay `json:"itinerary" gorm:"foreignKey:PackageID"`
	Images    []PackageImage `json:"images" gorm:"foreignKey:PackageID"`
}

// ItineraryDay is one ordered entry of a package itinerary.
type ItineraryDay struct {
	ID          uint   `json:"-" gorm:"primaryKey"`
	PackageID   uint   `json:"-" gorm:"index;not null"`
	Position    int    `json:"-" gorm:"not null"`
	Day         int    `json:"day" gorm:"not null"`
	Title       string `json:"title" gorm:"type:varchar(200);not null"`
	Description string `json:"description" gorm:"not null"`
}

type PackageImage struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	PackageID   uint      `json:"package_id" gorm:"index;not null"`
	ObjectKey   string    `json:"-" gorm:"not null"`
	URL         string    `json:"url" gorm:"not null"`
	ContentType string    `json:"content_type"`
	FileSize    int64     `json:"file_size"`
	CreatedAt   time.Time `json:"created_at"`
}

// DateOnly drops the clock part so that date arithmetic is done on whole days.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DurationDays counts both the first and the last day.
func DurationDays(start, end time.Time) int {
	return int(DateOnly(end).Sub(DateOnly(start)).Hours()/24) + 1
}

// PackageSlug is derived from the name and owning vendor only.
func PackageSlug(name string, vendorID uint) string {
	return slug.Make(fmt.Sprintf("%s %d", name, vendorID))
}

func (p *TravelPackage) BeforeSave(tx *gorm.DB) error {
	p.StartDate = DateOnly(p.StartDate)
	p.EndDate = DateOnly(p.EndDate)
	if p.EndDate.Before(p.StartDate) {
		return ErrInvalidDateRange
	}
	p.DurationDays = DurationDays(p.StartDate, p.EndDate)
	if p.Slug == "" {
		p.Slug = PackageSlug(p.Name, p.VendorID)
	}
	return nil
}

// EffectivePrice is what the catalog shows as the current price.
func (p TravelPackage) EffectivePrice() float64 {
	if p.DiscountPrice != nil && *p.DiscountPrice > 0 && *p.DiscountPrice < p.Price {
		return *p.DiscountPrice
	}
	return p.Price
}

type PackageFilter struct {
	Name               string
	Location           string
	TravelType         string
	PriceGT            *float64
	PriceLT            *float64
	StartDateGT        *time.Time
	StartDateLT        *time.Time
	ApprovedVendorOnly bool
}

type PackageDetail struct {
	Package       TravelPackage `json:"package"`
	Reviews       []Review      `json:"reviews"`
	AverageRating float64       `json:"average_rating"`
	ReviewCount   int           `json:"review_count"`
}
