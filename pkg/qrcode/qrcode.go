package qrcode

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

// QRService renders QR codes that point at a path under baseURL.
type QRService struct {
	baseURL string
}

func NewQRService(baseURL string) *QRService {
	return &QRService{
		baseURL: baseURL,
	}
}

// BookingURL is what a booking QR code encodes.
func (s *QRService) BookingURL(bookingID uint) string {
	return fmt.Sprintf("%s/booking/%d", s.baseURL, bookingID)
}

// GenerateBookingQRCode returns a PNG of the given pixel size.
func (s *QRService) GenerateBookingQRCode(bookingID uint, size int) ([]byte, error) {
	png, err := qrcode.Encode(s.BookingURL(bookingID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code PNG: %w", err)
	}
	return png, nil
}
