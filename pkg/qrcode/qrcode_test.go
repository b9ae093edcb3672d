package qrcode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateBookingQRCode(t *testing.T) {
	s := NewQRService("https://travel.example.com")
	assert.Equal(t, "https://travel.example.com/booking/12", s.BookingURL(12))

	png, err := s.GenerateBookingQRCode(12, 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
