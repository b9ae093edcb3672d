package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBookingsWorkbook(t *testing.T) {
	rows := []models.BookingExportRow{
		{
			BookingID:         7,
			PackageName:       "Alps Trek",
			TravelerUsername:  "ana",
			TravelerEmail:     "ana@example.com",
			Status:            models.BookingStatusConfirmed,
			NumberOfTravelers: 2,
			TotalPrice:        1999.98,
			BookingDate:       time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC),
		},
	}

	raw, err := BookingsWorkbook(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue(bookingsSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Package", header)

	name, err := f.GetCellValue(bookingsSheet, "B2")
	require.NoError(t, err)
	assert.Equal(t, "Alps Trek", name)

	status, err := f.GetCellValue(bookingsSheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", status)

	date, err := f.GetCellValue(bookingsSheet, "H2")
	require.NoError(t, err)
	assert.Equal(t, "2024-09-01", date)
}
