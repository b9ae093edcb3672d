package report

import (
	"fmt"

	"github.com/sefazor/travelmarket-backend/internal/models"
	"github.com/xuri/excelize/v2"
)

const bookingsSheet = "Bookings"

var bookingHeaders = []string{
	"BookingID", "Package", "Traveler", "Email", "Status",
	"Travelers", "TotalPrice", "BookingDate",
}

// BookingsWorkbook lays the rows out on a single sheet and returns the xlsx bytes.
func BookingsWorkbook(rows []models.BookingExportRow) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return nil, err
	}

	for i, header := range bookingHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(bookingsSheet, cell, header)
	}

	for i, r := range rows {
		line := i + 2
		f.SetCellValue(bookingsSheet, fmt.Sprintf("A%d", line), r.BookingID)
		f.SetCellValue(bookingsSheet, fmt.Sprintf("B%d", line), r.PackageName)
		f.SetCellValue(bookingsSheet, fmt.Sprintf("C%d", line), r.TravelerUsername)
		f.SetCellValue(bookingsSheet, fmt.Sprintf("D%d", line), r.TravelerEmail)
		f.SetCellValue(bookingsSheet, fmt.Sprintf("E%d", line), string(r.Status))
		f.SetCellValue(bookingsSheet, fmt.Sprintf("F%d", line), r.NumberOfTravelers)
		f.SetCellValue(bookingsSheet, fmt.Sprintf("G%d", line), r.TotalPrice)
		f.SetCellValue(bookingsSheet, fmt.Sprintf("H%d", line), r.BookingDate.Format(models.DateLayout))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
