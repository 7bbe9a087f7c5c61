package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
)

// Export streams an .xlsx of the bookings in the requested date range
// (inclusive) for the admin dashboard.
func (h *BookingHandler) Export(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if start == "" || end == "" {
		writeError(w, http.StatusBadRequest, "start and end query parameters are required (YYYY-MM-DD)")
		return
	}
	if _, err := time.Parse("2006-01-02", start); err != nil {
		writeError(w, http.StatusBadRequest, "start must be formatted as YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("2006-01-02", end); err != nil {
		writeError(w, http.StatusBadRequest, "end must be formatted as YYYY-MM-DD")
		return
	}

	bookings, err := h.Store.ListBookingsByDateRange(start, end)
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Bookings"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"ID", "Date", "Time", "Service", "Customer", "Email", "Phone", "Status", "Notes", "Created"}
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	if style, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#DDEBF7"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	}); err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", endCell, style)
	}

	for i, b := range bookings {
		row := i + 2
		values := []any{b.ID, b.Date, b.Time, b.Service, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.Status, b.Notes, b.CreatedAt.Format("2006-01-02 15:04")}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, v)
		}
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "D", "G", 24)

	filename := fmt.Sprintf("bookings_%s_%s.xlsx", start, end)
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(w); err != nil {
		slog.Error("Failed to write export", "error", err)
	}
}
