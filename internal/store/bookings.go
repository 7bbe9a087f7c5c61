package store

import (
	"database/sql"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
)

const bookingInsert = `INSERT INTO bookings (id, user_id, customer_name, customer_email, customer_phone, service, date, time, notes, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (s *SQLStore) CreateBooking(b *models.Booking) error {
	_, err := s.DB.Exec(bookingInsert, b.ID, b.UserID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.Service, b.Date, b.Time, b.Notes, b.Status, b.CreatedAt)
	return err
}

// CreateBookingForSlot claims the slot and inserts the booking in one
// transaction. The conditional UPDATE is the actual claim: two requests
// racing for the same slot cannot both pass it.
func (s *SQLStore) CreateBookingForSlot(b *models.Booking, slotID string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	row := tx.QueryRow(`SELECT date, time, service, is_available, is_booked FROM time_slots WHERE id = ?`, slotID)
	var (
		date, timeOfDay, service string
		isAvailable, isBooked    bool
	)
	if err := row.Scan(&date, &timeOfDay, &service, &isAvailable, &isBooked); err != nil {
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	if !isAvailable || isBooked {
		return ErrConflict
	}

	b.Date = date
	b.Time = timeOfDay
	b.Service = service

	res, err := tx.Exec(`UPDATE time_slots SET is_booked = 1, booking_id = ? WHERE id = ? AND is_available = 1 AND is_booked = 0`, b.ID, slotID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrConflict
	}

	if _, err := tx.Exec(bookingInsert, b.ID, b.UserID, b.CustomerName, b.CustomerEmail, b.CustomerPhone, b.Service, b.Date, b.Time, b.Notes, b.Status, b.CreatedAt); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLStore) GetBookingByID(id string) (*models.Booking, error) {
	query := `SELECT id, user_id, customer_name, customer_email, customer_phone, service, date, time, notes, status, created_at FROM bookings WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var b models.Booking
	err := row.Scan(&b.ID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.Service, &b.Date, &b.Time, &b.Notes, &b.Status, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (s *SQLStore) ListBookingsByUser(userID string) ([]models.Booking, error) {
	query := `SELECT id, user_id, customer_name, customer_email, customer_phone, service, date, time, notes, status, created_at FROM bookings WHERE user_id = ? ORDER BY created_at DESC`
	rows, err := s.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows, false)
}

// ListAllBookings returns every booking enriched with the owner's
// Instagram handle for the admin dashboard.
func (s *SQLStore) ListAllBookings() ([]models.Booking, error) {
	query := `
		SELECT b.id, b.user_id, b.customer_name, b.customer_email, b.customer_phone, b.service, b.date, b.time, b.notes, b.status, b.created_at, COALESCE(u.instagram, '')
		FROM bookings b
		LEFT JOIN users u ON b.user_id = u.id
		ORDER BY b.created_at DESC
	`
	rows, err := s.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows, true)
}

func (s *SQLStore) ListBookingsByDateRange(start, end string) ([]models.Booking, error) {
	query := `SELECT id, user_id, customer_name, customer_email, customer_phone, service, date, time, notes, status, created_at FROM bookings WHERE date >= ? AND date <= ? ORDER BY date ASC, time ASC`
	rows, err := s.DB.Query(query, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows, false)
}

func scanBookings(rows *sql.Rows, withInstagram bool) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		dest := []any{&b.ID, &b.UserID, &b.CustomerName, &b.CustomerEmail, &b.CustomerPhone, &b.Service, &b.Date, &b.Time, &b.Notes, &b.Status, &b.CreatedAt}
		if withInstagram {
			dest = append(dest, &b.Instagram)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// UpdateBookingStatus sets the booking status. Cancelling additionally
// frees the slot that references this booking, if any, in the same
// transaction.
func (s *SQLStore) UpdateBookingStatus(id, status string) error {
	tx, err := s.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE bookings SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}

	if status == models.BookingCancelled {
		if _, err := tx.Exec(`UPDATE time_slots SET is_booked = 0, booking_id = NULL WHERE booking_id = ?`, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}
