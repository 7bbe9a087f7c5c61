package store

import (
	"database/sql"
	"strings"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
)

func (s *SQLStore) CreateTimeSlot(slot *models.TimeSlot) error {
	query := `INSERT INTO time_slots (id, date, time, service, is_available, is_booked, booking_id, created_at) VALUES (?, ?, ?, ?, ?, ?, NULL, ?)`
	_, err := s.DB.Exec(query, slot.ID, slot.Date, slot.Time, slot.Service, slot.IsAvailable, slot.IsBooked, slot.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) GetTimeSlotByID(id string) (*models.TimeSlot, error) {
	query := `SELECT id, date, time, service, is_available, is_booked, COALESCE(booking_id, ''), created_at FROM time_slots WHERE id = ?`
	row := s.DB.QueryRow(query, id)

	var slot models.TimeSlot
	err := row.Scan(&slot.ID, &slot.Date, &slot.Time, &slot.Service, &slot.IsAvailable, &slot.IsBooked, &slot.BookingID, &slot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (s *SQLStore) ListTimeSlots(f SlotFilter) ([]models.TimeSlot, error) {
	query := `SELECT id, date, time, service, is_available, is_booked, COALESCE(booking_id, ''), created_at FROM time_slots`

	var conds []string
	var args []any
	if f.Service != "" {
		conds = append(conds, "service = ?")
		args = append(args, f.Service)
	}
	if f.Date != "" {
		conds = append(conds, "date = ?")
		args = append(args, f.Date)
	}
	if f.OnlyOpen {
		conds = append(conds, "is_available = 1 AND is_booked = 0")
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY date ASC, time ASC"

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		if err := rows.Scan(&slot.ID, &slot.Date, &slot.Time, &slot.Service, &slot.IsAvailable, &slot.IsBooked, &slot.BookingID, &slot.CreatedAt); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (s *SQLStore) UpdateTimeSlot(id string, patch SlotPatch) error {
	var sets []string
	var args []any
	if patch.IsAvailable != nil {
		sets = append(sets, "is_available = ?")
		args = append(args, *patch.IsAvailable)
	}
	if patch.IsBooked != nil {
		sets = append(sets, "is_booked = ?")
		args = append(args, *patch.IsBooked)
	}
	if patch.BookingID != nil {
		if *patch.BookingID == "" {
			sets = append(sets, "booking_id = NULL")
		} else {
			sets = append(sets, "booking_id = ?")
			args = append(args, *patch.BookingID)
		}
	}
	if len(sets) == 0 {
		// Nothing to change; still report a missing slot.
		if _, err := s.GetTimeSlotByID(id); err != nil {
			return err
		}
		return nil
	}

	args = append(args, id)
	res, err := s.DB.Exec(`UPDATE time_slots SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) DeleteTimeSlot(id string) error {
	res, err := s.DB.Exec(`DELETE FROM time_slots WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
