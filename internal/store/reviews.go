package store

import (
	"database/sql"
	"math"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
)

func (s *SQLStore) CreateReview(r *models.Review) error {
	query := `INSERT INTO reviews (id, user_id, booking_id, customer_name, rating, comment, service, status, created_at, approved_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)`
	_, err := s.DB.Exec(query, r.ID, r.UserID, r.BookingID, r.CustomerName, r.Rating, r.Comment, r.Service, r.Status, r.CreatedAt)
	if isUniqueViolation(err) {
		return ErrConflict
	}
	return err
}

func (s *SQLStore) GetReviewByBookingID(bookingID string) (*models.Review, error) {
	query := `SELECT id, user_id, booking_id, customer_name, rating, comment, service, status, created_at, approved_at FROM reviews WHERE booking_id = ?`
	row := s.DB.QueryRow(query, bookingID)

	var r models.Review
	var approvedAt sql.NullTime
	err := row.Scan(&r.ID, &r.UserID, &r.BookingID, &r.CustomerName, &r.Rating, &r.Comment, &r.Service, &r.Status, &r.CreatedAt, &approvedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		r.ApprovedAt = &approvedAt.Time
	}
	return &r, nil
}

func (s *SQLStore) ListApprovedReviews() ([]models.Review, error) {
	query := `SELECT id, user_id, booking_id, customer_name, rating, comment, service, status, created_at, approved_at FROM reviews WHERE status = ? ORDER BY approved_at DESC`
	rows, err := s.DB.Query(query, models.ReviewApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		var approvedAt sql.NullTime
		if err := rows.Scan(&r.ID, &r.UserID, &r.BookingID, &r.CustomerName, &r.Rating, &r.Comment, &r.Service, &r.Status, &r.CreatedAt, &approvedAt); err != nil {
			return nil, err
		}
		if approvedAt.Valid {
			r.ApprovedAt = &approvedAt.Time
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// ListPendingReviews returns the moderation queue, each review enriched
// with the referenced booking's date and time.
func (s *SQLStore) ListPendingReviews() ([]models.Review, error) {
	query := `
		SELECT r.id, r.user_id, r.booking_id, r.customer_name, r.rating, r.comment, r.service, r.status, r.created_at, COALESCE(b.date, ''), COALESCE(b.time, '')
		FROM reviews r
		LEFT JOIN bookings b ON r.booking_id = b.id
		WHERE r.status = ?
		ORDER BY r.created_at DESC
	`
	rows, err := s.DB.Query(query, models.ReviewPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.UserID, &r.BookingID, &r.CustomerName, &r.Rating, &r.Comment, &r.Service, &r.Status, &r.CreatedAt, &r.BookingDate, &r.BookingTime); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *SQLStore) UpdateReviewStatus(id, status string, approvedAt *time.Time) error {
	var res sql.Result
	var err error
	if approvedAt != nil {
		res, err = s.DB.Exec(`UPDATE reviews SET status = ?, approved_at = ? WHERE id = ?`, status, *approvedAt, id)
	} else {
		res, err = s.DB.Exec(`UPDATE reviews SET status = ? WHERE id = ?`, status, id)
	}
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLStore) ReviewStats() (*ReviewStats, error) {
	stats := &ReviewStats{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	rows, err := s.DB.Query(`SELECT rating, COUNT(*) FROM reviews WHERE status = ? GROUP BY rating`, models.ReviewApproved)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sum := 0
	for rows.Next() {
		var rating, count int
		if err := rows.Scan(&rating, &count); err != nil {
			return nil, err
		}
		stats.RatingDistribution[rating] = count
		stats.TotalReviews += count
		sum += rating * count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalReviews)*10) / 10
	}
	return stats, nil
}
