package store

import (
	"errors"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
)

// Sentinel errors returned by implementations. Handlers map these onto
// HTTP statuses.
var (
	// ErrNotFound means the referenced id does not exist.
	ErrNotFound = errors.New("store: not found")
	// ErrConflict means a uniqueness or availability rule was violated:
	// duplicate slot triple, already-booked slot, duplicate review,
	// duplicate account email.
	ErrConflict = errors.New("store: conflict")
)

// SlotFilter narrows a time-slot listing. Zero-value fields are ignored.
type SlotFilter struct {
	Service  string
	Date     string
	OnlyOpen bool // is_available and not is_booked
}

// SlotPatch is a partial time-slot update; nil fields are left untouched.
type SlotPatch struct {
	IsAvailable *bool
	IsBooked    *bool
	BookingID   *string // pointer to "" clears the reference
}

// ReviewStats aggregates approved reviews for the public site.
type ReviewStats struct {
	TotalReviews       int         `json:"total_reviews"`
	AverageRating      float64     `json:"average_rating"` // rounded to 1 decimal
	RatingDistribution map[int]int `json:"rating_distribution"`
}

// Store is the persistence boundary of the service. It is injected into
// handlers at startup; implementations are the SQLite store and an
// in-memory store used for development and tests.
type Store interface {
	// Users
	CreateUser(u *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	UpdateUserProfile(id, username, instagram string) error

	// Time slots
	CreateTimeSlot(s *models.TimeSlot) error
	GetTimeSlotByID(id string) (*models.TimeSlot, error)
	ListTimeSlots(f SlotFilter) ([]models.TimeSlot, error)
	UpdateTimeSlot(id string, patch SlotPatch) error
	DeleteTimeSlot(id string) error

	// Bookings. CreateBookingForSlot copies service/date/time from the
	// slot onto b and claims the slot for b.ID in a single atomic step:
	// a slot that is unavailable or already booked yields ErrConflict
	// with no side effects. UpdateBookingStatus frees the backing slot
	// when the new status is cancelled.
	CreateBooking(b *models.Booking) error
	CreateBookingForSlot(b *models.Booking, slotID string) error
	GetBookingByID(id string) (*models.Booking, error)
	ListBookingsByUser(userID string) ([]models.Booking, error)
	ListAllBookings() ([]models.Booking, error)
	ListBookingsByDateRange(start, end string) ([]models.Booking, error)
	UpdateBookingStatus(id, status string) error

	// Reviews
	CreateReview(r *models.Review) error
	GetReviewByBookingID(bookingID string) (*models.Review, error)
	ListApprovedReviews() ([]models.Review, error)
	ListPendingReviews() ([]models.Review, error)
	UpdateReviewStatus(id, status string, approvedAt *time.Time) error
	ReviewStats() (*ReviewStats, error)

	// Media
	CreateMediaItem(m *models.MediaItem) error
	ListMediaItems(category string) ([]models.MediaItem, error)

	Close() error
}
