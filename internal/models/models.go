package models

import (
	"time"
)

// User roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Booking statuses.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCompleted = "completed"
	BookingCancelled = "cancelled"
)

// Review moderation statuses.
const (
	ReviewPending  = "pending"
	ReviewApproved = "approved"
	ReviewRejected = "rejected"
)

// Media types, derived from the uploaded file's extension.
const (
	MediaImage = "image"
	MediaVideo = "video"
)

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Password  string    `json:"-"` // bcrypt hash
	Role      string    `json:"role"`
	Instagram string    `json:"instagram"`
	CreatedAt time.Time `json:"created_at"`
}

type TimeSlot struct {
	ID          string    `json:"id"`
	Date        string    `json:"date"` // YYYY-MM-DD
	Time        string    `json:"time"` // HH:MM
	Service     string    `json:"service"`
	IsAvailable bool      `json:"is_available"`
	IsBooked    bool      `json:"is_booked"`
	BookingID   string    `json:"booking_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Open reports whether the slot can still be offered to customers.
func (s *TimeSlot) Open() bool {
	return s.IsAvailable && !s.IsBooked
}

type Booking struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CustomerPhone string    `json:"customer_phone"`
	Service       string    `json:"service"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	Notes         string    `json:"notes"`
	Status        string    `json:"status"`
	Instagram     string    `json:"instagram,omitempty"` // owner's handle, filled on admin listings
	CreatedAt     time.Time `json:"created_at"`
}

type Review struct {
	ID           string     `json:"id"`
	UserID       string     `json:"user_id"`
	BookingID    string     `json:"booking_id"`
	CustomerName string     `json:"customer_name"`
	Rating       int        `json:"rating"`
	Comment      string     `json:"comment"`
	Service      string     `json:"service"`
	Status       string     `json:"status"`
	BookingDate  string     `json:"booking_date,omitempty"` // filled on moderation listings
	BookingTime  string     `json:"booking_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
}

type MediaItem struct {
	ID           string    `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	Category     string    `json:"category"`
	MediaType    string    `json:"media_type"`
	URL          string    `json:"url"`
	UploadedAt   time.Time `json:"uploaded_at"`
}

// ValidBookingStatus reports whether s is one of the known booking statuses.
func ValidBookingStatus(s string) bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// ReviewEligible reports whether a booking in this status may receive a review.
func ReviewEligible(status string) bool {
	return status == BookingConfirmed || status == BookingCompleted
}
