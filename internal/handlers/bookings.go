package handlers

import (
	"net/http"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/metrics"
	"github.com/Lcsmrct/AMBEAUTY/internal/models"
	"github.com/Lcsmrct/AMBEAUTY/internal/store"
	"github.com/google/uuid"
)

type BookingHandler struct {
	Store store.Store
}

type createBookingRequest struct {
	TimeSlotID    string `json:"time_slot_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Notes         string `json:"notes"`
}

// Create places a booking for the authenticated caller. With a
// time_slot_id the slot is claimed and service/date/time come from it;
// without one the request must carry them itself.
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req createBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.CustomerName == "" {
		req.CustomerName = user.Username
	}
	if req.CustomerEmail == "" {
		req.CustomerEmail = user.Email
	}

	booking := &models.Booking{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Notes:         req.Notes,
		Status:        models.BookingPending,
		CreatedAt:     time.Now().UTC(),
	}

	if req.TimeSlotID != "" {
		if err := h.Store.CreateBookingForSlot(booking, req.TimeSlotID); err != nil {
			writeStoreError(w, err, "time slot not found", "this time slot is no longer available")
			return
		}
	} else {
		if req.Service == "" || req.Date == "" || req.Time == "" {
			writeError(w, http.StatusBadRequest, "service, date and time are required without a time slot")
			return
		}
		booking.Service = req.Service
		booking.Date = req.Date
		booking.Time = req.Time
		if err := h.Store.CreateBooking(booking); err != nil {
			writeStoreError(w, err, "", "")
			return
		}
	}

	metrics.IncBookingCreated()
	writeJSON(w, http.StatusCreated, booking)
}

func (h *BookingHandler) MyBookings(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	bookings, err := h.Store.ListBookingsByUser(user.ID)
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

func (h *BookingHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.Store.ListAllBookings()
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	writeJSON(w, http.StatusOK, bookings)
}

type updateBookingRequest struct {
	Status string `json:"status"`
}

// UpdateStatus is the admin status transition. Cancelling frees the
// backing slot, which is a no-op for free-form bookings.
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateBookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if !models.ValidBookingStatus(req.Status) {
		writeError(w, http.StatusBadRequest, "status must be one of pending, confirmed, completed, cancelled")
		return
	}

	id := r.PathValue("id")
	if err := h.Store.UpdateBookingStatus(id, req.Status); err != nil {
		writeStoreError(w, err, "booking not found", "")
		return
	}

	metrics.IncBookingStatus(req.Status)
	writeJSON(w, http.StatusOK, map[string]string{"message": "booking status updated", "status": req.Status})
}
