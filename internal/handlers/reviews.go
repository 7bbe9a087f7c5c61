package handlers

import (
	"net/http"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/metrics"
	"github.com/Lcsmrct/AMBEAUTY/internal/models"
	"github.com/Lcsmrct/AMBEAUTY/internal/store"
	"github.com/google/uuid"
)

type ReviewHandler struct {
	Store store.Store
}

type createReviewRequest struct {
	BookingID string `json:"booking_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// Create submits a review for one of the caller's bookings. Only
// confirmed or completed bookings are eligible, and a booking can carry
// at most one review.
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	var req createReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		writeError(w, http.StatusBadRequest, "rating must be between 1 and 5")
		return
	}

	booking, err := h.Store.GetBookingByID(req.BookingID)
	if err != nil {
		writeStoreError(w, err, "booking not found", "")
		return
	}
	// Ownership failures look identical to a missing booking so callers
	// cannot probe other customers' bookings.
	if booking.UserID != user.ID {
		writeError(w, http.StatusNotFound, "booking not found")
		return
	}
	if !models.ReviewEligible(booking.Status) {
		writeError(w, http.StatusBadRequest, "booking must be confirmed or completed before it can be reviewed")
		return
	}

	review := &models.Review{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		BookingID:    booking.ID,
		CustomerName: user.Username,
		Rating:       req.Rating,
		Comment:      req.Comment,
		Service:      booking.Service,
		Status:       models.ReviewPending,
		CreatedAt:    time.Now().UTC(),
	}
	if err := h.Store.CreateReview(review); err != nil {
		writeStoreError(w, err, "", "a review already exists for this booking")
		return
	}

	metrics.IncReviewSubmitted()
	writeJSON(w, http.StatusCreated, review)
}

func (h *ReviewHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.ListApprovedReviews()
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

func (h *ReviewHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Store.ReviewStats()
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (h *ReviewHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.Store.ListPendingReviews()
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	writeJSON(w, http.StatusOK, reviews)
}

type updateReviewRequest struct {
	Status string `json:"status"`
}

func (h *ReviewHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req updateReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Status != models.ReviewApproved && req.Status != models.ReviewRejected {
		writeError(w, http.StatusBadRequest, "status must be approved or rejected")
		return
	}

	var approvedAt *time.Time
	if req.Status == models.ReviewApproved {
		now := time.Now().UTC()
		approvedAt = &now
	}

	if err := h.Store.UpdateReviewStatus(r.PathValue("id"), req.Status, approvedAt); err != nil {
		writeStoreError(w, err, "review not found", "")
		return
	}

	metrics.IncReviewDecision(req.Status)
	writeJSON(w, http.StatusOK, map[string]string{"message": "review status updated", "status": req.Status})
}

type eligibleBooking struct {
	models.Booking
	HasReview bool `json:"has_review"`
}

// EligibleBookings lists the caller's confirmed/completed bookings,
// flagging the ones that already carry a review.
func (h *ReviewHandler) EligibleBookings(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())

	bookings, err := h.Store.ListBookingsByUser(user.ID)
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}

	eligible := []eligibleBooking{}
	for _, b := range bookings {
		if !models.ReviewEligible(b.Status) {
			continue
		}
		_, err := h.Store.GetReviewByBookingID(b.ID)
		if err != nil && err != store.ErrNotFound {
			writeStoreError(w, err, "", "")
			return
		}
		eligible = append(eligible, eligibleBooking{Booking: b, HasReview: err == nil})
	}
	writeJSON(w, http.StatusOK, eligible)
}
