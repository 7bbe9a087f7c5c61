package store

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// forEachStore runs a test against both Store implementations so the
// SQLite and in-memory stores cannot drift apart.
func forEachStore(t *testing.T, fn func(t *testing.T, s Store)) {
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemStore())
	})
	t.Run("sqlite", func(t *testing.T) {
		s, err := NewSQLStore(filepath.Join(t.TempDir(), "test.db"))
		require.NoError(t, err)
		require.NoError(t, s.InitSchema())
		t.Cleanup(func() { s.Close() })
		fn(t, s)
	})
}

func newSlot(date, timeOfDay, service string) *models.TimeSlot {
	return &models.TimeSlot{
		ID:          uuid.NewString(),
		Date:        date,
		Time:        timeOfDay,
		Service:     service,
		IsAvailable: true,
		CreatedAt:   time.Now().UTC(),
	}
}

func newBooking(userID string) *models.Booking {
	return &models.Booking{
		ID:            uuid.NewString(),
		UserID:        userID,
		CustomerName:  "Client Test",
		CustomerEmail: "client@test.com",
		CustomerPhone: "+33 1 23 45 67 89",
		Status:        models.BookingPending,
		CreatedAt:     time.Now().UTC(),
	}
}

func TestCreateTimeSlotConflict(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.CreateTimeSlot(newSlot("2025-06-10", "10:00", "Nail Art")))

		err := s.CreateTimeSlot(newSlot("2025-06-10", "10:00", "Nail Art"))
		require.ErrorIs(t, err, ErrConflict)

		// A distinct triple succeeds.
		require.NoError(t, s.CreateTimeSlot(newSlot("2025-06-10", "11:00", "Nail Art")))
		require.NoError(t, s.CreateTimeSlot(newSlot("2025-06-10", "10:00", "Pose Gel")))
	})
}

func TestListTimeSlotsFilterAndOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.NoError(t, s.CreateTimeSlot(newSlot("2025-06-12", "09:00", "Nail Art")))
		require.NoError(t, s.CreateTimeSlot(newSlot("2025-06-10", "14:00", "Nail Art")))
		require.NoError(t, s.CreateTimeSlot(newSlot("2025-06-10", "09:00", "Pose Gel")))

		slots, err := s.ListTimeSlots(SlotFilter{})
		require.NoError(t, err)
		require.Len(t, slots, 3)
		require.Equal(t, "2025-06-10", slots[0].Date)
		require.Equal(t, "09:00", slots[0].Time)
		require.Equal(t, "2025-06-12", slots[2].Date)

		slots, err = s.ListTimeSlots(SlotFilter{Service: "Pose Gel"})
		require.NoError(t, err)
		require.Len(t, slots, 1)

		slots, err = s.ListTimeSlots(SlotFilter{Date: "2025-06-10"})
		require.NoError(t, err)
		require.Len(t, slots, 2)
	})
}

func TestListTimeSlotsOnlyOpen(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		open := newSlot("2025-06-10", "10:00", "Nail Art")
		closed := newSlot("2025-06-10", "11:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(open))
		require.NoError(t, s.CreateTimeSlot(closed))

		off := false
		require.NoError(t, s.UpdateTimeSlot(closed.ID, SlotPatch{IsAvailable: &off}))

		slots, err := s.ListTimeSlots(SlotFilter{OnlyOpen: true})
		require.NoError(t, err)
		require.Len(t, slots, 1)
		require.Equal(t, open.ID, slots[0].ID)
	})
}

func TestUpdateTimeSlotPartial(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		slot := newSlot("2025-06-10", "10:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(slot))

		booked := true
		ref := "some-booking"
		require.NoError(t, s.UpdateTimeSlot(slot.ID, SlotPatch{IsBooked: &booked, BookingID: &ref}))

		got, err := s.GetTimeSlotByID(slot.ID)
		require.NoError(t, err)
		require.True(t, got.IsAvailable) // untouched
		require.True(t, got.IsBooked)
		require.Equal(t, "some-booking", got.BookingID)

		// Clearing the reference.
		free := false
		empty := ""
		require.NoError(t, s.UpdateTimeSlot(slot.ID, SlotPatch{IsBooked: &free, BookingID: &empty}))
		got, err = s.GetTimeSlotByID(slot.ID)
		require.NoError(t, err)
		require.False(t, got.IsBooked)
		require.Empty(t, got.BookingID)

		require.ErrorIs(t, s.UpdateTimeSlot("missing", SlotPatch{IsBooked: &booked}), ErrNotFound)
	})
}

func TestDeleteTimeSlot(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		slot := newSlot("2025-06-10", "10:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(slot))
		require.NoError(t, s.DeleteTimeSlot(slot.ID))
		require.ErrorIs(t, s.DeleteTimeSlot(slot.ID), ErrNotFound)
	})
}

func TestCreateBookingForSlot(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		slot := newSlot("2025-06-10", "10:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(slot))

		booking := newBooking("user-1")
		require.NoError(t, s.CreateBookingForSlot(booking, slot.ID))

		// The booking inherits the slot's coordinates.
		require.Equal(t, "Nail Art", booking.Service)
		require.Equal(t, "2025-06-10", booking.Date)
		require.Equal(t, "10:00", booking.Time)

		got, err := s.GetTimeSlotByID(slot.ID)
		require.NoError(t, err)
		require.True(t, got.IsBooked)
		require.Equal(t, booking.ID, got.BookingID)

		stored, err := s.GetBookingByID(booking.ID)
		require.NoError(t, err)
		require.Equal(t, models.BookingPending, stored.Status)
	})
}

func TestCreateBookingForSlotConflict(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		slot := newSlot("2025-06-10", "10:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(slot))
		require.NoError(t, s.CreateBookingForSlot(newBooking("user-1"), slot.ID))

		// A second customer racing for the same slot loses, with no
		// side effects on the ledger.
		second := newBooking("user-2")
		require.ErrorIs(t, s.CreateBookingForSlot(second, slot.ID), ErrConflict)

		_, err := s.GetBookingByID(second.ID)
		require.ErrorIs(t, err, ErrNotFound)

		all, err := s.ListAllBookings()
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}

// TestCreateBookingForSlotRace hammers one slot from many goroutines:
// exactly one claim may win, everyone else gets the conflict error, and
// the ledger holds a single booking.
func TestCreateBookingForSlotRace(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		slot := newSlot("2025-06-10", "10:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(slot))

		const attempts = 16
		errs := make(chan error, attempts)
		var wg sync.WaitGroup
		for i := 0; i < attempts; i++ {
			wg.Add(1)
			go func(n int) {
				defer wg.Done()
				errs <- s.CreateBookingForSlot(newBooking(fmt.Sprintf("user-%d", n)), slot.ID)
			}(i)
		}
		wg.Wait()
		close(errs)

		var wins, conflicts int
		for err := range errs {
			switch {
			case err == nil:
				wins++
			case errors.Is(err, ErrConflict):
				conflicts++
			default:
				t.Fatalf("unexpected error: %v", err)
			}
		}
		require.Equal(t, 1, wins)
		require.Equal(t, attempts-1, conflicts)

		all, err := s.ListAllBookings()
		require.NoError(t, err)
		require.Len(t, all, 1)

		claimed, err := s.GetTimeSlotByID(slot.ID)
		require.NoError(t, err)
		require.True(t, claimed.IsBooked)
		require.Equal(t, all[0].ID, claimed.BookingID)
	})
}

func TestCreateBookingForSlotUnavailable(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		slot := newSlot("2025-06-10", "10:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(slot))

		off := false
		require.NoError(t, s.UpdateTimeSlot(slot.ID, SlotPatch{IsAvailable: &off}))

		require.ErrorIs(t, s.CreateBookingForSlot(newBooking("user-1"), slot.ID), ErrConflict)
		require.ErrorIs(t, s.CreateBookingForSlot(newBooking("user-1"), "missing"), ErrNotFound)
	})
}

func TestCancelFreesSlot(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		slot := newSlot("2025-06-10", "10:00", "Nail Art")
		require.NoError(t, s.CreateTimeSlot(slot))

		booking := newBooking("user-1")
		require.NoError(t, s.CreateBookingForSlot(booking, slot.ID))

		// Confirming leaves the slot claimed.
		require.NoError(t, s.UpdateBookingStatus(booking.ID, models.BookingConfirmed))
		got, err := s.GetTimeSlotByID(slot.ID)
		require.NoError(t, err)
		require.True(t, got.IsBooked)

		// Cancelling frees it for reuse.
		require.NoError(t, s.UpdateBookingStatus(booking.ID, models.BookingCancelled))
		got, err = s.GetTimeSlotByID(slot.ID)
		require.NoError(t, err)
		require.False(t, got.IsBooked)
		require.Empty(t, got.BookingID)

		require.NoError(t, s.CreateBookingForSlot(newBooking("user-2"), slot.ID))
	})
}

func TestCancelWithoutSlotIsNoop(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		booking := newBooking("user-1")
		booking.Service = "Nail Art"
		booking.Date = "2025-06-10"
		booking.Time = "10:00"
		require.NoError(t, s.CreateBooking(booking))

		require.NoError(t, s.UpdateBookingStatus(booking.ID, models.BookingCancelled))
		got, err := s.GetBookingByID(booking.ID)
		require.NoError(t, err)
		require.Equal(t, models.BookingCancelled, got.Status)
	})
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		require.ErrorIs(t, s.UpdateBookingStatus("missing", models.BookingConfirmed), ErrNotFound)
	})
}

func TestListBookingsByUserOrder(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		for i := 0; i < 3; i++ {
			b := newBooking("user-1")
			b.Service = "Nail Art"
			b.Date = "2025-06-10"
			b.Time = "10:00"
			b.CreatedAt = base.Add(time.Duration(i) * time.Minute)
			b.Notes = string(rune('a' + i))
			require.NoError(t, s.CreateBooking(b))
		}
		other := newBooking("user-2")
		other.Service = "Pose Gel"
		other.Date = "2025-06-11"
		other.Time = "11:00"
		require.NoError(t, s.CreateBooking(other))

		bookings, err := s.ListBookingsByUser("user-1")
		require.NoError(t, err)
		require.Len(t, bookings, 3)
		require.Equal(t, "c", bookings[0].Notes) // newest first
		require.Equal(t, "a", bookings[2].Notes)
	})
}

func TestListAllBookingsInstagram(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		user := &models.User{
			ID:        "user-1",
			Username:  "cliente",
			Email:     "cliente@test.com",
			Password:  "x",
			Role:      models.RoleUser,
			Instagram: "@cliente",
			CreatedAt: time.Now().UTC(),
		}
		require.NoError(t, s.CreateUser(user))

		withOwner := newBooking("user-1")
		withOwner.Service = "Nail Art"
		withOwner.Date = "2025-06-10"
		withOwner.Time = "10:00"
		require.NoError(t, s.CreateBooking(withOwner))

		orphan := newBooking("ghost")
		orphan.Service = "Pose Gel"
		orphan.Date = "2025-06-11"
		orphan.Time = "11:00"
		require.NoError(t, s.CreateBooking(orphan))

		all, err := s.ListAllBookings()
		require.NoError(t, err)
		require.Len(t, all, 2)
		for _, b := range all {
			if b.UserID == "user-1" {
				require.Equal(t, "@cliente", b.Instagram)
			} else {
				require.Empty(t, b.Instagram)
			}
		}
	})
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		u := &models.User{ID: "u1", Username: "a", Email: "a@test.com", Password: "x", Role: models.RoleUser, CreatedAt: time.Now().UTC()}
		require.NoError(t, s.CreateUser(u))

		dup := &models.User{ID: "u2", Username: "b", Email: "a@test.com", Password: "x", Role: models.RoleUser, CreatedAt: time.Now().UTC()}
		require.ErrorIs(t, s.CreateUser(dup), ErrConflict)

		got, err := s.GetUserByEmail("A@Test.Com")
		require.NoError(t, err)
		require.Equal(t, "u1", got.ID)
	})
}

func TestReviewUniquePerBooking(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		review := &models.Review{
			ID:           uuid.NewString(),
			UserID:       "user-1",
			BookingID:    "booking-1",
			CustomerName: "Client Test",
			Rating:       5,
			Comment:      "parfait",
			Service:      "Nail Art",
			Status:       models.ReviewPending,
			CreatedAt:    time.Now().UTC(),
		}
		require.NoError(t, s.CreateReview(review))

		dup := *review
		dup.ID = uuid.NewString()
		require.ErrorIs(t, s.CreateReview(&dup), ErrConflict)
	})
}

func TestReviewModeration(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		booking := newBooking("user-1")
		booking.Service = "Nail Art"
		booking.Date = "2025-06-10"
		booking.Time = "10:00"
		require.NoError(t, s.CreateBooking(booking))

		review := &models.Review{
			ID:           uuid.NewString(),
			UserID:       "user-1",
			BookingID:    booking.ID,
			CustomerName: "Client Test",
			Rating:       4,
			Service:      "Nail Art",
			Status:       models.ReviewPending,
			CreatedAt:    time.Now().UTC(),
		}
		require.NoError(t, s.CreateReview(review))

		pending, err := s.ListPendingReviews()
		require.NoError(t, err)
		require.Len(t, pending, 1)
		require.Equal(t, "2025-06-10", pending[0].BookingDate)
		require.Equal(t, "10:00", pending[0].BookingTime)

		now := time.Now().UTC()
		require.NoError(t, s.UpdateReviewStatus(review.ID, models.ReviewApproved, &now))

		approved, err := s.ListApprovedReviews()
		require.NoError(t, err)
		require.Len(t, approved, 1)
		require.NotNil(t, approved[0].ApprovedAt)

		pending, err = s.ListPendingReviews()
		require.NoError(t, err)
		require.Empty(t, pending)

		require.ErrorIs(t, s.UpdateReviewStatus("missing", models.ReviewRejected, nil), ErrNotFound)
	})
}

func TestReviewStats(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		stats, err := s.ReviewStats()
		require.NoError(t, err)
		require.Equal(t, 0, stats.TotalReviews)
		require.Equal(t, 0.0, stats.AverageRating)
		require.Equal(t, map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}, stats.RatingDistribution)

		now := time.Now().UTC()
		for i, rating := range []int{5, 4, 4} {
			review := &models.Review{
				ID:           uuid.NewString(),
				UserID:       "user-1",
				BookingID:    uuid.NewString(),
				CustomerName: "Client Test",
				Rating:       rating,
				Service:      "Nail Art",
				Status:       models.ReviewApproved,
				CreatedAt:    now.Add(time.Duration(i) * time.Minute),
			}
			require.NoError(t, s.CreateReview(review))
			require.NoError(t, s.UpdateReviewStatus(review.ID, models.ReviewApproved, &now))
		}
		// A pending review stays out of the stats.
		require.NoError(t, s.CreateReview(&models.Review{
			ID: uuid.NewString(), UserID: "user-1", BookingID: uuid.NewString(),
			CustomerName: "Client Test", Rating: 1, Service: "Nail Art",
			Status: models.ReviewPending, CreatedAt: now,
		}))

		stats, err = s.ReviewStats()
		require.NoError(t, err)
		require.Equal(t, 3, stats.TotalReviews)
		require.Equal(t, 4.3, stats.AverageRating)
		require.Equal(t, 1, stats.RatingDistribution[5])
		require.Equal(t, 2, stats.RatingDistribution[4])
		require.Equal(t, 0, stats.RatingDistribution[1])
	})
}

func TestMediaItems(t *testing.T) {
	forEachStore(t, func(t *testing.T, s Store) {
		now := time.Now().UTC()
		older := &models.MediaItem{
			ID: uuid.NewString(), Filename: "a.jpg", OriginalName: "nails.jpg",
			Category: "nail-art", MediaType: models.MediaImage, URL: "/uploads/a.jpg",
			UploadedAt: now.Add(-time.Hour),
		}
		newer := &models.MediaItem{
			ID: uuid.NewString(), Filename: "b.mp4", OriginalName: "demo.mp4",
			Category: "french-manucure", MediaType: models.MediaVideo, URL: "/uploads/b.mp4",
			UploadedAt: now,
		}
		require.NoError(t, s.CreateMediaItem(older))
		require.NoError(t, s.CreateMediaItem(newer))

		items, err := s.ListMediaItems("")
		require.NoError(t, err)
		require.Len(t, items, 2)
		require.Equal(t, newer.ID, items[0].ID) // newest first

		items, err = s.ListMediaItems("nail-art")
		require.NoError(t, err)
		require.Len(t, items, 1)
		require.Equal(t, older.ID, items[0].ID)
	})
}
