package store

import (
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
)

// MemStore is an in-process Store used when the service runs without a
// database (development) and as the fixture for tests. All methods take
// the store lock, so the slot-claim sequence is atomic here too.
type MemStore struct {
	mu       sync.RWMutex
	users    []models.User
	slots    []models.TimeSlot
	bookings []models.Booking
	reviews  []models.Review
	media    []models.MediaItem
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Close() error { return nil }

// Users

func (s *MemStore) CreateUser(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, u.Email) {
			return ErrConflict
		}
	}
	s.users = append(s.users, *u)
	return nil
}

func (s *MemStore) GetUserByEmail(email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) GetUserByID(id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) UpdateUserProfile(id, username, instagram string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Username = username
			s.users[i].Instagram = instagram
			return nil
		}
	}
	return ErrNotFound
}

// Time slots

func (s *MemStore) CreateTimeSlot(slot *models.TimeSlot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.slots {
		if s.slots[i].Date == slot.Date && s.slots[i].Time == slot.Time && s.slots[i].Service == slot.Service {
			return ErrConflict
		}
	}
	s.slots = append(s.slots, *slot)
	return nil
}

func (s *MemStore) GetTimeSlotByID(id string) (*models.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.slotIndex(id); i >= 0 {
		slot := s.slots[i]
		return &slot, nil
	}
	return nil, ErrNotFound
}

func (s *MemStore) ListTimeSlots(f SlotFilter) ([]models.TimeSlot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var slots []models.TimeSlot
	for i := range s.slots {
		slot := s.slots[i]
		if f.Service != "" && slot.Service != f.Service {
			continue
		}
		if f.Date != "" && slot.Date != f.Date {
			continue
		}
		if f.OnlyOpen && !slot.Open() {
			continue
		}
		slots = append(slots, slot)
	}
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].Date != slots[j].Date {
			return slots[i].Date < slots[j].Date
		}
		return slots[i].Time < slots[j].Time
	})
	return slots, nil
}

func (s *MemStore) UpdateTimeSlot(id string, patch SlotPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.slotIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	if patch.IsAvailable != nil {
		s.slots[i].IsAvailable = *patch.IsAvailable
	}
	if patch.IsBooked != nil {
		s.slots[i].IsBooked = *patch.IsBooked
	}
	if patch.BookingID != nil {
		s.slots[i].BookingID = *patch.BookingID
	}
	return nil
}

func (s *MemStore) DeleteTimeSlot(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.slotIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.slots = append(s.slots[:i], s.slots[i+1:]...)
	return nil
}

func (s *MemStore) slotIndex(id string) int {
	for i := range s.slots {
		if s.slots[i].ID == id {
			return i
		}
	}
	return -1
}

// Bookings

func (s *MemStore) CreateBooking(b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *MemStore) CreateBookingForSlot(b *models.Booking, slotID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.slotIndex(slotID)
	if i < 0 {
		return ErrNotFound
	}
	if !s.slots[i].Open() {
		return ErrConflict
	}

	b.Date = s.slots[i].Date
	b.Time = s.slots[i].Time
	b.Service = s.slots[i].Service

	s.slots[i].IsBooked = true
	s.slots[i].BookingID = b.ID
	s.bookings = append(s.bookings, *b)
	return nil
}

func (s *MemStore) GetBookingByID(id string) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			b := s.bookings[i]
			return &b, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) ListBookingsByUser(userID string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []models.Booking
	for i := range s.bookings {
		if s.bookings[i].UserID == userID {
			bookings = append(bookings, s.bookings[i])
		}
	}
	sortByCreatedDesc(bookings)
	return bookings, nil
}

func (s *MemStore) ListAllBookings() ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bookings := make([]models.Booking, len(s.bookings))
	copy(bookings, s.bookings)
	for i := range bookings {
		for j := range s.users {
			if s.users[j].ID == bookings[i].UserID {
				bookings[i].Instagram = s.users[j].Instagram
				break
			}
		}
	}
	sortByCreatedDesc(bookings)
	return bookings, nil
}

func (s *MemStore) ListBookingsByDateRange(start, end string) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var bookings []models.Booking
	for i := range s.bookings {
		if s.bookings[i].Date >= start && s.bookings[i].Date <= end {
			bookings = append(bookings, s.bookings[i])
		}
	}
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Date != bookings[j].Date {
			return bookings[i].Date < bookings[j].Date
		}
		return bookings[i].Time < bookings[j].Time
	})
	return bookings, nil
}

func (s *MemStore) UpdateBookingStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := false
	for i := range s.bookings {
		if s.bookings[i].ID == id {
			s.bookings[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if status == models.BookingCancelled {
		for i := range s.slots {
			if s.slots[i].BookingID == id {
				s.slots[i].IsBooked = false
				s.slots[i].BookingID = ""
			}
		}
	}
	return nil
}

// Reviews

func (s *MemStore) CreateReview(r *models.Review) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].BookingID == r.BookingID {
			return ErrConflict
		}
	}
	s.reviews = append(s.reviews, *r)
	return nil
}

func (s *MemStore) GetReviewByBookingID(bookingID string) (*models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.reviews {
		if s.reviews[i].BookingID == bookingID {
			r := s.reviews[i]
			return &r, nil
		}
	}
	return nil, ErrNotFound
}

func (s *MemStore) ListApprovedReviews() ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []models.Review
	for i := range s.reviews {
		if s.reviews[i].Status == models.ReviewApproved {
			reviews = append(reviews, s.reviews[i])
		}
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].ApprovedAt == nil || reviews[j].ApprovedAt == nil {
			return reviews[j].ApprovedAt == nil
		}
		return reviews[i].ApprovedAt.After(*reviews[j].ApprovedAt)
	})
	return reviews, nil
}

func (s *MemStore) ListPendingReviews() ([]models.Review, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var reviews []models.Review
	for i := range s.reviews {
		if s.reviews[i].Status != models.ReviewPending {
			continue
		}
		r := s.reviews[i]
		for j := range s.bookings {
			if s.bookings[j].ID == r.BookingID {
				r.BookingDate = s.bookings[j].Date
				r.BookingTime = s.bookings[j].Time
				break
			}
		}
		reviews = append(reviews, r)
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		return reviews[i].CreatedAt.After(reviews[j].CreatedAt)
	})
	return reviews, nil
}

func (s *MemStore) UpdateReviewStatus(id, status string, approvedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.reviews {
		if s.reviews[i].ID == id {
			s.reviews[i].Status = status
			if approvedAt != nil {
				t := *approvedAt
				s.reviews[i].ApprovedAt = &t
			}
			return nil
		}
	}
	return ErrNotFound
}

func (s *MemStore) ReviewStats() (*ReviewStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &ReviewStats{
		RatingDistribution: map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}
	sum := 0
	for i := range s.reviews {
		if s.reviews[i].Status != models.ReviewApproved {
			continue
		}
		stats.TotalReviews++
		stats.RatingDistribution[s.reviews[i].Rating]++
		sum += s.reviews[i].Rating
	}
	if stats.TotalReviews > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(stats.TotalReviews)*10) / 10
	}
	return stats, nil
}

// Media

func (s *MemStore) CreateMediaItem(m *models.MediaItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.media = append(s.media, *m)
	return nil
}

func (s *MemStore) ListMediaItems(category string) ([]models.MediaItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var items []models.MediaItem
	for i := range s.media {
		if category == "" || s.media[i].Category == category {
			items = append(items, s.media[i])
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].UploadedAt.After(items[j].UploadedAt)
	})
	return items, nil
}

func sortByCreatedDesc(bookings []models.Booking) {
	sort.SliceStable(bookings, func(i, j int) bool {
		return bookings[i].CreatedAt.After(bookings[j].CreatedAt)
	})
}
