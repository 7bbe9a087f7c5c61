package handlers

import (
	"net/http"
	"time"

	"github.com/Lcsmrct/AMBEAUTY/internal/models"
	"github.com/Lcsmrct/AMBEAUTY/internal/store"
	"github.com/google/uuid"
)

type SlotHandler struct {
	Store store.Store
}

type createSlotRequest struct {
	Date    string `json:"date"`
	Time    string `json:"time"`
	Service string `json:"service"`
}

func (h *SlotHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Date == "" || req.Time == "" || req.Service == "" {
		writeError(w, http.StatusBadRequest, "date, time and service are required")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		writeError(w, http.StatusBadRequest, "time must be formatted as HH:MM")
		return
	}

	slot := &models.TimeSlot{
		ID:          uuid.NewString(),
		Date:        req.Date,
		Time:        req.Time,
		Service:     req.Service,
		IsAvailable: true,
		CreatedAt:   time.Now().UTC(),
	}
	if err := h.Store.CreateTimeSlot(slot); err != nil {
		writeStoreError(w, err, "", "a time slot already exists for this date, time and service")
		return
	}
	writeJSON(w, http.StatusCreated, slot)
}

func (h *SlotHandler) List(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, false)
}

func (h *SlotHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, true)
}

func (h *SlotHandler) list(w http.ResponseWriter, r *http.Request, onlyOpen bool) {
	filter := store.SlotFilter{
		Service:  r.URL.Query().Get("service"),
		Date:     r.URL.Query().Get("date"),
		OnlyOpen: onlyOpen,
	}
	slots, err := h.Store.ListTimeSlots(filter)
	if err != nil {
		writeStoreError(w, err, "", "")
		return
	}
	if slots == nil {
		slots = []models.TimeSlot{}
	}
	writeJSON(w, http.StatusOK, slots)
}

type updateSlotRequest struct {
	IsAvailable *bool   `json:"is_available"`
	IsBooked    *bool   `json:"is_booked"`
	BookingID   *string `json:"booking_id"`
}

func (h *SlotHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateSlotRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := r.PathValue("id")
	patch := store.SlotPatch{
		IsAvailable: req.IsAvailable,
		IsBooked:    req.IsBooked,
		BookingID:   req.BookingID,
	}
	if err := h.Store.UpdateTimeSlot(id, patch); err != nil {
		writeStoreError(w, err, "time slot not found", "")
		return
	}

	slot, err := h.Store.GetTimeSlotByID(id)
	if err != nil {
		writeStoreError(w, err, "time slot not found", "")
		return
	}
	writeJSON(w, http.StatusOK, slot)
}

func (h *SlotHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.DeleteTimeSlot(r.PathValue("id")); err != nil {
		writeStoreError(w, err, "time slot not found", "")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "time slot deleted"})
}
