package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Buyaki01/airbnb-api/internal/service"
	"github.com/Buyaki01/airbnb-api/internal/session"
	"github.com/Buyaki01/airbnb-api/pkg/validator"
)

// BookingHandler handles HTTP requests for booking endpoints.
type BookingHandler struct {
	service *service.BookingService
	logger  *slog.Logger
}

// NewBookingHandler creates a new booking HTTP handler.
func NewBookingHandler(svc *service.BookingService, logger *slog.Logger) *BookingHandler {
	return &BookingHandler{service: svc, logger: logger}
}

// BookingRequest is the JSON request body for creating a booking. The renter
// is never part of the body.
type BookingRequest struct {
	AccommodationID string    `json:"accommodation_id" validate:"required"`
	CheckIn         time.Time `json:"check_in" validate:"required"`
	CheckOut        time.Time `json:"check_out" validate:"required"`
	GuestCount      int       `json:"guest_count" validate:"required,min=1,max=100"`
	ContactName     string    `json:"contact_name" validate:"required,min=1,max=100"`
	ContactPhone    string    `json:"contact_phone" validate:"required,min=1,max=30"`
	PriceCents      int64     `json:"price_cents" validate:"min=0"`
}

// Create handles POST /api/v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req BookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	booking, err := h.service.Create(r.Context(), session.ClaimsFromContext(r.Context()), service.BookingInput{
		AccommodationID: req.AccommodationID,
		CheckIn:         req.CheckIn,
		CheckOut:        req.CheckOut,
		GuestCount:      req.GuestCount,
		ContactName:     req.ContactName,
		ContactPhone:    req.ContactPhone,
		PriceCents:      req.PriceCents,
	})
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: booking})
}

// Get handles GET /api/v1/bookings/{id}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, "booking id is required")
		return
	}

	booking, err := h.service.Get(r.Context(), session.ClaimsFromContext(r.Context()), id)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: booking})
}

// ListOwn handles GET /api/v1/bookings
func (h *BookingHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	bookings, err := h.service.ListOwn(r.Context(), session.ClaimsFromContext(r.Context()))
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: bookings})
}
