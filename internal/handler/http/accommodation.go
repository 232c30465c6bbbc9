package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Buyaki01/airbnb-api/internal/service"
	"github.com/Buyaki01/airbnb-api/internal/session"
	"github.com/Buyaki01/airbnb-api/pkg/validator"
)

// AccommodationHandler handles HTTP requests for listing endpoints.
type AccommodationHandler struct {
	service *service.AccommodationService
	logger  *slog.Logger
}

// NewAccommodationHandler creates a new accommodation HTTP handler.
func NewAccommodationHandler(svc *service.AccommodationService, logger *slog.Logger) *AccommodationHandler {
	return &AccommodationHandler{service: svc, logger: logger}
}

// AccommodationRequest is the JSON request body for creating or updating a
// listing. There is no owner field; ownership comes from the session.
type AccommodationRequest struct {
	Title        string   `json:"title" validate:"required,min=1,max=200"`
	Address      string   `json:"address" validate:"required,min=1,max=500"`
	Photos       []string `json:"photos" validate:"omitempty,dive,max=500"`
	Description  string   `json:"description" validate:"omitempty,max=5000"`
	Features     []string `json:"features" validate:"omitempty,dive,max=100"`
	ExtraInfo    string   `json:"extra_info" validate:"omitempty,max=5000"`
	CheckInTime  string   `json:"check_in_time" validate:"omitempty,max=20"`
	CheckOutTime string   `json:"check_out_time" validate:"omitempty,max=20"`
	MaxGuests    int      `json:"max_guests" validate:"required,min=1,max=100"`
	PriceCents   int64    `json:"price_cents" validate:"min=0"`
}

func (req *AccommodationRequest) toInput() service.AccommodationInput {
	return service.AccommodationInput{
		Title:        req.Title,
		Address:      req.Address,
		Photos:       req.Photos,
		Description:  req.Description,
		Features:     req.Features,
		ExtraInfo:    req.ExtraInfo,
		CheckInTime:  req.CheckInTime,
		CheckOutTime: req.CheckOutTime,
		MaxGuests:    req.MaxGuests,
		PriceCents:   req.PriceCents,
	}
}

// Create handles POST /api/v1/accommodations
func (h *AccommodationHandler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req AccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	acc, err := h.service.Create(r.Context(), session.ClaimsFromContext(r.Context()), req.toInput())
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, response{Data: acc})
}

// Update handles PUT /api/v1/accommodations/{id}
func (h *AccommodationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, "accommodation id is required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var req AccommodationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := validator.Validate(req); err != nil {
		writeValidationError(w, err)
		return
	}

	acc, err := h.service.Update(r.Context(), session.ClaimsFromContext(r.Context()), id, req.toInput())
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: acc})
}

// Get handles GET /api/v1/accommodations/{id}
func (h *AccommodationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeBadRequest(w, "accommodation id is required")
		return
	}

	acc, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: acc})
}

// ListAll handles GET /api/v1/accommodations
func (h *AccommodationHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	accs, err := h.service.ListAll(r.Context())
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: accs})
}

// ListOwn handles GET /api/v1/accommodations/mine
func (h *AccommodationHandler) ListOwn(w http.ResponseWriter, r *http.Request) {
	accs, err := h.service.ListOwn(r.Context(), session.ClaimsFromContext(r.Context()))
	if err != nil {
		writeAppError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: accs})
}
