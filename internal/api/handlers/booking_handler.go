package handlers

import (
	"encoding/json"
	"net/http"

	"hamdukhub/internal/access"
	"hamdukhub/internal/api/middleware"
	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

type BookingHandler struct {
	db *database.DB
}

func NewBookingHandler(db *database.DB) *BookingHandler {
	return &BookingHandler{db: db}
}

// List is open to any valid identity; non-premium callers only see their
// own bookings.
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "API key is required", nil)
		return
	}

	page, limit, offset := parsePagination(r)

	ownerID := identity.ID
	if access.Role(identity.Role) == access.RolePremium {
		ownerID = ""
	}

	repo := repositories.NewBookingRepository(h.db.DB)
	bookings, total, err := repo.List(r.Context(), ownerID, limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load bookings", nil)
		return
	}
	if bookings == nil {
		bookings = []*models.VABooking{}
	}

	writeData(w, http.StatusOK, bookings, &Pagination{Page: page, Limit: limit, Total: total}, "")
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "API key is required", nil)
		return
	}

	var req struct {
		ServiceType   string  `json:"service_type"`
		Description   string  `json:"description"`
		DurationHours float64 `json:"duration_hours"`
		HourlyRate    float64 `json:"hourly_rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	missing := missingFields(map[string]string{
		"service_type": req.ServiceType,
		"description":  req.Description,
	})
	if req.DurationHours <= 0 {
		missing = append(missing, "duration_hours")
	}
	if req.HourlyRate <= 0 {
		missing = append(missing, "hourly_rate")
	}
	if len(missing) > 0 {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", missing)
		return
	}

	booking := &models.VABooking{
		APIUserID:     identity.ID,
		ServiceType:   req.ServiceType,
		Description:   req.Description,
		DurationHours: req.DurationHours,
		HourlyRate:    req.HourlyRate,
		// The client never supplies the total; it is derived here.
		TotalCost: req.DurationHours * req.HourlyRate,
	}

	repo := repositories.NewBookingRepository(h.db.DB)
	if err := repo.Create(r.Context(), booking); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create booking", nil)
		return
	}

	writeData(w, http.StatusCreated, booking, nil, "Booking created")
}
