package handlers

import (
	"database/sql"
	"net/http"

	"hamdukhub/internal/api/middleware"
	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

// PortalHandler serves the authenticated client-portal dashboards. Tokens
// come from the external auth provider; here they are only verified.
type PortalHandler struct {
	db *database.DB
}

func NewPortalHandler(db *database.DB) *PortalHandler {
	return &PortalHandler{db: db}
}

func (h *PortalHandler) Usage(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Missing authorization", nil)
		return
	}

	users := repositories.NewAPIUserRepository(h.db.DB)
	user, err := users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load account", nil)
		return
	}
	if user == nil {
		errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Account not found", nil)
		return
	}

	logs := repositories.NewUsageLogRepository(h.db.DB)
	recent, err := logs.ListByUser(r.Context(), user.ID, 20)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load usage", nil)
		return
	}
	if recent == nil {
		recent = []*models.UsageLog{}
	}

	writeData(w, http.StatusOK, map[string]interface{}{
		"account":      user,
		"recent_calls": recent,
	}, nil, "")
}

func (h *PortalHandler) Quotes(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Missing authorization", nil)
		return
	}

	page, limit, offset := parsePagination(r)

	repo := repositories.NewQuoteRepository(h.db.DB)
	quotes, total, err := repo.List(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load quotes", nil)
		return
	}
	if quotes == nil {
		quotes = []*models.QuoteRequest{}
	}

	writeData(w, http.StatusOK, quotes, &Pagination{Page: page, Limit: limit, Total: total}, "")
}

func (h *PortalHandler) Bookings(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Missing authorization", nil)
		return
	}

	page, limit, offset := parsePagination(r)

	repo := repositories.NewBookingRepository(h.db.DB)
	bookings, total, err := repo.List(r.Context(), claims.UserID, limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load bookings", nil)
		return
	}
	if bookings == nil {
		bookings = []*models.VABooking{}
	}

	writeData(w, http.StatusOK, bookings, &Pagination{Page: page, Limit: limit, Total: total}, "")
}

// RotateKey regenerates the caller's API key. The old key stops resolving
// immediately; the fresh value is returned exactly once.
func (h *PortalHandler) RotateKey(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "Missing authorization", nil)
		return
	}

	users := repositories.NewAPIUserRepository(h.db.DB)
	key, err := users.RotateKey(r.Context(), claims.UserID)
	if err != nil {
		if err == sql.ErrNoRows {
			errors.WriteError(w, http.StatusNotFound, errors.ErrCodeNotFound, "Account not found", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to rotate key", nil)
		return
	}

	writeData(w, http.StatusOK, map[string]string{"api_key": key}, nil, "API key rotated")
}
