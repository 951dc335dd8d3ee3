package handlers

import (
	"encoding/json"
	"net/http"

	"hamdukhub/internal/access"
	"hamdukhub/internal/api/middleware"
	"hamdukhub/internal/notify"
	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/pkg/validator"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

type QuoteHandler struct {
	db         *database.DB
	dispatcher *notify.Dispatcher
}

func NewQuoteHandler(db *database.DB, dispatcher *notify.Dispatcher) *QuoteHandler {
	return &QuoteHandler{db: db, dispatcher: dispatcher}
}

// List requires a key; the role gate upstream admits business and above.
// Premium sees every quote, everyone else only their own rows.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
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

	repo := repositories.NewQuoteRepository(h.db.DB)
	quotes, total, err := repo.List(r.Context(), ownerID, limit, offset)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to load quotes", nil)
		return
	}
	if quotes == nil {
		quotes = []*models.QuoteRequest{}
	}

	writeData(w, http.StatusOK, quotes, &Pagination{Page: page, Limit: limit, Total: total}, "")
}

// Create is key-optional: anonymous submissions are accepted, but a
// presented key must be valid (the middleware enforces that before we get
// here). Identical payloads are never deduplicated; two submissions make
// two quotes.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	var req struct {
		FirstName      string `json:"first_name"`
		LastName       string `json:"last_name"`
		Email          string `json:"email"`
		Phone          string `json:"phone"`
		ServiceType    string `json:"service_type"`
		ProjectDetails string `json:"project_details"`
		Budget         string `json:"budget"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if missing := missingFields(map[string]string{
		"first_name":      req.FirstName,
		"last_name":       req.LastName,
		"email":           req.Email,
		"service_type":    req.ServiceType,
		"project_details": req.ProjectDetails,
	}); len(missing) > 0 {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", missing)
		return
	}

	if err := validator.ValidateEmail(req.Email); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	quote := &models.QuoteRequest{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          validator.NormalizeEmail(req.Email),
		Phone:          req.Phone,
		ServiceType:    req.ServiceType,
		ProjectDetails: req.ProjectDetails,
		Budget:         req.Budget,
	}
	if identity != nil {
		quote.APIUserID = identity.ID
	}

	repo := repositories.NewQuoteRepository(h.db.DB)
	if err := repo.Create(r.Context(), quote); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to create quote request", nil)
		return
	}

	h.dispatcher.Dispatch("quote_request.created", quote)

	writeData(w, http.StatusCreated, quote, nil, "Quote request received")
}
