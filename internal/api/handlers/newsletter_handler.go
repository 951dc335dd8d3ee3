package handlers

import (
	"encoding/json"
	"net/http"

	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/pkg/validator"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

type NewsletterHandler struct {
	db *database.DB
}

func NewNewsletterHandler(db *database.DB) *NewsletterHandler {
	return &NewsletterHandler{db: db}
}

func (h *NewsletterHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email  string `json:"email"`
		Source string `json:"source"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if req.Email == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", []string{"email"})
		return
	}
	if err := validator.ValidateEmail(req.Email); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	sub := &models.NewsletterSubscriber{
		Email:  validator.NormalizeEmail(req.Email),
		Source: req.Source,
	}

	repo := repositories.NewSubmissionRepository(h.db.DB)
	if err := repo.Subscribe(r.Context(), sub); err != nil {
		if repositories.IsUniqueViolation(err) {
			errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "This email is already subscribed", nil)
			return
		}
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to subscribe", nil)
		return
	}

	writeData(w, http.StatusCreated, sub, nil, "Subscribed")
}
