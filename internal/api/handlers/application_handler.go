package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"hamdukhub/internal/notify"
	"hamdukhub/internal/pkg/errors"
	"hamdukhub/internal/pkg/validator"
	"hamdukhub/internal/platform/database"
	"hamdukhub/internal/platform/models"
	"hamdukhub/internal/platform/repositories"
)

const applicationDedupWindow = 30 * 24 * time.Hour

type ApplicationHandler struct {
	db         *database.DB
	dispatcher *notify.Dispatcher
}

func NewApplicationHandler(db *database.DB, dispatcher *notify.Dispatcher) *ApplicationHandler {
	return &ApplicationHandler{db: db, dispatcher: dispatcher}
}

// Create accepts an anonymous job application. Unlike quotes, applications
// dedup: the same email applying for the same position within 30 days is a
// conflict.
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FullName    string `json:"full_name"`
		Email       string `json:"email"`
		Phone       string `json:"phone"`
		Position    string `json:"position"`
		CoverLetter string `json:"cover_letter"`
		ResumeURL   string `json:"resume_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}

	if missing := missingFields(map[string]string{
		"full_name":    req.FullName,
		"email":        req.Email,
		"position":     req.Position,
		"cover_letter": req.CoverLetter,
	}); len(missing) > 0 {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", missing)
		return
	}

	if err := validator.ValidateEmail(req.Email); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	email := validator.NormalizeEmail(req.Email)

	repo := repositories.NewSubmissionRepository(h.db.DB)
	since := time.Now().Add(-applicationDedupWindow).Unix()
	dup, err := repo.HasRecentApplication(r.Context(), email, req.Position, since)
	if err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to check application", nil)
		return
	}
	if dup {
		errors.WriteError(w, http.StatusConflict, errors.ErrCodeConflict, "An application for this position was already submitted recently", nil)
		return
	}

	app := &models.JobApplication{
		FullName:    req.FullName,
		Email:       email,
		Phone:       req.Phone,
		Position:    req.Position,
		CoverLetter: req.CoverLetter,
		ResumeURL:   req.ResumeURL,
	}
	if err := repo.CreateApplication(r.Context(), app); err != nil {
		errors.WriteError(w, http.StatusInternalServerError, errors.ErrCodeInternal, "Failed to submit application", nil)
		return
	}

	h.dispatcher.Dispatch("job_application.created", app)

	writeData(w, http.StatusCreated, app, nil, "Application received")
}
