package handlers

import (
	"encoding/json"
	"net/http"

	"hamdukhub/internal/access"
	"hamdukhub/internal/api/middleware"
	"hamdukhub/internal/pkg/errors"
)

// AssistantHandler answers with a canned, tier-flavored reply. Any valid
// identity may call it; the role changes the response content only, never
// access.
type AssistantHandler struct{}

func NewAssistantHandler() *AssistantHandler {
	return &AssistantHandler{}
}

var assistantReplies = map[access.Role]string{
	access.RoleGeneral:   "Thanks for reaching out! A member of our team will follow up with general guidance shortly.",
	access.RoleBusiness:  "Thanks for your message. Based on your business plan, we recommend booking a strategy call with our services team.",
	access.RoleDeveloper: "Thanks! Check the developer docs for integration guides, or describe your stack and we'll suggest an approach.",
	access.RolePremium:   "Thanks! As a premium member you have priority support; a dedicated consultant will review this within one business day.",
}

func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "API key is required", nil)
		return
	}

	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Invalid request body", nil)
		return
	}
	if req.Message == "" {
		errors.WriteError(w, http.StatusBadRequest, errors.ErrCodeInvalidInput, "Missing required fields", []string{"message"})
		return
	}

	reply, ok := assistantReplies[access.Role(identity.Role)]
	if !ok {
		reply = assistantReplies[access.RoleGeneral]
	}

	writeData(w, http.StatusOK, map[string]string{
		"reply": reply,
		"tier":  identity.Role,
	}, nil, "")
}
