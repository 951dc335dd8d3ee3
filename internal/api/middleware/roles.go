package middleware

import (
	"net/http"

	"hamdukhub/internal/access"
	"hamdukhub/internal/pkg/errors"
)

// RequireRole gates a route behind an allowed-role set. It must run after
// KeyAuth.Require: the identity comes from the context, and a 403 here is
// still accounted by the key middleware (the quota was charged at
// validation).
func RequireRole(allowed ...access.Role) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			identity, ok := GetIdentity(r.Context())
			if !ok {
				errors.WriteError(w, http.StatusUnauthorized, errors.ErrCodeUnauthorized, "API key is required", nil)
				return
			}

			if !access.Permits(access.Role(identity.Role), allowed) {
				errors.WriteError(w, http.StatusForbidden, errors.ErrCodeForbidden, "Insufficient role for this endpoint", nil)
				return
			}

			next(w, r)
		}
	}
}
