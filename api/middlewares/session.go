package middlewares

import (
	"net/http"

	"PraxisPlan/api"
	"PraxisPlan/api/constants"
	"PraxisPlan/internal/validation"
)

// SessionMiddleware extracts user_id from the request body (JSON, form or
// multipart) and rejects the request unless an active session exists for it.
// The body is restored so handlers can re-read it.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := validation.ExtractUserID(r)
		if err != nil {
			api.RespondWithError(w, http.StatusBadRequest, constants.ErrUserIDRequired)
			return
		}

		session := validation.ValidateSession(userID)
		if session == nil {
			api.RespondWithError(w, http.StatusUnauthorized, constants.ErrInvalidSession)
			return
		}

		next.ServeHTTP(w, r)
	})
}
