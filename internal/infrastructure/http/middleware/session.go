package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/authgate/authgate/internal/application/ports"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "token"

// SessionValidator checks the session cookie and sets the identity in the
// request context. Requests without a valid session never reach the
// handler.
type SessionValidator struct {
	issuer ports.SessionIssuer
}

func NewSessionValidator(issuer ports.SessionIssuer) *SessionValidator {
	return &SessionValidator{issuer: issuer}
}

func (m *SessionValidator) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil || cookie.Value == "" {
			writeUnauthorized(w)
			return
		}
		userID, err := m.issuer.Validate(cookie.Value)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		ctx := WithUserID(r.Context(), userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"message": "unauthorized",
	})
}
