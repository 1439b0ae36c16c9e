package middleware

import (
	"encoding/json"
	"net/http"
)

type sessionChecker interface {
	Active() bool
}

type Middleware struct {
	Session sessionChecker
}

func NewMiddleware(session sessionChecker) *Middleware {
	return &Middleware{Session: session}
}

// RequireSession rejects requests before they reach the backend when no
// session is held. The frontend treats the 401 body the same way it treats
// an expired-token response from the backend.
func (m *Middleware) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !m.Session.Active() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(map[string]string{
				"code":    "session_expired",
				"message": "no active session, please log in",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}
