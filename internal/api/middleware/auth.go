package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/shindesiddhant-415/Honeypot/internal/auth"
	"github.com/shindesiddhant-415/Honeypot/internal/metrics"
)

// APIKeyHeader carries the caller's credential.
const APIKeyHeader = "X-API-Key"

// AuthMiddleware gates the API behind the configured key allow-list.
type AuthMiddleware struct {
	keys *auth.Keyring
}

// NewAuthMiddleware creates the middleware around a keyring.
func NewAuthMiddleware(keys *auth.Keyring) *AuthMiddleware {
	return &AuthMiddleware{keys: keys}
}

// RequireAuth rejects requests whose API key is missing or not on the
// allow-list. The check runs before any session state is touched.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(APIKeyHeader)
		if key == "" {
			metrics.BlockedRequests.WithLabelValues("missing_api_key").Inc()
			jsonError(w, http.StatusUnauthorized, "missing API key")
			return
		}
		if !m.keys.Verify(key) {
			metrics.BlockedRequests.WithLabelValues("invalid_api_key").Inc()
			jsonError(w, http.StatusUnauthorized, "invalid API key")
			return
		}

		next.ServeHTTP(w, r)
	})
}

func jsonError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
