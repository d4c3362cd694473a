package middleware

import (
	"crypto/subtle"
	"net/http"

	"hotelbook/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// AdminAuth guards a handler with HTTP basic auth checked against a bcrypt
// hash. An empty hash rejects every request.
func AdminAuth(log *logger.Logger, user, passwordHash string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, p, ok := r.BasicAuth()
			if !ok || passwordHash == "" ||
				subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 ||
				bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(p)) != nil {
				log.Warn("Admin authentication failed",
					"request_id", GetRequestID(r.Context()),
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
				)
				w.Header().Set("WWW-Authenticate", `Basic realm="hotelbook-admin"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"Admin credentials required","code":"UNAUTHORIZED"}`))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
