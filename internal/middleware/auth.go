package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"appointment-booking-api/internal/auth"
)

type ctxKey string

const UserIDKey ctxKey = "uid"

// UserID returns the authenticated caller set by Auth. Only call it below
// the middleware.
func UserID(ctx context.Context) string {
	return ctx.Value(UserIDKey).(string)
}

// Auth authenticates requests from Authorization: Bearer <jwt>, falling back
// to the access_token cookie, and places the caller's id in the context.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := ""
			if h := r.Header.Get("Authorization"); h != "" {
				raw = strings.TrimPrefix(h, "Bearer ")
			}
			if raw == "" {
				if c, err := r.Cookie("access_token"); err == nil {
					raw = c.Value
				}
			}
			if raw == "" {
				unauthorized(w, "no token")
				return
			}

			claims, err := auth.ParseToken(raw, secret)
			if err != nil {
				unauthorized(w, "bad token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
