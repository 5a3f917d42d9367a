package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"tcm-webshop/utils"
)

// Key type for context
type contextKey string

const UserContextKey = contextKey("user")

func deny(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message, "code": code})
}

// AuthMiddleware verifies the session cookie and attaches the claims to the
// request context. The session rides in a cookie, not an Authorization
// header, because the browser client carries it implicitly.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(utils.SessionCookie)
		if err != nil {
			deny(w, http.StatusUnauthorized, "not_authenticated", "Nicht angemeldet")
			return
		}

		claims, err := utils.ParseToken(cookie.Value)
		if err != nil {
			deny(w, http.StatusUnauthorized, "not_authenticated", "Nicht angemeldet")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminMiddleware ensures that the user has admin privileges
func AdminMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := r.Context().Value(UserContextKey).(*utils.Claims)
		if !ok || !claims.IsAdmin {
			deny(w, http.StatusForbidden, "not_authorized", "Nicht autorisiert")
			return
		}
		next.ServeHTTP(w, r)
	})
}
