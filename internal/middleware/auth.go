package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/devconnector/devconnector-go/internal/crypto"
)

// TokenHeader carries the signed token on gated routes.
const TokenHeader = "x-auth-token"

type contextKey string

const userIDKey contextKey = "userID"

// TokenAuth returns middleware that validates the token in the x-auth-token header
// and stores the caller's user ID in the request context.
func TokenAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(TokenHeader)
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "No token, access denied")
				return
			}

			claims, err := crypto.ValidateToken(token, secret)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "Invalid token")
				return
			}

			ctx := WithUserID(r.Context(), claims.User.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext extracts the authenticated user ID from the request context.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"msg": msg})
}
