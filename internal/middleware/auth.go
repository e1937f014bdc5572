package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
)

type contextKey string

const identityKey contextKey = "identity"

// Identity is the verified caller attached to authenticated requests.
type Identity struct {
	ID    string
	Email string
}

// TokenVerifier validates an access token and returns its user ID.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserLookup resolves a user ID to a stored account.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// Authenticate returns middleware that requires a valid Bearer token for a
// user that still exists.
func Authenticate(tokens TokenVerifier, users UserLookup) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r.Header.Get("Authorization"))
			if token == "" {
				writeJSONError(w, http.StatusUnauthorized, "Access token required")
				return
			}

			userID, err := tokens.Verify(token)
			if err != nil {
				writeJSONError(w, http.StatusForbidden, "Invalid or expired token")
				return
			}

			user, err := users.GetByID(r.Context(), userID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					writeJSONError(w, http.StatusForbidden, "Invalid or expired token")
					return
				}
				slog.ErrorContext(r.Context(), "identity lookup failed",
					"op", "authenticate",
					"request_id", chimw.GetReqID(r.Context()),
					"error", err,
				)
				writeJSONError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			ctx := WithIdentity(r.Context(), Identity{ID: user.ID, Email: user.Email})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken returns whatever follows the scheme. The scheme word is not
// checked, so a credential under another scheme fails verification instead.
func bearerToken(header string) string {
	_, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return ""
	}
	return strings.TrimSpace(token)
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext extracts the authenticated caller from the request context.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
