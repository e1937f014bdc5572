package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/todoapp/todo-api/internal/apperr"
	"github.com/todoapp/todo-api/internal/middleware"
)

const maxBodyBytes = 1 << 20 // 1MB

var (
	errBodyTooLarge = &apperr.Error{Kind: apperr.KindValidation, Message: "Request body too large", StatusCode: http.StatusRequestEntityTooLarge}
	errInvalidBody  = apperr.Validation("Invalid request body")
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func errorResponse(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeError maps err to a response. Errors that carry a client-safe kind
// are reported as is; anything else is logged and answered with fallback.
func writeError(w http.ResponseWriter, r *http.Request, op, fallback string, err error) {
	if e, ok := apperr.As(err); ok && e.Kind != apperr.KindInternal {
		writeJSON(w, e.Status(), errorResponse(e.Message))
		return
	}

	slog.ErrorContext(r.Context(), "request failed",
		"op", op,
		"request_id", chimw.GetReqID(r.Context()),
		"error", err,
	)
	writeJSON(w, http.StatusInternalServerError, errorResponse(fallback))
}

// decodeJSON reads a bounded JSON body into dst. An empty body decodes as {}.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return errBodyTooLarge
		case errors.Is(err, io.EOF):
			return nil
		default:
			return errInvalidBody
		}
	}
	return nil
}

// callerID returns the authenticated user's ID, answering 401 when the
// request did not pass through the token middleware.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Access token required"))
		return "", false
	}
	return id.ID, true
}
