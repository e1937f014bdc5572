package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/todoapp/todo-api/internal/apperr"
	"github.com/todoapp/todo-api/internal/model"
)

func TestWriteError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperr.Validation("Title is required"), http.StatusBadRequest, `{"error":"Title is required"}`},
		{"not found", apperr.NotFound("Todo not found"), http.StatusNotFound, `{"error":"Todo not found"}`},
		{"status override", &apperr.Error{Kind: apperr.KindConflict, Message: "User already exists", StatusCode: http.StatusBadRequest}, http.StatusBadRequest, `{"error":"User already exists"}`},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, `{"error":"Failed to fetch todos"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)

			writeError(rec, req, "list todos", "Failed to fetch todos", tt.err)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := strings.TrimSpace(rec.Body.String()); got != tt.wantBody {
				t.Errorf("body = %s, want %s", got, tt.wantBody)
			}
		})
	}
}

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{"object", `{"title":"x"}`, nil},
		{"empty", ``, nil},
		{"malformed", `{"title":`, errInvalidBody},
		{"too large", `{"title":"` + strings.Repeat("x", maxBodyBytes) + `"}`, errBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader(tt.body))

			var dst model.CreateTodoRequest
			err := decodeJSON(rec, req, &dst)
			if err != tt.wantErr {
				t.Errorf("decodeJSON() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCallerIDWithoutIdentity(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/todos", nil)

	if _, ok := callerID(rec, req); ok {
		t.Fatal("callerID() ok = true without identity")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}
