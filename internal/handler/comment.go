package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/service"
	"github.com/todoapp/todo-api/internal/validate"
)

// CommentHandler handles HTTP requests for comments on a todo.
type CommentHandler struct {
	service *service.CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{service: svc}
}

// HandleCreate handles POST /api/todos/{id}/comments.
func (h *CommentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var todoID string
	chain := validate.New().ID("todo ID", chi.URLParam(r, "id"), &todoID)
	if err := chain.Err(); err != nil {
		writeError(w, r, "create comment", "Failed to create comment", err)
		return
	}

	var req model.CreateCommentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "create comment", "Failed to create comment", err)
		return
	}
	if err := chain.Text("Content", req.Content).Err(); err != nil {
		writeError(w, r, "create comment", "Failed to create comment", err)
		return
	}

	comment, err := h.service.Create(r.Context(), todoID, userID, req.Content.Value)
	if err != nil {
		writeError(w, r, "create comment", "Failed to create comment", err)
		return
	}
	writeJSON(w, http.StatusCreated, comment)
}

// HandleList handles GET /api/todos/{id}/comments.
func (h *CommentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var todoID string
	if err := validate.New().ID("todo ID", chi.URLParam(r, "id"), &todoID).Err(); err != nil {
		writeError(w, r, "list comments", "Failed to fetch comments", err)
		return
	}

	comments, err := h.service.List(r.Context(), todoID, userID)
	if err != nil {
		writeError(w, r, "list comments", "Failed to fetch comments", err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

// HandleDelete handles DELETE /api/todos/{id}/comments/{commentId}.
func (h *CommentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var todoID, commentID string
	err := validate.New().
		ID("todo ID", chi.URLParam(r, "id"), &todoID).
		ID("comment ID", chi.URLParam(r, "commentId"), &commentID).
		Err()
	if err != nil {
		writeError(w, r, "delete comment", "Failed to delete comment", err)
		return
	}

	if err := h.service.Delete(r.Context(), todoID, commentID, userID); err != nil {
		writeError(w, r, "delete comment", "Failed to delete comment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
