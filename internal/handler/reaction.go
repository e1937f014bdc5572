package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/service"
	"github.com/todoapp/todo-api/internal/validate"
)

// ReactionHandler handles HTTP requests for emoji reactions on a todo.
type ReactionHandler struct {
	service *service.ReactionService
}

// NewReactionHandler creates a new ReactionHandler.
func NewReactionHandler(svc *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{service: svc}
}

// parse runs the todo ID and emoji checks shared by add and remove.
func (h *ReactionHandler) parse(w http.ResponseWriter, r *http.Request) (todoID, emoji string, err error) {
	chain := validate.New().ID("todo ID", chi.URLParam(r, "id"), &todoID)
	if err := chain.Err(); err != nil {
		return "", "", err
	}

	var req model.ReactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		return "", "", err
	}

	emoji = strings.TrimSpace(req.Emoji.Value)
	err = chain.
		Text("Emoji", req.Emoji).
		MaxRunes(emoji, model.MaxEmojiRunes, "Invalid emoji").
		Err()
	return todoID, emoji, err
}

// HandleAdd handles POST /api/todos/{id}/reactions.
func (h *ReactionHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	todoID, emoji, err := h.parse(w, r)
	if err != nil {
		writeError(w, r, "add reaction", "Failed to add reaction", err)
		return
	}

	reaction, err := h.service.Add(r.Context(), todoID, userID, emoji)
	if err != nil {
		writeError(w, r, "add reaction", "Failed to add reaction", err)
		return
	}
	writeJSON(w, http.StatusCreated, reaction)
}

// HandleRemove handles DELETE /api/todos/{id}/reactions.
func (h *ReactionHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	todoID, emoji, err := h.parse(w, r)
	if err != nil {
		writeError(w, r, "remove reaction", "Failed to remove reaction", err)
		return
	}

	if err := h.service.Remove(r.Context(), todoID, userID, emoji); err != nil {
		writeError(w, r, "remove reaction", "Failed to remove reaction", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleList handles GET /api/todos/{id}/reactions.
func (h *ReactionHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var todoID string
	if err := validate.New().ID("todo ID", chi.URLParam(r, "id"), &todoID).Err(); err != nil {
		writeError(w, r, "list reactions", "Failed to fetch reactions", err)
		return
	}

	reactions, err := h.service.List(r.Context(), todoID, userID)
	if err != nil {
		writeError(w, r, "list reactions", "Failed to fetch reactions", err)
		return
	}
	writeJSON(w, http.StatusOK, reactions)
}
