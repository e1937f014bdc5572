package handler

import (
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/service"
	"github.com/todoapp/todo-api/internal/validate"
)

const maxPageLimit = 100

// TodoHandler handles HTTP requests for todos.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleList handles GET /api/todos. With ?page= or ?limit= the response is
// the paginated envelope, otherwise a plain array.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var (
		page, limit       = 1, service.DefaultPageLimit
		pageSet, limitSet bool
	)
	q := r.URL.Query()
	err := validate.New().
		IntParam(q, "page", 1, math.MaxInt32, "page must be at least 1", &page, &pageSet).
		IntParam(q, "limit", 1, maxPageLimit, "limit must be between 1 and 100", &limit, &limitSet).
		Err()
	if err != nil {
		writeError(w, r, "list todos", "Failed to fetch todos", err)
		return
	}

	if !pageSet && !limitSet {
		todos, err := h.service.List(r.Context(), userID)
		if err != nil {
			writeError(w, r, "list todos", "Failed to fetch todos", err)
			return
		}
		writeJSON(w, http.StatusOK, todos)
		return
	}

	result, err := h.service.ListPage(r.Context(), userID, page, limit)
	if err != nil {
		writeError(w, r, "list todos", "Failed to fetch todos", err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleGet handles GET /api/todos/{id}.
func (h *TodoHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var id string
	if err := validate.New().ID("todo ID", chi.URLParam(r, "id"), &id).Err(); err != nil {
		writeError(w, r, "get todo", "Failed to fetch todo", err)
		return
	}

	todo, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, "get todo", "Failed to fetch todo", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// HandleCreate handles POST /api/todos.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req model.CreateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "create todo", "Failed to create todo", err)
		return
	}

	err := validate.New().
		Text("Title", req.Title).
		OptionalText("Description", req.Description).
		Err()
	if err != nil {
		writeError(w, r, "create todo", "Failed to create todo", err)
		return
	}

	var description *string
	if req.Description.Valid() {
		description = &req.Description.Value
	}

	todo, err := h.service.Create(r.Context(), userID, req.Title.Value, description)
	if err != nil {
		writeError(w, r, "create todo", "Failed to create todo", err)
		return
	}
	writeJSON(w, http.StatusCreated, todo)
}

// HandleUpdate handles PUT /api/todos/{id}.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var id string
	chain := validate.New().ID("todo ID", chi.URLParam(r, "id"), &id)
	if err := chain.Err(); err != nil {
		writeError(w, r, "update todo", "Failed to update todo", err)
		return
	}

	var req model.UpdateTodoRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, "update todo", "Failed to update todo", err)
		return
	}

	err := chain.
		Text("Title", req.Title).
		OptionalText("Description", req.Description).
		OptionalBool("Completed", req.Completed).
		Err()
	if err != nil {
		writeError(w, r, "update todo", "Failed to update todo", err)
		return
	}

	patch := model.TodoPatch{Title: req.Title.Value}
	if req.Description.Present() {
		patch.SetDescription = true
		if req.Description.Valid() {
			patch.Description = &req.Description.Value
		}
	}
	if req.Completed.Valid() {
		patch.Completed = &req.Completed.Value
	}

	todo, err := h.service.Update(r.Context(), id, userID, patch)
	if err != nil {
		writeError(w, r, "update todo", "Failed to update todo", err)
		return
	}
	writeJSON(w, http.StatusOK, todo)
}

// HandleDelete handles DELETE /api/todos/{id} and responds with the todos
// that remain.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	var id string
	if err := validate.New().ID("todo ID", chi.URLParam(r, "id"), &id).Err(); err != nil {
		writeError(w, r, "delete todo", "Failed to delete todo", err)
		return
	}

	remaining, err := h.service.Delete(r.Context(), id, userID)
	if err != nil {
		writeError(w, r, "delete todo", "Failed to delete todo", err)
		return
	}
	writeJSON(w, http.StatusOK, remaining)
}
