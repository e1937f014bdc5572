package model

import (
	"time"

	"github.com/todoapp/todo-api/internal/validate"
)

// Todo is a todo item owned by a single user.
type Todo struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	Completed   bool      `db:"completed" json:"completed"`
	UserID      string    `db:"user_id" json:"userId"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateTodoRequest is the body of POST /api/todos. A userId sent by older
// clients is ignored; ownership comes from the bearer token.
type CreateTodoRequest struct {
	Title       validate.String `json:"title"`
	Description validate.String `json:"description"`
}

// UpdateTodoRequest is the body of PUT /api/todos/{id}. Description and
// Completed are only written when present; a null description clears it.
type UpdateTodoRequest struct {
	Title       validate.String `json:"title"`
	Description validate.String `json:"description"`
	Completed   validate.Bool   `json:"completed"`
}

// TodoPatch is the set of columns an update writes.
type TodoPatch struct {
	Title          string
	SetDescription bool
	Description    *string
	Completed      *bool
	UpdatedAt      time.Time
}

// Pagination describes one page of a listing.
type Pagination struct {
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
	TotalCount  int `json:"totalCount"`
	Limit       int `json:"limit"`
}

// TodoPage is the paginated variant of the todo listing.
type TodoPage struct {
	Items      []Todo     `json:"items"`
	Pagination Pagination `json:"pagination"`
}
