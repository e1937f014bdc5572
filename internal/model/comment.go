package model

import (
	"time"

	"github.com/todoapp/todo-api/internal/validate"
)

// Comment is a note attached to a todo.
type Comment struct {
	ID        string    `db:"id" json:"id"`
	Content   string    `db:"content" json:"content"`
	TodoID    string    `db:"todo_id" json:"todoId"`
	UserID    string    `db:"user_id" json:"userId"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// CreateCommentRequest is the body of POST /api/todos/{id}/comments.
type CreateCommentRequest struct {
	Content validate.String `json:"content"`
}
