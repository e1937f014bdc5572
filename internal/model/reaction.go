package model

import (
	"time"

	"github.com/todoapp/todo-api/internal/validate"
)

// MaxEmojiRunes bounds the length of a reaction emoji.
const MaxEmojiRunes = 16

// Reaction is one user's emoji on a todo. (TodoID, UserID, Emoji) is unique.
type Reaction struct {
	ID        string    `db:"id" json:"id"`
	TodoID    string    `db:"todo_id" json:"todoId"`
	UserID    string    `db:"user_id" json:"userId"`
	Emoji     string    `db:"emoji" json:"emoji"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// ReactionRequest is the body of POST and DELETE /api/todos/{id}/reactions.
type ReactionRequest struct {
	Emoji validate.String `json:"emoji"`
}
