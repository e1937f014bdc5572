package service

import (
	"context"

	"github.com/todoapp/todo-api/internal/model"
)

// UserStore persists user accounts. Missing rows are reported with an error
// wrapping repository.ErrNotFound and taken emails with repository.ErrDuplicate.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// TodoStore persists todos. Every lookup is scoped to the owning user.
type TodoStore interface {
	ListByUser(ctx context.Context, userID string) ([]model.Todo, error)
	ListPageByUser(ctx context.Context, userID string, limit, offset int) ([]model.Todo, int, error)
	GetByIDAndUser(ctx context.Context, id, userID string) (*model.Todo, error)
	Create(ctx context.Context, todo *model.Todo) error
	Update(ctx context.Context, id, userID string, patch model.TodoPatch) (*model.Todo, error)
	DeleteAndList(ctx context.Context, id, userID string) ([]model.Todo, error)
}

// CommentStore persists comments.
type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	ListByTodo(ctx context.Context, todoID string) ([]model.Comment, error)
	Delete(ctx context.Context, todoID, commentID string) error
}

// ReactionStore persists reactions.
type ReactionStore interface {
	Create(ctx context.Context, reaction *model.Reaction) error
	ListByTodo(ctx context.Context, todoID string) ([]model.Reaction, error)
	Delete(ctx context.Context, todoID, userID, emoji string) error
}

// TokenIssuer signs access tokens for a user ID.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}
