package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
)

// Default page size when only ?page= is given.
const DefaultPageLimit = 20

// TodoService implements owner-scoped todo operations.
type TodoService struct {
	todos TodoStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(todos TodoStore) *TodoService {
	return &TodoService{todos: todos}
}

// List returns all of the user's todos, newest first.
func (s *TodoService) List(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := s.todos.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	return todos, nil
}

// ListPage returns page (1-based) of the user's todos with limit items per page.
func (s *TodoService) ListPage(ctx context.Context, userID string, page, limit int) (model.TodoPage, error) {
	offset := (page - 1) * limit
	todos, total, err := s.todos.ListPageByUser(ctx, userID, limit, offset)
	if err != nil {
		return model.TodoPage{}, fmt.Errorf("listing todo page: %w", err)
	}

	return model.TodoPage{
		Items: todos,
		Pagination: model.Pagination{
			CurrentPage: page,
			TotalPages:  (total + limit - 1) / limit,
			TotalCount:  total,
			Limit:       limit,
		},
	}, nil
}

// Get returns the user's todo.
func (s *TodoService) Get(ctx context.Context, id, userID string) (*model.Todo, error) {
	todo, err := s.todos.GetByIDAndUser(ctx, id, userID)
	if err != nil {
		return nil, todoErr(err, "fetching todo")
	}
	return todo, nil
}

// Create stores a new incomplete todo owned by userID. The title is trimmed
// and an empty description is stored as NULL.
func (s *TodoService) Create(ctx context.Context, userID, title string, description *string) (*model.Todo, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	todo := &model.Todo{
		Title:       title,
		Description: normalizeDescription(description),
		UserID:      userID,
	}
	if err := s.todos.Create(ctx, todo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}
	return todo, nil
}

// Update writes the title and any optional fields set in patch.
func (s *TodoService) Update(ctx context.Context, id, userID string, patch model.TodoPatch) (*model.Todo, error) {
	patch.Title = strings.TrimSpace(patch.Title)
	if patch.Title == "" {
		return nil, ErrTitleRequired
	}
	if patch.SetDescription {
		patch.Description = normalizeDescription(patch.Description)
	}

	todo, err := s.todos.Update(ctx, id, userID, patch)
	if err != nil {
		return nil, todoErr(err, "updating todo")
	}
	return todo, nil
}

// Delete removes the user's todo with its comments and reactions and returns
// the todos that remain.
func (s *TodoService) Delete(ctx context.Context, id, userID string) ([]model.Todo, error) {
	remaining, err := s.todos.DeleteAndList(ctx, id, userID)
	if err != nil {
		return nil, todoErr(err, "deleting todo")
	}
	return remaining, nil
}

func normalizeDescription(d *string) *string {
	if d == nil || *d == "" {
		return nil
	}
	return d
}

func todoErr(err error, action string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTodoNotFound
	}
	return fmt.Errorf("%s: %w", action, err)
}

// ownedTodo checks that todoID exists and belongs to userID.
func ownedTodo(ctx context.Context, todos TodoStore, todoID, userID string) error {
	if _, err := todos.GetByIDAndUser(ctx, todoID, userID); err != nil {
		return todoErr(err, "fetching todo")
	}
	return nil
}
