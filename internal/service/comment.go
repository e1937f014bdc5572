package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
)

// CommentService manages comments on todos the caller owns.
type CommentService struct {
	todos    TodoStore
	comments CommentStore
}

// NewCommentService creates a new CommentService.
func NewCommentService(todos TodoStore, comments CommentStore) *CommentService {
	return &CommentService{todos: todos, comments: comments}
}

// Create adds a comment authored by userID.
func (s *CommentService) Create(ctx context.Context, todoID, userID, content string) (*model.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrContentRequired
	}
	if err := ownedTodo(ctx, s.todos, todoID, userID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		Content: content,
		TodoID:  todoID,
		UserID:  userID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		// The todo was deleted after the ownership check.
		if errors.Is(err, repository.ErrForeignKey) {
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("creating comment: %w", err)
	}
	return comment, nil
}

// List returns the todo's comments, newest first.
func (s *CommentService) List(ctx context.Context, todoID, userID string) ([]model.Comment, error) {
	if err := ownedTodo(ctx, s.todos, todoID, userID); err != nil {
		return nil, err
	}

	comments, err := s.comments.ListByTodo(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("listing comments: %w", err)
	}
	return comments, nil
}

// Delete removes a comment from the todo.
func (s *CommentService) Delete(ctx context.Context, todoID, commentID, userID string) error {
	if err := ownedTodo(ctx, s.todos, todoID, userID); err != nil {
		return err
	}

	if err := s.comments.Delete(ctx, todoID, commentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrCommentNotFound
		}
		return fmt.Errorf("deleting comment: %w", err)
	}
	return nil
}
