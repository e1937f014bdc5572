package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
)

// ReactionService manages emoji reactions on todos the caller owns.
type ReactionService struct {
	todos     TodoStore
	reactions ReactionStore
}

// NewReactionService creates a new ReactionService.
func NewReactionService(todos TodoStore, reactions ReactionStore) *ReactionService {
	return &ReactionService{todos: todos, reactions: reactions}
}

// Add records userID's emoji on the todo. Each (todo, user, emoji) may exist once.
func (s *ReactionService) Add(ctx context.Context, todoID, userID, emoji string) (*model.Reaction, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, ErrEmojiRequired
	}
	if err := ownedTodo(ctx, s.todos, todoID, userID); err != nil {
		return nil, err
	}

	reaction := &model.Reaction{
		TodoID: todoID,
		UserID: userID,
		Emoji:  emoji,
	}
	if err := s.reactions.Create(ctx, reaction); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrReactionExists
		case errors.Is(err, repository.ErrForeignKey):
			return nil, ErrTodoNotFound
		}
		return nil, fmt.Errorf("adding reaction: %w", err)
	}
	return reaction, nil
}

// Remove deletes userID's emoji from the todo.
func (s *ReactionService) Remove(ctx context.Context, todoID, userID, emoji string) error {
	emoji = strings.TrimSpace(emoji)
	if err := ownedTodo(ctx, s.todos, todoID, userID); err != nil {
		return err
	}

	if err := s.reactions.Delete(ctx, todoID, userID, emoji); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrReactionNotFound
		}
		return fmt.Errorf("removing reaction: %w", err)
	}
	return nil
}

// List returns the todo's reactions, oldest first.
func (s *ReactionService) List(ctx context.Context, todoID, userID string) ([]model.Reaction, error) {
	if err := ownedTodo(ctx, s.todos, todoID, userID); err != nil {
		return nil, err
	}

	reactions, err := s.reactions.ListByTodo(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("listing reactions: %w", err)
	}
	return reactions, nil
}
