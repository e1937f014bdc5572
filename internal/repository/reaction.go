package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/todoapp/todo-api/internal/model"
)

const reactionsTable = "reactions"

var reactionColumns = []string{"id", "todo_id", "user_id", "emoji", "created_at"}

// ReactionRepository handles reaction persistence.
type ReactionRepository struct {
	db *DB
}

// NewReactionRepository creates a new ReactionRepository.
func NewReactionRepository(db *DB) *ReactionRepository {
	return &ReactionRepository{db: db}
}

// Create inserts a reaction. Repeating a (todo, user, emoji) triple returns
// an error wrapping ErrDuplicate.
func (r *ReactionRepository) Create(ctx context.Context, reaction *model.Reaction) error {
	if reaction.ID == "" {
		reaction.ID = NewID()
	}
	reaction.CreatedAt = now()

	q := r.db.sq.Insert(reactionsTable).
		Columns(reactionColumns...).
		Values(reaction.ID, reaction.TodoID, reaction.UserID, reaction.Emoji, reaction.CreatedAt)

	_, err := execx(ctx, r.db, q)
	return classify(err, "create reaction", reactionsTable)
}

// ListByTodo returns a todo's reactions, oldest first.
func (r *ReactionRepository) ListByTodo(ctx context.Context, todoID string) ([]model.Reaction, error) {
	q := r.db.sq.Select(reactionColumns...).
		From(reactionsTable).
		Where(sq.Eq{"todo_id": todoID}).
		OrderBy("created_at ASC", "id ASC")

	reactions := []model.Reaction{}
	if err := selectx(ctx, r.db, &reactions, q); err != nil {
		return nil, classify(err, "list reactions", reactionsTable)
	}
	return reactions, nil
}

// Delete removes the caller's reaction with the given emoji.
func (r *ReactionRepository) Delete(ctx context.Context, todoID, userID, emoji string) error {
	q := r.db.sq.Delete(reactionsTable).Where(sq.Eq{"todo_id": todoID, "user_id": userID, "emoji": emoji})
	return classify(execAffecting(ctx, r.db, q), "delete reaction", reactionsTable)
}
