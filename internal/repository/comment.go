package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"

	"github.com/todoapp/todo-api/internal/model"
)

const commentsTable = "comments"

var commentColumns = []string{"id", "content", "todo_id", "user_id", "created_at", "updated_at"}

// CommentRepository handles comment persistence.
type CommentRepository struct {
	db *DB
}

// NewCommentRepository creates a new CommentRepository.
func NewCommentRepository(db *DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a comment. A parent todo deleted concurrently surfaces as
// ErrForeignKey.
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if comment.ID == "" {
		comment.ID = NewID()
	}
	ts := now()
	comment.CreatedAt, comment.UpdatedAt = ts, ts

	q := r.db.sq.Insert(commentsTable).
		Columns(commentColumns...).
		Values(comment.ID, comment.Content, comment.TodoID, comment.UserID, comment.CreatedAt, comment.UpdatedAt)

	_, err := execx(ctx, r.db, q)
	return classify(err, "create comment", commentsTable)
}

// ListByTodo returns a todo's comments, newest first.
func (r *CommentRepository) ListByTodo(ctx context.Context, todoID string) ([]model.Comment, error) {
	q := r.db.sq.Select(commentColumns...).
		From(commentsTable).
		Where(sq.Eq{"todo_id": todoID}).
		OrderBy("created_at DESC", "id DESC")

	comments := []model.Comment{}
	if err := selectx(ctx, r.db, &comments, q); err != nil {
		return nil, classify(err, "list comments", commentsTable)
	}
	return comments, nil
}

// Delete removes a comment that belongs to todoID.
func (r *CommentRepository) Delete(ctx context.Context, todoID, commentID string) error {
	q := r.db.sq.Delete(commentsTable).Where(sq.Eq{"id": commentID, "todo_id": todoID})
	return classify(execAffecting(ctx, r.db, q), "delete comment", commentsTable)
}
