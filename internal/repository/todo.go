package repository

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/todoapp/todo-api/internal/model"
)

const todosTable = "todos"

var todoColumns = []string{"id", "title", "description", "completed", "user_id", "created_at", "updated_at"}

// TodoRepository handles todo persistence. Every read and write is scoped to
// the owning user, so a todo owned by someone else looks like a missing one.
type TodoRepository struct {
	db *DB
}

// NewTodoRepository creates a new TodoRepository.
func NewTodoRepository(db *DB) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) listQuery(userID string) sq.SelectBuilder {
	return r.db.sq.Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC", "id DESC")
}

func (r *TodoRepository) list(ctx context.Context, q sqlx.QueryerContext, userID string) ([]model.Todo, error) {
	todos := []model.Todo{}
	if err := selectx(ctx, q, &todos, r.listQuery(userID)); err != nil {
		return nil, err
	}
	return todos, nil
}

// ListByUser returns all of the user's todos, newest first.
func (r *TodoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	todos, err := r.list(ctx, r.db, userID)
	if err != nil {
		return nil, classify(err, "list todos", todosTable)
	}
	return todos, nil
}

// ListPageByUser returns one page of the user's todos together with the
// total count, both read from the same snapshot.
func (r *TodoRepository) ListPageByUser(ctx context.Context, userID string, limit, offset int) ([]model.Todo, int, error) {
	var (
		todos []model.Todo
		total int
	)

	opts := &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}
	err := r.db.WithTx(ctx, opts, func(tx *sqlx.Tx) error {
		count := r.db.sq.Select("COUNT(*)").
			From(todosTable).
			Where(sq.Eq{"user_id": userID})
		if err := getx(ctx, tx, &total, count); err != nil {
			return err
		}

		todos = []model.Todo{}
		page := r.listQuery(userID).Limit(uint64(limit)).Offset(uint64(offset))
		return selectx(ctx, tx, &todos, page)
	})
	if err != nil {
		return nil, 0, classify(err, "list todo page", todosTable)
	}
	return todos, total, nil
}

// GetByIDAndUser retrieves a todo only if userID owns it.
func (r *TodoRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*model.Todo, error) {
	todo, err := r.get(ctx, r.db, id, userID)
	if err != nil {
		return nil, classify(err, "get todo", todosTable)
	}
	return todo, nil
}

func (r *TodoRepository) get(ctx context.Context, q sqlx.QueryerContext, id, userID string) (*model.Todo, error) {
	query := r.db.sq.Select(todoColumns...).
		From(todosTable).
		Where(sq.Eq{"id": id, "user_id": userID})

	todo := &model.Todo{}
	if err := getx(ctx, q, todo, query); err != nil {
		return nil, err
	}
	return todo, nil
}

// Create inserts a todo. ID and timestamps are assigned when empty.
func (r *TodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	if todo.ID == "" {
		todo.ID = NewID()
	}
	ts := now()
	todo.CreatedAt, todo.UpdatedAt = ts, ts

	q := r.db.sq.Insert(todosTable).
		Columns(todoColumns...).
		Values(todo.ID, todo.Title, todo.Description, todo.Completed, todo.UserID, todo.CreatedAt, todo.UpdatedAt)

	_, err := execx(ctx, r.db, q)
	return classify(err, "create todo", todosTable)
}

// Update applies patch to the user's todo and returns the stored row.
func (r *TodoRepository) Update(ctx context.Context, id, userID string, patch model.TodoPatch) (*model.Todo, error) {
	if patch.UpdatedAt.IsZero() {
		patch.UpdatedAt = now()
	}

	q := r.db.sq.Update(todosTable).
		Set("title", patch.Title).
		Set("updated_at", patch.UpdatedAt)
	if patch.SetDescription {
		q = q.Set("description", patch.Description)
	}
	if patch.Completed != nil {
		q = q.Set("completed", *patch.Completed)
	}
	q = q.Where(sq.Eq{"id": id, "user_id": userID})

	var todo *model.Todo
	err := r.db.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		if err := execAffecting(ctx, tx, q); err != nil {
			return err
		}
		var err error
		todo, err = r.get(ctx, tx, id, userID)
		return err
	})
	if err != nil {
		return nil, classify(err, "update todo", todosTable)
	}
	return todo, nil
}

// DeleteAndList removes the user's todo with its reactions and comments and
// returns the todos that remain, all in one transaction.
func (r *TodoRepository) DeleteAndList(ctx context.Context, id, userID string) ([]model.Todo, error) {
	var remaining []model.Todo
	err := r.db.WithTx(ctx, nil, func(tx *sqlx.Tx) error {
		lock := r.db.sq.Select("id").
			From(todosTable).
			Where(sq.Eq{"id": id, "user_id": userID}).
			Suffix("FOR UPDATE")
		var locked string
		if err := getx(ctx, tx, &locked, lock); err != nil {
			return err
		}

		children := []string{reactionsTable, commentsTable}
		for _, table := range children {
			del := r.db.sq.Delete(table).Where(sq.Eq{"todo_id": id})
			if _, err := execx(ctx, tx, del); err != nil {
				return err
			}
		}

		del := r.db.sq.Delete(todosTable).Where(sq.Eq{"id": id, "user_id": userID})
		if err := execAffecting(ctx, tx, del); err != nil {
			return err
		}

		var err error
		remaining, err = r.list(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, classify(err, "delete todo", todosTable)
	}
	return remaining, nil
}
