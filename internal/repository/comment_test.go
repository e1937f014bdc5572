package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/todoapp/todo-api/internal/model"
)

func TestCommentRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t, DriverPostgres)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO comments (id,content,todo_id,user_id,created_at,updated_at) VALUES ($1,$2,$3,$4,$5,$6)")).
		WithArgs(sqlmock.AnyArg(), "First", todoID, ownerID, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	comment := &model.Comment{Content: "First", TodoID: todoID, UserID: ownerID}
	require.NoError(t, NewCommentRepository(db).Create(context.Background(), comment))
	assert.NotEmpty(t, comment.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryCreateParentGone(t *testing.T) {
	db, mock := newMockDB(t, DriverPostgres)
	mock.ExpectExec(`INSERT INTO comments`).WillReturnError(&pq.Error{Code: "23503", Constraint: "comments_todo_id_fkey"})

	err := NewCommentRepository(db).Create(context.Background(), &model.Comment{Content: "x", TodoID: todoID, UserID: ownerID})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestCommentRepositoryListByTodo(t *testing.T) {
	db, mock := newMockDB(t, DriverPostgres)
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, content, todo_id, user_id, created_at, updated_at FROM comments WHERE todo_id = $1 ORDER BY created_at DESC, id DESC")).
		WithArgs(todoID).
		WillReturnRows(sqlmock.NewRows(commentColumns).
			AddRow("c2", "Second", todoID, ownerID, ts.Add(time.Second), ts.Add(time.Second)).
			AddRow("c1", "First", todoID, ownerID, ts, ts))

	comments, err := NewCommentRepository(db).ListByTodo(context.Background(), todoID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "Second", comments[0].Content)
	assert.Equal(t, "First", comments[1].Content)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepositoryDelete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"missing", 0, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, DriverPostgres)
			mock.ExpectExec(regexp.QuoteMeta("DELETE FROM comments WHERE id = $1 AND todo_id = $2")).
				WithArgs("c1", todoID).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := NewCommentRepository(db).Delete(context.Background(), todoID, "c1")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
