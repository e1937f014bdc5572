package repository

import (
	"context"

	"github.com/todoapp/todo-api/internal/model"
)

const usersTable = "users"

var userColumns = []string{"id", "email", "password_hash", "created_at", "updated_at"}

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. ID and timestamps are assigned when empty.
// A taken email returns an error wrapping ErrDuplicate.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = NewID()
	}
	ts := now()
	user.CreatedAt, user.UpdatedAt = ts, ts

	q := r.db.sq.Insert(usersTable).
		Columns(userColumns...).
		Values(user.ID, user.Email, user.PasswordHash, user.CreatedAt, user.UpdatedAt)

	_, err := execx(ctx, r.db, q)
	return classify(err, "create user", usersTable)
}

// GetByEmail retrieves a user by their (already normalized) email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getBy(ctx, "get user by email", "email", email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getBy(ctx, "get user by id", "id", id)
}

func (r *UserRepository) getBy(ctx context.Context, op, column, value string) (*model.User, error) {
	q := r.db.sq.Select(userColumns...).
		From(usersTable).
		Where(column+" = ?", value)

	user := &model.User{}
	if err := getx(ctx, r.db, user, q); err != nil {
		return nil, classify(err, op, usersTable)
	}
	return user, nil
}
