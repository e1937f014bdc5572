// Package storetest provides in-memory stores with the same error contract
// as the SQL repositories, for tests that run without a database.
package storetest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
)

// Store holds every table behind one lock so a todo delete can cascade.
type Store struct {
	mu        sync.Mutex
	clock     time.Time
	users     map[string]model.User
	todos     map[string]model.Todo
	comments  map[string]model.Comment
	reactions map[string]model.Reaction

	// Err, when set, is returned by every operation.
	Err error
	// TodoErr, when set, is returned by todo operations only.
	TodoErr error
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		users:     make(map[string]model.User),
		todos:     make(map[string]model.Todo),
		comments:  make(map[string]model.Comment),
		reactions: make(map[string]model.Reaction),
	}
}

// tick advances the fake clock so creation order is always observable.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *Store) lock() (func(), error) {
	return s.lockWith(nil)
}

func (s *Store) lockWith(extra error) (func(), error) {
	s.mu.Lock()
	for _, err := range []error{s.Err, extra} {
		if err != nil {
			s.mu.Unlock()
			return nil, err
		}
	}
	return s.mu.Unlock, nil
}

func (t *TodoStore) lock() (func(), error) {
	return t.s.lockWith(t.s.TodoErr)
}

func notFound(op string) error {
	return &repository.Error{Op: op, Err: repository.ErrNotFound}
}

// Users returns the user store view.
func (s *Store) Users() *UserStore { return &UserStore{s} }

// Todos returns the todo store view.
func (s *Store) Todos() *TodoStore { return &TodoStore{s} }

// Comments returns the comment store view.
func (s *Store) Comments() *CommentStore { return &CommentStore{s} }

// Reactions returns the reaction store view.
func (s *Store) Reactions() *ReactionStore { return &ReactionStore{s} }

// CommentCount returns the number of stored comments on todoID.
func (s *Store) CommentCount(todoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.comments {
		if c.TodoID == todoID {
			n++
		}
	}
	return n
}

// ReactionCount returns the number of stored reactions on todoID.
func (s *Store) ReactionCount(todoID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.reactions {
		if r.TodoID == todoID {
			n++
		}
	}
	return n
}

// UserCount returns the number of registered users.
func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

type UserStore struct{ s *Store }

func (u *UserStore) Create(ctx context.Context, user *model.User) error {
	unlock, err := u.s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	for _, existing := range u.s.users {
		if existing.Email == user.Email {
			return &repository.Error{Op: "create user", Err: repository.ErrDuplicate}
		}
	}
	if user.ID == "" {
		user.ID = repository.NewID()
	}
	ts := u.s.tick()
	user.CreatedAt, user.UpdatedAt = ts, ts
	u.s.users[user.ID] = *user
	return nil
}

func (u *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	unlock, err := u.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	for _, user := range u.s.users {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, notFound("get user by email")
}

func (u *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	unlock, err := u.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	user, ok := u.s.users[id]
	if !ok {
		return nil, notFound("get user by id")
	}
	return &user, nil
}

// Delete removes a user; used to simulate an account vanishing under a live token.
func (u *UserStore) Delete(id string) {
	u.s.mu.Lock()
	defer u.s.mu.Unlock()
	delete(u.s.users, id)
}

type TodoStore struct{ s *Store }

func newestFirst(todos []model.Todo) {
	sort.Slice(todos, func(i, j int) bool {
		if !todos[i].CreatedAt.Equal(todos[j].CreatedAt) {
			return todos[i].CreatedAt.After(todos[j].CreatedAt)
		}
		return todos[i].ID > todos[j].ID
	})
}

func (t *TodoStore) listLocked(userID string) []model.Todo {
	todos := []model.Todo{}
	for _, todo := range t.s.todos {
		if todo.UserID == userID {
			todos = append(todos, todo)
		}
	}
	newestFirst(todos)
	return todos
}

func (t *TodoStore) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	unlock, err := t.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return t.listLocked(userID), nil
}

func (t *TodoStore) ListPageByUser(ctx context.Context, userID string, limit, offset int) ([]model.Todo, int, error) {
	unlock, err := t.lock()
	if err != nil {
		return nil, 0, err
	}
	defer unlock()

	all := t.listLocked(userID)
	if offset >= len(all) {
		return []model.Todo{}, len(all), nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], len(all), nil
}

func (t *TodoStore) GetByIDAndUser(ctx context.Context, id, userID string) (*model.Todo, error) {
	unlock, err := t.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	todo, ok := t.s.todos[id]
	if !ok || todo.UserID != userID {
		return nil, notFound("get todo")
	}
	return &todo, nil
}

func (t *TodoStore) Create(ctx context.Context, todo *model.Todo) error {
	unlock, err := t.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := t.s.users[todo.UserID]; !ok {
		return &repository.Error{Op: "create todo", Err: repository.ErrForeignKey}
	}
	if todo.ID == "" {
		todo.ID = repository.NewID()
	}
	ts := t.s.tick()
	todo.CreatedAt, todo.UpdatedAt = ts, ts
	t.s.todos[todo.ID] = *todo
	return nil
}

func (t *TodoStore) Update(ctx context.Context, id, userID string, patch model.TodoPatch) (*model.Todo, error) {
	unlock, err := t.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	todo, ok := t.s.todos[id]
	if !ok || todo.UserID != userID {
		return nil, notFound("update todo")
	}

	todo.Title = patch.Title
	if patch.SetDescription {
		todo.Description = patch.Description
	}
	if patch.Completed != nil {
		todo.Completed = *patch.Completed
	}
	todo.UpdatedAt = t.s.tick()
	t.s.todos[id] = todo
	return &todo, nil
}

func (t *TodoStore) DeleteAndList(ctx context.Context, id, userID string) ([]model.Todo, error) {
	unlock, err := t.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	todo, ok := t.s.todos[id]
	if !ok || todo.UserID != userID {
		return nil, notFound("delete todo")
	}

	for rid, r := range t.s.reactions {
		if r.TodoID == id {
			delete(t.s.reactions, rid)
		}
	}
	for cid, c := range t.s.comments {
		if c.TodoID == id {
			delete(t.s.comments, cid)
		}
	}
	delete(t.s.todos, id)
	return t.listLocked(userID), nil
}

type CommentStore struct{ s *Store }

func (c *CommentStore) Create(ctx context.Context, comment *model.Comment) error {
	unlock, err := c.s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := c.s.todos[comment.TodoID]; !ok {
		return &repository.Error{Op: "create comment", Err: repository.ErrForeignKey}
	}
	if comment.ID == "" {
		comment.ID = repository.NewID()
	}
	ts := c.s.tick()
	comment.CreatedAt, comment.UpdatedAt = ts, ts
	c.s.comments[comment.ID] = *comment
	return nil
}

func (c *CommentStore) ListByTodo(ctx context.Context, todoID string) ([]model.Comment, error) {
	unlock, err := c.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	comments := []model.Comment{}
	for _, comment := range c.s.comments {
		if comment.TodoID == todoID {
			comments = append(comments, comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.After(comments[j].CreatedAt)
		}
		return comments[i].ID > comments[j].ID
	})
	return comments, nil
}

func (c *CommentStore) Delete(ctx context.Context, todoID, commentID string) error {
	unlock, err := c.s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	comment, ok := c.s.comments[commentID]
	if !ok || comment.TodoID != todoID {
		return notFound("delete comment")
	}
	delete(c.s.comments, commentID)
	return nil
}

type ReactionStore struct{ s *Store }

func (r *ReactionStore) Create(ctx context.Context, reaction *model.Reaction) error {
	unlock, err := r.s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	if _, ok := r.s.todos[reaction.TodoID]; !ok {
		return &repository.Error{Op: "create reaction", Err: repository.ErrForeignKey}
	}
	for _, existing := range r.s.reactions {
		if existing.TodoID == reaction.TodoID && existing.UserID == reaction.UserID && existing.Emoji == reaction.Emoji {
			return &repository.Error{Op: "create reaction", Err: repository.ErrDuplicate}
		}
	}
	if reaction.ID == "" {
		reaction.ID = repository.NewID()
	}
	reaction.CreatedAt = r.s.tick()
	r.s.reactions[reaction.ID] = *reaction
	return nil
}

func (r *ReactionStore) ListByTodo(ctx context.Context, todoID string) ([]model.Reaction, error) {
	unlock, err := r.s.lock()
	if err != nil {
		return nil, err
	}
	defer unlock()

	reactions := []model.Reaction{}
	for _, reaction := range r.s.reactions {
		if reaction.TodoID == todoID {
			reactions = append(reactions, reaction)
		}
	}
	sort.Slice(reactions, func(i, j int) bool {
		if !reactions[i].CreatedAt.Equal(reactions[j].CreatedAt) {
			return reactions[i].CreatedAt.Before(reactions[j].CreatedAt)
		}
		return reactions[i].ID < reactions[j].ID
	})
	return reactions, nil
}

func (r *ReactionStore) Delete(ctx context.Context, todoID, userID, emoji string) error {
	unlock, err := r.s.lock()
	if err != nil {
		return err
	}
	defer unlock()

	for id, reaction := range r.s.reactions {
		if reaction.TodoID == todoID && reaction.UserID == userID && reaction.Emoji == emoji {
			delete(r.s.reactions, id)
			return nil
		}
	}
	return notFound("delete reaction")
}

// ErrUnavailable is a convenient value for Store.Err.
var ErrUnavailable = errors.New("storetest: store unavailable")
