package service

import (
	"context"
	"testing"
)

func TestCommentCreateAndList(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	todo := f.todo(t, f.alice, "T")

	first, err := f.comments.Create(ctx, todo.ID, f.alice, "First")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}
	if first.UserID != f.alice || first.TodoID != todo.ID {
		t.Errorf("Create() = %+v", first)
	}
	if _, err := f.comments.Create(ctx, todo.ID, f.alice, "Second"); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	comments, err := f.comments.List(ctx, todo.ID, f.alice)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(comments) != 2 || comments[0].Content != "Second" || comments[1].Content != "First" {
		t.Errorf("List() = %+v, want [Second First]", comments)
	}
}

func TestCommentRequiresOwnedTodo(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	todo := f.todo(t, f.alice, "T")

	if _, err := f.comments.Create(ctx, todo.ID, f.bob, "hi"); err != ErrTodoNotFound {
		t.Errorf("Create() error = %v, want ErrTodoNotFound", err)
	}
	if _, err := f.comments.List(ctx, todo.ID, f.bob); err != ErrTodoNotFound {
		t.Errorf("List() error = %v, want ErrTodoNotFound", err)
	}
	if n := f.store.CommentCount(todo.ID); n != 0 {
		t.Errorf("CommentCount() = %d, want 0", n)
	}
}

func TestCommentDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	todo := f.todo(t, f.alice, "T")
	other := f.todo(t, f.alice, "other")

	comment, err := f.comments.Create(ctx, todo.ID, f.alice, "note")
	if err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	if err := f.comments.Delete(ctx, other.ID, comment.ID, f.alice); err != ErrCommentNotFound {
		t.Errorf("Delete() via other todo error = %v, want ErrCommentNotFound", err)
	}
	if err := f.comments.Delete(ctx, todo.ID, comment.ID, f.bob); err != ErrTodoNotFound {
		t.Errorf("Delete() by other user error = %v, want ErrTodoNotFound", err)
	}
	if err := f.comments.Delete(ctx, todo.ID, comment.ID, f.alice); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}
	if err := f.comments.Delete(ctx, todo.ID, comment.ID, f.alice); err != ErrCommentNotFound {
		t.Errorf("second Delete() error = %v, want ErrCommentNotFound", err)
	}

	if _, err := f.todos.Get(ctx, todo.ID, f.alice); err != nil {
		t.Errorf("parent todo affected by comment delete: %v", err)
	}
}
