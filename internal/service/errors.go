package service

import (
	"net/http"

	"github.com/todoapp/todo-api/internal/apperr"
)

var (
	ErrCredentialsRequired = apperr.Validation("Email and password are required")
	ErrInvalidEmail        = apperr.Validation("Invalid email format")
	ErrEmailTooLong        = apperr.Validation("Email must be at most 255 characters")
	ErrPasswordTooShort    = apperr.Validation("Password must be at least 6 characters")
	ErrPasswordTooLong     = apperr.Validation("Password must be at most 72 bytes")
	ErrInvalidCredentials  = apperr.Auth("Invalid credentials")
	ErrUserNotFound        = apperr.NotFound("User not found")

	// ErrUserExists keeps the 400 existing clients expect.
	ErrUserExists = &apperr.Error{Kind: apperr.KindConflict, Message: "User already exists", StatusCode: http.StatusBadRequest}

	ErrTitleRequired   = apperr.Validation("Title is required")
	ErrContentRequired = apperr.Validation("Content is required")
	ErrEmojiRequired   = apperr.Validation("Emoji is required")

	ErrTodoNotFound     = apperr.NotFound("Todo not found")
	ErrCommentNotFound  = apperr.NotFound("Comment not found")
	ErrReactionNotFound = apperr.NotFound("Reaction not found")
	ErrReactionExists   = apperr.Conflict("Reaction already exists")
)
