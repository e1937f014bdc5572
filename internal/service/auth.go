package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/todoapp/todo-api/internal/crypto"
	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/repository"
	"github.com/todoapp/todo-api/internal/validate"
)

const minPasswordLength = 6

// maxEmailLength matches the users.email column.
const maxEmailLength = 255

// AuthService handles registration, login and identity lookups.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{
		users:  users,
		tokens: tokens,
	}
}

// NormalizeEmail trims and lower-cases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account and returns an auth token.
func (s *AuthService) Register(ctx context.Context, req model.CreateUserRequest) (model.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" {
		return model.AuthResponse{}, ErrCredentialsRequired
	}
	if !validate.Email(email) {
		return model.AuthResponse{}, ErrInvalidEmail
	}
	if utf8.RuneCountInString(email) > maxEmailLength {
		return model.AuthResponse{}, ErrEmailTooLong
	}
	if utf8.RuneCountInString(req.Password) < minPasswordLength {
		return model.AuthResponse{}, ErrPasswordTooShort
	}
	if len(req.Password) > crypto.MaxPasswordBytes {
		return model.AuthResponse{}, ErrPasswordTooLong
	}

	_, err := s.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return model.AuthResponse{}, ErrUserExists
	case !errors.Is(err, repository.ErrNotFound):
		return model.AuthResponse{}, fmt.Errorf("checking existing user: %w", err)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return model.AuthResponse{}, ErrUserExists
		}
		return model.AuthResponse{}, fmt.Errorf("creating user: %w", err)
	}

	return s.respond(user)
}

// Login authenticates a user and returns an auth token. Unknown emails and
// wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrCredentialsRequired
	}
	if len(req.Password) > crypto.MaxPasswordBytes {
		crypto.BurnPasswordCheck("")
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			crypto.BurnPasswordCheck(req.Password)
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, fmt.Errorf("looking up user: %w", err)
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	return s.respond(user)
}

func (s *AuthService) respond(user *model.User) (model.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("issuing token: %w", err)
	}

	return model.AuthResponse{
		Token: token,
		User:  user.Public(),
	}, nil
}

// CurrentUser returns the public view of the user with the given ID.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, fmt.Errorf("looking up user: %w", err)
	}
	return user.Public(), nil
}
