package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/todoapp/todo-api/internal/crypto"
	"github.com/todoapp/todo-api/internal/model"
	"github.com/todoapp/todo-api/internal/storetest"
)

func newTestAuthService() (*AuthService, *storetest.Store) {
	store := storetest.New()
	return NewAuthService(store.Users(), crypto.NewTokenIssuer("test-secret", time.Hour)), store
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		want     error
	}{
		{"empty email", "", "password123", ErrCredentialsRequired},
		{"blank email", "   ", "password123", ErrCredentialsRequired},
		{"empty password", "ada@example.com", "", ErrCredentialsRequired},
		{"bad email", "not-an-email", "password123", ErrInvalidEmail},
		{"email without tld", "ada@example", "password123", ErrInvalidEmail},
		{"long email", strings.Repeat("a", 300) + "@example.com", "password123", ErrEmailTooLong},
		{"short password", "ada@example.com", "12345", ErrPasswordTooShort},
		{"long password", "ada@example.com", strings.Repeat("p", 73), ErrPasswordTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store := newTestAuthService()

			_, err := svc.Register(context.Background(), model.CreateUserRequest{Email: tt.email, Password: tt.password})
			if err != tt.want {
				t.Errorf("Register() error = %v, want %v", err, tt.want)
			}
			if n := store.UserCount(); n != 0 {
				t.Errorf("UserCount() = %d, want 0", n)
			}
		})
	}
}

func TestRegisterAcceptsMaxLengthEmail(t *testing.T) {
	svc, store := newTestAuthService()
	email := strings.Repeat("a", maxEmailLength-len("@example.com")) + "@example.com"

	resp, err := svc.Register(context.Background(), model.CreateUserRequest{Email: email, Password: "password123"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if resp.User.Email != email {
		t.Errorf("Email = %q, want %q", resp.User.Email, email)
	}
	if n := store.UserCount(); n != 1 {
		t.Errorf("UserCount() = %d, want 1", n)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.CreateUserRequest{Email: "  Ada@Example.com ", Password: "password123"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}
	if reg.User.Email != "ada@example.com" {
		t.Errorf("Register() email = %q, want normalized", reg.User.Email)
	}
	if reg.Token == "" {
		t.Error("Register() returned empty token")
	}

	login, err := svc.Login(ctx, model.LoginRequest{Email: "ADA@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Errorf("Login() user ID = %q, want %q", login.User.ID, reg.User.ID)
	}

	userID, err := crypto.NewTokenIssuer("test-secret", time.Hour).Verify(login.Token)
	if err != nil {
		t.Fatalf("Verify() unexpected error: %v", err)
	}
	if userID != reg.User.ID {
		t.Errorf("token user ID = %q, want %q", userID, reg.User.ID)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, store := newTestAuthService()
	ctx := context.Background()

	req := model.CreateUserRequest{Email: "ada@example.com", Password: "password123"}
	if _, err := svc.Register(ctx, req); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	req.Email = "ADA@example.com"
	if _, err := svc.Register(ctx, req); err != ErrUserExists {
		t.Errorf("Register() error = %v, want ErrUserExists", err)
	}
	if n := store.UserCount(); n != 1 {
		t.Errorf("UserCount() = %d, want 1", n)
	}
	if got := ErrUserExists.Status(); got != 400 {
		t.Errorf("ErrUserExists.Status() = %d, want 400", got)
	}
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, model.CreateUserRequest{Email: "ada@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	tests := []struct {
		name string
		req  model.LoginRequest
	}{
		{"wrong password", model.LoginRequest{Email: "ada@example.com", Password: "wrong-password"}},
		{"unknown email", model.LoginRequest{Email: "bob@example.com", Password: "password123"}},
		{"oversized password", model.LoginRequest{Email: "ada@example.com", Password: strings.Repeat("p", 100)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(ctx, tt.req)
			if err != ErrInvalidCredentials {
				t.Errorf("Login() error = %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "ada@example.com"})
	if err != ErrCredentialsRequired {
		t.Errorf("Login() error = %v, want ErrCredentialsRequired", err)
	}
}

func TestLoginStoreFailure(t *testing.T) {
	svc, store := newTestAuthService()
	store.Err = storetest.ErrUnavailable

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "ada@example.com", Password: "password123"})
	if !errors.Is(err, storetest.ErrUnavailable) {
		t.Errorf("Login() error = %v, want wrapped ErrUnavailable", err)
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, model.CreateUserRequest{Email: "ada@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Register() unexpected error: %v", err)
	}

	user, err := svc.CurrentUser(ctx, reg.User.ID)
	if err != nil {
		t.Fatalf("CurrentUser() unexpected error: %v", err)
	}
	if user != reg.User {
		t.Errorf("CurrentUser() = %+v, want %+v", user, reg.User)
	}

	if _, err := svc.CurrentUser(ctx, "0192f0c4-7d4e-7b6a-9c2e-ffffffffffff"); err != ErrUserNotFound {
		t.Errorf("CurrentUser() error = %v, want ErrUserNotFound", err)
	}
}
