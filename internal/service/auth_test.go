package service

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/devconnector/devconnector-go/internal/crypto"
	"github.com/devconnector/devconnector-go/internal/model"
	"github.com/devconnector/devconnector-go/internal/repository"
)

const testSecret = "test-secret"

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := repository.NewDB(repository.DriverSQLite, ":memory:")
	if err != nil {
		t.Fatalf("NewDB() unexpected error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := repository.EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema() unexpected error: %v", err)
	}
	return db
}

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(repository.NewUserRepository(newTestDB(t)), testSecret)
}

func strPtr(s string) *string { return &s }

func TestCreateUser_EmptyEmail(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.CreateUser(context.Background(), model.CreateUserRequest{Password: "password123"})
	if err != ErrEmailRequired {
		t.Errorf("expected ErrEmailRequired, got %v", err)
	}
}

func TestCreateUser_EmptyPassword(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.CreateUser(context.Background(), model.CreateUserRequest{Email: "test@example.com"})
	if err != ErrPasswordRequired {
		t.Errorf("expected ErrPasswordRequired, got %v", err)
	}
}

func TestCreateUser_NormalizesEmailAndRejectsDuplicates(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, model.CreateUserRequest{Name: "Ada", Email: " Ada@Example.COM ", Password: "pw"})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}
	if user.Email != "ada@example.com" {
		t.Errorf("Email = %q, want lowercased", user.Email)
	}

	_, err = svc.CreateUser(ctx, model.CreateUserRequest{Email: "ada@example.com", Password: "pw"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLogin_ValidationErrors(t *testing.T) {
	svc := newTestAuthService(t)

	_, err := svc.Login(context.Background(), model.LoginRequest{Email: "not-an-email"})

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if len(verr.Fields) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", verr.Fields)
	}
	if verr.Fields[0].Param != "email" || verr.Fields[0].Msg != "Email should be valid" || verr.Fields[0].Value != "not-an-email" {
		t.Errorf("unexpected email error: %+v", verr.Fields[0])
	}
	if verr.Fields[1].Param != "password" || verr.Fields[1].Msg != "Password is required" {
		t.Errorf("unexpected password error: %+v", verr.Fields[1])
	}
}

func TestLogin_Success(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, model.CreateUserRequest{Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	resp, err := svc.Login(ctx, model.LoginRequest{Email: "ADA@example.com", Password: strPtr("secret")})
	if err != nil {
		t.Fatalf("Login() unexpected error: %v", err)
	}

	claims, err := crypto.ValidateToken(resp.Token, testSecret)
	if err != nil {
		t.Fatalf("ValidateToken() unexpected error: %v", err)
	}
	if claims.User.ID != user.ID {
		t.Errorf("token user = %q, want %q", claims.User.ID, user.ID)
	}
}

func TestLogin_WrongPasswordAndUnknownEmailMatch(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	if _, err := svc.CreateUser(ctx, model.CreateUserRequest{Email: "ada@example.com", Password: "secret"}); err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	_, errWrong := svc.Login(ctx, model.LoginRequest{Email: "ada@example.com", Password: strPtr("nope")})
	_, errUnknown := svc.Login(ctx, model.LoginRequest{Email: "bob@example.com", Password: strPtr("secret")})

	if errWrong != ErrInvalidCredentials || errUnknown != ErrInvalidCredentials {
		t.Errorf("expected ErrInvalidCredentials twice, got %v and %v", errWrong, errUnknown)
	}
}

func TestGetUser(t *testing.T) {
	svc := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, model.CreateUserRequest{Name: "Ada", Email: "ada@example.com", Password: "secret"})
	if err != nil {
		t.Fatalf("CreateUser() unexpected error: %v", err)
	}

	user, err := svc.GetUser(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetUser() unexpected error: %v", err)
	}
	if user.Name != "Ada" {
		t.Errorf("Name = %q, want %q", user.Name, "Ada")
	}

	if _, err := svc.GetUser(ctx, "missing"); err != ErrUserNotFound {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}
