package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/rankforge/agency-api/internal/core/domain"
)

const testSecret = "test-secret"

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	user, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if user.ID == "" {
		t.Error("expected a generated user id")
	}
	if user.Role != domain.RoleUser {
		t.Errorf("public registration must always create role %q, got %q", domain.RoleUser, user.Role)
	}
	if user.PasswordHash == "s3cret-pass" {
		t.Error("password must not be stored in plaintext")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("s3cret-pass")) != nil {
		t.Error("stored hash must verify against the original password")
	}
	if repo.byEmail["dana@example.com"] == nil {
		t.Error("user was not persisted")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	_, err := svc.Register(context.Background(), "Other Dana", "dana@example.com", "another-pass")
	if !errors.Is(err, domain.ErrUserExists) {
		t.Errorf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Register_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	for name, in := range map[string][3]string{
		"no name":     {"", "dana@example.com", "pass"},
		"no email":    {"Dana", "", "pass"},
		"no password": {"Dana", "dana@example.com", ""},
	} {
		if _, err := svc.Register(context.Background(), in[0], in[1], in[2]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Errorf("%s: expected ErrInvalidCredentials, got %v", name, err)
		}
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	registered, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	token, user, err := svc.Login(context.Background(), "dana@example.com", "s3cret-pass")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("login must return the registered user, got %q", user.ID)
	}

	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token must verify with the signing secret: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != registered.ID {
		t.Errorf("sub claim: want %q, got %v", registered.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleUser {
		t.Errorf("role claim: want %q, got %v", domain.RoleUser, claims["role"])
	}
	if claims["name"] != "Dana" {
		t.Errorf("name claim: want %q, got %v", "Dana", claims["name"])
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, err := svc.Register(context.Background(), "Dana", "dana@example.com", "s3cret-pass"); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, _, err := svc.Login(context.Background(), "dana@example.com", "wrong")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	_, _, err := svc.Login(context.Background(), "nobody@example.com", "pass")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, testSecret, time.Hour)

	if _, _, err := svc.Login(context.Background(), "", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty email: expected ErrInvalidCredentials, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "dana@example.com", ""); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Errorf("empty password: expected ErrInvalidCredentials, got %v", err)
	}
}
