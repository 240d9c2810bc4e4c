package services

import (
	"context"
	"errors"
	"testing"

	"sneaker-shop/config"
	"sneaker-shop/models"
)

func setupAuthConfig(t *testing.T) {
	t.Helper()
	prev := config.AppConfig
	config.AppConfig = &config.Config{
		JWTSecret: "test-secret",
		JWTExpiry: "1h",
	}
	t.Cleanup(func() { config.AppConfig = prev })
}

func TestRegisterAndLogin(t *testing.T) {
	setupAuthConfig(t)
	store := newStubUserStore()
	svc := NewAuthService(store)

	registered, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@shop.test",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if registered.Token == "" {
		t.Fatal("expected a token on registration")
	}
	if registered.User.Role != models.RoleCustomer {
		t.Fatalf("new accounts must be customers, got %q", registered.User.Role)
	}
	if registered.User.Password == "s3cret-pass" {
		t.Fatal("the password must not be stored in plain text")
	}

	logged, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "bob@shop.test",
		Password: "s3cret-pass",
	})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.Token == "" {
		t.Fatal("expected a token on login")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	setupAuthConfig(t)
	store := newStubUserStore(&models.User{Name: "Bob", Email: "bob@shop.test", Role: models.RoleCustomer})
	svc := NewAuthService(store)

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Other Bob",
		Email:    "bob@shop.test",
		Password: "whatever",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	setupAuthConfig(t)
	store := newStubUserStore()
	svc := NewAuthService(store)

	if _, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Bob",
		Email:    "bob@shop.test",
		Password: "right-password",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "bob@shop.test",
		Password: "wrong-password",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	setupAuthConfig(t)
	svc := NewAuthService(newStubUserStore())

	_, err := svc.Login(context.Background(), models.LoginRequest{
		Email:    "nobody@shop.test",
		Password: "whatever",
	})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
