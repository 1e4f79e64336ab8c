package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	pkgAuth "github.com/polkiloo/marketplace/internal/pkg/auth"
	"github.com/polkiloo/marketplace/internal/test"
)

func validRegisterInput() RegisterInput {
	return RegisterInput{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "Jane@Example.com",
		Phone:     "+4915111111111",
		Gender:    "female",
		Address:   "Somewhere 1",
		Password:  "secret1",
	}
}

func TestRegister(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		users := test.NewUserRepositoryStub()
		uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})

		user, token, err := uc.Register(context.Background(), validRegisterInput())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Email != "jane@example.com" {
			t.Fatalf("email not normalized: %q", user.Email)
		}
		if user.Role != model.RoleUser {
			t.Fatalf("unexpected role: %q", user.Role)
		}
		if user.PasswordHash != "hash:secret1" {
			t.Fatalf("password not hashed: %q", user.PasswordHash)
		}
		if token != "token:1:user" {
			t.Fatalf("unexpected token: %q", token)
		}
	})

	t.Run("missing fields", func(t *testing.T) {
		uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.StrategyStub{})
		in := validRegisterInput()
		in.Email = "   "
		if _, _, err := uc.Register(context.Background(), in); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	})

	t.Run("short password", func(t *testing.T) {
		uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, test.StrategyStub{})
		in := validRegisterInput()
		in.Password = "12345"
		if _, _, err := uc.Register(context.Background(), in); !errors.Is(err, domainErrors.ErrPasswordTooShort) {
			t.Fatalf("expected password too short, got %v", err)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		users := test.NewUserRepositoryStub()
		uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})
		if _, _, err := uc.Register(context.Background(), validRegisterInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, _, err := uc.Register(context.Background(), validRegisterInput()); !errors.Is(err, domainErrors.ErrAlreadyExists) {
			t.Fatalf("expected already exists, got %v", err)
		}
	})

	t.Run("hasher failure", func(t *testing.T) {
		hasher := test.HasherStub{HashFn: func(string) (string, error) { return "", errors.New("bcrypt") }}
		uc := NewAuthUseCase(test.NewUserRepositoryStub(), hasher, test.StrategyStub{})
		if _, _, err := uc.Register(context.Background(), validRegisterInput()); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestAuthenticate(t *testing.T) {
	setup := func(t *testing.T) (*AuthUseCase, *test.UserRepositoryStub) {
		t.Helper()
		users := test.NewUserRepositoryStub()
		uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})
		if _, _, err := uc.Register(context.Background(), validRegisterInput()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		return uc, users
	}

	t.Run("success", func(t *testing.T) {
		uc, users := setup(t)
		user, token, err := uc.Authenticate(context.Background(), " Jane@Example.com ", "secret1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.ID != 1 || token == "" {
			t.Fatalf("unexpected result: user=%+v token=%q", user, token)
		}
		if len(users.LastLoginTouched) != 1 {
			t.Fatal("last login not stamped")
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		uc, _ := setup(t)
		if _, _, err := uc.Authenticate(context.Background(), "nobody@example.com", "secret1"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		uc, _ := setup(t)
		if _, _, err := uc.Authenticate(context.Background(), "jane@example.com", "wrong"); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		uc, _ := setup(t)
		if _, _, err := uc.Authenticate(context.Background(), "", ""); !errors.Is(err, domainErrors.ErrInvalidCredentials) {
			t.Fatalf("expected invalid credentials, got %v", err)
		}
	})
}

func TestParseToken(t *testing.T) {
	strategy := test.StrategyStub{ParseFn: func(token string) (pkgAuth.Claims, error) {
		if token != "good" {
			return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
		}
		return pkgAuth.Claims{UserID: 5, Role: "admin"}, nil
	}}
	uc := NewAuthUseCase(test.NewUserRepositoryStub(), test.HasherStub{}, strategy)

	claims, err := uc.ParseToken("good")
	if err != nil || claims.UserID != 5 || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v err=%v", claims, err)
	}

	if _, err := uc.ParseToken(""); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
	if _, err := uc.ParseToken("bad"); !errors.Is(err, pkgAuth.ErrInvalidToken) {
		t.Fatalf("expected invalid token, got %v", err)
	}
}

func TestProfile(t *testing.T) {
	users := test.NewUserRepositoryStub()
	uc := NewAuthUseCase(users, test.HasherStub{}, test.StrategyStub{})
	if _, _, err := uc.Register(context.Background(), validRegisterInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	user, err := uc.Profile(context.Background(), 1)
	if err != nil || user.Email != "jane@example.com" {
		t.Fatalf("unexpected profile: %+v err=%v", user, err)
	}

	if _, err := uc.Profile(context.Background(), 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	name := "Janet"
	updated, err := uc.UpdateProfile(context.Background(), 1, model.ProfileUpdate{FirstName: &name})
	if err != nil || updated.FirstName != "Janet" {
		t.Fatalf("unexpected update: %+v err=%v", updated, err)
	}
	if updated.Email != "jane@example.com" {
		t.Fatalf("email must stay immutable: %q", updated.Email)
	}
}
