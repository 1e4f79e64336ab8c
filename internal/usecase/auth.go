package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	pkgAuth "github.com/polkiloo/marketplace/internal/pkg/auth"
)

// RegisterInput carries the fields required to open an account.
type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Gender    string
	Address   string
	Password  string
}

// AuthUseCase handles account lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: strategy}
}

// Register creates a new account and returns it with an auth token.
func (u *AuthUseCase) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Gender = strings.TrimSpace(in.Gender)
	in.Address = strings.TrimSpace(in.Address)

	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" ||
		in.Gender == "" || in.Address == "" || in.Password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}
	if len(in.Password) < 6 {
		return nil, "", domainErrors.ErrPasswordTooShort
	}

	hash, err := u.hasher.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, model.User{
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Gender:       in.Gender,
		Address:      in.Address,
		PasswordHash: hash,
		Role:         model.RoleUser,
	})
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns the account with a token.
func (u *AuthUseCase) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	// Login stamp is informational only; a failure must not block sign-in.
	_ = u.users.TouchLastLogin(ctx, usr.ID)

	token, err := u.tokens.IssueToken(pkgAuth.Claims{UserID: usr.ID, Role: string(usr.Role)})
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken extracts identity claims from a token.
func (u *AuthUseCase) ParseToken(token string) (pkgAuth.Claims, error) {
	if token == "" {
		return pkgAuth.Claims{}, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}

// Profile fetches an account by identifier.
func (u *AuthUseCase) Profile(ctx context.Context, id int64) (*model.User, error) {
	return u.users.GetByID(ctx, id)
}

// UpdateProfile applies profile changes. Email and phone stay immutable.
func (u *AuthUseCase) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error) {
	return u.users.UpdateProfile(ctx, id, update)
}
