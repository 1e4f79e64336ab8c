package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// UserRepository describes persistence operations for accounts.
type UserRepository interface {
	Create(ctx context.Context, user model.User) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}
