package dto

import (
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// RegisterRequest describes the registration payload.
type RegisterRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	Gender    string `json:"gender" binding:"required"`
	Address   string `json:"address" binding:"required"`
	Password  string `json:"password" binding:"required,min=6"`
}

// LoginRequest describes the login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserResponse is the public view of an account.
type UserResponse struct {
	ID          int64      `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Phone       string     `json:"phone"`
	Gender      string     `json:"gender"`
	Address     string     `json:"address"`
	Role        string     `json:"role"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// AuthResponse carries the issued token and account data.
type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// NewUserResponse maps a domain user to its API representation.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:          user.ID,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Email:       user.Email,
		Phone:       user.Phone,
		Gender:      user.Gender,
		Address:     user.Address,
		Role:        string(user.Role),
		LastLoginAt: user.LastLoginAt,
		CreatedAt:   user.CreatedAt,
	}
}

// UpdateProfileRequest carries optional profile changes. Absent fields stay
// untouched; email and phone cannot be changed.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Gender    *string `json:"gender"`
	Address   *string `json:"address"`
}
