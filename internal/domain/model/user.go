package model

import "time"

// UserRole distinguishes regular customers from moderators.
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// User represents a registered marketplace account.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Gender       string
	Address      string
	PasswordHash string
	Role         UserRole
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate carries the mutable subset of profile fields.
// Nil pointers mean "leave unchanged"; email and phone are immutable.
type ProfileUpdate struct {
	FirstName *string
	LastName  *string
	Gender    *string
	Address   *string
}

// Empty reports whether the update changes nothing.
func (p ProfileUpdate) Empty() bool {
	return p.FirstName == nil && p.LastName == nil && p.Gender == nil && p.Address == nil
}
