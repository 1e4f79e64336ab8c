package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrProductUnavailable = errors.New("product is not available")
	ErrSelfPurchase       = errors.New("cannot buy your own listing")
	ErrReservationLost    = errors.New("product is no longer available")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrInvalidRate        = errors.New("invalid commission rate")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrForbidden          = errors.New("forbidden")
)

// InsufficientQuantityError reports a purchase attempt exceeding the units
// currently available. Available carries the actual count so callers can
// surface it to the buyer.
type InsufficientQuantityError struct {
	Available int
}

func (e InsufficientQuantityError) Error() string {
	if e.Available == 1 {
		return "only 1 unit available"
	}
	return fmt.Sprintf("only %d units available", e.Available)
}
