package model

import "time"

// WishlistItem links a user to a product they saved. The (user, product)
// pair is unique.
type WishlistItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Product   *Product
	CreatedAt time.Time
}
