package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// WishlistRepository manages saved products. Add reports whether the item was
// newly created; adding an existing pair returns the stored item unchanged.
type WishlistRepository interface {
	Add(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error)
	Remove(ctx context.Context, userID, productID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.WishlistItem, error)
}
