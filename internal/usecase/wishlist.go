package usecase

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// WishlistUseCase manages products saved by buyers.
type WishlistUseCase struct {
	wishlist repository.WishlistRepository
}

// NewWishlistUseCase constructs WishlistUseCase.
func NewWishlistUseCase(wishlist repository.WishlistRepository) *WishlistUseCase {
	return &WishlistUseCase{wishlist: wishlist}
}

// Add saves an approved product. Returns whether the item was newly added;
// re-adding returns the existing item.
func (u *WishlistUseCase) Add(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error) {
	return u.wishlist.Add(ctx, userID, productID)
}

// Remove deletes the saved product or reports ErrNotFound.
func (u *WishlistUseCase) Remove(ctx context.Context, userID, productID int64) error {
	return u.wishlist.Remove(ctx, userID, productID)
}

// List returns saved items whose products are still approved.
func (u *WishlistUseCase) List(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	return u.wishlist.ListByUser(ctx, userID)
}
