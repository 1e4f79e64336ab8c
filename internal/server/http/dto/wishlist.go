package dto

import (
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// WishlistItemResponse is the API view of a saved product.
type WishlistItemResponse struct {
	ID        int64            `json:"id"`
	ProductID int64            `json:"productId"`
	Product   *ProductResponse `json:"product,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
}

// AddWishlistResponse reports the saved item and whether it was newly added.
type AddWishlistResponse struct {
	Item  WishlistItemResponse `json:"item"`
	Added bool                 `json:"added"`
}

// NewWishlistItemResponse maps a saved item to its API representation.
func NewWishlistItemResponse(item *model.WishlistItem) WishlistItemResponse {
	resp := WishlistItemResponse{
		ID:        item.ID,
		ProductID: item.ProductID,
		CreatedAt: item.CreatedAt,
	}
	if item.Product != nil {
		product := NewProductResponse(item.Product)
		resp.Product = &product
	}
	return resp
}

// NewWishlistItemResponses maps a slice of saved items.
func NewWishlistItemResponses(items []model.WishlistItem) []WishlistItemResponse {
	result := make([]WishlistItemResponse, 0, len(items))
	for i := range items {
		result = append(result, NewWishlistItemResponse(&items[i]))
	}
	return result
}
