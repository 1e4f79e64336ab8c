package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// ProductRepository describes persistence operations for listings.
//
// Reserve is the single serialization point for concurrent purchases: it must
// decrement quantity with one conditional write (approved status and enough
// units), reporting ErrReservationLost when the condition no longer holds.
// Release is the compensating update restoring quantity and approved status.
type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (*model.Product, error)
	GetByID(ctx context.Context, id int64) (*model.Product, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Product, error)
	ListByStatus(ctx context.Context, status *model.ProductStatus) ([]model.Product, error)
	Reserve(ctx context.Context, productID int64, quantity int) (*model.Product, error)
	MarkSold(ctx context.Context, productID int64) (*model.Product, error)
	Release(ctx context.Context, productID int64, quantity int) error
	SetStatus(ctx context.Context, productID int64, status model.ProductStatus) (*model.Product, error)
}
