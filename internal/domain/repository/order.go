package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (*model.Order, error)
	ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error)
	ListBySeller(ctx context.Context, sellerID int64) ([]model.Order, error)
}
