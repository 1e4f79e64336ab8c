package repository

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// NotificationRepository stores seller notifications. A nil sellerID in the
// read operations means "all sellers" (admin view).
type NotificationRepository interface {
	Create(ctx context.Context, notification model.Notification) (*model.Notification, error)
	ListRecent(ctx context.Context, sellerID *int64, limit int) ([]model.Notification, error)
	CountUnread(ctx context.Context, sellerID *int64) (int, error)
}
