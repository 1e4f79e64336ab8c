package usecase

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// NotificationFeed is the unread counter plus the latest entries shown in
// the notification bell.
type NotificationFeed struct {
	UnreadCount   int
	Notifications []model.Notification
}

// NotificationUseCase reads notification feeds for sellers and admins.
type NotificationUseCase struct {
	notifications repository.NotificationRepository
}

// NewNotificationUseCase constructs NotificationUseCase.
func NewNotificationUseCase(notifications repository.NotificationRepository) *NotificationUseCase {
	return &NotificationUseCase{notifications: notifications}
}

// ForSeller returns the seller's order notifications.
func (u *NotificationUseCase) ForSeller(ctx context.Context, sellerID int64, limit int) (*NotificationFeed, error) {
	return u.feed(ctx, &sellerID, limit)
}

// ForAdmin returns notifications across all sellers.
func (u *NotificationUseCase) ForAdmin(ctx context.Context, limit int) (*NotificationFeed, error) {
	return u.feed(ctx, nil, limit)
}

func (u *NotificationUseCase) feed(ctx context.Context, sellerID *int64, limit int) (*NotificationFeed, error) {
	unread, err := u.notifications.CountUnread(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	items, err := u.notifications.ListRecent(ctx, sellerID, limit)
	if err != nil {
		return nil, err
	}
	return &NotificationFeed{UnreadCount: unread, Notifications: items}, nil
}
