package dto

import (
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// NotificationResponse is the API view of a notification.
type NotificationResponse struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message"`
	ProductID *int64    `json:"productId,omitempty"`
	SellerID  int64     `json:"sellerId"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationFeedResponse carries the unread counter and recent entries.
type NotificationFeedResponse struct {
	UnreadCount   int                    `json:"unreadCount"`
	Notifications []NotificationResponse `json:"notifications"`
}

// NewNotificationFeedResponse maps a feed to its API representation.
func NewNotificationFeedResponse(feed *usecase.NotificationFeed) NotificationFeedResponse {
	items := make([]NotificationResponse, 0, len(feed.Notifications))
	for _, n := range feed.Notifications {
		items = append(items, newNotificationResponse(n))
	}
	return NotificationFeedResponse{UnreadCount: feed.UnreadCount, Notifications: items}
}

func newNotificationResponse(n model.Notification) NotificationResponse {
	return NotificationResponse{
		ID:        n.ID,
		Type:      string(n.Type),
		Message:   n.Message,
		ProductID: n.ProductID,
		SellerID:  n.SellerID,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt,
	}
}
