package model

import "time"

// NotificationType labels the event a notification describes.
type NotificationType string

const (
	NotificationOrderPlaced      NotificationType = "order_placed"
	NotificationListingSubmitted NotificationType = "listing_submitted"
)

// Notification is a message addressed to a seller (and visible to admins).
type Notification struct {
	ID        int64
	Type      NotificationType
	Message   string
	ProductID *int64
	SellerID  int64
	IsRead    bool
	CreatedAt time.Time
}
