package model

import "time"

// ProductStatus describes moderation and sale lifecycle of a listing.
type ProductStatus string

const (
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusPending  ProductStatus = "pending"
	ProductStatusApproved ProductStatus = "approved"
	ProductStatusRejected ProductStatus = "rejected"
	ProductStatusSold     ProductStatus = "sold"
)

// ProductCondition grades the physical state of a second-hand item.
type ProductCondition string

const (
	ConditionNew     ProductCondition = "new"
	ConditionLikeNew ProductCondition = "like_new"
	ConditionGood    ProductCondition = "good"
	ConditionFair    ProductCondition = "fair"
)

// Product is a seller listing. Quantity never goes negative and only
// approved listings can be reserved against.
type Product struct {
	ID          int64
	SellerID    int64
	Title       string
	Category    string
	Condition   ProductCondition
	Price       float64
	Negotiable  bool
	Quantity    int
	Location    string
	Description string
	Tags        []string
	Status      ProductStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
