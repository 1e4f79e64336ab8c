package handlers

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
	pkgAuth "github.com/polkiloo/marketplace/internal/pkg/auth"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
}

// UserFacade covers profile and seller notification reads.
type UserFacade interface {
	Profile(ctx context.Context, id int64) (*model.User, error)
	UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error)
	SellerNotifications(ctx context.Context, sellerID int64, limit int) (*usecase.NotificationFeed, error)
}

// ProductFacade covers listing creation and reads.
type ProductFacade interface {
	CreateProduct(ctx context.Context, sellerID int64, in usecase.CreateProductInput) (*model.Product, error)
	OwnProducts(ctx context.Context, sellerID int64) ([]model.Product, error)
	ApprovedProducts(ctx context.Context) ([]model.Product, error)
	Product(ctx context.Context, id int64) (*model.Product, error)
}

// OrderFacade encapsulates the purchase flow and order history.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (*usecase.PlaceOrderResult, error)
	Purchases(ctx context.Context, buyerID int64) ([]model.Order, error)
	Sales(ctx context.Context, sellerID int64) ([]model.Order, error)
}

// WishlistFacade covers saved products.
type WishlistFacade interface {
	AddToWishlist(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error)
	RemoveFromWishlist(ctx context.Context, userID, productID int64) error
	Wishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error)
}

// AdminFacade covers moderation, commission management and the admin
// notification feed.
type AdminFacade interface {
	ModerationListings(ctx context.Context, status string) ([]model.Product, error)
	ApproveListing(ctx context.Context, id int64) (*model.Product, error)
	RejectListing(ctx context.Context, id int64) (*model.Product, error)
	AdminNotifications(ctx context.Context, limit int) (*usecase.NotificationFeed, error)
	CommissionRate() float64
	UpdateCommissionRate(ctx context.Context, raw float64, changedBy int64) (float64, error)
	CommissionHistory(ctx context.Context, limit int) ([]model.CommissionChange, error)
}

// MarketplaceFacade aggregates the full set of operations used across handlers.
type MarketplaceFacade interface {
	AuthFacade
	UserFacade
	ProductFacade
	OrderFacade
	WishlistFacade
	AdminFacade
}
