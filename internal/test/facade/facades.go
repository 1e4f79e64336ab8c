// Package facade provides hand-written stubs for the HTTP facade
// interfaces. It lives apart from the repository stubs so internal/test
// stays free of usecase imports and remains usable from usecase tests.
package facade

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
	pkgAuth "github.com/polkiloo/marketplace/internal/pkg/auth"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, usecase.RegisterInput) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (pkgAuth.Claims, error)
}

// Register returns a default user and token unless overridden.
func (s AuthFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Email: in.Email, Role: model.RoleUser}, "token", nil
}

// Authenticate returns a default user and token unless overridden.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleUser}, "token", nil
}

// ParseToken returns stored claims for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: 1, Role: string(model.RoleUser)}, nil
}

// UserFacadeStub simulates profile and notification feed reads.
type UserFacadeStub struct {
	ProfileFn       func(context.Context, int64) (*model.User, error)
	UpdateProfileFn func(context.Context, int64, model.ProfileUpdate) (*model.User, error)
	NotificationsFn func(context.Context, int64, int) (*usecase.NotificationFeed, error)
}

// Profile returns a default user unless overridden.
func (s UserFacadeStub) Profile(ctx context.Context, id int64) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, id)
	}
	return &model.User{ID: id, Email: "user@example.com", Role: model.RoleUser}, nil
}

// UpdateProfile returns a default user unless overridden.
func (s UserFacadeStub) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error) {
	if s.UpdateProfileFn != nil {
		return s.UpdateProfileFn(ctx, id, update)
	}
	return &model.User{ID: id}, nil
}

// SellerNotifications returns an empty feed unless overridden.
func (s UserFacadeStub) SellerNotifications(ctx context.Context, sellerID int64, limit int) (*usecase.NotificationFeed, error) {
	if s.NotificationsFn != nil {
		return s.NotificationsFn(ctx, sellerID, limit)
	}
	return &usecase.NotificationFeed{}, nil
}

// ProductFacadeStub simulates listing operations.
type ProductFacadeStub struct {
	CreateFn   func(context.Context, int64, usecase.CreateProductInput) (*model.Product, error)
	OwnFn      func(context.Context, int64) ([]model.Product, error)
	ApprovedFn func(context.Context) ([]model.Product, error)
	GetFn      func(context.Context, int64) (*model.Product, error)
}

// CreateProduct returns a default listing unless overridden.
func (s ProductFacadeStub) CreateProduct(ctx context.Context, sellerID int64, in usecase.CreateProductInput) (*model.Product, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, sellerID, in)
	}
	return &model.Product{ID: 1, SellerID: sellerID, Title: in.Title, Status: model.ProductStatusDraft}, nil
}

// OwnProducts returns configured listings.
func (s ProductFacadeStub) OwnProducts(ctx context.Context, sellerID int64) ([]model.Product, error) {
	if s.OwnFn != nil {
		return s.OwnFn(ctx, sellerID)
	}
	return nil, nil
}

// ApprovedProducts returns configured listings.
func (s ProductFacadeStub) ApprovedProducts(ctx context.Context) ([]model.Product, error) {
	if s.ApprovedFn != nil {
		return s.ApprovedFn(ctx)
	}
	return nil, nil
}

// Product returns a default approved listing unless overridden.
func (s ProductFacadeStub) Product(ctx context.Context, id int64) (*model.Product, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, id)
	}
	return &model.Product{ID: id, Status: model.ProductStatusApproved}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn     func(context.Context, usecase.PlaceOrderInput) (*usecase.PlaceOrderResult, error)
	PurchasesFn func(context.Context, int64) ([]model.Order, error)
	SalesFn     func(context.Context, int64) ([]model.Order, error)
}

// PlaceOrder delegates to provided function or returns a default result.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (*usecase.PlaceOrderResult, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, in)
	}
	return &usecase.PlaceOrderResult{
		Order:          &model.Order{ID: 1, ProductID: in.ProductID, BuyerID: in.BuyerID, Quantity: in.Quantity},
		Product:        &model.Product{ID: in.ProductID, Status: model.ProductStatusApproved},
		CommissionRate: 0.05,
	}, nil
}

// Purchases returns configured orders.
func (s OrderFacadeStub) Purchases(ctx context.Context, buyerID int64) ([]model.Order, error) {
	if s.PurchasesFn != nil {
		return s.PurchasesFn(ctx, buyerID)
	}
	return []model.Order{{ID: 1, BuyerID: buyerID}}, nil
}

// Sales returns configured orders.
func (s OrderFacadeStub) Sales(ctx context.Context, sellerID int64) ([]model.Order, error) {
	if s.SalesFn != nil {
		return s.SalesFn(ctx, sellerID)
	}
	return []model.Order{{ID: 1, SellerID: sellerID}}, nil
}

// WishlistFacadeStub simulates wishlist operations.
type WishlistFacadeStub struct {
	AddFn    func(context.Context, int64, int64) (*model.WishlistItem, bool, error)
	RemoveFn func(context.Context, int64, int64) error
	ListFn   func(context.Context, int64) ([]model.WishlistItem, error)
}

// AddToWishlist returns a new item unless overridden.
func (s WishlistFacadeStub) AddToWishlist(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error) {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, productID)
	}
	return &model.WishlistItem{ID: 1, UserID: userID, ProductID: productID}, true, nil
}

// RemoveFromWishlist delegates to the override.
func (s WishlistFacadeStub) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, productID)
	}
	return nil
}

// Wishlist returns configured items.
func (s WishlistFacadeStub) Wishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return nil, nil
}

// AdminFacadeStub simulates moderation and commission management.
type AdminFacadeStub struct {
	ListingsFn      func(context.Context, string) ([]model.Product, error)
	ApproveFn       func(context.Context, int64) (*model.Product, error)
	RejectFn        func(context.Context, int64) (*model.Product, error)
	NotificationsFn func(context.Context, int) (*usecase.NotificationFeed, error)
	RateVal         float64
	UpdateRateFn    func(context.Context, float64, int64) (float64, error)
	HistoryFn       func(context.Context, int) ([]model.CommissionChange, error)
}

// ModerationListings returns configured listings.
func (s AdminFacadeStub) ModerationListings(ctx context.Context, status string) ([]model.Product, error) {
	if s.ListingsFn != nil {
		return s.ListingsFn(ctx, status)
	}
	return nil, nil
}

// ApproveListing returns an approved listing unless overridden.
func (s AdminFacadeStub) ApproveListing(ctx context.Context, id int64) (*model.Product, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, id)
	}
	return &model.Product{ID: id, Status: model.ProductStatusApproved}, nil
}

// RejectListing returns a rejected listing unless overridden.
func (s AdminFacadeStub) RejectListing(ctx context.Context, id int64) (*model.Product, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, id)
	}
	return &model.Product{ID: id, Status: model.ProductStatusRejected}, nil
}

// AdminNotifications returns an empty feed unless overridden.
func (s AdminFacadeStub) AdminNotifications(ctx context.Context, limit int) (*usecase.NotificationFeed, error) {
	if s.NotificationsFn != nil {
		return s.NotificationsFn(ctx, limit)
	}
	return &usecase.NotificationFeed{}, nil
}

// CommissionRate returns the configured rate.
func (s AdminFacadeStub) CommissionRate() float64 {
	if s.RateVal != 0 {
		return s.RateVal
	}
	return 0.05
}

// UpdateCommissionRate delegates to the override.
func (s AdminFacadeStub) UpdateCommissionRate(ctx context.Context, raw float64, changedBy int64) (float64, error) {
	if s.UpdateRateFn != nil {
		return s.UpdateRateFn(ctx, raw, changedBy)
	}
	return raw, nil
}

// CommissionHistory returns configured changes.
func (s AdminFacadeStub) CommissionHistory(ctx context.Context, limit int) ([]model.CommissionChange, error) {
	if s.HistoryFn != nil {
		return s.HistoryFn(ctx, limit)
	}
	return nil, nil
}

// MarketplaceFacadeStub aggregates facade stubs for HTTP layer tests.
type MarketplaceFacadeStub struct {
	AuthFacadeStub
	UserFacadeStub
	ProductFacadeStub
	OrderFacadeStub
	WishlistFacadeStub
	AdminFacadeStub
}
