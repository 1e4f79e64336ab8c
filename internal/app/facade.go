package app

import (
	"context"

	"github.com/polkiloo/marketplace/internal/domain/model"
	pkgAuth "github.com/polkiloo/marketplace/internal/pkg/auth"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// MarketplaceFacade exposes the application's use cases as a single surface
// consumed by the HTTP layer.
type MarketplaceFacade struct {
	auth          *usecase.AuthUseCase
	products      *usecase.ProductUseCase
	orders        *usecase.OrderUseCase
	wishlist      *usecase.WishlistUseCase
	notifications *usecase.NotificationUseCase
	commission    *usecase.CommissionUseCase
}

// NewMarketplaceFacade aggregates use cases into the facade.
func NewMarketplaceFacade(
	auth *usecase.AuthUseCase,
	products *usecase.ProductUseCase,
	orders *usecase.OrderUseCase,
	wishlist *usecase.WishlistUseCase,
	notifications *usecase.NotificationUseCase,
	commission *usecase.CommissionUseCase,
) *MarketplaceFacade {
	return &MarketplaceFacade{
		auth:          auth,
		products:      products,
		orders:        orders,
		wishlist:      wishlist,
		notifications: notifications,
		commission:    commission,
	}
}

func (f *MarketplaceFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *MarketplaceFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *MarketplaceFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketplaceFacade) Profile(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.Profile(ctx, id)
}

func (f *MarketplaceFacade) UpdateProfile(ctx context.Context, id int64, update model.ProfileUpdate) (*model.User, error) {
	return f.auth.UpdateProfile(ctx, id, update)
}

func (f *MarketplaceFacade) SellerNotifications(ctx context.Context, sellerID int64, limit int) (*usecase.NotificationFeed, error) {
	return f.notifications.ForSeller(ctx, sellerID, limit)
}

func (f *MarketplaceFacade) CreateProduct(ctx context.Context, sellerID int64, in usecase.CreateProductInput) (*model.Product, error) {
	return f.products.Create(ctx, sellerID, in)
}

func (f *MarketplaceFacade) OwnProducts(ctx context.Context, sellerID int64) ([]model.Product, error) {
	return f.products.Mine(ctx, sellerID)
}

func (f *MarketplaceFacade) ApprovedProducts(ctx context.Context) ([]model.Product, error) {
	return f.products.Listings(ctx)
}

func (f *MarketplaceFacade) Product(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Get(ctx, id)
}

func (f *MarketplaceFacade) PlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) (*usecase.PlaceOrderResult, error) {
	return f.orders.Place(ctx, in)
}

func (f *MarketplaceFacade) Purchases(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return f.orders.Purchases(ctx, buyerID)
}

func (f *MarketplaceFacade) Sales(ctx context.Context, sellerID int64) ([]model.Order, error) {
	return f.orders.Sales(ctx, sellerID)
}

func (f *MarketplaceFacade) AddToWishlist(ctx context.Context, userID, productID int64) (*model.WishlistItem, bool, error) {
	return f.wishlist.Add(ctx, userID, productID)
}

func (f *MarketplaceFacade) RemoveFromWishlist(ctx context.Context, userID, productID int64) error {
	return f.wishlist.Remove(ctx, userID, productID)
}

func (f *MarketplaceFacade) Wishlist(ctx context.Context, userID int64) ([]model.WishlistItem, error) {
	return f.wishlist.List(ctx, userID)
}

func (f *MarketplaceFacade) ModerationListings(ctx context.Context, status string) ([]model.Product, error) {
	return f.products.ModerationList(ctx, status)
}

func (f *MarketplaceFacade) ApproveListing(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Approve(ctx, id)
}

func (f *MarketplaceFacade) RejectListing(ctx context.Context, id int64) (*model.Product, error) {
	return f.products.Reject(ctx, id)
}

func (f *MarketplaceFacade) AdminNotifications(ctx context.Context, limit int) (*usecase.NotificationFeed, error) {
	return f.notifications.ForAdmin(ctx, limit)
}

func (f *MarketplaceFacade) CommissionRate() float64 {
	return f.commission.Rate()
}

func (f *MarketplaceFacade) UpdateCommissionRate(ctx context.Context, raw float64, changedBy int64) (float64, error) {
	return f.commission.Update(ctx, raw, changedBy)
}

func (f *MarketplaceFacade) CommissionHistory(ctx context.Context, limit int) ([]model.CommissionChange, error) {
	return f.commission.History(ctx, limit)
}
