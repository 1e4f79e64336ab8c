package usecase

import (
	"context"
	"fmt"
	"log/slog"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// CreateProductInput describes a new listing submitted by a seller.
type CreateProductInput struct {
	Title       string
	Category    string
	Condition   model.ProductCondition
	Price       float64
	Negotiable  bool
	Quantity    int
	Location    string
	Description string
	Tags        []string
	Status      model.ProductStatus
}

// ProductUseCase covers listing lifecycle: creation by sellers and
// moderation by admins.
type ProductUseCase struct {
	products      repository.ProductRepository
	notifications NotificationPublisher
	logger        *slog.Logger
}

// NewProductUseCase constructs ProductUseCase.
func NewProductUseCase(products repository.ProductRepository, notifications NotificationPublisher, logger *slog.Logger) *ProductUseCase {
	return &ProductUseCase{products: products, notifications: notifications, logger: logger}
}

// Create stores a new listing. Sellers may submit it as draft or directly
// for moderation (pending); the latter notifies admins.
func (u *ProductUseCase) Create(ctx context.Context, sellerID int64, in CreateProductInput) (*model.Product, error) {
	if in.Quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	status := in.Status
	if status == "" {
		status = model.ProductStatusDraft
	}
	if status != model.ProductStatusDraft && status != model.ProductStatusPending {
		return nil, fmt.Errorf("listing cannot be created with status %q", status)
	}

	product, err := u.products.Create(ctx, model.Product{
		SellerID:    sellerID,
		Title:       in.Title,
		Category:    in.Category,
		Condition:   in.Condition,
		Price:       in.Price,
		Negotiable:  in.Negotiable,
		Quantity:    in.Quantity,
		Location:    in.Location,
		Description: in.Description,
		Tags:        in.Tags,
		Status:      status,
	})
	if err != nil {
		return nil, err
	}

	if product.Status == model.ProductStatusPending {
		productID := product.ID
		if !u.notifications.Publish(model.Notification{
			Type:      model.NotificationListingSubmitted,
			Message:   fmt.Sprintf("New listing submitted: %s", product.Title),
			ProductID: &productID,
			SellerID:  sellerID,
		}) {
			u.logger.Warn("listing notification dropped, queue full",
				slog.Int64("product_id", product.ID),
			)
		}
	}

	return product, nil
}

// Mine returns the seller's own listings.
func (u *ProductUseCase) Mine(ctx context.Context, sellerID int64) ([]model.Product, error) {
	return u.products.ListBySeller(ctx, sellerID)
}

// Listings returns approved products visible to buyers.
func (u *ProductUseCase) Listings(ctx context.Context) ([]model.Product, error) {
	status := model.ProductStatusApproved
	return u.products.ListByStatus(ctx, &status)
}

// Get fetches a single listing.
func (u *ProductUseCase) Get(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.GetByID(ctx, id)
}

// ModerationList returns listings for the admin review queue, optionally
// filtered by status ("" and "all" mean everything).
func (u *ProductUseCase) ModerationList(ctx context.Context, status string) ([]model.Product, error) {
	if status == "" || status == "all" {
		return u.products.ListByStatus(ctx, nil)
	}
	filter := model.ProductStatus(status)
	return u.products.ListByStatus(ctx, &filter)
}

// Approve moves a listing to the approved state.
func (u *ProductUseCase) Approve(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.SetStatus(ctx, id, model.ProductStatusApproved)
}

// Reject moves a listing to the rejected state.
func (u *ProductUseCase) Reject(ctx context.Context, id int64) (*model.Product, error) {
	return u.products.SetStatus(ctx, id, model.ProductStatusRejected)
}
