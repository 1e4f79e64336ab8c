package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/domain/repository"
)

// NotificationPublisher hands notifications to the async dispatcher.
// Publish must not block; it reports whether the notification was accepted.
type NotificationPublisher interface {
	Publish(notification model.Notification) bool
}

// Charges is the money breakdown of a purchase.
type Charges struct {
	Subtotal   float64
	Commission float64
	Total      float64
}

// ComputeCharges calculates the order amounts, rounding half-up at two
// decimal places after every step to match currency display.
func ComputeCharges(unitPrice float64, quantity int, rate float64) Charges {
	subtotal := round2(unitPrice * float64(quantity))
	commission := round2(subtotal * rate)
	total := round2(subtotal + commission)
	return Charges{Subtotal: subtotal, Commission: commission, Total: total}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// PlaceOrderInput is a validated purchase request.
type PlaceOrderInput struct {
	ProductID int64
	BuyerID   int64
	Quantity  int
	Delivery  model.Delivery
}

// PlaceOrderResult carries the created order, the post-reservation product
// snapshot and the commission rate that applied.
type PlaceOrderResult struct {
	Order          *model.Order
	Product        *model.Product
	CommissionRate float64
}

// OrderUseCase implements the purchase flow: reserve inventory, compute
// charges, persist the order, compensate on failure.
type OrderUseCase struct {
	products      repository.ProductRepository
	orders        repository.OrderRepository
	rates         RateProvider
	notifications NotificationPublisher
	logger        *slog.Logger
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	rates RateProvider,
	notifications NotificationPublisher,
	logger *slog.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		products:      products,
		orders:        orders,
		rates:         rates,
		notifications: notifications,
		logger:        logger,
	}
}

// Place executes a purchase attempt.
//
// The pre-checks below are a fast path only; the reservation itself is a
// single conditional decrement in the repository, which is the sole
// serialization point across concurrent buyers. Losing that race surfaces
// ErrReservationLost with nothing reserved and nothing to undo.
func (u *OrderUseCase) Place(ctx context.Context, in PlaceOrderInput) (*PlaceOrderResult, error) {
	if in.Quantity < 1 {
		return nil, domainErrors.ErrInvalidQuantity
	}

	product, err := u.products.GetByID(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrProductUnavailable
		}
		return nil, err
	}
	if product.Status != model.ProductStatusApproved || product.Quantity < 1 {
		return nil, domainErrors.ErrProductUnavailable
	}
	if product.SellerID == in.BuyerID {
		return nil, domainErrors.ErrSelfPurchase
	}
	if in.Quantity > product.Quantity {
		return nil, domainErrors.InsufficientQuantityError{Available: product.Quantity}
	}

	reserved, err := u.products.Reserve(ctx, in.ProductID, in.Quantity)
	if err != nil {
		return nil, err
	}

	snapshot := reserved
	if reserved.Quantity == 0 {
		// The sold flip is allowed to lag one write behind the decrement;
		// a failure here never reverts the reservation.
		sold, err := u.products.MarkSold(ctx, in.ProductID)
		if err != nil {
			u.logger.Warn("sold status update deferred",
				slog.Int64("product_id", in.ProductID),
				slog.String("error", err.Error()),
			)
		} else {
			snapshot = sold
		}
	}

	rate := u.rates.Rate()
	charges := ComputeCharges(reserved.Price, in.Quantity, rate)

	order, err := u.orders.Create(ctx, model.Order{
		ProductID:        reserved.ID,
		BuyerID:          in.BuyerID,
		SellerID:         reserved.SellerID,
		Quantity:         in.Quantity,
		Price:            charges.Subtotal,
		CommissionRate:   rate,
		CommissionAmount: charges.Commission,
		TotalAmount:      charges.Total,
		Delivery:         in.Delivery,
	})
	if err != nil {
		if rerr := u.products.Release(ctx, in.ProductID, in.Quantity); rerr != nil {
			u.logger.Error("reservation rollback failed, product left inconsistent",
				slog.Int64("product_id", in.ProductID),
				slog.Int("quantity", in.Quantity),
				slog.String("error", rerr.Error()),
			)
		}
		return nil, fmt.Errorf("create order: %w", err)
	}

	u.notifyOrderPlaced(order, reserved.Title)

	return &PlaceOrderResult{Order: order, Product: snapshot, CommissionRate: rate}, nil
}

func (u *OrderUseCase) notifyOrderPlaced(order *model.Order, title string) {
	productID := order.ProductID
	accepted := u.notifications.Publish(model.Notification{
		Type: model.NotificationOrderPlaced,
		Message: fmt.Sprintf(
			"New order (%d) for %q from %s. Review delivery details and contact the buyer to arrange handoff.",
			order.Quantity, title, order.Delivery.Name,
		),
		ProductID: &productID,
		SellerID:  order.SellerID,
	})
	if !accepted {
		u.logger.Warn("order notification dropped, queue full",
			slog.Int64("order_id", order.ID),
			slog.Int64("seller_id", order.SellerID),
		)
	}
}

// Purchases returns orders placed by the buyer, newest first.
func (u *OrderUseCase) Purchases(ctx context.Context, buyerID int64) ([]model.Order, error) {
	return u.orders.ListByBuyer(ctx, buyerID)
}

// Sales returns orders received by the seller, newest first.
func (u *OrderUseCase) Sales(ctx context.Context, sellerID int64) ([]model.Order, error) {
	return u.orders.ListBySeller(ctx, sellerID)
}
