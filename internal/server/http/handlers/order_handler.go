package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// OrderHandler serves the purchase flow and order history.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler creates OrderHandler instance.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid order payload"))
		return
	}

	result, err := h.facade.PlaceOrder(c.Request.Context(), usecase.PlaceOrderInput{
		ProductID: req.ProductID,
		BuyerID:   CurrentUserID(c),
		Quantity:  req.Quantity,
		Delivery:  req.Delivery.ToDelivery(),
	})
	if err != nil {
		var insufficient domainErrors.InsufficientQuantityError
		switch {
		case errors.Is(err, domainErrors.ErrInvalidQuantity):
			c.JSON(http.StatusBadRequest, errorBody("quantity must be at least 1"))
		case errors.Is(err, domainErrors.ErrProductUnavailable):
			c.JSON(http.StatusNotFound, errorBody("product is not available"))
		case errors.Is(err, domainErrors.ErrSelfPurchase):
			c.JSON(http.StatusBadRequest, errorBody("you cannot purchase your own listing"))
		case errors.As(err, &insufficient):
			c.JSON(http.StatusBadRequest, errorBody(insufficient.Error()))
		case errors.Is(err, domainErrors.ErrReservationLost):
			c.JSON(http.StatusConflict, errorBody("product was just purchased by someone else"))
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, dto.PlaceOrderResponse{
		Order:          dto.NewOrderResponse(result.Order),
		Product:        dto.NewProductResponse(result.Product),
		CommissionRate: result.CommissionRate,
	})
}

// Purchases handles GET /api/orders/purchases.
func (h *OrderHandler) Purchases(c *gin.Context) {
	orders, err := h.facade.Purchases(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponses(orders))
}

// Sales handles GET /api/orders/sales.
func (h *OrderHandler) Sales(c *gin.Context) {
	orders, err := h.facade.Sales(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewOrderResponses(orders))
}
