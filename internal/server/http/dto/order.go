package dto

import (
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// DeliveryPayload is the shipping/contact block of a purchase request.
type DeliveryPayload struct {
	Name                string `json:"name" binding:"required"`
	Email               string `json:"email" binding:"required,email"`
	Phone               string `json:"phone" binding:"required"`
	Address             string `json:"address" binding:"required"`
	City                string `json:"city" binding:"required"`
	PostalCode          string `json:"postalCode" binding:"required"`
	ProfessionalWebsite string `json:"professionalWebsite" binding:"omitempty,url"`
	AdditionalDetails   string `json:"additionalDetails" binding:"max=500"`
}

// PlaceOrderRequest is the purchase payload.
type PlaceOrderRequest struct {
	ProductID int64           `json:"productId" binding:"required"`
	Quantity  int             `json:"quantity" binding:"required,min=1"`
	Delivery  DeliveryPayload `json:"delivery" binding:"required"`
}

// ToDelivery maps the payload onto the domain record.
func (p DeliveryPayload) ToDelivery() model.Delivery {
	return model.Delivery{
		Name:                p.Name,
		Email:               p.Email,
		Phone:               p.Phone,
		Address:             p.Address,
		City:                p.City,
		PostalCode:          p.PostalCode,
		ProfessionalWebsite: p.ProfessionalWebsite,
		AdditionalDetails:   p.AdditionalDetails,
	}
}

// OrderResponse is the API view of an order.
type OrderResponse struct {
	ID               int64           `json:"id"`
	ProductID        int64           `json:"productId"`
	BuyerID          int64           `json:"buyerId"`
	SellerID         int64           `json:"sellerId"`
	Quantity         int             `json:"quantity"`
	Price            float64         `json:"price"`
	CommissionRate   float64         `json:"commissionRate"`
	CommissionAmount float64         `json:"commissionAmount"`
	TotalAmount      float64         `json:"totalAmount"`
	Delivery         DeliveryPayload `json:"delivery"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// NewOrderResponse maps a domain order to its API representation.
func NewOrderResponse(order *model.Order) OrderResponse {
	return OrderResponse{
		ID:               order.ID,
		ProductID:        order.ProductID,
		BuyerID:          order.BuyerID,
		SellerID:         order.SellerID,
		Quantity:         order.Quantity,
		Price:            order.Price,
		CommissionRate:   order.CommissionRate,
		CommissionAmount: order.CommissionAmount,
		TotalAmount:      order.TotalAmount,
		Delivery: DeliveryPayload{
			Name:                order.Delivery.Name,
			Email:               order.Delivery.Email,
			Phone:               order.Delivery.Phone,
			Address:             order.Delivery.Address,
			City:                order.Delivery.City,
			PostalCode:          order.Delivery.PostalCode,
			ProfessionalWebsite: order.Delivery.ProfessionalWebsite,
			AdditionalDetails:   order.Delivery.AdditionalDetails,
		},
		CreatedAt: order.CreatedAt,
	}
}

// NewOrderResponses maps a slice of orders.
func NewOrderResponses(orders []model.Order) []OrderResponse {
	result := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		result = append(result, NewOrderResponse(&orders[i]))
	}
	return result
}

// PlaceOrderResponse is the 201 body of a successful purchase.
type PlaceOrderResponse struct {
	Order          OrderResponse   `json:"order"`
	Product        ProductResponse `json:"product"`
	CommissionRate float64         `json:"commissionRate"`
}
