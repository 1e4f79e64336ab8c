package model

import "time"

// Delivery is the shipping/contact record embedded in an order.
type Delivery struct {
	Name                string
	Email               string
	Phone               string
	Address             string
	City                string
	PostalCode          string
	ProfessionalWebsite string
	AdditionalDetails   string
}

// Order records a successful purchase. Orders are immutable once created;
// Price is the subtotal and TotalAmount includes the commission captured
// at the moment the order was placed.
type Order struct {
	ID               int64
	ProductID        int64
	BuyerID          int64
	SellerID         int64
	Quantity         int
	Price            float64
	CommissionRate   float64
	CommissionAmount float64
	TotalAmount      float64
	Delivery         Delivery
	CreatedAt        time.Time
}
