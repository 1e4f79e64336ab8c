package dto

import (
	"time"

	"github.com/polkiloo/marketplace/internal/domain/model"
)

// CreateProductRequest describes a new listing submission.
type CreateProductRequest struct {
	Title       string   `json:"title" binding:"required"`
	Category    string   `json:"category" binding:"required"`
	Condition   string   `json:"condition" binding:"required,oneof=new like_new good fair"`
	Price       float64  `json:"price" binding:"min=0"`
	Negotiable  bool     `json:"negotiable"`
	Quantity    int      `json:"quantity" binding:"required,min=1"`
	Location    string   `json:"location" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
	Status      string   `json:"status" binding:"omitempty,oneof=draft pending"`
}

// ProductResponse is the API view of a listing.
type ProductResponse struct {
	ID          int64     `json:"id"`
	SellerID    int64     `json:"sellerId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Condition   string    `json:"condition"`
	Price       float64   `json:"price"`
	Negotiable  bool      `json:"negotiable"`
	Quantity    int       `json:"quantity"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProductResponse maps a domain product to its API representation.
func NewProductResponse(product *model.Product) ProductResponse {
	return ProductResponse{
		ID:          product.ID,
		SellerID:    product.SellerID,
		Title:       product.Title,
		Category:    product.Category,
		Condition:   string(product.Condition),
		Price:       product.Price,
		Negotiable:  product.Negotiable,
		Quantity:    product.Quantity,
		Location:    product.Location,
		Description: product.Description,
		Tags:        product.Tags,
		Status:      string(product.Status),
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}

// NewProductResponses maps a slice of products.
func NewProductResponses(products []model.Product) []ProductResponse {
	result := make([]ProductResponse, 0, len(products))
	for i := range products {
		result = append(result, NewProductResponse(&products[i]))
	}
	return result
}
