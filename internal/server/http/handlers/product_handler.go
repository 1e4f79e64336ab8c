package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
	"github.com/polkiloo/marketplace/internal/usecase"
)

// ProductHandler serves listing creation and catalog reads.
type ProductHandler struct {
	facade ProductFacade
}

// NewProductHandler creates ProductHandler instance.
func NewProductHandler(facade ProductFacade) *ProductHandler {
	return &ProductHandler{facade: facade}
}

// Create handles POST /api/products.
func (h *ProductHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid listing payload"))
		return
	}

	product, err := h.facade.CreateProduct(c.Request.Context(), CurrentUserID(c), usecase.CreateProductInput{
		Title:       req.Title,
		Category:    req.Category,
		Condition:   model.ProductCondition(req.Condition),
		Price:       req.Price,
		Negotiable:  req.Negotiable,
		Quantity:    req.Quantity,
		Location:    req.Location,
		Description: req.Description,
		Tags:        req.Tags,
		Status:      model.ProductStatus(req.Status),
	})
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidQuantity) {
			c.JSON(http.StatusBadRequest, errorBody("quantity must be at least 1"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, dto.NewProductResponse(product))
}

// Mine handles GET /api/products/mine.
func (h *ProductHandler) Mine(c *gin.Context) {
	products, err := h.facade.OwnProducts(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

// List handles GET /api/products (approved listings, public).
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.facade.ApprovedProducts(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

// Get handles GET /api/products/:id. Only approved listings are visible to
// the public catalog.
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("invalid product id"))
		return
	}

	product, err := h.facade.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("product not found"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	if product.Status != model.ProductStatusApproved && product.Status != model.ProductStatusSold {
		c.JSON(http.StatusNotFound, errorBody("product not found"))
		return
	}

	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}
