package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
)

const historyLimit = 20

// AdminHandler serves moderation, commission management and the admin
// notification feed.
type AdminHandler struct {
	facade AdminFacade
	lookup ProductFacade
}

// NewAdminHandler creates AdminHandler instance.
func NewAdminHandler(facade AdminFacade, lookup ProductFacade) *AdminHandler {
	return &AdminHandler{facade: facade, lookup: lookup}
}

// Listings handles GET /api/admin/listings.
func (h *AdminHandler) Listings(c *gin.Context) {
	products, err := h.facade.ModerationListings(c.Request.Context(), c.Query("status"))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponses(products))
}

// Listing handles GET /api/admin/listings/:id.
func (h *AdminHandler) Listing(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("invalid listing id"))
		return
	}

	product, err := h.lookup.Product(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("listing not found"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// Approve handles PATCH /api/admin/listings/:id/approve.
func (h *AdminHandler) Approve(c *gin.Context) {
	h.moderate(c, h.facade.ApproveListing)
}

// Reject handles PATCH /api/admin/listings/:id/reject.
func (h *AdminHandler) Reject(c *gin.Context) {
	h.moderate(c, h.facade.RejectListing)
}

func (h *AdminHandler) moderate(c *gin.Context, action func(context.Context, int64) (*model.Product, error)) {
	id, ok := idParam(c, "id")
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("invalid listing id"))
		return
	}

	product, err := action(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("listing not found"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewProductResponse(product))
}

// Notifications handles GET /api/admin/notifications.
func (h *AdminHandler) Notifications(c *gin.Context) {
	feed, err := h.facade.AdminNotifications(c.Request.Context(), feedLimit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationFeedResponse(feed))
}

// Commission handles GET /api/admin/commission.
func (h *AdminHandler) Commission(c *gin.Context) {
	history, err := h.facade.CommissionHistory(c.Request.Context(), historyLimit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewCommissionResponse(h.facade.CommissionRate(), history))
}

// UpdateCommission handles PUT /api/admin/commission.
func (h *AdminHandler) UpdateCommission(c *gin.Context) {
	var req dto.UpdateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid commission payload"))
		return
	}

	rate, err := h.facade.UpdateCommissionRate(c.Request.Context(), req.Rate, CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidRate) {
			c.JSON(http.StatusBadRequest, errorBody("commission rate must normalize to a fraction in [0, 1]"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rate": rate})
}
