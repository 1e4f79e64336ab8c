package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
)

// WishlistHandler serves saved products.
type WishlistHandler struct {
	facade WishlistFacade
}

// NewWishlistHandler creates WishlistHandler instance.
func NewWishlistHandler(facade WishlistFacade) *WishlistHandler {
	return &WishlistHandler{facade: facade}
}

// Add handles POST /api/wishlist/:productId. Re-adding is a no-op returning
// the stored item.
func (h *WishlistHandler) Add(c *gin.Context) {
	productID, ok := idParam(c, "productId")
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("invalid product id"))
		return
	}

	item, added, err := h.facade.AddToWishlist(c.Request.Context(), CurrentUserID(c), productID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("product is not available"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	c.JSON(status, dto.AddWishlistResponse{Item: dto.NewWishlistItemResponse(item), Added: added})
}

// Remove handles DELETE /api/wishlist/:productId.
func (h *WishlistHandler) Remove(c *gin.Context) {
	productID, ok := idParam(c, "productId")
	if !ok {
		c.JSON(http.StatusBadRequest, errorBody("invalid product id"))
		return
	}

	if err := h.facade.RemoveFromWishlist(c.Request.Context(), CurrentUserID(c), productID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("item is not in the wishlist"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusNoContent)
}

// List handles GET /api/wishlist.
func (h *WishlistHandler) List(c *gin.Context) {
	items, err := h.facade.Wishlist(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewWishlistItemResponses(items))
}
