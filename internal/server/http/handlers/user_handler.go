package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
	"github.com/polkiloo/marketplace/internal/domain/model"
	"github.com/polkiloo/marketplace/internal/server/http/dto"
)

// UserHandler serves profile and seller notification endpoints.
type UserHandler struct {
	facade UserFacade
}

// NewUserHandler creates UserHandler instance.
func NewUserHandler(facade UserFacade) *UserHandler {
	return &UserHandler{facade: facade}
}

// Me handles GET /api/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := h.facade.Profile(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("account not found"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// UpdateMe handles PATCH /api/users/me. Email and phone stay immutable.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid profile payload"))
		return
	}

	update := model.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Gender:    req.Gender,
		Address:   req.Address,
	}
	if update.Empty() {
		c.JSON(http.StatusBadRequest, errorBody("no profile fields to update"))
		return
	}

	user, err := h.facade.UpdateProfile(c.Request.Context(), CurrentUserID(c), update)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("account not found"))
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

// Notifications handles GET /api/users/notifications.
func (h *UserHandler) Notifications(c *gin.Context) {
	feed, err := h.facade.SellerNotifications(c.Request.Context(), CurrentUserID(c), feedLimit)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.NewNotificationFeedResponse(feed))
}
