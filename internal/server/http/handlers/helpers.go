package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/marketplace/internal/server/http/middleware"
)

// feedLimit caps the number of notifications returned in a feed.
const feedLimit = 5

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func errorBody(msg string) gin.H {
	return gin.H{"error": msg}
}
