// Package handler exposes the REST surface. Handlers stay thin: bind, call
// the service, translate errors through the shared envelope.
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// paginationParams reads the page/limit query parameters. Values are clamped
// downstream; the handler only parses.
func paginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	return page, limit
}
