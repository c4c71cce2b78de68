package v1

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPage  = 1
	defaultLimit = 50
)

// parsePagination reads page/limit query params with the original's
// defaults. Non-numeric or non-positive values fall back to the defaults.
func parsePagination(ctx *gin.Context) (page, limit int) {
	page = defaultPage
	limit = defaultLimit

	if v, err := strconv.Atoi(ctx.DefaultQuery("page", "")); err == nil && v > 0 {
		page = v
	}
	if v, err := strconv.Atoi(ctx.DefaultQuery("limit", "")); err == nil && v > 0 {
		limit = v
	}

	return page, limit
}

// paginate slices one page out of the full result set.
func paginate[T any](items []T, page, limit int) []T {
	offset := (page - 1) * limit
	if offset >= len(items) {
		return []T{}
	}

	end := offset + limit
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}
