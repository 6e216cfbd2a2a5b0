package helpers

import (
	"strconv"

	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/gin-gonic/gin"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
	DefaultPage     = 1
)

// Page is a resolved, clamped page request.
type Page struct {
	Number     int
	Size       int
	TotalPages int
	TotalItems int64
}

// Offset returns the row offset of the page.
func (p Page) Offset() uint64 {
	return uint64((p.Number - 1) * p.Size)
}

// Limit returns the row limit of the page.
func (p Page) Limit() uint64 {
	return uint64(p.Size)
}

// Info converts the page into the response DTO.
func (p Page) Info() dto.PaginationInfo {
	return dto.PaginationInfo{
		CurrentPage: p.Number,
		TotalPages:  p.TotalPages,
		PageSize:    p.Size,
		TotalItems:  p.TotalItems,
	}
}

// ClampPage resolves a requested page against the total number of items.
// Pages below 1 resolve to the first page, pages past the end to the last.
// An empty list still has one (empty) page.
func ClampPage(page, size int, totalItems int64) Page {
	size = NormalizePageSize(size)
	if totalItems < 0 {
		totalItems = 0
	}

	totalPages := int((totalItems + int64(size) - 1) / int64(size))
	if totalPages < 1 {
		totalPages = 1
	}

	switch {
	case page < 1:
		page = 1
	case page > totalPages:
		page = totalPages
	}

	return Page{Number: page, Size: size, TotalPages: totalPages, TotalItems: totalItems}
}

// NormalizePageSize falls back to DefaultPageSize for sizes outside (0, MaxPageSize].
func NormalizePageSize(size int) int {
	if size <= 0 || size > MaxPageSize {
		return DefaultPageSize
	}
	return size
}

// ParsePaginationParams extracts pagination parameters from the request. Both
// `size` and `pageSize` are accepted. Values are not clamped against the total
// here; that happens in ClampPage once the total is known.
func ParsePaginationParams(c *gin.Context) (page, size int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = DefaultPage
	}

	sizeStr := c.Query("size")
	if sizeStr == "" {
		sizeStr = c.Query("pageSize")
	}
	size, err = strconv.Atoi(sizeStr)
	if err != nil {
		size = DefaultPageSize
	}

	return page, NormalizePageSize(size)
}

// ParseBoolQuery reads a boolean query parameter, treating anything unparsable as false.
func ParseBoolQuery(c *gin.Context, key string) bool {
	v, err := strconv.ParseBool(c.Query(key))
	return err == nil && v
}
