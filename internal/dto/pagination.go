package dto

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

type PaginationParams struct {
	Page     int
	PageSize int
}

type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

func ParsePagination(c *gin.Context) PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return PaginationParams{Page: page, PageSize: pageSize}
}

// Slice returns the page bounds clamped to a list of n items.
func (p PaginationParams) Slice(n int) (lo, hi int) {
	lo = (p.Page - 1) * p.PageSize
	if lo > n {
		lo = n
	}
	hi = lo + p.PageSize
	if hi > n {
		hi = n
	}
	return lo, hi
}

func NewPagination(p PaginationParams, totalItems int) Pagination {
	totalPages := 0
	if totalItems > 0 {
		totalPages = int(math.Ceil(float64(totalItems) / float64(p.PageSize)))
	}

	return Pagination{
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalItems: totalItems,
		TotalPages: totalPages,
	}
}
