package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// PageMeta describes one page of a listing.
type PageMeta struct {
	Total       int64 `json:"total"`
	CurrentPage int   `json:"current_page"`
	PerPage     int   `json:"per_page"`
	TotalPage   int   `json:"total_page"`
}

// GetPaginationParams reads page and per_page from the query string,
// falling back to page 1 of 10 for missing or out-of-range values.
func GetPaginationParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(defaultPageSize)))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}

	return page, pageSize
}

// Offset is the number of records before page.
func Offset(page, pageSize int) int {
	return (page - 1) * pageSize
}

func NewPageMeta(total int64, page, pageSize int) PageMeta {
	return PageMeta{
		Total:       total,
		CurrentPage: page,
		PerPage:     pageSize,
		TotalPage:   int((total + int64(pageSize) - 1) / int64(pageSize)),
	}
}
