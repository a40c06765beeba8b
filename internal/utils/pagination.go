// internal/utils/pagination.go
package utils

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// PageRequest is a window over a list endpoint, ordered by a whitelisted
// column.
type PageRequest struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Sort  string `json:"sort"`
	Order string `json:"order"`
}

// Page is one window of results plus the totals the registry tables need.
type Page struct {
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	Total      int64       `json:"total"`
	TotalPages int         `json:"total_pages"`
	Items      interface{} `json:"items"`
}

// PageFromQuery reads page, limit, sort and order. The boolean reports whether
// the caller asked for a window at all; the license and sample registries
// return the whole list otherwise.
func PageFromQuery(c *gin.Context) (PageRequest, bool) {
	_, hasPage := c.GetQuery("page")
	_, hasLimit := c.GetQuery("limit")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > maxPageLimit {
		limit = defaultPageLimit
	}

	order := strings.ToLower(c.DefaultQuery("order", "desc"))
	if order != "asc" {
		order = "desc"
	}

	return PageRequest{
		Page:  page,
		Limit: limit,
		Sort:  c.DefaultQuery("sort", "created_at"),
		Order: order,
	}, hasPage || hasLimit
}

func (p PageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Apply orders by the column sortable maps the requested key to, falling back
// to created_at, then limits the query to the window. Only mapped column
// names ever reach the ORDER BY clause.
func (p PageRequest) Apply(db *gorm.DB, sortable map[string]string) *gorm.DB {
	column, ok := sortable[p.Sort]
	if !ok {
		column = "created_at"
	}
	order := "DESC"
	if p.Order == "asc" {
		order = "ASC"
	}
	return db.Order(column + " " + order).Offset(p.Offset()).Limit(p.Limit)
}

func NewPage(items interface{}, total int64, req PageRequest) Page {
	totalPages := 0
	if req.Limit > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(req.Limit)))
	}

	return Page{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
		Items:      items,
	}
}

func SetPageHeaders(c *gin.Context, page Page) {
	c.Header("X-Total-Count", strconv.FormatInt(page.Total, 10))
	c.Header("X-Page", strconv.Itoa(page.Page))
	c.Header("X-Per-Page", strconv.Itoa(page.Limit))
	c.Header("X-Total-Pages", strconv.Itoa(page.TotalPages))
}
