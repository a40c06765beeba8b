package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/api/licenses?"+rawQuery, nil)
	return c
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		want      PageRequest
		wantPaged bool
	}{
		{"no window", "", PageRequest{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}, false},
		{"explicit window", "page=3&limit=5&sort=company_name&order=asc", PageRequest{Page: 3, Limit: 5, Sort: "company_name", Order: "asc"}, true},
		{"limit only", "limit=10", PageRequest{Page: 1, Limit: 10, Sort: "created_at", Order: "desc"}, true},
		{"out of range", "page=-2&limit=1000&order=sideways", PageRequest{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, paged := PageFromQuery(queryContext(tt.query))
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantPaged, paged)
		})
	}
}

type pagedRow struct {
	ID          string
	CompanyName string
}

func TestApplyOrdersByWhitelistedColumn(t *testing.T) {
	db, err := gorm.Open(postgres.Open("host=localhost user=registry dbname=registry sslmode=disable"), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	sortable := map[string]string{"company_name": "company_name"}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		req := PageRequest{Page: 2, Limit: 5, Sort: "company_name", Order: "asc"}
		return req.Apply(tx.Model(&pagedRow{}), sortable).Find(&[]pagedRow{})
	})
	assert.Contains(t, sql, "ORDER BY company_name ASC")
	assert.Contains(t, sql, "LIMIT 5")
	assert.Contains(t, sql, "OFFSET 5")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		req := PageRequest{Page: 1, Limit: 5, Sort: "id; DROP TABLE licenses", Order: "desc"}
		return req.Apply(tx.Model(&pagedRow{}), sortable).Find(&[]pagedRow{})
	})
	assert.Contains(t, sql, "ORDER BY created_at DESC")
	assert.NotContains(t, sql, "DROP")
}

func TestNewPageCountsPages(t *testing.T) {
	page := NewPage([]string{"a", "b"}, 11, PageRequest{Page: 2, Limit: 5})
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, int64(11), page.Total)
	assert.Equal(t, 2, page.Page)

	assert.Equal(t, 0, NewPage(nil, 0, PageRequest{Page: 1, Limit: 5}).TotalPages)
}

func TestPaginatedResponseWritesMetaAndHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/samples?page=1&limit=2", nil)

	PaginatedResponse(c, NewPage([]string{"x", "y"}, 7, PageRequest{Page: 1, Limit: 2}))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "7", w.Header().Get("X-Total-Count"))
	assert.Equal(t, "4", w.Header().Get("X-Total-Pages"))
	assert.Contains(t, w.Body.String(), `"total_pages":4`)
	assert.Contains(t, w.Body.String(), `"data":["x","y"]`)
}
