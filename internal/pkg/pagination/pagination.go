package pagination

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/pkg/response"
	"gorm.io/gorm"
)

// ErrInvalidParams is returned when page or limit fall outside the allowed range.
var ErrInvalidParams = errors.New("invalid pagination parameters")

// Query holds parsed pagination parameters.
type Query struct {
	Page  int
	Limit int
}

// Parse extracts page/limit from the request. Out-of-range values are
// rejected rather than clamped so clients learn about bad requests.
func Parse(c *gin.Context, defaultLimit, maxLimit int) (Query, error) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		return Query{}, ErrInvalidParams
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil {
		return Query{}, ErrInvalidParams
	}

	if page < 1 || limit < 1 || limit > maxLimit {
		return Query{}, ErrInvalidParams
	}
	return Query{Page: page, Limit: limit}, nil
}

// Paginate applies limit/offset to a GORM query and returns the page descriptor.
func Paginate[T any](db *gorm.DB, q Query, dest *[]T) (response.Pagination, error) {
	var total int64
	if err := db.Count(&total).Error; err != nil {
		return response.Pagination{}, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := db.Offset(offset).Limit(q.Limit).Find(dest).Error; err != nil {
		return response.Pagination{}, err
	}

	totalPages := int((total + int64(q.Limit) - 1) / int64(q.Limit))

	return response.Pagination{
		CurrentPage:  q.Page,
		TotalPages:   totalPages,
		TotalRecords: total,
		HasNext:      q.Page < totalPages,
		HasPrev:      q.Page > 1,
	}, nil
}
