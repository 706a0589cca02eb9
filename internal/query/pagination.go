package query

import (
	"github.com/Misscott/LocationAPI/internal/apierror"
	"gorm.io/gorm"
)

// DefaultLimit caps lists when the caller does not ask for a page size.
const DefaultLimit = 100

// Pagination translates to LIMIT limit OFFSET (page-1)*limit.
type Pagination struct {
	Limit int
	Page  int
}

// Paginate validates and defaults pagination input. Zero values mean "not
// provided" after query binding and take the defaults (limit 100, page 1);
// negative values are a programmer error surfaced as BadRequest.
func Paginate(limit, page int) (Pagination, error) {
	if limit < 0 || page < 0 {
		return Pagination{}, apierror.E(apierror.BadRequest, "invalid pagination", nil)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if page == 0 {
		page = 1
	}
	return Pagination{Limit: limit, Page: page}, nil
}

// Offset is the row offset of the page.
func (p Pagination) Offset() int { return (p.Page - 1) * p.Limit }

// Scope applies LIMIT/OFFSET.
func (p Pagination) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Limit(p.Limit).Offset(p.Offset())
	}
}
