package service

import (
	"github.com/Misscott/LocationAPI/internal/dto"
	"github.com/Misscott/LocationAPI/internal/query"
)

// pageOf builds the pagination block of a list envelope from the validated
// input and the count taken under the same now snapshot as the rows.
func pageOf(total int64, q dto.ListQuery) dto.Page {
	pg, err := query.Paginate(q.Limit, q.Page)
	if err != nil {
		// List already validated pagination; this cannot happen.
		return dto.Page{TotalElements: total, Limit: q.Limit, Page: q.Page}
	}
	return dto.Page{TotalElements: total, Limit: pg.Limit, Page: pg.Page}
}
