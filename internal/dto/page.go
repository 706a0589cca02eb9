package dto

// ListQuery is embedded by every entity filter; limit/page fall back to the
// defaults in the query package when absent.
type ListQuery struct {
	Limit int `form:"limit"`
	Page  int `form:"page"`
}

// Page is the pagination block of every list envelope. TotalElements is
// computed with the same now snapshot as the rows themselves.
type Page struct {
	TotalElements int64 `json:"totalElements"`
	Limit         int   `json:"limit"`
	Page          int   `json:"page"`
}
