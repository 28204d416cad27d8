// Package domain provides types shared by the business services.
package domain

// ListFilter carries common listing parameters.
type ListFilter struct {
	// Search matches against name-like columns (substring, case-insensitive)
	Search string

	// Pagination
	Limit  int
	Offset int

	// OrderBy is a raw order clause, validated by the repository
	OrderBy string

	// IncludeInactive includes soft-deleted records
	IncludeInactive bool
}

// DefaultListFilter returns sensible listing defaults.
func DefaultListFilter() ListFilter {
	return ListFilter{
		Limit:  50,
		Offset: 0,
	}
}

// ListResult is a paginated result set.
type ListResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
}
