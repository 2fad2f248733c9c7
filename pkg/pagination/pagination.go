package pagination

import "strings"

const (
	// DefaultSize is the standard page size when one is not provided.
	DefaultSize = 25
	// MaxSize caps how many rows any page query can request.
	MaxSize = 100
)

// Request holds offset pagination inputs from controllers or services.
type Request struct {
	Page     int
	Size     int
	SortBy   string
	SortDesc bool
}

// Normalize enforces the configured defaults and caps, and whitelists the
// sort column against allowed. Unknown sort columns fall back to "id".
func (r Request) Normalize(allowed ...string) Request {
	if r.Page < 0 {
		r.Page = 0
	}
	if r.Size <= 0 {
		r.Size = DefaultSize
	}
	if r.Size > MaxSize {
		r.Size = MaxSize
	}
	r.SortBy = normalizeSort(r.SortBy, allowed)
	return r
}

func normalizeSort(column string, allowed []string) string {
	column = strings.TrimSpace(column)
	for _, candidate := range allowed {
		if strings.EqualFold(candidate, column) {
			return candidate
		}
	}
	return "id"
}

// Offset returns the row offset for the requested page.
func (r Request) Offset() int {
	return r.Page * r.Size
}

// OrderClause renders the SQL ordering for the normalized request.
func (r Request) OrderClause() string {
	direction := "ASC"
	if r.SortDesc {
		direction = "DESC"
	}
	column := r.SortBy
	if column == "" {
		column = "id"
	}
	return column + " " + direction
}

// Page wraps one page of results together with its count metadata.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// NewPage builds the envelope from a page of rows plus the total row count.
func NewPage[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	totalPages := 0
	if req.Size > 0 {
		totalPages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return Page[T]{
		Content:       content,
		Page:          req.Page,
		Size:          req.Size,
		TotalElements: total,
		TotalPages:    totalPages,
		First:         req.Page == 0,
		Last:          req.Page >= totalPages-1,
	}
}

// Map converts a page of one element type into another, keeping the metadata.
func Map[T, U any](page Page[T], fn func(T) U) Page[U] {
	content := make([]U, 0, len(page.Content))
	for _, item := range page.Content {
		content = append(content, fn(item))
	}
	return Page[U]{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
		First:         page.First,
		Last:          page.Last,
	}
}
