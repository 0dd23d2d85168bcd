// Package query implements the customer list pipeline: filter by search text
// and segment, stable-sort by a typed comparator, then paginate. All
// functions are pure and safe for concurrent use over the immutable store.
package query

import (
	"cmp"
	"sort"
	"strings"

	"github.com/pulseboard/pulseboard/internal/store"
)

// Field identifies a sortable customer column.
type Field string

const (
	FieldName        Field = "name"
	FieldMRR         Field = "mrr"
	FieldLastActive  Field = "lastActive"
	FieldHealthScore Field = "healthScore"
)

// ParseField validates a sort-field literal from external input.
func ParseField(s string) (Field, bool) {
	switch Field(s) {
	case FieldName, FieldMRR, FieldLastActive, FieldHealthScore:
		return Field(s), true
	}
	return "", false
}

// Order is the sort direction.
type Order string

const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

// ParseOrder validates a sort-order literal from external input.
func ParseOrder(s string) (Order, bool) {
	switch Order(s) {
	case OrderAsc, OrderDesc:
		return Order(s), true
	}
	return "", false
}

// DefaultPageSize is substituted when a spec carries no usable page size.
const DefaultPageSize = 20

// Spec is one list query: filters, sort, and page selection. The zero value
// is valid and means "first page of everything, sorted by name ascending".
type Spec struct {
	Search    string
	Segment   store.HealthSegment // empty means all segments
	Page      int                 // 1-based
	PageSize  int
	SortBy    Field
	SortOrder Order
}

// Normalize clamps out-of-range page selections and fills in defaults.
// This is the single argument policy for the pipeline: malformed numeric
// input is normalized, never rejected (Page < 1 becomes 1, PageSize <= 0
// becomes DefaultPageSize).
func (s Spec) Normalize() Spec {
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.SortBy == "" {
		s.SortBy = FieldName
	}
	if s.SortOrder == "" {
		s.SortOrder = OrderAsc
	}
	return s
}

// Matches reports whether a customer passes the spec's search and segment
// filters. An empty search matches everything; search compares
// case-insensitively against both name and domain as a substring.
func (s Spec) Matches(c store.Customer) bool {
	if s.Segment != "" && c.HealthSegment != s.Segment {
		return false
	}
	if s.Search == "" {
		return true
	}
	needle := strings.ToLower(s.Search)
	return strings.Contains(strings.ToLower(c.Name), needle) ||
		strings.Contains(strings.ToLower(c.Domain), needle)
}

// Pagination describes where a page sits within the full filtered set.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Result is one page of matching customers plus pagination counters.
type Result struct {
	Data       []store.Customer `json:"data"`
	Pagination Pagination       `json:"pagination"`
}

// comparators is the closed set of sort comparators, one per field, each with
// type-correct comparison: strings case-insensitively, numbers numerically,
// timestamps by instant.
var comparators = map[Field]func(a, b store.Customer) int{
	FieldName: func(a, b store.Customer) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	},
	FieldMRR: func(a, b store.Customer) int {
		return cmp.Compare(a.MRR, b.MRR)
	},
	FieldLastActive: func(a, b store.Customer) int {
		return a.LastActive.Compare(b.LastActive)
	},
	FieldHealthScore: func(a, b store.Customer) int {
		return cmp.Compare(a.HealthScore, b.HealthScore)
	},
}

// Run executes the pipeline over the full customer collection: filter, then
// stable sort, then paginate. The input slice is never mutated; ties keep the
// relative order the filter step produced regardless of sort direction. A
// page past the end of the filtered set yields empty data, not an error.
func Run(customers []store.Customer, spec Spec) Result {
	spec = spec.Normalize()

	matched := make([]store.Customer, 0, len(customers))
	for _, c := range customers {
		if spec.Matches(c) {
			matched = append(matched, c)
		}
	}

	compare := comparators[spec.SortBy]
	sort.SliceStable(matched, func(i, j int) bool {
		c := compare(matched[i], matched[j])
		if spec.SortOrder == OrderDesc {
			c = -c
		}
		return c < 0
	})

	total := len(matched)
	totalPages := 0
	if total > 0 {
		totalPages = (total + spec.PageSize - 1) / spec.PageSize
	}

	start := (spec.Page - 1) * spec.PageSize
	if start > total {
		start = total
	}
	end := start + spec.PageSize
	if end > total {
		end = total
	}

	return Result{
		Data: matched[start:end],
		Pagination: Pagination{
			Page:       spec.Page,
			PageSize:   spec.PageSize,
			Total:      total,
			TotalPages: totalPages,
		},
	}
}
