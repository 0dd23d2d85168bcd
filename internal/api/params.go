package api

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pulseboard/pulseboard/internal/query"
	"github.com/pulseboard/pulseboard/internal/store"
)

// parseListQuery builds a query.Spec from the request's query string.
//
// Enum parameters (segment, sortBy, sortOrder) must be one of their known
// literals when present; anything else is a 400. Numeric parameters must be
// integers when present; out-of-range values (page 0, negative pageSize) are
// normalized by the pipeline rather than rejected.
func parseListQuery(r *http.Request) (query.Spec, error) {
	q := r.URL.Query()
	spec := query.Spec{Search: q.Get("search")}

	if v := q.Get("segment"); v != "" {
		seg, ok := store.ParseSegment(v)
		if !ok {
			return spec, fmt.Errorf("segment must be one of %q, %q, %q",
				store.SegmentHealthy, store.SegmentWatch, store.SegmentAtRisk)
		}
		spec.Segment = seg
	}

	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return spec, fmt.Errorf("page must be an integer")
		}
		spec.Page = n
	}

	if v := q.Get("pageSize"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return spec, fmt.Errorf("pageSize must be an integer")
		}
		spec.PageSize = n
	}

	if v := q.Get("sortBy"); v != "" {
		field, ok := query.ParseField(v)
		if !ok {
			return spec, fmt.Errorf("sortBy must be one of %q, %q, %q, %q",
				query.FieldName, query.FieldMRR, query.FieldLastActive, query.FieldHealthScore)
		}
		spec.SortBy = field
	}

	if v := q.Get("sortOrder"); v != "" {
		order, ok := query.ParseOrder(v)
		if !ok {
			return spec, fmt.Errorf("sortOrder must be %q or %q", query.OrderAsc, query.OrderDesc)
		}
		spec.SortOrder = order
	}

	return spec, nil
}
