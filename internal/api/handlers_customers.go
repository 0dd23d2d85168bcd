package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pulseboard/pulseboard/internal/query"
	"github.com/pulseboard/pulseboard/internal/store"
	"github.com/pulseboard/pulseboard/pkg/pulsecore"
)

// ListCustomers handles GET /api/customers.
// Query params: search, segment, page, pageSize, sortBy, sortOrder.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	spec, err := parseListQuery(r)
	if err != nil {
		pulsecore.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result := query.Run(h.store.Customers.List(), spec)
	pulsecore.JSON(w, http.StatusOK, result)
}

// GetCustomer handles GET /api/customers/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, ok := h.store.Customers.Get(id)
	if !ok {
		pulsecore.Error(w, http.StatusNotFound, "customer not found")
		return
	}
	pulsecore.JSON(w, http.StatusOK, c)
}

// GetCustomerHealth handles GET /api/customers/{id}/health.
func (h *Handler) GetCustomerHealth(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	detail, err := h.store.HealthDetail(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			pulsecore.Error(w, http.StatusNotFound, "customer not found")
			return
		}
		pulsecore.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	pulsecore.JSON(w, http.StatusOK, detail)
}

// segmentCount is one row of the segment tab summary.
type segmentCount struct {
	Segment store.HealthSegment `json:"segment"`
	Count   int                 `json:"count"`
}

// ListSegments handles GET /api/segments. It returns the three segment
// literals with their current account counts, in severity order, for the
// dashboard's filter tabs.
func (h *Handler) ListSegments(w http.ResponseWriter, r *http.Request) {
	counts := h.store.SegmentCounts()
	out := make([]segmentCount, 0, len(store.Segments))
	for _, seg := range store.Segments {
		out = append(out, segmentCount{Segment: seg, Count: counts[seg]})
	}
	pulsecore.JSON(w, http.StatusOK, map[string]any{"segments": out})
}
