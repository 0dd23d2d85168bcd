// Package api implements the dashboard-facing HTTP API: the customer list
// query and the per-customer health detail lookups.
package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/pulseboard/pulseboard/internal/store"
	"github.com/pulseboard/pulseboard/pkg/pulsecore"
)

// Handler holds all API handler state.
type Handler struct {
	store *store.MemoryStore
	mw    *pulsecore.Middleware
}

// NewHandler creates a new API handler.
func NewHandler(s *store.MemoryStore, mw *pulsecore.Middleware) *Handler {
	return &Handler{store: s, mw: mw}
}

// Routes mounts the dashboard API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(h.mw.FaultInjection)

		r.Get("/customers", h.ListCustomers)
		r.Get("/customers/{id}", h.GetCustomer)
		r.Get("/customers/{id}/health", h.GetCustomerHealth)
		r.Get("/segments", h.ListSegments)
	})
}
