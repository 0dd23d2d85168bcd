// Package admin provides the /admin/* control plane: state management, fault
// injection, and inspection. It exists for test harnesses and local UI
// development, not for dashboard consumers.
package admin

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pulseboard/pulseboard/pkg/pulsecore"
	"github.com/pulseboard/pulseboard/pkg/store"
)

// StateStore is the interface the data store must implement to support admin
// state management.
type StateStore interface {
	// Snapshot returns the full state as a JSON-serializable value.
	Snapshot() any
	// LoadState replaces the full state from a JSON body.
	LoadState(data []byte) error
	// Reset restores the default fixture data.
	Reset()
}

// ConfigProvider is optionally implemented by the server to expose runtime
// config over the admin plane.
type ConfigProvider interface {
	GetConfig() map[string]any
	UpdateConfig(updates map[string]any) error
}

// Handler provides the admin endpoints.
type Handler struct {
	state  StateStore
	mw     *pulsecore.Middleware
	clock  *store.Clock
	config ConfigProvider
}

// NewHandler creates a new admin handler.
func NewHandler(state StateStore, mw *pulsecore.Middleware, clock *store.Clock) *Handler {
	return &Handler{
		state: state,
		mw:    mw,
		clock: clock,
	}
}

// SetConfigProvider sets the runtime config provider (optional).
func (h *Handler) SetConfigProvider(p ConfigProvider) {
	h.config = p
}

// Routes mounts the admin endpoints on the given router.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Post("/reset", h.handleReset)
		r.Get("/state", h.handleGetState)
		r.Post("/state", h.handleLoadState)
		r.Post("/fault/*", h.handleInjectFault)
		r.Delete("/fault/*", h.handleRemoveFault)
		r.Get("/faults", h.handleListFaults)
		r.Get("/requests", h.handleGetRequests)
		r.Post("/time/advance", h.handleTimeAdvance)
		r.Get("/time", h.handleGetTime)
		r.Get("/config", h.handleGetConfig)
		r.Patch("/config", h.handleUpdateConfig)
		r.Get("/health", h.handleHealth)
	})
}

func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	h.state.Reset()
	h.mw.ReqLog.Clear()
	h.mw.Faults.Reset()
	if h.clock != nil {
		h.clock.Reset()
	}
	pulsecore.JSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) handleGetState(w http.ResponseWriter, r *http.Request) {
	pulsecore.JSON(w, http.StatusOK, h.state.Snapshot())
}

func (h *Handler) handleLoadState(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		pulsecore.Error(w, http.StatusBadRequest, "failed to read body: "+err.Error())
		return
	}
	if err := h.state.LoadState(body); err != nil {
		pulsecore.Error(w, http.StatusBadRequest, "failed to load state: "+err.Error())
		return
	}
	pulsecore.JSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

func (h *Handler) handleInjectFault(w http.ResponseWriter, r *http.Request) {
	endpoint := "/" + chi.URLParam(r, "*")

	var fault pulsecore.FaultConfig
	if err := json.NewDecoder(r.Body).Decode(&fault); err != nil {
		pulsecore.Error(w, http.StatusBadRequest, "invalid fault config: "+err.Error())
		return
	}
	h.mw.Faults.Set(endpoint, fault)
	pulsecore.JSON(w, http.StatusOK, map[string]any{
		"status":   "injected",
		"endpoint": endpoint,
		"fault":    fault,
	})
}

func (h *Handler) handleRemoveFault(w http.ResponseWriter, r *http.Request) {
	endpoint := "/" + chi.URLParam(r, "*")
	if h.mw.Faults.Remove(endpoint) {
		pulsecore.JSON(w, http.StatusOK, map[string]any{"status": "removed", "endpoint": endpoint})
	} else {
		pulsecore.Error(w, http.StatusNotFound, "no fault registered for "+endpoint)
	}
}

func (h *Handler) handleListFaults(w http.ResponseWriter, r *http.Request) {
	pulsecore.JSON(w, http.StatusOK, h.mw.Faults.All())
}

func (h *Handler) handleGetRequests(w http.ResponseWriter, r *http.Request) {
	pulsecore.JSON(w, http.StatusOK, h.mw.ReqLog.Entries())
}

func (h *Handler) handleTimeAdvance(w http.ResponseWriter, r *http.Request) {
	if h.clock == nil {
		pulsecore.Error(w, http.StatusBadRequest, "simulated clock not configured")
		return
	}

	var req struct {
		Duration string `json:"duration"` // Go duration string, e.g. "24h", "30m"
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pulsecore.Error(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		pulsecore.Error(w, http.StatusBadRequest, "invalid duration: "+err.Error())
		return
	}
	h.clock.Advance(d)
	pulsecore.JSON(w, http.StatusOK, map[string]any{
		"status": "advanced",
		"offset": h.clock.Offset().String(),
		"now":    h.clock.Now(),
	})
}

func (h *Handler) handleGetTime(w http.ResponseWriter, r *http.Request) {
	if h.clock == nil {
		pulsecore.Error(w, http.StatusBadRequest, "simulated clock not configured")
		return
	}
	pulsecore.JSON(w, http.StatusOK, map[string]any{
		"now":    h.clock.Now(),
		"offset": h.clock.Offset().String(),
	})
}

func (h *Handler) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	if h.config == nil {
		pulsecore.Error(w, http.StatusBadRequest, "config provider not configured")
		return
	}
	pulsecore.JSON(w, http.StatusOK, h.config.GetConfig())
}

func (h *Handler) handleUpdateConfig(w http.ResponseWriter, r *http.Request) {
	if h.config == nil {
		pulsecore.Error(w, http.StatusBadRequest, "config provider not configured")
		return
	}
	var updates map[string]any
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		pulsecore.Error(w, http.StatusBadRequest, "invalid body: "+err.Error())
		return
	}
	if err := h.config.UpdateConfig(updates); err != nil {
		pulsecore.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	pulsecore.JSON(w, http.StatusOK, h.config.GetConfig())
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	pulsecore.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
