package pulsecore

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestJSONHelper(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusCreated, map[string]string{"hello": "world"})

	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON content type, got %s", ct)
	}

	var m map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if m["hello"] != "world" {
		t.Errorf("unexpected body: %v", m)
	}
}

func TestErrorHelper(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "customer not found")

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}

	var m map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	e := m["error"]
	if e["message"] != "customer not found" || e["code"] != float64(404) {
		t.Errorf("unexpected error envelope: %v", m)
	}
}

func TestNewMountsMetricsEndpoint(t *testing.T) {
	app := New(&Config{Name: "test"})

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected /metrics to be mounted, got %d", rec.Code)
	}
}

func TestGetConfig(t *testing.T) {
	app := New(&Config{Name: "test", Port: 8090, Latency: 100 * time.Millisecond})

	cfg := app.GetConfig()
	if cfg["name"] != "test" || cfg["port"] != 8090 {
		t.Errorf("unexpected config: %v", cfg)
	}
	if cfg["latency"] != "100ms" {
		t.Errorf("expected latency string, got %v", cfg["latency"])
	}
}

func TestUpdateConfig(t *testing.T) {
	app := New(&Config{Name: "test"})

	if err := app.UpdateConfig(map[string]any{"latency": "250ms", "fail_rate": 0.5, "verbose": true}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if app.Config.Latency != 250*time.Millisecond {
		t.Errorf("expected latency applied, got %v", app.Config.Latency)
	}
	if app.Config.FailRate != 0.5 {
		t.Errorf("expected fail rate applied, got %f", app.Config.FailRate)
	}
	if !app.Config.Verbose {
		t.Error("expected verbose applied")
	}
}

func TestUpdateConfigValidatesBeforeApplying(t *testing.T) {
	app := New(&Config{Name: "test"})

	// One valid field plus one invalid field: nothing may be applied.
	err := app.UpdateConfig(map[string]any{"latency": "250ms", "port": 9999})
	if err == nil {
		t.Fatal("expected error for immutable field")
	}
	if app.Config.Latency != 0 {
		t.Errorf("expected atomic rejection, but latency was applied: %v", app.Config.Latency)
	}
}

func TestUpdateConfigRejections(t *testing.T) {
	app := New(&Config{Name: "test"})

	tests := []struct {
		name    string
		updates map[string]any
	}{
		{"unknown key", map[string]any{"mystery": 1}},
		{"negative latency", map[string]any{"latency": "-5ms"}},
		{"latency wrong type", map[string]any{"latency": 5}},
		{"fail_rate out of range", map[string]any{"fail_rate": 2.0}},
		{"fail_rate wrong type", map[string]any{"fail_rate": "half"}},
		{"verbose wrong type", map[string]any{"verbose": "yes"}},
		{"name immutable", map[string]any{"name": "other"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := app.UpdateConfig(tt.updates); err == nil {
				t.Error("expected error")
			}
		})
	}
}
