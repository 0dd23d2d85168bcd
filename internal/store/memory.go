// Package store holds the pulseboard account data set: an immutable,
// in-memory collection of customers and per-customer health detail records.
package store

import (
	"encoding/json"
	"errors"
	"fmt"

	pkgstore "github.com/pulseboard/pulseboard/pkg/store"
)

// ErrNotFound is returned when a lookup references an unknown customer id.
var ErrNotFound = errors.New("customer not found")

// MemoryStore holds all pulseboard state in memory. It is populated once at
// startup and read-only afterwards, so it may be shared across handlers
// without coordination.
type MemoryStore struct {
	Customers *pkgstore.Store[Customer]
	Clock     *pkgstore.Clock
}

// New creates a MemoryStore with no data. Call SeedDefaults or LoadState to
// populate it.
func New() *MemoryStore {
	return &MemoryStore{
		Customers: pkgstore.New[Customer](),
		Clock:     pkgstore.NewClock(),
	}
}

// HealthDetail returns the health drill-down record for one customer.
// Content is synthesized deterministically per id: the same id always yields
// the same record for the process lifetime. Returns ErrNotFound (wrapped with
// the id) when no such customer exists.
func (s *MemoryStore) HealthDetail(id string) (HealthDetail, error) {
	c, ok := s.Customers.Get(id)
	if !ok {
		return HealthDetail{}, fmt.Errorf("customer %q: %w", id, ErrNotFound)
	}
	return detailFor(c), nil
}

// SegmentCounts returns the number of customers currently in each segment.
func (s *MemoryStore) SegmentCounts() map[HealthSegment]int {
	counts := make(map[HealthSegment]int, len(Segments))
	for _, c := range s.Customers.List() {
		counts[c.HealthSegment]++
	}
	return counts
}

// stateSnapshot is the JSON-serializable state for admin endpoints and seed
// files.
type stateSnapshot struct {
	Customers map[string]Customer `json:"customers"`
}

// Snapshot returns the full state as a JSON-serializable value.
func (s *MemoryStore) Snapshot() any {
	return stateSnapshot{
		Customers: s.Customers.Snapshot(),
	}
}

// LoadState replaces the full state from a JSON body. Health segments are
// recomputed from scores after load so a hand-written fixture can never carry
// a segment that disagrees with its score.
func (s *MemoryStore) LoadState(data []byte) error {
	var snap stateSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	if snap.Customers != nil {
		for id, c := range snap.Customers {
			if c.ID == "" {
				c.ID = id
			}
			c.HealthSegment = SegmentForScore(c.HealthScore)
			snap.Customers[id] = c
		}
		s.Customers.LoadSnapshot(snap.Customers)
	}
	return nil
}

// Reset restores the default fixture data.
func (s *MemoryStore) Reset() {
	s.Customers.Reset()
	s.Clock.Reset()
	s.SeedDefaults()
}
