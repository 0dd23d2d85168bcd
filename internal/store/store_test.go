package store_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulseboard/pulseboard/internal/store"
)

func TestSegmentForScoreBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  store.HealthSegment
	}{
		{100, store.SegmentHealthy},
		{81, store.SegmentHealthy},
		{80, store.SegmentHealthy}, // boundary inclusive toward Healthy
		{79, store.SegmentWatch},
		{51, store.SegmentWatch},
		{50, store.SegmentWatch}, // boundary inclusive toward Watch
		{49, store.SegmentAtRisk},
		{1, store.SegmentAtRisk},
		{0, store.SegmentAtRisk},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, store.SegmentForScore(tt.score), "score %d", tt.score)
	}
}

func TestParseSegment(t *testing.T) {
	for _, valid := range []string{"Healthy", "Watch", "At Risk"} {
		seg, ok := store.ParseSegment(valid)
		assert.True(t, ok, valid)
		assert.Equal(t, store.HealthSegment(valid), seg)
	}
	for _, invalid := range []string{"", "healthy", "AT RISK", "AtRisk", "Churned"} {
		_, ok := store.ParseSegment(invalid)
		assert.False(t, ok, invalid)
	}
}

func TestSeedDefaultsCensus(t *testing.T) {
	s := store.New()
	s.SeedDefaults()

	customers := s.Customers.List()
	require.Len(t, customers, 20)

	counts := s.SegmentCounts()
	assert.Equal(t, 8, counts[store.SegmentHealthy])
	assert.Equal(t, 6, counts[store.SegmentWatch])
	assert.Equal(t, 6, counts[store.SegmentAtRisk])

	// Every record must satisfy the score/segment invariant and carry a
	// well-formed score.
	for _, c := range customers {
		assert.Equal(t, store.SegmentForScore(c.HealthScore), c.HealthSegment, c.ID)
		assert.GreaterOrEqual(t, c.HealthScore, 0, c.ID)
		assert.LessOrEqual(t, c.HealthScore, 100, c.ID)
		assert.GreaterOrEqual(t, c.MRR, 0.0, c.ID)
		assert.False(t, c.LastActive.IsZero(), c.ID)
	}
}

func TestHealthDetailDeterministic(t *testing.T) {
	s := store.New()
	s.SeedDefaults()

	first, err := s.HealthDetail("3")
	require.NoError(t, err)
	second, err := s.HealthDetail("3")
	require.NoError(t, err)

	require.Equal(t, first, second)

	// Serialized form must be identical too: callers may cache responses.
	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHealthDetailScopedToCustomer(t *testing.T) {
	s := store.New()
	s.SeedDefaults()

	c, ok := s.Customers.Get("3") // Global Solutions, At Risk
	require.True(t, ok)

	detail, err := s.HealthDetail("3")
	require.NoError(t, err)

	assert.Equal(t, "3", detail.ID)
	assert.Equal(t, c.HealthScore, detail.HealthScore)
	assert.Equal(t, c.HealthSegment, detail.HealthSegment)

	require.NotEmpty(t, detail.RecentEvents)
	for i, e := range detail.RecentEvents {
		assert.NotEmpty(t, e.ID)
		assert.NotEmpty(t, e.Description)
		if i > 0 {
			// Newest first
			assert.True(t, detail.RecentEvents[i-1].Timestamp.After(e.Timestamp))
		}
	}

	require.Len(t, detail.UsageTrends, 7)
	for _, tr := range detail.UsageTrends {
		assert.Positive(t, tr.ActiveUsers)
		assert.Positive(t, tr.APICalls)
		assert.NotEmpty(t, tr.Features)
	}

	require.NotEmpty(t, detail.Notes)
	for _, n := range detail.Notes {
		assert.Equal(t, c.Owner, n.Author)
		assert.NotEmpty(t, n.Content)
	}

	// A different account gets different content.
	other, err := s.HealthDetail("7")
	require.NoError(t, err)
	assert.NotEqual(t, detail.RecentEvents, other.RecentEvents)
}

func TestHealthDetailNotFound(t *testing.T) {
	s := store.New()
	s.SeedDefaults()

	_, err := s.HealthDetail("999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, store.ErrNotFound))
	assert.Contains(t, err.Error(), "999")
}

func TestLoadStateRecomputesSegments(t *testing.T) {
	s := store.New()

	// The fixture lies about its segment; the load must recompute it from
	// the score.
	body := []byte(`{"customers":{"x1":{"id":"x1","name":"Example Co","domain":"example.com","mrr":100,"lastActive":"2026-01-01T00:00:00Z","healthScore":95,"healthSegment":"At Risk","owner":"Test Owner"}}}`)
	require.NoError(t, s.LoadState(body))

	c, ok := s.Customers.Get("x1")
	require.True(t, ok)
	assert.Equal(t, store.SegmentHealthy, c.HealthSegment)
}

func TestLoadStateFillsMissingID(t *testing.T) {
	s := store.New()
	body := []byte(`{"customers":{"x2":{"name":"No ID Co","domain":"noid.com","mrr":10,"lastActive":"2026-01-01T00:00:00Z","healthScore":40,"owner":"Test Owner"}}}`)
	require.NoError(t, s.LoadState(body))

	c, ok := s.Customers.Get("x2")
	require.True(t, ok)
	assert.Equal(t, "x2", c.ID)
	assert.Equal(t, store.SegmentAtRisk, c.HealthSegment)
}

func TestLoadStateRejectsMalformedJSON(t *testing.T) {
	s := store.New()
	assert.Error(t, s.LoadState([]byte(`{"customers":`)))
}

func TestResetRestoresDefaults(t *testing.T) {
	s := store.New()
	s.SeedDefaults()

	require.NoError(t, s.LoadState([]byte(`{"customers":{"only":{"id":"only","name":"Only Co","domain":"only.com","mrr":1,"lastActive":"2026-01-01T00:00:00Z","healthScore":10,"owner":"Test Owner"}}}`)))
	require.Equal(t, 1, s.Customers.Count())

	s.Reset()
	assert.Equal(t, 20, s.Customers.Count())
}
