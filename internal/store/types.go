package store

import "time"

// HealthSegment classifies an account by engagement risk. The three segments
// are totally ordered by severity: Healthy > Watch > At Risk.
type HealthSegment string

const (
	SegmentHealthy HealthSegment = "Healthy"
	SegmentWatch   HealthSegment = "Watch"
	SegmentAtRisk  HealthSegment = "At Risk"
)

// Segments lists all segments in severity order, most healthy first.
var Segments = []HealthSegment{SegmentHealthy, SegmentWatch, SegmentAtRisk}

// ParseSegment validates a segment literal from external input.
func ParseSegment(s string) (HealthSegment, bool) {
	switch HealthSegment(s) {
	case SegmentHealthy, SegmentWatch, SegmentAtRisk:
		return HealthSegment(s), true
	}
	return "", false
}

// SegmentForScore derives the health segment from a 0-100 health score.
// Boundary values are inclusive toward the higher segment: 80 is Healthy,
// 50 is Watch.
func SegmentForScore(score int) HealthSegment {
	switch {
	case score >= 80:
		return SegmentHealthy
	case score >= 50:
		return SegmentWatch
	default:
		return SegmentAtRisk
	}
}

// Customer is one account row in the dashboard. Records are immutable once
// loaded; HealthSegment is always derived from HealthScore via
// SegmentForScore at construction time.
type Customer struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Domain        string        `json:"domain"`
	MRR           float64       `json:"mrr"`
	LastActive    time.Time     `json:"lastActive"`
	HealthScore   int           `json:"healthScore"`
	HealthSegment HealthSegment `json:"healthSegment"`
	Owner         string        `json:"owner"`
	Avatar        string        `json:"avatar,omitempty"`
}

// EventType enumerates the account activity events shown in the detail panel.
type EventType string

const (
	EventLogin         EventType = "login"
	EventFeatureUsed   EventType = "feature_used"
	EventSupportTicket EventType = "support_ticket"
	EventUpgrade       EventType = "upgrade"
	EventDowngrade     EventType = "downgrade"
)

// Event is one entry in an account's activity log.
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// UsageTrend is one day of aggregated product usage for an account.
type UsageTrend struct {
	Date        string   `json:"date"` // YYYY-MM-DD
	ActiveUsers int      `json:"activeUsers"`
	APICalls    int      `json:"apiCalls"`
	Features    []string `json:"features"`
}

// Note is a free-text note left by the account owner.
type Note struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// HealthDetail is the per-account drill-down record: the current score and
// segment (denormalized from the Customer), recent events, daily usage
// trends, and owner notes. All sub-sequences are read-only logs.
type HealthDetail struct {
	ID            string        `json:"id"`
	HealthScore   int           `json:"healthScore"`
	HealthSegment HealthSegment `json:"healthSegment"`
	RecentEvents  []Event       `json:"recentEvents"`
	UsageTrends   []UsageTrend  `json:"usageTrends"`
	Notes         []Note        `json:"notes"`
}
