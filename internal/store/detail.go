package store

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"time"
)

// Feature names that can appear in usage trends.
var featurePool = []string{
	"analytics", "reports", "integrations", "dashboards", "alerts", "exports",
}

var eventTypesBySegment = map[HealthSegment][]EventType{
	SegmentHealthy: {EventLogin, EventFeatureUsed, EventUpgrade, EventFeatureUsed},
	SegmentWatch:   {EventLogin, EventFeatureUsed, EventSupportTicket, EventLogin},
	SegmentAtRisk:  {EventSupportTicket, EventDowngrade, EventLogin, EventSupportTicket},
}

var noteContentBySegment = map[HealthSegment][]string{
	SegmentHealthy: {
		"Customer is very engaged with the product. Looking to expand usage.",
		"Discussed renewal timeline. All looks positive.",
		"Champion presented our dashboard at their internal all-hands.",
	},
	SegmentWatch: {
		"Usage dipped after their team reorg. Scheduled a check-in call.",
		"Waiting on their IT team to finish the SSO rollout before expansion.",
		"Mixed feedback in the QBR. Following up with a success plan.",
	},
	SegmentAtRisk: {
		"Multiple unresolved support tickets. Escalated to engineering.",
		"Champion left the company. Need to find a new internal sponsor.",
		"Renewal at risk. Exec sponsor call scheduled for next week.",
	},
}

// detailFor synthesizes the health drill-down record for a customer.
// Everything is derived from the customer record through a PRNG seeded by the
// customer id, so the output is deterministic: the same id always produces
// the same events, trends, and notes.
func detailFor(c Customer) HealthDetail {
	rng := rand.New(rand.NewPCG(idSeed(c.ID), uint64(c.HealthScore)))

	return HealthDetail{
		ID:            c.ID,
		HealthScore:   c.HealthScore,
		HealthSegment: c.HealthSegment,
		RecentEvents:  eventsFor(c, rng),
		UsageTrends:   trendsFor(c, rng),
		Notes:         notesFor(c, rng),
	}
}

func idSeed(id string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(id))
	return h.Sum64()
}

// eventsFor produces 3-5 recent events, newest first, walking back in time
// from the customer's last-active instant.
func eventsFor(c Customer, rng *rand.Rand) []Event {
	types := eventTypesBySegment[c.HealthSegment]
	count := 3 + rng.IntN(3)
	ts := c.LastActive

	events := make([]Event, 0, count)
	for i := 0; i < count; i++ {
		et := types[rng.IntN(len(types))]
		events = append(events, Event{
			ID:          fmt.Sprintf("evt_%s_%02d", c.ID, i+1),
			Type:        et,
			Description: eventDescription(et, c, rng),
			Timestamp:   ts,
		})
		ts = ts.Add(-time.Duration(6+rng.IntN(30)) * time.Hour)
	}
	return events
}

func eventDescription(et EventType, c Customer, rng *rand.Rand) string {
	switch et {
	case EventLogin:
		return fmt.Sprintf("User logged in from %s", c.Domain)
	case EventFeatureUsed:
		return fmt.Sprintf("Used the %s feature", featurePool[rng.IntN(len(featurePool))])
	case EventSupportTicket:
		return fmt.Sprintf("Opened ticket: %s", []string{
			"API integration help",
			"Billing question",
			"Slow dashboard loads",
			"SSO configuration issue",
		}[rng.IntN(4)])
	case EventUpgrade:
		return "Upgraded plan tier"
	case EventDowngrade:
		return "Downgraded plan tier"
	default:
		return "Account activity"
	}
}

// trendsFor produces seven days of usage ending on the customer's last-active
// date, newest first. Volumes scale with the health score so an At Risk
// account shows visibly less activity than a Healthy one.
func trendsFor(c Customer, rng *rand.Rand) []UsageTrend {
	const days = 7
	baseUsers := 5 + c.HealthScore/2
	day := c.LastActive.UTC().Truncate(24 * time.Hour)

	trends := make([]UsageTrend, 0, days)
	for i := 0; i < days; i++ {
		users := baseUsers + rng.IntN(11) - 5
		if users < 1 {
			users = 1
		}
		trends = append(trends, UsageTrend{
			Date:        day.Format("2006-01-02"),
			ActiveUsers: users,
			APICalls:    users * (20 + rng.IntN(15)),
			Features:    featuresFor(c.HealthScore, rng),
		})
		day = day.AddDate(0, 0, -1)
	}
	return trends
}

// featuresFor picks a subset of the feature pool; engaged accounts touch more
// of the product per day.
func featuresFor(score int, rng *rand.Rand) []string {
	count := 1 + score/25
	if count > len(featurePool) {
		count = len(featurePool)
	}
	perm := rng.Perm(len(featurePool))
	features := make([]string, 0, count)
	for _, idx := range perm[:count] {
		features = append(features, featurePool[idx])
	}
	return features
}

// notesFor produces 2-3 owner notes, newest first, spread over the weeks
// before the customer's last-active instant.
func notesFor(c Customer, rng *rand.Rand) []Note {
	contents := noteContentBySegment[c.HealthSegment]
	count := 2 + rng.IntN(2)
	if count > len(contents) {
		count = len(contents)
	}
	ts := c.LastActive.Add(-time.Duration(24+rng.IntN(72)) * time.Hour)

	notes := make([]Note, 0, count)
	for i := 0; i < count; i++ {
		notes = append(notes, Note{
			ID:        fmt.Sprintf("note_%s_%02d", c.ID, i+1),
			Author:    c.Owner,
			Content:   contents[i],
			CreatedAt: ts,
		})
		ts = ts.Add(-time.Duration(3+rng.IntN(7)) * 24 * time.Hour)
	}
	return notes
}
