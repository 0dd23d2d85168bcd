package store

import "time"

// SeedDefaults populates the store with the default account fixture: twenty
// customers spread across all three health segments (8 Healthy, 6 Watch,
// 6 At Risk by the derivation rule).
func (s *MemoryStore) SeedDefaults() {
	s.add("1", "Acme Corporation", "acme.com", 15000, "2026-01-29T10:30:00Z", 95, "Sarah Johnson", "/avatars/acme.png")
	s.add("2", "TechStart Inc", "techstart.io", 8500, "2026-01-28T15:45:00Z", 72, "Michael Chen", "/avatars/techstart.png")
	s.add("3", "Global Solutions Ltd", "globalsolutions.com", 25000, "2026-01-15T08:20:00Z", 35, "Sarah Johnson", "/avatars/global.png")
	s.add("4", "Innovation Labs", "innovationlabs.tech", 12000, "2026-01-29T14:15:00Z", 88, "Emily Rodriguez", "/avatars/innovation.png")
	s.add("5", "Data Dynamics", "datadynamics.ai", 18500, "2026-01-27T11:00:00Z", 65, "Michael Chen", "/avatars/data.png")
	s.add("6", "CloudBurst Systems", "cloudburst.io", 9200, "2026-01-10T09:30:00Z", 28, "Emily Rodriguez", "/avatars/cloud.png")
	s.add("7", "NextGen Analytics", "nextgen-analytics.com", 22000, "2026-01-29T16:45:00Z", 92, "Sarah Johnson", "/avatars/nextgen.png")
	s.add("8", "Velocity Software", "velocitysoft.dev", 7800, "2026-01-26T13:20:00Z", 58, "Michael Chen", "/avatars/velocity.png")
	s.add("9", "Quantum Enterprises", "quantum-ent.com", 31000, "2026-01-29T09:15:00Z", 97, "Emily Rodriguez", "/avatars/quantum.png")
	s.add("10", "Streamline Partners", "streamlinepartners.co", 5500, "2026-01-12T10:00:00Z", 42, "Sarah Johnson", "/avatars/streamline.png")
	s.add("11", "Alpha Technologies", "alphatech.com", 14500, "2026-01-29T12:30:00Z", 85, "Michael Chen", "/avatars/alpha.png")
	s.add("12", "Beta Innovations", "betainnovations.io", 10200, "2026-01-25T14:40:00Z", 68, "Emily Rodriguez", "/avatars/beta.png")
	s.add("13", "Gamma Ventures", "gammaventures.com", 19800, "2026-01-08T08:15:00Z", 22, "Sarah Johnson", "/avatars/gamma.png")
	s.add("14", "Delta Systems", "deltasystems.tech", 27500, "2026-01-29T11:20:00Z", 94, "Michael Chen", "/avatars/delta.png")
	s.add("15", "Epsilon Digital", "epsilondigital.com", 6700, "2026-01-24T16:30:00Z", 61, "Emily Rodriguez", "/avatars/epsilon.png")
	s.add("16", "Zenith Solutions", "zenithsolutions.co", 13200, "2026-01-14T12:45:00Z", 38, "Sarah Johnson", "/avatars/zenith.png")
	s.add("17", "Phoenix Platform", "phoenixplatform.io", 21500, "2026-01-29T15:10:00Z", 91, "Michael Chen", "/avatars/phoenix.png")
	s.add("18", "Nexus Networks", "nexusnetworks.com", 8900, "2026-01-27T09:25:00Z", 74, "Emily Rodriguez", "/avatars/nexus.png")
	s.add("19", "Horizon Ventures", "horizonventures.ai", 16800, "2026-01-11T14:00:00Z", 31, "Sarah Johnson", "/avatars/horizon.png")
	s.add("20", "Pinnacle Group", "pinnaclegroup.com", 29000, "2026-01-29T13:50:00Z", 96, "Emily Rodriguez", "/avatars/pinnacle.png")
}

// add constructs a Customer with its segment derived from the score, keeping
// the score/segment invariant by construction.
func (s *MemoryStore) add(id, name, domain string, mrr float64, lastActive string, score int, owner, avatar string) {
	s.Customers.Set(id, Customer{
		ID:            id,
		Name:          name,
		Domain:        domain,
		MRR:           mrr,
		LastActive:    mustTime(lastActive),
		HealthScore:   score,
		HealthSegment: SegmentForScore(score),
		Owner:         owner,
		Avatar:        avatar,
	})
}

func mustTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
