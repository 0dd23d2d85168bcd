package query_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/pulseboard/pulseboard/internal/query"
	"github.com/pulseboard/pulseboard/internal/store"
)

// fixtureCustomers is the default 20-account data set, used as the corpus for
// the pipeline properties below.
func fixtureCustomers() []store.Customer {
	s := store.New()
	s.SeedDefaults()
	return s.Customers.List()
}

func genSpec() gopter.Gen {
	return gopter.CombineGens(
		gen.OneConstOf("", "a", "tech", "ventures", ".io", "ACME", "zzz-no-match"),
		gen.OneConstOf("", "Healthy", "Watch", "At Risk"),
		gen.IntRange(1, 8),
		gen.IntRange(1, 25),
		gen.OneConstOf("name", "mrr", "lastActive", "healthScore"),
		gen.OneConstOf("asc", "desc"),
	).Map(func(vals []interface{}) query.Spec {
		return query.Spec{
			Search:    vals[0].(string),
			Segment:   store.HealthSegment(vals[1].(string)),
			Page:      vals[2].(int),
			PageSize:  vals[3].(int),
			SortBy:    query.Field(vals[4].(string)),
			SortOrder: query.Order(vals[5].(string)),
		}
	})
}

func TestPipelineProperties(t *testing.T) {
	customers := fixtureCustomers()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("total is independent of page and pageSize", prop.ForAll(
		func(spec query.Spec) bool {
			base := query.Run(customers, spec)
			moved := spec
			moved.Page = spec.Page + 3
			moved.PageSize = spec.PageSize + 7
			other := query.Run(customers, moved)
			return base.Pagination.Total == other.Pagination.Total
		},
		genSpec(),
	))

	properties.Property("totalPages is ceil(total/pageSize), zero when empty", prop.ForAll(
		func(spec query.Spec) bool {
			result := query.Run(customers, spec)
			p := result.Pagination
			if p.Total == 0 {
				return p.TotalPages == 0
			}
			want := (p.Total + p.PageSize - 1) / p.PageSize
			return p.TotalPages == want
		},
		genSpec(),
	))

	properties.Property("pages partition the filtered, sorted set", prop.ForAll(
		func(spec query.Spec) bool {
			full := query.Run(customers, query.Spec{
				Search:    spec.Search,
				Segment:   spec.Segment,
				PageSize:  len(customers) + 1,
				SortBy:    spec.SortBy,
				SortOrder: spec.SortOrder,
			})

			var collected []store.Customer
			for page := 1; page <= full.Pagination.Total; page++ {
				paged := spec
				paged.Page = page
				result := query.Run(customers, paged)
				collected = append(collected, result.Data...)
				if len(result.Data) < result.Pagination.PageSize {
					break
				}
			}

			if len(collected) != len(full.Data) {
				return false
			}
			for i := range collected {
				if collected[i].ID != full.Data[i].ID {
					return false
				}
			}
			return true
		},
		genSpec(),
	))

	properties.Property("no page is larger than pageSize", prop.ForAll(
		func(spec query.Spec) bool {
			result := query.Run(customers, spec)
			return len(result.Data) <= result.Pagination.PageSize
		},
		genSpec(),
	))

	properties.Property("every returned record passes the filters", prop.ForAll(
		func(spec query.Spec) bool {
			result := query.Run(customers, spec)
			norm := spec.Normalize()
			for _, c := range result.Data {
				if !norm.Matches(c) {
					return false
				}
			}
			return true
		},
		genSpec(),
	))

	properties.TestingRun(t)
}

// The fixture has no duplicate MRR values, so flipping the sort direction on
// mrr must exactly reverse the full sequence.
func TestReversingOrderReversesUniqueKeys(t *testing.T) {
	customers := fixtureCustomers()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50
	properties := gopter.NewProperties(parameters)

	properties.Property("desc is the reverse of asc for unique mrr keys", prop.ForAll(
		func(search string, segment string) bool {
			base := query.Spec{
				Search:   search,
				Segment:  store.HealthSegment(segment),
				PageSize: len(customers) + 1,
				SortBy:   query.FieldMRR,
			}
			asc := query.Run(customers, base)

			desc := base
			desc.SortOrder = query.OrderDesc
			descResult := query.Run(customers, desc)

			n := len(asc.Data)
			if n != len(descResult.Data) {
				return false
			}
			for i := 0; i < n; i++ {
				if asc.Data[i].ID != descResult.Data[n-1-i].ID {
					return false
				}
			}
			return true
		},
		gen.OneConstOf("", "a", "tech", ".com", "ventures"),
		gen.OneConstOf("", "Healthy", "Watch", "At Risk"),
	))

	properties.TestingRun(t)
}
