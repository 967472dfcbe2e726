package aggregation

import "sort"

// ZeroPolicy decides whether entities without traffic take part in a ranking.
type ZeroPolicy int

const (
	// IncludeZero ranks zero-traffic entities like any other.
	IncludeZero ZeroPolicy = iota
	// ExcludeZero drops entities whose total is 0 before ranking.
	ExcludeZero
)

// Traffic is one rankable entity with its upstream/downstream byte counters.
type Traffic struct {
	ID         string
	Name       string
	Upstream   float64
	Downstream float64
}

// Total is upstream plus downstream.
func (t Traffic) Total() float64 {
	return t.Upstream + t.Downstream
}

// TopN orders entities by total traffic and keeps the first n.
// Ordering is descending unless ascending is set; entities with equal totals
// keep their input order.
func TopN(entities []Traffic, n int, ascending bool, zero ZeroPolicy) []Traffic {
	ranked := make([]Traffic, 0, len(entities))
	for _, e := range entities {
		if zero == ExcludeZero && e.Total() == 0 {
			continue
		}
		ranked = append(ranked, e)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ascending {
			return ranked[i].Total() < ranked[j].Total()
		}
		return ranked[i].Total() > ranked[j].Total()
	})

	if n < 0 {
		n = 0
	}
	if n < len(ranked) {
		ranked = ranked[:n]
	}
	return ranked
}
