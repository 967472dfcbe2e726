// Package aggregation holds the stateless numeric helpers that the response
// transforms are built from.
//
// Nothing in here knows about tools, GraphQL or MCP. Inputs are plain values,
// time-bucketed points or entity descriptions; outputs are summaries, grouping
// keys, rankings, human readable byte strings and health flags.
//
// # Time-bucketed data
//
// A series is an ordered slice of Point values, one per bucket. Missing values
// are represented by a nil Value and are skipped by every summary:
//
//	s := aggregation.Summarize([]aggregation.Point{
//	    aggregation.P(1000, 10), aggregation.P(2000, 30), aggregation.P(3000, 20),
//	})
//	// s.Min == 10, s.Max == 30, s.Avg == 20, *s.Peak.Timestamp == "1970-01-01T00:00:02.000Z"
//
// CombineSeries merges several contributors (for example the interfaces of one
// site) by bucket position, not by timestamp. The timestamp of a combined
// bucket is taken from the first contributor that has a point at that index.
package aggregation
