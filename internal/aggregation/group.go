package aggregation

import "strings"

// Dimension describes how one grouping dimension reads its key from an entity.
type Dimension struct {
	// Name is the caller-facing dimension name, e.g. "region".
	Name string
	// Attribute is the entity attribute holding the key.
	Attribute string
	// Fallback is used when the attribute is absent or blank.
	Fallback string
}

// GroupKey extracts the grouping key for attrs along dim.
func GroupKey(attrs map[string]string, dim Dimension) string {
	if v := strings.TrimSpace(attrs[dim.Attribute]); v != "" {
		return v
	}
	return dim.Fallback
}

// Samples collects raw per-metric values for one group.
type Samples map[string][]float64

// Add records v for metric when it is present.
func (s Samples) Add(metric string, v *float64) {
	if v == nil {
		return
	}
	s[metric] = append(s[metric], *v)
}

// Aggregate reduces every requested metric with fn. Metrics without samples aggregate to 0.
func (s Samples) Aggregate(fn Func, metrics []string) map[string]float64 {
	out := make(map[string]float64, len(metrics))
	for _, m := range metrics {
		out[m] = Aggregate(fn, s[m])
	}
	return out
}
