package aggregation

import (
	"math"

	"github.com/montanaflynn/stats"
)

// Peak is the largest value of a series and when it happened.
type Peak struct {
	Value     float64 `json:"value"`
	Timestamp *string `json:"timestamp"`
}

// Summary describes a series over its non-null, non-negative values.
type Summary struct {
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Avg  float64 `json:"avg"`
	Peak Peak    `json:"peak"`
}

// Summarize computes min, max, average and peak of a series.
// Nil and negative values are ignored. The peak is the first point equal to the
// maximum. An empty (or fully filtered) series yields the zero Summary with a
// nil peak timestamp.
func Summarize(points []Point) Summary {
	kept := make([]Point, 0, len(points))
	for _, p := range points {
		if p.Value == nil || *p.Value < 0 || math.IsNaN(*p.Value) {
			continue
		}
		kept = append(kept, p)
	}
	if len(kept) == 0 {
		return Summary{}
	}

	data := stats.Float64Data(Values(kept))
	minV, _ := data.Min()
	maxV, _ := data.Max()
	mean, _ := data.Mean()

	s := Summary{Min: minV, Max: maxV, Avg: Round2(mean)}
	for _, p := range kept {
		if *p.Value == maxV {
			ts := FormatTimestamp(p.Timestamp)
			s.Peak = Peak{Value: maxV, Timestamp: &ts}
			break
		}
	}
	return s
}

// Round2 rounds to two decimal places. NaN and infinities become 0.
func Round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	r, err := stats.Round(v, 2)
	if err != nil {
		return 0
	}
	return r
}
