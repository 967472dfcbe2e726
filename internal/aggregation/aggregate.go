package aggregation

import (
	"fmt"
	"math"
	"strings"

	"github.com/montanaflynn/stats"
)

// Func names an aggregation over a set of samples.
type Func string

const (
	FuncSum Func = "sum"
	FuncAvg Func = "avg"
	FuncMax Func = "max"
	FuncMin Func = "min"
)

// Funcs lists the supported aggregation functions in schema order.
var Funcs = []Func{FuncSum, FuncAvg, FuncMax, FuncMin}

// ParseFunc resolves an aggregation name. "average" is accepted for "avg".
func ParseFunc(s string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "sum":
		return FuncSum, nil
	case "avg", "average", "mean":
		return FuncAvg, nil
	case "max":
		return FuncMax, nil
	case "min":
		return FuncMin, nil
	}
	return "", fmt.Errorf("unknown aggregation function %q (expected one of sum, avg, max, min)", s)
}

// Aggregate applies fn to the samples, skipping NaN values.
// An empty sample set aggregates to 0.
func Aggregate(fn Func, samples []float64) float64 {
	data := make(stats.Float64Data, 0, len(samples))
	for _, v := range samples {
		if math.IsNaN(v) {
			continue
		}
		data = append(data, v)
	}
	if len(data) == 0 {
		return 0
	}

	var (
		out float64
		err error
	)
	switch fn {
	case FuncAvg:
		out, err = data.Mean()
	case FuncMax:
		out, err = data.Max()
	case FuncMin:
		out, err = data.Min()
	default:
		out, err = data.Sum()
	}
	if err != nil {
		return 0
	}
	return out
}

// HostUtilization returns count as a percentage of limit; a non-positive limit yields 0.
func HostUtilization(count, limit float64) float64 {
	if limit <= 0 {
		return 0
	}
	return 100 * count / limit
}

// UpDownRatio returns upstream/downstream; a non-positive downstream yields 0.
func UpDownRatio(upstream, downstream float64) float64 {
	if downstream <= 0 {
		return 0
	}
	return upstream / downstream
}
