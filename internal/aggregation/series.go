package aggregation

import (
	"encoding/json"
	"fmt"
	"time"
)

// isoMillis is the ISO-8601 layout used for every timestamp we emit.
const isoMillis = "2006-01-02T15:04:05.000Z"

// Point is one bucket of a timeseries. Value is nil when the bucket carries no data.
type Point struct {
	Timestamp int64
	Value     *float64
}

// P builds a Point with a value.
func P(ts int64, v float64) Point {
	return Point{Timestamp: ts, Value: &v}
}

// MarshalJSON encodes the point as a [timestamp, value] pair.
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{p.Timestamp, p.Value})
}

// UnmarshalJSON accepts [timestamp], [timestamp, null] and [timestamp, value].
func (p *Point) UnmarshalJSON(data []byte) error {
	var raw []*float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("decode point: %w", err)
	}
	if len(raw) == 0 || raw[0] == nil {
		return fmt.Errorf("decode point: missing timestamp in %s", string(data))
	}
	p.Timestamp = int64(*raw[0])
	p.Value = nil
	if len(raw) > 1 && raw[1] != nil {
		v := *raw[1]
		p.Value = &v
	}
	return nil
}

// FormatTimestamp renders epoch milliseconds as UTC ISO-8601.
func FormatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format(isoMillis)
}

// CombineSeries sums contributors bucket by bucket.
//
// The result is as long as the longest contributor. A bucket's timestamp comes
// from the first contributor that has a point at that position and its value is
// the sum of all non-nil values there; if no contributor has a value the
// bucket's value stays nil. Bucket boundaries are not compared, so contributors
// whose buckets drift are still added positionally.
func CombineSeries(series ...[]Point) []Point {
	longest := 0
	for _, s := range series {
		if len(s) > longest {
			longest = len(s)
		}
	}

	out := make([]Point, 0, longest)
	for i := 0; i < longest; i++ {
		var (
			combined Point
			haveTS   bool
			sum      float64
			haveVal  bool
		)
		for _, s := range series {
			if i >= len(s) {
				continue
			}
			if !haveTS {
				combined.Timestamp = s[i].Timestamp
				haveTS = true
			}
			if s[i].Value != nil {
				sum += *s[i].Value
				haveVal = true
			}
		}
		if haveVal {
			v := sum
			combined.Value = &v
		}
		out = append(out, combined)
	}
	return out
}

// DeriveUtilization builds a percentage series 100*numerator/max(limit, 1),
// aligned by bucket index over the shorter of the two inputs. Buckets where
// either side has no value are skipped.
func DeriveUtilization(numerator, limit []Point) []Point {
	n := len(numerator)
	if len(limit) < n {
		n = len(limit)
	}

	out := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		if numerator[i].Value == nil || limit[i].Value == nil {
			continue
		}
		capacity := *limit[i].Value
		if capacity < 1 {
			capacity = 1
		}
		out = append(out, P(numerator[i].Timestamp, 100*(*numerator[i].Value)/capacity))
	}
	return out
}

// Values returns the non-nil values of a series in bucket order.
func Values(points []Point) []float64 {
	out := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Value != nil {
			out = append(out, *p.Value)
		}
	}
	return out
}
