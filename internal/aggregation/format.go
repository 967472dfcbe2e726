package aggregation

import (
	"math"

	"github.com/dustin/go-humanize"
)

// FormatBytes renders a byte count in SI units ("1.5 MB").
// Negative and NaN inputs are rendered as "0 B".
func FormatBytes(b float64) string {
	if math.IsNaN(b) || b <= 0 {
		return "0 B"
	}
	return humanize.Bytes(uint64(math.Round(b)))
}
