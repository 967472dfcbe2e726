package aggregation

import "fmt"

// Metric names the health check understands.
const (
	MetricHostUtilization = "hostUtilizationPercent"
	MetricPacketLoss      = "packetLossPercent"
	MetricLatency         = "latencyMs"
	MetricUpDownRatio     = "upDownRatio"
)

// Thresholds are caller-supplied limits. A nil threshold is not checked.
type Thresholds struct {
	MaxUtilizationPercent *float64
	MaxPacketLossPercent  *float64
	MaxLatencyMs          *float64
	MinUpDownRatio        *float64
}

// HealthFlags compares aggregated values against thresholds and returns one
// message per breached threshold, in a fixed order. Metrics missing from values
// are not checked. The result is never nil.
func HealthFlags(values map[string]float64, t Thresholds) []string {
	flags := []string{}

	if v, ok := values[MetricHostUtilization]; ok && t.MaxUtilizationPercent != nil && v > *t.MaxUtilizationPercent {
		flags = append(flags, fmt.Sprintf("high host utilization: %.2f%% exceeds %.2f%%", v, *t.MaxUtilizationPercent))
	}
	if v, ok := values[MetricPacketLoss]; ok && t.MaxPacketLossPercent != nil && v > *t.MaxPacketLossPercent {
		flags = append(flags, fmt.Sprintf("packet loss: %.2f%% exceeds %.2f%%", v, *t.MaxPacketLossPercent))
	}
	if v, ok := values[MetricLatency]; ok && t.MaxLatencyMs != nil && v > *t.MaxLatencyMs {
		flags = append(flags, fmt.Sprintf("high latency: %.2fms exceeds %.2fms", v, *t.MaxLatencyMs))
	}
	if v, ok := values[MetricUpDownRatio]; ok && t.MinUpDownRatio != nil && v < *t.MinUpDownRatio {
		flags = append(flags, fmt.Sprintf("low upstream/downstream ratio: %.2f below %.2f", v, *t.MinUpDownRatio))
	}

	return flags
}
