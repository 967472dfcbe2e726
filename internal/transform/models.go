package transform

import "netpulse/internal/aggregation"

// Metric names shared by sites, interfaces and users.
const (
	MetricBytesUpstream   = "bytesUpstream"
	MetricBytesDownstream = "bytesDownstream"
	MetricBytesTotal      = "bytesTotal"
	MetricHostCount       = "hostCount"
	MetricHostLimit       = "hostLimit"
	MetricPacketLoss      = aggregation.MetricPacketLoss
	MetricLatency         = aggregation.MetricLatency
)

// accountMetrics mirrors the accountMetrics field of the downstream schema.
// A nil slice means the collection was absent or null.
type accountMetrics struct {
	ID    string `json:"id"`
	From  string `json:"from"`
	To    string `json:"to"`
	Sites []site `json:"sites"`
	Users []user `json:"users"`
}

type metrics struct {
	BytesUpstream     *float64 `json:"bytesUpstream"`
	BytesDownstream   *float64 `json:"bytesDownstream"`
	HostCount         *float64 `json:"hostCount"`
	HostLimit         *float64 `json:"hostLimit"`
	PacketLossPercent *float64 `json:"packetLossPercent"`
	LatencyMs         *float64 `json:"latencyMs"`
}

// value resolves a metric by name; bytesTotal is derived from the byte counters.
func (m *metrics) value(name string) *float64 {
	if m == nil {
		return nil
	}
	switch name {
	case MetricBytesUpstream:
		return m.BytesUpstream
	case MetricBytesDownstream:
		return m.BytesDownstream
	case MetricBytesTotal:
		if m.BytesUpstream == nil && m.BytesDownstream == nil {
			return nil
		}
		total := orZero(m.BytesUpstream) + orZero(m.BytesDownstream)
		return &total
	case MetricHostCount:
		return m.HostCount
	case MetricHostLimit:
		return m.HostLimit
	case MetricPacketLoss:
		return m.PacketLossPercent
	case MetricLatency:
		return m.LatencyMs
	}
	return nil
}

type timeseries struct {
	Label string              `json:"label"`
	Units string              `json:"units"`
	Data  []aggregation.Point `json:"data"`
}

type siteInfo struct {
	Name               string `json:"name"`
	Type               string `json:"type"`
	Region             string `json:"region"`
	CountryName        string `json:"countryName"`
	ConnectivityStatus string `json:"connectivityStatus"`
}

type site struct {
	ID         string       `json:"id"`
	Info       *siteInfo    `json:"info"`
	Metrics    *metrics     `json:"metrics"`
	Timeseries []timeseries `json:"timeseries"`
	Interfaces []iface      `json:"interfaces"`
}

func (s site) name() string {
	if s.Info != nil && s.Info.Name != "" {
		return s.Info.Name
	}
	return s.ID
}

type ifaceInfo struct {
	Role           string `json:"role"`
	ConnectionType string `json:"connectionType"`
}

type iface struct {
	Name       string       `json:"name"`
	Info       *ifaceInfo   `json:"info"`
	Metrics    *metrics     `json:"metrics"`
	Timeseries []timeseries `json:"timeseries"`
}

type userInfo struct {
	Role               string `json:"role"`
	OSType             string `json:"osType"`
	ConnectivityStatus string `json:"connectivityStatus"`
	SiteName           string `json:"siteName"`
}

type user struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Info    *userInfo `json:"info"`
	Metrics *metrics  `json:"metrics"`
}

func (u user) displayName() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// eventsFeed mirrors the eventsFeed field of the downstream schema.
type eventsFeed struct {
	Records []eventRecord `json:"records"`
}

type eventRecord struct {
	Time   string      `json:"time"`
	Fields eventFields `json:"fields"`
}

type eventFields struct {
	EventType     string `json:"eventType"`
	EventSubType  string `json:"eventSubType"`
	SiteID        string `json:"siteID"`
	SiteName      string `json:"siteName"`
	InterfaceName string `json:"interfaceName"`
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
