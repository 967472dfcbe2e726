package transform

import (
	"sort"

	"k8s.io/apimachinery/pkg/util/sets"

	"netpulse/internal/aggregation"
	"netpulse/internal/graphql"
	"netpulse/internal/tool"
)

// GroupKind selects which entities GroupAggregate groups.
type GroupKind string

const (
	GroupSites      GroupKind = "sites"
	GroupInterfaces GroupKind = "interfaces"
	GroupUsers      GroupKind = "users"
)

const (
	fallbackUnknown = "Unknown"
	fallbackNone    = "NONE"
)

var dimensions = map[GroupKind][]aggregation.Dimension{
	GroupSites: {
		{Name: "type", Attribute: "type", Fallback: fallbackUnknown},
		{Name: "region", Attribute: "region", Fallback: fallbackUnknown},
		{Name: "country", Attribute: "countryName", Fallback: fallbackUnknown},
		{Name: "connectivity", Attribute: "connectivityStatus", Fallback: fallbackUnknown},
	},
	GroupInterfaces: {
		{Name: "role", Attribute: "role", Fallback: fallbackNone},
		{Name: "connection", Attribute: "connectionType", Fallback: fallbackNone},
		{Name: "site", Attribute: "siteName", Fallback: fallbackNone},
	},
	GroupUsers: {
		{Name: "role", Attribute: "role", Fallback: fallbackUnknown},
		{Name: "os", Attribute: "osType", Fallback: fallbackUnknown},
		{Name: "connectivity", Attribute: "connectivityStatus", Fallback: fallbackUnknown},
		{Name: "site", Attribute: "siteName", Fallback: fallbackUnknown},
	},
}

// Dimensions returns the grouping dimension names of kind in schema order.
func Dimensions(kind GroupKind) []string {
	dims := dimensions[kind]
	names := make([]string, 0, len(dims))
	for _, d := range dims {
		names = append(names, d.Name)
	}
	return names
}

// groupedMetrics are sampled for every member regardless of what the caller asked for,
// so derived values and health checks always have their inputs.
var groupedMetrics = []string{
	MetricBytesUpstream,
	MetricBytesDownstream,
	MetricBytesTotal,
	MetricHostCount,
	MetricHostLimit,
	MetricPacketLoss,
	MetricLatency,
}

var defaultGroupMetrics = []string{MetricBytesUpstream, MetricBytesDownstream, MetricBytesTotal}

// GroupAggregate buckets sites, interfaces or users by a dimension and
// aggregates their metrics per bucket.
type GroupAggregate struct {
	Kind GroupKind
}

// Group is one bucket of a GroupAggregate result.
type Group struct {
	Key         string             `json:"key"`
	GroupType   string             `json:"groupType"`
	Count       int                `json:"count"`
	Metrics     map[string]float64 `json:"metrics"`
	Derived     map[string]float64 `json:"derived"`
	HealthFlags []string           `json:"healthFlags"`
	Members     []string           `json:"members,omitempty"`
}

type member struct {
	name    string
	attrs   map[string]string
	metrics *metrics
}

type bucket struct {
	samples aggregation.Samples
	members sets.Set[string]
	count   int
}

func (p GroupAggregate) domain() Domain {
	if p.Kind == GroupUsers {
		return DomainUsers
	}
	return DomainSites
}

// Transform implements tool.ResponsePolicy.
func (p GroupAggregate) Transform(args tool.Arguments, env *graphql.Envelope) (tool.Result, error) {
	timeFrame := args.String("timeFrame")

	dims := dimensions[p.Kind]
	dim := dims[0]
	if by := args.String("groupBy"); by != "" {
		found := false
		for _, d := range dims {
			if d.Name == by {
				dim, found = d, true
				break
			}
		}
		if !found {
			return tool.Result{}, unknownOption("groupBy dimension", by, Dimensions(p.Kind))
		}
	}

	fn, err := aggregation.ParseFunc(stringOr(args.String("aggregation"), string(aggregation.FuncSum)))
	if err != nil {
		return tool.Result{}, err
	}

	requested := args.StringSlice("metrics")
	if len(requested) == 0 {
		requested = defaultGroupMetrics
	}
	thresholds := thresholdsOf(args)
	includeMembers := args.Bool("includeMembers")

	am, err := decodeAccountMetrics(env)
	if err != nil {
		return tool.Result{}, err
	}
	members, ok := p.members(am)
	if !ok {
		return EmptyResult(p.domain(), timeFrame), nil
	}

	buckets := map[string]*bucket{}
	for _, m := range members {
		key := aggregation.GroupKey(m.attrs, dim)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{samples: aggregation.Samples{}, members: sets.New[string]()}
			buckets[key] = b
		}
		b.count++
		b.members.Insert(m.name)
		for _, metric := range groupedMetrics {
			b.samples.Add(metric, m.metrics.value(metric))
		}
	}

	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	groups := make([]Group, 0, len(keys))
	for _, key := range keys {
		b := buckets[key]
		g := Group{
			Key:       key,
			GroupType: dim.Name,
			Count:     b.count,
			Metrics:   roundAll(b.samples.Aggregate(fn, requested)),
			Derived:   derived(b.samples, fn),
		}
		g.HealthFlags = aggregation.HealthFlags(g.Derived, thresholds)
		if includeMembers {
			g.Members = sets.List(b.members)
		}
		groups = append(groups, g)
	}

	return tool.Result{Data: map[string]any{
		"timeFrame":     timeFrame,
		"groupBy":       dim.Name,
		"aggregation":   fn,
		"totalEntities": len(members),
		"groups":        groups,
	}}, nil
}

// members flattens the reply into groupable entities. ok is false when the
// collection this kind groups is absent.
func (p GroupAggregate) members(am *accountMetrics) ([]member, bool) {
	if am == nil {
		return nil, false
	}

	var out []member
	switch p.Kind {
	case GroupUsers:
		if am.Users == nil {
			return nil, false
		}
		for _, u := range am.Users {
			attrs := map[string]string{}
			if u.Info != nil {
				attrs["role"] = u.Info.Role
				attrs["osType"] = u.Info.OSType
				attrs["connectivityStatus"] = u.Info.ConnectivityStatus
				attrs["siteName"] = u.Info.SiteName
			}
			out = append(out, member{name: u.displayName(), attrs: attrs, metrics: u.Metrics})
		}
	case GroupInterfaces:
		if am.Sites == nil {
			return nil, false
		}
		for _, s := range am.Sites {
			for _, ifc := range s.Interfaces {
				attrs := map[string]string{"siteName": s.name()}
				if ifc.Info != nil {
					attrs["role"] = ifc.Info.Role
					attrs["connectionType"] = ifc.Info.ConnectionType
				}
				out = append(out, member{name: s.name() + "/" + ifc.Name, attrs: attrs, metrics: ifc.Metrics})
			}
		}
	default:
		if am.Sites == nil {
			return nil, false
		}
		for _, s := range am.Sites {
			attrs := map[string]string{}
			if s.Info != nil {
				attrs["type"] = s.Info.Type
				attrs["region"] = s.Info.Region
				attrs["countryName"] = s.Info.CountryName
				attrs["connectivityStatus"] = s.Info.ConnectivityStatus
			}
			out = append(out, member{name: s.name(), attrs: attrs, metrics: s.Metrics})
		}
	}
	return out, true
}

// derived computes ratio, utilization and the health inputs for one bucket.
// A value is only present when its inputs were sampled.
func derived(s aggregation.Samples, fn aggregation.Func) map[string]float64 {
	out := map[string]float64{}

	up, hasUp := s[MetricBytesUpstream]
	down, hasDown := s[MetricBytesDownstream]
	if hasUp && hasDown {
		out[aggregation.MetricUpDownRatio] = aggregation.Round2(aggregation.UpDownRatio(
			aggregation.Aggregate(aggregation.FuncSum, up),
			aggregation.Aggregate(aggregation.FuncSum, down),
		))
	}

	count, hasCount := s[MetricHostCount]
	limit, hasLimit := s[MetricHostLimit]
	if hasCount && hasLimit {
		out[aggregation.MetricHostUtilization] = aggregation.Round2(aggregation.HostUtilization(
			aggregation.Aggregate(aggregation.FuncSum, count),
			aggregation.Aggregate(aggregation.FuncSum, limit),
		))
	}

	for _, m := range []string{MetricPacketLoss, MetricLatency} {
		if samples, ok := s[m]; ok {
			out[m] = aggregation.Round2(aggregation.Aggregate(fn, samples))
		}
	}
	return out
}

func thresholdsOf(args tool.Arguments) aggregation.Thresholds {
	raw, _ := args["thresholds"].(map[string]any)
	if raw == nil {
		return aggregation.Thresholds{}
	}
	t := tool.Arguments(raw)
	return aggregation.Thresholds{
		MaxUtilizationPercent: t.FloatPtr("maxUtilizationPercent"),
		MaxPacketLossPercent:  t.FloatPtr("maxPacketLossPercent"),
		MaxLatencyMs:          t.FloatPtr("maxLatencyMs"),
		MinUpDownRatio:        t.FloatPtr("minUpDownRatio"),
	}
}

func roundAll(m map[string]float64) map[string]float64 {
	for k, v := range m {
		m[k] = aggregation.Round2(v)
	}
	return m
}
