package transform

import (
	"encoding/json"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netpulse/internal/aggregation"
	"netpulse/internal/graphql"
	"netpulse/internal/tool"
)

func envelope(t *testing.T, body string) *graphql.Envelope {
	t.Helper()
	var env graphql.Envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return &env
}

func render(t *testing.T, r tool.Result) string {
	t.Helper()
	out, err := json.Marshal(r)
	require.NoError(t, err)
	return string(out)
}

func TestPassthrough(t *testing.T) {
	env := envelope(t, `{"data":{"entityLookup":{"items":[{"id":"1"}]}}}`)
	r, err := Passthrough{}.Transform(tool.Arguments{}, env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"entityLookup":{"items":[{"id":"1"}]}}}`, render(t, r))
}

func TestEmptyResult(t *testing.T) {
	assert.JSONEq(t, `{"data":{"timeFrame":"last.P1D","sites":[]}}`, render(t, EmptyResult(DomainSites, "last.P1D")))
	assert.JSONEq(t, `{"data":{"timeFrame":"last.P7D","users":[]}}`, render(t, EmptyResult(DomainUsers, "last.P7D")))
}

const trafficReply = `{"data":{"accountMetrics":{
	"sites":[
		{"id":"a","info":{"name":"Alpha"},"metrics":{"bytesUpstream":100,"bytesDownstream":50}},
		{"id":"b","metrics":{"bytesUpstream":10,"bytesDownstream":5}},
		{"id":"c","metrics":{"bytesUpstream":0,"bytesDownstream":0}}
	],
	"users":[
		{"id":"u1","name":"Ann","metrics":{"bytesUpstream":1}},
		{"id":"u2","metrics":null}
	]
}}}`

func TestTopN_Sites(t *testing.T) {
	policy := TopN{Domain: DomainSites, Zero: aggregation.ExcludeZero}
	r, err := policy.Transform(tool.Arguments{"timeFrame": "last.P1D", "limit": float64(2)}, envelope(t, trafficReply))
	require.NoError(t, err)

	data := r.Data.(map[string]any)
	rows := data["sites"].([]RankedEntity)
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].ID)
	assert.Equal(t, "Alpha", rows[0].Name)
	assert.Equal(t, float64(150), rows[0].BytesTotal)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, "b", rows[1].ID)
	assert.Equal(t, "b", rows[1].Name)
	assert.Equal(t, 3, data["totalEntities"])
	assert.Equal(t, "desc", data["order"])
}

func TestTopN_ZeroPolicyAndOrder(t *testing.T) {
	args := tool.Arguments{"limit": float64(3), "order": "asc"}

	excl, err := TopN{Domain: DomainSites, Zero: aggregation.ExcludeZero}.Transform(args, envelope(t, trafficReply))
	require.NoError(t, err)
	rows := excl.Data.(map[string]any)["sites"].([]RankedEntity)
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].ID)

	incl, err := TopN{Domain: DomainSites, Zero: aggregation.IncludeZero}.Transform(args, envelope(t, trafficReply))
	require.NoError(t, err)
	rows = incl.Data.(map[string]any)["sites"].([]RankedEntity)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"c", "b", "a"}, []string{rows[0].ID, rows[1].ID, rows[2].ID})
}

func TestTopN_LimitClamped(t *testing.T) {
	r, err := TopN{Domain: DomainUsers}.Transform(tool.Arguments{"limit": float64(500)}, envelope(t, trafficReply))
	require.NoError(t, err)
	data := r.Data.(map[string]any)
	assert.Equal(t, maxTopN, data["limit"])

	rows := data["users"].([]RankedEntity)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ann", rows[0].Name)
	assert.Equal(t, "u2", rows[1].Name)
}

func TestTopN_SoftMiss(t *testing.T) {
	policy := TopN{Domain: DomainUsers, Zero: aggregation.IncludeZero}

	r, err := policy.Transform(tool.Arguments{"timeFrame": "tf"}, envelope(t, `{"data":{"accountMetrics":{"sites":[]}}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"timeFrame":"tf","users":[]}}`, render(t, r))

	r, err = policy.Transform(tool.Arguments{"timeFrame": "tf"}, envelope(t, `{"data":{"other":{}}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"timeFrame":"tf","users":[]}}`, render(t, r))
}

func TestTopN_EmptyCollectionIsNotMissing(t *testing.T) {
	r, err := TopN{Domain: DomainSites}.Transform(tool.Arguments{}, envelope(t, `{"data":{"accountMetrics":{"sites":[]}}}`))
	require.NoError(t, err)

	var decoded struct {
		Data map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(render(t, r)), &decoded))
	assert.JSONEq(t, `[]`, string(decoded.Data["sites"]))
	assert.JSONEq(t, `0`, string(decoded.Data["totalEntities"]))
}

func TestTimeseriesSummary_CombinesInterfaces(t *testing.T) {
	env := envelope(t, `{"data":{"accountMetrics":{"sites":[{
		"id":"42","info":{"name":"HQ"},
		"interfaces":[
			{"name":"wan1","timeseries":[{"label":"bytesUpstream","units":"bytes","data":[[0,10],[1,20],[2,30]]}]},
			{"name":"wan2","timeseries":[{"label":"bytesUpstream","units":"bytes","data":[[0,5],[1],[2,15]]}]}
		]
	}]}}}`)

	args := tool.Arguments{"timeFrame": "last.PT3H", "buckets": float64(3), "aggregation": "avg", "includeSeries": true}
	r, err := TimeseriesSummary{}.Transform(args, env)
	require.NoError(t, err)

	sites := r.Data.(map[string]any)["sites"].([]SiteSeries)
	require.Len(t, sites, 1)
	assert.Equal(t, "HQ", sites[0].Name)
	assert.Equal(t, []string{"wan1", "wan2"}, sites[0].Interfaces)

	up := sites[0].Metrics[MetricBytesUpstream]
	assert.Equal(t, 2, up.Contributors)
	assert.Equal(t, []aggregation.Point{
		aggregation.P(0, 15),
		aggregation.P(1, 20),
		aggregation.P(2, 45),
	}, up.Series)
	assert.Equal(t, 26.67, up.Value)
	assert.Equal(t, 26.67, up.Summary.Avg)
	assert.Equal(t, float64(45), up.Summary.Max)
	assert.Equal(t, float64(15), up.Summary.Min)
}

func TestTimeseriesSummary_SiteSeriesDoNotAddToInterfaceTotals(t *testing.T) {
	env := envelope(t, `{"data":{"accountMetrics":{"sites":[{
		"id":"42","info":{"name":"HQ"},
		"timeseries":[
			{"label":"bytesUpstream","units":"bytes","data":[[0,15],[1,20],[2,45]]},
			{"label":"hostCount","data":[[0,4],[1,8],[2,2]]}
		],
		"interfaces":[
			{"name":"wan1","timeseries":[{"label":"bytesUpstream","units":"bytes","data":[[0,10],[1,20],[2,30]]}]},
			{"name":"wan2","timeseries":[{"label":"bytesUpstream","units":"bytes","data":[[0,5],[1,null],[2,15]]}]}
		]
	}]}}}`)

	args := tool.Arguments{"buckets": float64(3), "aggregation": "avg", "includeSeries": true}
	r, err := TimeseriesSummary{}.Transform(args, env)
	require.NoError(t, err)

	site := r.Data.(map[string]any)["sites"].([]SiteSeries)[0]

	up := site.Metrics[MetricBytesUpstream]
	assert.Equal(t, 2, up.Contributors)
	assert.Equal(t, []aggregation.Point{
		aggregation.P(0, 15),
		aggregation.P(1, 20),
		aggregation.P(2, 45),
	}, up.Series)
	assert.Equal(t, 26.67, up.Value)
	assert.Equal(t, float64(45), up.Summary.Max)

	// no interface reports hostCount, so the site level series is used
	hosts := site.Metrics[MetricHostCount]
	assert.Equal(t, 1, hosts.Contributors)
	assert.Equal(t, float64(8), hosts.Summary.Max)
	assert.Equal(t, []string{MetricBytesUpstream, MetricHostCount}, sortedLabels(site))
}

func TestTimeseriesSummary_DerivedUtilization(t *testing.T) {
	env := envelope(t, `{"data":{"accountMetrics":{"sites":[{
		"id":"7",
		"timeseries":[
			{"label":"hostCount","data":[[0,5],[1,10]]},
			{"label":"hostLimit","data":[[0,10],[1,0]]}
		]
	}]}}}`)

	r, err := TimeseriesSummary{}.Transform(tool.Arguments{"aggregation": "max"}, env)
	require.NoError(t, err)

	site := r.Data.(map[string]any)["sites"].([]SiteSeries)[0]
	assert.Equal(t, "7", site.Name)
	assert.Equal(t, []string{MetricHostCount, MetricHostLimit, LabelHostUtilization}, sortedLabels(site))

	util := site.Metrics[LabelHostUtilization]
	assert.Equal(t, "%", util.Units)
	assert.Nil(t, util.Series)
	// limit 0 divides by 1
	assert.Equal(t, float64(1000), util.Value)
	assert.Equal(t, float64(50), util.Summary.Min)
}

func TestTimeseriesSummary_Errors(t *testing.T) {
	_, err := TimeseriesSummary{}.Transform(tool.Arguments{"aggregation": "median"}, envelope(t, trafficReply))
	assert.Error(t, err)

	r, err := TimeseriesSummary{}.Transform(tool.Arguments{"timeFrame": "tf"}, envelope(t, `{"data":{"accountMetrics":{"users":[]}}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"timeFrame":"tf","sites":[]}}`, render(t, r))
}

const groupReply = `{"data":{"accountMetrics":{"sites":[
	{"id":"1","info":{"name":"Paris","region":"EMEA","type":"branch"},
	 "metrics":{"bytesUpstream":100,"bytesDownstream":50,"hostCount":90,"hostLimit":100,"packetLossPercent":2},
	 "interfaces":[{"name":"wan1","info":{"role":"WAN1","connectionType":"fiber"},"metrics":{"bytesUpstream":60,"bytesDownstream":40}},
	               {"name":"lte","metrics":{"bytesUpstream":1}}]},
	{"id":"2","info":{"name":"Lyon","region":"EMEA","type":"branch"},
	 "metrics":{"bytesUpstream":20,"bytesDownstream":100,"hostCount":10,"hostLimit":100,"packetLossPercent":4}},
	{"id":"3","info":{"name":"Austin","region":"  "},"metrics":{"bytesUpstream":5}}
]}}}`

func TestGroupAggregate_Sites(t *testing.T) {
	args := tool.Arguments{
		"timeFrame":      "last.P1D",
		"groupBy":        "region",
		"aggregation":    "sum",
		"includeMembers": true,
		"thresholds":     map[string]any{"maxUtilizationPercent": float64(40), "maxPacketLossPercent": float64(5)},
	}
	r, err := GroupAggregate{Kind: GroupSites}.Transform(args, envelope(t, groupReply))
	require.NoError(t, err)

	data := r.Data.(map[string]any)
	assert.Equal(t, "region", data["groupBy"])
	assert.Equal(t, 3, data["totalEntities"])

	groups := data["groups"].([]Group)
	require.Len(t, groups, 2)

	emea := groups[0]
	assert.Equal(t, "EMEA", emea.Key)
	assert.Equal(t, "region", emea.GroupType)
	assert.Equal(t, 2, emea.Count)
	assert.Equal(t, []string{"Lyon", "Paris"}, emea.Members)
	assert.Equal(t, map[string]float64{"bytesUpstream": 120, "bytesDownstream": 150, "bytesTotal": 270}, emea.Metrics)
	assert.Equal(t, 0.8, emea.Derived[aggregation.MetricUpDownRatio])
	assert.Equal(t, float64(50), emea.Derived[aggregation.MetricHostUtilization])
	assert.Equal(t, float64(6), emea.Derived[aggregation.MetricPacketLoss])
	require.Len(t, emea.HealthFlags, 2)
	assert.Contains(t, emea.HealthFlags[0], "high host utilization")
	assert.Contains(t, emea.HealthFlags[1], "packet loss")

	unknown := groups[1]
	assert.Equal(t, "Unknown", unknown.Key)
	assert.Equal(t, float64(0), unknown.Metrics["bytesDownstream"])
	assert.NotContains(t, unknown.Derived, aggregation.MetricUpDownRatio)
	assert.Empty(t, unknown.HealthFlags)
	assert.NotNil(t, unknown.HealthFlags)
}

func TestGroupAggregate_Interfaces(t *testing.T) {
	r, err := GroupAggregate{Kind: GroupInterfaces}.Transform(tool.Arguments{"includeMembers": true}, envelope(t, groupReply))
	require.NoError(t, err)

	data := r.Data.(map[string]any)
	assert.Equal(t, "role", data["groupBy"])
	groups := data["groups"].([]Group)
	require.Len(t, groups, 2)
	assert.Equal(t, "NONE", groups[0].Key)
	assert.Equal(t, []string{"Paris/lte"}, groups[0].Members)
	assert.Equal(t, "WAN1", groups[1].Key)
	assert.Equal(t, float64(100), groups[1].Metrics["bytesTotal"])
}

func TestGroupAggregate_Users(t *testing.T) {
	env := envelope(t, `{"data":{"accountMetrics":{"users":[
		{"id":"u1","info":{"osType":"macOS"},"metrics":{"latencyMs":30}},
		{"id":"u2","info":{"osType":"macOS"},"metrics":{"latencyMs":50}},
		{"id":"u3","metrics":{"latencyMs":10}}
	]}}}`)
	args := tool.Arguments{
		"groupBy":     "os",
		"aggregation": "avg",
		"metrics":     []any{"latencyMs"},
		"thresholds":  map[string]any{"maxLatencyMs": float64(35)},
	}
	r, err := GroupAggregate{Kind: GroupUsers}.Transform(args, env)
	require.NoError(t, err)

	groups := r.Data.(map[string]any)["groups"].([]Group)
	require.Len(t, groups, 2)
	assert.Equal(t, "Unknown", groups[0].Key)
	assert.Equal(t, "macOS", groups[1].Key)
	assert.Equal(t, map[string]float64{"latencyMs": 40}, groups[1].Metrics)
	assert.Equal(t, []string{"high latency: 40.00ms exceeds 35.00ms"}, groups[1].HealthFlags)
	assert.Nil(t, groups[1].Members)
}

func TestGroupAggregate_InvalidArguments(t *testing.T) {
	_, err := GroupAggregate{Kind: GroupSites}.Transform(tool.Arguments{"groupBy": "planet"}, envelope(t, groupReply))
	assert.ErrorContains(t, err, "planet")

	_, err = GroupAggregate{Kind: GroupSites}.Transform(tool.Arguments{"aggregation": "p99"}, envelope(t, groupReply))
	assert.Error(t, err)
}

func TestGroupAggregate_SoftMiss(t *testing.T) {
	r, err := GroupAggregate{Kind: GroupUsers}.Transform(tool.Arguments{"timeFrame": "tf"}, envelope(t, `{"data":{"accountMetrics":{"users":null,"id":"1"}}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"timeFrame":"tf","users":[]}}`, render(t, r))
}

const eventsReply = `{"data":{"eventsFeed":{"records":[
	{"time":"t1","fields":{"eventType":"Connectivity","siteName":"Paris","interfaceName":"wan1"}},
	{"time":"t2","fields":{"eventType":"Connectivity","siteName":"Paris","interfaceName":"wan2"}},
	{"time":"t3","fields":{"eventType":"Security","siteID":"99"}},
	{"time":"t4","fields":{"eventType":"connectivity","siteName":"Lyon","interfaceName":"wan1"}},
	{"time":"t5","fields":{"siteName":"Lyon"}}
]}}}`

func TestEventCount_BySite(t *testing.T) {
	r, err := EventCount{}.Transform(tool.Arguments{"timeFrame": "tf"}, envelope(t, eventsReply))
	require.NoError(t, err)

	data := r.Data.(map[string]any)
	assert.Equal(t, 5, data["totalEvents"])
	assert.Empty(t, data["eventTypes"])

	groups := data["groups"].([]EventGroup)
	require.Len(t, groups, 3)
	// equal totals fall back to key order
	assert.Equal(t, "Lyon", groups[0].Key)
	assert.Equal(t, map[string]int{"connectivity": 1, "Unknown": 1}, groups[0].ByType)
	assert.Equal(t, "Paris", groups[1].Key)
	assert.Equal(t, "99", groups[2].Key)
	assert.Nil(t, groups[0].Sites)
}

func TestEventCount_ByTypeWithFilter(t *testing.T) {
	args := tool.Arguments{"groupBy": "event_type", "eventTypes": []any{"CONNECTIVITY"}}
	r, err := EventCount{}.Transform(args, envelope(t, eventsReply))
	require.NoError(t, err)

	data := r.Data.(map[string]any)
	assert.Equal(t, 3, data["totalEvents"])
	groups := data["groups"].([]EventGroup)
	require.Len(t, groups, 2)
	assert.Equal(t, "Connectivity", groups[0].Key)
	assert.Equal(t, 2, groups[0].Total)
	assert.Equal(t, []string{"Paris"}, groups[0].Sites)
	assert.Equal(t, []string{"Paris/wan1", "Paris/wan2"}, groups[0].Interfaces)
	assert.Equal(t, "connectivity", groups[1].Key)
}

func TestEventCount_ByInterfaceMinCount(t *testing.T) {
	args := tool.Arguments{"groupBy": "interface", "minCount": float64(2)}
	r, err := EventCount{}.Transform(args, envelope(t, eventsReply))
	require.NoError(t, err)
	assert.Empty(t, r.Data.(map[string]any)["groups"])

	args["minCount"] = float64(1)
	r, err = EventCount{}.Transform(args, envelope(t, eventsReply))
	require.NoError(t, err)
	groups := r.Data.(map[string]any)["groups"].([]EventGroup)
	require.Len(t, groups, 5)
	assert.Equal(t, "99/NONE", groups[0].Key)
}

func TestEventCount_Errors(t *testing.T) {
	_, err := EventCount{}.Transform(tool.Arguments{"groupBy": "region"}, envelope(t, eventsReply))
	assert.ErrorContains(t, err, "region")

	r, err := EventCount{}.Transform(tool.Arguments{"timeFrame": "tf"}, envelope(t, `{"data":{"eventsFeed":{"records":null}}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":{"timeFrame":"tf","sites":[]}}`, render(t, r))
}

func sortedLabels(s SiteSeries) []string {
	labels := make([]string, 0, len(s.Metrics))
	for l := range s.Metrics {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
