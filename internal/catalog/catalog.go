package catalog

import (
	"netpulse/internal/aggregation"
	"netpulse/internal/tool"
	"netpulse/internal/transform"

	"github.com/mark3labs/mcp-go/mcp"
)

// DefaultTimeFrame is used by every tool that takes a time frame.
const DefaultTimeFrame = "last.P1D"

const lookupHint = "Call entity_lookup with type \"site\" to find the site IDs first, then retry with siteIDs set."

// New builds the tool registry. accountID becomes the declared default of
// every tool's accountID argument; when empty the argument is required.
func New(accountID string) (*tool.Registry, error) {
	return tool.NewRegistry(Descriptors(accountID)...)
}

// Descriptors returns the tool catalog in registration order.
func Descriptors(accountID string) []tool.Descriptor {
	var descriptors []tool.Descriptor
	descriptors = append(descriptors, lookupTools(accountID)...)
	descriptors = append(descriptors, rawMetricTools(accountID)...)
	descriptors = append(descriptors, rankingTools(accountID)...)
	descriptors = append(descriptors, summaryTools(accountID)...)
	return descriptors
}

// Lookup and snapshot tools return the downstream data unchanged.
func lookupTools(accountID string) []tool.Descriptor {
	return []tool.Descriptor{
		{
			Tool: mcp.NewTool("entity_lookup",
				mcp.WithDescription("Find sites, users and other entities by name. Use it to resolve the IDs other tools expect."),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				mcp.WithString("type",
					mcp.Description("Entity type to look up"),
					mcp.Enum("site", "vpnUser", "admin", "networkInterface", "siteRange", "timezone", "country"),
					tool.Default("site"),
				),
				mcp.WithString("search",
					mcp.Description("Case-insensitive substring of the entity name"),
				),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of entities to return"),
					mcp.Min(1), mcp.Max(1000),
					tool.Default(50),
				),
			),
			Query: entityLookupQuery,
		},
		{
			Tool: mcp.NewTool("account_snapshot",
				mcp.WithDescription("Current connectivity and health of sites and users"),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				idList("siteIDs", "Only report these sites; all sites when omitted"),
				idList("userIDs", "Only report these users; all users when omitted"),
			),
			Query: accountSnapshotQuery,
			Input: tool.NullCoalesce("siteIDs", "userIDs"),
		},
	}
}

func rawMetricTools(accountID string) []tool.Descriptor {
	return []tool.Descriptor{
		{
			Tool: mcp.NewTool("account_metrics",
				mcp.WithDescription("Raw traffic and quality metrics of sites, their interfaces and users over a time frame"),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				timeFrameArg(),
				idList("siteIDs", "Only report these sites"),
				idList("userIDs", "Only report these users"),
				mcp.WithBoolean("groupInterfaces",
					mcp.Description("Merge all interfaces of a site into one"),
					tool.Default(false),
				),
				mcp.WithBoolean("groupDevices",
					mcp.Description("Merge the devices of a high-availability pair"),
					tool.Default(true),
				),
			),
			Query: accountMetricsQuery,
			Input: tool.NullCoalesce("siteIDs", "userIDs"),
		},
		{
			Tool: mcp.NewTool("audit_feed",
				mcp.WithDescription("Administrative configuration changes over a time frame"),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				timeFrameArg(),
				mcp.WithArray("filters",
					mcp.Description("Audit field filters, e.g. [{\"fieldNames\":[\"admin\"],\"values\":[\"jane\"]}]"),
					mcp.Items(map[string]any{"type": "object"}),
				),
				mcp.WithString("marker",
					mcp.Description("Paging marker returned by a previous call"),
				),
			),
			Query: auditFeedQuery,
			Input: tool.NullCoalesce("filters"),
		},
		{
			Tool: mcp.NewTool("app_stats",
				mcp.WithDescription("Application usage statistics over a time frame"),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				timeFrameArg(),
				idList("siteIDs", "Only count traffic of these sites"),
				mcp.WithNumber("limit",
					mcp.Description("Maximum number of applications"),
					mcp.Min(1), mcp.Max(1000),
					tool.Default(50),
				),
			),
			Query: appStatsQuery,
			Input: tool.NullCoalesce("siteIDs"),
		},
	}
}

func rankingTools(accountID string) []tool.Descriptor {
	return []tool.Descriptor{
		{
			Tool: mcp.NewTool("top_sites_by_traffic",
				mcp.WithDescription("Rank sites by total traffic (upstream + downstream). Sites without traffic are left out."),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				timeFrameArg(),
				idList("siteIDs", "Only rank these sites"),
				limitArg(),
				orderArg(),
			),
			Query:    siteTrafficQuery,
			Input:    tool.NullCoalesce("siteIDs"),
			Response: transform.TopN{Domain: transform.DomainSites, Zero: aggregation.ExcludeZero},
		},
		{
			Tool: mcp.NewTool("top_users_by_traffic",
				mcp.WithDescription("Rank remote users by total traffic (upstream + downstream)"),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				timeFrameArg(),
				idList("userIDs", "Only rank these users"),
				limitArg(),
				orderArg(),
			),
			Query:    userTrafficQuery,
			Input:    tool.NullCoalesce("userIDs"),
			Response: transform.TopN{Domain: transform.DomainUsers, Zero: aggregation.IncludeZero},
		},
	}
}

func summaryTools(accountID string) []tool.Descriptor {
	return []tool.Descriptor{
		{
			Tool: mcp.NewTool("site_timeseries_summary",
				mcp.WithDescription("Summarize bucketed metrics of specific sites. Interface series are combined per site and reduced to min, max, average and peak."),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				timeFrameArg(),
				mcp.WithArray("siteIDs",
					mcp.Required(),
					mcp.Description("Sites to summarize. Use entity_lookup to find them."),
					mcp.Items(map[string]any{"type": "string"}),
				),
				mcp.WithNumber("buckets",
					mcp.Description("Number of time buckets"),
					mcp.Min(1), mcp.Max(1000),
					tool.Default(24),
				),
				mcp.WithArray("labels",
					mcp.Description("Metrics to fetch per bucket"),
					mcp.Items(map[string]any{"type": "string", "enum": seriesLabels}),
					tool.Default([]string{transform.MetricBytesUpstream, transform.MetricBytesDownstream}),
				),
				aggregationArg(aggregation.FuncAvg),
				mcp.WithBoolean("includeSeries",
					mcp.Description("Also return the combined bucket values"),
					tool.Default(false),
				),
			),
			Query: siteTimeseriesQuery,
			Input: tool.ChainInput(
				tool.RequireList("siteIDs", lookupHint),
				tool.ForceFlags(map[string]bool{"groupInterfaces": false, "groupDevices": true}),
			),
			Response: transform.TimeseriesSummary{},
		},
		groupTool(accountID, "site_group_metrics",
			"Group sites by an attribute and aggregate their metrics per group, with health flags for breached thresholds",
			transform.GroupSites, siteGroupQuery, "siteIDs",
			tool.NullCoalesce("siteIDs"),
		),
		groupTool(accountID, "interface_group_metrics",
			"Group site interfaces by role, connection type or site and aggregate their metrics per group",
			transform.GroupInterfaces, interfaceGroupQuery, "siteIDs",
			tool.ChainInput(
				tool.NullCoalesce("siteIDs"),
				tool.ForceFlags(map[string]bool{"groupInterfaces": false}),
			),
		),
		groupTool(accountID, "user_group_metrics",
			"Group remote users by role, OS, connectivity or site and aggregate their metrics per group",
			transform.GroupUsers, userGroupQuery, "userIDs",
			tool.NullCoalesce("userIDs"),
		),
		{
			Tool: mcp.NewTool("interface_event_summary",
				mcp.WithDescription("Count interface events (link up/down, failover, ...) per site, interface or event type"),
				mcp.WithReadOnlyHintAnnotation(true),
				accountArg(accountID),
				timeFrameArg(),
				idList("siteIDs", "Only count events of these sites"),
				mcp.WithArray("eventTypes",
					mcp.Description("Event types to count, case-insensitive; all types when empty"),
					mcp.Items(map[string]any{"type": "string"}),
				),
				mcp.WithString("groupBy",
					mcp.Description("Grouping dimension"),
					mcp.Enum(transform.EventGroupings...),
					tool.Default(transform.EventsBySite),
				),
				mcp.WithNumber("minCount",
					mcp.Description("Drop groups with fewer events"),
					mcp.Min(1),
					tool.Default(1),
				),
			),
			Query:    interfaceEventsQuery,
			Input:    tool.NullCoalesce("siteIDs"),
			Response: transform.EventCount{},
		},
	}
}

var seriesLabels = []string{
	transform.MetricBytesUpstream,
	transform.MetricBytesDownstream,
	transform.MetricHostCount,
	transform.MetricHostLimit,
	transform.MetricPacketLoss,
	transform.MetricLatency,
}

var groupMetrics = []string{
	transform.MetricBytesUpstream,
	transform.MetricBytesDownstream,
	transform.MetricBytesTotal,
	transform.MetricHostCount,
	transform.MetricHostLimit,
	transform.MetricPacketLoss,
	transform.MetricLatency,
}

func groupTool(accountID, name, description string, kind transform.GroupKind, query, idArg string, input tool.InputPolicy) tool.Descriptor {
	dims := transform.Dimensions(kind)
	return tool.Descriptor{
		Tool: mcp.NewTool(name,
			mcp.WithDescription(description),
			mcp.WithReadOnlyHintAnnotation(true),
			accountArg(accountID),
			timeFrameArg(),
			idList(idArg, "Only group these entities"),
			mcp.WithString("groupBy",
				mcp.Description("Grouping dimension"),
				mcp.Enum(dims...),
				tool.Default(dims[0]),
			),
			mcp.WithArray("metrics",
				mcp.Description("Metrics to aggregate per group"),
				mcp.Items(map[string]any{"type": "string", "enum": groupMetrics}),
				tool.Default([]string{transform.MetricBytesUpstream, transform.MetricBytesDownstream, transform.MetricBytesTotal}),
			),
			aggregationArg(aggregation.FuncSum),
			mcp.WithObject("thresholds",
				mcp.Description("Health thresholds; a group breaching one gets a health flag"),
				mcp.Properties(map[string]any{
					"maxUtilizationPercent": map[string]any{"type": "number"},
					"maxPacketLossPercent":  map[string]any{"type": "number"},
					"maxLatencyMs":          map[string]any{"type": "number"},
					"minUpDownRatio":        map[string]any{"type": "number"},
				}),
			),
			mcp.WithBoolean("includeMembers",
				mcp.Description("List the member names of every group"),
				tool.Default(false),
			),
		),
		Query:    query,
		Input:    input,
		Response: transform.GroupAggregate{Kind: kind},
	}
}

func accountArg(accountID string) mcp.ToolOption {
	if accountID == "" {
		return mcp.WithString("accountID", mcp.Required(), mcp.Description("Account ID"))
	}
	return mcp.WithString("accountID", mcp.Description("Account ID"), tool.Default(accountID))
}

func timeFrameArg() mcp.ToolOption {
	return mcp.WithString("timeFrame",
		mcp.Description("Time frame such as last.PT1H, last.P1D, last.P7D or utc.2025-01-{01/00:00:00--07/23:59:59}"),
		tool.Default(DefaultTimeFrame),
	)
}

func idList(name, description string) mcp.ToolOption {
	return mcp.WithArray(name,
		mcp.Description(description),
		mcp.Items(map[string]any{"type": "string"}),
	)
}

func limitArg() mcp.ToolOption {
	return mcp.WithNumber("limit",
		mcp.Description("Number of entries to return"),
		mcp.Min(1), mcp.Max(50),
		tool.Default(5),
	)
}

func orderArg() mcp.ToolOption {
	return mcp.WithString("order",
		mcp.Description("Ranking order by total traffic"),
		mcp.Enum("desc", "asc"),
		tool.Default("desc"),
	)
}

func aggregationArg(def aggregation.Func) mcp.ToolOption {
	names := make([]string, 0, len(aggregation.Funcs))
	for _, fn := range aggregation.Funcs {
		names = append(names, string(fn))
	}
	return mcp.WithString("aggregation",
		mcp.Description("Aggregation function"),
		mcp.Enum(names...),
		tool.Default(string(def)),
	)
}
