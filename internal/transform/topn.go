package transform

import (
	"strings"

	"netpulse/internal/aggregation"
	"netpulse/internal/graphql"
	"netpulse/internal/tool"
)

const (
	defaultTopN = 5
	maxTopN     = 50
)

// TopN ranks sites or users by total traffic.
type TopN struct {
	Domain Domain
	// Zero is declared per tool: some rankings hide idle entities, others list them.
	Zero aggregation.ZeroPolicy
}

// RankedEntity is one row of a TopN result.
type RankedEntity struct {
	Rank            int     `json:"rank"`
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	BytesUpstream   float64 `json:"bytesUpstream"`
	BytesDownstream float64 `json:"bytesDownstream"`
	BytesTotal      float64 `json:"bytesTotal"`
	Formatted       string  `json:"formattedTotal"`
}

// Transform implements tool.ResponsePolicy.
func (p TopN) Transform(args tool.Arguments, env *graphql.Envelope) (tool.Result, error) {
	timeFrame := args.String("timeFrame")

	am, err := decodeAccountMetrics(env)
	if err != nil {
		return tool.Result{}, err
	}
	if am == nil {
		return EmptyResult(p.Domain, timeFrame), nil
	}

	var entities []aggregation.Traffic
	switch p.Domain {
	case DomainUsers:
		if am.Users == nil {
			return EmptyResult(p.Domain, timeFrame), nil
		}
		for _, u := range am.Users {
			entities = append(entities, trafficOf(u.ID, u.displayName(), u.Metrics))
		}
	default:
		if am.Sites == nil {
			return EmptyResult(p.Domain, timeFrame), nil
		}
		for _, s := range am.Sites {
			entities = append(entities, trafficOf(s.ID, s.name(), s.Metrics))
		}
	}

	limit := clamp(args.Int("limit", defaultTopN), 1, maxTopN)
	order := "desc"
	if strings.EqualFold(args.String("order"), "asc") {
		order = "asc"
	}

	ranked := aggregation.TopN(entities, limit, order == "asc", p.Zero)
	rows := make([]RankedEntity, 0, len(ranked))
	for i, e := range ranked {
		rows = append(rows, RankedEntity{
			Rank:            i + 1,
			ID:              e.ID,
			Name:            e.Name,
			BytesUpstream:   e.Upstream,
			BytesDownstream: e.Downstream,
			BytesTotal:      e.Total(),
			Formatted:       aggregation.FormatBytes(e.Total()),
		})
	}

	return tool.Result{Data: map[string]any{
		"timeFrame":      timeFrame,
		"order":          order,
		"limit":          limit,
		"totalEntities":  len(entities),
		string(p.Domain): rows,
	}}, nil
}

func trafficOf(id, name string, m *metrics) aggregation.Traffic {
	return aggregation.Traffic{
		ID:         id,
		Name:       name,
		Upstream:   orZero(m.value(MetricBytesUpstream)),
		Downstream: orZero(m.value(MetricBytesDownstream)),
	}
}
