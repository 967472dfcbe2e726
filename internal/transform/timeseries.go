package transform

import (
	"fmt"

	"netpulse/internal/aggregation"
	"netpulse/internal/graphql"
	"netpulse/internal/tool"
)

// LabelHostUtilization is the derived series injected when both host counters are present.
const LabelHostUtilization = "hostUtilization"

// TimeseriesSummary combines each site's interface series per label and summarizes them.
type TimeseriesSummary struct{}

// LabelSummary is the per-label output of TimeseriesSummary.
type LabelSummary struct {
	Units        string              `json:"units,omitempty"`
	Contributors int                 `json:"contributors"`
	Buckets      int                 `json:"buckets"`
	Aggregation  aggregation.Func    `json:"aggregation"`
	Value        float64             `json:"value"`
	Summary      aggregation.Summary `json:"summary"`
	Series       []aggregation.Point `json:"series,omitempty"`
}

// SiteSeries is the per-site output of TimeseriesSummary.
type SiteSeries struct {
	ID         string                  `json:"id"`
	Name       string                  `json:"name"`
	Interfaces []string                `json:"interfaces"`
	Metrics    map[string]LabelSummary `json:"metrics"`
}

// Transform implements tool.ResponsePolicy.
func (TimeseriesSummary) Transform(args tool.Arguments, env *graphql.Envelope) (tool.Result, error) {
	timeFrame := args.String("timeFrame")

	fn, err := aggregation.ParseFunc(stringOr(args.String("aggregation"), string(aggregation.FuncAvg)))
	if err != nil {
		return tool.Result{}, err
	}
	includeSeries := args.Bool("includeSeries")

	am, err := decodeAccountMetrics(env)
	if err != nil {
		return tool.Result{}, err
	}
	if am == nil || am.Sites == nil {
		return EmptyResult(DomainSites, timeFrame), nil
	}

	sites := make([]SiteSeries, 0, len(am.Sites))
	for _, s := range am.Sites {
		sites = append(sites, summarizeSite(s, fn, includeSeries))
	}

	return tool.Result{Data: map[string]any{
		"timeFrame":   timeFrame,
		"buckets":     args.Int("buckets", 0),
		"aggregation": fn,
		"sites":       sites,
	}}, nil
}

type labelSeries struct {
	units        string
	contributors [][]aggregation.Point
}

func summarizeSite(s site, fn aggregation.Func, includeSeries bool) SiteSeries {
	byLabel := map[string]*labelSeries{}
	names := make([]string, 0, len(s.Interfaces))
	for _, ifc := range s.Interfaces {
		names = append(names, ifc.Name)
		for _, ts := range ifc.Timeseries {
			ls, ok := byLabel[ts.Label]
			if !ok {
				ls = &labelSeries{units: ts.Units}
				byLabel[ts.Label] = ls
			}
			ls.contributors = append(ls.contributors, ts.Data)
		}
	}

	// The site total is the sum of its interfaces. A site level series is
	// only used for labels no interface reports.
	for _, ts := range s.Timeseries {
		if _, ok := byLabel[ts.Label]; ok {
			continue
		}
		byLabel[ts.Label] = &labelSeries{units: ts.Units, contributors: [][]aggregation.Point{ts.Data}}
	}

	out := SiteSeries{
		ID:         s.ID,
		Name:       s.name(),
		Interfaces: names,
		Metrics:    make(map[string]LabelSummary, len(byLabel)+1),
	}

	combined := make(map[string][]aggregation.Point, len(byLabel))
	for label, ls := range byLabel {
		points := aggregation.CombineSeries(ls.contributors...)
		combined[label] = points
		out.Metrics[label] = labelSummary(points, ls.units, len(ls.contributors), fn, includeSeries)
	}

	count, hasCount := combined[MetricHostCount]
	limit, hasLimit := combined[MetricHostLimit]
	if hasCount && hasLimit {
		util := aggregation.DeriveUtilization(count, limit)
		out.Metrics[LabelHostUtilization] = labelSummary(util, "%", 1, fn, includeSeries)
	}
	return out
}

func labelSummary(points []aggregation.Point, units string, contributors int, fn aggregation.Func, includeSeries bool) LabelSummary {
	ls := LabelSummary{
		Units:        units,
		Contributors: contributors,
		Buckets:      len(points),
		Aggregation:  fn,
		Value:        aggregation.Round2(aggregation.Aggregate(fn, aggregation.Values(points))),
		Summary:      aggregation.Summarize(points),
	}
	if includeSeries {
		ls.Series = points
	}
	return ls
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func unknownOption(kind, got string, valid []string) error {
	return fmt.Errorf("unknown %s %q (expected one of %v)", kind, got, valid)
}
