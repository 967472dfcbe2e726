package transform

import (
	"sort"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"netpulse/internal/graphql"
	"netpulse/internal/tool"
)

// Event grouping dimensions.
const (
	EventsBySite      = "site"
	EventsByInterface = "interface"
	EventsByType      = "event_type"
)

// EventGroupings lists the accepted groupBy values of EventCount.
var EventGroupings = []string{EventsBySite, EventsByInterface, EventsByType}

// EventCount counts audit feed records per site, interface or event type.
type EventCount struct{}

// EventGroup is one row of an EventCount result.
type EventGroup struct {
	Key        string         `json:"key"`
	Total      int            `json:"total"`
	ByType     map[string]int `json:"byType"`
	Sites      []string       `json:"sites,omitempty"`
	Interfaces []string       `json:"interfaces,omitempty"`
}

type eventBucket struct {
	total      int
	byType     map[string]int
	sites      sets.Set[string]
	interfaces sets.Set[string]
}

// Transform implements tool.ResponsePolicy.
func (EventCount) Transform(args tool.Arguments, env *graphql.Envelope) (tool.Result, error) {
	timeFrame := args.String("timeFrame")

	groupBy := stringOr(args.String("groupBy"), EventsBySite)
	if !sets.New(EventGroupings...).Has(groupBy) {
		return tool.Result{}, unknownOption("groupBy dimension", groupBy, EventGroupings)
	}
	minCount := args.Int("minCount", 1)

	wanted := sets.New[string]()
	for _, t := range args.StringSlice("eventTypes") {
		if t = strings.TrimSpace(t); t != "" {
			wanted.Insert(strings.ToLower(t))
		}
	}

	var feed eventsFeed
	found, err := env.Decode(rootEventsFeed, &feed)
	if err != nil {
		return tool.Result{}, err
	}
	if !found || feed.Records == nil {
		return EmptyResult(DomainSites, timeFrame), nil
	}

	buckets := map[string]*eventBucket{}
	total := 0
	for _, rec := range feed.Records {
		f := rec.Fields
		eventType := strings.TrimSpace(f.EventType)
		if wanted.Len() > 0 && !wanted.Has(strings.ToLower(eventType)) {
			continue
		}
		if eventType == "" {
			eventType = fallbackUnknown
		}

		siteKey := firstNonBlank(f.SiteName, f.SiteID, fallbackUnknown)
		var key string
		switch groupBy {
		case EventsByInterface:
			key = siteKey + "/" + firstNonBlank(f.InterfaceName, fallbackNone)
		case EventsByType:
			key = eventType
		default:
			key = siteKey
		}

		b, ok := buckets[key]
		if !ok {
			b = &eventBucket{byType: map[string]int{}, sites: sets.New[string](), interfaces: sets.New[string]()}
			buckets[key] = b
		}
		b.total++
		b.byType[eventType]++
		if groupBy == EventsByType {
			b.sites.Insert(siteKey)
			if name := strings.TrimSpace(f.InterfaceName); name != "" {
				b.interfaces.Insert(siteKey + "/" + name)
			}
		}
		total++
	}

	groups := make([]EventGroup, 0, len(buckets))
	for key, b := range buckets {
		if b.total < minCount {
			continue
		}
		g := EventGroup{Key: key, Total: b.total, ByType: b.byType}
		if groupBy == EventsByType {
			g.Sites = sets.List(b.sites)
			g.Interfaces = sets.List(b.interfaces)
		}
		groups = append(groups, g)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		if groups[i].Total != groups[j].Total {
			return groups[i].Total > groups[j].Total
		}
		return groups[i].Key < groups[j].Key
	})

	return tool.Result{Data: map[string]any{
		"timeFrame":   timeFrame,
		"groupBy":     groupBy,
		"eventTypes":  sets.List(wanted),
		"totalEvents": total,
		"groups":      groups,
	}}, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
