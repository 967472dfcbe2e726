package transform

import (
	"netpulse/internal/graphql"
	"netpulse/internal/tool"
)

// Domain selects the canonical empty result of a transform.
type Domain string

const (
	DomainSites Domain = "sites"
	DomainUsers Domain = "users"
)

// Root fields of the downstream schema.
const (
	rootAccountMetrics = "accountMetrics"
	rootEventsFeed     = "eventsFeed"
)

// EmptyResult is returned when the expected collection is missing from an
// otherwise usable reply.
func EmptyResult(domain Domain, timeFrame string) tool.Result {
	return tool.Result{Data: map[string]any{
		"timeFrame":    timeFrame,
		string(domain): []any{},
	}}
}

// Passthrough returns the downstream data unchanged.
type Passthrough struct{}

// Transform implements tool.ResponsePolicy.
func (Passthrough) Transform(_ tool.Arguments, env *graphql.Envelope) (tool.Result, error) {
	return tool.Result{Data: env.Data}, nil
}

func decodeAccountMetrics(env *graphql.Envelope) (*accountMetrics, error) {
	var am accountMetrics
	found, err := env.Decode(rootAccountMetrics, &am)
	if err != nil || !found {
		return nil, err
	}
	return &am, nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
