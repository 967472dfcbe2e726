package graphql

import (
	"fmt"
	"strings"
)

// UpstreamHTTPError is returned when the endpoint answers with a non-success status.
type UpstreamHTTPError struct {
	StatusCode int
	Body       string
}

func (e *UpstreamHTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("graphql request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("graphql request failed with status %d: %s", e.StatusCode, e.Body)
}

// UpstreamError is returned when the endpoint replied but the data is unusable.
type UpstreamError struct {
	Messages []string
}

func (e *UpstreamError) Error() string {
	if len(e.Messages) == 0 {
		return "graphql response contained no usable data"
	}
	return "graphql error: " + strings.Join(e.Messages, "; ")
}
