package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"netpulse/pkg/logging"
)

const (
	endpointPath    = "/api/v1/graphql2"
	apiKeyHeader    = "x-api-key"
	clientUserAgent = "netpulse-mcp"
)

// Executor issues one GraphQL call and returns its envelope.
type Executor interface {
	Execute(ctx context.Context, query string, variables map[string]any) (*Envelope, error)
}

// Client is the single downstream endpoint. It is safe for concurrent use.
type Client struct {
	endpoint  string
	apiKey    string
	userAgent string
	http      *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithVersion appends the build version to the User-Agent.
func WithVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.userAgent = clientUserAgent + "/" + version
		}
	}
}

// New builds a client for host. A host without scheme is reached over https.
func New(host, apiKey string, opts ...Option) (*Client, error) {
	endpoint, err := endpointURL(host)
	if err != nil {
		return nil, err
	}

	c := &Client{
		endpoint:  endpoint,
		apiKey:    apiKey,
		userAgent: clientUserAgent,
		// no Timeout: calls are bounded only by the caller's context
		http: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Endpoint returns the full URL calls are posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Execute posts the query once. Remote errors are logged whenever present, but
// only an envelope without usable data is turned into an UpstreamError.
func (c *Client) Execute(ctx context.Context, query string, variables map[string]any) (*Envelope, error) {
	if variables == nil {
		variables = map[string]any{}
	}
	payload, err := json.Marshal(request{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	logging.Debug("GraphQL", "POST %s (%d bytes)", c.endpoint, len(payload))

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamHTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	if len(env.Errors) > 0 {
		logging.Warn("GraphQL", "downstream reported %d error(s): %s", len(env.Errors), strings.Join(env.ErrorMessages(), "; "))
	}
	if !env.Usable() {
		return nil, &UpstreamError{Messages: env.ErrorMessages()}
	}
	return &env, nil
}

func endpointURL(host string) (string, error) {
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("missing API host")
	}
	if !strings.HasPrefix(host, "http://") && !strings.HasPrefix(host, "https://") {
		host = "https://" + host
	}
	host = strings.TrimRight(host, "/")

	u, err := url.ParseRequestURI(host)
	if err != nil {
		return "", fmt.Errorf("invalid API host: %w", err)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = endpointPath
	}
	return u.String(), nil
}
