package poller

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const maxResponseBodySize = 1 << 20 // 1MB

const defaultTimeout = 10 * time.Second

// a single status resource needs only a small pool
const (
	defaultMaxIdleConns        = 4
	defaultMaxIdleConnsPerHost = 2
	defaultIdleConnTimeout     = 60 * time.Second
)

// ErrNetwork is wrapped by every fetch error: transport failures, non-2xx
// responses and unreadable bodies.
var ErrNetwork = errors.New("network failure")

// Request describes the status resource to fetch.
type Request struct {
	// URL is the absolute URL of the status resource.
	URL string

	// Headers are sent with every request.
	Headers map[string]string

	// Timeout bounds a single request. Zero means 10 seconds.
	Timeout time.Duration
}

// Response holds the result of one fetch.
type Response struct {
	// Body is the response body, limited to 1MB.
	Body []byte

	// StatusCode is zero if the request failed before a response arrived.
	StatusCode int

	Latency time.Duration

	// Error wraps [ErrNetwork] when set.
	Error error
}

// Fetcher performs a single GET of the status resource.
type Fetcher interface {
	Fetch(ctx context.Context, req Request) Response
}

// Client is the [Fetcher] used in production.
//
// Timeouts are applied per request via the context rather than on the
// underlying http.Client.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a [Client] with a pooled transport.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{
			Transport: &http.Transport{
				Proxy:               http.ProxyFromEnvironment,
				MaxIdleConns:        defaultMaxIdleConns,
				MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
				IdleConnTimeout:     defaultIdleConnTimeout,
			},
		},
	}
}

// Fetch issues a GET for req.URL. It always returns a Response; failures are
// reported in Response.Error.
func (c *Client) Fetch(ctx context.Context, req Request) Response {
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("%w: failed to create request: %v", ErrNetwork, err),
		}
	}
	httpReq.Header.Set("Accept", "application/json")
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return Response{
			Latency: time.Since(start),
			Error:   fmt.Errorf("%w: request failed: %w", ErrNetwork, err),
		}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return Response{
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("%w: failed to read response body: %w", ErrNetwork, err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{
			Body:       body,
			StatusCode: resp.StatusCode,
			Latency:    time.Since(start),
			Error:      fmt.Errorf("%w: unexpected status %d", ErrNetwork, resp.StatusCode),
		}
	}

	return Response{
		Body:       body,
		StatusCode: resp.StatusCode,
		Latency:    time.Since(start),
	}
}

// Close releases idle connections. The client stays usable.
func (c *Client) Close() {
	if c == nil || c.httpClient == nil {
		return
	}
	if transport, ok := c.httpClient.Transport.(*http.Transport); ok {
		transport.CloseIdleConnections()
	}
}
