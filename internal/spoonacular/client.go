// Package spoonacular is a minimal HTTP client for the Spoonacular meal
// planner API. It issues a single GET per generation and hands back the raw
// JSON body; interpreting the document is the caller's job.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/platewise/platewise/internal/metrics"
)

// DefaultBaseURL is the production Spoonacular endpoint.
const DefaultBaseURL = "https://api.spoonacular.com"

const (
	generatePath   = "/mealplanner/generate"
	requestTimeout = 30 * time.Second
	maxBodyExcerpt = 512
)

// ErrAPIKeyMissing is returned when a request is attempted without a
// configured API key. The credential is checked at call time, not at
// construction, so a server can start without one and fail only on use.
var ErrAPIKeyMissing = errors.New("SPOONACULAR_API_KEY environment variable is not set")

// StatusError reports a non-2xx upstream response.
type StatusError struct {
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s returned HTTP %d: %s", e.Path, e.StatusCode, e.Body)
}

// DecodeError reports an upstream 2xx response whose body is not valid JSON.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("GET %s returned an unreadable body: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// TransportError reports a failure to reach the upstream at all. The reason
// text has the API key scrubbed, since transport errors embed the full
// request URL.
type TransportError struct {
	Path   string
	Reason string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.Path, e.Reason)
}

// GenerateParams are the query parameters for one plan generation. Zero
// values are omitted from the query entirely; the API treats an absent
// parameter and a zero differently, and only set values may reach the wire.
type GenerateParams struct {
	TimeFrame      string
	TargetCalories int
	Diet           string
	Exclude        string
}

// Client calls the Spoonacular API. Use NewClient; the zero value has no
// base URL.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a client for the given endpoint. An empty baseURL falls
// back to DefaultBaseURL, and an empty apiKey is allowed until the first
// request.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// GenerateMealPlan requests a generated plan and returns the raw JSON
// document exactly as the API sent it.
func (c *Client) GenerateMealPlan(ctx context.Context, params GenerateParams) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("timeFrame", params.TimeFrame)
	if params.TargetCalories != 0 {
		query.Set("targetCalories", strconv.Itoa(params.TargetCalories))
	}
	if params.Diet != "" {
		query.Set("diet", params.Diet)
	}
	if params.Exclude != "" {
		query.Set("exclude", params.Exclude)
	}
	return c.getJSON(ctx, generatePath, query)
}

// getJSON performs one GET against path with the API key appended to the
// query. The key never appears in errors or logs.
func (c *Client) getJSON(ctx context.Context, path string, query url.Values) (json.RawMessage, error) {
	if c.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	query.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("network_error").Inc()
		return nil, &TransportError{Path: path, Reason: c.scrub(err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("network_error").Inc()
		return nil, &TransportError{Path: path, Reason: c.scrub(err)}
	}
	metrics.UpstreamRequestDuration.Observe(time.Since(start).Seconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.UpstreamRequests.WithLabelValues("http_error").Inc()
		return nil, &StatusError{Path: path, StatusCode: resp.StatusCode, Body: excerpt(body)}
	}
	if !json.Valid(body) {
		metrics.UpstreamRequests.WithLabelValues("decode_error").Inc()
		return nil, &DecodeError{Path: path, Err: errors.New("body is not valid JSON")}
	}

	metrics.UpstreamRequests.WithLabelValues("ok").Inc()
	return json.RawMessage(body), nil
}

// scrub removes the API key from error text. Transport errors wrap the full
// request URL, credential included, and the URL carries the key in its
// query-escaped form.
func (c *Client) scrub(err error) string {
	s := strings.ReplaceAll(err.Error(), c.apiKey, "REDACTED")
	if escaped := url.QueryEscape(c.apiKey); escaped != c.apiKey {
		s = strings.ReplaceAll(s, escaped, "REDACTED")
	}
	return s
}

// excerpt trims an upstream body down to error-message size.
func excerpt(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxBodyExcerpt {
		return s[:maxBodyExcerpt] + "..."
	}
	return s
}
