// Package client builds the authenticated GitHub API client handed to scripts.
package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/atlanticdynamic/scriptstep/internal/retry"
	"github.com/google/go-github/v75/github"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/oauth2"
)

// Config holds everything needed to construct a Client. It is read once by
// New and never mutated afterwards.
type Config struct {
	// Logger receives the request log. A nil Logger disables request logging.
	Logger    *slog.Logger
	UserAgent string
	Previews  []string
	Retry     retry.Policy
	Request   retry.RequestOptions
	// BaseURL overrides the API endpoint. Empty keeps the public API.
	BaseURL string
}

// LogValue implements slog.LogValuer.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("user_agent", c.UserAgent),
		slog.Any("previews", c.Previews),
		slog.String("retry", c.Retry.String()),
		slog.String("base_url", c.BaseURL),
	)
}

// Client is the API client exposed to scripts.
type Client struct {
	gh     *github.Client
	cfg    Config
	logger *slog.Logger
}

// Response is the decoded result of a generic REST call.
type Response struct {
	Status  int               `json:"status"`
	URL     string            `json:"url"`
	Headers map[string]string `json:"headers"`
	Data    any               `json:"data"`
}

// New builds the client. The HTTP transport chain is, outermost first: token
// auth, preview Accept headers, request log (only with a Logger), retries.
func New(token string, cfg Config) (*Client, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	cfg.Previews = slices.Clone(cfg.Previews)
	cfg.Retry.DoNotRetry = slices.Clone(cfg.Retry.DoNotRetry)

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var transport http.RoundTripper = &retryablehttp.RoundTripper{Client: newRetryClient(cfg)}
	if cfg.Logger != nil {
		transport = &logTransport{logger: cfg.Logger, base: transport}
	}
	transport = &previewTransport{previews: cfg.Previews, base: transport}
	transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		Base:   transport,
	}

	gh := github.NewClient(&http.Client{Transport: transport})
	if cfg.UserAgent != "" {
		gh.UserAgent = cfg.UserAgent
	}
	if cfg.BaseURL != "" {
		base, err := parseBaseURL(cfg.BaseURL)
		if err != nil {
			return nil, err
		}
		gh.BaseURL = base
	}

	return &Client{gh: gh, cfg: cfg, logger: logger}, nil
}

func newRetryClient(cfg Config) *retryablehttp.Client {
	httpClient := cleanhttp.DefaultPooledClient()
	httpClient.Timeout = cfg.Request.Timeout

	waitMin := cfg.Request.RetryWaitMin
	if waitMin <= 0 {
		waitMin = retry.DefaultRetryWaitMin
	}
	waitMax := cfg.Request.RetryWaitMax
	if waitMax <= 0 {
		waitMax = retry.DefaultRetryWaitMax
	}

	rc := &retryablehttp.Client{
		HTTPClient:   httpClient,
		RetryWaitMin: waitMin,
		RetryWaitMax: waitMax,
		RetryMax:     cfg.Request.Retries,
		CheckRetry:   cfg.Retry.CheckRetry,
		Backoff:      cfg.Retry.Backoff,
		ErrorHandler: retryablehttp.PassthroughErrorHandler,
	}
	if cfg.Logger != nil {
		rc.Logger = cfg.Logger.WithGroup("retry")
	}
	return rc
}

func parseBaseURL(raw string) (*url.URL, error) {
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidBaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q must be an absolute URL", ErrInvalidBaseURL, raw)
	}
	return u, nil
}

// GitHub returns the typed go-github client.
func (c *Client) GitHub() *github.Client {
	return c.gh
}

// Config returns the configuration the client was built from.
func (c *Client) Config() Config {
	return c.cfg
}

// BaseURL returns the resolved API endpoint.
func (c *Client) BaseURL() string {
	return c.gh.BaseURL.String()
}

// Request performs a REST call against path, relative to the base URL, and
// decodes the JSON response. Error statuses are returned as an error wrapping
// ErrRequestFailed together with the response.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	req, err := c.gh.NewRequest(method, strings.TrimPrefix(path, "/"), body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequestFailed, err)
	}

	c.logger.Debug("API request", "method", method, "path", path)

	var data any
	resp, err := c.gh.Do(ctx, req, &data)
	out := &Response{Data: data}
	if resp != nil {
		out.Status = resp.StatusCode
		out.URL = req.URL.String()
		out.Headers = flattenHeaders(resp.Header)
	}
	if err != nil {
		var ghErr *github.ErrorResponse
		if errors.As(err, &ghErr) {
			return out, fmt.Errorf("%w: %s %s: %d %s", ErrRequestFailed, method, path, out.Status, ghErr.Message)
		}
		return out, fmt.Errorf("%w: %s %s: %w", ErrRequestFailed, method, path, err)
	}
	return out, nil
}

// Describe returns a plain description of the client for script runtimes
// that can only receive data.
func (c *Client) Describe() map[string]any {
	return map[string]any{
		"base_url":   c.BaseURL(),
		"user_agent": c.gh.UserAgent,
		"previews":   slices.Clone(c.cfg.Previews),
		"retries":    c.cfg.Request.Retries,
		"retry":      c.cfg.Retry.String(),
	}
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k := range h {
		out[strings.ToLower(k)] = h.Get(k)
	}
	return out
}
