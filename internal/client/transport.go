package client

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// previewTransport adds the preview media types to the Accept header so the
// API enables the named preview features.
type previewTransport struct {
	previews []string
	base     http.RoundTripper
}

func (t *previewTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if len(t.previews) == 0 {
		return t.base.RoundTrip(req)
	}

	accept := make([]string, 0, len(t.previews)+1)
	for _, p := range t.previews {
		accept = append(accept, previewMediaType(p))
	}
	if existing := req.Header.Get("Accept"); existing != "" {
		accept = append(accept, existing)
	}

	req = req.Clone(req.Context())
	req.Header.Set("Accept", strings.Join(accept, ","))
	return t.base.RoundTrip(req)
}

func previewMediaType(name string) string {
	return fmt.Sprintf("application/vnd.github.%s-preview+json", name)
}

// logTransport logs each request, including its retries, at debug level.
type logTransport struct {
	logger *slog.Logger
	base   http.RoundTripper
}

func (t *logTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)
	attrs := []any{
		"method", req.Method,
		"url", req.URL.String(),
		"duration", time.Since(start),
	}
	if err != nil {
		t.logger.Debug("Request failed", append(attrs, "error", err)...)
		return resp, err
	}
	t.logger.Debug("Request completed", append(attrs, "status", resp.StatusCode)...)
	return resp, nil
}
