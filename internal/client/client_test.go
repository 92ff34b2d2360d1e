package client

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
	"time"

	"github.com/atlanticdynamic/scriptstep/internal/retry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fastRetry returns options with waits short enough for tests.
func fastRetry(t *testing.T, retries int, exempt string) retry.Options {
	t.Helper()
	opts, err := retry.Build(strconv.Itoa(retries), exempt)
	require.NoError(t, err)
	opts.Request.RetryWaitMin = time.Millisecond
	opts.Request.RetryWaitMax = 5 * time.Millisecond
	return opts
}

func newTestClient(t *testing.T, srv *httptest.Server, opts retry.Options, mutate func(*Config)) *Client {
	t.Helper()
	cfg := Config{
		UserAgent: "actions/github-script",
		Retry:     opts.Policy,
		Request:   opts.Request,
		BaseURL:   srv.URL,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New("secret-token", cfg)
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("missing token", func(t *testing.T) {
		_, err := New("", Config{})
		require.ErrorIs(t, err, ErrMissingToken)
	})

	t.Run("invalid base url", func(t *testing.T) {
		_, err := New("token", Config{BaseURL: "not a url"})
		require.ErrorIs(t, err, ErrInvalidBaseURL)
	})

	t.Run("default base url", func(t *testing.T) {
		c, err := New("token", Config{})
		require.NoError(t, err)
		assert.Equal(t, "https://api.github.com/", c.BaseURL())
	})

	t.Run("base url gets trailing slash", func(t *testing.T) {
		c, err := New("token", Config{BaseURL: "https://ghe.example.com/api/v3"})
		require.NoError(t, err)
		assert.Equal(t, "https://ghe.example.com/api/v3/", c.BaseURL())
	})

	t.Run("config is copied", func(t *testing.T) {
		previews := []string{"squirrel-girl"}
		c, err := New("token", Config{Previews: previews})
		require.NoError(t, err)
		previews[0] = "changed"
		assert.Equal(t, []string{"squirrel-girl"}, c.Config().Previews)
	})
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		assert.Equal(t, "/repos/octo/hello", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"full_name":"octo/hello"}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv, fastRetry(t, 0, ""), func(cfg *Config) {
		cfg.UserAgent = "actions/github-script orchestration-id/abc"
		cfg.Previews = []string{"squirrel-girl", "mercy"}
	})

	resp, err := c.Request(t.Context(), http.MethodGet, "/repos/octo/hello", nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.Status)
	assert.Equal(t, map[string]any{"full_name": "octo/hello"}, resp.Data)
	assert.Equal(t, "application/json", resp.Headers["content-type"])

	assert.Equal(t, "actions/github-script orchestration-id/abc", got.Get("User-Agent"))
	assert.Equal(t, "Bearer secret-token", got.Get("Authorization"))
	accept := got.Get("Accept")
	assert.Contains(t, accept, "application/vnd.github.squirrel-girl-preview+json")
	assert.Contains(t, accept, "application/vnd.github.mercy-preview+json")
	assert.Contains(t, accept, "application/vnd.github.v3+json")
}

func TestRequestBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body["body"])
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":1}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(t, srv, fastRetry(t, 0, ""), nil)
	resp, err := c.Request(t.Context(), http.MethodPost, "repos/o/r/issues/1/comments", map[string]any{"body": "hello"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, map[string]any{"id": float64(1)}, resp.Data)
}

func TestRequestRetries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		retries      int
		exempt       string
		status       int
		wantAttempts int32
	}{
		{"retried server error", 2, "", http.StatusInternalServerError, 3},
		{"retries disabled", 0, "", http.StatusInternalServerError, 1},
		{"default exempt not retried", 3, "", http.StatusNotFound, 1},
		{"custom exempt not retried", 3, "500", http.StatusInternalServerError, 1},
		{"custom exempt replaces defaults", 1, "500", http.StatusNotFound, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var attempts atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				attempts.Add(1)
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			t.Cleanup(srv.Close)

			c := newTestClient(t, srv, fastRetry(t, tt.retries, tt.exempt), nil)
			resp, err := c.Request(t.Context(), http.MethodGet, "rate_limit", nil)
			require.ErrorIs(t, err, ErrRequestFailed)
			assert.Contains(t, err.Error(), "nope")
			require.NotNil(t, resp)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.wantAttempts, attempts.Load())
		})
	}
}

func TestRequestRecoversAfterRetry(t *testing.T) {
	t.Parallel()

	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	c := newTestClient(t, srv, fastRetry(t, 5, ""), func(cfg *Config) {
		cfg.Logger = logger
	})
	resp, err := c.Request(t.Context(), http.MethodGet, "meta", nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ok": true}, resp.Data)
	assert.Equal(t, int32(3), attempts.Load())
	assert.Contains(t, logs.String(), "Request completed")
}

func TestDescribe(t *testing.T) {
	t.Parallel()

	opts := fastRetry(t, 2, "")
	c, err := New("token", Config{
		UserAgent: "agent",
		Previews:  []string{"mercy"},
		Retry:     opts.Policy,
		Request:   opts.Request,
		BaseURL:   "https://ghe.example.com/api/v3/",
	})
	require.NoError(t, err)

	d := c.Describe()
	assert.Equal(t, "https://ghe.example.com/api/v3/", d["base_url"])
	assert.Equal(t, "agent", d["user_agent"])
	assert.Equal(t, []string{"mercy"}, d["previews"])
	assert.Equal(t, 2, d["retries"])
	assert.Equal(t, "retries=2 do-not-retry=[400 401 403 404 422 451]", d["retry"])
}
