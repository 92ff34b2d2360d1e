package testutil

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/atlanticdynamic/scriptstep/internal/script"
)

// MockExecutor implements script.Executor for testing
type MockExecutor struct {
	ReturnValue any
	ReturnError error

	mu           sync.Mutex
	calls        int
	lastBindings *script.Bindings
}

func (m *MockExecutor) Execute(_ context.Context, b *script.Bindings) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.lastBindings = b
	return m.ReturnValue, m.ReturnError
}

// Calls returns how many times Execute ran.
func (m *MockExecutor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// LastBindings returns the bindings passed to the most recent call.
func (m *MockExecutor) LastBindings() *script.Bindings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastBindings
}

// RecordedRequest is one request received by a FakeAPI.
type RecordedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   string
}

// Reply is a canned FakeAPI response.
type Reply struct {
	Status int
	Body   string
}

// FakeAPI is an httptest server that replays Replies in order, repeating the
// last one, and records every request.
type FakeAPI struct {
	*httptest.Server

	mu       sync.Mutex
	replies  []Reply
	requests []RecordedRequest
}

// NewFakeAPI starts a FakeAPI that is closed with the test.
func NewFakeAPI(t *testing.T, replies ...Reply) *FakeAPI {
	t.Helper()
	if len(replies) == 0 {
		replies = []Reply{{Status: http.StatusOK, Body: `{}`}}
	}
	f := &FakeAPI{replies: replies}
	f.Server = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.Close)
	return f
}

func (f *FakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	f.mu.Lock()
	n := len(f.requests)
	f.requests = append(f.requests, RecordedRequest{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   string(body),
	})
	reply := f.replies[min(n, len(f.replies)-1)]
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(reply.Status)
	_, _ = io.WriteString(w, reply.Body)
}

// Requests returns a copy of the recorded requests.
func (f *FakeAPI) Requests() []RecordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]RecordedRequest(nil), f.requests...)
}
