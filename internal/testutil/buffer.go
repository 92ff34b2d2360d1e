// Package testutil holds helpers shared by tests: a concurrency-safe buffer,
// an Actions runtime wired to a fake environment, a recording executor and a
// scripted GitHub API server.
package testutil

import (
	"bytes"
	"strings"
	"sync"
)

// ThreadSafeBuffer is a bytes.Buffer guarded by a mutex. Workflow commands and
// log handlers may write to it from different goroutines.
type ThreadSafeBuffer struct {
	buffer bytes.Buffer
	mutex  sync.Mutex
}

// Write implements io.Writer
func (b *ThreadSafeBuffer) Write(p []byte) (n int, err error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.Write(p)
}

// String returns the accumulated buffer as a string
func (b *ThreadSafeBuffer) String() string {
	b.mutex.Lock()
	defer b.mutex.Unlock()
	return b.buffer.String()
}

// Lines returns the non-empty lines written so far.
func (b *ThreadSafeBuffer) Lines() []string {
	var lines []string
	for _, l := range strings.Split(b.String(), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
