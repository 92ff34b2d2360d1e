package fancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is far too long", 10, "this is..."},
		{"tiny limit", 2, "tiny limit"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateString(tt.in, tt.max))
		})
	}
}

func TestKeyValue(t *testing.T) {
	t.Parallel()

	assert.Contains(t, KeyValue("retries", "3"), "retries:")
	assert.Contains(t, KeyValue("retries", "3"), "3")
	assert.Contains(t, KeyValue("base-url", ""), "(unset)")
}

func TestSectionTree(t *testing.T) {
	t.Parallel()

	out := SectionTree("scriptstep",
		Section{Title: "Client", Fields: []Field{
			{Key: "user-agent", Value: "actions/github-script"},
			{Key: "previews", Value: ""},
		}},
		Section{Title: "Script", Fields: []Field{
			{Key: "engine", Value: "risor"},
		}},
	).String()

	for _, want := range []string{"scriptstep", "Client", "(2)", "user-agent:", "actions/github-script", "(unset)", "Script", "(1)", "risor"} {
		assert.Contains(t, out, want)
	}
}

func TestStyleHelpers(t *testing.T) {
	t.Parallel()

	assert.Contains(t, ValidText("ok"), "ok")
	assert.Contains(t, ErrorText("bad"), "bad")
	assert.Contains(t, PathText("/tmp/x"), "/tmp/x")
	assert.Contains(t, EngineText("risor(code=1 chars)"), "risor(code=1 chars)")
	assert.Contains(t, RetryText("400, 401"), "400, 401")
}
