package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func lookup(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestLoadFileTOML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "step.toml", `
github-token = "${TOKEN}"
debug = true
retries = 3
retry-exempt-status-codes = [400, 401]
previews = ["mercy", "squirrel-girl"]
base-url = "${API:https://api.github.com}"
script = "${NOT_EXPANDED}"
`)

	in, err := LoadFile(path, lookup(map[string]string{"TOKEN": "abc"}))
	require.NoError(t, err)
	assert.Equal(t, "abc", in.GitHubToken)
	assert.Equal(t, "true", in.Debug)
	assert.Equal(t, "3", in.Retries)
	assert.Equal(t, "400,401", in.RetryExemptStatusCodes)
	assert.Equal(t, []string{"mercy", "squirrel-girl"}, in.PreviewList())
	assert.Equal(t, "https://api.github.com", in.BaseURL)
	assert.Equal(t, "${NOT_EXPANDED}", in.Script)
}

func TestLoadFileYAML(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "step.yaml", `
github-token: token
result-encoding: string
timeout: 30
script: |
  {"answer": 42}
`)

	in, err := LoadFile(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "token", in.GitHubToken)
	assert.Equal(t, "string", in.ResultEncoding)
	assert.Equal(t, "30", in.Timeout)
	assert.Equal(t, "{\"answer\": 42}\n", in.Script)
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), nil)
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "step.json", "{}"), nil)
		require.ErrorIs(t, err, ErrUnsupportedExtension)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "step.toml", `colour = "blue"`), nil)
		require.ErrorIs(t, err, ErrUnknownInput)
	})

	t.Run("nested table", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "step.toml", "[script]\ncode = \"x\"\n"), nil)
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "step.yml", "script: [unclosed"), nil)
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
	})

	t.Run("undefined variable", func(t *testing.T) {
		_, err := LoadFile(writeFile(t, "step.toml", `github-token = "${NOPE}"`), lookup(nil))
		require.ErrorIs(t, err, ErrFailedToLoadConfig)
	})
}
