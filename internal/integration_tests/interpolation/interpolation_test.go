package interpolation_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/atlanticdynamic/scriptstep/internal/config"
	"github.com/atlanticdynamic/scriptstep/internal/interpolation"
	"github.com/atlanticdynamic/scriptstep/internal/step"
	"github.com/atlanticdynamic/scriptstep/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// TestEndToEndInterpolation follows interpolated config values from the process
// environment into the client configuration of a prepared run.
func TestEndToEndInterpolation(t *testing.T) {
	t.Setenv("STEP_TOKEN", "ghs_from_env")
	t.Setenv("STEP_AGENT", "release-bot")
	t.Setenv("STEP_RETRIES", "4")

	api := testutil.NewFakeAPI(t)
	t.Setenv("STEP_API", api.URL)

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "step.toml",
			content: `
github-token = "${STEP_TOKEN}"
user-agent = "${STEP_AGENT}/${STEP_AGENT_VERSION:1.0}"
base-url = "${STEP_API}"
retries = "${STEP_RETRIES}"
script = '"${STEP_TOKEN}"'
result-encoding = "string"
`,
		},
		{
			name: "yaml",
			file: "step.yaml",
			content: `
github-token: ${STEP_TOKEN}
user-agent: ${STEP_AGENT}/${STEP_AGENT_VERSION:1.0}
base-url: ${STEP_API}
retries: ${STEP_RETRIES}
script: '"${STEP_TOKEN}"'
result-encoding: string
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := config.LoadFile(writeConfig(t, tt.file, tt.content), nil)
			require.NoError(t, err)

			assert.Equal(t, "ghs_from_env", in.GitHubToken)
			assert.Equal(t, "release-bot/1.0", in.UserAgent)
			assert.Equal(t, `"${STEP_TOKEN}"`, in.Script, "scripts are never interpolated")

			runner := testutil.NewRunner(t, testutil.Env{"ACTIONS_ORCHESTRATION_ID": "o-1"})
			run, err := step.New(step.Config{Inputs: in, Runtime: runner.Runtime, Handler: slog.DiscardHandler})
			require.NoError(t, err)
			require.NoError(t, run.Prepare(t.Context()))

			cfg := run.ClientConfig()
			assert.Equal(t, "release-bot/1.0 orchestration-id/o-1", cfg.UserAgent)
			assert.Equal(t, api.URL, cfg.BaseURL)
			assert.Equal(t, 4, cfg.Request.Retries)

			out, err := run.Execute(t.Context())
			require.NoError(t, err)
			assert.Equal(t, "${STEP_TOKEN}", out)
		})
	}
}

func TestUndefinedVariables(t *testing.T) {
	path := writeConfig(t, "step.toml", `
github-token = "${STEP_UNSET_TOKEN}"
base-url = "${STEP_UNSET_API}"
script = "1"
`)

	_, err := config.LoadFile(path, nil)
	require.ErrorIs(t, err, config.ErrFailedToLoadConfig)
	require.ErrorIs(t, err, interpolation.ErrUndefinedVariable)
	assert.Contains(t, err.Error(), "STEP_UNSET_TOKEN")
	assert.Contains(t, err.Error(), "STEP_UNSET_API")
}

func TestFlagsOverrideInterpolatedFile(t *testing.T) {
	t.Setenv("STEP_TOKEN", "from-file")

	fromFile, err := config.LoadFile(writeConfig(t, "step.yaml", "github-token: ${STEP_TOKEN}\nretries: 2\n"), nil)
	require.NoError(t, err)

	in := &config.Inputs{GitHubToken: "from-flag"}
	in.Merge(fromFile)
	assert.Equal(t, "from-flag", in.GitHubToken)
	assert.Equal(t, "2", in.Retries)
}
