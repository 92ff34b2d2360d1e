//go:build e2e

package step

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/atlanticdynamic/scriptstep/internal/config"
	"github.com/atlanticdynamic/scriptstep/internal/finitestate"
	"github.com/atlanticdynamic/scriptstep/internal/script"
	"github.com/atlanticdynamic/scriptstep/internal/step"
	"github.com/atlanticdynamic/scriptstep/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const issueEvent = `{
  "action": "opened",
  "issue": {"number": 12, "title": "Crash on start", "labels": []},
  "repository": {"full_name": "octo/hello"}
}`

// newWorkflow returns a runner that looks like an issues workflow on a hosted runner.
func newWorkflow(t *testing.T, api *testutil.FakeAPI) *testutil.Runner {
	t.Helper()
	eventPath := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(eventPath, []byte(issueEvent), 0o600))

	return testutil.NewRunner(t, testutil.Env{
		"GITHUB_ACTIONS":           "true",
		"GITHUB_EVENT_NAME":        "issues",
		"GITHUB_EVENT_PATH":        eventPath,
		"GITHUB_SHA":               "f00dfeed",
		"GITHUB_API_URL":           api.URL,
		"ACTIONS_ORCHESTRATION_ID": "run/99 attempt:1",
	})
}

func TestCommentOnIssue(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t,
		testutil.Reply{Status: http.StatusBadGateway, Body: `{"message":"upstream"}`},
		testutil.Reply{Status: http.StatusCreated, Body: `{"id": 501, "body": "Thanks for the report"}`},
	)
	wf := newWorkflow(t, api)

	comment := script.Func(func(ctx context.Context, b *script.Bindings) (any, error) {
		issue, err := b.Context.Issue()
		if err != nil {
			return nil, err
		}
		path := fmt.Sprintf("repos/%s/%s/issues/%d/comments", issue.Owner, issue.Repo, issue.Number)
		resp, err := b.Octokit().Request(ctx, http.MethodPost, path, map[string]string{
			"body": "Thanks for the report",
		})
		if err != nil {
			return nil, err
		}
		b.Core.Notice(fmt.Sprintf("commented on #%d", issue.Number))
		return resp.Data, nil
	})

	run, err := step.New(step.Config{
		Inputs: &config.Inputs{
			GitHubToken: "ghs_example",
			Script:      "comment",
			Retries:     "2",
			Previews:    "squirrel-girl",
		},
		Runtime:  wf.Runtime,
		Executor: comment,
		Handler:  slog.DiscardHandler,
	})
	require.NoError(t, err)

	out, err := run.Execute(t.Context())
	require.NoError(t, err)
	assert.Equal(t, finitestate.StatusStopped, run.GetState())
	assert.JSONEq(t, `{"id": 501, "body": "Thanks for the report"}`, out)
	assert.Equal(t, out, wf.Outputs(t)[step.OutputName])
	assert.Contains(t, wf.Stdout.String(), "::notice::commented on #12")

	reqs := api.Requests()
	require.Len(t, reqs, 2, "the 502 should be retried once")
	for _, r := range reqs {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/hello/issues/12/comments", r.Path)
		assert.Equal(t, "actions/github-script orchestration-id/run99attempt1", r.Header.Get("User-Agent"))
		assert.Equal(t, "Bearer ghs_example", r.Header.Get("Authorization"))
		assert.Contains(t, r.Header.Get("Accept"), "application/vnd.github.squirrel-girl-preview+json")
	}

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(reqs[1].Body), &body))
	assert.Equal(t, "Thanks for the report", body["body"])
}

func TestExemptStatusFailsWithoutOutput(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t, testutil.Reply{Status: http.StatusNotFound, Body: `{"message":"Not Found"}`})
	wf := newWorkflow(t, api)

	run, err := step.New(step.Config{
		Inputs:   &config.Inputs{GitHubToken: "t", Script: "lookup", Retries: "3"},
		Runtime:  wf.Runtime,
		Executor: script.Func(func(ctx context.Context, b *script.Bindings) (any, error) {
			_, err := b.GitHub.Request(ctx, http.MethodGet, "repos/octo/missing", nil)
			return nil, err
		}),
		Handler: slog.DiscardHandler,
	})
	require.NoError(t, err)

	_, err = run.Execute(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Not Found")
	assert.Equal(t, finitestate.StatusError, run.GetState())
	assert.Len(t, api.Requests(), 1, "404 is exempt from retries")
	assert.Empty(t, wf.Outputs(t))
}

func TestRisorReadsEventPayload(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t)
	wf := newWorkflow(t, api)

	run, err := step.New(step.Config{
		Inputs: &config.Inputs{
			GitHubToken:    "t",
			ResultEncoding: "string",
			Script: `let c = ctx.get("context", {})
let issue = c.get("payload", {}).get("issue", {})
c.get("eventName", "") + ": " + issue.get("title", "")`,
		},
		Runtime: wf.Runtime,
		Handler: slog.DiscardHandler,
	})
	require.NoError(t, err)

	out, err := run.Execute(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "issues: Crash on start", out)
	assert.Empty(t, api.Requests())
}

func TestRisorCommentsWithRetry(t *testing.T) {
	t.Parallel()

	api := testutil.NewFakeAPI(t,
		testutil.Reply{Status: http.StatusBadGateway, Body: `{"message":"upstream"}`},
		testutil.Reply{Status: http.StatusCreated, Body: `{"id": 502, "body": "Thanks from Risor"}`},
	)
	wf := newWorkflow(t, api)

	run, err := step.New(step.Config{
		Inputs: &config.Inputs{
			GitHubToken: "ghs_example",
			Retries:     "2",
			Script: `let issue = ctx.context.issue
let path = sprintf("repos/%s/%s/issues/%d/comments", issue.owner, issue.repo, int(issue.number))
let resp = ctx.github.request("POST", path, {body: "Thanks from Risor"})
ctx.core.notice(sprintf("commented on #%d", int(issue.number)))
ctx.core.set_output("comment-id", string(int(resp.data.id)))
resp.data`,
		},
		Runtime: wf.Runtime,
		Handler: slog.DiscardHandler,
	})
	require.NoError(t, err)

	out, err := run.Execute(t.Context())
	require.NoError(t, err)
	assert.JSONEq(t, `{"id": 502, "body": "Thanks from Risor"}`, out)
	assert.Contains(t, wf.Stdout.String(), "::notice::commented on #12")

	outputs := wf.Outputs(t)
	assert.Equal(t, "502", outputs["comment-id"])
	assert.Equal(t, out, outputs[step.OutputName])

	reqs := api.Requests()
	require.Len(t, reqs, 2, "the 502 should be retried once")
	for _, r := range reqs {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/octo/hello/issues/12/comments", r.Path)
		assert.Equal(t, "Bearer ghs_example", r.Header.Get("Authorization"))
	}
	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(reqs[1].Body), &body))
	assert.Equal(t, "Thanks from Risor", body["body"])
}
