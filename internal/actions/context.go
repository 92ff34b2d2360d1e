package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// Repo identifies a repository.
type Repo struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
}

// Issue identifies an issue or pull request.
type Issue struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Number int64  `json:"number"`
}

// Context is the workflow run context exported by the runner.
type Context struct {
	EventName  string
	SHA        string
	Ref        string
	Workflow   string
	Action     string
	Actor      string
	Job        string
	RunAttempt int64
	RunNumber  int64
	RunID      int64
	APIURL     string
	ServerURL  string
	GraphQLURL string

	// Payload is the decoded webhook event. Empty when no event file is available.
	Payload map[string]any

	repository string
	rawPayload []byte
}

// NewContext reads the workflow context from the environment and the event
// payload file at GITHUB_EVENT_PATH. A missing event file is not an error.
func NewContext(getenv GetenvFunc) (*Context, error) {
	if getenv == nil {
		getenv = os.Getenv
	}

	c := &Context{
		EventName:  getenv("GITHUB_EVENT_NAME"),
		SHA:        getenv("GITHUB_SHA"),
		Ref:        getenv("GITHUB_REF"),
		Workflow:   getenv("GITHUB_WORKFLOW"),
		Action:     getenv("GITHUB_ACTION"),
		Actor:      getenv("GITHUB_ACTOR"),
		Job:        getenv("GITHUB_JOB"),
		RunAttempt: parseInt(getenv("GITHUB_RUN_ATTEMPT")),
		RunNumber:  parseInt(getenv("GITHUB_RUN_NUMBER")),
		RunID:      parseInt(getenv("GITHUB_RUN_ID")),
		APIURL:     valueOr(getenv("GITHUB_API_URL"), "https://api.github.com"),
		ServerURL:  valueOr(getenv("GITHUB_SERVER_URL"), "https://github.com"),
		GraphQLURL: valueOr(getenv("GITHUB_GRAPHQL_URL"), "https://api.github.com/graphql"),
		Payload:    map[string]any{},
		repository: getenv("GITHUB_REPOSITORY"),
	}

	path := getenv("GITHUB_EVENT_PATH")
	if path == "" {
		return c, nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadEvent, err)
	}
	if err := json.Unmarshal(raw, &c.Payload); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadEvent, path, err)
	}
	c.rawPayload = raw
	return c, nil
}

// Repo resolves the repository from GITHUB_REPOSITORY, falling back to the
// repository object in the event payload.
func (c *Context) Repo() (Repo, error) {
	if owner, repo, ok := strings.Cut(c.repository, "/"); ok {
		return Repo{Owner: owner, Repo: repo}, nil
	}

	owner := gjson.GetBytes(c.rawPayload, "repository.owner.login")
	name := gjson.GetBytes(c.rawPayload, "repository.name")
	if owner.Exists() && name.Exists() {
		return Repo{Owner: owner.String(), Repo: name.String()}, nil
	}
	return Repo{}, fmt.Errorf(
		"%w: context.repo requires a GITHUB_REPOSITORY environment variable like 'owner/repo'",
		ErrActions,
	)
}

// Issue resolves the issue or pull request number from the event payload.
func (c *Context) Issue() (Issue, error) {
	repo, err := c.Repo()
	if err != nil {
		return Issue{}, err
	}

	var number int64
	for _, path := range []string{"issue.number", "pull_request.number", "number"} {
		if r := gjson.GetBytes(c.rawPayload, path); r.Exists() {
			number = r.Int()
			break
		}
	}
	return Issue{Owner: repo.Owner, Repo: repo.Repo, Number: number}, nil
}

// Map renders the context as plain data for script engines. Fields that
// cannot be resolved are omitted.
func (c *Context) Map() map[string]any {
	m := map[string]any{
		"eventName":  c.EventName,
		"sha":        c.SHA,
		"ref":        c.Ref,
		"workflow":   c.Workflow,
		"action":     c.Action,
		"actor":      c.Actor,
		"job":        c.Job,
		"runAttempt": c.RunAttempt,
		"runNumber":  c.RunNumber,
		"runId":      c.RunID,
		"apiUrl":     c.APIURL,
		"serverUrl":  c.ServerURL,
		"graphqlUrl": c.GraphQLURL,
		"payload":    c.Payload,
	}
	if repo, err := c.Repo(); err == nil {
		m["repo"] = map[string]any{"owner": repo.Owner, "repo": repo.Repo}
		if issue, err := c.Issue(); err == nil && issue.Number != 0 {
			m["issue"] = map[string]any{
				"owner":  issue.Owner,
				"repo":   issue.Repo,
				"number": issue.Number,
			}
		}
	}
	return m
}

func parseInt(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func valueOr(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
