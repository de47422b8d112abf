// Package todoist is a small client for the Todoist REST v2 and Sync v9
// APIs, covering only the calls the reviews and task tools need.
//
// Design decisions:
//   - Zero dependencies beyond net/http + encoding/json
//   - Base URLs and the HTTP client are fields so tests point the client
//     at a local server
//   - Fetch failures surface as plain errors; callers degrade to a
//     "could not fetch" message and leave review state untouched
package todoist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/HendryAvila/rubberduck/internal/gtd"
)

const (
	// restURL is the Todoist REST v2 API root.
	restURL = "https://api.todoist.com/rest/v2"

	// syncURL is the Todoist Sync v9 API root, needed only for the
	// completed-tasks endpoint which REST v2 does not expose.
	syncURL = "https://api.todoist.com/sync/v9"

	// requestTimeout is how long we wait for the Todoist API.
	requestTimeout = 15 * time.Second

	// completedLimit caps one completed-tasks fetch.
	completedLimit = 200
)

// Client talks to Todoist with a bearer token.
type Client struct {
	token    string
	restBase string
	syncBase string
	http     *http.Client
}

// NewClient creates a client for the given API token. An empty token is
// allowed; calls will fail and Configured lets callers check first.
func NewClient(token string) *Client {
	return &Client{
		token:    token,
		restBase: restURL,
		syncBase: syncURL,
		http:     &http.Client{Timeout: requestTimeout},
	}
}

// Configured reports whether an API token is present.
func (c *Client) Configured() bool {
	return c.token != ""
}

// OpenTasks fetches all open tasks.
func (c *Client) OpenTasks(ctx context.Context) ([]gtd.Task, error) {
	var tasks []gtd.Task
	if err := c.getJSON(ctx, c.restBase+"/tasks", &tasks); err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return tasks, nil
}

// TasksByFilter fetches open tasks matching a Todoist filter expression,
// e.g. "today | overdue".
func (c *Client) TasksByFilter(ctx context.Context, filter string) ([]gtd.Task, error) {
	endpoint := c.restBase + "/tasks?filter=" + url.QueryEscape(filter)
	var tasks []gtd.Task
	if err := c.getJSON(ctx, endpoint, &tasks); err != nil {
		return nil, fmt.Errorf("fetching tasks for filter %q: %w", filter, err)
	}
	return tasks, nil
}

// Projects fetches all projects with their parent linkage.
func (c *Client) Projects(ctx context.Context) ([]gtd.Project, error) {
	var projects []gtd.Project
	if err := c.getJSON(ctx, c.restBase+"/projects", &projects); err != nil {
		return nil, fmt.Errorf("fetching projects: %w", err)
	}
	return projects, nil
}

// CompletedSince fetches tasks completed after the given time, capped at
// 200 items.
func (c *Client) CompletedSince(ctx context.Context, since time.Time) ([]gtd.Completion, error) {
	payload := map[string]interface{}{
		"since": since.UTC().Format(time.RFC3339),
		"limit": completedLimit,
	}
	var result struct {
		Items []gtd.Completion `json:"items"`
	}
	if err := c.postJSON(ctx, c.syncBase+"/completed/get_all", payload, &result); err != nil {
		return nil, fmt.Errorf("fetching completed tasks: %w", err)
	}
	return result.Items, nil
}

// CreateTaskArgs are the fields for a new task. Content is required; the
// rest is optional.
type CreateTaskArgs struct {
	Content     string   `json:"content"`
	Description string   `json:"description,omitempty"`
	ProjectID   string   `json:"project_id,omitempty"`
	DueString   string   `json:"due_string,omitempty"`
	Labels      []string `json:"labels,omitempty"`
	Priority    int      `json:"priority,omitempty"`
}

// CreateTask creates a task and returns it as Todoist stored it.
func (c *Client) CreateTask(ctx context.Context, args CreateTaskArgs) (*gtd.Task, error) {
	var task gtd.Task
	if err := c.postJSON(ctx, c.restBase+"/tasks", args, &task); err != nil {
		return nil, fmt.Errorf("creating task: %w", err)
	}
	return &task, nil
}

// UpdateTaskArgs are the mutable task fields. Zero values are omitted, so
// an empty field leaves the stored value alone.
type UpdateTaskArgs struct {
	Content   string `json:"content,omitempty"`
	DueString string `json:"due_string,omitempty"`
}

// UpdateTask rewrites the given fields of a task and returns the updated
// record.
func (c *Client) UpdateTask(ctx context.Context, id string, args UpdateTaskArgs) (*gtd.Task, error) {
	var task gtd.Task
	if err := c.postJSON(ctx, c.restBase+"/tasks/"+id, args, &task); err != nil {
		return nil, fmt.Errorf("updating task %s: %w", id, err)
	}
	return &task, nil
}

// CompleteTask closes a task.
func (c *Client) CompleteTask(ctx context.Context, id string) error {
	if err := c.postJSON(ctx, c.restBase+"/tasks/"+id+"/close", nil, nil); err != nil {
		return fmt.Errorf("completing task %s: %w", id, err)
	}
	return nil
}

// UpdateProjectArgs are the mutable project fields. IsFavorite is a
// pointer so that explicitly clearing the flag is distinguishable from
// not touching it.
type UpdateProjectArgs struct {
	Name       string `json:"name,omitempty"`
	IsFavorite *bool  `json:"is_favorite,omitempty"`
}

// UpdateProject renames a project or toggles its favorite flag.
func (c *Client) UpdateProject(ctx context.Context, id string, args UpdateProjectArgs) (*gtd.Project, error) {
	var project gtd.Project
	if err := c.postJSON(ctx, c.restBase+"/projects/"+id, args, &project); err != nil {
		return nil, fmt.Errorf("updating project %s: %w", id, err)
	}
	return &project, nil
}

// --- HTTP plumbing ---

func (c *Client) getJSON(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) postJSON(ctx context.Context, endpoint string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("todoist API returned %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
