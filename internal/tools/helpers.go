// Package tools implements the MCP tool handlers for the GTD assistant.
//
// Design principles:
//   - SRP: each file covers one tool, or one tight group of related tools
//   - DIP: tools depend on small interfaces (TaskSource, EventSource), not
//     on the concrete HTTP clients, so tests run against fakes
//   - Degradation over failure: a missing integration turns into an
//     explanatory text result, never a protocol error
package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/HendryAvila/rubberduck/internal/journal"
	"github.com/HendryAvila/rubberduck/internal/metadata"
	"github.com/HendryAvila/rubberduck/internal/todoist"
	"github.com/mark3labs/mcp-go/mcp"
)

// timeNow is swapped out in tests to freeze "today".
var timeNow = time.Now

// TaskSource is the read side of the task API the review tools consume.
// *todoist.Client satisfies it. A nil source means Todoist is not
// configured and tools answer with explanatory text instead.
type TaskSource interface {
	OpenTasks(ctx context.Context) ([]gtd.Task, error)
	TasksByFilter(ctx context.Context, filter string) ([]gtd.Task, error)
	Projects(ctx context.Context) ([]gtd.Project, error)
	CompletedSince(ctx context.Context, since time.Time) ([]gtd.Completion, error)
}

// TaskWriter is the mutation side of the task API.
type TaskWriter interface {
	CreateTask(ctx context.Context, args todoist.CreateTaskArgs) (*gtd.Task, error)
	UpdateTask(ctx context.Context, id string, args todoist.UpdateTaskArgs) (*gtd.Task, error)
	CompleteTask(ctx context.Context, id string) error
	UpdateProject(ctx context.Context, id string, args todoist.UpdateProjectArgs) (*gtd.Project, error)
}

// EventSource is the calendar slice the planning tools consume. A nil
// source means Google Calendar is not configured.
type EventSource interface {
	EventsBetween(ctx context.Context, from, to time.Time, maxResults int64) ([]gtd.Event, error)
}

// JournalReader is the query side of the conversation journal.
type JournalReader interface {
	Recent(limit int) ([]journal.Entry, error)
	Search(query string, limit int) ([]journal.Entry, error)
}

// MetadataSource supplies per-project goals, deadlines and category
// designations for the project review.
type MetadataSource interface {
	Get(name string) (metadata.Entry, bool)
	Categories() map[string]bool
}

// intArg extracts an integer argument, returning defaultVal if the key is
// missing or not a number (JSON numbers decode as float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

// projectPaths maps project IDs to display paths, "Parent > Child" for
// sub-projects.
func projectPaths(projects []gtd.Project) map[string]string {
	byID := gtd.ProjectsByID(projects)
	paths := make(map[string]string, len(projects))
	for _, p := range projects {
		if parent, ok := byID[p.ParentID]; ok {
			paths[p.ID] = parent.Name + " > " + p.Name
			continue
		}
		paths[p.ID] = p.Name
	}
	return paths
}

// projectPath resolves a task's project to a display path. Unknown IDs
// resolve to "Inbox".
func projectPath(id string, paths map[string]string) string {
	if path, ok := paths[id]; ok {
		return path
	}
	return "Inbox"
}

// dayName renders the weekday a given number of days from today.
func dayName(today time.Time, days int) string {
	return today.AddDate(0, 0, days).Format("Monday")
}

// clock12 renders an RFC 3339 timestamp as a 12-hour clock time.
// Unparseable input passes through raw.
func clock12(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return ts
	}
	return t.Format("3:04 PM")
}

// dueInfo renders the parenthesized due annotation for a task listing.
func dueInfo(t gtd.Task) string {
	if t.Due == nil {
		return ""
	}
	label := t.Due.String
	if label == "" {
		label = t.Due.Date
	}
	return fmt.Sprintf(" (due: %s)", label)
}

// labelInfo renders the bracketed label list for a task listing.
func labelInfo(t gtd.Task) string {
	if len(t.Labels) == 0 {
		return ""
	}
	return fmt.Sprintf(" [%s]", strings.Join(t.Labels, ", "))
}

// truncate cuts a string to at most n runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// snippet is truncate with an ellipsis marking the cut.
func snippet(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
