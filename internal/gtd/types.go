// Package gtd implements the assistant's review logic: day-delta math over
// task timestamps and the pure categorizers behind each sub-review (deadline
// scan, waiting-for staleness, someday-maybe triage, project health,
// category health, calendar split).
//
// Everything in this package is deterministic. Categorizers take the task
// data plus a reference date and return bucketed reports ready for JSON
// serialization; fetching the data is the job of the todoist, gcal, and
// metadata packages.
//
// Design principles:
// - SRP: one categorizer per file
// - Purity: no wall-clock reads, no I/O; "today" is always a parameter
// - Malformed third-party timestamps degrade to "no value", never to errors
package gtd

import "strings"

// --- External entities ---

// Task is an open task as returned by the Todoist REST API.
// Priority runs 1 (highest) to 4 (none).
type Task struct {
	ID        string   `json:"id"`
	Content   string   `json:"content"`
	ProjectID string   `json:"project_id"`
	Labels    []string `json:"labels"`
	Priority  int      `json:"priority"`
	CreatedAt string   `json:"created_at"`
	Due       *Due     `json:"due,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// Due is the due object attached to a Task. Date always carries a calendar
// date; Datetime is set only when the task has a time of day.
type Due struct {
	Date     string `json:"date"`
	Datetime string `json:"datetime,omitempty"`
	String   string `json:"string,omitempty"`
}

// Project is a Todoist project. Projects form a forest via ParentID.
type Project struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	ParentID   string `json:"parent_id,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
}

// Completion is a completed-task record from the Todoist sync API.
type Completion struct {
	ID          string `json:"id"`
	TaskID      string `json:"task_id"`
	ProjectID   string `json:"project_id"`
	Content     string `json:"content"`
	CompletedAt string `json:"completed_at"`
}

// Event is a calendar event normalized from the calendar source.
// Start and End are RFC 3339 timestamps for timed events and bare
// "2006-01-02" dates for all-day events.
type Event struct {
	ID          string `json:"id,omitempty"`
	Summary     string `json:"summary"`
	Start       string `json:"start"`
	End         string `json:"end,omitempty"`
	Location    string `json:"location,omitempty"`
	Description string `json:"description,omitempty"`
	AllDay      bool   `json:"all_day"`
}

// --- Categorization vocabulary ---

// Label and project-name sets that drive categorization.
// All comparisons are case-insensitive on trimmed values.
var (
	backburnerLabels = map[string]bool{
		"someday-maybe": true,
		"maybe":         true,
		"someday":       true,
		"later":         true,
		"backburner":    true,
	}

	waitingLabels = map[string]bool{
		"waiting":     true,
		"waiting-for": true,
		"waiting for": true,
	}

	somedayProjectNames = map[string]bool{
		"someday-maybe": true,
		"someday maybe": true,
		"someday/maybe": true,
		"someday":       true,
	}
)

// HasWaitingLabel reports whether any of the task's labels marks it as
// blocked on another party.
func HasWaitingLabel(t Task) bool {
	for _, l := range t.Labels {
		if waitingLabels[strings.ToLower(l)] {
			return true
		}
	}
	return false
}

// HasBackburnerLabel reports whether any of the task's labels defers it
// indefinitely.
func HasBackburnerLabel(t Task) bool {
	for _, l := range t.Labels {
		if backburnerLabels[strings.ToLower(l)] {
			return true
		}
	}
	return false
}

// ProjectsByID indexes a project list by ID for ancestor walks and name
// lookups.
func ProjectsByID(projects []Project) map[string]Project {
	byID := make(map[string]Project, len(projects))
	for _, p := range projects {
		byID[p.ID] = p
	}
	return byID
}

// IsSomedayProject reports whether the project, or any of its ancestors,
// carries a someday-maybe name. Unknown IDs and broken parent links end
// the walk.
func IsSomedayProject(projectID string, byID map[string]Project) bool {
	currentID := projectID
	for currentID != "" {
		p, ok := byID[currentID]
		if !ok {
			break
		}
		if somedayProjectNames[strings.ToLower(strings.TrimSpace(p.Name))] {
			return true
		}
		currentID = p.ParentID
	}
	return false
}

// projectName resolves a project ID to its display name, defaulting to
// "Inbox" for tasks outside any known project.
func projectName(projectID string, byID map[string]Project) string {
	if p, ok := byID[projectID]; ok {
		return p.Name
	}
	return "Inbox"
}
