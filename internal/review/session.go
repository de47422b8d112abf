// Package review drives the weekly review: a fixed sequence of six
// sub-reviews walked one step at a time, with progress persisted between
// calls so a session survives process restarts.
//
// Design principles:
//   - One live session system-wide; starting over an expired one replaces it.
//   - Malformed persisted state means "no session", never an error.
//   - Staleness is checked only when a new start arrives, not proactively.
package review

import (
	"time"
)

// A session older than this is discarded when the next start arrives.
const sessionTimeout = 24 * time.Hour

// Session is a weekly review in progress.
type Session struct {
	StartedAt      string   `json:"started_at"`
	CurrentStep    string   `json:"current_step"`
	CompletedSteps []string `json:"completed_steps"`
}

// Step is one stage of the weekly review.
type Step struct {
	ID   string
	Name string
	Tool string
}

// Steps lists the weekly review stages in order.
var Steps = []Step{
	{"calendar_review", "Calendar Review", "run_calendar_review"},
	{"deadline_scan", "Deadline Scan", "run_deadline_scan"},
	{"waiting_for_review", "Waiting-For Review", "run_waiting_for_review"},
	{"project_review", "Project Review", "run_project_review"},
	{"category_health", "Category Health", "run_category_health"},
	{"someday_maybe_review", "Someday-Maybe Review", "run_someday_maybe_review"},
}

// StepIndex returns the position of a step ID in the review order, or -1
// for an unknown ID.
func StepIndex(id string) int {
	for i, s := range Steps {
		if s.ID == id {
			return i
		}
	}
	return -1
}

// IsStale reports whether a session started more than 24 hours before now.
// A missing or unparseable start timestamp counts as stale.
func IsStale(s *Session, now time.Time) bool {
	if s == nil || s.StartedAt == "" {
		return true
	}
	started, err := time.Parse(time.RFC3339, s.StartedAt)
	if err != nil {
		return true
	}
	return now.Sub(started) > sessionTimeout
}
