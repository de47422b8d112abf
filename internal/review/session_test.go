package review

import (
	"testing"
	"time"
)

func init() {
	// Freeze time for deterministic tests.
	timeNow = func() time.Time {
		return time.Date(2026, 2, 23, 12, 0, 0, 0, time.UTC)
	}
}

// --- StepIndex ---

func TestStepIndex_KnownSteps(t *testing.T) {
	cases := []struct {
		id   string
		want int
	}{
		{"calendar_review", 0},
		{"deadline_scan", 1},
		{"waiting_for_review", 2},
		{"project_review", 3},
		{"category_health", 4},
		{"someday_maybe_review", 5},
	}
	for _, tc := range cases {
		if got := StepIndex(tc.id); got != tc.want {
			t.Errorf("StepIndex(%s) = %d, want %d", tc.id, got, tc.want)
		}
	}
}

func TestStepIndex_Unknown(t *testing.T) {
	if got := StepIndex("coffee_break"); got != -1 {
		t.Errorf("StepIndex for unknown step = %d, want -1", got)
	}
}

// --- IsStale ---

func TestIsStale_NilSession(t *testing.T) {
	if !IsStale(nil, timeNow()) {
		t.Error("nil session should be stale")
	}
}

func TestIsStale_MissingStartedAt(t *testing.T) {
	session := &Session{CurrentStep: "calendar_review"}
	if !IsStale(session, timeNow()) {
		t.Error("session without started_at should be stale")
	}
}

func TestIsStale_MalformedStartedAt(t *testing.T) {
	session := &Session{StartedAt: "last tuesday", CurrentStep: "calendar_review"}
	if !IsStale(session, timeNow()) {
		t.Error("session with unparseable started_at should be stale")
	}
}

func TestIsStale_RecentSession(t *testing.T) {
	session := &Session{
		StartedAt:   timeNow().Add(-23 * time.Hour).Format(time.RFC3339),
		CurrentStep: "calendar_review",
	}
	if IsStale(session, timeNow()) {
		t.Error("23-hour-old session should not be stale")
	}
}

func TestIsStale_ExpiredSession(t *testing.T) {
	session := &Session{
		StartedAt:   timeNow().Add(-25 * time.Hour).Format(time.RFC3339),
		CurrentStep: "calendar_review",
	}
	if !IsStale(session, timeNow()) {
		t.Error("25-hour-old session should be stale")
	}
}
