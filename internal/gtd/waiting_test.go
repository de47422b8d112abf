package gtd

import (
	"strings"
	"testing"
)

// --- Helpers ---

func waitingTask(id string, daysAgo int, labels ...string) Task {
	task := taskCreatedDaysAgo(id, daysAgo)
	if len(labels) == 0 {
		labels = []string{"waiting"}
	}
	task.Labels = labels
	return task
}

// --- FollowUp ---

func TestFollowUp_Tiers(t *testing.T) {
	cases := []struct {
		age  int
		want string
	}{
		{0, UrgencyWait},
		{3, UrgencyWait},
		{4, UrgencyGentle},
		{7, UrgencyGentle},
		{8, UrgencyFirm},
		{14, UrgencyFirm},
		{15, UrgencyUrgent},
		{21, UrgencyUrgent},
		{22, UrgencyEscalate},
		{100, UrgencyEscalate},
	}
	for _, tc := range cases {
		urgency, _ := FollowUp(tc.age, true)
		if urgency != tc.want {
			t.Errorf("FollowUp(%d) urgency = %s, want %s", tc.age, urgency, tc.want)
		}
	}
}

func TestFollowUp_UnknownAgeIsFresh(t *testing.T) {
	urgency, action := FollowUp(0, false)
	if urgency != UrgencyWait {
		t.Errorf("urgency = %s, want wait", urgency)
	}
	if !strings.Contains(action, "no action needed") {
		t.Errorf("action should say no action needed, got: %s", action)
	}
}

func TestFollowUp_FirmWordingIncludesAge(t *testing.T) {
	_, action := FollowUp(10, true)
	if !strings.Contains(action, "10 days ago") {
		t.Errorf("firm action should name the age, got: %s", action)
	}
}

func TestFollowUp_EscalateWording(t *testing.T) {
	_, action := FollowUp(30, true)
	if !strings.Contains(action, "Waiting 30 days") {
		t.Errorf("escalate action should name the age, got: %s", action)
	}
}

// --- CheckWaiting ---

func TestCheckWaiting_FiltersToWaitingLabels(t *testing.T) {
	tasks := []Task{
		waitingTask("1", 2),
		taskCreatedDaysAgo("2", 2), // no labels
		waitingTask("3", 2, "errand"),
	}

	report := CheckWaiting(tasks, nil, testToday)

	if report.Summary.Total != 1 {
		t.Errorf("Total = %d, want 1 (only the waiting-labeled task)", report.Summary.Total)
	}
	if report.StillFresh[0].ID != "1" {
		t.Errorf("included task = %s, want 1", report.StillFresh[0].ID)
	}
}

func TestCheckWaiting_LabelVariants(t *testing.T) {
	tasks := []Task{
		waitingTask("1", 2, "WAITING"),
		waitingTask("2", 2, "waiting-for"),
		waitingTask("3", 2, "waiting for"),
	}

	report := CheckWaiting(tasks, nil, testToday)

	if report.Summary.Total != 3 {
		t.Errorf("Total = %d, want 3 (all label variants match)", report.Summary.Total)
	}
}

func TestCheckWaiting_BucketsByUrgency(t *testing.T) {
	tasks := []Task{
		waitingTask("fresh", 2),
		waitingTask("gentle", 5),
		waitingTask("overdue", 20),
	}

	report := CheckWaiting(tasks, nil, testToday)

	if len(report.StillFresh) != 1 || report.StillFresh[0].ID != "fresh" {
		t.Errorf("StillFresh = %+v, want single task fresh", report.StillFresh)
	}
	if len(report.GentleCheck) != 1 || report.GentleCheck[0].ID != "gentle" {
		t.Errorf("GentleCheck = %+v, want single task gentle", report.GentleCheck)
	}
	if len(report.NeedsFollowup) != 1 || report.NeedsFollowup[0].ID != "overdue" {
		t.Errorf("NeedsFollowup = %+v, want single task overdue", report.NeedsFollowup)
	}
}

func TestCheckWaiting_NeedsFollowupSpansFirmAndBeyond(t *testing.T) {
	tasks := []Task{
		waitingTask("firm", 10),
		waitingTask("urgent", 18),
		waitingTask("escalate", 40),
	}

	report := CheckWaiting(tasks, nil, testToday)

	if len(report.NeedsFollowup) != 3 {
		t.Fatalf("NeedsFollowup = %d items, want 3", len(report.NeedsFollowup))
	}
	if report.NeedsFollowup[0].Urgency != UrgencyEscalate {
		t.Errorf("oldest item urgency = %s, want escalate", report.NeedsFollowup[0].Urgency)
	}
}

func TestCheckWaiting_OldestFirst(t *testing.T) {
	tasks := []Task{
		waitingTask("young", 9),
		waitingTask("old", 30),
		waitingTask("middle", 16),
	}

	report := CheckWaiting(tasks, nil, testToday)

	got := []string{report.NeedsFollowup[0].ID, report.NeedsFollowup[1].ID, report.NeedsFollowup[2].ID}
	want := []string{"old", "middle", "young"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("NeedsFollowup[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCheckWaiting_UnknownAgeSortsLast(t *testing.T) {
	noCreated := Task{ID: "mystery", Content: "no created", Labels: []string{"waiting"}}
	tasks := []Task{noCreated, waitingTask("known", 2)}

	report := CheckWaiting(tasks, nil, testToday)

	if len(report.StillFresh) != 2 {
		t.Fatalf("StillFresh = %d items, want 2", len(report.StillFresh))
	}
	if report.StillFresh[1].ID != "mystery" {
		t.Errorf("task with unknown age should sort last, got order %s, %s",
			report.StillFresh[0].ID, report.StillFresh[1].ID)
	}
}

func TestCheckWaiting_ResolvesProjectNames(t *testing.T) {
	task := waitingTask("1", 12)
	task.ProjectID = "p1"
	projects := []Project{{ID: "p1", Name: "Client Work"}}

	report := CheckWaiting([]Task{task}, projects, testToday)

	if report.NeedsFollowup[0].Project != "Client Work" {
		t.Errorf("Project = %s, want Client Work", report.NeedsFollowup[0].Project)
	}
}

func TestCheckWaiting_EmptyInput(t *testing.T) {
	report := CheckWaiting(nil, nil, testToday)

	if report.StillFresh == nil || report.GentleCheck == nil || report.NeedsFollowup == nil {
		t.Error("buckets should be empty slices, not nil")
	}
	if report.Summary.Total != 0 {
		t.Errorf("Total = %d, want 0", report.Summary.Total)
	}
}
