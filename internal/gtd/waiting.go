package gtd

import (
	"fmt"
	"sort"
	"time"
)

// --- Waiting-for review ---

// Urgency tiers for delegated tasks, ordered by how long the task has sat.
const (
	UrgencyWait     = "wait"
	UrgencyGentle   = "gentle"
	UrgencyFirm     = "firm"
	UrgencyUrgent   = "urgent"
	UrgencyEscalate = "escalate"
)

// WaitingItem is a delegated task annotated with its age and a suggested
// follow-up action.
type WaitingItem struct {
	ID              string `json:"id"`
	Content         string `json:"content"`
	Project         string `json:"project"`
	DaysWaiting     int    `json:"days_waiting"`
	Urgency         string `json:"urgency"`
	SuggestedAction string `json:"suggested_action"`

	ageKnown bool
}

// WaitingSummary counts the waiting buckets.
type WaitingSummary struct {
	Total         int `json:"total"`
	StillFresh    int `json:"still_fresh"`
	GentleCheck   int `json:"gentle_check"`
	NeedsFollowup int `json:"needs_followup"`
}

// WaitingReport is the result of a waiting-for review.
type WaitingReport struct {
	GeneratedAt   string         `json:"generated_at,omitempty"`
	StillFresh    []WaitingItem  `json:"still_fresh"`
	GentleCheck   []WaitingItem  `json:"gentle_check"`
	NeedsFollowup []WaitingItem  `json:"needs_followup"`
	Summary       WaitingSummary `json:"summary"`
}

// FollowUp maps a waiting task's age to an urgency tier and the wording of
// the suggested follow-up. An unknown age counts as fresh.
func FollowUp(ageDays int, ageKnown bool) (urgency, action string) {
	switch {
	case !ageKnown || ageDays < 4:
		return UrgencyWait, "Still within normal timeline - no action needed yet."
	case ageDays < 8:
		return UrgencyGentle, "Just checking in on this. No rush, wanted to ensure it's on your radar."
	case ageDays < 15:
		return UrgencyFirm, fmt.Sprintf("Following up on this from %d days ago. Could you provide a status update?", ageDays)
	case ageDays < 22:
		return UrgencyUrgent, fmt.Sprintf("This has been pending for %d days. Need a firm timeline or we should explore alternatives.", ageDays)
	default:
		return UrgencyEscalate, fmt.Sprintf("Waiting %d days. May need to escalate or find workaround.", ageDays)
	}
}

// CheckWaiting reviews tasks carrying a waiting label and buckets them by
// urgency: still fresh (under 4 days or unknown age), gentle check (4-7
// days), needs follow-up (8 days and beyond). Buckets are sorted oldest
// first, tasks with unknown age last.
func CheckWaiting(tasks []Task, projects []Project, today time.Time) WaitingReport {
	byID := ProjectsByID(projects)
	report := WaitingReport{
		StillFresh:    []WaitingItem{},
		GentleCheck:   []WaitingItem{},
		NeedsFollowup: []WaitingItem{},
	}

	var items []WaitingItem
	for _, t := range tasks {
		if !HasWaitingLabel(t) {
			continue
		}
		age, known := TaskAgeDays(t, today)
		urgency, action := FollowUp(age, known)
		items = append(items, WaitingItem{
			ID:              t.ID,
			Content:         t.Content,
			Project:         projectName(t.ProjectID, byID),
			DaysWaiting:     age,
			Urgency:         urgency,
			SuggestedAction: action,
			ageKnown:        known,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return sortAge(items[i]) > sortAge(items[j])
	})

	for _, it := range items {
		switch it.Urgency {
		case UrgencyWait:
			report.StillFresh = append(report.StillFresh, it)
		case UrgencyGentle:
			report.GentleCheck = append(report.GentleCheck, it)
		default:
			report.NeedsFollowup = append(report.NeedsFollowup, it)
		}
	}

	report.Summary = WaitingSummary{
		Total:         len(items),
		StillFresh:    len(report.StillFresh),
		GentleCheck:   len(report.GentleCheck),
		NeedsFollowup: len(report.NeedsFollowup),
	}
	return report
}

func sortAge(it WaitingItem) int {
	if !it.ageKnown {
		return -1
	}
	return it.DaysWaiting
}
