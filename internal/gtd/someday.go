package gtd

import (
	"sort"
	"time"
)

// --- Someday/maybe review ---

// SomedayItem is a backburner task annotated with its age.
type SomedayItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Project string `json:"project"`
	DaysOld int    `json:"days_old"`

	ageKnown bool
}

// SomedaySummary counts the someday buckets.
type SomedaySummary struct {
	Total            int `json:"total"`
	ConsiderDeleting int `json:"consider_deleting"`
	NeedsDecision    int `json:"needs_decision"`
	Keep             int `json:"keep"`
}

// SomedayReport is the result of a someday/maybe review.
type SomedayReport struct {
	GeneratedAt      string        `json:"generated_at,omitempty"`
	ConsiderDeleting []SomedayItem `json:"consider_deleting"`
	NeedsDecision    []SomedayItem `json:"needs_decision"`
	Keep             []SomedayItem `json:"keep"`
	Summary          SomedaySummary `json:"summary"`
}

// IsBackburner reports whether a task is parked: it carries a backburner
// label or lives in (or under) a someday/maybe project.
func IsBackburner(t Task, byID map[string]Project) bool {
	return HasBackburnerLabel(t) || IsSomedayProject(t.ProjectID, byID)
}

// CheckSomeday reviews backburner tasks and buckets them by age: over a
// year suggests deleting, six months to a year needs a decision, anything
// younger is fine to keep. Unknown age counts as young. Buckets are sorted
// oldest first.
func CheckSomeday(tasks []Task, projects []Project, today time.Time) SomedayReport {
	byID := ProjectsByID(projects)
	report := SomedayReport{
		ConsiderDeleting: []SomedayItem{},
		NeedsDecision:    []SomedayItem{},
		Keep:             []SomedayItem{},
	}

	var items []SomedayItem
	for _, t := range tasks {
		if !IsBackburner(t, byID) {
			continue
		}
		age, known := TaskAgeDays(t, today)
		items = append(items, SomedayItem{
			ID:       t.ID,
			Content:  t.Content,
			Project:  projectName(t.ProjectID, byID),
			DaysOld:  age,
			ageKnown: known,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return somedaySortAge(items[i]) > somedaySortAge(items[j])
	})

	for _, it := range items {
		switch {
		case it.ageKnown && it.DaysOld > 365:
			report.ConsiderDeleting = append(report.ConsiderDeleting, it)
		case it.ageKnown && it.DaysOld > 180:
			report.NeedsDecision = append(report.NeedsDecision, it)
		default:
			report.Keep = append(report.Keep, it)
		}
	}

	report.Summary = SomedaySummary{
		Total:            len(items),
		ConsiderDeleting: len(report.ConsiderDeleting),
		NeedsDecision:    len(report.NeedsDecision),
		Keep:             len(report.Keep),
	}
	return report
}

func somedaySortAge(it SomedayItem) int {
	if !it.ageKnown {
		return -1
	}
	return it.DaysOld
}
