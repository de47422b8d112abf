package gtd

import (
	"sort"
	"time"
)

// --- Deadline scan ---

// OverdueItem is a task whose due date has passed.
type OverdueItem struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	Project     string `json:"project"`
	DaysOverdue int    `json:"days_overdue"`
}

// DueTodayItem is a task due today. HasTime is set when the task carries a
// specific time of day rather than a bare date.
type DueTodayItem struct {
	ID      string `json:"id"`
	Content string `json:"content"`
	Project string `json:"project"`
	HasTime bool   `json:"has_time"`
}

// DueSoonItem is a task due within the next seven days.
type DueSoonItem struct {
	ID        string `json:"id"`
	Content   string `json:"content"`
	Project   string `json:"project"`
	DaysUntil int    `json:"days_until"`
}

// DeadlineSummary counts the deadline buckets.
type DeadlineSummary struct {
	Overdue     int `json:"overdue"`
	DueToday    int `json:"due_today"`
	DueThisWeek int `json:"due_this_week"`
}

// DeadlineReport is the result of a deadline scan.
type DeadlineReport struct {
	GeneratedAt string          `json:"generated_at,omitempty"`
	Overdue     []OverdueItem   `json:"overdue"`
	DueToday    []DueTodayItem  `json:"due_today"`
	DueThisWeek []DueSoonItem   `json:"due_this_week"`
	Summary     DeadlineSummary `json:"summary"`
}

// ScanDeadlines partitions tasks by deadline urgency: overdue, due today,
// and due within the next seven days. Tasks without a due date, with an
// unparseable due date, or due more than a week out are excluded. Overdue
// is sorted most-overdue first, due-this-week soonest first.
func ScanDeadlines(tasks []Task, projects []Project, today time.Time) DeadlineReport {
	byID := ProjectsByID(projects)
	report := DeadlineReport{
		Overdue:     []OverdueItem{},
		DueToday:    []DueTodayItem{},
		DueThisWeek: []DueSoonItem{},
	}

	for _, t := range tasks {
		days, ok := DaysUntilDue(t, today)
		if !ok {
			continue
		}
		name := projectName(t.ProjectID, byID)
		switch {
		case days < 0:
			report.Overdue = append(report.Overdue, OverdueItem{
				ID:          t.ID,
				Content:     t.Content,
				Project:     name,
				DaysOverdue: -days,
			})
		case days == 0:
			report.DueToday = append(report.DueToday, DueTodayItem{
				ID:      t.ID,
				Content: t.Content,
				Project: name,
				HasTime: t.Due.Datetime != "",
			})
		case days <= 7:
			report.DueThisWeek = append(report.DueThisWeek, DueSoonItem{
				ID:        t.ID,
				Content:   t.Content,
				Project:   name,
				DaysUntil: days,
			})
		}
	}

	sort.SliceStable(report.Overdue, func(i, j int) bool {
		return report.Overdue[i].DaysOverdue > report.Overdue[j].DaysOverdue
	})
	sort.SliceStable(report.DueThisWeek, func(i, j int) bool {
		return report.DueThisWeek[i].DaysUntil < report.DueThisWeek[j].DaysUntil
	})

	report.Summary = DeadlineSummary{
		Overdue:     len(report.Overdue),
		DueToday:    len(report.DueToday),
		DueThisWeek: len(report.DueThisWeek),
	}
	return report
}
