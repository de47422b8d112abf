package gtd

import (
	"math"
	"sort"
	"time"
)

// --- Category health ---

// Aging threshold in days. Tasks open longer than this count against the
// project's health.
const agingCutoffDays = 14

// CategoryStat describes one project's share of the open task load.
type CategoryStat struct {
	Name    string `json:"name"`
	Count   int    `json:"count"`
	Aging   int    `json:"aging"`
	Percent int    `json:"percent"`
}

// CategoryHealthSummary totals the distribution.
type CategoryHealthSummary struct {
	TotalTasks    int `json:"total_tasks"`
	TotalProjects int `json:"total_projects"`
	TotalAging    int `json:"total_aging"`
}

// CategoryHealthReport is the result of a category health check.
type CategoryHealthReport struct {
	GeneratedAt  string                `json:"generated_at,omitempty"`
	Distribution []CategoryStat        `json:"distribution"`
	Overloaded   []CategoryStat        `json:"overloaded"`
	Neglected    []CategoryStat        `json:"neglected"`
	Summary      CategoryHealthSummary `json:"summary"`
}

// CheckCategoryHealth analyzes how open tasks are spread across projects.
// A project is overloaded when it holds more than 15 tasks or more than 5
// aging ones, and neglected when every task it holds is aging. Projects
// with no open tasks are skipped. Distribution is sorted busiest first.
func CheckCategoryHealth(tasks []Task, projects []Project, today time.Time) CategoryHealthReport {
	report := CategoryHealthReport{
		Distribution: []CategoryStat{},
		Overloaded:   []CategoryStat{},
		Neglected:    []CategoryStat{},
	}

	tasksByProject := map[string][]Task{}
	for _, t := range tasks {
		tasksByProject[t.ProjectID] = append(tasksByProject[t.ProjectID], t)
	}

	total := len(tasks)
	for _, proj := range projects {
		projTasks := tasksByProject[proj.ID]
		if len(projTasks) == 0 {
			continue
		}

		aging := 0
		for _, t := range projTasks {
			if age, ok := TaskAgeDays(t, today); ok && age > agingCutoffDays {
				aging++
			}
		}

		percent := 0
		if total > 0 {
			percent = int(math.Round(float64(len(projTasks)) / float64(total) * 100))
		}
		report.Distribution = append(report.Distribution, CategoryStat{
			Name:    proj.Name,
			Count:   len(projTasks),
			Aging:   aging,
			Percent: percent,
		})
	}

	sort.SliceStable(report.Distribution, func(i, j int) bool {
		return report.Distribution[i].Count > report.Distribution[j].Count
	})

	totalAging := 0
	for _, stat := range report.Distribution {
		totalAging += stat.Aging
		if stat.Count > 15 || stat.Aging > 5 {
			report.Overloaded = append(report.Overloaded, stat)
		}
		if stat.Aging == stat.Count && stat.Count > 0 {
			report.Neglected = append(report.Neglected, stat)
		}
	}

	report.Summary = CategoryHealthSummary{
		TotalTasks:    total,
		TotalProjects: len(report.Distribution),
		TotalAging:    totalAging,
	}
	return report
}
