package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// WeeklyReviewTool renders the whole weekly review as a single digest, for
// when there is no appetite for the step-by-step conductor.
type WeeklyReviewTool struct {
	tasks TaskSource
	meta  MetadataSource
}

// NewWeeklyReviewTool creates the one-shot weekly review tool.
func NewWeeklyReviewTool(tasks TaskSource, meta MetadataSource) *WeeklyReviewTool {
	return &WeeklyReviewTool{tasks: tasks, meta: meta}
}

// Definition returns the MCP tool definition.
func (t *WeeklyReviewTool) Definition() mcp.Tool {
	return mcp.NewTool("run_weekly_review",
		mcp.WithDescription("Run the full weekly review in one shot: overdue and upcoming deadlines, project health by status, waiting-for items with ages, and recommended actions. Use the conductor instead to walk it step by step."),
	)
}

// Handle executes the one-shot weekly review.
func (t *WeeklyReviewTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run weekly review."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running weekly review: %v", err)), nil
	}
	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running weekly review: %v", err)), nil
	}
	completions, err := t.tasks.CompletedSince(ctx, timeNow().AddDate(0, 0, -7))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running weekly review: %v", err)), nil
	}

	var categories map[string]bool
	if t.meta != nil {
		categories = t.meta.Categories()
	}

	today := timeNow()
	deadlines := gtd.ScanDeadlines(tasks, projects, today)
	health := gtd.CheckProjects(tasks, projects, completions, categories)

	digest := renderWeeklyDigest(digestData{
		today:       today,
		tasks:       tasks,
		projects:    projects,
		completions: completions,
		deadlines:   deadlines,
		health:      health,
	})
	return mcp.NewToolResultText(digest), nil
}

type digestData struct {
	today       time.Time
	tasks       []gtd.Task
	projects    []gtd.Project
	completions []gtd.Completion
	deadlines   gtd.DeadlineReport
	health      gtd.ProjectReport
}

func renderWeeklyDigest(d digestData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Weekly Review - Week of %s\n\n", d.today.Format("January 02, 2006"))

	byID := gtd.ProjectsByID(d.projects)
	var waiting []gtd.Task
	for _, task := range d.tasks {
		if gtd.HasWaitingLabel(task) {
			waiting = append(waiting, task)
		}
	}

	if len(d.deadlines.Overdue) > 0 {
		b.WriteString("### OVERDUE ITEMS\n")
		for i, item := range d.deadlines.Overdue {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&b, "- [%s] [ID:%s] %s (%dd overdue)\n", item.Project, item.ID, item.Content, item.DaysOverdue)
		}
		b.WriteString("\n")
	}

	dueCount := len(d.deadlines.DueToday) + len(d.deadlines.DueThisWeek)
	if dueCount > 0 {
		b.WriteString("### DUE THIS WEEK\n")
		shown := 0
		for _, item := range d.deadlines.DueToday {
			if shown >= 10 {
				break
			}
			fmt.Fprintf(&b, "- %s: [%s] %s\n", d.today.Format("Monday"), item.Project, item.Content)
			shown++
		}
		for _, item := range d.deadlines.DueThisWeek {
			if shown >= 10 {
				break
			}
			fmt.Fprintf(&b, "- %s: [%s] %s\n", dayName(d.today, item.DaysUntil), item.Project, item.Content)
			shown++
		}
		b.WriteString("\n")
	}

	b.WriteString("### PROJECT HEALTH\n\n")
	writeHealthSections(&b, d.health)

	if len(waiting) > 0 {
		b.WriteString("### WAITING-FOR ITEMS\n")
		b.WriteString("*Review for follow-up:*\n")
		for i, task := range waiting {
			if i >= 8 {
				break
			}
			name := "Inbox"
			if p, ok := byID[task.ProjectID]; ok {
				name = p.Name
			}
			fmt.Fprintf(&b, "- [%s] %s%s\n", name, task.Content, waitingAge(task, d.today))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("**Summary:**\n")
	fmt.Fprintf(&b, "- Total open tasks: %d\n", len(d.tasks))
	fmt.Fprintf(&b, "- Completed this week: %d\n", len(d.completions))
	fmt.Fprintf(&b, "- Overdue: %d\n", len(d.deadlines.Overdue))
	fmt.Fprintf(&b, "- Due this week: %d\n", dueCount)
	fmt.Fprintf(&b, "- Waiting-for: %d\n", len(waiting))
	fmt.Fprintf(&b, "- Projects: %d active, %d stalled, %d waiting, %d incomplete, %d someday-maybe\n",
		d.health.Summary.Active, d.health.Summary.Stalled, d.health.Summary.Waiting,
		d.health.Summary.Incomplete, d.health.Summary.SomedayMaybe)
	b.WriteString("\n**Recommended Actions:**\n")

	n := 1
	if len(d.deadlines.Overdue) > 0 {
		fmt.Fprintf(&b, "%d. Address overdue items first\n", n)
		n++
	}
	if d.health.Summary.Stalled > 0 {
		fmt.Fprintf(&b, "%d. Make progress on stalled projects (they have next actions)\n", n)
		n++
	}
	if d.health.Summary.Incomplete > 0 {
		fmt.Fprintf(&b, "%d. Define next actions for incomplete projects\n", n)
		n++
	}
	if len(waiting) > 0 {
		fmt.Fprintf(&b, "%d. Check waiting-for items older than 2 weeks\n", n)
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeHealthSections(b *strings.Builder, health gtd.ProjectReport) {
	if len(health.Active) > 0 {
		b.WriteString("**ACTIVE** (completed tasks this week):\n")
		for i, p := range health.Active {
			if i >= 6 {
				break
			}
			fmt.Fprintf(b, "- ✓ %s: %d done, %d open\n", p.Name, p.CompletedThisWeek, p.OpenTasks)
		}
		b.WriteString("\n")
	}

	if len(health.Stalled) > 0 {
		b.WriteString("**STALLED** (next actions exist but no recent progress):\n")
		for i, p := range health.Stalled {
			if i >= 5 {
				break
			}
			next := ""
			if p.NextAction != nil {
				next = " -> " + truncate(p.NextAction.Content, 40)
			}
			fmt.Fprintf(b, "- ⚠️ %s: %d tasks%s\n", p.Name, p.OpenTasks, next)
		}
		b.WriteString("\n")
	}

	if len(health.Waiting) > 0 {
		b.WriteString("**WAITING** (all tasks waiting-for):\n")
		for i, p := range health.Waiting {
			if i >= 5 {
				break
			}
			fmt.Fprintf(b, "- ⏳ %s: %d waiting-for items\n", p.Name, p.WaitingTasks)
		}
		b.WriteString("\n")
	}

	if len(health.Incomplete) > 0 {
		b.WriteString("**INCOMPLETE** (no actionable next actions):\n")
		for i, p := range health.Incomplete {
			if i >= 5 {
				break
			}
			fmt.Fprintf(b, "- 🔴 %s: needs next action defined\n", p.Name)
		}
		b.WriteString("\n")
	}

	if len(health.SomedayMaybe) > 0 {
		b.WriteString("**SOMEDAY-MAYBE** (on hold, not assessed):\n")
		for i, p := range health.SomedayMaybe {
			if i >= 5 {
				break
			}
			fmt.Fprintf(b, "- 💤 %s: %d tasks\n", p.Name, p.OpenTasks)
		}
		if len(health.SomedayMaybe) > 5 {
			fmt.Fprintf(b, "  ... and %d more\n", len(health.SomedayMaybe)-5)
		}
		b.WriteString("\n")
	}
}

// waitingAge annotates a waiting-for item with how long it has sat, and
// escalating punctuation once a follow-up is overdue.
func waitingAge(t gtd.Task, today time.Time) string {
	age, known := gtd.TaskAgeDays(t, today)
	if !known {
		return ""
	}
	switch {
	case age > 14:
		return fmt.Sprintf(" !! %dd - follow up!", age)
	case age > 7:
		return fmt.Sprintf(" (%dd - gentle check-in)", age)
	default:
		return fmt.Sprintf(" (%dd)", age)
	}
}
