package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// EndOfDayTool closes out the day: what slipped, what tomorrow looks like,
// and which delegated items deserve a nudge.
type EndOfDayTool struct {
	tasks TaskSource
}

// NewEndOfDayTool creates the end-of-day review tool.
func NewEndOfDayTool(tasks TaskSource) *EndOfDayTool {
	return &EndOfDayTool{tasks: tasks}
}

// Definition returns the MCP tool definition.
func (t *EndOfDayTool) Definition() mcp.Tool {
	return mcp.NewTool("run_end_of_day_review",
		mcp.WithDescription("Wrap up the day: list tasks that were due today or earlier and are still open (with rescheduling suggestions), build tomorrow's priority list, and check waiting-for items."),
	)
}

// Handle executes the end-of-day review.
func (t *EndOfDayTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run end-of-day review."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running end-of-day review: %v", err)), nil
	}

	now := timeNow()

	// Waiting-for tasks are handled in their own section, never in the
	// date buckets.
	var waiting []gtd.Task
	var overdue, dueThisWeek []agedTask
	var dueToday, dueTomorrow []gtd.Task
	for _, task := range tasks {
		if gtd.HasWaitingLabel(task) {
			waiting = append(waiting, task)
			continue
		}
		days, ok := gtd.DaysUntilDue(task, now)
		if !ok {
			continue
		}
		switch {
		case days < 0:
			overdue = append(overdue, agedTask{task: task, days: -days})
		case days == 0:
			dueToday = append(dueToday, task)
		case days == 1:
			dueTomorrow = append(dueTomorrow, task)
		case days <= 7:
			dueThisWeek = append(dueThisWeek, agedTask{task: task, days: days})
		}
	}
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].days > overdue[j].days
	})

	var b strings.Builder
	fmt.Fprintf(&b, "## End-of-Day Review - %s\n", now.Format("Monday, January 02"))
	fmt.Fprintf(&b, "*Generated at %s*\n\n", now.Format("3:04 PM"))

	if len(dueToday) > 0 || len(overdue) > 0 {
		b.WriteString("### Needs Rescheduling\n")
		b.WriteString("*These were due today/earlier but still open:*\n")
		for i, task := range dueToday {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- [ID:%s] %s -> suggest: tomorrow\n", task.ID, task.Content)
		}
		for i, at := range overdue {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- [ID:%s] %s (%dd overdue) -> suggest: tomorrow AM\n", at.task.ID, at.task.Content, at.days)
		}
		b.WriteString("\n*Use update_task to reschedule these.*\n\n")
	}

	b.WriteString("### TOMORROW'S PRIORITIES\n")
	type candidate struct {
		task   gtd.Task
		reason string
	}
	var candidates []candidate
	for _, task := range dueToday {
		candidates = append(candidates, candidate{task, "rescheduled from today"})
	}
	for _, at := range overdue {
		candidates = append(candidates, candidate{at.task, "overdue"})
	}
	for _, task := range dueTomorrow {
		candidates = append(candidates, candidate{task, "due tomorrow"})
	}
	if len(candidates) > 0 {
		for i, c := range candidates {
			if i >= 7 {
				break
			}
			fmt.Fprintf(&b, "%d. [ID:%s] %s (%s)\n", i+1, c.task.ID, c.task.Content, c.reason)
		}
	} else {
		b.WriteString("*No urgent tasks for tomorrow - check projects for strategic work*\n")
	}
	b.WriteString("\n")

	if len(waiting) > 0 {
		b.WriteString("### Waiting-For Items\n")
		b.WriteString("*Consider following up on these:*\n")
		for i, task := range waiting {
			if i >= 5 {
				break
			}
			age := ""
			if days, known := gtd.TaskAgeDays(task, now); known {
				age = fmt.Sprintf(" (%dd ago)", days)
			}
			fmt.Fprintf(&b, "- [ID:%s] %s%s\n", task.ID, task.Content, age)
		}
		b.WriteString("\n")
	}

	if len(dueThisWeek) > 0 {
		b.WriteString("### Coming This Week\n")
		for i, at := range dueThisWeek {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- %s: [ID:%s] %s\n", dayName(now, at.days), at.task.ID, at.task.Content)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	b.WriteString("**Quick Actions:**\n")
	b.WriteString("1. Reschedule slipped tasks to tomorrow\n")
	b.WriteString("2. Mark any secretly-completed tasks as done\n")
	b.WriteString("3. Add any new tasks that came up today")

	return mcp.NewToolResultText(b.String()), nil
}
