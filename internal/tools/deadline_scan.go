package tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// DeadlineScanTool surfaces overdue items and upcoming deadlines, with a
// decision prompt attached to everything overdue.
type DeadlineScanTool struct {
	tasks TaskSource
}

// NewDeadlineScanTool creates the deadline scan tool.
func NewDeadlineScanTool(tasks TaskSource) *DeadlineScanTool {
	return &DeadlineScanTool{tasks: tasks}
}

// Definition returns the MCP tool definition.
func (t *DeadlineScanTool) Definition() mcp.Tool {
	return mcp.NewTool("run_deadline_scan",
		mcp.WithDescription("Scan open tasks for deadline issues: overdue items (each needs a decision: reschedule, complete now, or delete) and tasks due within the next week. First step of the weekly review, also useful standalone."),
	)
}

// Handle executes the deadline scan.
func (t *DeadlineScanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run deadline scan."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running deadline scan: %v", err)), nil
	}
	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running deadline scan: %v", err)), nil
	}

	report := gtd.ScanDeadlines(tasks, projects, timeNow())
	return mcp.NewToolResultText(renderDeadlineScan(report, timeNow())), nil
}

func renderDeadlineScan(report gtd.DeadlineReport, today time.Time) string {
	var b strings.Builder
	b.WriteString("## Deadline Scan\n\n")

	if len(report.Overdue) > 0 {
		b.WriteString("### OVERDUE - Decision Required\n")
		b.WriteString("*For each: reschedule realistically, complete now, or delete if no longer needed*\n\n")
		for i, item := range report.Overdue {
			if i >= 10 {
				break
			}
			fmt.Fprintf(&b, "- [ ] [ID:%s] **%s** (%dd overdue) - %s\n", item.ID, item.Content, item.DaysOverdue, item.Project)
		}
		b.WriteString("\n")
	} else {
		b.WriteString("### OVERDUE\n")
		b.WriteString("*None - great job staying on top of deadlines!*\n\n")
	}

	if len(report.DueToday) > 0 || len(report.DueThisWeek) > 0 {
		b.WriteString("### DUE THIS WEEK\n")
		b.WriteString("*Schedule specific time blocks for these*\n\n")
		shown := 0
		for _, item := range report.DueToday {
			if shown >= 10 {
				break
			}
			fmt.Fprintf(&b, "- [ ] [ID:%s] **%s** (due Today) - %s\n", item.ID, item.Content, item.Project)
			shown++
		}
		for _, item := range report.DueThisWeek {
			if shown >= 10 {
				break
			}
			fmt.Fprintf(&b, "- [ ] [ID:%s] **%s** (due %s) - %s\n", item.ID, item.Content, dayName(today, item.DaysUntil), item.Project)
			shown++
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "**Summary:** %d overdue, %d due today, %d due this week",
		report.Summary.Overdue, report.Summary.DueToday, report.Summary.DueThisWeek)
	return b.String()
}
