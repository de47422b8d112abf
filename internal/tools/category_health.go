package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// CategoryHealthTool charts how open tasks distribute across projects and
// flags overloaded or fully aging ones.
type CategoryHealthTool struct {
	tasks TaskSource
}

// NewCategoryHealthTool creates the category health tool.
func NewCategoryHealthTool(tasks TaskSource) *CategoryHealthTool {
	return &CategoryHealthTool{tasks: tasks}
}

// Definition returns the MCP tool definition.
func (t *CategoryHealthTool) Definition() mcp.Tool {
	return mcp.NewTool("run_category_health",
		mcp.WithDescription("Analyze how open tasks distribute across projects. Flags overloaded projects (too many tasks or too many aging) and projects where every task has gone stale."),
	)
}

// Handle executes the category health analysis.
func (t *CategoryHealthTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot run category health."), nil
	}

	tasks, err := t.tasks.OpenTasks(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running category health: %v", err)), nil
	}
	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error running category health: %v", err)), nil
	}

	report := gtd.CheckCategoryHealth(tasks, projects, timeNow())
	return mcp.NewToolResultText(renderCategoryHealth(report)), nil
}

func renderCategoryHealth(report gtd.CategoryHealthReport) string {
	var b strings.Builder
	b.WriteString("## Category Health\n\n")
	b.WriteString("### Task Distribution\n\n")

	for i, stat := range report.Distribution {
		if i >= 10 {
			break
		}
		bar := strings.Repeat("█", barLen(stat.Percent))
		aging := ""
		if stat.Aging > 0 {
			aging = fmt.Sprintf(" (%d aging)", stat.Aging)
		}
		fmt.Fprintf(&b, "- **%s**: %d tasks (%d%%) %s%s\n", stat.Name, stat.Count, stat.Percent, bar, aging)
	}
	if len(report.Distribution) > 10 {
		remaining := 0
		for _, stat := range report.Distribution[10:] {
			remaining += stat.Count
		}
		fmt.Fprintf(&b, "- *...and %d more projects with %d tasks*\n", len(report.Distribution)-10, remaining)
	}
	b.WriteString("\n")

	if len(report.Overloaded) > 0 {
		b.WriteString("### ⚠️ Potentially Overloaded\n")
		b.WriteString("*Consider: defer some tasks, break into smaller chunks*\n\n")
		for i, stat := range report.Overloaded {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- **%s**: %d tasks, %d aging\n", stat.Name, stat.Count, stat.Aging)
		}
		b.WriteString("\n")
	}

	if len(report.Neglected) > 0 {
		b.WriteString("### 🔴 All Tasks Aging\n")
		b.WriteString("*No recent activity - either activate or move to backburner*\n\n")
		for i, stat := range report.Neglected {
			if i >= 5 {
				break
			}
			fmt.Fprintf(&b, "- **%s**: %d tasks, all 2+ weeks old\n", stat.Name, stat.Count)
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n")
	fmt.Fprintf(&b, "**Summary:** %d tasks across %d projects (%d aging)",
		report.Summary.TotalTasks, report.Summary.TotalProjects, report.Summary.TotalAging)
	return b.String()
}

// barLen scales a percentage to a bar of at most 20 blocks.
func barLen(percent int) int {
	n := percent / 5
	if n > 20 {
		return 20
	}
	if n < 0 {
		return 0
	}
	return n
}
