package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

// QueryTasksTool lists tasks matching a Todoist filter string, with the
// IDs and project paths follow-up operations need.
type QueryTasksTool struct {
	tasks TaskSource
}

// NewQueryTasksTool creates the task query tool.
func NewQueryTasksTool(tasks TaskSource) *QueryTasksTool {
	return &QueryTasksTool{tasks: tasks}
}

// Definition returns the MCP tool definition.
func (t *QueryTasksTool) Definition() mcp.Tool {
	return mcp.NewTool("query_tasks",
		mcp.WithDescription("Query tasks with a Todoist filter string. Common filters: 'today' (due today), 'overdue', '@label' (by label), '#Project' (by project), 'all' (every open task). Listings include task IDs for update and complete operations."),
		mcp.WithString("filter",
			mcp.Description("Todoist filter string. Empty or 'all' lists every open task."),
			mcp.DefaultString("all"),
		),
	)
}

// Handle executes the task query.
func (t *QueryTasksTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.tasks == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot query tasks."), nil
	}

	filter := req.GetString("filter", "all")

	projects, err := t.tasks.Projects(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error querying Todoist: %v", err)), nil
	}
	paths := projectPaths(projects)

	var list []gtd.Task
	if filter == "" || filter == "all" {
		list, err = t.tasks.OpenTasks(ctx)
	} else {
		list, err = t.tasks.TasksByFilter(ctx, filter)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error querying Todoist: %v", err)), nil
	}

	if len(list) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No tasks found matching '%s'.", filter)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d task(s):", len(list))
	for i, task := range list {
		if i >= 20 {
			break
		}
		fmt.Fprintf(&b, "\n- [%s] [ID:%s] %s%s%s",
			projectPath(task.ProjectID, paths), task.ID, task.Content, dueInfo(task), labelInfo(task))
	}
	if len(list) > 20 {
		fmt.Fprintf(&b, "\n... and %d more", len(list)-20)
	}
	return mcp.NewToolResultText(b.String()), nil
}
