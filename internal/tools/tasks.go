package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/todoist"
	"github.com/mark3labs/mcp-go/mcp"
)

// CreateTaskTool adds a task, optionally with a natural-language due date,
// labels, and a target project.
type CreateTaskTool struct {
	writer TaskWriter
}

// NewCreateTaskTool creates the task creation tool.
func NewCreateTaskTool(writer TaskWriter) *CreateTaskTool {
	return &CreateTaskTool{writer: writer}
}

// Definition returns the MCP tool definition.
func (t *CreateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("create_task",
		mcp.WithDescription("Create a new task. Supports a natural-language due date ('tomorrow', 'next monday 9am'), labels, and a target project ID from list_projects."),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("The task title."),
		),
		mcp.WithString("due_string",
			mcp.Description("Due date in natural language, e.g. 'tomorrow' or 'every friday'."),
		),
		mcp.WithString("labels",
			mcp.Description("Comma-separated label names to apply."),
		),
		mcp.WithString("project_id",
			mcp.Description("Project to file the task under. Defaults to the inbox."),
		),
	)
}

// Handle executes the task creation.
func (t *CreateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.writer == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot create task."), nil
	}

	content := req.GetString("content", "")
	if content == "" {
		return mcp.NewToolResultError("'content' is required"), nil
	}

	args := todoist.CreateTaskArgs{
		Content:   content,
		DueString: req.GetString("due_string", ""),
		ProjectID: req.GetString("project_id", ""),
	}
	if raw := req.GetString("labels", ""); raw != "" {
		for _, label := range strings.Split(raw, ",") {
			if label = strings.TrimSpace(label); label != "" {
				args.Labels = append(args.Labels, label)
			}
		}
	}

	task, err := t.writer.CreateTask(ctx, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error creating task: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Created task: %s\nURL: %s", task.Content, task.URL)), nil
}

// ─── UpdateTaskTool ──────────────────────────────────────────────────────────

// UpdateTaskTool reschedules or retitles an existing task.
type UpdateTaskTool struct {
	writer TaskWriter
}

// NewUpdateTaskTool creates the task update tool.
func NewUpdateTaskTool(writer TaskWriter) *UpdateTaskTool {
	return &UpdateTaskTool{writer: writer}
}

// Definition returns the MCP tool definition.
func (t *UpdateTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("update_task",
		mcp.WithDescription("Update an existing task: reschedule it with a natural-language due date or change its title. Requires the task ID from query_tasks."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID from query results."),
		),
		mcp.WithString("due_string",
			mcp.Description("New due date in natural language, e.g. 'tomorrow' or 'Dec 29'."),
		),
		mcp.WithString("content",
			mcp.Description("New task title."),
		),
	)
}

// Handle executes the task update.
func (t *UpdateTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.writer == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot update task."), nil
	}

	id := req.GetString("task_id", "")
	if id == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}

	args := todoist.UpdateTaskArgs{
		DueString: req.GetString("due_string", ""),
		Content:   req.GetString("content", ""),
	}
	if args.DueString == "" && args.Content == "" {
		return mcp.NewToolResultText("Nothing to update. Provide due_string or content."), nil
	}

	task, err := t.writer.UpdateTask(ctx, id, args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error updating task: %v", err)), nil
	}

	due := "none"
	if task.Due != nil && task.Due.String != "" {
		due = task.Due.String
	}
	return mcp.NewToolResultText(fmt.Sprintf("Updated task: %s\nNew due: %s", task.Content, due)), nil
}

// ─── CompleteTaskTool ────────────────────────────────────────────────────────

// CompleteTaskTool closes a task.
type CompleteTaskTool struct {
	writer TaskWriter
}

// NewCompleteTaskTool creates the task completion tool.
func NewCompleteTaskTool(writer TaskWriter) *CompleteTaskTool {
	return &CompleteTaskTool{writer: writer}
}

// Definition returns the MCP tool definition.
func (t *CompleteTaskTool) Definition() mcp.Tool {
	return mcp.NewTool("complete_task",
		mcp.WithDescription("Mark a task as complete. Requires the task ID from query_tasks."),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("The task ID from query results."),
		),
	)
}

// Handle executes the task completion.
func (t *CompleteTaskTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.writer == nil {
		return mcp.NewToolResultText("Todoist is not configured. Cannot complete task."), nil
	}

	id := req.GetString("task_id", "")
	if id == "" {
		return mcp.NewToolResultError("'task_id' is required"), nil
	}

	if err := t.writer.CompleteTask(ctx, id); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error completing task: %v", err)), nil
	}
	return mcp.NewToolResultText("Task marked as complete!"), nil
}
