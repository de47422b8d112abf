package tools

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestCreateTaskTool_Handle(t *testing.T) {
	writer := &fakeTaskWriter{
		task: &gtd.Task{ID: "t1", Content: "Buy lumber", URL: "https://todoist.com/task/t1"},
	}
	tool := NewCreateTaskTool(writer)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"content":    "Buy lumber",
		"due_string": "saturday",
		"labels":     "home, errands",
		"project_id": "p2",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}

	if writer.createdArgs.Content != "Buy lumber" {
		t.Errorf("Content = %q", writer.createdArgs.Content)
	}
	if writer.createdArgs.DueString != "saturday" {
		t.Errorf("DueString = %q", writer.createdArgs.DueString)
	}
	if writer.createdArgs.ProjectID != "p2" {
		t.Errorf("ProjectID = %q", writer.createdArgs.ProjectID)
	}
	if !reflect.DeepEqual(writer.createdArgs.Labels, []string{"home", "errands"}) {
		t.Errorf("Labels = %v", writer.createdArgs.Labels)
	}
	if got := getResultText(result); got != "Created task: Buy lumber\nURL: https://todoist.com/task/t1" {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestCreateTaskTool_Handle_MissingContent(t *testing.T) {
	tool := NewCreateTaskTool(&fakeTaskWriter{})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("missing content should be a tool error")
	}
	if !strings.Contains(getResultText(result), "'content' is required") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}

func TestCreateTaskTool_Handle_NotConfigured(t *testing.T) {
	tool := NewCreateTaskTool(nil)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := getResultText(result); got != "Todoist is not configured. Cannot create task." {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestCreateTaskTool_Handle_WriteError(t *testing.T) {
	tool := NewCreateTaskTool(&fakeTaskWriter{err: errors.New("api down")})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"content": "Buy lumber"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("write failure should be a tool error")
	}
	if !strings.Contains(getResultText(result), "Error creating task: api down") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}

func TestUpdateTaskTool_Handle(t *testing.T) {
	writer := &fakeTaskWriter{
		task: &gtd.Task{ID: "t1", Content: "Buy lumber", Due: &gtd.Due{Date: "2025-01-16", String: "tomorrow"}},
	}
	tool := NewUpdateTaskTool(writer)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"task_id":    "t1",
		"due_string": "tomorrow",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if writer.updatedID != "t1" {
		t.Errorf("updated id = %q", writer.updatedID)
	}
	if writer.updatedArgs.DueString != "tomorrow" {
		t.Errorf("DueString = %q", writer.updatedArgs.DueString)
	}
	if got := getResultText(result); got != "Updated task: Buy lumber\nNew due: tomorrow" {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestUpdateTaskTool_Handle_MissingID(t *testing.T) {
	tool := NewUpdateTaskTool(&fakeTaskWriter{})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("missing task_id should be a tool error")
	}
	if !strings.Contains(getResultText(result), "'task_id' is required") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}

func TestUpdateTaskTool_Handle_NothingToUpdate(t *testing.T) {
	tool := NewUpdateTaskTool(&fakeTaskWriter{})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"task_id": "t1"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Error("empty update should be guidance, not an error")
	}
	if got := getResultText(result); got != "Nothing to update. Provide due_string or content." {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestUpdateTaskTool_Handle_ClearedDue(t *testing.T) {
	writer := &fakeTaskWriter{
		task: &gtd.Task{ID: "t1", Content: "Buy lumber"},
	}
	tool := NewUpdateTaskTool(writer)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"task_id": "t1",
		"content": "Buy cedar lumber",
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := getResultText(result); got != "Updated task: Buy lumber\nNew due: none" {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestCompleteTaskTool_Handle(t *testing.T) {
	writer := &fakeTaskWriter{}
	tool := NewCompleteTaskTool(writer)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"task_id": "t9"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if writer.completedID != "t9" {
		t.Errorf("completed id = %q", writer.completedID)
	}
	if got := getResultText(result); got != "Task marked as complete!" {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestCompleteTaskTool_Handle_MissingID(t *testing.T) {
	tool := NewCompleteTaskTool(&fakeTaskWriter{})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("missing task_id should be a tool error")
	}
}

func TestCompleteTaskTool_Handle_WriteError(t *testing.T) {
	tool := NewCompleteTaskTool(&fakeTaskWriter{err: errors.New("api down")})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"task_id": "t9"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("write failure should be a tool error")
	}
	if !strings.Contains(getResultText(result), "Error completing task: api down") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}
