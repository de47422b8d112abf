package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestListProjectsTool_Handle_Hierarchy(t *testing.T) {
	source := &fakeTaskSource{
		tasks: []gtd.Task{
			{ID: "t1", Content: "a", ProjectID: "p1"},
			{ID: "t2", Content: "b", ProjectID: "p1"},
			{ID: "t3", Content: "c", ProjectID: "p1"},
			{ID: "t4", Content: "d", ProjectID: "p2"},
			{ID: "t5", Content: "e", ProjectID: "p2"},
		},
		projects: []gtd.Project{
			{ID: "p1", Name: "Work"},
			{ID: "p2", Name: "Deck", ParentID: "p1"},
			{ID: "p3", Name: "Home"},
		},
	}
	tool := NewListProjectsTool(source)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)

	if !strings.Contains(text, "Projects (indented = sub-project):") {
		t.Errorf("missing listing header: %s", text)
	}
	if !strings.Contains(text, "\n- [ID:p1] Work (3 tasks)") {
		t.Errorf("root project line wrong: %s", text)
	}
	if !strings.Contains(text, "\n  - [ID:p2] Deck (sub-project of Work) (2 tasks)") {
		t.Errorf("sub-project line wrong: %s", text)
	}
	if !strings.Contains(text, "\n- [ID:p3] Home (0 tasks)") {
		t.Errorf("empty project line wrong: %s", text)
	}
}

func TestListProjectsTool_Handle_NotConfigured(t *testing.T) {
	tool := NewListProjectsTool(nil)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := getResultText(result); got != "Todoist is not configured." {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestListProjectsTool_Handle_FetchError(t *testing.T) {
	tool := NewListProjectsTool(&fakeTaskSource{err: errors.New("api down")})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("fetch failure should be a tool error")
	}
	if !strings.Contains(getResultText(result), "Error listing projects: api down") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}

func TestUpdateProjectTool_Handle(t *testing.T) {
	writer := &fakeTaskWriter{
		project: &gtd.Project{ID: "p1", Name: "Deck Rebuild", IsFavorite: true},
	}
	tool := NewUpdateProjectTool(writer)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id":  "p1",
		"name":        "Deck Rebuild",
		"is_favorite": true,
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if writer.updatedProject != "p1" {
		t.Errorf("updated project id = %q", writer.updatedProject)
	}
	if writer.projectArgs.Name != "Deck Rebuild" {
		t.Errorf("Name = %q", writer.projectArgs.Name)
	}
	if writer.projectArgs.IsFavorite == nil || !*writer.projectArgs.IsFavorite {
		t.Errorf("IsFavorite = %v, want true", writer.projectArgs.IsFavorite)
	}
	if got := getResultText(result); got != "Updated project: Deck Rebuild\nID: p1\nFavorite: true" {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestUpdateProjectTool_Handle_UnfavoriteOnly(t *testing.T) {
	writer := &fakeTaskWriter{
		project: &gtd.Project{ID: "p1", Name: "Deck"},
	}
	tool := NewUpdateProjectTool(writer)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{
		"project_id":  "p1",
		"is_favorite": false,
	}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("expected success, got error: %s", getResultText(result))
	}
	if writer.projectArgs.IsFavorite == nil || *writer.projectArgs.IsFavorite {
		t.Errorf("explicit false must reach the API, got %v", writer.projectArgs.IsFavorite)
	}
}

func TestUpdateProjectTool_Handle_MissingID(t *testing.T) {
	tool := NewUpdateProjectTool(&fakeTaskWriter{})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("missing project_id should be a tool error")
	}
}

func TestUpdateProjectTool_Handle_NothingToUpdate(t *testing.T) {
	tool := NewUpdateProjectTool(&fakeTaskWriter{})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"project_id": "p1"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(result) {
		t.Error("empty update should be guidance, not an error")
	}
	if got := getResultText(result); got != "Please provide a new name or favorite status to update." {
		t.Errorf("unexpected text: %s", got)
	}
}
