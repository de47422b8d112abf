package tools

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/HendryAvila/rubberduck/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

func TestJournalRecentTool_Handle_NotAvailable(t *testing.T) {
	tool := NewJournalRecentTool(nil)

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := getResultText(result); got != "Journal is not available." {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestJournalRecentTool_Handle_Empty(t *testing.T) {
	tool := NewJournalRecentTool(&fakeJournalReader{})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := getResultText(result); got != "Journal is empty." {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestJournalRecentTool_Handle_Listing(t *testing.T) {
	reader := &fakeJournalReader{
		entries: []journal.Entry{
			{ID: 2, TS: "2025-01-15T14:00:00Z", Kind: "assistant_message", Content: "Rescheduled the invoice task."},
			{ID: 1, TS: "2025-01-15T13:58:00Z", Kind: "user_message", Content: "Push the invoice to tomorrow."},
		},
	}
	tool := NewJournalRecentTool(reader)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"limit": float64(5)}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)

	if reader.gotLimit != 5 {
		t.Errorf("limit = %d, want 5", reader.gotLimit)
	}
	if !strings.Contains(text, "Last 2 journal entries (newest first):") {
		t.Errorf("missing count line: %s", text)
	}
	if !strings.Contains(text, "\n- [2025-01-15T14:00:00Z] (assistant_message) Rescheduled the invoice task.") {
		t.Errorf("entry line wrong: %s", text)
	}
}

func TestJournalRecentTool_Handle_DefaultLimit(t *testing.T) {
	reader := &fakeJournalReader{}
	tool := NewJournalRecentTool(reader)

	if _, err := tool.Handle(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if reader.gotLimit != 10 {
		t.Errorf("default limit = %d, want 10", reader.gotLimit)
	}
}

func TestJournalRecentTool_Handle_ReadError(t *testing.T) {
	tool := NewJournalRecentTool(&fakeJournalReader{err: errors.New("db locked")})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("read failure should be a tool error")
	}
	if !strings.Contains(getResultText(result), "Error reading journal: db locked") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}

func TestJournalSearchTool_Handle_MissingQuery(t *testing.T) {
	tool := NewJournalSearchTool(&fakeJournalReader{})

	result, err := tool.Handle(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("missing query should be a tool error")
	}
	if !strings.Contains(getResultText(result), "'query' is required") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}

func TestJournalSearchTool_Handle_NoMatches(t *testing.T) {
	tool := NewJournalSearchTool(&fakeJournalReader{})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"query": "deck"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if got := getResultText(result); got != "No journal entries match 'deck'." {
		t.Errorf("unexpected text: %s", got)
	}
}

func TestJournalSearchTool_Handle_Listing(t *testing.T) {
	reader := &fakeJournalReader{
		entries: []journal.Entry{
			{ID: 7, TS: "2025-01-10T09:00:00Z", Kind: "user_message", Content: "Order decking screws before the weekend."},
		},
	}
	tool := NewJournalSearchTool(reader)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"query": "deck"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)

	if reader.gotQuery != "deck" {
		t.Errorf("query = %q, want deck", reader.gotQuery)
	}
	if !strings.Contains(text, "Found 1 journal entries matching 'deck':") {
		t.Errorf("missing count line: %s", text)
	}
	if !strings.Contains(text, "Order decking screws before the weekend.") {
		t.Errorf("entry content missing: %s", text)
	}
}

func TestJournalSearchTool_Handle_SnipsLongContent(t *testing.T) {
	long := strings.Repeat("a", 250)
	reader := &fakeJournalReader{
		entries: []journal.Entry{
			{ID: 1, TS: "2025-01-10T09:00:00Z", Kind: "user_message", Content: long},
		},
	}
	tool := NewJournalSearchTool(reader)

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"query": "aaa"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	text := getResultText(result)

	if strings.Contains(text, long) {
		t.Error("long content should be snipped")
	}
	if !strings.Contains(text, strings.Repeat("a", 200)+"...") {
		t.Errorf("snippet marker missing: %s", text)
	}
}

func TestJournalSearchTool_Handle_SearchError(t *testing.T) {
	tool := NewJournalSearchTool(&fakeJournalReader{err: errors.New("db locked")})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]interface{}{"query": "deck"}

	result, err := tool.Handle(context.Background(), req)
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(result) {
		t.Error("search failure should be a tool error")
	}
	if !strings.Contains(getResultText(result), "Error searching journal: db locked") {
		t.Errorf("unexpected error text: %s", getResultText(result))
	}
}
