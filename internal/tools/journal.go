package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/HendryAvila/rubberduck/internal/journal"
	"github.com/mark3labs/mcp-go/mcp"
)

// JournalRecentTool reads back the newest journal entries, the short-term
// memory of past conversations.
type JournalRecentTool struct {
	reader JournalReader
}

// NewJournalRecentTool creates the recent-entries journal tool.
func NewJournalRecentTool(reader JournalReader) *JournalRecentTool {
	return &JournalRecentTool{reader: reader}
}

// Definition returns the MCP tool definition.
func (t *JournalRecentTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_recent",
		mcp.WithDescription("Read the newest conversation journal entries, newest first. Useful for picking up the thread of a previous session."),
		mcp.WithNumber("limit",
			mcp.Description("How many entries to return (default 10)."),
		),
	)
}

// Handle executes the recent-entries read.
func (t *JournalRecentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.reader == nil {
		return mcp.NewToolResultText("Journal is not available."), nil
	}

	limit := intArg(req, "limit", 10)
	entries, err := t.reader.Recent(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error reading journal: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("Journal is empty."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Last %d journal entries (newest first):", len(entries))
	for _, e := range entries {
		b.WriteString(journalLine(e))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// ─── JournalSearchTool ───────────────────────────────────────────────────────

// JournalSearchTool searches the journal full-text index.
type JournalSearchTool struct {
	reader JournalReader
}

// NewJournalSearchTool creates the journal search tool.
func NewJournalSearchTool(reader JournalReader) *JournalSearchTool {
	return &JournalSearchTool{reader: reader}
}

// Definition returns the MCP tool definition.
func (t *JournalSearchTool) Definition() mcp.Tool {
	return mcp.NewTool("journal_search",
		mcp.WithDescription("Full-text search across the conversation journal. Use it to recall past decisions, e.g. 'what did we decide about the deck project'."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Search terms."),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default 10)."),
		),
	)
}

// Handle executes the journal search.
func (t *JournalSearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.reader == nil {
		return mcp.NewToolResultText("Journal is not available."), nil
	}

	query := req.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}

	limit := intArg(req, "limit", 10)
	entries, err := t.reader.Search(query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error searching journal: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No journal entries match '%s'.", query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d journal entries matching '%s':", len(entries), query)
	for _, e := range entries {
		b.WriteString(journalLine(e))
	}
	return mcp.NewToolResultText(b.String()), nil
}

// journalLine renders one entry with its timestamp and kind, content cut
// to keep listings scannable.
func journalLine(e journal.Entry) string {
	return fmt.Sprintf("\n- [%s] (%s) %s", e.TS, e.Kind, snippet(e.Content, 200))
}
