package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/HendryAvila/rubberduck/internal/config"
	"github.com/HendryAvila/rubberduck/internal/gcal"
	"github.com/HendryAvila/rubberduck/internal/metadata"
	"github.com/HendryAvila/rubberduck/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review <morning|eod|weekly>",
	Short: "Print a planning digest",
	Long: `Prints the digest the assistant sees over MCP: morning runs the daily
plan, eod the end-of-day review, weekly the one-shot weekly review.`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	client, err := taskClient(cfg)
	if err != nil {
		return err
	}

	// Calendar is optional for the morning plan; the digest drops the
	// calendar section when no source is wired.
	var events tools.EventSource
	if gc, err := gcal.NewClient(cmd.Context(), cfg.CalendarID); err == nil && gc != nil {
		events = gc
	}

	var handle func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	switch args[0] {
	case "morning":
		handle = tools.NewMorningPlanningTool(client, events).Handle
	case "eod":
		handle = tools.NewEndOfDayTool(client).Handle
	case "weekly":
		handle = tools.NewWeeklyReviewTool(client, metadata.NewStore(cfg.StateDir)).Handle
	default:
		return fmt.Errorf("unknown review %q (use morning, eod, or weekly)", args[0])
	}

	result, err := handle(cmd.Context(), mcp.CallToolRequest{})
	if err != nil {
		return err
	}
	text := resultText(result)
	if result.IsError {
		return errors.New(text)
	}
	fmt.Println(text)
	return nil
}

// resultText extracts the text content from a tool result.
func resultText(result *mcp.CallToolResult) string {
	if result == nil {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}
