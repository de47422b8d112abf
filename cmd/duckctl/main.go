// Duckctl: operator CLI for the rubberduck GTD assistant.
//
// Runs the assistant's categorizers directly against Todoist and Google
// Calendar and prints the reports as JSON, so shell scripts, cron jobs,
// and agent skills can consume them without an MCP round-trip.
//
// Usage:
//
//	duckctl scan-deadlines
//	duckctl category-health
//	duckctl calendar-range --days-back 7 --days-forward 7
//	duckctl review morning
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/HendryAvila/rubberduck/internal/config"
	"github.com/HendryAvila/rubberduck/internal/gcal"
	"github.com/HendryAvila/rubberduck/internal/todoist"
	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "duckctl",
	Short: "Operator CLI for the rubberduck GTD assistant",
	Long: `duckctl runs the assistant's GTD categorizers and prints the reports as
JSON. The review subcommands print the same markdown digests the
assistant sees over MCP.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		blob, _ := json.Marshal(map[string]string{"error": err.Error()})
		fmt.Fprintln(os.Stderr, string(blob))
		os.Exit(1)
	}
}

// taskClient returns a Todoist client, or an error when no token is set.
// Unlike the MCP tools, which degrade to explanatory text, the CLI fails
// hard so scripts notice.
func taskClient(cfg config.Config) (*todoist.Client, error) {
	if cfg.TodoistToken == "" {
		return nil, errors.New("TODOIST_API_TOKEN is not set")
	}
	return todoist.NewClient(cfg.TodoistToken), nil
}

// calendarClient returns a Calendar client, or an error when no service
// account credential is configured.
func calendarClient(ctx context.Context, cfg config.Config) (*gcal.Client, error) {
	client, err := gcal.NewClient(ctx, cfg.CalendarID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, errors.New("Google Calendar is not configured: set GOOGLE_SERVICE_ACCOUNT_JSON or GOOGLE_SERVICE_ACCOUNT_FILE")
	}
	return client, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	blob, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(blob))
	return nil
}

// stamp formats a report's generated_at value.
func stamp(now time.Time) string {
	return now.Format(time.RFC3339)
}
