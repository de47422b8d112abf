package main

import (
	"time"

	"github.com/HendryAvila/rubberduck/internal/config"
	"github.com/HendryAvila/rubberduck/internal/gcal"
	"github.com/HendryAvila/rubberduck/internal/gtd"
	"github.com/HendryAvila/rubberduck/internal/metadata"
	"github.com/spf13/cobra"
)

var scanDeadlinesCmd = &cobra.Command{
	Use:   "scan-deadlines",
	Short: "Report overdue tasks and upcoming deadlines",
	RunE:  runScanDeadlines,
}

var checkWaitingCmd = &cobra.Command{
	Use:   "check-waiting",
	Short: "Report waiting-for items grouped by follow-up urgency",
	RunE:  runCheckWaiting,
}

var checkSomedayCmd = &cobra.Command{
	Use:   "check-someday",
	Short: "Report someday/maybe and backburner items by age",
	RunE:  runCheckSomeday,
}

var checkProjectsCmd = &cobra.Command{
	Use:   "check-projects",
	Short: "Classify every project as active, stalled, waiting, or incomplete",
	RunE:  runCheckProjects,
}

var categoryHealthCmd = &cobra.Command{
	Use:   "category-health",
	Short: "Report task distribution and aging across projects",
	RunE:  runCategoryHealth,
}

var calendarTodayCmd = &cobra.Command{
	Use:   "calendar-today",
	Short: "List today's calendar events",
	RunE:  runCalendarToday,
}

var calendarRangeCmd = &cobra.Command{
	Use:   "calendar-range",
	Short: "List calendar events in a day window around today",
	RunE:  runCalendarRange,
}

func init() {
	calendarRangeCmd.Flags().Int("days-back", 7, "days before today to include")
	calendarRangeCmd.Flags().Int("days-forward", 7, "days after today to include")

	rootCmd.AddCommand(
		scanDeadlinesCmd,
		checkWaitingCmd,
		checkSomedayCmd,
		checkProjectsCmd,
		categoryHealthCmd,
		calendarTodayCmd,
		calendarRangeCmd,
	)
}

func runScanDeadlines(cmd *cobra.Command, _ []string) error {
	client, err := taskClient(config.Load())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	tasks, err := client.OpenTasks(ctx)
	if err != nil {
		return err
	}
	projects, err := client.Projects(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	report := gtd.ScanDeadlines(tasks, projects, now)
	report.GeneratedAt = stamp(now)
	return printJSON(report)
}

func runCheckWaiting(cmd *cobra.Command, _ []string) error {
	client, err := taskClient(config.Load())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	tasks, err := client.OpenTasks(ctx)
	if err != nil {
		return err
	}
	projects, err := client.Projects(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	report := gtd.CheckWaiting(tasks, projects, now)
	report.GeneratedAt = stamp(now)
	return printJSON(report)
}

func runCheckSomeday(cmd *cobra.Command, _ []string) error {
	client, err := taskClient(config.Load())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	tasks, err := client.OpenTasks(ctx)
	if err != nil {
		return err
	}
	projects, err := client.Projects(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	report := gtd.CheckSomeday(tasks, projects, now)
	report.GeneratedAt = stamp(now)
	return printJSON(report)
}

func runCheckProjects(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()
	client, err := taskClient(cfg)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	tasks, err := client.OpenTasks(ctx)
	if err != nil {
		return err
	}
	projects, err := client.Projects(ctx)
	if err != nil {
		return err
	}
	now := time.Now()
	completions, err := client.CompletedSince(ctx, now.AddDate(0, 0, -7))
	if err != nil {
		return err
	}

	categories := metadata.NewStore(cfg.StateDir).Categories()
	report := gtd.CheckProjects(tasks, projects, completions, categories)
	report.GeneratedAt = stamp(now)
	return printJSON(report)
}

func runCategoryHealth(cmd *cobra.Command, _ []string) error {
	client, err := taskClient(config.Load())
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	tasks, err := client.OpenTasks(ctx)
	if err != nil {
		return err
	}
	projects, err := client.Projects(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	report := gtd.CheckCategoryHealth(tasks, projects, now)
	report.GeneratedAt = stamp(now)
	return printJSON(report)
}

func runCalendarToday(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client, err := calendarClient(ctx, config.Load())
	if err != nil {
		return err
	}

	now := time.Now()
	win, err := gcal.WindowFor("today", now)
	if err != nil {
		return err
	}
	return printEvents(cmd, client, win, now)
}

func runCalendarRange(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	client, err := calendarClient(ctx, config.Load())
	if err != nil {
		return err
	}

	daysBack, _ := cmd.Flags().GetInt("days-back")
	daysForward, _ := cmd.Flags().GetInt("days-forward")

	now := time.Now()
	win := gcal.RangeWindow(daysBack, daysForward, now)
	return printEvents(cmd, client, win, now)
}

// printEvents fetches the window's events and prints them with the range
// the report covers.
func printEvents(cmd *cobra.Command, client *gcal.Client, win gcal.Window, now time.Time) error {
	events, err := client.EventsBetween(cmd.Context(), win.From, win.To, gcal.DefaultMaxResults)
	if err != nil {
		return err
	}

	report := gtd.SplitEvents(events)
	report.GeneratedAt = stamp(now)
	report.Range = &gtd.EventRange{
		From: win.From.Format(time.RFC3339),
		To:   win.To.Format(time.RFC3339),
	}
	return printJSON(report)
}
