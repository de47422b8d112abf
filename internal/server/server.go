// Package server wires all MCP components and creates the server instance.
//
// This is the composition root (DIP): it creates the concrete integration
// clients and injects them into the tools that depend on abstractions.
// No business logic lives here, only wiring.
package server

import (
	"context"
	"log"
	"path/filepath"

	"github.com/HendryAvila/rubberduck/internal/config"
	"github.com/HendryAvila/rubberduck/internal/gcal"
	"github.com/HendryAvila/rubberduck/internal/journal"
	"github.com/HendryAvila/rubberduck/internal/metadata"
	"github.com/HendryAvila/rubberduck/internal/nudge"
	"github.com/HendryAvila/rubberduck/internal/perch"
	"github.com/HendryAvila/rubberduck/internal/preempt"
	"github.com/HendryAvila/rubberduck/internal/prompts"
	"github.com/HendryAvila/rubberduck/internal/resources"
	"github.com/HendryAvila/rubberduck/internal/review"
	"github.com/HendryAvila/rubberduck/internal/todoist"
	"github.com/HendryAvila/rubberduck/internal/tools"
	"github.com/mark3labs/mcp-go/server"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools registered,
// the nudge scheduler started, and the background worker running.
//
// The returned cleanup function stops the scheduler and worker and
// closes the journal database, and must be called on shutdown
// (typically via defer). It is always non-nil and safe to call even
// when parts of the stack failed to initialize.
//
// Integrations degrade instead of failing: a missing Todoist token,
// calendar credential, or journal database disables the tools that
// need it while the rest of the server keeps working.
func New() (*server.MCPServer, func(), error) {
	cfg := config.Load()

	// --- Create shared dependencies ---

	coord := preempt.New()
	sessionStore := review.NewFileStore(cfg.StateDir)
	conductor := review.NewConductor(sessionStore)
	metaStore := metadata.NewStore(cfg.StateDir)

	var taskSource tools.TaskSource
	var taskWriter tools.TaskWriter
	if cfg.TodoistToken != "" {
		client := todoist.NewClient(cfg.TodoistToken)
		taskSource = client
		taskWriter = client
	} else {
		log.Printf("WARNING: TODOIST_API_TOKEN not set; task tools will answer unconfigured")
	}

	// The nil checks matter: assigning a nil *gcal.Client into the
	// interface would defeat the tools' nil-source detection.
	var eventSource tools.EventSource
	if client, err := gcal.NewClient(context.Background(), cfg.CalendarID); err != nil {
		log.Printf("WARNING: calendar disabled: %v", err)
	} else if client != nil {
		eventSource = client
	}

	var journalReader tools.JournalReader
	journalStore, err := journal.New(journal.Config{DataDir: cfg.StateDir})
	if err != nil {
		log.Printf("WARNING: journal disabled: %v", err)
		journalStore = nil
	} else {
		journalReader = journalStore
	}

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		"rubberduck",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Register review tools ---

	conductorTool := tools.NewConductorTool(conductor)
	s.AddTool(conductorTool.Definition(), conductorTool.Handle)

	calendarReview := tools.NewCalendarReviewTool(eventSource)
	s.AddTool(calendarReview.Definition(), calendarReview.Handle)

	deadlineScan := tools.NewDeadlineScanTool(taskSource)
	s.AddTool(deadlineScan.Definition(), deadlineScan.Handle)

	waitingReview := tools.NewWaitingReviewTool(taskSource)
	s.AddTool(waitingReview.Definition(), waitingReview.Handle)

	projectReview := tools.NewProjectReviewTool(taskSource, metaStore)
	s.AddTool(projectReview.Definition(), projectReview.Handle)

	categoryHealth := tools.NewCategoryHealthTool(taskSource)
	s.AddTool(categoryHealth.Definition(), categoryHealth.Handle)

	somedayReview := tools.NewSomedayReviewTool(taskSource)
	s.AddTool(somedayReview.Definition(), somedayReview.Handle)

	weeklyReview := tools.NewWeeklyReviewTool(taskSource, metaStore)
	s.AddTool(weeklyReview.Definition(), weeklyReview.Handle)

	// --- Register daily planning tools ---

	morningPlanning := tools.NewMorningPlanningTool(taskSource, eventSource)
	s.AddTool(morningPlanning.Definition(), morningPlanning.Handle)

	endOfDay := tools.NewEndOfDayTool(taskSource)
	s.AddTool(endOfDay.Definition(), endOfDay.Handle)

	// --- Register task and project tools ---

	queryTasks := tools.NewQueryTasksTool(taskSource)
	s.AddTool(queryTasks.Definition(), queryTasks.Handle)

	createTask := tools.NewCreateTaskTool(taskWriter)
	s.AddTool(createTask.Definition(), createTask.Handle)

	updateTask := tools.NewUpdateTaskTool(taskWriter)
	s.AddTool(updateTask.Definition(), updateTask.Handle)

	completeTask := tools.NewCompleteTaskTool(taskWriter)
	s.AddTool(completeTask.Definition(), completeTask.Handle)

	listProjects := tools.NewListProjectsTool(taskSource)
	s.AddTool(listProjects.Definition(), listProjects.Handle)

	updateProject := tools.NewUpdateProjectTool(taskWriter)
	s.AddTool(updateProject.Definition(), updateProject.Handle)

	// --- Register calendar and journal tools ---

	queryCalendar := tools.NewQueryCalendarTool(eventSource)
	s.AddTool(queryCalendar.Definition(), queryCalendar.Handle)

	journalRecent := tools.NewJournalRecentTool(journalReader)
	s.AddTool(journalRecent.Definition(), journalRecent.Handle)

	journalSearch := tools.NewJournalSearchTool(journalReader)
	s.AddTool(journalSearch.Definition(), journalSearch.Handle)

	// --- Register coordination tools ---
	//
	// These mediate between the interactive conversation and the
	// background worker via the shared coordinator.

	botStatus := tools.NewBotStatusTool(coord)
	s.AddTool(botStatus.Definition(), botStatus.Handle)

	startWork := tools.NewStartWorkTool(coord)
	s.AddTool(startWork.Definition(), startWork.Handle)

	finishWork := tools.NewFinishWorkTool(coord)
	s.AddTool(finishWork.Definition(), finishWork.Handle)

	requestPreempt := tools.NewRequestPreemptTool(coord)
	s.AddTool(requestPreempt.Definition(), requestPreempt.Handle)

	clearPreempt := tools.NewClearPreemptTool(coord)
	s.AddTool(clearPreempt.Definition(), clearPreempt.Handle)

	shouldYield := tools.NewShouldYieldTool(coord)
	s.AddTool(shouldYield.Definition(), shouldYield.Handle)

	checkStuck := tools.NewCheckStuckTool(coord)
	s.AddTool(checkStuck.Definition(), checkStuck.Handle)

	// --- Register prompts ---

	weeklyReviewPrompt := prompts.NewWeeklyReviewPrompt()
	s.AddPrompt(weeklyReviewPrompt.Definition(), weeklyReviewPrompt.Handle)

	morningPrompt := prompts.NewMorningPrompt()
	s.AddPrompt(morningPrompt.Definition(), morningPrompt.Handle)

	endOfDayPrompt := prompts.NewEndOfDayPrompt()
	s.AddPrompt(endOfDayPrompt.Definition(), endOfDayPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(sessionStore)
	s.AddResource(resourceHandler.SessionResource(), resourceHandler.HandleSession)

	// --- Start the nudge scheduler and background worker ---

	ctx, cancel := context.WithCancel(context.Background())

	nudgeCfg := nudge.LoadConfig(filepath.Join(cfg.StateDir, nudge.FileName))
	scheduler := nudge.NewScheduler(nudgeCfg, cfg.Location(), func(n nudge.Nudge) {
		log.Printf("nudge fired: %s", n.Name)
		if journalStore == nil {
			return
		}
		content := n.PromptHint
		if content == "" {
			content = n.Name
		}
		if _, err := journalStore.Append(journal.KindNudge, content, n.ContextQuery); err != nil {
			log.Printf("WARNING: recording nudge %q: %v", n.Name, err)
		}
	})
	scheduler.Start()

	if journalStore != nil {
		worker := perch.NewWorker(journalStore, coord, cfg.StateDir)
		go worker.Run(ctx)
	}

	cleanup := func() {
		cancel()
		scheduler.Stop()
		if journalStore != nil {
			if err := journalStore.Close(); err != nil {
				log.Printf("WARNING: journal close: %v", err)
			}
		}
	}
	return s, cleanup, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to run the assistant's GTD workflows.
func serverInstructions() string {
	return `You are a personal GTD (Getting Things Done) assistant with access to
the owner's Todoist tasks, Google Calendar, and a persistent conversation
journal.

## SESSION START

Call journal_recent at the start of each conversation to pick up the
thread. If the owner references something from before ("that plumber
thing", "the deck project"), use journal_search to recall it.

## DAILY RITUALS

- Morning: run_morning_planning builds the day's plan — calendar
  commitments, overdue alerts, top 3 priorities, the rest of the week.
- Evening: run_end_of_day_review wraps up — what slipped, tomorrow's
  priorities, waiting-for items worth a nudge.

Present the results conversationally; do not paste the raw report
unless asked.

## WEEKLY REVIEW

Prefer the step-by-step conductor over the one-shot review. The flow:

1. Call weekly_review_conductor with action=start
2. The response names exactly one sub-review tool — call it
3. Discuss the findings with the owner, act on them (create_task,
   update_task, complete_task), then call the conductor with
   action=next
4. Repeat until the conductor reports the review complete

Sessions persist: if the owner stops mid-review and comes back the next
day, action=status resumes where they left off. action=abandon discards
the session. Sessions expire after 24 hours.

Use run_weekly_review (the one-shot digest) only when the owner asks
for a quick overview and does not want to walk the steps.

## ACTING ON REVIEWS

Review output includes task IDs as [ID:xxx]. Use them directly with
update_task and complete_task — never ask the owner to repeat an ID
that a listing already gave you. When a waiting-for item needs a
follow-up, the report suggests wording; offer it, don't auto-send.

## BACKGROUND WORK PROTOCOL

Before starting autonomous background work (multi-step maintenance the
owner didn't just ask for):

1. Call start_work with a short description
2. Between units of work, call should_yield — if yes, stop early
3. Call finish_work when done, even after stopping early

When the owner sends a message while background work may be running,
call bot_status; if the worker is busy, call request_preempt (wait=true
for a short grace period), handle the owner's request, then
clear_preempt so background work can resume. If bot_status shows a task
running implausibly long, check_stuck resets it.

## DEGRADED INTEGRATIONS

Tools answer with explanatory text when an integration is not
configured — that is information for the owner, not an error to retry.
Relay what is missing (for example the TODOIST_API_TOKEN environment
variable) and carry on with what works.

## STYLE

Be brief and concrete. Surface the two or three things that matter,
not the whole report. The owner trusts the system because reviews are
honest about what is stalled or slipping — never soften the numbers.`
}
