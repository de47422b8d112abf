package gtd

// --- Project health ---

// Project health statuses. A project with recent completions is active
// regardless of what its open tasks look like.
const (
	StatusActive     = "active"
	StatusStalled    = "stalled"
	StatusWaiting    = "waiting"
	StatusIncomplete = "incomplete"
)

// NextAction is the suggested focus task for a stalled project.
type NextAction struct {
	ID       string `json:"id"`
	Content  string `json:"content"`
	Priority int    `json:"priority,omitempty"`
}

// ActiveProject made progress in the trailing week.
type ActiveProject struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	OpenTasks         int    `json:"open_tasks"`
	CompletedThisWeek int    `json:"completed_this_week"`
}

// StalledProject has next actions but no recent completions.
type StalledProject struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	OpenTasks  int         `json:"open_tasks"`
	NextAction *NextAction `json:"next_action,omitempty"`
}

// WaitingProject has only waiting-for tasks left.
type WaitingProject struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	WaitingTasks int    `json:"waiting_tasks"`
}

// IncompleteProject has no next action defined, a GTD violation.
type IncompleteProject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OpenTasks int    `json:"open_tasks"`
}

// SomedayProject is parked and reported outside the health buckets.
type SomedayProject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	OpenTasks int    `json:"open_tasks"`
}

// ProjectSummary counts the project buckets.
type ProjectSummary struct {
	Active       int `json:"active"`
	Stalled      int `json:"stalled"`
	Waiting      int `json:"waiting"`
	Incomplete   int `json:"incomplete"`
	SomedayMaybe int `json:"someday_maybe"`
}

// ProjectReport is the result of a project review.
type ProjectReport struct {
	GeneratedAt  string              `json:"generated_at,omitempty"`
	Active       []ActiveProject     `json:"active"`
	Stalled      []StalledProject    `json:"stalled"`
	Waiting      []WaitingProject    `json:"waiting"`
	Incomplete   []IncompleteProject `json:"incomplete"`
	SomedayMaybe []SomedayProject    `json:"someday_maybe"`
	Summary      ProjectSummary      `json:"summary"`
}

// taskPriority treats a missing priority as 4 (none).
func taskPriority(t Task) int {
	if t.Priority == 0 {
		return 4
	}
	return t.Priority
}

// ProjectHealth computes a project's status from its open tasks and its
// completions in the trailing week. Backburner tasks are ignored entirely.
func ProjectHealth(tasks []Task, completions []Completion) string {
	if len(completions) > 0 {
		return StatusActive
	}

	var nextActions, waitingActions int
	for _, t := range tasks {
		switch {
		case HasBackburnerLabel(t):
		case HasWaitingLabel(t):
			waitingActions++
		default:
			nextActions++
		}
	}

	switch {
	case nextActions == 0 && waitingActions == 0:
		return StatusIncomplete
	case nextActions == 0:
		return StatusWaiting
	default:
		return StatusStalled
	}
}

// NextActionFor picks the highest-priority actionable task, or the first
// actionable one when nothing is prioritized. Returns nil when every task
// is waiting or backburnered.
func NextActionFor(tasks []Task) *NextAction {
	var actionable []Task
	for _, t := range tasks {
		if HasBackburnerLabel(t) || HasWaitingLabel(t) {
			continue
		}
		actionable = append(actionable, t)
	}
	if len(actionable) == 0 {
		return nil
	}

	best := actionable[0]
	found := false
	for _, t := range actionable {
		if taskPriority(t) >= 4 {
			continue
		}
		if !found || taskPriority(t) < taskPriority(best) {
			best = t
			found = true
		}
	}
	if !found {
		best = actionable[0]
	}

	return &NextAction{ID: best.ID, Content: best.Content, Priority: taskPriority(best)}
}

// CheckProjects classifies every project by health. Projects with no open
// tasks and no recent completions are skipped, someday-maybe projects are
// reported separately, and projects whose metadata marks them as a
// category are exempt from health tracking altogether. The categories set
// is keyed by exact display name.
func CheckProjects(tasks []Task, projects []Project, completions []Completion, categories map[string]bool) ProjectReport {
	byID := ProjectsByID(projects)
	report := ProjectReport{
		Active:       []ActiveProject{},
		Stalled:      []StalledProject{},
		Waiting:      []WaitingProject{},
		Incomplete:   []IncompleteProject{},
		SomedayMaybe: []SomedayProject{},
	}

	tasksByProject := map[string][]Task{}
	for _, t := range tasks {
		tasksByProject[t.ProjectID] = append(tasksByProject[t.ProjectID], t)
	}
	completionsByProject := map[string][]Completion{}
	for _, c := range completions {
		completionsByProject[c.ProjectID] = append(completionsByProject[c.ProjectID], c)
	}

	for _, proj := range projects {
		projTasks := tasksByProject[proj.ID]
		projCompletions := completionsByProject[proj.ID]
		if len(projTasks) == 0 && len(projCompletions) == 0 {
			continue
		}

		if IsSomedayProject(proj.ID, byID) {
			report.SomedayMaybe = append(report.SomedayMaybe, SomedayProject{
				ID: proj.ID, Name: proj.Name, OpenTasks: len(projTasks),
			})
			continue
		}

		if categories[proj.Name] {
			continue
		}

		switch ProjectHealth(projTasks, projCompletions) {
		case StatusActive:
			report.Active = append(report.Active, ActiveProject{
				ID:                proj.ID,
				Name:              proj.Name,
				OpenTasks:         len(projTasks),
				CompletedThisWeek: len(projCompletions),
			})
		case StatusWaiting:
			waiting := 0
			for _, t := range projTasks {
				if HasWaitingLabel(t) {
					waiting++
				}
			}
			report.Waiting = append(report.Waiting, WaitingProject{
				ID: proj.ID, Name: proj.Name, WaitingTasks: waiting,
			})
		case StatusIncomplete:
			report.Incomplete = append(report.Incomplete, IncompleteProject{
				ID: proj.ID, Name: proj.Name, OpenTasks: len(projTasks),
			})
		default:
			report.Stalled = append(report.Stalled, StalledProject{
				ID:         proj.ID,
				Name:       proj.Name,
				OpenTasks:  len(projTasks),
				NextAction: NextActionFor(projTasks),
			})
		}
	}

	report.Summary = ProjectSummary{
		Active:       len(report.Active),
		Stalled:      len(report.Stalled),
		Waiting:      len(report.Waiting),
		Incomplete:   len(report.Incomplete),
		SomedayMaybe: len(report.SomedayMaybe),
	}
	return report
}
