package nudge

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Notifier delivers one fired nudge. The composition root decides what
// delivery means; this package only owns the timing.
type Notifier func(n Nudge)

// Scheduler fires nudges at their configured local times.
type Scheduler struct {
	cron      *cron.Cron
	scheduled int
}

// NewScheduler builds a cron scheduler with one daily job per valid
// nudge. Entries missing a name or schedule are skipped with a warning
// so one typo doesn't take down the whole schedule.
func NewScheduler(cfg Config, loc *time.Location, notify Notifier) *Scheduler {
	if loc == nil {
		loc = time.Local
	}
	c := cron.New(cron.WithLocation(loc))

	scheduled := 0
	for _, n := range cfg.Nudges {
		if n.Name == "" || n.Schedule == "" {
			log.Printf("WARNING: skipping invalid nudge config: %+v", n)
			continue
		}
		spec, err := cronSpec(n.Schedule)
		if err != nil {
			log.Printf("WARNING: skipping nudge %q: %v", n.Name, err)
			continue
		}
		if _, err := c.AddFunc(spec, func() { notify(n) }); err != nil {
			log.Printf("WARNING: skipping nudge %q: %v", n.Name, err)
			continue
		}
		log.Printf("scheduled nudge %q at %s", n.Name, n.Schedule)
		scheduled++
	}

	return &Scheduler{cron: c, scheduled: scheduled}
}

// Scheduled reports how many nudges were accepted.
func (s *Scheduler) Scheduled() int {
	return s.scheduled
}

// Start begins firing jobs on their schedule.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler. A job already running finishes; nothing
// new fires.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// cronSpec converts "HH:MM" into a standard five-field cron spec for a
// daily trigger.
func cronSpec(schedule string) (string, error) {
	parts := strings.Split(schedule, ":")
	if len(parts) != 2 {
		return "", fmt.Errorf("schedule %q is not HH:MM", schedule)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return "", fmt.Errorf("schedule %q has an invalid hour", schedule)
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", fmt.Errorf("schedule %q has an invalid minute", schedule)
	}
	return fmt.Sprintf("%d %d * * *", minute, hour), nil
}
