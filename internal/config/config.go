// Package config resolves where the assistant keeps its state and how
// it reaches its integrations.
//
// Precedence, lowest to highest: built-in defaults, the optional
// config.yaml inside the state directory, environment variables.
// Secrets only ever come from the environment; the file carries
// preferences that are safe to commit to a dotfiles repo.
package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the optional preferences file inside the state directory.
const FileName = "config.yaml"

// Config holds everything the composition root needs to assemble the
// server.
type Config struct {
	// StateDir holds session files, project metadata, the journal, and
	// worker state. Defaults to ~/.rubberduck; RUBBERDUCK_STATE_DIR
	// overrides it.
	StateDir string `yaml:"-"`

	// TodoistToken authenticates against the Todoist API. Empty means
	// the task tools report themselves unconfigured.
	TodoistToken string `yaml:"-"`

	// CalendarID selects which Google calendar to read.
	CalendarID string `yaml:"calendar_id"`

	// Timezone is where the owner lives. Nudges fire in this zone.
	Timezone string `yaml:"timezone"`
}

// Load resolves the effective configuration. It never fails: a missing
// or malformed config.yaml falls back to defaults with a warning.
func Load() Config {
	cfg := Config{
		StateDir:   defaultStateDir(),
		CalendarID: "primary",
		Timezone:   "America/Los_Angeles",
	}
	if dir := os.Getenv("RUBBERDUCK_STATE_DIR"); dir != "" {
		cfg.StateDir = dir
	}

	if data, err := os.ReadFile(filepath.Join(cfg.StateDir, FileName)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Printf("WARNING: could not parse %s: %v", FileName, err)
		}
	}

	cfg.TodoistToken = os.Getenv("TODOIST_API_TOKEN")
	return cfg
}

// Location resolves the configured timezone, falling back to UTC when
// it cannot be loaded.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		log.Printf("WARNING: unknown timezone %q, using UTC", c.Timezone)
		return time.UTC
	}
	return loc
}

func defaultStateDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".rubberduck")
}
