// Package metadata stores per-project notes that Todoist has no field
// for: whether a name is a real project or an ongoing category, the goal
// behind it, and supporting links.
//
// The file is plain YAML and the owner edits it by hand as often as
// through the assistant, so loads are forgiving. A missing or malformed
// file reads as no metadata, never an error.
package metadata

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the metadata file inside the state directory.
const FileName = "projects-metadata.yaml"

// Entry types. Categories are ongoing buckets (Home, Family) that are
// never expected to complete; projects have an end state.
const (
	TypeProject  = "project"
	TypeCategory = "category"
)

// Entry describes one project or category, keyed in the file by the
// exact Todoist display name. Renaming a project in Todoist orphans
// its entry here.
type Entry struct {
	Type    string   `yaml:"type"`
	Goal    string   `yaml:"goal,omitempty"`
	Context string   `yaml:"context,omitempty"`
	Due     string   `yaml:"due,omitempty"`
	Links   []string `yaml:"links,omitempty"`
}

type document struct {
	Projects map[string]Entry `yaml:"projects"`
}

// Store reads and writes the metadata file. Every call re-reads the
// file, so hand edits are picked up without a restart.
type Store struct {
	path string
}

// NewStore returns a store over stateDir/projects-metadata.yaml.
func NewStore(stateDir string) *Store {
	return &Store{path: filepath.Join(stateDir, FileName)}
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns every entry keyed by project name. Missing or malformed
// files load as empty.
func (s *Store) Load() map[string]Entry {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return map[string]Entry{}
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return map[string]Entry{}
	}
	if doc.Projects == nil {
		return map[string]Entry{}
	}
	return doc.Projects
}

// Get looks up the entry for an exact project name.
func (s *Store) Get(name string) (Entry, bool) {
	e, ok := s.Load()[name]
	return e, ok
}

// Save writes the full metadata map, creating the state directory when
// needed.
func (s *Store) Save(projects map[string]Entry) error {
	data, err := yaml.Marshal(document{Projects: projects})
	if err != nil {
		return fmt.Errorf("encoding project metadata: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("writing project metadata: %w", err)
	}
	return nil
}

// Set merges the non-empty fields of update into the named entry and
// persists the result. Fields the update leaves blank keep their stored
// values.
func (s *Store) Set(name string, update Entry) (Entry, error) {
	projects := s.Load()
	merged := projects[name]
	if update.Type != "" {
		merged.Type = update.Type
	}
	if update.Goal != "" {
		merged.Goal = update.Goal
	}
	if update.Context != "" {
		merged.Context = update.Context
	}
	if update.Due != "" {
		merged.Due = update.Due
	}
	if len(update.Links) > 0 {
		merged.Links = update.Links
	}
	projects[name] = merged

	if err := s.Save(projects); err != nil {
		return Entry{}, err
	}
	return merged, nil
}

// Categories reports which names are typed as ongoing categories.
// Project review uses this to exempt them from stalled checks.
func (s *Store) Categories() map[string]bool {
	categories := map[string]bool{}
	for name, entry := range s.Load() {
		if entry.Type == TypeCategory {
			categories[name] = true
		}
	}
	return categories
}
