// Package nudge schedules the assistant's proactive check-ins: a
// morning plan, an evening wrap-up, whatever the owner configures. The
// schedule lives in a YAML file so it can be edited without a rebuild.
package nudge

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

// FileName is the schedule file inside the state directory.
const FileName = "nudges.yaml"

// Nudge is one scheduled check-in.
type Nudge struct {
	Name         string `yaml:"name"`
	Schedule     string `yaml:"schedule"`
	ContextQuery string `yaml:"context_query"`
	PromptHint   string `yaml:"prompt_hint"`
}

// Config is the nudges.yaml document.
type Config struct {
	Nudges []Nudge `yaml:"nudges"`
}

// LoadConfig reads the nudge schedule. A missing or malformed file is
// an empty schedule, never a startup failure.
func LoadConfig(path string) Config {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("no nudge config found at %s, using empty config", path)
		} else {
			log.Printf("WARNING: could not read nudge config: %v", err)
		}
		return Config{}
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("WARNING: could not parse nudge config: %v", err)
		return Config{}
	}
	return cfg
}
