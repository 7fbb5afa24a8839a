package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/nitrogate/mlt/internal/media"
	"github.com/nitrogate/mlt/internal/multitrack"
)

// Scenario defines a conformance test scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Timeline is the path of the timeline file to play.
	// Relative paths are resolved against the scenario file's directory.
	Timeline string `yaml:"timeline"`

	// Rounds is the number of rounds to pull.
	Rounds int `yaml:"rounds"`

	// Assertions validate the recorded rounds and the final synchronizer state.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion validates one aspect of a run. Which fields apply depends on Type.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Round selects a round by seq (output, pull).
	Round *int64 `yaml:"round,omitempty"`

	// Track is the expected output track, -1 for none (output), or the
	// pulled track (pull).
	Track *int `yaml:"track,omitempty"`

	// Resource is the expected resource (output, pull). Empty matches a
	// frame without resource.
	Resource *string `yaml:"resource,omitempty"`

	// Kind is the expected result kind: real, filler (pull).
	Kind string `yaml:"kind,omitempty"`

	// Position is the expected position (position, clip_boundary).
	Position *int64 `yaml:"position,omitempty"`

	// Whence and Index form the clip boundary query (clip_boundary).
	Whence string `yaml:"whence,omitempty"`
	Index  int    `yaml:"index,omitempty"`

	// Tracks, Length and FPS are the expected aggregate stats (stats).
	Tracks *int     `yaml:"tracks,omitempty"`
	Length *int64   `yaml:"length,omitempty"`
	FPS    *float64 `yaml:"fps,omitempty"`

	// Diagnostic and Count check how often a diagnostic kind was
	// reported during the run (diagnostics).
	Diagnostic string `yaml:"diagnostic,omitempty"`
	Count      *int   `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutput       = "output"
	AssertPull         = "pull"
	AssertPosition     = "position"
	AssertStats        = "stats"
	AssertClipBoundary = "clip_boundary"
	AssertDiagnostics  = "diagnostics"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Timeline != "" && !filepath.IsAbs(scenario.Timeline) {
		scenario.Timeline = filepath.Join(filepath.Dir(path), scenario.Timeline)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Timeline == "" {
		return fmt.Errorf("timeline is required")
	}
	if _, err := os.Stat(s.Timeline); os.IsNotExist(err) {
		return fmt.Errorf("timeline file not found: %s", s.Timeline)
	}
	if s.Rounds <= 0 {
		return fmt.Errorf("rounds must be positive, got %d", s.Rounds)
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i := range s.Assertions {
		if err := validateAssertion(i, &s.Assertions[i], s.Rounds); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, rounds int) error {
	needRound := func() error {
		if a.Round == nil {
			return fmt.Errorf("assertions[%d]: round is required for %s", index, a.Type)
		}
		if *a.Round < 0 || *a.Round >= int64(rounds) {
			return fmt.Errorf("assertions[%d]: round %d outside [0, %d)", index, *a.Round, rounds)
		}
		return nil
	}

	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertOutput:
		if err := needRound(); err != nil {
			return err
		}
		if a.Track == nil {
			return fmt.Errorf("assertions[%d]: track is required for output (-1 for none)", index)
		}
	case AssertPull:
		if err := needRound(); err != nil {
			return err
		}
		if a.Track == nil {
			return fmt.Errorf("assertions[%d]: track is required for pull", index)
		}
		if a.Kind != multitrack.RealFrame.String() && a.Kind != multitrack.Filler.String() {
			return fmt.Errorf("assertions[%d]: kind must be real or filler, got %q", index, a.Kind)
		}
	case AssertPosition:
		if a.Position == nil {
			return fmt.Errorf("assertions[%d]: position is required for position", index)
		}
	case AssertStats:
		if a.Tracks == nil && a.Length == nil && a.FPS == nil {
			return fmt.Errorf("assertions[%d]: stats needs at least one of tracks, length, fps", index)
		}
	case AssertClipBoundary:
		if _, err := media.ParseWhence(a.Whence); err != nil {
			return fmt.Errorf("assertions[%d]: %w", index, err)
		}
		if a.Position == nil {
			return fmt.Errorf("assertions[%d]: position is required for clip_boundary", index)
		}
	case AssertDiagnostics:
		if a.Diagnostic == "" {
			return fmt.Errorf("assertions[%d]: diagnostic is required for diagnostics", index)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for diagnostics", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
