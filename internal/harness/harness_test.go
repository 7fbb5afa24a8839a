package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioPath(name string) string {
	return filepath.Join("testdata", "scenarios", name+".yaml")
}

func TestLoadScenario_ResolvesTimeline(t *testing.T) {
	s, err := LoadScenario(scenarioPath("gap-filling"))
	require.NoError(t, err)

	assert.Equal(t, "gap-filling", s.Name)
	assert.Equal(t, filepath.Join("testdata", "timelines", "gap.yaml"), s.Timeline)
	assert.Equal(t, 6, s.Rounds)
	assert.Len(t, s.Assertions, 9)
}

func TestLoadScenario_Errors(t *testing.T) {
	timeline, err := filepath.Abs(filepath.Join("testdata", "timelines", "gap.yaml"))
	require.NoError(t, err)

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown field", "name: x\ndescription: d\ntimeline: " + timeline + "\nrounds: 1\nassertion: []\n", "failed to parse YAML"},
		{"missing name", "description: d\ntimeline: " + timeline + "\nrounds: 1\nassertions: [{type: position, position: 1}]\n", "name is required"},
		{"missing timeline file", "name: x\ndescription: d\ntimeline: nope.yaml\nrounds: 1\nassertions: [{type: position, position: 1}]\n", "timeline file not found"},
		{"no rounds", "name: x\ndescription: d\ntimeline: " + timeline + "\nassertions: [{type: position, position: 1}]\n", "rounds must be positive"},
		{"no assertions", "name: x\ndescription: d\ntimeline: " + timeline + "\nrounds: 1\n", "assertions list is required"},
		{"round out of range", "name: x\ndescription: d\ntimeline: " + timeline + "\nrounds: 1\nassertions: [{type: output, round: 1, track: 0}]\n", "outside [0, 1)"},
		{"bad kind", "name: x\ndescription: d\ntimeline: " + timeline + "\nrounds: 1\nassertions: [{type: pull, round: 0, track: 0, kind: round_complete}]\n", "kind must be real or filler"},
		{"bad whence", "name: x\ndescription: d\ntimeline: " + timeline + "\nrounds: 1\nassertions: [{type: clip_boundary, whence: middle, position: 0}]\n", "invalid whence"},
		{"unknown type", "name: x\ndescription: d\ntimeline: " + timeline + "\nrounds: 1\nassertions: [{type: state}]\n", "unknown assertion type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "scenario.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := LoadScenario(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestRunWithGolden(t *testing.T) {
	for _, name := range []string{"gap-filling", "fps-mismatch"} {
		t.Run(name, func(t *testing.T) {
			s, err := LoadScenario(scenarioPath(name))
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Len(t, result.Rounds, s.Rounds)
		})
	}
}

func TestRun_FailedAssertionsAreReported(t *testing.T) {
	s, err := LoadScenario(scenarioPath("gap-filling"))
	require.NoError(t, err)

	track := 0
	resource := "lower"
	position := int64(99)
	s.Assertions = []Assertion{
		{Type: AssertOutput, Round: new(int64), Track: &track, Resource: &resource},
		{Type: AssertPosition, Position: &position},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "assertions[0] output: round 0 output track = 3, want 0", result.Errors[0])
	assert.Equal(t, "assertions[1] position: position = 6, want 99", result.Errors[1])
}

func TestRun_DiagnosticsSnapshotExcludesAssertionQueries(t *testing.T) {
	s, err := LoadScenario(scenarioPath("gap-filling"))
	require.NoError(t, err)

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Empty(t, result.Diagnostics, "clip boundary queries run after the snapshot")
}

func TestRun_MissingTimeline(t *testing.T) {
	_, err := Run(&Scenario{Name: "x", Timeline: filepath.Join(t.TempDir(), "none.yaml"), Rounds: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load timeline")
}
