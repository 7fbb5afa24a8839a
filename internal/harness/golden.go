package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/nitrogate/mlt/internal/trace"
)

// Snapshot returns the canonical trace of a result: every round record and
// the kind and track of every diagnostic.
func (r *Result) Snapshot(name string) ([]byte, error) {
	rounds := make([]any, len(r.Rounds))
	for i, rec := range r.Rounds {
		rounds[i] = rec.Canonical()
	}
	diags := make([]any, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		diags[i] = map[string]any{
			"kind":  string(d.Kind),
			"track": d.Track,
		}
	}
	return trace.MarshalCanonical(map[string]any{
		"scenario":    name,
		"rounds":      rounds,
		"diagnostics": diags,
	})
}

// RunWithGolden executes a scenario and compares its canonical trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. Assertion failures and golden
// mismatches fail t.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	for _, msg := range result.Errors {
		t.Error(msg)
	}

	data, err := result.Snapshot(scenario.Name)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
