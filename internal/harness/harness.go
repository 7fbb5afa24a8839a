package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strconv"

	"github.com/nitrogate/mlt/internal/multitrack"
	"github.com/nitrogate/mlt/internal/store"
	"github.com/nitrogate/mlt/internal/timeline"
	"github.com/nitrogate/mlt/internal/trace"
	"github.com/nitrogate/mlt/internal/tractor"
)

// Result is the outcome of one scenario run.
type Result struct {
	Pass        bool
	Rounds      []trace.RoundRecord
	Diagnostics []multitrack.Diagnostic
	Errors      []string
}

// NewResult creates a passing result with no rounds.
func NewResult() *Result {
	return &Result{Pass: true}
}

// AddError records an assertion failure.
func (r *Result) AddError(msg string) {
	r.Pass = false
	r.Errors = append(r.Errors, msg)
}

// Run executes a test scenario and returns the result.
//
// Execution flow:
//  1. Load and build the timeline with a recording diagnostics sink
//  2. Pull scenario.Rounds rounds, persisting each to a fresh in-memory store
//  3. Read the rounds back from the store
//  4. Evaluate assertions against the rounds and the final multitrack state
//
// An error is returned only when the scenario cannot be executed; failed
// assertions are reported in the Result.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	doc, err := timeline.Load(scenario.Timeline)
	if err != nil {
		return nil, fmt.Errorf("failed to load timeline: %w", err)
	}
	rec := &multitrack.Recorder{}
	m, err := timeline.Build(doc, multitrack.WithDiagnostics(rec))
	if err != nil {
		return nil, fmt.Errorf("failed to build timeline: %w", err)
	}
	defer m.Close()

	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	sessionID := "scenario:" + scenario.Name
	if err := st.WriteSession(ctx, store.Session{
		ID:         sessionID,
		Timeline:   scenario.Timeline,
		TrackCount: m.Count(),
		Length:     int64(m.Length()),
		FPS:        strconv.FormatFloat(m.FrameRate(), 'g', -1, 64),
		ClipPolicy: m.ClipPolicy().String(),
		Start:      int64(m.Position()),
	}); err != nil {
		return nil, fmt.Errorf("failed to record session: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil)) // Suppress logs in scenarios
	tr := tractor.New(m, tractor.WithLogger(logger))
	err = tr.Run(ctx, scenario.Rounds, func(r tractor.Round) error {
		_, err := st.WriteRound(ctx, sessionID, trace.FromRound(r))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to play timeline: %w", err)
	}

	stored, err := st.ReadRounds(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read rounds: %w", err)
	}

	result := NewResult()
	for _, r := range stored {
		result.Rounds = append(result.Rounds, r.RoundRecord)
	}
	// Snapshot before assertions: clip boundary queries report diagnostics too.
	result.Diagnostics = slices.Clone(rec.Diagnostics)

	actx := &AssertionContext{Multitrack: m}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}
