package multitrack

import (
	"context"
	"log/slog"
)

// DiagnosticKind identifies a recoverable condition.
type DiagnosticKind string

const (
	// DiagFrameRateMismatch: a track's rate differed and was forced to the
	// aggregate rate.
	DiagFrameRateMismatch DiagnosticKind = "FPS_MISMATCH"

	// DiagNotPlaylist: a track without playlist capability was skipped while
	// aggregating clip boundaries.
	DiagNotPlaylist DiagnosticKind = "NOT_PLAYLIST"
)

// Diagnostic describes a recoverable condition resolved locally.
type Diagnostic struct {
	Kind    DiagnosticKind
	Track   int
	Message string

	// Expected and Actual carry the rates of a frame rate mismatch.
	Expected float64
	Actual   float64
}

// Level returns the slog level the diagnostic is reported at.
func (d Diagnostic) Level() slog.Level {
	if d.Kind == DiagFrameRateMismatch {
		return slog.LevelWarn
	}
	return slog.LevelDebug
}

// Diagnostics receives recoverable conditions. Reports never fail.
type Diagnostics interface {
	Report(d Diagnostic)
}

// DiagnosticsFunc adapts a function to Diagnostics.
type DiagnosticsFunc func(d Diagnostic)

// Report calls f(d).
func (f DiagnosticsFunc) Report(d Diagnostic) { f(d) }

// SlogDiagnostics writes diagnostics to a structured logger.
// A nil Logger writes to slog.Default().
type SlogDiagnostics struct {
	Logger *slog.Logger
}

// Report logs d at its level.
func (s SlogDiagnostics) Report(d Diagnostic) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	attrs := []any{"kind", string(d.Kind), "track", d.Track}
	if d.Kind == DiagFrameRateMismatch {
		attrs = append(attrs, "expected_fps", d.Expected, "actual_fps", d.Actual)
	}
	logger.Log(context.Background(), d.Level(), d.Message, attrs...)
}

// Recorder keeps every diagnostic it receives, in order.
type Recorder struct {
	Diagnostics []Diagnostic
}

// Report appends d.
func (r *Recorder) Report(d Diagnostic) {
	r.Diagnostics = append(r.Diagnostics, d)
}

// OfKind returns the recorded diagnostics of the given kind.
func (r *Recorder) OfKind(kind DiagnosticKind) []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Kind == kind {
			out = append(out, d)
		}
	}
	return out
}

// Reset drops all recorded diagnostics.
func (r *Recorder) Reset() {
	r.Diagnostics = nil
}
