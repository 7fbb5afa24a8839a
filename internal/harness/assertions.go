package harness

import (
	"fmt"

	"github.com/nitrogate/mlt/internal/media"
	"github.com/nitrogate/mlt/internal/multitrack"
	"github.com/nitrogate/mlt/internal/trace"
)

// AssertionContext provides the live state assertions may query.
type AssertionContext struct {
	Multitrack *multitrack.Multitrack
}

// EvaluateAssertions evaluates every assertion and returns one message per
// failure, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var errs []string
	for i, a := range assertions {
		if msg := evaluate(result, a, actx); msg != "" {
			errs = append(errs, fmt.Sprintf("assertions[%d] %s: %s", i, a.Type, msg))
		}
	}
	return errs
}

func evaluate(result *Result, a Assertion, actx *AssertionContext) string {
	switch a.Type {
	case AssertOutput:
		return assertOutput(result, a)
	case AssertPull:
		return assertPull(result, a)
	case AssertPosition:
		if got := int64(actx.Multitrack.Position()); got != *a.Position {
			return fmt.Sprintf("position = %d, want %d", got, *a.Position)
		}
	case AssertStats:
		return assertStats(actx.Multitrack, a)
	case AssertClipBoundary:
		whence, _ := media.ParseWhence(a.Whence)
		if got := int64(actx.Multitrack.ClipBoundary(whence, a.Index)); got != *a.Position {
			return fmt.Sprintf("clip boundary (%s, %d) = %d, want %d", whence, a.Index, got, *a.Position)
		}
	case AssertDiagnostics:
		got := 0
		for _, d := range result.Diagnostics {
			if string(d.Kind) == a.Diagnostic {
				got++
			}
		}
		if got != *a.Count {
			return fmt.Sprintf("%s reported %d times, want %d", a.Diagnostic, got, *a.Count)
		}
	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}
	return ""
}

func findRound(result *Result, seq int64) (trace.RoundRecord, bool) {
	for _, r := range result.Rounds {
		if r.Seq == seq {
			return r, true
		}
	}
	return trace.RoundRecord{}, false
}

func assertOutput(result *Result, a Assertion) string {
	r, ok := findRound(result, *a.Round)
	if !ok {
		return fmt.Sprintf("round %d was not recorded", *a.Round)
	}
	if r.OutputTrack != *a.Track {
		return fmt.Sprintf("round %d output track = %d, want %d", r.Seq, r.OutputTrack, *a.Track)
	}
	if a.Resource != nil && r.OutputResource != *a.Resource {
		return fmt.Sprintf("round %d output resource = %q, want %q", r.Seq, r.OutputResource, *a.Resource)
	}
	return ""
}

func assertPull(result *Result, a Assertion) string {
	r, ok := findRound(result, *a.Round)
	if !ok {
		return fmt.Sprintf("round %d was not recorded", *a.Round)
	}
	for _, p := range r.Pulls {
		if p.Track != *a.Track {
			continue
		}
		if p.Kind != a.Kind {
			return fmt.Sprintf("round %d track %d kind = %s, want %s", r.Seq, p.Track, p.Kind, a.Kind)
		}
		if a.Resource != nil && p.Resource != *a.Resource {
			return fmt.Sprintf("round %d track %d resource = %q, want %q", r.Seq, p.Track, p.Resource, *a.Resource)
		}
		return ""
	}
	return fmt.Sprintf("round %d has no pull for track %d", r.Seq, *a.Track)
}

func assertStats(m *multitrack.Multitrack, a Assertion) string {
	if a.Tracks != nil && m.Count() != *a.Tracks {
		return fmt.Sprintf("track count = %d, want %d", m.Count(), *a.Tracks)
	}
	if a.Length != nil && int64(m.Length()) != *a.Length {
		return fmt.Sprintf("length = %d, want %d", m.Length(), *a.Length)
	}
	if a.FPS != nil && m.FrameRate() != *a.FPS {
		return fmt.Sprintf("fps = %g, want %g", m.FrameRate(), *a.FPS)
	}
	return ""
}
