package multitrack

import (
	"fmt"

	"github.com/nitrogate/mlt/internal/media"
)

// ResultKind tags the outcome of a Pull.
type ResultKind int

const (
	// RealFrame: the frame came from the producer attached at the index.
	RealFrame ResultKind = iota + 1

	// Filler: no producer backs the index; the frame is content-less.
	Filler

	// RoundComplete: the index is one past the last track. Every track has
	// been served for this position and the round position has advanced.
	RoundComplete
)

// String returns the lowercase name of the kind.
func (k ResultKind) String() string {
	switch k {
	case RealFrame:
		return "real"
	case Filler:
		return "filler"
	case RoundComplete:
		return "round_complete"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is the tagged outcome of a Pull. Frame is never nil.
type Result struct {
	Kind  ResultKind
	Track int
	Frame *media.Frame
}

// Done reports whether the result ends the round.
func (r Result) Done() bool {
	return r.Kind == RoundComplete
}

// Pull returns the frame for track index at the current round position.
//
// State machine, per call:
//   - index < Count(), slot attached: seek the track to Position(), pull its
//     output 0, copy speed onto the frame. Kind RealFrame.
//   - index < Count(), slot empty: filler frame. Kind Filler.
//   - index == Count(): filler frame with last_track set, the position
//     advances by one. Kind RoundComplete.
//   - index > Count(): filler frame, no signal, no advance. Callers reaching
//     this skipped the sentinel and are out of step with the round.
//
// Every non-real result triggers Reconcile. Producer errors are returned
// wrapped with the track index.
func (m *Multitrack) Pull(index int) (Result, error) {
	pos := m.clock.Current()

	if p := m.Track(index); p != nil {
		p.Seek(pos)

		frame, err := p.PullFrame(0)
		if err != nil {
			return Result{}, fmt.Errorf("pull track %d at %d: %w", index, pos, err)
		}
		if frame == nil {
			frame = media.NewFiller(pos)
		}
		if frame.Properties == nil {
			frame.Properties = make(media.Properties)
		}

		frame.Properties.SetDouble(media.PropSpeed, m.speed)
		frame.Properties.SetInt(media.PropTrack, index)

		return Result{Kind: RealFrame, Track: index, Frame: frame}, nil
	}

	frame := media.NewFiller(pos)
	frame.Properties.SetInt(media.PropTrack, index)
	result := Result{Kind: Filler, Track: index, Frame: frame}

	if index == m.count {
		frame.Properties.SetInt(media.PropLastTrack, 1)
		m.clock.Advance()
		result.Kind = RoundComplete
	}

	m.Reconcile()

	return result, nil
}

// PullFrame is the media.Producer view of Pull. The round-complete signal is
// carried by the frame's last_track property.
func (m *Multitrack) PullFrame(index int) (*media.Frame, error) {
	r, err := m.Pull(index)
	if err != nil {
		return nil, err
	}
	return r.Frame, nil
}
