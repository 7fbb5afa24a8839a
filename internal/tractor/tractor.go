// Package tractor drives a multitrack synchronizer round by round.
//
// A Tractor is the downstream compositor of the pull protocol: for each
// output frame it pulls index 0, 1, 2, ... from its source until the source
// answers RoundComplete, then picks the output frame from what it collected.
package tractor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nitrogate/mlt/internal/media"
	"github.com/nitrogate/mlt/internal/multitrack"
)

// DefaultMaxTracks bounds the number of pulls in one round.
const DefaultMaxTracks = 1024

// ErrNoSentinel is returned when a source never signals the end of a round.
var ErrNoSentinel = errors.New("tractor: source did not complete the round")

// Source is the pull side of the round protocol.
// Implemented by *multitrack.Multitrack.
type Source interface {
	Pull(index int) (multitrack.Result, error)
	Position() media.Position
}

// Round is the outcome of one complete round.
type Round struct {
	// Seq numbers rounds from 0 within a Tractor.
	Seq int64

	// Position is the timeline position every track was read at.
	Position media.Position

	// Tracks holds one result per pulled index, the sentinel excluded.
	Tracks []multitrack.Result

	// Output is the frame of the highest track with content, or the
	// sentinel filler when no track had content.
	Output *media.Frame

	// OutputTrack is the index Output came from, -1 for the sentinel.
	OutputTrack int
}

// Tractor pulls rounds from a Source.
//
// Thread-safety: a Tractor is not safe for concurrent use, matching the
// single-caller contract of its source.
type Tractor struct {
	src       Source
	maxTracks int
	logger    *slog.Logger
	seq       int64
}

// Option configures a Tractor.
type Option func(*Tractor)

// WithMaxTracks sets the per-round pull limit. Values below 1 are ignored.
func WithMaxTracks(n int) Option {
	return func(t *Tractor) {
		if n >= 1 {
			t.maxTracks = n
		}
	}
}

// WithLogger sets the logger used for round tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tractor) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a Tractor over src.
func New(src Source, opts ...Option) *Tractor {
	t := &Tractor{
		src:       src,
		maxTracks: DefaultMaxTracks,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Next pulls one complete round.
func (t *Tractor) Next() (Round, error) {
	round := Round{
		Seq:         t.seq,
		Position:    t.src.Position(),
		OutputTrack: -1,
	}

	for index := 0; ; index++ {
		if index > t.maxTracks {
			return Round{}, fmt.Errorf("%w after %d pulls at position %d", ErrNoSentinel, index, round.Position)
		}

		r, err := t.src.Pull(index)
		if err != nil {
			return Round{}, fmt.Errorf("round %d: %w", round.Seq, err)
		}

		if r.Done() {
			if round.Output == nil {
				round.Output = r.Frame
			}
			break
		}

		round.Tracks = append(round.Tracks, r)
		if r.Kind == multitrack.RealFrame && !r.Frame.IsFiller() {
			round.Output = r.Frame
			round.OutputTrack = r.Track
		}
	}

	t.seq++

	t.logger.Debug("round complete",
		"seq", round.Seq,
		"position", int64(round.Position),
		"tracks", len(round.Tracks),
		"output_track", round.OutputTrack,
	)

	return round, nil
}

// Run pulls rounds and hands each to fn. rounds <= 0 runs until ctx is
// cancelled or fn returns an error. Cancellation is checked between rounds.
func (t *Tractor) Run(ctx context.Context, rounds int, fn func(Round) error) error {
	for n := 0; rounds <= 0 || n < rounds; n++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		round, err := t.Next()
		if err != nil {
			return err
		}
		if fn != nil {
			if err := fn(round); err != nil {
				return err
			}
		}
	}
	return nil
}
