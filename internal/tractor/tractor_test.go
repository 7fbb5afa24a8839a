package tractor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/nitrogate/mlt/internal/media"
	"github.com/nitrogate/mlt/internal/multitrack"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newMultitrack(t *testing.T) *multitrack.Multitrack {
	t.Helper()
	m := multitrack.New(multitrack.WithDiagnostics(&multitrack.Recorder{}))
	require.NoError(t, m.Attach(0, media.NewColor("bg", 100, 25)))
	require.NoError(t, m.Attach(2, media.NewColor("title", 3, 25)))
	return m
}

func TestNext_CollectsRound(t *testing.T) {
	m := newMultitrack(t)
	tr := New(m, WithLogger(quietLogger()))

	round, err := tr.Next()
	require.NoError(t, err)

	assert.Equal(t, int64(0), round.Seq)
	assert.Equal(t, media.Position(0), round.Position)
	require.Len(t, round.Tracks, 3)
	assert.Equal(t, multitrack.RealFrame, round.Tracks[0].Kind)
	assert.Equal(t, multitrack.Filler, round.Tracks[1].Kind)
	assert.Equal(t, multitrack.RealFrame, round.Tracks[2].Kind)

	assert.Equal(t, 2, round.OutputTrack, "highest track with content wins")
	assert.Equal(t, "title", round.Output.Resource())
	assert.Equal(t, media.Position(1), m.Position())
}

func TestNext_ShortTrackHoldsLastFrame(t *testing.T) {
	m := multitrack.New(multitrack.WithDiagnostics(&multitrack.Recorder{}))
	require.NoError(t, m.Attach(0, media.NewColor("bg", 100, 25)))
	title := media.NewColor("title", 3, 25)
	require.NoError(t, m.Attach(1, title))
	title.SetEOF(media.EOFStop) // reset to continue by the next reconcile

	tr := New(m, WithLogger(quietLogger()))
	var sources []int
	err := tr.Run(context.Background(), 5, func(r Round) error {
		assert.Equal(t, "title", r.Output.Resource())
		sources = append(sources, r.Output.Properties.Int("source_position"))
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1, 2, 2, 2}, sources)
	assert.Equal(t, media.EOFContinue, title.EOF())
}

func TestNext_EmptyMultitrackYieldsSentinel(t *testing.T) {
	m := multitrack.New(multitrack.WithDiagnostics(&multitrack.Recorder{}))
	tr := New(m, WithLogger(quietLogger()))

	round, err := tr.Next()
	require.NoError(t, err)
	assert.Empty(t, round.Tracks)
	assert.Equal(t, -1, round.OutputTrack)
	assert.True(t, round.Output.IsLastTrack())
}

// endless never signals the end of a round.
type endless struct{}

func (endless) Pull(index int) (multitrack.Result, error) {
	return multitrack.Result{Kind: multitrack.Filler, Track: index, Frame: media.NewFiller(0)}, nil
}

func (endless) Position() media.Position { return 0 }

func TestNext_MaxTracksGuard(t *testing.T) {
	tr := New(endless{}, WithMaxTracks(8), WithLogger(quietLogger()))
	_, err := tr.Next()
	assert.ErrorIs(t, err, ErrNoSentinel)
}

// failing fails on its first pull.
type failing struct{}

var errBroken = errors.New("broken source")

func (failing) Pull(int) (multitrack.Result, error) { return multitrack.Result{}, errBroken }
func (failing) Position() media.Position           { return 0 }

func TestNext_PropagatesSourceError(t *testing.T) {
	tr := New(failing{}, WithLogger(quietLogger()))
	_, err := tr.Next()
	assert.ErrorIs(t, err, errBroken)
}

func TestRun_SeqAndPositionAdvance(t *testing.T) {
	m := newMultitrack(t)
	m.Seek(10)
	tr := New(m, WithLogger(quietLogger()))

	var seqs []int64
	var positions []media.Position
	err := tr.Run(context.Background(), 3, func(r Round) error {
		seqs = append(seqs, r.Seq)
		positions = append(positions, r.Position)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []int64{0, 1, 2}, seqs)
	assert.Equal(t, []media.Position{10, 11, 12}, positions)
}

func TestRun_StopsOnCallbackError(t *testing.T) {
	m := newMultitrack(t)
	tr := New(m, WithLogger(quietLogger()))

	stop := errors.New("stop")
	calls := 0
	err := tr.Run(context.Background(), 0, func(r Round) error {
		calls++
		if calls == 4 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 4, calls)
}

func TestRun_HonoursCancellation(t *testing.T) {
	m := newMultitrack(t)
	tr := New(m, WithLogger(quietLogger()))

	ctx, cancel := context.WithCancel(context.Background())
	err := tr.Run(ctx, 0, func(r Round) error {
		if r.Seq == 1 {
			cancel()
		}
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, media.Position(2), m.Position())
}
