package multitrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitrogate/mlt/internal/media"
)

func TestPull_RealTrackSeeksToRoundPosition(t *testing.T) {
	m, _ := newTestMultitrack(WithSpeed(2))
	a := newStub("a", 100, 25)
	require.NoError(t, m.Attach(0, a))

	a.Seek(77) // stale position from an earlier read
	m.Seek(12)

	r, err := m.Pull(0)
	require.NoError(t, err)

	assert.Equal(t, RealFrame, r.Kind)
	assert.Equal(t, 0, r.Track)
	assert.Equal(t, media.Position(12), a.Position())
	assert.Equal(t, media.Position(12), r.Frame.Position)
	assert.Equal(t, "a", r.Frame.Resource())
	assert.Equal(t, 2.0, r.Frame.Speed())
	assert.Equal(t, 0, r.Frame.Properties.Int(media.PropTrack))
	assert.False(t, r.Done())
	assert.Equal(t, media.Position(12), m.Position(), "real pulls never advance the round")
}

func TestPull_SentinelAtCount(t *testing.T) {
	m, _ := newTestMultitrack()
	require.NoError(t, m.Attach(0, newStub("a", 100, 25)))
	require.NoError(t, m.Attach(1, newStub("b", 100, 25)))
	m.Seek(5)

	r, err := m.Pull(2)
	require.NoError(t, err)

	assert.Equal(t, RoundComplete, r.Kind)
	assert.True(t, r.Done())
	assert.True(t, r.Frame.IsLastTrack())
	assert.True(t, r.Frame.IsFiller())
	assert.Equal(t, media.Position(5), r.Frame.Position, "stamped before the advance")
	assert.Equal(t, media.Position(6), m.Position(), "advances exactly one")
}

func TestPull_PastCountIsInert(t *testing.T) {
	m, _ := newTestMultitrack()
	require.NoError(t, m.Attach(0, newStub("a", 100, 25)))
	m.Seek(5)

	r, err := m.Pull(3)
	require.NoError(t, err)

	assert.Equal(t, Filler, r.Kind)
	assert.False(t, r.Frame.IsLastTrack())
	assert.Equal(t, media.Position(5), m.Position())
}

func TestPull_NegativeIndexIsFiller(t *testing.T) {
	m, _ := newTestMultitrack()
	require.NoError(t, m.Attach(0, newStub("a", 100, 25)))

	r, err := m.Pull(-1)
	require.NoError(t, err)
	assert.Equal(t, Filler, r.Kind)
	assert.Equal(t, media.Position(0), m.Position())
}

func TestPull_GapIsFillerNotTermination(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 100, 25)
	b := newStub("b", 150, 25)
	require.NoError(t, m.Attach(0, a))
	require.NoError(t, m.Attach(2, b))

	assert.Equal(t, 3, m.Count())
	assert.Equal(t, media.Position(150), m.Length())

	r, err := m.Pull(1)
	require.NoError(t, err)
	assert.Equal(t, Filler, r.Kind)
	assert.True(t, r.Frame.IsFiller())
	assert.False(t, r.Frame.IsLastTrack())
	assert.Equal(t, media.Position(0), m.Position())
}

func TestPull_FullRounds(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 100, 25)
	b := newStub("b", 150, 25)
	require.NoError(t, m.Attach(0, a))
	require.NoError(t, m.Attach(2, b))

	for round := 0; round < 3; round++ {
		var kinds []ResultKind
		for i := 0; ; i++ {
			r, err := m.Pull(i)
			require.NoError(t, err)
			kinds = append(kinds, r.Kind)
			if r.Done() {
				break
			}
		}
		assert.Equal(t, []ResultKind{RealFrame, Filler, RealFrame, RoundComplete}, kinds)
		assert.Equal(t, media.Position(round+1), m.Position())
	}

	assert.Equal(t, []media.Position{0, 1, 2}, a.seeks)
	assert.Equal(t, []media.Position{0, 1, 2}, b.seeks)
}

func TestPull_ProducerErrorIsWrapped(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 100, 25)
	a.fail = true
	require.NoError(t, m.Attach(0, a))

	_, err := m.Pull(0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errStubFailed)
	assert.Contains(t, err.Error(), "pull track 0 at 0")
}

func TestPull_NilFrameBecomesFiller(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 100, 25)
	a.nilFrame = true
	require.NoError(t, m.Attach(0, a))

	r, err := m.Pull(0)
	require.NoError(t, err)
	require.NotNil(t, r.Frame)
	assert.True(t, r.Frame.IsFiller())
}

func TestPull_BareFrameGetsProperties(t *testing.T) {
	m, _ := newTestMultitrack(WithSpeed(0.5))
	a := newStub("a", 100, 25)
	a.bare = true
	require.NoError(t, m.Attach(0, a))
	m.Seek(7)

	r, err := m.Pull(0)
	require.NoError(t, err)
	assert.Equal(t, RealFrame, r.Kind)
	require.NotNil(t, r.Frame.Properties)
	assert.Equal(t, media.Position(7), r.Frame.Position)
	assert.Equal(t, 0.5, r.Frame.Speed())
	assert.Equal(t, 0, r.Frame.Properties.Int(media.PropTrack))
}

func TestPull_SentinelReconciles(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 100, 25)
	require.NoError(t, m.Attach(0, a))

	a.playtime = 400 // track grew between rounds
	_, err := m.Pull(1)
	require.NoError(t, err)

	assert.Equal(t, media.Position(400), m.Length())
}

func TestPullFrame_ProducerView(t *testing.T) {
	m, _ := newTestMultitrack()
	require.NoError(t, m.Attach(0, newStub("a", 100, 25)))

	f, err := m.PullFrame(0)
	require.NoError(t, err)
	assert.Equal(t, "a", f.Resource())

	f, err = m.PullFrame(1)
	require.NoError(t, err)
	assert.True(t, f.IsLastTrack())
}

func TestPullFrame_ErrorReturnsNilFrame(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 100, 25)
	a.fail = true
	require.NoError(t, m.Attach(0, a))

	f, err := m.PullFrame(0)
	assert.Nil(t, f)
	assert.Error(t, err)
}

func TestMultitrack_NestedAsTrack(t *testing.T) {
	inner, _ := newTestMultitrack()
	require.NoError(t, inner.Attach(0, newStub("inner", 40, 25)))

	outer, _ := newTestMultitrack()
	require.NoError(t, outer.Attach(0, inner))
	outer.Seek(9)

	r, err := outer.Pull(0)
	require.NoError(t, err)
	assert.Equal(t, RealFrame, r.Kind)
	assert.Equal(t, "inner", r.Frame.Resource())
	assert.Equal(t, media.Position(9), inner.Position())
	assert.Equal(t, media.Position(40), outer.Length())
}

func TestResultKind_String(t *testing.T) {
	assert.Equal(t, "real", RealFrame.String())
	assert.Equal(t, "filler", Filler.String())
	assert.Equal(t, "round_complete", RoundComplete.String())
	assert.Equal(t, "kind(9)", ResultKind(9).String())
}

func TestMultitrack_ProducerAccessors(t *testing.T) {
	m, _ := newTestMultitrack()
	m.SetEOF(media.EOFLoop)
	assert.Equal(t, media.EOFLoop, m.EOF())

	m.SetSpeed(0.5)
	assert.Equal(t, 0.5, m.Speed())
	assert.Equal(t, DefaultSpeed, New().Speed())

	s := New(WithStart(30))
	assert.Equal(t, media.Position(30), s.Position())
}
