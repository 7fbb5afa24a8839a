package multitrack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nitrogate/mlt/internal/media"
)

func TestAttach_EmptyMultitrack(t *testing.T) {
	m, _ := newTestMultitrack()
	assert.Equal(t, 0, m.Count())
	assert.Equal(t, 0, m.Capacity())
	assert.Nil(t, m.Track(0))
	assert.Equal(t, media.Position(0), m.Length())
	assert.Equal(t, media.Position(-1), m.Out())
}

func TestAttach_GrowsByQuantum(t *testing.T) {
	m, _ := newTestMultitrack()

	require.NoError(t, m.Attach(0, newStub("a", 10, 25)))
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, 10, m.Capacity(), "grow to track + 10")

	require.NoError(t, m.Attach(9, newStub("b", 10, 25)))
	assert.Equal(t, 10, m.Count())
	assert.Equal(t, 10, m.Capacity(), "index within capacity does not grow")

	require.NoError(t, m.Attach(10, newStub("c", 10, 25)))
	assert.Equal(t, 11, m.Count())
	assert.Equal(t, 20, m.Capacity())
}

func TestAttach_CustomGrowthQuantum(t *testing.T) {
	m, _ := newTestMultitrack(WithGrowthQuantum(1))
	require.NoError(t, m.Attach(3, newStub("a", 10, 25)))
	assert.Equal(t, 4, m.Capacity())

	m2, _ := newTestMultitrack(WithGrowthQuantum(0))
	require.NoError(t, m2.Attach(0, newStub("a", 10, 25)))
	assert.Equal(t, DefaultGrowthQuantum, m2.Capacity(), "invalid quantum is ignored")
}

func TestAttach_GrowthPreservesSlots(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 10, 25)
	b := newStub("b", 10, 25)

	require.NoError(t, m.Attach(0, a))
	require.NoError(t, m.Attach(5, b))
	require.NoError(t, m.Attach(40, newStub("c", 10, 25)))

	assert.Same(t, a, m.Track(0))
	assert.Same(t, b, m.Track(5))
	for _, i := range []int{1, 2, 3, 4, 6, 39} {
		assert.Nil(t, m.Track(i), "slot %d must stay empty", i)
	}
}

func TestAttach_CountIsMaxIndexPlusOne(t *testing.T) {
	sequences := [][]int{
		{0, 1, 2},
		{2, 0, 1},
		{7},
		{3, 3, 1},
		{12, 4, 25, 0},
	}

	for _, seq := range sequences {
		m, _ := newTestMultitrack()
		attached := map[int]bool{}
		maxIndex := -1
		for _, i := range seq {
			require.NoError(t, m.Attach(i, newStub("p", 5, 25)))
			attached[i] = true
			if i > maxIndex {
				maxIndex = i
			}
		}

		assert.Equal(t, maxIndex+1, m.Count(), "sequence %v", seq)
		assert.GreaterOrEqual(t, m.Capacity(), m.Count())
		for i := 0; i < m.Count(); i++ {
			if !attached[i] {
				assert.Nil(t, m.Track(i), "sequence %v slot %d", seq, i)
			} else {
				assert.NotNil(t, m.Track(i))
			}
		}
	}
}

func TestAttach_CountNeverDecreases(t *testing.T) {
	m, _ := newTestMultitrack()
	require.NoError(t, m.Attach(5, newStub("a", 10, 25)))
	require.NoError(t, m.Attach(1, newStub("b", 10, 25)))
	assert.Equal(t, 6, m.Count())
}

func TestAttach_Replaces(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 10, 25)
	b := newStub("b", 30, 25)

	require.NoError(t, m.Attach(0, a))
	require.NoError(t, m.Attach(0, b))

	assert.Same(t, b, m.Track(0))
	assert.Equal(t, 1, m.Count())
	assert.Equal(t, media.Position(30), m.Length())
}

func TestAttach_StructuralErrors(t *testing.T) {
	m, _ := newTestMultitrack()
	require.NoError(t, m.Attach(1, newStub("a", 10, 25)))

	tests := []struct {
		name  string
		track int
		p     media.Producer
		code  ErrorCode
	}{
		{"negative index", -1, newStub("x", 10, 25), ErrCodeNegativeTrack},
		{"nil producer", 4, nil, ErrCodeNilProducer},
		{"self", 2, m, ErrCodeSelfAttach},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.Attach(tt.track, tt.p)
			require.Error(t, err)
			assert.True(t, IsStructuralError(err))
			assert.True(t, HasCode(err, tt.code))

			assert.Equal(t, 2, m.Count(), "state must be untouched")
			assert.Equal(t, 11, m.Capacity())
		})
	}
}

func TestAttach_RejectsCycles(t *testing.T) {
	a, _ := newTestMultitrack()
	b, _ := newTestMultitrack()
	c, _ := newTestMultitrack()
	require.NoError(t, a.Attach(0, b))
	require.NoError(t, b.Attach(1, c))

	t.Run("two levels", func(t *testing.T) {
		err := b.Attach(0, a)
		require.Error(t, err)
		assert.True(t, HasCode(err, ErrCodeCycle))
		assert.Equal(t, 2, b.Count(), "state must be untouched")
		assert.Nil(t, b.Track(0))
	})

	t.Run("three levels", func(t *testing.T) {
		err := c.Attach(3, a)
		require.Error(t, err)
		assert.True(t, HasCode(err, ErrCodeCycle))
		assert.Equal(t, 0, c.Count())
	})

	t.Run("shared child is not a cycle", func(t *testing.T) {
		d, _ := newTestMultitrack()
		require.NoError(t, d.Attach(0, c))
		require.NoError(t, a.Attach(1, d))
		assert.Equal(t, 2, a.Count())
	})
}

func TestTrack_OutOfRange(t *testing.T) {
	m, _ := newTestMultitrack()
	require.NoError(t, m.Attach(0, newStub("a", 10, 25)))

	assert.Nil(t, m.Track(-1))
	assert.Nil(t, m.Track(1), "within capacity but past count")
	assert.Nil(t, m.Track(100))
}

func TestClose_ReleasesTracksNotProducers(t *testing.T) {
	m, _ := newTestMultitrack()
	a := newStub("a", 10, 25)
	require.NoError(t, m.Attach(0, a))

	m.Close()
	m.Close()

	assert.Equal(t, 0, m.Count())
	assert.Equal(t, 0, m.Capacity())
	assert.Nil(t, m.Track(0))
	assert.Equal(t, media.Position(0), m.Length())

	err := m.Attach(0, a)
	assert.True(t, HasCode(err, ErrCodeClosed))

	// The borrowed producer is still usable.
	a.Seek(3)
	f, pullErr := a.PullFrame(0)
	require.NoError(t, pullErr)
	assert.Equal(t, media.Position(3), f.Position)
}

func TestError_Message(t *testing.T) {
	err := newError(ErrCodeNegativeTrack, -2, "track index must not be negative")
	assert.Equal(t, "NEGATIVE_TRACK: track index must not be negative (track=-2)", err.Error())
	assert.False(t, IsStructuralError(errStubFailed))
	assert.False(t, HasCode(errStubFailed, ErrCodeClosed))
}
