package multitrack

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nitrogate/mlt/internal/media"
)

func TestClock_NewClock(t *testing.T) {
	c := NewClock()
	assert.Equal(t, media.Position(0), c.Current(), "new clock should start at 0")
}

func TestClock_NewClockAt(t *testing.T) {
	c := NewClockAt(100)
	assert.Equal(t, media.Position(100), c.Current())
}

func TestClock_Advance(t *testing.T) {
	c := NewClock()
	assert.Equal(t, media.Position(1), c.Advance())
	assert.Equal(t, media.Position(2), c.Advance())
	assert.Equal(t, media.Position(2), c.Current())
}

func TestClock_Seek(t *testing.T) {
	c := NewClock()
	c.Seek(42)
	assert.Equal(t, media.Position(42), c.Current())

	c.Seek(-5)
	assert.Equal(t, media.Position(0), c.Current(), "negative seek clamps to 0")
}
