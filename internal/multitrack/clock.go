package multitrack

import "github.com/nitrogate/mlt/internal/media"

// Clock holds the synchronizer's round position.
//
// The position only moves forward through Advance, once per completed round,
// or arbitrarily through Seek. Tracks are always seeked to Current() before
// they are pulled, so every track in a round reads the same instant.
type Clock struct {
	pos media.Position
}

// NewClock creates a clock at position 0.
func NewClock() *Clock {
	return &Clock{}
}

// NewClockAt creates a clock at a specific position.
func NewClockAt(start media.Position) *Clock {
	c := &Clock{}
	c.Seek(start)
	return c
}

// Advance moves to the next round and returns the new position.
func (c *Clock) Advance() media.Position {
	c.pos++
	return c.pos
}

// Current returns the position of the round in progress.
func (c *Clock) Current() media.Position {
	return c.pos
}

// Seek jumps to pos. Negative positions clamp to 0.
func (c *Clock) Seek(pos media.Position) {
	if pos < 0 {
		pos = 0
	}
	c.pos = pos
}
