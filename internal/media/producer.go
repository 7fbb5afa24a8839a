package media

// Producer is a seekable, position-addressable source of frames.
//
// PullFrame reads at the current position and does not advance it. The
// index argument selects one of the producer's outputs; leaf producers only
// have output 0.
type Producer interface {
	Seek(pos Position)
	Position() Position
	Playtime() Position
	FrameRate() float64
	SetFrameRate(fps float64)
	EOF() EOFPolicy
	SetEOF(policy EOFPolicy)
	PullFrame(index int) (*Frame, error)
}

// Playlist is the capability of a producer made of an ordered sequence of
// clips and blanks.
type Playlist interface {
	Producer

	// ClipCount returns the number of entries, blanks included.
	ClipCount() int

	// ClipBoundary returns the position of the index-th clip edge relative
	// to whence. Index ClipCount() from the start is the playlist's out edge.
	ClipBoundary(whence Whence, index int) Position
}

// AsPlaylist reports whether p exposes playlist capability.
func AsPlaylist(p Producer) (Playlist, bool) {
	if p == nil {
		return nil, false
	}
	pl, ok := p.(Playlist)
	return pl, ok
}

// Base holds the position, rate and end policy bookkeeping shared by the
// concrete producers in this package.
type Base struct {
	position Position
	fps      float64
	eof      EOFPolicy
}

// Seek moves the producer to pos. Negative positions clamp to 0.
func (b *Base) Seek(pos Position) {
	if pos < 0 {
		pos = 0
	}
	b.position = pos
}

// Position returns the current position.
func (b *Base) Position() Position { return b.position }

// FrameRate returns the producer's frame rate.
func (b *Base) FrameRate() float64 { return b.fps }

// SetFrameRate overrides the producer's frame rate.
func (b *Base) SetFrameRate(fps float64) { b.fps = fps }

// EOF returns the end-of-stream policy.
func (b *Base) EOF() EOFPolicy { return b.eof }

// SetEOF sets the end-of-stream policy.
func (b *Base) SetEOF(policy EOFPolicy) { b.eof = policy }

// resolve maps a position onto [0, length) according to the end policy.
// ok is false when the position has no frame and a filler is due.
func (b *Base) resolve(pos, length Position) (Position, bool) {
	if length <= 0 {
		return pos, false
	}
	if pos < length {
		return pos, true
	}
	switch b.eof {
	case EOFContinue:
		return length - 1, true
	case EOFLoop:
		return pos % length, true
	default:
		return pos, false
	}
}
