package multitrack

import (
	"github.com/nitrogate/mlt/internal/media"
)

// DefaultGrowthQuantum is the number of spare slots allocated past the
// attached index when the track list grows.
const DefaultGrowthQuantum = 10

// DefaultSpeed is the playback rate of a new multitrack.
const DefaultSpeed = 1.0

// Multitrack is the multitrack frame synchronizer.
//
// It implements media.Producer so it can be nested wherever a producer is
// expected, but it holds no producer base of its own: position lives in a
// Clock and the aggregate stats are derived by Reconcile.
//
// INVARIANTS:
//   - len(tracks) is the capacity, capacity >= count
//   - slots [count, capacity) are always empty
//   - count is one plus the highest index ever attached
type Multitrack struct {
	tracks  []media.Producer
	count   int
	quantum int
	closed  bool

	// Aggregate stats (Reconcile)
	length media.Position
	fps    float64

	clock      *Clock
	speed      float64
	eof        media.EOFPolicy
	clipPolicy ClipPolicy
	diag       Diagnostics
}

// Option configures a Multitrack.
type Option func(*Multitrack)

// WithDiagnostics sets the sink for recoverable conditions.
//
// Default: SlogDiagnostics on slog.Default().
func WithDiagnostics(d Diagnostics) Option {
	return func(m *Multitrack) {
		if d != nil {
			m.diag = d
		}
	}
}

// WithClipPolicy selects how clip boundaries of several playlist tracks are
// combined.
//
// Default: ClipMerge.
func WithClipPolicy(p ClipPolicy) Option {
	return func(m *Multitrack) {
		m.clipPolicy = p
	}
}

// WithGrowthQuantum sets how many slots past the attached index are
// allocated when the track list grows. Values below 1 are ignored.
func WithGrowthQuantum(n int) Option {
	return func(m *Multitrack) {
		if n >= 1 {
			m.quantum = n
		}
	}
}

// WithSpeed sets the initial playback rate copied onto pulled frames.
func WithSpeed(speed float64) Option {
	return func(m *Multitrack) {
		m.speed = speed
	}
}

// WithStart sets the initial round position.
func WithStart(pos media.Position) Option {
	return func(m *Multitrack) {
		m.clock.Seek(pos)
	}
}

// New creates an empty multitrack.
func New(opts ...Option) *Multitrack {
	m := &Multitrack{
		quantum:    DefaultGrowthQuantum,
		clock:      NewClock(),
		speed:      DefaultSpeed,
		clipPolicy: ClipMerge,
		diag:       SlogDiagnostics{},
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Close releases the track list. Producers are borrowed and left untouched.
// Close is idempotent; Attach fails afterwards.
func (m *Multitrack) Close() {
	m.tracks = nil
	m.count = 0
	m.closed = true
	m.Reconcile()
}

// Length returns the aggregate length: the longest track playtime.
func (m *Multitrack) Length() media.Position { return m.length }

// Out returns the aggregate out point, Length() - 1.
func (m *Multitrack) Out() media.Position { return m.length - 1 }

// Speed returns the playback rate copied onto pulled frames.
func (m *Multitrack) Speed() float64 { return m.speed }

// SetSpeed sets the playback rate copied onto pulled frames.
func (m *Multitrack) SetSpeed(speed float64) { m.speed = speed }

// ClipPolicy returns the configured clip aggregation policy.
func (m *Multitrack) ClipPolicy() ClipPolicy { return m.clipPolicy }

// Seek moves the round position to pos.
func (m *Multitrack) Seek(pos media.Position) { m.clock.Seek(pos) }

// Position returns the position of the round in progress.
func (m *Multitrack) Position() media.Position { return m.clock.Current() }

// Playtime returns the aggregate length.
func (m *Multitrack) Playtime() media.Position { return m.length }

// FrameRate returns the aggregate frame rate.
func (m *Multitrack) FrameRate() float64 { return m.fps }

// SetFrameRate overrides the aggregate frame rate until the next Reconcile.
func (m *Multitrack) SetFrameRate(fps float64) { m.fps = fps }

// EOF returns the multitrack's own end-of-stream policy.
func (m *Multitrack) EOF() media.EOFPolicy { return m.eof }

// SetEOF sets the multitrack's own end-of-stream policy. Track policies are
// managed by Reconcile.
func (m *Multitrack) SetEOF(policy media.EOFPolicy) { m.eof = policy }

var _ media.Producer = (*Multitrack)(nil)
