package multitrack

import "github.com/nitrogate/mlt/internal/media"

// Attach connects p to the given track, replacing any producer already
// there, and reconciles the aggregate stats.
//
// The track list grows to track+quantum slots when track is past the
// current capacity; existing slots keep their positions. Errors are
// structural and leave the multitrack unchanged.
func (m *Multitrack) Attach(track int, p media.Producer) error {
	if m.closed {
		return newError(ErrCodeClosed, track, "multitrack is closed")
	}
	if track < 0 {
		return newError(ErrCodeNegativeTrack, track, "track index must not be negative")
	}
	if p == nil {
		return newError(ErrCodeNilProducer, track, "producer is required")
	}
	if self, ok := p.(*Multitrack); ok && self == m {
		return newError(ErrCodeSelfAttach, track, "multitrack cannot be its own track")
	}
	if reaches(p, m, map[*Multitrack]bool{}) {
		return newError(ErrCodeCycle, track, "producer already contains this multitrack")
	}

	if track >= len(m.tracks) {
		m.grow(track + m.quantum)
	}

	m.tracks[track] = p

	if track >= m.count {
		m.count = track + 1
	}

	m.Reconcile()
	return nil
}

// reaches reports whether target is p or is attached somewhere beneath it.
// Only nested multitracks are followed; other producers are leaves.
func reaches(p media.Producer, target *Multitrack, seen map[*Multitrack]bool) bool {
	nested, ok := p.(*Multitrack)
	if !ok || nested == nil {
		return false
	}
	if nested == target {
		return true
	}
	if seen[nested] {
		return false
	}
	seen[nested] = true
	for _, child := range nested.tracks[:nested.count] {
		if child != nil && reaches(child, target, seen) {
			return true
		}
	}
	return false
}

// grow reallocates the slot list to size slots. New slots are empty.
func (m *Multitrack) grow(size int) {
	grown := make([]media.Producer, size)
	copy(grown, m.tracks)
	m.tracks = grown
}

// Track returns the producer attached at index, or nil when index is out
// of range or the slot is empty.
func (m *Multitrack) Track(index int) media.Producer {
	if index < 0 || index >= m.count {
		return nil
	}
	return m.tracks[index]
}

// Count returns one plus the highest attached track index.
func (m *Multitrack) Count() int { return m.count }

// Capacity returns the number of allocated slots.
func (m *Multitrack) Capacity() int { return len(m.tracks) }
