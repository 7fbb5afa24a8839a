package media

import "fmt"

// entry is one slot of a Sequence: a clip, or a blank when producer is nil.
type entry struct {
	producer Producer
	length   Position
}

// Sequence is a playlist producer: clips and blanks played back to back.
//
// Clip edges are the start positions of every entry, blanks included, plus
// the out edge at Playtime().
type Sequence struct {
	Base
	name    string
	entries []entry
}

// NewSequence creates an empty playlist running at fps.
func NewSequence(name string, fps float64) *Sequence {
	s := &Sequence{name: name}
	s.fps = fps
	return s
}

// Name returns the playlist name.
func (s *Sequence) Name() string { return s.name }

// Append adds a clip that plays the whole of p.
func (s *Sequence) Append(p Producer) error {
	if p == nil {
		return fmt.Errorf("sequence %s: nil producer", s.name)
	}
	length := p.Playtime()
	if length <= 0 {
		return fmt.Errorf("sequence %s: clip has no playtime", s.name)
	}
	s.entries = append(s.entries, entry{producer: p, length: length})
	return nil
}

// Blank adds a gap of length frames.
func (s *Sequence) Blank(length Position) error {
	if length <= 0 {
		return fmt.Errorf("sequence %s: blank length must be positive, got %d", s.name, length)
	}
	s.entries = append(s.entries, entry{length: length})
	return nil
}

// ClipCount returns the number of entries, blanks included.
func (s *Sequence) ClipCount() int { return len(s.entries) }

// Playtime returns the summed length of all entries.
func (s *Sequence) Playtime() Position {
	var total Position
	for _, e := range s.entries {
		total += e.length
	}
	return total
}

// ClipBoundary returns the start position of a clip selected relative to whence.
//
//   - WhenceStart: clip number index
//   - WhenceCurrent: index clips after the clip holding the current position
//   - WhenceEnd: index clips before the out edge
//
// Indexes before the first clip clamp to 0, indexes past the last clip
// resolve to the out edge.
func (s *Sequence) ClipBoundary(whence Whence, index int) Position {
	clip := index
	switch whence {
	case WhenceCurrent:
		clip = s.clipAt(s.position) + index
	case WhenceEnd:
		clip = len(s.entries) - index
	}
	if clip < 0 {
		clip = 0
	}
	if clip >= len(s.entries) {
		return s.Playtime()
	}
	var start Position
	for i := 0; i < clip; i++ {
		start += s.entries[i].length
	}
	return start
}

// clipAt returns the index of the entry holding pos, or ClipCount() past the end.
func (s *Sequence) clipAt(pos Position) int {
	var start Position
	for i, e := range s.entries {
		if pos < start+e.length {
			return i
		}
		start += e.length
	}
	return len(s.entries)
}

// PullFrame returns the frame of the entry under the current position.
// Blanks yield filler frames.
func (s *Sequence) PullFrame(index int) (*Frame, error) {
	pos, ok := s.resolve(s.position, s.Playtime())
	if !ok {
		return NewFiller(s.position), nil
	}
	var start Position
	for _, e := range s.entries {
		if pos >= start+e.length {
			start += e.length
			continue
		}
		if e.producer == nil {
			return NewFiller(s.position), nil
		}
		e.producer.Seek(pos - start)
		f, err := e.producer.PullFrame(0)
		if err != nil {
			return nil, fmt.Errorf("sequence %s: clip at %d: %w", s.name, start, err)
		}
		f.Position = s.position
		return f, nil
	}
	return NewFiller(s.position), nil
}
