package multitrack

import (
	"errors"

	"github.com/nitrogate/mlt/internal/media"
)

// stubProducer is a leaf producer that records how it was driven.
type stubProducer struct {
	name     string
	playtime media.Position
	fps      float64
	eof      media.EOFPolicy
	position media.Position
	seeks    []media.Position
	pulls    int
	fail     bool
	nilFrame bool
	bare     bool
}

func newStub(name string, playtime media.Position, fps float64) *stubProducer {
	return &stubProducer{name: name, playtime: playtime, fps: fps}
}

func (s *stubProducer) Seek(pos media.Position) {
	s.position = pos
	s.seeks = append(s.seeks, pos)
}

func (s *stubProducer) Position() media.Position      { return s.position }
func (s *stubProducer) Playtime() media.Position      { return s.playtime }
func (s *stubProducer) FrameRate() float64            { return s.fps }
func (s *stubProducer) SetFrameRate(fps float64)      { s.fps = fps }
func (s *stubProducer) EOF() media.EOFPolicy          { return s.eof }
func (s *stubProducer) SetEOF(policy media.EOFPolicy) { s.eof = policy }

var errStubFailed = errors.New("stub pull failed")

func (s *stubProducer) PullFrame(index int) (*media.Frame, error) {
	s.pulls++
	if s.fail {
		return nil, errStubFailed
	}
	if s.nilFrame {
		return nil, nil
	}
	if s.bare {
		return &media.Frame{Position: s.position}, nil
	}
	f := media.NewFrame(s.position)
	f.Properties.Set(media.PropResource, s.name)
	return f, nil
}

// newTestMultitrack creates a multitrack whose diagnostics are recorded.
func newTestMultitrack(opts ...Option) (*Multitrack, *Recorder) {
	rec := &Recorder{}
	opts = append([]Option{WithDiagnostics(rec)}, opts...)
	return New(opts...), rec
}
