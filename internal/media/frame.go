package media

// Frame is a timestamped unit of output.
//
// Frames carry no sample data in this module; the Properties bag is how
// producers and the synchronizer pass signals (speed, last_track, resource)
// downstream.
type Frame struct {
	Position   Position
	Properties Properties
}

// NewFrame creates a content frame stamped at pos.
func NewFrame(pos Position) *Frame {
	return &Frame{
		Position:   pos,
		Properties: make(Properties),
	}
}

// NewFiller creates a content-less filler frame stamped at pos.
func NewFiller(pos Position) *Frame {
	f := NewFrame(pos)
	f.Properties.SetInt(PropFiller, 1)
	return f
}

// IsFiller reports whether the frame has no backing source.
func (f *Frame) IsFiller() bool {
	return f.Properties.Int(PropFiller) == 1
}

// IsLastTrack reports whether the frame carries the end-of-round signal.
func (f *Frame) IsLastTrack() bool {
	return f.Properties.Int(PropLastTrack) == 1
}

// Resource returns the name of the source that produced the frame.
func (f *Frame) Resource() string {
	return f.Properties.Get(PropResource)
}

// Speed returns the playback rate recorded on the frame.
func (f *Frame) Speed() float64 {
	return f.Properties.Double(PropSpeed)
}
