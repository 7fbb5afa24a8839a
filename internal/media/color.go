package media

// Color is a synthetic leaf producer: every frame is a flat card named by
// its resource. It stands in for image and test-card sources.
type Color struct {
	Base
	resource string
	length   Position
}

// NewColor creates a color producer of the given playtime and frame rate.
func NewColor(resource string, length Position, fps float64) *Color {
	if length < 0 {
		length = 0
	}
	c := &Color{resource: resource, length: length}
	c.fps = fps
	return c
}

// Resource returns the producer's resource name.
func (c *Color) Resource() string { return c.resource }

// Playtime returns the number of frames the producer yields.
func (c *Color) Playtime() Position { return c.length }

// PullFrame returns the frame at the current position.
func (c *Color) PullFrame(index int) (*Frame, error) {
	pos, ok := c.resolve(c.position, c.length)
	if !ok {
		return NewFiller(c.position), nil
	}
	f := NewFrame(c.position)
	f.Properties.Set(PropResource, c.resource)
	f.Properties.SetInt("source_position", int(pos))
	return f, nil
}
