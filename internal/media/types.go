package media

import "fmt"

// Position is an absolute timeline position measured in frames.
type Position int64

// Whence selects the reference point of a clip boundary query.
type Whence int

const (
	// WhenceStart counts clip edges forward from the start of the timeline.
	WhenceStart Whence = iota
	// WhenceCurrent counts clip edges relative to the current position.
	WhenceCurrent
	// WhenceEnd counts clip edges backward from the end of the timeline.
	WhenceEnd
)

// String returns the lowercase name of the whence value.
func (w Whence) String() string {
	switch w {
	case WhenceStart:
		return "start"
	case WhenceCurrent:
		return "current"
	case WhenceEnd:
		return "end"
	default:
		return fmt.Sprintf("whence(%d)", int(w))
	}
}

// ParseWhence converts a name produced by Whence.String back to a Whence.
func ParseWhence(s string) (Whence, error) {
	switch s {
	case "start", "":
		return WhenceStart, nil
	case "current":
		return WhenceCurrent, nil
	case "end":
		return WhenceEnd, nil
	default:
		return WhenceStart, fmt.Errorf("invalid whence %q: must be one of start, current, end", s)
	}
}

// EOFPolicy decides what a producer yields once its position passes its out point.
type EOFPolicy int

const (
	// EOFStop yields filler frames past the end.
	EOFStop EOFPolicy = iota
	// EOFContinue keeps yielding the last real frame past the end.
	EOFContinue
	// EOFLoop wraps the position back into [0, playtime).
	EOFLoop
)

// String returns the lowercase name of the policy.
func (p EOFPolicy) String() string {
	switch p {
	case EOFStop:
		return "stop"
	case EOFContinue:
		return "continue"
	case EOFLoop:
		return "loop"
	default:
		return fmt.Sprintf("eof(%d)", int(p))
	}
}

// ParseEOFPolicy converts a policy name to an EOFPolicy.
func ParseEOFPolicy(s string) (EOFPolicy, error) {
	switch s {
	case "stop", "":
		return EOFStop, nil
	case "continue":
		return EOFContinue, nil
	case "loop":
		return EOFLoop, nil
	default:
		return EOFStop, fmt.Errorf("invalid eof policy %q: must be one of stop, continue, loop", s)
	}
}
