package multitrack

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes structural errors.
type ErrorCode string

const (
	// ErrCodeNegativeTrack indicates an attach at a negative track index.
	ErrCodeNegativeTrack ErrorCode = "NEGATIVE_TRACK"

	// ErrCodeNilProducer indicates an attach without a producer.
	ErrCodeNilProducer ErrorCode = "NIL_PRODUCER"

	// ErrCodeSelfAttach indicates an attach of the multitrack onto itself.
	ErrCodeSelfAttach ErrorCode = "SELF_ATTACH"

	// ErrCodeCycle indicates an attach of a multitrack that already reaches
	// the target through its own tracks.
	ErrCodeCycle ErrorCode = "CYCLE"

	// ErrCodeClosed indicates an attach after Close.
	ErrCodeClosed ErrorCode = "CLOSED"
)

// Error is a structural inconsistency detected by Attach. The multitrack is
// left unchanged when one is returned.
type Error struct {
	Code    ErrorCode
	Message string
	Track   int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s (track=%d)", e.Code, e.Message, e.Track)
}

// IsStructuralError reports whether err is, or wraps, a multitrack *Error.
func IsStructuralError(err error) bool {
	var e *Error
	return errors.As(err, &e)
}

// HasCode reports whether err is, or wraps, a multitrack *Error with code.
func HasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

func newError(code ErrorCode, track int, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Track:   track,
	}
}
