package timeline

import (
	"fmt"

	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// Error codes for timeline loading.
const (
	ErrCodeGeneric      = "T001" // Generic/unknown error
	ErrCodeReadFailed   = "T002" // File read error
	ErrCodeParseFailed  = "T003" // YAML or CUE syntax error
	ErrCodeSchema       = "T004" // Schema violation
	ErrCodeFormat       = "T005" // Unsupported file extension
	ErrCodeInvalidTrack = "T006" // Track fails a rule the schema cannot express
	ErrCodeDuplicate    = "T007" // Track index used twice
	ErrCodeBuildFailed  = "T008" // Producer construction failed
)

// LoadError is an error that occurred while loading or building a timeline.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos // CUE position if available
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newLoadError(code, format string, args ...any) *LoadError {
	return &LoadError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// fromCUEError converts a CUE error to a LoadError, keeping the first
// position CUE reports.
func fromCUEError(code string, err error) *LoadError {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return &LoadError{Code: code, Message: err.Error()}
	}
	first := errs[0]
	le := &LoadError{Code: code, Message: first.Error()}
	if positions := errors.Positions(first); len(positions) > 0 {
		le.Pos = positions[0]
	}
	return le
}
