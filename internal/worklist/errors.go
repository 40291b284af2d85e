package worklist

import (
	"errors"
	"fmt"
)

// ErrNoTargets is returned when a target set would be empty.
var ErrNoTargets = errors.New("configuration error: no target urls supplied")

// ErrZeroRepetitions is returned when asked to repeat the target set zero times.
var ErrZeroRepetitions = errors.New("configuration error: cannot repeat 0 times")

// SourceReadError reports a URL list file that could not be read.
type SourceReadError struct {
	Path string
	Err  error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("source read error: reading url file %q: %v", e.Path, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }

// ParseError reports an input string that is not a valid absolute URL.
// Line is the 1-based line number within a URL file, or 0 for a direct URL.
type ParseError struct {
	Input string
	Line  int
	Err   error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error: url line %d %q: %v", e.Line, e.Input, e.Err)
	}
	return fmt.Sprintf("parse error: url %q: %v", e.Input, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
