package roster

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrIO matches every IOError.
	ErrIO = errors.New("roster: i/o failure")
	// ErrFormat matches every FormatError.
	ErrFormat = errors.New("roster: malformed table")
)

// IOError reports a file that could not be read or written.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("roster: %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// FormatError reports a table that is not shaped the way the run needs.
// Missing lists absent required columns; Err carries a parse failure.
type FormatError struct {
	Path    string
	Missing []string
	Err     error
}

func (e *FormatError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("roster: %s: missing required columns: %s", e.Path, strings.Join(e.Missing, ", "))
	}
	return fmt.Sprintf("roster: %s: %v", e.Path, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

func (e *FormatError) Is(target error) bool { return target == ErrFormat }
