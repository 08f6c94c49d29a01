package envfile

import (
	"errors"
	"fmt"
)

var (
	// ErrIO matches any *IOError.
	ErrIO = errors.New("i/o failure")
	// ErrOutOfRange matches any *OutOfRangeError.
	ErrOutOfRange = errors.New("line number out of range")
	// ErrStaleState matches any *StaleStateError.
	ErrStaleState = errors.New("variable no longer matches file")
)

// IOError reports a failed read or write. No partial write is left behind by
// Toggle: the file is only written once, in full.
type IOError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }

// OutOfRangeError reports a line number past the end of the file, usually
// because lines were removed since the last refresh.
type OutOfRangeError struct {
	Path  string
	Line  int // 0-based
	Lines int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("invalid line number %d in %s (file has %d lines)", e.Line+1, e.Path, e.Lines)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// StaleStateError reports that the target line no longer holds the variable
// the caller saw, either because the key moved or because its comment state
// changed on disk.
type StaleStateError struct {
	Path       string
	Line       int // 0-based
	Key        string
	WantActive bool
	Got        string
}

func (e *StaleStateError) Error() string {
	state := "inactive"
	if e.WantActive {
		state = "active"
	}
	return fmt.Sprintf("line %d of %s is no longer %s %s (found %q); refresh and try again", e.Line+1, e.Path, state, e.Key, e.Got)
}

func (e *StaleStateError) Is(target error) bool { return target == ErrStaleState }
