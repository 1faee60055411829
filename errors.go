package persistent

import (
	"errors"
	"fmt"
)

// ErrClosed is returned when accessing a region or wrapper after Close.
var ErrClosed = errors.New("persistent: closed")

// OpenError reports a failure to open or create the backing file.
//
// The underlying OS error can be accessed via errors.Unwrap, so
// errors.Is(err, fs.ErrNotExist) holds for a missing file.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("persistent: open %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error { return e.Err }

// SizeError reports a size the backing file cannot satisfy: growth
// requested where the mode disallows it, a failed extension, or a file
// length that is not a multiple of the element size.
type SizeError struct {
	Path      string
	Requested int64
	Actual    int64
	Reason    string
	Err       error
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("persistent: size %s: %s (requested %d, actual %d)",
		e.Path, e.Reason, e.Requested, e.Actual)
}

func (e *SizeError) Unwrap() error { return e.Err }

// MapError reports a failed mapping syscall. The already-open file
// handle is released before the error is returned.
type MapError struct {
	Path string
	Err  error
}

func (e *MapError) Error() string {
	return fmt.Sprintf("persistent: map %s: %v", e.Path, e.Err)
}

func (e *MapError) Unwrap() error { return e.Err }

// ConstraintError reports a usage error: construction arguments where
// they are disallowed, a write through a read-only mapping, or an
// element type that cannot be mapped.
type ConstraintError struct {
	Path   string
	Reason string
}

func (e *ConstraintError) Error() string {
	if e.Path == "" {
		return "persistent: " + e.Reason
	}
	return fmt.Sprintf("persistent: %s: %s", e.Path, e.Reason)
}

// IndexError reports an array access outside the declared bounds.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("persistent: index %d out of range [0, %d)", e.Index, e.Len)
}
