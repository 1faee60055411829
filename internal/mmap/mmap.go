package mmap

import "errors"

// AccessPattern provides hints to the kernel about how the mapped data
// will be accessed.
type AccessPattern int

const (
	// AccessDefault is the default access pattern (no specific advice).
	AccessDefault AccessPattern = iota
	// AccessSequential expects data to be accessed sequentially.
	AccessSequential
	// AccessRandom expects data to be accessed randomly.
	AccessRandom
	// AccessWillNeed expects data to be accessed in the near future.
	AccessWillNeed
	// AccessDontNeed expects data to not be accessed in the near future.
	AccessDontNeed
)

// ErrInvalidSize is returned when the requested mapping size is negative.
var ErrInvalidSize = errors.New("mmap: invalid mapping size")

// Map maps size bytes of the file referred to by fd into memory.
// The mapping is shared, so writes through a writable mapping reach the
// file. It returns the mapped bytes together with the matching unmap
// function. A zero size yields a nil slice and a nil unmap function.
func Map(fd uintptr, size int, writable bool) ([]byte, func([]byte) error, error) {
	if size < 0 {
		return nil, nil, ErrInvalidSize
	}
	if size == 0 {
		return nil, nil, nil
	}
	return osMap(fd, size, writable)
}

// Flush synchronously writes any dirty pages of the mapping back to the
// underlying file.
func Flush(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return osFlush(data)
}

// Advise passes an access-pattern hint for the mapping to the kernel.
// The hint is advisory; platforms without an equivalent ignore it.
func Advise(data []byte, pattern AccessPattern) error {
	if len(data) == 0 {
		return nil
	}
	return osAdvise(data, pattern)
}
