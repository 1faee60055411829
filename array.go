package persistent

import (
	"io"
	"unsafe"
)

// Array provides typed, bounds-checked access to a homogeneous array of
// T stored in a mapped file. Elements below Initialized() were
// recovered from disk; the rest were freshly allocated by this open.
type Array[T any] struct {
	region      *Region
	items       []T
	initialized int
}

// OpenArray opens or creates the backing file for count elements of T.
// Freshly allocated elements read as the zero value of T; recovered
// elements are left exactly as found on disk.
func OpenArray[T any](path string, count int, opts ...Option) (*Array[T], error) {
	return openArray[T](path, count, nil, opts)
}

// NewArray is OpenArray with a fill value: every freshly allocated
// element is set to fill, recovered elements are never touched.
func NewArray[T any](path string, count int, fill T, opts ...Option) (*Array[T], error) {
	return openArray[T](path, count, func(int) T { return fill }, opts)
}

// NewArrayFunc is OpenArray with an injected construction strategy:
// init is called exactly once per freshly allocated index, in order,
// and never for recovered elements.
func NewArrayFunc[T any](path string, count int, init func(i int) T, opts ...Option) (*Array[T], error) {
	return openArray[T](path, count, init, opts)
}

// AttachArray maps an existing file as an array of T without resizing
// or initializing anything; the element count is derived from the
// file's size. Attaching with a different element type reinterprets the
// same bytes, which is an intended form of type punning. It fails with
// a SizeError when the file's size is not a multiple of the element
// size.
func AttachArray[T any](path string, opts ...Option) (*Array[T], error) {
	elem, err := sizeOf[T](path)
	if err != nil {
		return nil, err
	}

	r, err := openRegion(path, 0, defaultConfig().apply(opts))
	if err != nil {
		return nil, err
	}

	if r.size%elem != 0 {
		r.Close()
		return nil, &SizeError{
			Path:      path,
			Requested: elem,
			Actual:    r.size,
			Reason:    "file size is not a multiple of the element size",
		}
	}

	count := int(r.size / elem)
	return &Array[T]{
		region:      r,
		items:       sliceOf[T](r, count),
		initialized: count,
	}, nil
}

func openArray[T any](path string, count int, init func(int) T, opts []Option) (*Array[T], error) {
	if count < 0 {
		return nil, &SizeError{Path: path, Requested: int64(count), Reason: "negative element count"}
	}

	elem, err := sizeOf[T](path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig().apply(opts)
	if cfg.mode == ReadOnly && init != nil {
		return nil, &ConstraintError{Path: path, Reason: "a read-only array cannot construct elements"}
	}

	r, err := openRegion(path, int64(count)*elem, cfg)
	if err != nil {
		return nil, err
	}

	if r.prior%elem != 0 {
		r.Close()
		return nil, &SizeError{
			Path:      path,
			Requested: elem,
			Actual:    r.prior,
			Reason:    "existing size is not a multiple of the element size",
		}
	}

	initialized := int(r.prior / elem)
	if initialized > count {
		initialized = count
	}

	items := sliceOf[T](r, count)
	if init != nil {
		for i := initialized; i < count; i++ {
			items[i] = init(i)
		}
	}

	return &Array[T]{
		region:      r,
		items:       items,
		initialized: initialized,
	}, nil
}

// sliceOf reinterprets the region's mapped bytes as count elements.
func sliceOf[T any](r *Region, count int) []T {
	if count == 0 {
		return nil
	}
	return unsafe.Slice((*T)(unsafe.Pointer(&r.data[0])), count)
}

// Len returns the declared element count.
func (a *Array[T]) Len() int { return len(a.items) }

// Initialized returns the number of elements recovered from disk; the
// indices at and above it were freshly allocated by this open.
func (a *Array[T]) Initialized() int { return a.initialized }

// At returns a copy of the element at index i.
func (a *Array[T]) At(i int) (T, error) {
	var zero T
	if a.region.closed.Load() {
		return zero, ErrClosed
	}
	if i < 0 || i >= len(a.items) {
		return zero, &IndexError{Index: i, Len: len(a.items)}
	}
	return a.items[i], nil
}

// Set stores val at index i. It fails with a ConstraintError on a
// read-only mapping.
func (a *Array[T]) Set(i int, val T) error {
	if a.region.closed.Load() {
		return ErrClosed
	}
	if i < 0 || i >= len(a.items) {
		return &IndexError{Index: i, Len: len(a.items)}
	}
	if !a.region.writable {
		return &ConstraintError{Path: a.region.path, Reason: "mapping is read-only"}
	}
	a.items[i] = val
	return nil
}

// Slice returns a live view over [lo, hi): reads and writes through the
// returned slice reach the mapped bytes directly. The slice is valid
// only until Close.
func (a *Array[T]) Slice(lo, hi int) ([]T, error) {
	if a.region.closed.Load() {
		return nil, ErrClosed
	}
	if lo < 0 || lo > len(a.items) {
		return nil, &IndexError{Index: lo, Len: len(a.items)}
	}
	if hi < lo || hi > len(a.items) {
		return nil, &IndexError{Index: hi, Len: len(a.items)}
	}
	return a.items[lo:hi], nil
}

// Flush synchronously writes dirty pages back to the backing file.
func (a *Array[T]) Flush() error { return a.region.Flush() }

// Snapshot writes a compressed copy of the backing bytes to w.
func (a *Array[T]) Snapshot(w io.Writer) error { return a.region.Snapshot(w) }

// Close releases the mapping and the file handle. It is idempotent.
func (a *Array[T]) Close() error { return a.region.Close() }
