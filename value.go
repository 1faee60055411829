package persistent

import (
	"io"
	"unsafe"
)

// Value provides typed access to a single T stored in a mapped file.
// The file's bytes are the value's storage: assignments through Ptr or
// Set reach the file via the OS page cache, and reopening the file
// recovers the prior value.
type Value[T any] struct {
	region *Region
	ptr    *T
	isNew  bool
}

// OpenValue opens or creates the backing file for one T. A freshly
// created value reads as the zero value of T; an existing file is
// reinterpreted as a live T with no initialization.
func OpenValue[T any](path string, opts ...Option) (*Value[T], error) {
	return openValue[T](path, nil, opts)
}

// NewValue is OpenValue with an initial value, stored only when the
// whole value span was freshly allocated by this open. Supplying an
// initial value for an already existing file is a ConstraintError,
// since re-initialization would silently discard the persisted state.
func NewValue[T any](path string, initial T, opts ...Option) (*Value[T], error) {
	return openValue[T](path, &initial, opts)
}

func openValue[T any](path string, initial *T, opts []Option) (*Value[T], error) {
	size, err := sizeOf[T](path)
	if err != nil {
		return nil, err
	}

	cfg := defaultConfig().apply(opts)
	if cfg.mode == ReadOnly && initial != nil {
		return nil, &ConstraintError{Path: path, Reason: "a read-only value cannot be initialized"}
	}

	r, err := openRegion(path, size, cfg)
	if err != nil {
		return nil, err
	}

	isNew := r.extended && r.prior == 0
	if initial != nil && !isNew {
		r.Close()
		return nil, &ConstraintError{
			Path:   path,
			Reason: "value already exists; an initial value would discard its persisted state",
		}
	}

	v := &Value[T]{
		region: r,
		ptr:    (*T)(unsafe.Pointer(&r.data[0])),
		isNew:  isNew,
	}
	if initial != nil {
		*v.ptr = *initial
	}

	return v, nil
}

// Get returns a copy of the stored value, or the zero value after Close.
func (v *Value[T]) Get() T {
	if v.region.closed.Load() {
		var zero T
		return zero
	}
	return *v.ptr
}

// Set stores val. It fails with a ConstraintError on a read-only
// mapping and with ErrClosed after Close.
func (v *Value[T]) Set(val T) error {
	if v.region.closed.Load() {
		return ErrClosed
	}
	if !v.region.writable {
		return &ConstraintError{Path: v.region.path, Reason: "mapping is read-only"}
	}
	*v.ptr = val
	return nil
}

// Ptr returns a pointer to the live value for in-place mutation, or nil
// after Close. Writing through the pointer of a read-only mapping
// faults; use Set when the mode is not statically known.
func (v *Value[T]) Ptr() *T {
	if v.region.closed.Load() {
		return nil
	}
	return v.ptr
}

// IsNew reports whether this open freshly created the value.
func (v *Value[T]) IsNew() bool { return v.isNew }

// Flush synchronously writes dirty pages back to the backing file.
func (v *Value[T]) Flush() error { return v.region.Flush() }

// Snapshot writes a compressed copy of the backing bytes to w.
func (v *Value[T]) Snapshot(w io.Writer) error { return v.region.Snapshot(w) }

// Close releases the mapping and the file handle. It is idempotent.
func (v *Value[T]) Close() error { return v.region.Close() }
