package persistent

import (
	"io"
	"log/slog"
	"os"
	"sync/atomic"

	"github.com/hupe1980/persistent/internal/fs"
	"github.com/hupe1980/persistent/internal/mmap"
)

// Mode controls how a Region opens its backing file.
type Mode int

const (
	// ReadWrite creates the file when absent and extends it on demand.
	ReadWrite Mode = iota
	// ReadOnly requires an existing file and maps it without write access.
	ReadOnly
	// NoExpand opens an existing file read/write but refuses to grow it.
	NoExpand
)

func (m Mode) String() string {
	switch m {
	case ReadWrite:
		return "read-write"
	case ReadOnly:
		return "read-only"
	case NoExpand:
		return "no-expand"
	default:
		return "unknown"
	}
}

// AccessPattern provides hints to the kernel about how the mapped bytes
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

// Region is a memory-mapped window over a backing file. It exclusively
// owns the file handle and the mapping; both are released together by
// Close. A Region must not be copied.
//
// The bytes in [0, Prior()) were recovered from disk and are never
// touched by the allocator itself; the bytes in [Prior(), Len()) were
// freshly materialized by this open and arrive zero-filled.
type Region struct {
	path         string
	mode         Mode
	f            fs.File
	data         []byte
	unmap        func([]byte) error
	size         int64
	prior        int64
	extended     bool
	writable     bool
	flushOnClose bool
	closed       atomic.Bool
	logger       *slog.Logger
}

// Open maps the file at path into memory.
//
// With mode ReadWrite (the default), the file is created if absent and
// extended to length bytes if shorter; existing bytes are never
// overwritten, growth is append-only. ReadOnly and NoExpand require an
// existing file and fail with a SizeError when length exceeds its size.
// A length of zero maps the file at its current size.
func Open(path string, length int64, opts ...Option) (*Region, error) {
	return openRegion(path, length, defaultConfig().apply(opts))
}

func openRegion(path string, length int64, cfg *config) (*Region, error) {
	if length < 0 {
		return nil, &SizeError{Path: path, Requested: length, Reason: "negative length"}
	}

	f, err := openFile(cfg, path, length)
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &OpenError{Path: path, Err: err}
	}

	size := fi.Size()
	prior := size
	extended := false

	switch {
	case length > size && cfg.mode == ReadWrite:
		// Append-only growth: truncating up zero-fills the tail and
		// leaves [0, size) untouched.
		if err := f.Truncate(length); err != nil {
			f.Close()
			return nil, &SizeError{
				Path:      path,
				Requested: length,
				Actual:    size,
				Reason:    "extending the file failed",
				Err:       err,
			}
		}
		prior, size, extended = size, length, true
	case length > size:
		f.Close()
		return nil, &SizeError{
			Path:      path,
			Requested: length,
			Actual:    size,
			Reason:    "mapping is not allowed to grow in " + cfg.mode.String() + " mode",
		}
	case length > 0 && cfg.mode != ReadOnly:
		// The file already covers the request; only the requested span
		// counts as recovered.
		prior = length
	}

	writable := cfg.mode != ReadOnly

	data, unmap, err := mmap.Map(f.Fd(), int(size), writable)
	if err != nil {
		f.Close()
		return nil, &MapError{Path: path, Err: err}
	}

	r := &Region{
		path:         path,
		mode:         cfg.mode,
		f:            f,
		data:         data,
		unmap:        unmap,
		size:         size,
		prior:        prior,
		extended:     extended,
		writable:     writable,
		flushOnClose: cfg.flushOnClose,
		logger:       cfg.logger,
	}

	cfg.logger.Debug("mapped region opened",
		"path", path,
		"mode", cfg.mode.String(),
		"size", size,
		"prior", prior,
		"extended", extended,
	)

	return r, nil
}

// openFile resolves the mode into open flags. ReadWrite attempts an
// exclusive create first, so a fresh file starts at size zero under the
// sole ownership of this open; when the file exists it falls back to a
// plain read/write open. A zero length never creates a file, it only
// attaches to an existing one.
func openFile(cfg *config, path string, length int64) (fs.File, error) {
	if cfg.mode == ReadOnly {
		return cfg.fsys.OpenFile(path, os.O_RDONLY, 0)
	}
	if cfg.mode == ReadWrite && length > 0 {
		f, err := cfg.fsys.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, cfg.perm)
		if err == nil {
			return f, nil
		}
	}
	return cfg.fsys.OpenFile(path, os.O_RDWR, cfg.perm)
}

// Bytes returns the mapped bytes, or nil once the region is closed.
// The slice is valid only until Close.
func (r *Region) Bytes() []byte {
	if r.closed.Load() {
		return nil
	}
	return r.data
}

// Len returns the total number of mapped bytes, which equals the
// backing file's size after this open.
func (r *Region) Len() int64 { return r.size }

// Prior returns the boundary between recovered and freshly allocated
// bytes: everything before it was already on disk when the region was
// opened.
func (r *Region) Prior() int64 { return r.prior }

// Extended reports whether this open grew the backing file.
func (r *Region) Extended() bool { return r.extended }

// Writable reports whether the mapping permits mutation.
func (r *Region) Writable() bool { return r.writable }

// Path returns the backing file's path.
func (r *Region) Path() string { return r.path }

// Mode returns the mode the region was opened with.
func (r *Region) Mode() Mode { return r.mode }

// Flush synchronously writes dirty pages back to the backing file.
func (r *Region) Flush() error {
	if r.closed.Load() {
		return ErrClosed
	}
	return mmap.Flush(r.data)
}

// Advise passes an access-pattern hint for the mapping to the kernel.
func (r *Region) Advise(pattern AccessPattern) error {
	if r.closed.Load() {
		return ErrClosed
	}
	return mmap.Advise(r.data, mmap.AccessPattern(pattern))
}

// ReadAt implements io.ReaderAt over the mapped bytes.
func (r *Region) ReadAt(p []byte, off int64) (n int, err error) {
	if r.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 || off >= int64(len(r.data)) {
		return 0, io.EOF
	}
	n = copy(p, r.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close unmaps the memory and closes the file handle. Both steps are
// attempted even if one fails, and Close is idempotent.
func (r *Region) Close() error {
	if r.closed.Swap(true) {
		return nil
	}

	var err error
	if r.flushOnClose && r.writable && r.data != nil {
		err = mmap.Flush(r.data)
	}
	if r.unmap != nil && r.data != nil {
		if uerr := r.unmap(r.data); uerr != nil && err == nil {
			err = uerr
		}
	}
	r.data = nil
	if r.f != nil {
		if cerr := r.f.Close(); cerr != nil && err == nil {
			err = cerr
		}
		r.f = nil
	}

	r.logger.Debug("mapped region closed", "path", r.path)

	return err
}
