package persistent

import (
	"io"
	"os"

	"github.com/klauspost/compress/zstd"
)

// Snapshot writes a zstd-compressed copy of the mapped bytes to w.
// It reads through the live mapping, so the snapshot reflects all
// writes made so far, flushed or not.
func (r *Region) Snapshot(w io.Writer) error {
	if r.closed.Load() {
		return ErrClosed
	}

	enc, err := zstd.NewWriter(w)
	if err != nil {
		return err
	}
	if _, err := enc.Write(r.data); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Restore decompresses a snapshot from src into a new backing file at
// path. The file must not already exist; a partially written file is
// removed on failure.
func Restore(path string, src io.Reader, opts ...Option) error {
	cfg := defaultConfig().apply(opts)

	f, err := cfg.fsys.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, cfg.perm)
	if err != nil {
		return &OpenError{Path: path, Err: err}
	}

	dec, err := zstd.NewReader(src)
	if err != nil {
		f.Close()
		_ = cfg.fsys.Remove(path)
		return err
	}
	_, err = io.Copy(f, dec.IOReadCloser())
	dec.Close()
	if err != nil {
		f.Close()
		_ = cfg.fsys.Remove(path)
		return err
	}

	return f.Close()
}
