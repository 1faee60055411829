package persistent

import (
	"log/slog"
	"os"

	"github.com/hupe1980/persistent/internal/fs"
)

type config struct {
	mode         Mode
	perm         os.FileMode
	logger       *slog.Logger
	flushOnClose bool
	fsys         fs.FileSystem
}

var noopLogger = slog.New(slog.DiscardHandler)

func defaultConfig() *config {
	return &config{
		mode:   ReadWrite,
		perm:   0o600,
		logger: noopLogger,
		fsys:   fs.Default,
	}
}

func (c *config) apply(opts []Option) *config {
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Option configures how a region or typed wrapper opens its backing file.
type Option func(*config)

// WithMode sets the open mode. The default is ReadWrite.
func WithMode(m Mode) Option {
	return func(c *config) {
		c.mode = m
	}
}

// WithFilePerm sets the permission bits used when the backing file is
// created. The default is 0o600.
func WithFilePerm(perm os.FileMode) Option {
	return func(c *config) {
		c.perm = perm
	}
}

// WithLogger sets the structured logger for open/extend/close events.
// If nil is passed, logging stays disabled.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFlushOnClose makes Close flush dirty pages to the file before
// unmapping. By default no flush is performed; durability beyond the OS
// page cache is then not guaranteed.
func WithFlushOnClose() Option {
	return func(c *config) {
		c.flushOnClose = true
	}
}

// withFileSystem swaps the backing file system; a test seam.
func withFileSystem(fsys fs.FileSystem) Option {
	return func(c *config) {
		if fsys != nil {
			c.fsys = fsys
		}
	}
}
