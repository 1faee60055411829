// Package fs abstracts the file operations the persistent allocator
// performs on its backing files, so that failure paths (create, extend,
// sync, close) can be exercised in tests without touching real disks.
package fs
