// Package mmap provides the platform memory-mapping primitives behind
// the persistent allocator.
//
// # Overview
//
// The package exposes exactly the operations the allocator needs: map a
// file descriptor into memory (optionally writable), unmap it, flush
// dirty pages back to the file, and hand access-pattern hints to the
// kernel. Everything above this layer (size resolution, growth, typed
// access) is platform independent.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2)/munmap(2) with msync(2) and
//     madvise(2)
//   - Windows: CreateFileMapping/MapViewOfFile with FlushViewOfFile
//     (access hints are a no-op)
package mmap
