// Package persistent maps flat Go values and fixed-size arrays directly
// onto files, so that the file's bytes are the value's storage. Writes
// through the mapped value reach the file via the OS page cache, and
// reopening the file recovers the prior value without any serialization
// step.
//
// # Overview
//
// The package is built around two layers:
//
//   - Region: owns one open file and one shared memory mapping. It
//     creates the file if needed, grows it to the requested length, and
//     reports the boundary between bytes recovered from disk and bytes
//     freshly allocated (zero-filled) by this open.
//   - Value[T] and Array[T]: typed wrappers that size a Region to one
//     value or N elements, reinterpret the mapped bytes as T storage,
//     and initialize exactly the freshly allocated portion.
//
// # Usage
//
//	// A counter that survives process restarts.
//	c, err := persistent.OpenValue[uint64]("counter.db")
//	if err != nil { ... }
//	defer c.Close()
//	*c.Ptr()++
//
//	// An array created with three nines, later grown by two twos.
//	a, _ := persistent.NewArray[int32]("scores.db", 3, 9)
//	a.Close()
//	a, _ = persistent.NewArray[int32]("scores.db", 5, 2) // [9 9 9 2 2]
//
// # Constraints
//
// Only indirection-free types may be mapped: no pointers, slices, maps,
// strings, channels, functions, or interfaces anywhere in the element
// type. The check is structural and runs before any file I/O.
//
// # Durability and Concurrency
//
// No flush is performed implicitly; durability beyond the OS page cache
// requires an explicit Flush (or the WithFlushOnClose option). The
// package provides no cross-process coordination: two processes racing
// to extend the same file is undefined behavior. Callers needing
// multi-writer access must layer their own locking keyed by path.
package persistent
