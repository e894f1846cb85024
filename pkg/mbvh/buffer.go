package mbvh

import "sync/atomic"

// SharedPrimitiveBuffer is the refcounted owner of a contiguous PrimRefMB
// array. A BuildRecord's SetMB points into exactly one such buffer's array
// via a half-open index range; a buffer may back multiple SetMBs
// simultaneously when sibling children of an object split share it with
// disjoint ranges.
//
// IncRef/DecRef are atomic: under the "parallel recurse" rule (see the
// driver), sibling subtrees never mutate the same buffer concurrently --
// object-split rearrangement happens before a parent forks its children --
// so refcount traffic inside one sibling subtree is effectively
// single-threaded. Cross-thread traffic only occurs when child lists unwind
// across goroutine boundaries, which is exactly when the atomicity matters.
type SharedPrimitiveBuffer struct {
	prims    []PrimRefMB
	refCount atomic.Int64
}

// NewSharedPrimitiveBuffer creates a buffer owning prims with the given
// initial reference count (at least 1).
func NewSharedPrimitiveBuffer(prims []PrimRefMB, initialRefCount int64) *SharedPrimitiveBuffer {
	b := &SharedPrimitiveBuffer{prims: prims}
	b.refCount.Store(initialRefCount)
	return b
}

// Prims returns the underlying primitive array. Callers must not retain
// slices derived from it past the buffer's last DecRef.
func (b *SharedPrimitiveBuffer) Prims() []PrimRefMB {
	return b.prims
}

// IncRef adds one reference to the buffer.
func (b *SharedPrimitiveBuffer) IncRef() {
	b.refCount.Add(1)
}

// DecRef removes one reference, deallocating the underlying array when the
// count reaches zero. Returns true if this call freed the buffer.
func (b *SharedPrimitiveBuffer) DecRef() bool {
	if b.refCount.Add(-1) == 0 {
		b.prims = nil
		return true
	}
	return false
}

// RefCount returns the current reference count, for tests and diagnostics.
func (b *SharedPrimitiveBuffer) RefCount() int64 {
	return b.refCount.Load()
}
