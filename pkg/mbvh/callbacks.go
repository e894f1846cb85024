package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// Allocator is an opaque per-task memory allocator handed back by
// CreateAlloc and threaded through node/leaf creation. The builder never
// looks inside it -- it is the caller's concern entirely.
type Allocator interface{}

// NodeHandle is the caller's opaque handle to a materialized inner node.
type NodeHandle interface{}

// Reduction is the caller's opaque per-subtree reduction value (e.g. a
// finished node's pointer, or any bottom-up aggregate the caller wants
// threaded back to the root).
type Reduction interface{}

// CreateAllocFunc lazily creates a per-task allocator. Called once per
// parallel child task, or reused across a serial recursion chain. Must be
// safe to call concurrently from distinct tasks.
type CreateAllocFunc func() Allocator

// CreateNodeFunc materializes an inner node from a parent record and its
// chosen children. Called concurrently from distinct subtrees; must be
// reentrant.
type CreateNodeFunc func(parent BuildRecord, children []BuildRecord, numChildren int, alloc Allocator) NodeHandle

// UpdateNodeFunc aggregates child reductions into the parent's reduction,
// after every child has recursed. Called concurrently from distinct
// subtrees; must be reentrant.
type UpdateNodeFunc func(node NodeHandle, parentSet SetMB, childReductions []Reduction, numChildren int) Reduction

// CreateLeafFunc materializes a leaf from a build record that the driver
// has committed to leafifying. Called concurrently from distinct subtrees;
// must be reentrant.
type CreateLeafFunc func(record BuildRecord, alloc Allocator) Reduction

// ProgressMonitorFunc is called with a size hint from frames at or below
// the single-threaded threshold, potentially concurrently. Must tolerate
// concurrent calls.
type ProgressMonitorFunc func(sizeHint int)

// RecalculateFunc recomputes a primitive's bounds against a narrower time
// range, returning the recomputed reference and the integer time-segment
// sub-range it now covers. Backed, indirectly, by the scene/primitive
// lookup the caller owns.
type RecalculateFunc func(prim PrimRefMB, timeRange core.TimeRange) (PrimRefMB, Range)

// Callbacks bundles every collaborator the builder calls out to.
type Callbacks struct {
	CreateAlloc     CreateAllocFunc
	CreateNode      CreateNodeFunc
	UpdateNode      UpdateNodeFunc
	CreateLeaf      CreateLeafFunc
	ProgressMonitor ProgressMonitorFunc
	Recalculate     RecalculateFunc
}
