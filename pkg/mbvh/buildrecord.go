package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// BuildRecord is the unit of recursion: the depth at which it was produced,
// the SetMB view of the primitives it covers, the aggregate PrimInfoMB
// statistics over that view, and the currently-best Split for it. The
// split is left zero-valued at construction; recurse fills it in before
// partitioning a child, while createLargeLeaf partitions with a fallback
// split it does not store in the record.
type BuildRecord struct {
	Depth int
	Prims SetMB
	Info  PrimInfoMB
	Split Split
}

// NewBuildRecord creates a BuildRecord at the given depth, with no split
// chosen yet.
func NewBuildRecord(depth int, prims SetMB, info PrimInfoMB) BuildRecord {
	return BuildRecord{Depth: depth, Prims: prims, Info: info}
}

// Size returns the number of primitives covered by this record.
func (r BuildRecord) Size() int {
	return r.Info.Size()
}

// NewRootBuildRecord scans buf's primitives over r and returns the
// depth-0 BuildRecord a Builder.Build call should start from.
func NewRootBuildRecord(buf *SharedPrimitiveBuffer, r Range, timeRange core.TimeRange) BuildRecord {
	info := scanInfo(buf, r, timeRange)
	return NewBuildRecord(0, NewSetMB(buf, r, timeRange), info)
}
