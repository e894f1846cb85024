package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// scanInfo recomputes a PrimInfoMB by linear scan over buf's primitives in
// r, against the given time range. Used after any partition that leaves
// per-primitive bookkeeping out of the hot loop (fallback split, and the
// post-rearrange recount for object splits).
func scanInfo(buf *SharedPrimitiveBuffer, r Range, timeRange core.TimeRange) PrimInfoMB {
	info := EmptyPrimInfoMB()
	info.TimeRange = timeRange
	info.Range = r
	for _, p := range buf.Prims()[r.Begin:r.End] {
		info.GeomBounds = info.GeomBounds.Union(p.Bounds)
		info.Count++
		info.MaxTimeSegments = max(info.MaxTimeSegments, p.TotalTimeSegments)
	}
	return info
}
