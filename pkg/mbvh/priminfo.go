package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// PrimInfoMB aggregates statistics over a contiguous primitive range: the
// union of geometric bounds over time, the primitive count, the half-open
// object-index range the stats were gathered over, the time range the
// bounds were computed against, and the largest "total time segments" seen
// across the contained primitives. It forms a monoid under Combine, with
// EmptyPrimInfoMB as identity.
type PrimInfoMB struct {
	GeomBounds      core.LinearBounds
	Count           int
	Range           Range
	TimeRange       core.TimeRange
	MaxTimeSegments int
}

// EmptyPrimInfoMB returns the identity element for Combine.
func EmptyPrimInfoMB() PrimInfoMB {
	return PrimInfoMB{
		GeomBounds: core.NewLinearBounds(core.EmptyBounds3(), core.EmptyBounds3()),
		Range:      Range{Begin: 0, End: 0},
	}
}

// Combine merges the statistics of two disjoint (or aliasing, for temporal
// splits) primitive ranges.
func (pi PrimInfoMB) Combine(other PrimInfoMB) PrimInfoMB {
	begin, end := pi.Range.Begin, pi.Range.End
	if other.Count > 0 {
		if pi.Count == 0 {
			begin, end = other.Range.Begin, other.Range.End
		} else {
			begin = min(begin, other.Range.Begin)
			end = max(end, other.Range.End)
		}
	}
	return PrimInfoMB{
		GeomBounds:      pi.GeomBounds.Union(other.GeomBounds),
		Count:           pi.Count + other.Count,
		Range:           Range{Begin: begin, End: end},
		TimeRange:       pi.TimeRange.Union(other.TimeRange),
		MaxTimeSegments: max(pi.MaxTimeSegments, other.MaxTimeSegments),
	}
}

// AddPrimRef folds a single primitive reference into the aggregate.
func (pi PrimInfoMB) AddPrimRef(p PrimRefMB) PrimInfoMB {
	return PrimInfoMB{
		GeomBounds:      pi.GeomBounds.Union(p.Bounds),
		Count:           pi.Count + 1,
		Range:           pi.Range,
		TimeRange:       pi.TimeRange,
		MaxTimeSegments: max(pi.MaxTimeSegments, p.TotalTimeSegments),
	}
}

// Size returns the number of primitives in the range (Count, kept distinct
// from the index range width so callers can sanity-check the two agree).
func (pi PrimInfoMB) Size() int {
	return pi.Count
}

// HalfArea returns the half surface area of the union of geometric bounds.
func (pi PrimInfoMB) HalfArea() float64 {
	return pi.GeomBounds.Bounds().HalfArea()
}

// LeafSAH returns the SAH cost of making this range a single leaf, given
// 1<<logBlockSize primitives are intersected per SIMD/cache block: the
// half-area times the number of blocks needed to hold Count primitives.
func (pi PrimInfoMB) LeafSAH(logBlockSize uint) float64 {
	if pi.Count == 0 {
		return 0
	}
	blockSize := 1 << logBlockSize
	numBlocks := (pi.Count + blockSize - 1) / blockSize
	return pi.HalfArea() * float64(numBlocks)
}
