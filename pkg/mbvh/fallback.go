package mbvh

import (
	"math"
	"sort"

	"github.com/dcroot/mbvh/pkg/core"
)

// timeSegmentRange maps a time range onto the integer [begin, end) range of
// time segments it overlaps, for a primitive with totalSegments segments
// evenly spaced over [0, 1]. A small epsilon guards against a range that
// sits exactly on a segment boundary reporting a phantom extra segment.
func timeSegmentRange(tr core.TimeRange, totalSegments int) Range {
	const eps = 1e-6
	begin := int(math.Floor(tr.Begin*float64(totalSegments) + eps))
	end := int(math.Ceil(tr.End*float64(totalSegments) - eps))
	if begin < 0 {
		begin = 0
	}
	if end > totalSegments {
		end = totalSegments
	}
	if end <= begin {
		end = begin + 1
	}
	return NewRange(begin, end)
}

// hasMultiSegmentPrimitive reports whether any primitive in record's set
// covers more than one time segment within the set's own time range. Used
// to decide, under SingleLeafTimeSegment, whether a record that is
// otherwise small enough to leafify must still be split further.
func hasMultiSegmentPrimitive(record BuildRecord) bool {
	for _, p := range record.Prims.Prims() {
		if timeSegmentRange(record.Info.TimeRange, p.TotalTimeSegments).Size() > 1 {
			return true
		}
	}
	return false
}

// findFallback chooses the fallback split for a subtree the driver has
// committed to leafifying. If singleLeafTimeSegment forbids a leaf that
// would store a primitive spanning more than one time segment, it emits a
// temporal split at the midpoint segment boundary of the first straddling
// primitive found; otherwise it emits the deterministic median-object
// split.
func findFallback(record BuildRecord, singleLeafTimeSegment bool) Split {
	if singleLeafTimeSegment {
		for _, p := range record.Prims.Prims() {
			segRange := timeSegmentRange(record.Info.TimeRange, p.TotalTimeSegments)
			if segRange.Size() > 1 {
				center := (segRange.Begin + segRange.End) / 2
				splitTime := float64(center) / float64(p.TotalTimeSegments)
				return Split{Kind: SplitTemporal, Time: splitTime, SAH: 1.0}
			}
		}
	}
	return Split{Kind: SplitFallback, SAH: 1.0}
}

// deterministicOrder sorts set's primitive range by PrimRefMB's stable
// total order. Required before any fallback split: parallel partitioning
// elsewhere in the build destroys the primitives' original order, and the
// median split must be reproducible across runs and worker counts.
func deterministicOrder(set SetMB) {
	prims := set.Buffer.Prims()[set.Range.Begin:set.Range.End]
	sort.Slice(prims, func(i, j int) bool {
		return prims[i].Less(prims[j])
	})
}

// splitFallback performs the deterministic median-object partition: sort,
// then split the range at its midpoint. Both sides alias the parent buffer.
func splitFallback(set SetMB) (left, right SetMB, leftInfo, rightInfo PrimInfoMB) {
	deterministicOrder(set)

	begin, end := set.Range.Begin, set.Range.End
	center := (begin + end) / 2

	leftRange := NewRange(begin, center)
	rightRange := NewRange(center, end)
	left = NewSetMB(set.Buffer, leftRange, set.Time)
	right = NewSetMB(set.Buffer, rightRange, set.Time)
	leftInfo = scanInfo(set.Buffer, leftRange, set.Time)
	rightInfo = scanInfo(set.Buffer, rightRange, set.Time)
	return left, right, leftInfo, rightInfo
}
