package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// ObjectSplitFinder finds and applies axis-aligned spatial partitions over a
// set's primitives. The driver only depends on this interface; its binning
// layout is a separable concern. BinnedSAHObjectSplit is this module's
// concrete implementation, modeled on the binned-SAH scoring used by
// achilleasa-polaris's BVH compiler (scene/compiler/bvh_builder.go), scaled
// to fixed bins rather than a fixed step count.
type ObjectSplitFinder interface {
	Find(set SetMB, info PrimInfoMB, logBlockSize uint) Split
	Partition(set SetMB, split Split) (left, right SetMB, leftInfo, rightInfo PrimInfoMB)
}

// BinnedSAHObjectSplit bins primitive centers into NumObjectBins buckets
// per axis and sweeps prefix/suffix sums to find the minimum-SAH plane.
type BinnedSAHObjectSplit struct{}

// NewBinnedSAHObjectSplit creates a BinnedSAHObjectSplit.
func NewBinnedSAHObjectSplit() *BinnedSAHObjectSplit {
	return &BinnedSAHObjectSplit{}
}

type objectBin struct {
	count int
	lo    core.Bounds3
	hi    core.Bounds3
}

func newObjectBin() objectBin {
	return objectBin{lo: core.EmptyBounds3(), hi: core.EmptyBounds3()}
}

func (b objectBin) merge(o objectBin) objectBin {
	return objectBin{count: b.count + o.count, lo: b.lo.Union(o.lo), hi: b.hi.Union(o.hi)}
}

func (b objectBin) linearBounds() core.LinearBounds {
	return core.NewLinearBounds(b.lo, b.hi)
}

// Find implements ObjectSplitFinder.
func (h *BinnedSAHObjectSplit) Find(set SetMB, info PrimInfoMB, logBlockSize uint) Split {
	prims := set.Prims()
	if len(prims) < 2 {
		return InvalidSplit()
	}

	centroidBounds := core.EmptyBounds3()
	for _, p := range prims {
		centroidBounds = centroidBounds.UnionPoint(p.Center())
	}

	best := InvalidSplit()

	for axis := 0; axis < 3; axis++ {
		extent := centroidBounds.Max.Component(axis) - centroidBounds.Min.Component(axis)
		if extent <= 0 {
			continue
		}
		axisMin := centroidBounds.Min.Component(axis)
		scale := float64(NumObjectBins) / extent

		bins := make([]objectBin, NumObjectBins)
		for i := range bins {
			bins[i] = newObjectBin()
		}
		for _, p := range prims {
			idx := int((p.Center().Component(axis) - axisMin) * scale)
			if idx < 0 {
				idx = 0
			}
			if idx >= NumObjectBins {
				idx = NumObjectBins - 1
			}
			bins[idx].count++
			bins[idx].lo = bins[idx].lo.Union(p.Bounds.Lo)
			bins[idx].hi = bins[idx].hi.Union(p.Bounds.Hi)
		}

		prefix := make([]objectBin, NumObjectBins+1)
		prefix[0] = newObjectBin()
		for i := 0; i < NumObjectBins; i++ {
			prefix[i+1] = prefix[i].merge(bins[i])
		}
		suffix := make([]objectBin, NumObjectBins+1)
		suffix[NumObjectBins] = newObjectBin()
		for i := NumObjectBins - 1; i >= 0; i-- {
			suffix[i] = suffix[i+1].merge(bins[i])
		}

		for split := 1; split < NumObjectBins; split++ {
			left := prefix[split]
			right := suffix[split]
			if left.count == 0 || right.count == 0 {
				continue
			}
			cost := float64(left.count)*left.linearBounds().ExpectedHalfArea() +
				float64(right.count)*right.linearBounds().ExpectedHalfArea()
			if cost < best.SplitSAH() {
				pos := axisMin + float64(split)/scale
				best = Split{Kind: SplitObject, Axis: axis, Pos: pos, SAH: cost}
			}
		}
	}

	return best
}

// Partition implements ObjectSplitFinder: it rearranges the parent buffer's
// array in place so that primitives left of split.Pos on split.Axis occupy
// the left part of the range and the rest occupy the right part, then
// rescans each half for its PrimInfoMB.
func (h *BinnedSAHObjectSplit) Partition(set SetMB, split Split) (left, right SetMB, leftInfo, rightInfo PrimInfoMB) {
	prims := set.Buffer.Prims()
	lo, hi := set.Range.Begin, set.Range.End

	i, j := lo, hi-1
	for i <= j {
		for i <= j && prims[i].Center().Component(split.Axis) < split.Pos {
			i++
		}
		for i <= j && prims[j].Center().Component(split.Axis) >= split.Pos {
			j--
		}
		if i < j {
			prims[i], prims[j] = prims[j], prims[i]
			i++
			j--
		}
	}
	mid := i
	// Degenerate binning boundary rounding can leave mid at the edge; fall
	// back to the midpoint to guarantee both sides are non-empty.
	if mid <= lo || mid >= hi {
		mid = (lo + hi) / 2
	}

	leftRange := NewRange(lo, mid)
	rightRange := NewRange(mid, hi)
	left = NewSetMB(set.Buffer, leftRange, set.Time)
	right = NewSetMB(set.Buffer, rightRange, set.Time)
	leftInfo = scanInfo(set.Buffer, leftRange, set.Time)
	rightInfo = scanInfo(set.Buffer, rightRange, set.Time)
	return left, right, leftInfo, rightInfo
}
