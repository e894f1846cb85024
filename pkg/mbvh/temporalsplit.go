package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// TemporalSplitFinder finds and applies time-range partitions. Producing
// the split materializes two new primitive arrays -- one per sub-time-range
// -- because each primitive's bounds must be recomputed against the
// narrower time window via the caller-supplied recalculator.
type TemporalSplitFinder interface {
	Find(set SetMB, info PrimInfoMB, logBlockSize uint) Split
	Partition(set SetMB, split Split) (left, right SetMB, leftInfo, rightInfo PrimInfoMB)
}

// MBlurTemporalSplit bins the time range into numBins equal sub-ranges,
// scores each interior boundary cheaply via bounds interpolation, and
// defers the expensive per-primitive recalculation to Partition, which is
// only ever called for the winning boundary.
type MBlurTemporalSplit struct {
	recalculate RecalculateFunc
	numBins     int
}

// NewMBlurTemporalSplit creates a MBlurTemporalSplit. numBins <= 1 uses
// DefaultNumTemporalBins.
func NewMBlurTemporalSplit(recalculate RecalculateFunc, numBins int) *MBlurTemporalSplit {
	if numBins <= 1 {
		numBins = DefaultNumTemporalBins
	}
	return &MBlurTemporalSplit{recalculate: recalculate, numBins: numBins}
}

// Find implements TemporalSplitFinder.
func (h *MBlurTemporalSplit) Find(set SetMB, info PrimInfoMB, logBlockSize uint) Split {
	prims := set.Prims()
	if len(prims) == 0 || set.Time.Size() <= 0 {
		return InvalidSplit()
	}

	count := float64(len(prims))
	best := InvalidSplit()

	for bin := 1; bin < h.numBins; bin++ {
		frac := float64(bin) / float64(h.numBins)
		t := set.Time.Begin + frac*set.Time.Size()

		leftBounds := core.EmptyBounds3()
		rightBounds := core.EmptyBounds3()
		for _, p := range prims {
			mid := p.Bounds.Interpolate(frac)
			leftBounds = leftBounds.Union(p.Bounds.Lo).Union(mid)
			rightBounds = rightBounds.Union(mid).Union(p.Bounds.Hi)
		}

		cost := count*leftBounds.HalfArea() + count*rightBounds.HalfArea()
		if cost < best.SplitSAH() {
			best = Split{Kind: SplitTemporal, Time: t, SAH: cost}
		}
	}

	return best
}

// Partition implements TemporalSplitFinder: it recomputes every
// primitive's bounds against [set.Time.Begin, split.Time] and
// [split.Time, set.Time.End] via the recalculator, materializing two fresh
// SharedPrimitiveBuffers (each with an initial refcount of 1) to hold the
// results.
func (h *MBlurTemporalSplit) Partition(set SetMB, split Split) (left, right SetMB, leftInfo, rightInfo PrimInfoMB) {
	prims := set.Prims()
	leftTime := core.NewTimeRange(set.Time.Begin, split.Time)
	rightTime := core.NewTimeRange(split.Time, set.Time.End)

	leftPrims := make([]PrimRefMB, len(prims))
	rightPrims := make([]PrimRefMB, len(prims))
	leftInfo = EmptyPrimInfoMB()
	leftInfo.TimeRange = leftTime
	rightInfo = EmptyPrimInfoMB()
	rightInfo.TimeRange = rightTime

	for i, p := range prims {
		lp, lseg := h.recalculate(p, leftTime)
		lp.LocalTimeSegments = lseg.Size()
		leftPrims[i] = lp
		leftInfo.GeomBounds = leftInfo.GeomBounds.Union(lp.Bounds)
		leftInfo.MaxTimeSegments = max(leftInfo.MaxTimeSegments, lp.TotalTimeSegments)

		rp, rseg := h.recalculate(p, rightTime)
		rp.LocalTimeSegments = rseg.Size()
		rightPrims[i] = rp
		rightInfo.GeomBounds = rightInfo.GeomBounds.Union(rp.Bounds)
		rightInfo.MaxTimeSegments = max(rightInfo.MaxTimeSegments, rp.TotalTimeSegments)
	}
	leftInfo.Count = len(leftPrims)
	leftInfo.Range = NewRange(0, len(leftPrims))
	rightInfo.Count = len(rightPrims)
	rightInfo.Range = NewRange(0, len(rightPrims))

	leftBuf := NewSharedPrimitiveBuffer(leftPrims, 1)
	rightBuf := NewSharedPrimitiveBuffer(rightPrims, 1)

	left = NewSetMB(leftBuf, leftInfo.Range, leftTime)
	right = NewSetMB(rightBuf, rightInfo.Range, rightTime)
	return left, right, leftInfo, rightInfo
}
