package core

// TimeRange is an interval of normalized shutter time, [Begin, End]
// with Begin <= End, both typically in [0, 1].
type TimeRange struct {
	Begin, End float64
}

// NewTimeRange creates a TimeRange.
func NewTimeRange(begin, end float64) TimeRange {
	return TimeRange{Begin: begin, End: end}
}

// Size returns the width of the range.
func (tr TimeRange) Size() float64 {
	return tr.End - tr.Begin
}

// Center returns the midpoint of the range.
func (tr TimeRange) Center() float64 {
	return (tr.Begin + tr.End) * 0.5
}

// Union returns the smallest TimeRange containing both ranges.
func (tr TimeRange) Union(other TimeRange) TimeRange {
	return TimeRange{Begin: min(tr.Begin, other.Begin), End: max(tr.End, other.End)}
}

// Fraction maps an absolute time within the range to a [0,1] fraction of it.
// Returns 0 if the range is degenerate.
func (tr TimeRange) Fraction(t float64) float64 {
	size := tr.Size()
	if size <= 0 {
		return 0
	}
	return (t - tr.Begin) / size
}
