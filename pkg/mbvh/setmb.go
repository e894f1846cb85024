package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// SetMB is a view over a primitive buffer: the buffer it points into, the
// half-open object-index range within that buffer's array, and the time
// range the view's bounds are valid over. Multiple SetMBs may alias the
// same buffer with disjoint or overlapping index ranges.
type SetMB struct {
	Buffer *SharedPrimitiveBuffer
	Range  Range
	Time   core.TimeRange
}

// NewSetMB creates a SetMB.
func NewSetMB(buffer *SharedPrimitiveBuffer, r Range, t core.TimeRange) SetMB {
	return SetMB{Buffer: buffer, Range: r, Time: t}
}

// Size returns the number of primitives this view spans.
func (s SetMB) Size() int {
	return s.Range.Size()
}

// Prims returns the slice of primitives this view spans within its buffer.
func (s SetMB) Prims() []PrimRefMB {
	return s.Buffer.Prims()[s.Range.Begin:s.Range.End]
}
