package mbvh

import "github.com/dcroot/mbvh/pkg/core"

// PrimRefMB is a motion-blur primitive reference: the linear (piecewise
// linear in time) bounding box over a time range, how many of the
// primitive's time segments fall within that range, how many time segments
// the primitive has in total in the scene, and opaque scene/primitive
// identifiers.
type PrimRefMB struct {
	Bounds            core.LinearBounds
	LocalTimeSegments int // number of time segments occupied within Bounds' time range
	TotalTimeSegments int // total number of time segments this primitive has in the scene
	SceneID           int
	PrimID            int
}

// Center returns the center of the primitive's bounds over its time range,
// used by the object-split heuristic to bin primitives along an axis.
func (p PrimRefMB) Center() core.Vec3 {
	return p.Bounds.Bounds().Center()
}

// Less defines the stable total order PrimRefMB values are sorted under for
// deterministic fallback splits. Primitives are ordered by (SceneID, PrimID).
func (p PrimRefMB) Less(other PrimRefMB) bool {
	if p.SceneID != other.SceneID {
		return p.SceneID < other.SceneID
	}
	return p.PrimID < other.PrimID
}
