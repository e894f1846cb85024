// Package scene provides an in-memory source of moving-sphere primitives:
// the concrete collaborator the builder's Callbacks.Recalculate contract is
// defined against, for the demo command and for tests.
package scene

import (
	"github.com/dcroot/mbvh/pkg/core"
	"github.com/dcroot/mbvh/pkg/mbvh"
)

// MovingSphere is a sphere whose center travels along a straight path
// between two keyframes over the scene's time range, split into
// totalTimeSegments equal sub-intervals for motion-blur sampling purposes.
type MovingSphere struct {
	SceneID           int
	PrimID            int
	Center0, Center1  core.Vec3
	Radius            float64
	TotalTimeSegments int
}

// centerAt returns the sphere's center at fraction t (0=Center0, 1=Center1)
// of the scene's time range.
func (s MovingSphere) centerAt(t float64) core.Vec3 {
	return s.Center0.Lerp(s.Center1, t)
}

func (s MovingSphere) boundsAt(t float64) core.Bounds3 {
	c := s.centerAt(t)
	r := core.NewVec3(s.Radius, s.Radius, s.Radius)
	return core.NewBounds3(c.Subtract(r), c.Add(r))
}

// LinearBounds returns the conservative linear bounding box of the sphere
// over tr, assuming tr is a sub-range of the full scene time range [0,1].
func (s MovingSphere) LinearBounds(tr core.TimeRange) core.LinearBounds {
	return core.NewLinearBounds(s.boundsAt(tr.Begin), s.boundsAt(tr.End))
}

// timeSegmentRange maps tr onto the integer [begin, end) range of the
// sphere's time segments it overlaps, mirroring the builder's own
// segment-boundary convention (segments evenly spaced over [0,1]).
func timeSegmentRange(tr core.TimeRange, totalSegments int) mbvh.Range {
	begin := int(tr.Begin * float64(totalSegments))
	end := int(tr.End*float64(totalSegments) + 0.999999)
	if begin < 0 {
		begin = 0
	}
	if end > totalSegments {
		end = totalSegments
	}
	if end <= begin {
		end = begin + 1
	}
	return mbvh.NewRange(begin, end)
}

// Source is an in-memory moving-sphere scene: a lookup table keyed by
// primitive ID, satisfying the shape of mbvh.RecalculateFunc via Recalculate.
type Source struct {
	spheres []MovingSphere
}

// NewSource creates a Source over spheres, indexed by PrimID (spheres must
// be supplied with PrimID equal to their position in the slice).
func NewSource(spheres []MovingSphere) *Source {
	return &Source{spheres: spheres}
}

// Spheres returns the underlying sphere slice.
func (src *Source) Spheres() []MovingSphere {
	return src.spheres
}

// PrimRefs builds the initial PrimRefMB slice over the full scene time
// range, one per sphere, ready to seed a root mbvh.BuildRecord.
func (src *Source) PrimRefs(sceneTime core.TimeRange) []mbvh.PrimRefMB {
	refs := make([]mbvh.PrimRefMB, len(src.spheres))
	for i, s := range src.spheres {
		segRange := timeSegmentRange(sceneTime, s.TotalTimeSegments)
		refs[i] = mbvh.PrimRefMB{
			Bounds:            s.LinearBounds(sceneTime),
			LocalTimeSegments: segRange.Size(),
			TotalTimeSegments: s.TotalTimeSegments,
			SceneID:           s.SceneID,
			PrimID:            s.PrimID,
		}
	}
	return refs
}

// Recalculate implements mbvh.RecalculateFunc: it looks up prim's sphere by
// PrimID and recomputes its linear bounds and local time-segment range
// against the narrower window tr.
func (src *Source) Recalculate(prim mbvh.PrimRefMB, tr core.TimeRange) (mbvh.PrimRefMB, mbvh.Range) {
	sphere := src.spheres[prim.PrimID]
	segRange := timeSegmentRange(tr, sphere.TotalTimeSegments)
	out := prim
	out.Bounds = sphere.LinearBounds(tr)
	out.LocalTimeSegments = segRange.Size()
	return out, segRange
}
