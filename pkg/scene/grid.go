package scene

import "github.com/dcroot/mbvh/pkg/core"

// NewMovingSphereGrid builds an nx-by-ny grid of moving spheres of the
// given radius, spacing apart on the XZ plane, each drifting along Y by 0,
// a quarter or half of spacing, picked by (ix+iy) mod 3, so the set has a
// mix of short and long motion paths. totalTimeSegments is shared by every
// sphere. Grounded on the teacher's grid-of-spheres generator
// (pkg/scene/spheregrid.go), stripped of its camera/material/color
// concerns -- this package's only job is producing primitive geometry.
func NewMovingSphereGrid(sceneID, nx, ny int, spacing, radius float64, totalTimeSegments int) []MovingSphere {
	spheres := make([]MovingSphere, 0, nx*ny)
	id := 0
	for ix := 0; ix < nx; ix++ {
		for iy := 0; iy < ny; iy++ {
			base := core.NewVec3(float64(ix)*spacing, 0, float64(iy)*spacing)
			drift := spacing * 0.5 * float64((ix+iy)%3) / 2.0
			spheres = append(spheres, MovingSphere{
				SceneID:           sceneID,
				PrimID:            id,
				Center0:           base,
				Center1:           base.Add(core.NewVec3(0, drift, 0)),
				Radius:            radius,
				TotalTimeSegments: totalTimeSegments,
			})
			id++
		}
	}
	return spheres
}
