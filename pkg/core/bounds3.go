package core

import "math"

// Bounds3 represents an axis-aligned bounding box.
type Bounds3 struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// EmptyBounds3 returns the identity element for Union: combining it with any
// bounds yields that bounds unchanged.
func EmptyBounds3() Bounds3 {
	return Bounds3{
		Min: NewVec3(math.Inf(1), math.Inf(1), math.Inf(1)),
		Max: NewVec3(math.Inf(-1), math.Inf(-1), math.Inf(-1)),
	}
}

// NewBounds3 creates a new Bounds3 from min and max points.
func NewBounds3(min, max Vec3) Bounds3 {
	return Bounds3{Min: min, Max: max}
}

// NewBounds3FromPoints creates a Bounds3 that bounds all given points.
func NewBounds3FromPoints(points ...Vec3) Bounds3 {
	b := EmptyBounds3()
	for _, p := range points {
		b.Min = MinVec3(b.Min, p)
		b.Max = MaxVec3(b.Max, p)
	}
	return b
}

// Union returns a Bounds3 that bounds both this Bounds3 and another.
func (b Bounds3) Union(other Bounds3) Bounds3 {
	return Bounds3{
		Min: MinVec3(b.Min, other.Min),
		Max: MaxVec3(b.Max, other.Max),
	}
}

// UnionPoint returns a Bounds3 that also bounds the given point.
func (b Bounds3) UnionPoint(p Vec3) Bounds3 {
	return Bounds3{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Center returns the center point of the Bounds3.
func (b Bounds3) Center() Vec3 {
	return b.Min.Add(b.Max).Multiply(0.5)
}

// Size returns the size (extent) of the Bounds3 along each axis.
func (b Bounds3) Size() Vec3 {
	return b.Max.Subtract(b.Min)
}

// HalfArea returns half the surface area (xy + yz + zx face sum), the
// quantity the SAH cost model is expressed in terms of.
func (b Bounds3) HalfArea() float64 {
	size := b.Size()
	if size.X < 0 || size.Y < 0 || size.Z < 0 {
		return 0
	}
	return size.X*size.Y + size.Y*size.Z + size.Z*size.X
}

// SurfaceArea returns the full surface area of the Bounds3.
func (b Bounds3) SurfaceArea() float64 {
	return 2.0 * b.HalfArea()
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent.
func (b Bounds3) LongestAxis() int {
	size := b.Size()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// IsValid returns true if this is a valid Bounds3 (min <= max for all axes).
func (b Bounds3) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// LinearBounds is a time-linear bounding box pair: the shape's bounds at the
// low and high end of a time range. Bounds at an intermediate time are found
// by linear interpolation between Lo and Hi.
type LinearBounds struct {
	Lo Bounds3
	Hi Bounds3
}

// NewLinearBounds creates a LinearBounds from its two endpoint bounds.
func NewLinearBounds(lo, hi Bounds3) LinearBounds {
	return LinearBounds{Lo: lo, Hi: hi}
}

// Bounds returns the single Bounds3 that conservatively bounds the shape over
// the entire interpolated interval, not just its two endpoints.
func (lb LinearBounds) Bounds() Bounds3 {
	return lb.Lo.Union(lb.Hi)
}

// Union returns the LinearBounds bounding both linear bounds.
func (lb LinearBounds) Union(other LinearBounds) LinearBounds {
	return LinearBounds{Lo: lb.Lo.Union(other.Lo), Hi: lb.Hi.Union(other.Hi)}
}

// ExpectedHalfArea returns the approximate half-area of the bounds averaged
// over the time range, used to rank children by expected traversal cost
// during recursive partitioning (spec: expectedApproxHalfArea).
func (lb LinearBounds) ExpectedHalfArea() float64 {
	return (lb.Lo.HalfArea() + lb.Hi.HalfArea()) * 0.5
}

// Interpolate returns the Bounds3 at the given fraction (0=Lo, 1=Hi) of the
// time interval this LinearBounds spans.
func (lb LinearBounds) Interpolate(t float64) Bounds3 {
	return Bounds3{
		Min: lb.Lo.Min.Lerp(lb.Hi.Min, t),
		Max: lb.Lo.Max.Lerp(lb.Hi.Max, t),
	}
}
