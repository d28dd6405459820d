package physics

import "github.com/go-gl/mathgl/mgl32"

type AABB struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size mgl32.Vec3) AABB {
	half := size.Mul(0.5)
	return AABB{
		Min: center.Sub(half),
		Max: center.Add(half),
	}
}

// NewAABBFromPoints returns the smallest box holding both points.
func NewAABBFromPoints(p, q mgl32.Vec3) AABB {
	var b AABB
	for i := 0; i < 3; i++ {
		b.Min[i] = min(p[i], q[i])
		b.Max[i] = max(p[i], q[i])
	}
	return b
}

func (a AABB) Center() mgl32.Vec3 {
	return a.Min.Add(a.Max).Mul(0.5)
}

func (a AABB) Size() mgl32.Vec3 {
	return a.Max.Sub(a.Min)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X() <= b.Max.X() && a.Max.X() >= b.Min.X() &&
		a.Min.Y() <= b.Max.Y() && a.Max.Y() >= b.Min.Y() &&
		a.Min.Z() <= b.Max.Z() && a.Max.Z() >= b.Min.Z()
}

func (a AABB) Contains(p mgl32.Vec3) bool {
	return p.X() >= a.Min.X() && p.X() <= a.Max.X() &&
		p.Y() >= a.Min.Y() && p.Y() <= a.Max.Y() &&
		p.Z() >= a.Min.Z() && p.Z() <= a.Max.Z()
}

// Corners returns the eight corners, bottom face first.
func (a AABB) Corners() [8]mgl32.Vec3 {
	lo, hi := a.Min, a.Max
	return [8]mgl32.Vec3{
		{lo.X(), lo.Y(), lo.Z()},
		{hi.X(), lo.Y(), lo.Z()},
		{hi.X(), lo.Y(), hi.Z()},
		{lo.X(), lo.Y(), hi.Z()},
		{lo.X(), hi.Y(), lo.Z()},
		{hi.X(), hi.Y(), lo.Z()},
		{hi.X(), hi.Y(), hi.Z()},
		{lo.X(), hi.Y(), hi.Z()},
	}
}

// Edges returns the twelve edges as corner index pairs into Corners.
func Edges() [12][2]int {
	return [12][2]int{
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	}
}

// Bounds returns the box itself.
func (a AABB) Bounds() AABB {
	return a
}

func (a AABB) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	return RaycastBox(origin, direction, a, maxDistance)
}

type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}

func (s Sphere) Bounds() AABB {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

func (s Sphere) Contains(p mgl32.Vec3) bool {
	return p.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

func (s Sphere) Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool) {
	return RaycastSphere(origin, direction, s, maxDistance)
}
