package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type RaycastHit struct {
	// Index of the volume that was hit in the slice passed to Raycast.
	Index    int
	Point    mgl32.Vec3
	Normal   mgl32.Vec3
	Distance float32
}

// Collider is a volume that rays can hit.
type Collider interface {
	Bounds() AABB
	Contains(p mgl32.Vec3) bool
	Raycast(origin, direction mgl32.Vec3, maxDistance float32) (RaycastHit, bool)
}

// Raycast checks the ray against every collider and returns the closest hit.
// Colliders whose bounds miss the box around the ray segment are skipped.
func Raycast(origin, direction mgl32.Vec3, maxDistance float32, colliders []Collider) (RaycastHit, bool) {
	if direction.Len() == 0 {
		return RaycastHit{}, false
	}
	direction = direction.Normalize()
	segment := NewAABBFromPoints(origin, origin.Add(direction.Mul(maxDistance)))

	var closestHit RaycastHit
	closestHit.Distance = maxDistance
	hit := false

	for i, c := range colliders {
		if !segment.Intersects(c.Bounds()) {
			continue
		}
		if hitInfo, ok := c.Raycast(origin, direction, maxDistance); ok {
			if hitInfo.Distance < closestHit.Distance || !hit {
				closestHit = hitInfo
				closestHit.Index = i
				hit = true
			}
		}
	}

	return closestHit, hit
}

// RaycastBox is a slab test. direction must be normalized.
func RaycastBox(origin, direction mgl32.Vec3, box AABB, maxDistance float32) (RaycastHit, bool) {
	tmin := float32(-math.MaxFloat32)
	tmax := float32(math.MaxFloat32)

	for axis := 0; axis < 3; axis++ {
		lo, hi := box.Min[axis], box.Max[axis]
		if direction[axis] == 0 {
			if origin[axis] < lo || origin[axis] > hi {
				return RaycastHit{}, false
			}
			continue
		}
		t1 := (lo - origin[axis]) / direction[axis]
		t2 := (hi - origin[axis]) / direction[axis]
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
		if tmin > tmax {
			return RaycastHit{}, false
		}
	}

	if tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	// Origin inside the box: report the exit point.
	t := tmin
	if t < 0 {
		t = tmax
	}
	if t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(direction.Mul(t))

	// Normal of the face that was hit
	var normal mgl32.Vec3
	epsilon := float32(0.001)
	switch {
	case abs(point.X()-box.Min.X()) < epsilon:
		normal = mgl32.Vec3{-1, 0, 0}
	case abs(point.X()-box.Max.X()) < epsilon:
		normal = mgl32.Vec3{1, 0, 0}
	case abs(point.Y()-box.Min.Y()) < epsilon:
		normal = mgl32.Vec3{0, -1, 0}
	case abs(point.Y()-box.Max.Y()) < epsilon:
		normal = mgl32.Vec3{0, 1, 0}
	case abs(point.Z()-box.Min.Z()) < epsilon:
		normal = mgl32.Vec3{0, 0, -1}
	default:
		normal = mgl32.Vec3{0, 0, 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// RaycastSphere intersects a ray with a sphere. direction must be normalized.
func RaycastSphere(origin, direction mgl32.Vec3, sphere Sphere, maxDistance float32) (RaycastHit, bool) {
	oc := origin.Sub(sphere.Center)
	a := direction.Dot(direction)
	b := 2.0 * oc.Dot(direction)
	c := oc.Dot(oc) - sphere.Radius*sphere.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	sq := float32(math.Sqrt(float64(discriminant)))
	t := (-b - sq) / (2 * a)
	if t < 0 {
		t = (-b + sq) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := origin.Add(direction.Mul(t))
	normal := point.Sub(sphere.Center).Normalize()

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
