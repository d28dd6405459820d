package engine

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrSingularMatrix is returned when projection × view has no inverse.
	ErrSingularMatrix = errors.New("engine: view-projection matrix is not invertible")
	// ErrEmptyViewport is returned when the viewport has no area.
	ErrEmptyViewport = errors.New("engine: viewport has zero width or height")
)

// Viewport is the pixel rectangle normalized device coordinates map onto.
// It must match the rectangle the projection was built for.
type Viewport struct {
	X, Y          float32
	Width, Height float32
}

// NewViewport returns a viewport covering a width × height window.
func NewViewport(width, height int) Viewport {
	return Viewport{Width: float32(width), Height: float32(height)}
}

// Center is the pixel at the middle of the viewport.
func (v Viewport) Center() mgl32.Vec2 {
	return mgl32.Vec2{v.X + v.Width/2, v.Y + v.Height/2}
}

// Normalize maps a pixel position (origin top-left) to [0,1] with Y pointing up.
func (v Viewport) Normalize(p mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		(p.X() - v.X) / v.Width,
		1 - (p.Y()-v.Y)/v.Height,
	}
}

// Ray is the world-space segment between the near and far plane unprojections
// of one screen position.
type Ray struct {
	Near mgl32.Vec3
	Far  mgl32.Vec3
}

// Direction is the unit vector from Near to Far.
func (r Ray) Direction() mgl32.Vec3 {
	return r.Far.Sub(r.Near).Normalize()
}

// Length is the distance between the near and far points.
func (r Ray) Length() float32 {
	return r.Far.Sub(r.Near).Len()
}

func (r Ray) String() string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f) -> (%.4f, %.4f, %.4f)",
		r.Near.X(), r.Near.Y(), r.Near.Z(), r.Far.X(), r.Far.Y(), r.Far.Z())
}

// ProjectLine unprojects a pointer position at depth 0 (near plane) and depth
// 1 (far plane) through the inverse of projection × view. It has no side
// effects: identical inputs give identical outputs.
func ProjectLine(pointer mgl32.Vec2, view, projection mgl32.Mat4, vp Viewport) (Ray, error) {
	if vp.Width == 0 || vp.Height == 0 {
		return Ray{}, ErrEmptyViewport
	}

	viewProj := projection.Mul4(view)
	if viewProj.Det() == 0 {
		return Ray{}, ErrSingularMatrix
	}
	inv := viewProj.Inv()

	rel := vp.Normalize(pointer)
	near, err := unproject(inv, rel, 0)
	if err != nil {
		return Ray{}, err
	}
	far, err := unproject(inv, rel, 1)
	if err != nil {
		return Ray{}, err
	}
	return Ray{Near: near, Far: far}, nil
}

// unproject maps a normalized [0,1] screen position and depth back to world
// space using an already inverted view-projection matrix.
func unproject(inv mgl32.Mat4, rel mgl32.Vec2, depth float32) (mgl32.Vec3, error) {
	ndc := mgl32.Vec4{
		2*rel.X() - 1,
		2*rel.Y() - 1,
		2*depth - 1,
		1,
	}
	world := inv.Mul4x1(ndc)
	if world.W() == 0 {
		return mgl32.Vec3{}, ErrSingularMatrix
	}
	return world.Vec3().Mul(1 / world.W()), nil
}
