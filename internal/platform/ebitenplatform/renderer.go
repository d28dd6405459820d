//go:build ebiten

package ebitenplatform

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"pickshell/internal/engine"
)

var defaultCamera = engine.Camera{
	Eye:  mgl32.Vec3{10, 10, 10},
	Up:   mgl32.Vec3{0, 1, 0},
	FovY: 45,
	Near: 0.01,
	Far:  1000,
}

// Points closer to the eye than this in clip space are cut away.
const clipEpsilon = 1e-5

type segment struct {
	x0, y0, x1, y1 float32
	color          color.RGBA
}

// frame is everything recorded during one tick, replayed by ebiten's Draw.
type frame struct {
	clear    color.RGBA
	segments []segment
	status   []string
}

func (f *frame) reset() {
	f.clear = color.RGBA{}
	f.segments = f.segments[:0]
	f.status = f.status[:0]
}

func (f *frame) draw(screen *ebiten.Image) {
	screen.Fill(f.clear)
	for _, s := range f.segments {
		vector.StrokeLine(screen, s.x0, s.y0, s.x1, s.y1, 1, s.color, true)
	}
	for i, line := range f.status {
		ebitenutil.DebugPrintAt(screen, line, 10, 10+i*16)
	}
}

// Renderer projects lines on the CPU and records them as 2D segments.
type Renderer struct {
	window *Window
	camera engine.Camera
}

func (r *Renderer) SetCamera(c engine.Camera) {
	r.camera = c
}

func (r *Renderer) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(r.camera.Eye, r.camera.Target, r.camera.Up)
}

func (r *Renderer) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(r.window.Width()) / float32(r.window.Height())
	return mgl32.Perspective(mgl32.DegToRad(r.camera.FovY), aspect, r.camera.Near, r.camera.Far)
}

func (r *Renderer) Clear(c engine.Color) {
	r.window.pending.clear = toRGBA(c)
	r.window.pending.segments = r.window.pending.segments[:0]
}

func (r *Renderer) DrawLine(a, b mgl32.Vec3, c engine.Color) {
	viewProj := r.ProjectionMatrix().Mul4(r.ViewMatrix())
	s, ok := projectSegment(viewProj, a, b, float32(r.window.Width()), float32(r.window.Height()))
	if !ok {
		return
	}
	s.color = toRGBA(c)
	r.window.pending.segments = append(r.window.pending.segments, s)
}

func (r *Renderer) DrawStatus(lines []string) {
	r.window.pending.status = append(r.window.pending.status[:0], lines...)
}

func (r *Renderer) Close() error {
	return nil
}

// projectSegment maps a world-space segment to window pixels, clipping it
// against the plane just in front of the eye.
func projectSegment(viewProj mgl32.Mat4, a, b mgl32.Vec3, width, height float32) (segment, bool) {
	ca := viewProj.Mul4x1(a.Vec4(1))
	cb := viewProj.Mul4x1(b.Vec4(1))

	if ca.W() < clipEpsilon && cb.W() < clipEpsilon {
		return segment{}, false
	}
	if ca.W() < clipEpsilon {
		ca = clipToEye(cb, ca)
	} else if cb.W() < clipEpsilon {
		cb = clipToEye(ca, cb)
	}

	x0, y0 := toScreen(ca, width, height)
	x1, y1 := toScreen(cb, width, height)
	return segment{x0: x0, y0: y0, x1: x1, y1: y1}, true
}

// clipToEye moves behind towards front until its w reaches clipEpsilon.
func clipToEye(front, behind mgl32.Vec4) mgl32.Vec4 {
	t := (front.W() - clipEpsilon) / (front.W() - behind.W())
	return front.Add(behind.Sub(front).Mul(t))
}

func toScreen(clip mgl32.Vec4, width, height float32) (float32, float32) {
	ndcX := clip.X() / clip.W()
	ndcY := clip.Y() / clip.W()
	return (ndcX + 1) / 2 * width, (1 - ndcY) / 2 * height
}

func toRGBA(c engine.Color) color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}
