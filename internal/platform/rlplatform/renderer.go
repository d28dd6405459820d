package rlplatform

import (
	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"pickshell/internal/engine"
)

// BeginMode3D always projects with raylib's cull distances, so the matrices
// handed out for picking use the same planes.
const (
	cullNear float32 = 0.01
	cullFar  float32 = 1000.0
)

type line struct {
	a, b  rl.Vector3
	color rl.Color
}

// Renderer batches debug lines and draws them in one 3D pass just before the
// window swaps.
type Renderer struct {
	window *Window
	camera rl.Camera3D
	lines  []line
	status []string
}

func newRenderer(w *Window) *Renderer {
	r := &Renderer{
		window: w,
		camera: rl.Camera3D{
			Position:   rl.Vector3{X: 10, Y: 10, Z: 10},
			Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
			Fovy:       45,
			Projection: rl.CameraPerspective,
		},
	}
	w.beforeSwap = r.flush

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 16)
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(rl.RayWhite))
	return r
}

func (r *Renderer) SetCamera(c engine.Camera) {
	r.camera = rl.Camera3D{
		Position:   toVector3(c.Eye),
		Target:     toVector3(c.Target),
		Up:         toVector3(c.Up),
		Fovy:       c.FovY,
		Projection: rl.CameraPerspective,
	}
}

func (r *Renderer) ViewMatrix() mgl32.Mat4 {
	return toMat4(rl.GetCameraMatrix(r.camera))
}

func (r *Renderer) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(r.window.Width()) / float32(r.window.Height())
	return toMat4(rl.MatrixPerspective(r.camera.Fovy*rl.Deg2rad, aspect, cullNear, cullFar))
}

func (r *Renderer) Clear(c engine.Color) {
	rl.ClearBackground(toColor(c))
}

func (r *Renderer) DrawLine(a, b mgl32.Vec3, c engine.Color) {
	r.lines = append(r.lines, line{a: toVector3(a), b: toVector3(b), color: toColor(c)})
}

func (r *Renderer) DrawStatus(lines []string) {
	r.status = append(r.status[:0], lines...)
}

func (r *Renderer) flush() {
	if len(r.lines) > 0 {
		rl.BeginMode3D(r.camera)
		for _, l := range r.lines {
			rl.DrawLine3D(l.a, l.b, l.color)
		}
		rl.EndMode3D()
		r.lines = r.lines[:0]
	}

	if len(r.status) > 0 {
		y := float32(10)
		for _, s := range r.status {
			gui.Label(rl.Rectangle{X: 10, Y: y, Width: float32(r.window.Width()) - 20, Height: 20}, s)
			y += 22
		}
		rl.DrawFPS(int32(r.window.Width())-100, 10)
		r.status = r.status[:0]
	}
}

func (r *Renderer) Close() error {
	r.window.beforeSwap = nil
	r.lines = nil
	r.status = nil
	return nil
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.Vector3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

func toColor(c engine.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, c.A)
}

// toMat4 converts raylib's matrix, whose Mn fields are in column-major order,
// to mathgl's column-major array.
func toMat4(m rl.Matrix) mgl32.Mat4 {
	return mgl32.Mat4{
		m.M0, m.M1, m.M2, m.M3,
		m.M4, m.M5, m.M6, m.M7,
		m.M8, m.M9, m.M10, m.M11,
		m.M12, m.M13, m.M14, m.M15,
	}
}
