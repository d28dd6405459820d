//go:build sdl

package sdlplatform

import (
	"strings"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"

	"pickshell/internal/engine"
)

// Renderer draws with the fixed-function pipeline. Matrices are built with
// mathgl and loaded straight into GL.
type Renderer struct {
	window *Window
	camera engine.Camera
	status string
}

func newRenderer(w *Window) *Renderer {
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.LINE_SMOOTH)
	return &Renderer{
		window: w,
		camera: engine.Camera{
			Eye:  mgl32.Vec3{10, 10, 10},
			Up:   mgl32.Vec3{0, 1, 0},
			FovY: 45,
			Near: 0.01,
			Far:  1000,
		},
	}
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
	gl.Viewport(0, 0, int32(r.window.Width()), int32(r.window.Height()))
	gl.ClearColor(float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) DrawLine(a, b mgl32.Vec3, c engine.Color) {
	proj := r.ProjectionMatrix()
	view := r.ViewMatrix()

	gl.MatrixMode(gl.PROJECTION)
	gl.LoadMatrixf(&proj[0])
	gl.MatrixMode(gl.MODELVIEW)
	gl.LoadMatrixf(&view[0])

	gl.Begin(gl.LINES)
	gl.Color4ub(c.R, c.G, c.B, c.A)
	gl.Vertex3f(a.X(), a.Y(), a.Z())
	gl.Vertex3f(b.X(), b.Y(), b.Z())
	gl.End()
}

// DrawStatus puts everything but the help line into the window title. SDL
// has no text rendering without SDL_ttf.
func (r *Renderer) DrawStatus(lines []string) {
	status := r.window.title
	if len(lines) > 1 {
		status += " | " + strings.Join(lines[1:], " | ")
	}
	if status != r.status {
		r.status = status
		r.window.setTitle(status)
	}
}

func (r *Renderer) Close() error {
	return nil
}
