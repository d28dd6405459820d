package game

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickshell/internal/engine"
)

type testInput struct {
	pressed map[engine.Button]bool
	pointer mgl32.Vec2
}

func (i *testInput) IsPressed(b engine.Button) bool { return i.pressed[b] }
func (i *testInput) PointerPosition() mgl32.Vec2 { return i.pointer }

type testWindow struct {
	input         *testInput
	width, height int
}

func (w *testWindow) Tick() {}
func (w *testWindow) DeltaTime() time.Duration { return 10 * time.Millisecond }
func (w *testWindow) ShouldQuit() bool { return false }
func (w *testWindow) Input() engine.Input { return w.input }
func (w *testWindow) SwapBuffer() {}
func (w *testWindow) Width() int { return w.width }
func (w *testWindow) Height() int { return w.height }
func (w *testWindow) Close() error { return nil }

// testRenderer builds real matrices so picking can be checked end to end.
type testRenderer struct {
	window *testWindow
	cam    engine.Camera
	lines  int
	status []string
}

func (r *testRenderer) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(r.cam.Eye, r.cam.Target, r.cam.Up)
}

func (r *testRenderer) ProjectionMatrix() mgl32.Mat4 {
	aspect := float32(r.window.width) / float32(r.window.height)
	return mgl32.Perspective(mgl32.DegToRad(r.cam.FovY), aspect, r.cam.Near, r.cam.Far)
}

func (r *testRenderer) SetCamera(c engine.Camera) { r.cam = c }
func (r *testRenderer) Clear(c engine.Color) {}
func (r *testRenderer) DrawLine(a, b mgl32.Vec3, c engine.Color) { r.lines++ }
func (r *testRenderer) DrawStatus(lines []string) { r.status = lines }
func (r *testRenderer) Close() error { return nil }

type testPlatform struct {
	window   *testWindow
	renderer *testRenderer
}

func (p *testPlatform) OpenWindow(engine.WindowConfig) (engine.Window, error) { return p.window, nil }
func (p *testPlatform) OpenRenderer(engine.Window) (engine.Renderer, error) { return p.renderer, nil }

func setup(t *testing.T) (*Game, *engine.Engine, *testInput, *testRenderer) {
	t.Helper()
	in := &testInput{pressed: map[engine.Button]bool{}}
	w := &testWindow{input: in, width: 800, height: 600}
	r := &testRenderer{window: w}

	g := New(Options{FovY: 45, Near: 0.1, Far: 500, Distance: 18})
	e, err := engine.New(g, &testPlatform{window: w, renderer: r}, engine.Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		DebugRay: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { e.Close() })

	g.SetEngine(e)
	require.NoError(t, g.Init(r))
	return g, e, in, r
}

func pixelOf(r *testRenderer, world mgl32.Vec3) mgl32.Vec2 {
	clip := r.ProjectionMatrix().Mul4(r.ViewMatrix()).Mul4x1(world.Vec4(1))
	ndc := clip.Vec3().Mul(1 / clip.W())
	return mgl32.Vec2{
		(ndc.X() + 1) / 2 * float32(r.window.width),
		(1 - (ndc.Y()+1)/2) * float32(r.window.height),
	}
}

func TestInitBuildsScene(t *testing.T) {
	g, _, _, r := setup(t)

	assert.Len(t, g.Targets, 6)
	assert.Equal(t, -1, g.Selected)
	assert.Equal(t, g.Orbit.Eye(), r.cam.Eye)
}

func TestClickSelectsBox(t *testing.T) {
	g, e, in, r := setup(t)

	target := g.Targets[2].Shape.Bounds().Center()
	in.pressed[engine.MouseLeft] = true
	in.pointer = pixelOf(r, target)

	e.Tick()

	require.Equal(t, 2, g.Selected)
	assert.True(t, g.Targets[2].Shape.Contains(g.LastHit.Point.Add(g.LastHit.Normal.Mul(-0.001))))
	assert.Contains(t, g.StatusLines()[2], "Box_2")
}

func TestClickSelectsOrb(t *testing.T) {
	g, e, in, r := setup(t)

	orb := len(g.Targets) - 1
	in.pressed[engine.MouseLeft] = true
	in.pointer = pixelOf(r, g.Targets[orb].Shape.Bounds().Center())

	e.Tick()

	require.Equal(t, orb, g.Selected)
	assert.Contains(t, g.StatusLines()[2], "Orb")
	assert.InDelta(t, 1, g.LastHit.Normal.Len(), 1e-4)
}

func TestClickOnSkyClearsSelection(t *testing.T) {
	g, e, in, _ := setup(t)
	g.Selected = 1

	in.pressed[engine.MouseLeft] = true
	in.pointer = mgl32.Vec2{400, 0}

	e.Tick()
	assert.Equal(t, -1, g.Selected)
}

func TestRenderDrawsAndShowsStatus(t *testing.T) {
	g, e, _, r := setup(t)

	e.Tick()

	// 21 grid rows and columns, 12 edges per box, 3 rings for the orb
	assert.Equal(t, 2*21+12*(len(g.Targets)-1)+3*sphereSegments, r.lines)
	assert.NotEmpty(t, r.status)
}

func TestF1TogglesOnPress(t *testing.T) {
	g, e, in, _ := setup(t)
	require.True(t, g.ShowStatus)

	in.pressed[engine.KeyF1] = true
	e.Tick()
	e.Tick()
	assert.False(t, g.ShowStatus)

	in.pressed[engine.KeyF1] = false
	e.Tick()
	in.pressed[engine.KeyF1] = true
	e.Tick()
	assert.True(t, g.ShowStatus)
}

func TestEscapeStopsEngine(t *testing.T) {
	_, e, in, _ := setup(t)

	in.pressed[engine.KeyEscape] = true
	e.Tick()
	assert.True(t, e.Stopped())
}

func TestSetEngineSubscribesOnce(t *testing.T) {
	g, e, _, _ := setup(t)
	g.SetEngine(e)
	g.SetEngine(e)
	assert.Equal(t, 1, e.Picked.ListenerCount())
}

func TestCameraStaysOutsideTargets(t *testing.T) {
	g, _, in, _ := setup(t)
	g.Orbit.Target = mgl32.Vec3{0, 2, 8}
	g.Orbit.Yaw, g.Orbit.Pitch, g.Orbit.Distance = 180, 0, 3.6

	// Zooming in would put the eye inside the pillar
	in.pressed[engine.KeyW] = true
	g.UpdateInput(in, 100*time.Millisecond)
	assert.InDelta(t, 3.6, g.Orbit.Distance, 1e-5)

	in.pressed[engine.KeyW] = false
	in.pressed[engine.KeyS] = true
	g.UpdateInput(in, 100*time.Millisecond)
	assert.InDelta(t, 4.6, g.Orbit.Distance, 1e-5)
}

func TestReattachFollowsNewEngine(t *testing.T) {
	g, first, in, r := setup(t)

	w := &testWindow{input: in, width: 800, height: 600}
	second, err := engine.New(g, &testPlatform{window: w, renderer: r}, engine.Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	defer second.Close()

	g.SetEngine(second)
	assert.Same(t, second, g.Engine())
	assert.Equal(t, 1, second.Picked.ListenerCount())

	// Picks from the engine the game left are ignored
	g.Selected = 3
	in.pressed[engine.MouseLeft] = true
	in.pointer = mgl32.Vec2{400, 0}
	first.Tick()
	assert.Equal(t, 3, g.Selected)

	second.Tick()
	assert.Equal(t, -1, g.Selected)
}
