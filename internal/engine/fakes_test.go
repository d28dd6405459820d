package engine

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// calls is shared by all fakes of one test so ordering across them can be checked.
type calls struct {
	log []string
}

func (c *calls) add(name string) {
	c.log = append(c.log, name)
}

func (c *calls) count(name string) int {
	n := 0
	for _, l := range c.log {
		if l == name {
			n++
		}
	}
	return n
}

func (c *calls) index(name string) int {
	for i, l := range c.log {
		if l == name {
			return i
		}
	}
	return -1
}

type fakeInput struct {
	pressed map[Button]bool
	pointer mgl32.Vec2
}

func (i *fakeInput) IsPressed(b Button) bool { return i.pressed[b] }
func (i *fakeInput) PointerPosition() mgl32.Vec2 { return i.pointer }

type fakeWindow struct {
	calls     *calls
	input     *fakeInput
	width     int
	height    int
	delta     time.Duration
	quitAfter int // ShouldQuit reports true from this tick on; 0 never
	ticks     int
	closeErr  error
}

func (w *fakeWindow) Tick() {
	w.ticks++
	w.calls.add("window.Tick")
}

func (w *fakeWindow) DeltaTime() time.Duration {
	w.calls.add("window.DeltaTime")
	return w.delta
}

func (w *fakeWindow) ShouldQuit() bool {
	w.calls.add("window.ShouldQuit")
	return w.quitAfter > 0 && w.ticks >= w.quitAfter
}

func (w *fakeWindow) Input() Input {
	w.calls.add("window.Input")
	return w.input
}

func (w *fakeWindow) SwapBuffer() { w.calls.add("window.SwapBuffer") }
func (w *fakeWindow) Width() int { return w.width }
func (w *fakeWindow) Height() int { return w.height }

func (w *fakeWindow) Close() error {
	w.calls.add("window.Close")
	return w.closeErr
}

type line struct {
	a, b mgl32.Vec3
	c    Color
}

type fakeRenderer struct {
	calls    *calls
	view     mgl32.Mat4
	proj     mgl32.Mat4
	lines    []line
	closeErr error
}

func (r *fakeRenderer) ViewMatrix() mgl32.Mat4 { return r.view }
func (r *fakeRenderer) ProjectionMatrix() mgl32.Mat4 { return r.proj }
func (r *fakeRenderer) SetCamera(c Camera) {}
func (r *fakeRenderer) Clear(c Color) {}

func (r *fakeRenderer) DrawLine(a, b mgl32.Vec3, c Color) {
	r.calls.add("renderer.DrawLine")
	r.lines = append(r.lines, line{a, b, c})
}

func (r *fakeRenderer) Close() error {
	r.calls.add("renderer.Close")
	return r.closeErr
}

type fakePlatform struct {
	window      *fakeWindow
	renderer    *fakeRenderer
	windowErr   error
	rendererErr error
}

func (p *fakePlatform) OpenWindow(cfg WindowConfig) (Window, error) {
	if p.windowErr != nil {
		return nil, p.windowErr
	}
	p.window.calls.add("platform.OpenWindow")
	return p.window, nil
}

func (p *fakePlatform) OpenRenderer(w Window) (Renderer, error) {
	if p.rendererErr != nil {
		return nil, p.rendererErr
	}
	p.renderer.calls.add("platform.OpenRenderer")
	return p.renderer, nil
}

type fakeGame struct {
	calls     *calls
	engine    *Engine
	initErr   error
	initWith  Renderer
	deltas    []time.Duration
	stopAfter int // calls Engine.Stop during this update; 0 never
	updates   int
	onUpdate  func()
}

func (g *fakeGame) SetEngine(e *Engine) {
	g.calls.add("game.SetEngine")
	g.engine = e
}

func (g *fakeGame) Init(r Renderer) error {
	g.calls.add("game.Init")
	g.initWith = r
	return g.initErr
}

func (g *fakeGame) UpdateInput(in Input, dt time.Duration) {
	g.calls.add("game.UpdateInput")
}

func (g *fakeGame) Update(dt time.Duration) {
	g.calls.add("game.Update")
	g.deltas = append(g.deltas, dt)
	g.updates++
	if g.stopAfter > 0 && g.updates >= g.stopAfter {
		g.engine.Stop()
	}
	if g.onUpdate != nil {
		g.onUpdate()
	}
}

func (g *fakeGame) Render(r Renderer) {
	g.calls.add("game.Render")
}

type fixture struct {
	calls    *calls
	input    *fakeInput
	window   *fakeWindow
	renderer *fakeRenderer
	platform *fakePlatform
	game     *fakeGame
}

func newFixture() *fixture {
	c := &calls{}
	in := &fakeInput{pressed: map[Button]bool{}}
	w := &fakeWindow{calls: c, input: in, width: 1679, height: 1049, delta: 16 * time.Millisecond}
	r := &fakeRenderer{calls: c, view: mgl32.Ident4(), proj: mgl32.Ident4()}
	return &fixture{
		calls:    c,
		input:    in,
		window:   w,
		renderer: r,
		platform: &fakePlatform{window: w, renderer: r},
		game:     &fakeGame{calls: c},
	}
}

func (f *fixture) options() Options {
	return Options{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		DebugRay: true,
		Window:   WindowConfig{Title: "test", Width: 1679, Height: 1049},
	}
}

var errBoom = errors.New("boom")
