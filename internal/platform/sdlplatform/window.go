//go:build sdl

// Package sdlplatform runs the engine on an SDL2 window with a legacy
// OpenGL 2.1 context.
package sdlplatform

import (
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"

	"pickshell/internal/engine"
)

var mouseMasks = map[engine.Button]uint32{
	engine.MouseLeft:   1 << (sdl.BUTTON_LEFT - 1),
	engine.MouseRight:  1 << (sdl.BUTTON_RIGHT - 1),
	engine.MouseMiddle: 1 << (sdl.BUTTON_MIDDLE - 1),
}

var scancodes = map[engine.Button]sdl.Scancode{
	engine.KeyEscape: sdl.SCANCODE_ESCAPE,
	engine.KeySpace:  sdl.SCANCODE_SPACE,
	engine.KeyF1:     sdl.SCANCODE_F1,
	engine.KeyLeft:   sdl.SCANCODE_LEFT,
	engine.KeyRight:  sdl.SCANCODE_RIGHT,
	engine.KeyUp:     sdl.SCANCODE_UP,
	engine.KeyDown:   sdl.SCANCODE_DOWN,
	engine.KeyW:      sdl.SCANCODE_W,
	engine.KeyA:      sdl.SCANCODE_A,
	engine.KeyS:      sdl.SCANCODE_S,
	engine.KeyD:      sdl.SCANCODE_D,
	engine.KeyQ:      sdl.SCANCODE_Q,
	engine.KeyE:      sdl.SCANCODE_E,
}

type Platform struct{}

// OpenWindow initializes SDL video and creates a window with a GL context
// current on the calling thread, which is locked to its OS thread.
func (Platform) OpenWindow(cfg engine.WindowConfig) (engine.Window, error) {
	runtime.LockOSThread()

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_TIMER); err != nil {
		return nil, fmt.Errorf("sdlplatform: init: %w", err)
	}

	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 2)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	win, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height), sdl.WINDOW_OPENGL|sdl.WINDOW_SHOWN|sdl.WINDOW_RESIZABLE)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("sdlplatform: create window: %w", err)
	}

	ctx, err := win.GLCreateContext()
	if err != nil {
		win.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("sdlplatform: create GL context: %w", err)
	}

	if cfg.TargetFPS > 0 {
		// vsync is the closest SDL gets to a target rate
		sdl.GLSetSwapInterval(1)
	}

	return &Window{
		window: win,
		ctx:    ctx,
		title:  cfg.Title,
		last:   sdl.GetTicks64(),
	}, nil
}

// OpenRenderer loads the GL entry points for the window's context.
func (Platform) OpenRenderer(w engine.Window) (engine.Renderer, error) {
	win, ok := w.(*Window)
	if !ok {
		return nil, fmt.Errorf("sdlplatform: renderer needs an SDL window, got %T", w)
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("sdlplatform: load GL: %w", err)
	}
	return newRenderer(win), nil
}

type Window struct {
	window *sdl.Window
	ctx    sdl.GLContext
	title  string

	last  uint64
	delta time.Duration
	quit  bool
	input input
}

func (w *Window) Tick() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch event.(type) {
		case *sdl.QuitEvent:
			w.quit = true
		}
	}

	now := sdl.GetTicks64()
	if now >= w.last {
		w.delta = time.Duration(now-w.last) * time.Millisecond
	}
	w.last = now

	x, y, state := sdl.GetMouseState()
	w.input.pointer = mgl32.Vec2{float32(x), float32(y)}
	w.input.buttons = state
	w.input.keys = sdl.GetKeyboardState()
}

func (w *Window) DeltaTime() time.Duration {
	return w.delta
}

func (w *Window) ShouldQuit() bool {
	return w.quit
}

func (w *Window) Input() engine.Input {
	return &w.input
}

func (w *Window) SwapBuffer() {
	w.window.GLSwap()
}

func (w *Window) Width() int {
	width, _ := w.window.GetSize()
	return int(width)
}

func (w *Window) Height() int {
	_, height := w.window.GetSize()
	return int(height)
}

func (w *Window) setTitle(s string) {
	w.window.SetTitle(s)
}

func (w *Window) Close() error {
	if w.window == nil {
		return nil
	}
	sdl.GLDeleteContext(w.ctx)
	err := w.window.Destroy()
	w.window = nil
	sdl.Quit()
	runtime.UnlockOSThread()
	return err
}

type input struct {
	pointer mgl32.Vec2
	buttons uint32
	keys    []uint8
}

func (in *input) IsPressed(b engine.Button) bool {
	if mask, ok := mouseMasks[b]; ok {
		return in.buttons&mask != 0
	}
	if sc, ok := scancodes[b]; ok && int(sc) < len(in.keys) {
		return in.keys[sc] != 0
	}
	return false
}

func (in *input) PointerPosition() mgl32.Vec2 {
	return in.pointer
}
