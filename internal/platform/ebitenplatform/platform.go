//go:build ebiten

// Package ebitenplatform runs the engine inside ebiten's game loop. Ebiten
// owns the loop and calls back once per tick, so the engine is driven through
// a Scheduler instead of its blocking loop.
package ebitenplatform

import (
	"errors"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"

	"pickshell/internal/engine"
)

var mouseButtons = map[engine.Button]ebiten.MouseButton{
	engine.MouseLeft:   ebiten.MouseButtonLeft,
	engine.MouseRight:  ebiten.MouseButtonRight,
	engine.MouseMiddle: ebiten.MouseButtonMiddle,
}

var keys = map[engine.Button]ebiten.Key{
	engine.KeyEscape: ebiten.KeyEscape,
	engine.KeySpace:  ebiten.KeySpace,
	engine.KeyF1:     ebiten.KeyF1,
	engine.KeyLeft:   ebiten.KeyArrowLeft,
	engine.KeyRight:  ebiten.KeyArrowRight,
	engine.KeyUp:     ebiten.KeyArrowUp,
	engine.KeyDown:   ebiten.KeyArrowDown,
	engine.KeyW:      ebiten.KeyW,
	engine.KeyA:      ebiten.KeyA,
	engine.KeyS:      ebiten.KeyS,
	engine.KeyD:      ebiten.KeyD,
	engine.KeyQ:      ebiten.KeyQ,
	engine.KeyE:      ebiten.KeyE,
}

// Platform remembers the window it opened so its Scheduler can present
// frames into it.
type Platform struct {
	window *Window
}

func (p *Platform) OpenWindow(cfg engine.WindowConfig) (engine.Window, error) {
	if p.window != nil {
		return nil, errors.New("ebitenplatform: window already open")
	}

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if cfg.TargetFPS > 0 {
		ebiten.SetTPS(cfg.TargetFPS)
	}

	p.window = newWindow(cfg.Width, cfg.Height)
	return p.window, nil
}

func (p *Platform) OpenRenderer(w engine.Window) (engine.Renderer, error) {
	win, ok := w.(*Window)
	if !ok || win != p.window {
		return nil, errors.New("ebitenplatform: renderer needs this platform's window")
	}
	return &Renderer{window: win, camera: defaultCamera}, nil
}

// Scheduler returns the scheduler that runs ebiten's loop over the opened window.
func (p *Platform) Scheduler() engine.Scheduler {
	return &Scheduler{window: p.window}
}

type Window struct {
	width, height int

	last  time.Time
	delta time.Duration
	quit  bool
	input input

	pending frame
	shown   frame
	closed  bool
}

func newWindow(width, height int) *Window {
	return &Window{
		width:  width,
		height: height,
		input:  input{pressed: map[engine.Button]bool{}},
	}
}

func (w *Window) Tick() {
	now := time.Now()
	if !w.last.IsZero() {
		w.delta = now.Sub(w.last)
	}
	w.last = now

	w.quit = ebiten.IsWindowBeingClosed()

	x, y := ebiten.CursorPosition()
	w.input.pointer = mgl32.Vec2{float32(x), float32(y)}
	for b, mb := range mouseButtons {
		w.input.pressed[b] = ebiten.IsMouseButtonPressed(mb)
	}
	for b, k := range keys {
		w.input.pressed[b] = ebiten.IsKeyPressed(k)
	}
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

// SwapBuffer publishes the recorded frame for ebiten's next Draw.
func (w *Window) SwapBuffer() {
	w.shown, w.pending = w.pending, w.shown
	w.pending.reset()
}

func (w *Window) Width() int {
	return w.width
}

func (w *Window) Height() int {
	return w.height
}

func (w *Window) Close() error {
	w.closed = true
	return nil
}

type input struct {
	pointer mgl32.Vec2
	pressed map[engine.Button]bool
}

func (in *input) IsPressed(b engine.Button) bool {
	return in.pressed[b]
}

func (in *input) PointerPosition() mgl32.Vec2 {
	return in.pointer
}
