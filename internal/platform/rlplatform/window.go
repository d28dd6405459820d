// Package rlplatform runs the engine on raylib.
package rlplatform

import (
	"errors"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"pickshell/internal/engine"
)

var mouseButtons = map[engine.Button]rl.MouseButton{
	engine.MouseLeft:   rl.MouseLeftButton,
	engine.MouseRight:  rl.MouseRightButton,
	engine.MouseMiddle: rl.MouseMiddleButton,
}

var keys = map[engine.Button]int32{
	engine.KeyEscape: rl.KeyEscape,
	engine.KeySpace:  rl.KeySpace,
	engine.KeyF1:     rl.KeyF1,
	engine.KeyLeft:   rl.KeyLeft,
	engine.KeyRight:  rl.KeyRight,
	engine.KeyUp:     rl.KeyUp,
	engine.KeyDown:   rl.KeyDown,
	engine.KeyW:      rl.KeyW,
	engine.KeyA:      rl.KeyA,
	engine.KeyS:      rl.KeyS,
	engine.KeyD:      rl.KeyD,
	engine.KeyQ:      rl.KeyQ,
	engine.KeyE:      rl.KeyE,
}

// Platform opens a raylib window. raylib keeps a single global window, so
// only one may be open at a time.
type Platform struct{}

func (Platform) OpenWindow(cfg engine.WindowConfig) (engine.Window, error) {
	if rl.IsWindowReady() {
		return nil, errors.New("rlplatform: window already open")
	}

	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Width), int32(cfg.Height), cfg.Title)
	if !rl.IsWindowReady() {
		return nil, errors.New("rlplatform: could not create window")
	}
	if cfg.TargetFPS > 0 {
		rl.SetTargetFPS(int32(cfg.TargetFPS))
	}
	return &Window{}, nil
}

func (Platform) OpenRenderer(w engine.Window) (engine.Renderer, error) {
	win, ok := w.(*Window)
	if !ok {
		return nil, errors.New("rlplatform: renderer needs a raylib window")
	}
	return newRenderer(win), nil
}

// Window maps the engine's tick onto raylib's frame: Tick opens the frame and
// SwapBuffer ends it, which also polls the next batch of input events.
type Window struct {
	frameOpen  bool
	delta      time.Duration
	quit       bool
	beforeSwap func()
}

func (w *Window) Tick() {
	if !w.frameOpen {
		rl.BeginDrawing()
		w.frameOpen = true
	}
	w.delta = time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
	w.quit = rl.WindowShouldClose()
}

func (w *Window) DeltaTime() time.Duration {
	return w.delta
}

func (w *Window) ShouldQuit() bool {
	return w.quit
}

func (w *Window) Input() engine.Input {
	return input{}
}

func (w *Window) SwapBuffer() {
	if !w.frameOpen {
		return
	}
	if w.beforeSwap != nil {
		w.beforeSwap()
	}
	rl.EndDrawing()
	w.frameOpen = false
}

func (w *Window) Width() int {
	return rl.GetScreenWidth()
}

func (w *Window) Height() int {
	return rl.GetScreenHeight()
}

func (w *Window) Close() error {
	if w.frameOpen {
		rl.EndDrawing()
		w.frameOpen = false
	}
	if rl.IsWindowReady() {
		rl.CloseWindow()
	}
	return nil
}

// input reads raylib's global input state directly.
type input struct{}

func (input) IsPressed(b engine.Button) bool {
	if mb, ok := mouseButtons[b]; ok {
		return rl.IsMouseButtonDown(mb)
	}
	if k, ok := keys[b]; ok {
		return rl.IsKeyDown(k)
	}
	return false
}

func (input) PointerPosition() mgl32.Vec2 {
	p := rl.GetMousePosition()
	return mgl32.Vec2{p.X, p.Y}
}
