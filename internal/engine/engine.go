package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// DefaultTickDelay is the pause between ticks of the blocking loop. It only
// yields to the OS scheduler; frame pacing is the window's job.
const DefaultTickDelay = time.Millisecond

var ErrNilGame = errors.New("engine: game is nil")

type Options struct {
	Logger    *slog.Logger
	TickDelay time.Duration
	// DebugRay draws a line from the pick ray's near point to the world
	// origin while the left button is held.
	DebugRay bool
	Window   WindowConfig
}

// Engine owns a window and a renderer for its whole lifetime and drives a
// Game through the per-tick pipeline.
type Engine struct {
	window   Window
	renderer Renderer
	game     Game
	logger   *slog.Logger
	opts     Options

	// stop may be set from another goroutine, e.g. a signal handler.
	stop   atomic.Bool
	closed bool

	lastRay Ray
	hasRay  bool

	// Picked fires with the pick ray on every tick the left button is held.
	Picked EventWithArg[Ray]
	// Closed fires once, after the renderer and window are released.
	Closed Event
}

// New acquires the window and then the renderer from p. If either fails,
// whatever was acquired is released and no engine is returned.
func New(game Game, p Platform, opts Options) (*Engine, error) {
	if game == nil {
		return nil, ErrNilGame
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	e := &Engine{
		game:   game,
		logger: opts.Logger,
		opts:   opts,
	}

	e.logger.Info("initializing window", "title", opts.Window.Title, "width", opts.Window.Width, "height", opts.Window.Height)
	w, err := p.OpenWindow(opts.Window)
	if err != nil {
		return nil, fmt.Errorf("engine: open window: %w", err)
	}
	e.window = w

	e.logger.Info("initializing renderer")
	r, err := p.OpenRenderer(w)
	if err != nil {
		err = fmt.Errorf("engine: open renderer: %w", err)
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("engine: close window: %w", cerr))
		}
		return nil, err
	}
	e.renderer = r

	return e, nil
}

// Close releases the renderer, then the window. Calling it again is a no-op.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	e.stop.Store(true)
	releaseActive(e)

	var errs []error
	if e.renderer != nil {
		if err := e.renderer.Close(); err != nil {
			errs = append(errs, fmt.Errorf("engine: close renderer: %w", err))
		}
		e.renderer = nil
	}
	if e.window != nil {
		if err := e.window.Close(); err != nil {
			errs = append(errs, fmt.Errorf("engine: close window: %w", err))
		}
		e.window = nil
	}
	e.Closed.Invoke()
	return errors.Join(errs...)
}

// Start initializes the game and runs the blocking loop on the calling
// goroutine until the stop flag is set or ctx is done.
func (e *Engine) Start(ctx context.Context) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer releaseActive(e)

	if err := ctx.Err(); err != nil {
		return err
	}
	for !e.stop.Load() {
		e.Tick()
		if e.stop.Load() {
			break
		}
		if err := e.sleep(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (e *Engine) sleep(ctx context.Context) error {
	if e.opts.TickDelay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(e.opts.TickDelay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// StartWith initializes the game and hands control to s, which calls Loop
// until the engine stops.
func (e *Engine) StartWith(s Scheduler) error {
	if err := e.begin(); err != nil {
		return err
	}
	defer releaseActive(e)

	return s.Run(Loop, e.Stopped)
}

func (e *Engine) begin() error {
	if e.closed {
		return errors.New("engine: already closed")
	}
	if err := claimActive(e); err != nil {
		return err
	}

	e.game.SetEngine(e)

	e.logger.Info("initializing game")
	if err := e.game.Init(e.renderer); err != nil {
		releaseActive(e)
		return fmt.Errorf("engine: init game: %w", err)
	}
	return nil
}

// Tick runs one iteration of the pipeline. The order is fixed: poll, read
// delta time, read quit, input, update, render, pick, swap.
func (e *Engine) Tick() {
	if e.closed {
		return
	}

	e.window.Tick()
	dt := e.window.DeltaTime()
	if dt < 0 {
		dt = 0
	}

	if e.window.ShouldQuit() {
		e.stop.Store(true)
	}

	in := e.window.Input()
	e.game.UpdateInput(in, dt)

	e.game.Update(dt)

	e.game.Render(e.renderer)

	if in.IsPressed(MouseLeft) {
		e.pick(in.PointerPosition())
	}

	e.window.SwapBuffer()
}

func (e *Engine) pick(pointer mgl32.Vec2) {
	vp := e.Viewport()
	ray, err := ProjectLine(pointer, e.renderer.ViewMatrix(), e.renderer.ProjectionMatrix(), vp)
	if err != nil {
		e.logger.Debug("no pick ray", "x", pointer.X(), "y", pointer.Y(), "err", err)
		return
	}

	e.logger.Debug("pick ray", "x", pointer.X(), "y", pointer.Y(), "offset", pointer.Sub(vp.Center()), "width", vp.Width, "height", vp.Height, "ray", ray.String())

	if e.opts.DebugRay {
		e.renderer.DrawLine(ray.Near, mgl32.Vec3{}, DebugLine)
	}

	e.lastRay = ray
	e.hasRay = true
	e.Picked.Invoke(ray)
}

// Stop asks the loop to end after the current tick.
func (e *Engine) Stop() {
	e.stop.Store(true)
}

func (e *Engine) Stopped() bool {
	return e.stop.Load()
}

// Viewport is the live window rectangle used for unprojection.
func (e *Engine) Viewport() Viewport {
	if e.window == nil {
		return Viewport{}
	}
	return NewViewport(e.window.Width(), e.window.Height())
}

// LastRay returns the most recent pick ray, if any was computed.
func (e *Engine) LastRay() (Ray, bool) {
	return e.lastRay, e.hasRay
}

func (e *Engine) Window() Window {
	return e.window
}

func (e *Engine) Renderer() Renderer {
	return e.renderer
}

func (e *Engine) Game() Game {
	return e.game
}

func (e *Engine) Logger() *slog.Logger {
	return e.logger
}
