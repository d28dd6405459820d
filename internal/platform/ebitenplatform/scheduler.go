//go:build ebiten

package ebitenplatform

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// Scheduler hands the engine's tick to ebiten, which calls it once per
// update until the engine reports it is done.
type Scheduler struct {
	window *Window
}

func (s *Scheduler) Run(tick func(), done func() bool) error {
	if s.window == nil {
		return errors.New("ebitenplatform: no window open")
	}
	return ebiten.RunGame(&runner{window: s.window, tick: tick, done: done})
}

// runner adapts the engine tick to ebiten.Game.
type runner struct {
	window *Window
	tick   func()
	done   func() bool
}

func (r *runner) Update() error {
	if r.done() || r.window.closed {
		return ebiten.Termination
	}
	r.tick()
	return nil
}

func (r *runner) Draw(screen *ebiten.Image) {
	r.window.shown.draw(screen)
}

func (r *runner) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.window.width, r.window.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
