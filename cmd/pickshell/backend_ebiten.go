//go:build ebiten

package main

import (
	"context"

	"pickshell/internal/engine"
	"pickshell/internal/platform/ebitenplatform"
)

// Ebiten owns the loop, so the engine runs through its scheduler. ctx is
// honored by stopping the engine, which ends ebiten's loop on the next update.
func newBackend() backend {
	p := &ebitenplatform.Platform{}
	return backend{
		name:     "ebiten",
		platform: p,
		drive: func(ctx context.Context, e *engine.Engine) error {
			stop := context.AfterFunc(ctx, e.Stop)
			defer stop()
			return e.StartWith(p.Scheduler())
		},
	}
}
