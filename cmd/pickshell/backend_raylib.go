//go:build !sdl && !ebiten

package main

import (
	"context"

	"pickshell/internal/engine"
	"pickshell/internal/platform/rlplatform"
)

func newBackend() backend {
	return backend{
		name:     "raylib",
		platform: rlplatform.Platform{},
		drive: func(ctx context.Context, e *engine.Engine) error {
			return e.Start(ctx)
		},
	}
}
