//go:build sdl && !ebiten

package main

import (
	"context"

	"pickshell/internal/engine"
	"pickshell/internal/platform/sdlplatform"
)

func newBackend() backend {
	return backend{
		name:     "sdl",
		platform: sdlplatform.Platform{},
		drive: func(ctx context.Context, e *engine.Engine) error {
			return e.Start(ctx)
		},
	}
}
