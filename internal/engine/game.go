package engine

import "time"

// Game is implemented by the embedding application. The engine drives it
// without knowing its concrete type.
type Game interface {
	SetEngine(e *Engine)
	Init(r Renderer) error
	UpdateInput(in Input, deltaTime time.Duration)
	Update(deltaTime time.Duration)
	Render(r Renderer)
}

// BaseGame provides no-op implementations of the Game methods a game may not
// care about. Embed it and override what you need.
type BaseGame struct {
	engine *Engine
}

func (b *BaseGame) SetEngine(e *Engine) {
	b.engine = e
}

func (b *BaseGame) Engine() *Engine {
	return b.engine
}

func (b *BaseGame) Init(r Renderer) error { return nil }

func (b *BaseGame) UpdateInput(in Input, deltaTime time.Duration) {}

func (b *BaseGame) Update(deltaTime time.Duration) {}

func (b *BaseGame) Render(r Renderer) {}
