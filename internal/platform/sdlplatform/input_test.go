//go:build sdl

package sdlplatform

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/veandco/go-sdl2/sdl"

	"pickshell/internal/engine"
)

func TestInputButtons(t *testing.T) {
	in := &input{
		pointer: mgl32.Vec2{12, 34},
		buttons: 1 << (sdl.BUTTON_LEFT - 1),
		keys:    make([]uint8, sdl.NUM_SCANCODES),
	}
	in.keys[sdl.SCANCODE_F1] = 1

	assert.True(t, in.IsPressed(engine.MouseLeft))
	assert.False(t, in.IsPressed(engine.MouseRight))
	assert.True(t, in.IsPressed(engine.KeyF1))
	assert.False(t, in.IsPressed(engine.KeyEscape))
	assert.Equal(t, mgl32.Vec2{12, 34}, in.PointerPosition())
}

func TestInputWithoutKeyboardState(t *testing.T) {
	in := &input{}
	assert.False(t, in.IsPressed(engine.KeyW))
	assert.False(t, in.IsPressed(engine.Button(99)))
}
