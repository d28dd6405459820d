package engine

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Button identifies a pointer button or key that the input snapshot can be
// queried for. Backends map these onto their own codes.
type Button int

const (
	MouseLeft Button = iota
	MouseRight
	MouseMiddle
	KeyEscape
	KeySpace
	KeyF1
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
)

var buttonNames = map[Button]string{
	MouseLeft:   "MouseLeft",
	MouseRight:  "MouseRight",
	MouseMiddle: "MouseMiddle",
	KeyEscape:   "Escape",
	KeySpace:    "Space",
	KeyF1:       "F1",
	KeyLeft:     "Left",
	KeyRight:    "Right",
	KeyUp:       "Up",
	KeyDown:     "Down",
	KeyW:        "W",
	KeyA:        "A",
	KeyS:        "S",
	KeyD:        "D",
	KeyQ:        "Q",
	KeyE:        "E",
}

func (b Button) String() string {
	if name, ok := buttonNames[b]; ok {
		return name
	}
	return "Unknown"
}

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

var (
	White     = Color{255, 255, 255, 255}
	Yellow    = Color{253, 249, 0, 255}
	Orange    = Color{255, 161, 0, 255}
	Gray      = Color{130, 130, 130, 255}
	DarkGray  = Color{80, 80, 80, 255}
	SkyBlue   = Color{102, 191, 255, 255}
	Backdrop  = Color{20, 20, 30, 255}
	DebugLine = Yellow
)

// Camera describes a perspective camera. Renderers derive their view and
// projection matrices from it.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
	FovY   float32 // degrees
	Near   float32
	Far    float32
}

// WindowConfig is what a Platform needs to open a window.
type WindowConfig struct {
	Title     string
	Width     int
	Height    int
	TargetFPS int
}

// Input is a snapshot of the input state for the current tick.
type Input interface {
	IsPressed(b Button) bool
	// PointerPosition is in window pixels, origin top-left.
	PointerPosition() mgl32.Vec2
}

// Window owns the OS window, the graphics context, frame timing and raw input.
type Window interface {
	// Tick processes pending OS events and advances frame time.
	Tick()
	DeltaTime() time.Duration
	ShouldQuit() bool
	Input() Input
	SwapBuffer()
	Width() int
	Height() int
	Close() error
}

// Renderer owns GL state: camera matrices and debug drawing.
type Renderer interface {
	ViewMatrix() mgl32.Mat4
	ProjectionMatrix() mgl32.Mat4
	SetCamera(c Camera)
	Clear(c Color)
	DrawLine(a, b mgl32.Vec3, c Color)
	Close() error
}

// StatusDrawer is implemented by renderers that can show a few lines of text
// on top of the frame.
type StatusDrawer interface {
	DrawStatus(lines []string)
}

// Platform opens the window and the renderer bound to it.
type Platform interface {
	OpenWindow(cfg WindowConfig) (Window, error)
	OpenRenderer(w Window) (Renderer, error)
}

// Scheduler is an external frame scheduler that repeatedly invokes tick
// (for example once per display refresh) until done reports true.
type Scheduler interface {
	Run(tick func(), done func() bool) error
}
