package camera

import (
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"pickshell/internal/engine"
)

// Orbit circles a target point. Yaw and pitch are in degrees.
type Orbit struct {
	Target    mgl32.Vec3
	Yaw       float32
	Pitch     float32
	Distance  float32
	TurnSpeed float32 // degrees per second
	ZoomSpeed float32 // units per second

	MinDistance float32
	MaxDistance float32
}

func NewOrbit(target mgl32.Vec3, distance float32) *Orbit {
	return &Orbit{
		Target:      target,
		Yaw:         45.0,
		Pitch:       30.0,
		Distance:    distance,
		TurnSpeed:   90.0,
		ZoomSpeed:   10.0,
		MinDistance: 2.0,
		MaxDistance: 100.0,
	}
}

// Update turns with the arrow keys (or A/D and Q/E) and zooms with W/S.
func (c *Orbit) Update(in engine.Input, deltaTime time.Duration) {
	dt := float32(deltaTime.Seconds())

	if in.IsPressed(engine.KeyLeft) || in.IsPressed(engine.KeyA) {
		c.Yaw -= c.TurnSpeed * dt
	}
	if in.IsPressed(engine.KeyRight) || in.IsPressed(engine.KeyD) {
		c.Yaw += c.TurnSpeed * dt
	}
	if in.IsPressed(engine.KeyUp) || in.IsPressed(engine.KeyE) {
		c.Pitch += c.TurnSpeed * dt
	}
	if in.IsPressed(engine.KeyDown) || in.IsPressed(engine.KeyQ) {
		c.Pitch -= c.TurnSpeed * dt
	}
	if in.IsPressed(engine.KeyW) {
		c.Distance -= c.ZoomSpeed * dt
	}
	if in.IsPressed(engine.KeyS) {
		c.Distance += c.ZoomSpeed * dt
	}

	c.clamp()
}

func (c *Orbit) clamp() {
	// Clamp pitch
	if c.Pitch > 89 {
		c.Pitch = 89
	}
	if c.Pitch < -89 {
		c.Pitch = -89
	}
	if c.Distance < c.MinDistance {
		c.Distance = c.MinDistance
	}
	if c.Distance > c.MaxDistance {
		c.Distance = c.MaxDistance
	}
	c.Yaw = float32(math.Mod(float64(c.Yaw), 360))
}

// Eye is the camera position on the orbit sphere.
func (c *Orbit) Eye() mgl32.Vec3 {
	yawRad := float64(c.Yaw) * math.Pi / 180
	pitchRad := float64(c.Pitch) * math.Pi / 180

	offset := mgl32.Vec3{
		float32(math.Cos(pitchRad) * math.Sin(yawRad)),
		float32(math.Sin(pitchRad)),
		float32(math.Cos(pitchRad) * math.Cos(yawRad)),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

func (c *Orbit) Camera(fovY, near, far float32) engine.Camera {
	return engine.Camera{
		Eye:    c.Eye(),
		Target: c.Target,
		Up:     mgl32.Vec3{0, 1, 0},
		FovY:   fovY,
		Near:   near,
		Far:    far,
	}
}
