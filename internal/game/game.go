package game

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"pickshell/internal/camera"
	"pickshell/internal/engine"
	"pickshell/internal/physics"
)

type Options struct {
	FovY     float32
	Near     float32
	Far      float32
	Distance float32
}

// Target is a named pickable volume, drawn as a wireframe.
type Target struct {
	Name  string
	Shape physics.Collider
}

// Game is a small picking playground: a floor grid, a few boxes and an orb
// seen through an orbit camera. Clicking selects the closest target under
// the cursor. The camera may not move inside a target.
type Game struct {
	engine.BaseGame

	opts       Options
	Orbit      *camera.Orbit
	Targets    []Target
	Selected   int // index into Targets, -1 for none
	LastHit    physics.RaycastHit
	ShowStatus bool

	f1Down    bool
	frameTime time.Duration
	picks     int
}

func New(opts Options) *Game {
	return &Game{
		opts:       opts,
		Orbit:      camera.NewOrbit(mgl32.Vec3{0, 0, 0}, opts.Distance),
		Selected:   -1,
		ShowStatus: true,
	}
}

// SetEngine subscribes to picks of e. Picks from an engine the game was
// attached to earlier are ignored.
func (g *Game) SetEngine(e *engine.Engine) {
	if g.Engine() == e {
		return
	}
	g.BaseGame.SetEngine(e)
	if e == nil {
		return
	}
	e.Picked.AddListener(func(ray engine.Ray) {
		if g.Engine() == e {
			g.onPick(ray)
		}
	})
}

func (g *Game) Init(r engine.Renderer) error {
	g.Targets = g.Targets[:0]
	for i, x := range []float32{-6, -2, 2, 6} {
		height := float32(1 + i)
		g.Targets = append(g.Targets, Target{
			Name:  fmt.Sprintf("Box_%d", i),
			Shape: physics.NewAABBFromCenter(mgl32.Vec3{x, height / 2, -2}, mgl32.Vec3{1.5, height, 1.5}),
		})
	}
	g.Targets = append(g.Targets,
		Target{
			Name:  "Pillar",
			Shape: physics.NewAABBFromCenter(mgl32.Vec3{0, 2, 5}, mgl32.Vec3{1, 4, 1}),
		},
		Target{
			Name:  "Orb",
			Shape: physics.Sphere{Center: mgl32.Vec3{-6, 1, 5}, Radius: 1},
		},
	)

	r.SetCamera(g.camera())
	return nil
}

func (g *Game) UpdateInput(in engine.Input, deltaTime time.Duration) {
	prev := *g.Orbit
	g.Orbit.Update(in, deltaTime)
	if g.inside(g.Orbit.Eye()) {
		*g.Orbit = prev
	}

	// Toggle status on press, not while held
	f1 := in.IsPressed(engine.KeyF1)
	if f1 && !g.f1Down {
		g.ShowStatus = !g.ShowStatus
	}
	g.f1Down = f1

	if in.IsPressed(engine.KeyEscape) {
		if e := g.Engine(); e != nil {
			e.Stop()
		}
	}
}

func (g *Game) Update(deltaTime time.Duration) {
	g.frameTime = deltaTime
}

func (g *Game) Render(r engine.Renderer) {
	r.SetCamera(g.camera())
	r.Clear(engine.Backdrop)

	g.drawGrid(r, 10, 1)
	for i, t := range g.Targets {
		c := engine.SkyBlue
		if i == g.Selected {
			c = engine.Orange
		}
		switch shape := t.Shape.(type) {
		case physics.AABB:
			drawBox(r, shape, c)
		case physics.Sphere:
			drawSphere(r, shape, c)
		}
	}

	if g.ShowStatus {
		if s, ok := r.(engine.StatusDrawer); ok {
			s.DrawStatus(g.StatusLines())
		}
	}
}

func (g *Game) camera() engine.Camera {
	return g.Orbit.Camera(g.opts.FovY, g.opts.Near, g.opts.Far)
}

func (g *Game) onPick(ray engine.Ray) {
	g.picks++
	hit, ok := physics.Raycast(ray.Near, ray.Direction(), ray.Length(), g.colliders())
	if !ok {
		g.Selected = -1
		return
	}
	g.Selected = hit.Index
	g.LastHit = hit
}

func (g *Game) colliders() []physics.Collider {
	out := make([]physics.Collider, len(g.Targets))
	for i, t := range g.Targets {
		out[i] = t.Shape
	}
	return out
}

func (g *Game) inside(p mgl32.Vec3) bool {
	for _, t := range g.Targets {
		if t.Shape.Contains(p) {
			return true
		}
	}
	return false
}

// StatusLines is the HUD text for the current frame.
func (g *Game) StatusLines() []string {
	lines := []string{
		"Arrows/A,D,Q,E to orbit, W/S to zoom, click to pick, F1 to toggle status",
		fmt.Sprintf("Frame: %.2f ms", float64(g.frameTime.Microseconds())/1000.0),
	}

	selected := "none"
	if g.Selected >= 0 && g.Selected < len(g.Targets) {
		p := g.LastHit.Point
		selected = fmt.Sprintf("%s at (%.2f, %.2f, %.2f)", g.Targets[g.Selected].Name, p.X(), p.Y(), p.Z())
	}
	lines = append(lines, "Selected: "+selected)

	if e := g.Engine(); e != nil {
		if ray, ok := e.LastRay(); ok {
			lines = append(lines, "Ray: "+ray.String())
		}
	}
	return lines
}

func (g *Game) drawGrid(r engine.Renderer, halfSize int, spacing float32) {
	extent := float32(halfSize) * spacing
	for i := -halfSize; i <= halfSize; i++ {
		c := engine.DarkGray
		if i == 0 {
			c = engine.Gray
		}
		o := float32(i) * spacing
		r.DrawLine(mgl32.Vec3{o, 0, -extent}, mgl32.Vec3{o, 0, extent}, c)
		r.DrawLine(mgl32.Vec3{-extent, 0, o}, mgl32.Vec3{extent, 0, o}, c)
	}
}

func drawBox(r engine.Renderer, b physics.AABB, c engine.Color) {
	corners := b.Corners()
	for _, e := range physics.Edges() {
		r.DrawLine(corners[e[0]], corners[e[1]], c)
	}
}

const sphereSegments = 16

// drawSphere draws the three axis-aligned great circles.
func drawSphere(r engine.Renderer, s physics.Sphere, c engine.Color) {
	for axis := 0; axis < 3; axis++ {
		prev := circlePoint(s, axis, 0)
		for i := 1; i <= sphereSegments; i++ {
			p := circlePoint(s, axis, float64(i)/sphereSegments*2*math.Pi)
			r.DrawLine(prev, p, c)
			prev = p
		}
	}
}

func circlePoint(s physics.Sphere, axis int, angle float64) mgl32.Vec3 {
	u := s.Radius * float32(math.Cos(angle))
	v := s.Radius * float32(math.Sin(angle))
	var off mgl32.Vec3
	off[(axis+1)%3] = u
	off[(axis+2)%3] = v
	return s.Center.Add(off)
}
