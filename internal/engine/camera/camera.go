// Package camera provides the orbit camera controller: pointer, wheel and
// reset input in, view and model matrices out.
package camera

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/frameview/pkg/math"
)

// MinDistance is the closest the camera may get to the pivot.
const MinDistance float32 = 0.1

// Button identifies the pointer button that started a drag.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
)

// PanButton is the button whose drags pan instead of rotate.
const PanButton = ButtonSecondary

// Sensitivity scales raw input deltas.
type Sensitivity struct {
	Rotate float32 // radians per pixel
	Pan    float32 // world units per pixel, per unit of distance
	Zoom   float32 // distance per wheel unit
}

// DefaultSensitivity returns the stock input scaling.
func DefaultSensitivity() Sensitivity {
	return Sensitivity{
		Rotate: 0.01,
		Pan:    0.002,
		Zoom:   0.01,
	}
}

// State is a snapshot of the camera. Angles are unbounded radians.
type State struct {
	RotX, RotY       float32
	OffsetX, OffsetY float32
	Distance         float32

	Dragging bool
	Button   Button
	Last     math.Vec2
}

// OrbitController orbits a fixed pivot at the origin.
//
// It is not safe for concurrent use: input handlers and the render loop
// are expected to run on the same goroutine. Every method leaves the
// state fully consistent before returning.
type OrbitController struct {
	state           State
	initialDistance float32
	sens            Sensitivity
	queue           []Event
}

// NewOrbitController creates a controller at the given distance from the
// pivot, clamped to MinDistance.
func NewOrbitController(distance float32, sens Sensitivity) *OrbitController {
	if !finite(distance) || distance < MinDistance {
		distance = MinDistance
	}
	return &OrbitController{
		state:           State{Distance: distance},
		initialDistance: distance,
		sens:            sens,
	}
}

// State returns a copy of the current camera state.
func (c *OrbitController) State() State {
	return c.state
}

// InitialDistance returns the distance restored by Reset.
func (c *OrbitController) InitialDistance() float32 {
	return c.initialDistance
}

// Dragging reports whether a pointer drag is in progress.
func (c *OrbitController) Dragging() bool {
	return c.state.Dragging
}

// PointerDown starts a drag. Ignored while already dragging.
func (c *OrbitController) PointerDown(b Button, x, y float32) {
	if c.state.Dragging || !finite(x) || !finite(y) {
		return
	}
	c.state.Dragging = true
	c.state.Button = b
	c.state.Last = math.Vec2{X: x, Y: y}
}

// PointerMove pans or rotates by the delta from the last position.
// Ignored when idle.
func (c *OrbitController) PointerMove(x, y float32) {
	if !c.state.Dragging || !finite(x) || !finite(y) {
		return
	}
	pos := math.Vec2{X: x, Y: y}
	d := pos.Sub(c.state.Last)

	if c.state.Button == PanButton {
		// Scaled by distance so on-screen pan speed is zoom independent.
		// Screen Y grows downward, world Y upward.
		k := c.state.Distance * c.sens.Pan
		c.state.OffsetX -= d.X * k
		c.state.OffsetY += d.Y * k
	} else {
		c.state.RotY += d.X * c.sens.Rotate
		c.state.RotX += d.Y * c.sens.Rotate
	}
	c.state.Last = pos
}

// PointerUp ends any drag, whichever button started it.
func (c *OrbitController) PointerUp() {
	c.state.Dragging = false
}

// Wheel zooms by deltaY. Distance never drops below MinDistance.
func (c *OrbitController) Wheel(deltaY float32) {
	if !finite(deltaY) {
		return
	}
	c.state.Distance += deltaY * c.sens.Zoom
	if c.state.Distance < MinDistance {
		c.state.Distance = MinDistance
	}
}

// Reset restores rotation, pan and distance. Drag state is kept.
func (c *OrbitController) Reset() {
	c.state.RotX = 0
	c.state.RotY = 0
	c.state.OffsetX = 0
	c.state.OffsetY = 0
	c.state.Distance = c.initialDistance
}

// ViewMatrix places the eye on +Z looking down -Z, shifted by the pan.
func (c *OrbitController) ViewMatrix() math.Mat4 {
	return math.Identity().Translate(math.Vec3{
		X: c.state.OffsetX,
		Y: c.state.OffsetY,
		Z: -c.state.Distance,
	})
}

// ModelMatrix rotates about X, then about Y.
func (c *OrbitController) ModelMatrix() math.Mat4 {
	return math.Identity().RotateX(c.state.RotX).RotateY(c.state.RotY)
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
