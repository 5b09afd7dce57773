package camera

// EventKind enumerates camera input events.
type EventKind int

const (
	EventPointerDown EventKind = iota
	EventPointerMove
	EventPointerUp
	EventWheel
	EventReset
)

func (k EventKind) String() string {
	switch k {
	case EventPointerDown:
		return "pointer-down"
	case EventPointerMove:
		return "pointer-move"
	case EventPointerUp:
		return "pointer-up"
	case EventWheel:
		return "wheel"
	case EventReset:
		return "reset"
	}
	return "unknown"
}

// Event is one queued input for the controller.
type Event struct {
	Kind   EventKind
	Button Button  // EventPointerDown
	X, Y   float32 // EventPointerDown, EventPointerMove
	DeltaY float32 // EventWheel
}

// Apply performs the transition for ev immediately.
func (c *OrbitController) Apply(ev Event) {
	switch ev.Kind {
	case EventPointerDown:
		c.PointerDown(ev.Button, ev.X, ev.Y)
	case EventPointerMove:
		c.PointerMove(ev.X, ev.Y)
	case EventPointerUp:
		c.PointerUp()
	case EventWheel:
		c.Wheel(ev.DeltaY)
	case EventReset:
		c.Reset()
	}
}

// Enqueue records ev to be applied by the next Flush.
func (c *OrbitController) Enqueue(ev Event) {
	c.queue = append(c.queue, ev)
}

// Pending returns the number of queued events.
func (c *OrbitController) Pending() int {
	return len(c.queue)
}

// Flush applies queued events in order and returns how many were applied.
// The render loop calls it once per frame before reading the matrices.
func (c *OrbitController) Flush() int {
	n := len(c.queue)
	for _, ev := range c.queue {
		c.Apply(ev)
	}
	c.queue = c.queue[:0]
	return n
}
