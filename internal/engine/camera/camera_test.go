package camera

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/frameview/pkg/math"
)

func newTestController(distance float32) *OrbitController {
	return NewOrbitController(distance, Sensitivity{Rotate: 0.01, Pan: 0.001, Zoom: 0.01})
}

func TestNewOrbitController(t *testing.T) {
	c := newTestController(5)

	s := c.State()
	assert.Equal(t, float32(5), s.Distance)
	assert.Equal(t, float32(5), c.InitialDistance())
	assert.False(t, s.Dragging)
	assert.Zero(t, s.RotX)
	assert.Zero(t, s.OffsetX)
}

func TestNewOrbitControllerClampsDistance(t *testing.T) {
	assert.Equal(t, MinDistance, newTestController(0).State().Distance)
	assert.Equal(t, MinDistance, newTestController(-3).State().Distance)
	assert.Equal(t, MinDistance, newTestController(math32.NaN()).State().Distance)
}

func TestViewMatrixInitial(t *testing.T) {
	v := newTestController(7.5).ViewMatrix()

	want := math.Translation(0, 0, -7.5)
	assert.Equal(t, want, v)
	assert.Equal(t, [4]float32{0, 0, -7.5, 1}, v.Column(3))
}

func TestModelMatrixInitialIsIdentity(t *testing.T) {
	assert.Equal(t, math.Identity(), newTestController(5).ModelMatrix())
}

func TestRotateDrag(t *testing.T) {
	c := newTestController(5)
	c.PointerDown(ButtonPrimary, 100, 100)
	c.PointerMove(130, 90)

	s := c.State()
	assert.InDelta(t, 0.3, s.RotY, 1e-6)
	assert.InDelta(t, -0.1, s.RotX, 1e-6)
	assert.Zero(t, s.OffsetX)
	assert.Zero(t, s.OffsetY)
	assert.Equal(t, math.Vec2{X: 130, Y: 90}, s.Last)

	c.PointerMove(140, 90)
	assert.InDelta(t, 0.4, c.State().RotY, 1e-6)
}

func TestMiddleButtonRotates(t *testing.T) {
	c := newTestController(5)
	c.PointerDown(ButtonMiddle, 0, 0)
	c.PointerMove(10, 0)
	assert.InDelta(t, 0.1, c.State().RotY, 1e-6)
}

func TestPanDrag(t *testing.T) {
	c := newTestController(10)
	c.PointerDown(ButtonSecondary, 50, 50)
	c.PointerMove(70, 80)

	s := c.State()
	// dx = 20, dy = 30, k = distance * pan = 0.01
	assert.InDelta(t, -0.2, s.OffsetX, 1e-6, "positive dx moves offsetX negative")
	assert.InDelta(t, 0.3, s.OffsetY, 1e-6, "positive dy moves offsetY positive")
	assert.Zero(t, s.RotX)
	assert.Zero(t, s.RotY)

	v := c.ViewMatrix()
	assert.InDelta(t, -0.2, v[12], 1e-6)
	assert.InDelta(t, 0.3, v[13], 1e-6)
	assert.Equal(t, float32(-10), v[14])
}

func TestPanScalesWithDistance(t *testing.T) {
	near := newTestController(1)
	far := newTestController(20)
	for _, c := range []*OrbitController{near, far} {
		c.PointerDown(ButtonSecondary, 0, 0)
		c.PointerMove(10, 0)
	}
	assert.InDelta(t, 20*near.State().OffsetX, far.State().OffsetX, 1e-6)
}

func TestMoveWhileIdleIsNoop(t *testing.T) {
	c := newTestController(5)
	before := c.State()
	c.PointerMove(500, 500)
	assert.Equal(t, before, c.State())
}

func TestPointerUpAlwaysEndsDrag(t *testing.T) {
	for _, b := range []Button{ButtonPrimary, ButtonMiddle, ButtonSecondary} {
		c := newTestController(5)
		c.PointerDown(b, 1, 1)
		require.True(t, c.Dragging())
		c.PointerUp()
		assert.False(t, c.Dragging())

		before := c.State()
		c.PointerMove(100, 100)
		assert.Equal(t, before, c.State(), "moves after release are ignored")
	}
}

func TestPointerDownWhileDraggingIsIgnored(t *testing.T) {
	c := newTestController(5)
	c.PointerDown(ButtonPrimary, 10, 10)
	c.PointerDown(ButtonSecondary, 90, 90)

	s := c.State()
	assert.Equal(t, ButtonPrimary, s.Button)
	assert.Equal(t, math.Vec2{X: 10, Y: 10}, s.Last)
}

func TestWheel(t *testing.T) {
	c := newTestController(5)
	c.Wheel(100)
	assert.InDelta(t, 6, c.State().Distance, 1e-6)
	c.Wheel(-50)
	assert.InDelta(t, 5.5, c.State().Distance, 1e-6)
}

func TestWheelClampsToMinimum(t *testing.T) {
	c := newTestController(5)
	c.Wheel(-10000)
	assert.Equal(t, MinDistance, c.State().Distance)

	c.Wheel(-1)
	assert.Equal(t, MinDistance, c.State().Distance)

	c.Wheel(math32.Inf(-1))
	assert.Equal(t, MinDistance, c.State().Distance)
}

func TestWheelDuringDragKeepsDragState(t *testing.T) {
	c := newTestController(5)
	c.PointerDown(ButtonPrimary, 3, 4)
	c.Wheel(10)
	assert.True(t, c.Dragging())
	assert.Equal(t, math.Vec2{X: 3, Y: 4}, c.State().Last)
}

func TestReset(t *testing.T) {
	c := newTestController(5)
	initial := c.State()

	c.PointerDown(ButtonPrimary, 0, 0)
	c.PointerMove(40, -20)
	c.PointerUp()
	c.PointerDown(ButtonSecondary, 0, 0)
	c.PointerMove(15, 25)
	c.PointerUp()
	c.Wheel(300)
	require.NotEqual(t, initial.Distance, c.State().Distance)

	c.Reset()
	s := c.State()
	assert.Equal(t, initial.RotX, s.RotX)
	assert.Equal(t, initial.RotY, s.RotY)
	assert.Equal(t, initial.OffsetX, s.OffsetX)
	assert.Equal(t, initial.OffsetY, s.OffsetY)
	assert.Equal(t, initial.Distance, s.Distance)
	assert.Equal(t, math.Identity(), c.ModelMatrix())
	assert.Equal(t, math.Translation(0, 0, -5), c.ViewMatrix())
}

func TestResetKeepsDragState(t *testing.T) {
	c := newTestController(5)
	c.PointerDown(ButtonSecondary, 7, 8)
	c.Reset()
	assert.True(t, c.Dragging())
	assert.Equal(t, ButtonSecondary, c.State().Button)
}

func TestModelMatrixOrder(t *testing.T) {
	c := newTestController(5)
	c.PointerDown(ButtonPrimary, 0, 0)
	c.PointerMove(50, 30) // rotY 0.5, rotX 0.3

	want := math.RotationX(0.3).Mul(math.RotationY(0.5))
	assert.True(t, c.ModelMatrix().ApproxEqual(want, 1e-5))

	swapped := math.RotationY(0.5).Mul(math.RotationX(0.3))
	assert.False(t, c.ModelMatrix().ApproxEqual(swapped, 1e-5))
}

func TestQueuedEvents(t *testing.T) {
	c := newTestController(5)
	c.Enqueue(Event{Kind: EventPointerDown, Button: ButtonPrimary, X: 0, Y: 0})
	c.Enqueue(Event{Kind: EventPointerMove, X: 10, Y: 20})
	c.Enqueue(Event{Kind: EventPointerUp})
	c.Enqueue(Event{Kind: EventWheel, DeltaY: -100})

	assert.Equal(t, 4, c.Pending())
	assert.Zero(t, c.State().RotY, "nothing applied before Flush")

	assert.Equal(t, 4, c.Flush())
	assert.Zero(t, c.Pending())

	s := c.State()
	assert.InDelta(t, 0.1, s.RotY, 1e-6)
	assert.InDelta(t, 0.2, s.RotX, 1e-6)
	assert.InDelta(t, 4, s.Distance, 1e-6)
	assert.False(t, s.Dragging)

	c.Enqueue(Event{Kind: EventReset})
	c.Flush()
	assert.Equal(t, float32(5), c.State().Distance)
}

func TestEventKindString(t *testing.T) {
	assert.Equal(t, "wheel", EventWheel.String())
	assert.Equal(t, "unknown", EventKind(99).String())
}
