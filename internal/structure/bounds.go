package structure

import (
	stdmath "math"

	"github.com/chewxy/math32"
)

// Bounds is the axis-aligned box of a structure plus the smallest sphere
// around the box center that contains every node.
type Bounds struct {
	Min, Max Node
	Center   Node
	Radius   float32
}

// ComputeBounds returns the bounds of s, or ErrEmptyStructure if s has
// no nodes. ErrBoundsOverflow is returned when the radius exceeds the
// float32 range.
func ComputeBounds(s *FrameStructure) (Bounds, error) {
	if s == nil || len(s.nodes) == 0 {
		return Bounds{}, ErrEmptyStructure
	}

	minP := s.nodes[0]
	maxP := s.nodes[0]
	for _, n := range s.nodes[1:] {
		minP.X = math32.Min(minP.X, n.X)
		minP.Y = math32.Min(minP.Y, n.Y)
		minP.Z = math32.Min(minP.Z, n.Z)
		maxP.X = math32.Max(maxP.X, n.X)
		maxP.Y = math32.Max(maxP.Y, n.Y)
		maxP.Z = math32.Max(maxP.Z, n.Z)
	}

	// float64 so min+max and squared distances cannot overflow near the
	// float32 limit.
	cx := (float64(minP.X) + float64(maxP.X)) / 2
	cy := (float64(minP.Y) + float64(maxP.Y)) / 2
	cz := (float64(minP.Z) + float64(maxP.Z)) / 2

	var r2 float64
	for _, n := range s.nodes {
		dx := float64(n.X) - cx
		dy := float64(n.Y) - cy
		dz := float64(n.Z) - cz
		r2 = stdmath.Max(r2, dx*dx+dy*dy+dz*dz)
	}
	radius := float32(stdmath.Sqrt(r2))
	if math32.IsInf(radius, 0) {
		return Bounds{}, ErrBoundsOverflow
	}

	return Bounds{
		Min:    minP,
		Max:    maxP,
		Center: Node{X: float32(cx), Y: float32(cy), Z: float32(cz)},
		Radius: radius,
	}, nil
}

// Size returns the extent of the box along each axis.
func (b Bounds) Size() Node {
	return b.Max.Sub(b.Min)
}
