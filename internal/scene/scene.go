// Package scene ties one loaded structure to the camera: auto-framing,
// projection and the per-frame MVP composition.
package scene

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/frameview/internal/engine/camera"
	"github.com/Faultbox/frameview/internal/structure"
	"github.com/Faultbox/frameview/pkg/math"
)

// Scene is a loaded structure together with its bounds.
type Scene struct {
	structure *structure.FrameStructure
	bounds    structure.Bounds
}

// New computes the bounds of s. A structure without nodes cannot be
// framed and is rejected.
func New(s *structure.FrameStructure) (*Scene, error) {
	b, err := structure.ComputeBounds(s)
	if err != nil {
		return nil, fmt.Errorf("framing structure: %w", err)
	}
	return &Scene{structure: s, bounds: b}, nil
}

// Structure returns the structure being shown.
func (s *Scene) Structure() *structure.FrameStructure {
	return s.structure
}

// Bounds returns the structure's bounds.
func (s *Scene) Bounds() structure.Bounds {
	return s.bounds
}

// InitialDistance is the camera distance that frames the structure.
func (s *Scene) InitialDistance(factor float32) float32 {
	return math32.Max(s.bounds.Radius*factor, camera.MinDistance)
}

// AxisScale is the length of the axis gizmo lines.
func (s *Scene) AxisScale() float32 {
	if s.bounds.Radius == 0 {
		return 1
	}
	return s.bounds.Radius
}

// ModelMatrix moves the structure's center onto the orbit pivot, then
// applies the camera's rotation.
func (s *Scene) ModelMatrix(orbit math.Mat4) math.Mat4 {
	return orbit.Translate(s.bounds.Center.Negate())
}

// AxesMatrix scales the unit axis gizmo to the structure size. The gizmo
// sits on the pivot.
func (s *Scene) AxesMatrix(orbit math.Mat4) math.Mat4 {
	k := s.AxisScale()
	return orbit.Mul(math.Scaling(k, k, k))
}

// FarPlane returns a far clip distance that keeps the whole structure
// visible at the given camera distance.
func (s *Scene) FarPlane(configured, distance float32) float32 {
	return math32.Max(configured, distance+2*s.bounds.Radius)
}

// MVP combines projection, view and model into one transform.
func MVP(projection, view, model math.Mat4) math.Mat4 {
	return projection.Mul(view.Mul(model))
}
