package scene

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/frameview/pkg/math"
)

// Lens describes the projection.
type Lens struct {
	FOVY         float32 // radians
	Near, Far    float32
	Orthographic bool
}

// LensFromDegrees builds a Lens from a field of view in degrees.
func LensFromDegrees(fovDegrees, near, far float32, ortho bool) Lens {
	return Lens{
		FOVY:         fovDegrees * math32.Pi / 180,
		Near:         near,
		Far:          far,
		Orthographic: ortho,
	}
}

// Matrix returns the projection for a viewport aspect ratio. The
// orthographic volume is sized so the plane at distance shows the same
// extent the perspective lens would, which keeps wheel zoom meaningful.
func (l Lens) Matrix(aspect, distance float32) math.Mat4 {
	if !l.Orthographic {
		return math.Perspective(l.FOVY, aspect, l.Near, l.Far)
	}
	halfH := distance * math32.Tan(l.FOVY/2)
	halfW := halfH * aspect
	return math.Ortho(-halfW, halfW, -halfH, halfH, l.Near, l.Far)
}

// WithFar returns a copy of l with a different far plane.
func (l Lens) WithFar(far float32) Lens {
	l.Far = far
	return l
}
