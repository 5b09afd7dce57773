package math

import "github.com/chewxy/math32"

// Mat4 is a 4x4 matrix in column-major order (OpenGL compatible).
// Layout: [m0 m4 m8  m12]
//
//	[m1 m5 m9  m13]
//	[m2 m6 m10 m14]
//	[m3 m7 m11 m15]
//
// Mat4 is a value type. Every operation returns a new matrix and leaves
// its receiver and arguments untouched. Nothing here validates input:
// degenerate arguments yield NaN or Inf entries.
type Mat4 [16]float32

// Identity returns an identity matrix.
func Identity() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Perspective returns a perspective projection matrix.
// fovY is in radians and must lie in (0, π); aspect is width/height;
// 0 < near < far.
func Perspective(fovY, aspect, near, far float32) Mat4 {
	f := 1 / math32.Tan(fovY/2)
	nf := 1 / (near - far)

	return Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (far + near) * nf, -1,
		0, 0, 2 * far * near * nf, 0,
	}
}

// Ortho returns an orthographic projection matrix.
// left != right, bottom != top and near != far.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	rl := 1 / (right - left)
	tb := 1 / (top - bottom)
	fn := 1 / (far - near)

	return Mat4{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(right + left) * rl, -(top + bottom) * tb, -(far + near) * fn, 1,
	}
}

// Translation returns a pure translation matrix.
func Translation(x, y, z float32) Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		x, y, z, 1,
	}
}

// Scaling returns a scale matrix.
func Scaling(x, y, z float32) Mat4 {
	return Mat4{
		x, 0, 0, 0,
		0, y, 0, 0,
		0, 0, z, 0,
		0, 0, 0, 1,
	}
}

// RotationX returns a rotation matrix around the X axis.
// angle is in radians.
func RotationX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)

	return Mat4{
		1, 0, 0, 0,
		0, c, s, 0,
		0, -s, c, 0,
		0, 0, 0, 1,
	}
}

// RotationY returns a rotation matrix around the Y axis.
// angle is in radians.
func RotationY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)

	return Mat4{
		c, 0, -s, 0,
		0, 1, 0, 0,
		s, 0, c, 0,
		0, 0, 0, 1,
	}
}

// Mul multiplies this matrix by another (m * other).
func (m Mat4) Mul(other Mat4) Mat4 {
	var result Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			// Conversions round each product and keep the compiler from
			// fusing multiply-adds, so Translate matches bit for bit.
			result[col*4+row] =
				float32(m[0*4+row]*other[col*4+0]) +
					float32(m[1*4+row]*other[col*4+1]) +
					float32(m[2*4+row]*other[col*4+2]) +
					float32(m[3*4+row]*other[col*4+3])
		}
	}
	return result
}

// Translate returns m * Translation(v). Only the last column changes,
// so it is computed directly from m's basis columns.
func (m Mat4) Translate(v Vec3) Mat4 {
	out := m
	for row := 0; row < 4; row++ {
		out[12+row] = float32(m[row]*v.X) + float32(m[4+row]*v.Y) + float32(m[8+row]*v.Z) + m[12+row]
	}
	return out
}

// RotateX returns m * RotationX(angle). Columns 1 and 2 are mixed in place.
func (m Mat4) RotateX(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	out := m
	for row := 0; row < 4; row++ {
		out[4+row] = m[4+row]*c + m[8+row]*s
		out[8+row] = m[8+row]*c - m[4+row]*s
	}
	return out
}

// RotateY returns m * RotationY(angle). Columns 0 and 2 are mixed in place.
func (m Mat4) RotateY(angle float32) Mat4 {
	s, c := math32.Sincos(angle)
	out := m
	for row := 0; row < 4; row++ {
		out[row] = m[row]*c - m[8+row]*s
		out[8+row] = m[row]*s + m[8+row]*c
	}
	return out
}

// TransformPoint transforms a 3D point by this matrix (assumes w=1).
// The result is divided by w when w is neither 0 nor 1.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	x := m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y := m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z := m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w := m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	if w != 0 && w != 1 {
		return Vec3{x / w, y / w, z / w}
	}
	return Vec3{x, y, z}
}

// Column returns column i (0..3) of the matrix.
func (m Mat4) Column(i int) [4]float32 {
	return [4]float32{m[i*4], m[i*4+1], m[i*4+2], m[i*4+3]}
}

// ApproxEqual reports whether every element of m is within tol of other.
func (m Mat4) ApproxEqual(other Mat4, tol float32) bool {
	for i := range m {
		if math32.Abs(m[i]-other[i]) > tol {
			return false
		}
	}
	return true
}

// Ptr returns a pointer to the first element (for OpenGL uniform calls).
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}
