package mathutil

// Mat2 is a 2×2 matrix stored row-major: [r0c0, r0c1, r1c0, r1c1].
// Value type for zero heap allocation.
type Mat2 [4]float64

func Mat2Identity() Mat2 {
	return Mat2{1, 0, 0, 1}
}

// SwapXY exchanges the x and y axes. Image space is transposed relative to
// the logical (x, y) convention of the projection tables.
var SwapXY = Mat2{0, 1, 1, 0}

// Mat2Mul returns a × b.
func Mat2Mul(a, b Mat2) Mat2 {
	return Mat2{
		a[0]*b[0] + a[1]*b[2], a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2], a[2]*b[1] + a[3]*b[3],
	}
}

// MulVec2 returns M × v.
func (m Mat2) MulVec2(v Vec2) Vec2 {
	return Vec2{
		m[0]*v[0] + m[1]*v[1],
		m[2]*v[0] + m[3]*v[1],
	}
}

func (m Mat2) Det() float64 {
	return m[0]*m[3] - m[1]*m[2]
}

func (m Mat2) Inverse() Mat2 {
	d := m.Det()
	if d == 0 {
		return Mat2Identity()
	}
	invD := 1.0 / d
	return Mat2{
		m[3] * invD, -m[1] * invD,
		-m[2] * invD, m[0] * invD,
	}
}

func (m Mat2) Transpose() Mat2 {
	return Mat2{m[0], m[2], m[1], m[3]}
}
