package mathutil

import "golang.org/x/image/math/f64"

// Aff is a 2×3 affine map (a, b, c, d, e, f):
//
//	x' = a·x + b·y + c
//	y' = d·x + e·y + f
type Aff [6]float64

// NewAff assembles an affine map from its linear part and translation.
func NewAff(m Mat2, t Vec2) Aff {
	return Aff{m[0], m[1], t[0], m[2], m[3], t[1]}
}

// Linear returns the 2×2 part of the map.
func (a Aff) Linear() Mat2 {
	return Mat2{a[0], a[1], a[3], a[4]}
}

// Apply maps p through a.
func (a Aff) Apply(p Vec2) Vec2 {
	return Vec2{
		a[0]*p[0] + a[1]*p[1] + a[2],
		a[3]*p[0] + a[4]*p[1] + a[5],
	}
}

// Invert returns the inverse map. A singular linear part yields the
// identity, matching Mat2.Inverse.
func (a Aff) Invert() Aff {
	inv := a.Linear().Inverse()
	t := inv.MulVec2(Vec2{a[2], a[5]}).Scale(-1)
	return NewAff(inv, t)
}

// F64 converts to the x/image representation used by draw.Transformer.
func (a Aff) F64() f64.Aff3 {
	return f64.Aff3(a)
}
