package mathutil

import "math"

// RotationAbout returns the source-to-destination map that turns an image
// counter-clockwise (as seen on screen, y pointing down) by deg degrees
// around (cx, cy).
func RotationAbout(deg, cx, cy float64) Aff {
	rad := Deg2Rad(deg)
	c, s := math.Cos(rad), math.Sin(rad)
	m := Mat2{c, s, -s, c}
	center := Vec2{cx, cy}
	t := center.Sub(m.MulVec2(center))
	return NewAff(m, t)
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(d float64) float64 {
	return d * math.Pi / 180
}
