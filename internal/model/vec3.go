package model

import "math"

// Vec3 is a position or direction in simulation space.
// Value type, passed by value. Y is the up axis.
type Vec3 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
	Z float64 `json:"z" yaml:"z"`
}

// Up is the world up axis.
var Up = Vec3{Y: 1}

// NewVec3 creates a Vec3 from its components.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// LengthSquared returns the squared length (no sqrt).
func (v Vec3) LengthSquared() float64 {
	return v.Dot(v)
}

// Length returns the Euclidean length.
func (v Vec3) Length() float64 {
	return math.Sqrt(v.LengthSquared())
}

// Distance returns the straight-line distance to o.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Length()
}

// Normalize returns the unit vector in the direction of v.
// A zero vector stays zero.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-12 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Angle returns the unsigned angle between v and o in degrees, in [0, 180].
// Returns 0 when either vector is (near) zero.
func (v Vec3) Angle(o Vec3) float64 {
	denom := math.Sqrt(v.LengthSquared() * o.LengthSquared())
	if denom < 1e-15 {
		return 0
	}
	cos := v.Dot(o) / denom
	cos = max(-1, min(1, cos))
	return math.Acos(cos) * 180 / math.Pi
}

// RotateY rotates v about the up axis by deg degrees.
// Positive angles turn +Z toward +X (clockwise when seen from above).
func (v Vec3) RotateY(deg float64) Vec3 {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec3{
		X: v.X*cos + v.Z*sin,
		Y: v.Y,
		Z: -v.X*sin + v.Z*cos,
	}
}

// Flat returns v projected onto the ground plane (Y = 0).
func (v Vec3) Flat() Vec3 {
	return Vec3{X: v.X, Z: v.Z}
}
