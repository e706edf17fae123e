package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Distance(t *testing.T) {
	tests := []struct {
		name string
		a, b Vec3
		want float64
	}{
		{"same point", NewVec3(1, 2, 3), NewVec3(1, 2, 3), 0},
		{"axis aligned", Vec3{}, NewVec3(0, 0, 20), 20},
		{"3-4-5", Vec3{}, NewVec3(3, 0, 4), 5},
		{"negative", NewVec3(-1, 0, 0), NewVec3(2, 0, 4), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.a.Distance(tt.b), 1e-12)
			assert.InDelta(t, tt.want, tt.b.Distance(tt.a), 1e-12)
		})
	}
}

func TestVec3Angle(t *testing.T) {
	fwd := NewVec3(0, 0, 1)

	tests := []struct {
		name string
		to   Vec3
		want float64
	}{
		{"straight ahead", NewVec3(0, 0, 5), 0},
		{"right angle", NewVec3(3, 0, 0), 90},
		{"behind", NewVec3(0, 0, -2), 180},
		{"diagonal", NewVec3(1, 0, 1), 45},
		{"zero vector", Vec3{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, fwd.Angle(tt.to), 1e-9)
		})
	}
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(0, 3, 4).Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-12)
	assert.InDelta(t, 0.6, n.Y, 1e-12)

	assert.Equal(t, Vec3{}, Vec3{}.Normalize())
}

func TestVec3RotateY(t *testing.T) {
	fwd := NewVec3(0, 0, 1)

	r := fwd.RotateY(90)
	assert.InDelta(t, 1, r.X, 1e-12)
	assert.InDelta(t, 0, r.Z, 1e-12)

	l := fwd.RotateY(-90)
	assert.InDelta(t, -1, l.X, 1e-12)
	assert.InDelta(t, 0, l.Z, 1e-12)

	half := fwd.RotateY(60)
	assert.InDelta(t, 60, fwd.Angle(half), 1e-9)
	assert.InDelta(t, math.Sin(math.Pi/3), half.X, 1e-12)
}

func TestVec3Arithmetic(t *testing.T) {
	a := NewVec3(1, 2, 3)
	b := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), a.Add(b))
	assert.Equal(t, NewVec3(3, 3, 3), b.Sub(a))
	assert.Equal(t, NewVec3(2, 4, 6), a.Scale(2))
	assert.Equal(t, 32.0, a.Dot(b))
	assert.Equal(t, NewVec3(1, 0, 3), a.Flat())
}
