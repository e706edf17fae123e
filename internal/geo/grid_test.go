package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/warden/internal/model"
)

func TestGridCellConversion(t *testing.T) {
	g := NewGrid(10, 10, 2)

	tests := []struct {
		name   string
		p      model.Vec3
		cx, cz int32
	}{
		{"origin", model.NewVec3(0, 0, 0), 0, 0},
		{"inside first cell", model.NewVec3(1.9, 0, 1.9), 0, 0},
		{"second cell", model.NewVec3(2, 0, 3), 1, 1},
		{"negative", model.NewVec3(-0.1, 0, 5), -1, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cx, cz := g.CellOf(tt.p)
			assert.Equal(t, tt.cx, cx)
			assert.Equal(t, tt.cz, cz)
		})
	}

	assert.Equal(t, model.NewVec3(3, 0, 5), g.CellCenter(1, 2))
}

func TestGridWalkable(t *testing.T) {
	g := NewGrid(4, 3, 0)
	assert.Equal(t, DefaultCellSize, g.CellSize())
	assert.Equal(t, int32(4), g.Width())
	assert.Equal(t, int32(3), g.Depth())

	assert.True(t, g.Walkable(0, 0))
	assert.True(t, g.Walkable(3, 2))
	assert.False(t, g.Walkable(4, 0), "out of bounds is blocked")
	assert.False(t, g.Walkable(0, -1))

	g.SetBlocked(1, 1, true)
	assert.False(t, g.Walkable(1, 1))
	assert.False(t, g.WalkableAt(model.NewVec3(1.5, 0, 1.5)))

	g.SetBlocked(1, 1, false)
	assert.True(t, g.Walkable(1, 1))

	g.SetBlocked(99, 99, true) // ignored
}

func TestGridSamplePosition(t *testing.T) {
	g := NewGrid(10, 10, 1)
	for z := int32(0); z < 10; z++ {
		g.SetBlocked(5, z, true)
	}

	// Walkable point is returned as is.
	p, ok := g.SamplePosition(model.NewVec3(2.3, 0, 2.7), 4)
	assert.True(t, ok)
	assert.Equal(t, model.NewVec3(2.3, 0, 2.7), p)

	// Inside the wall: nearest walkable cell center.
	p, ok = g.SamplePosition(model.NewVec3(5.2, 0, 3.5), 4)
	assert.True(t, ok)
	assert.Equal(t, model.NewVec3(4.5, 0, 3.5), p)

	// Nothing walkable within tolerance.
	_, ok = g.SamplePosition(model.NewVec3(50, 0, 50), 4)
	assert.False(t, ok)
}
