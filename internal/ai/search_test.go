package ai

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/warden/internal/model"
)

func TestSampleSearchPoint_IgnoresRadius(t *testing.T) {
	nav := newFakeNav()
	center := model.NewVec3(3, 0, 4)

	for _, radius := range []float64{0, 10, 1000} {
		p, ok := SampleSearchPoint(nav, center, radius, DefaultSampleTolerance)
		require.True(t, ok)
		assert.Equal(t, center, p)
	}

	require.Len(t, nav.sampleQueries, 3)
	for _, q := range nav.sampleQueries {
		assert.Equal(t, center, q)
	}
	assert.Equal(t, DefaultSampleTolerance, nav.sampleTol)
}

func TestSampleSearchPoint_NotFound(t *testing.T) {
	nav := newFakeNav()
	nav.sampleOK = false

	_, ok := SampleSearchPoint(nav, model.Vec3{}, 10, DefaultSampleTolerance)
	assert.False(t, ok)
}

func TestSampleBoundedSearchPoint(t *testing.T) {
	nav := newFakeNav()
	rng := rand.New(rand.NewPCG(7, 7))
	center := model.NewVec3(10, 0, 10)

	for range 200 {
		p, ok := SampleBoundedSearchPoint(nav, center, 5, 2, rng)
		require.True(t, ok)
		assert.LessOrEqual(t, p.Distance(center), 5.0+1e-9)
	}
	assert.Equal(t, 2.0, nav.sampleTol)
}

func TestInsideUnitSphere(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	for range 1000 {
		assert.LessOrEqual(t, insideUnitSphere(rng).LengthSquared(), 1.0)
	}
	assert.LessOrEqual(t, insideUnitSphere(nil).LengthSquared(), 1.0)
}
