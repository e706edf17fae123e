package ai

import (
	"math/rand/v2"

	"github.com/udisondev/warden/internal/model"
)

// DefaultSampleTolerance is the tolerance passed to Navigator.SamplePosition.
const DefaultSampleTolerance = 4.0

// SampleSearchPoint returns a valid navigation position near center.
// radius is accepted but does not bound the sample: the query is made
// around center itself. found is false only when the navigator reports
// no valid position within tolerance.
func SampleSearchPoint(nav Navigator, center model.Vec3, radius, tolerance float64) (model.Vec3, bool) {
	_ = radius
	return nav.SamplePosition(center, tolerance)
}

// SampleBoundedSearchPoint moves the query point to a random position inside
// the sphere of radius around center before sampling.
// rng may be nil to use the global source.
func SampleBoundedSearchPoint(nav Navigator, center model.Vec3, radius, tolerance float64, rng *rand.Rand) (model.Vec3, bool) {
	query := center.Add(insideUnitSphere(rng).Scale(radius))
	return nav.SamplePosition(query, tolerance)
}

// insideUnitSphere returns a uniformly distributed point inside the unit sphere
// (rejection sampling over the enclosing cube).
func insideUnitSphere(rng *rand.Rand) model.Vec3 {
	f := rand.Float64
	if rng != nil {
		f = rng.Float64
	}

	for {
		v := model.NewVec3(f()*2-1, f()*2-1, f()*2-1)
		if v.LengthSquared() <= 1 {
			return v
		}
	}
}
