package ai

import (
	"math"

	"github.com/udisondev/warden/internal/model"
)

type fakeBody struct {
	pos, fwd model.Vec3
}

func (b *fakeBody) Position() model.Vec3 { return b.pos }
func (b *fakeBody) Forward() model.Vec3  { return b.fwd }

type fakeTarget struct {
	pos model.Vec3
}

func (t *fakeTarget) Position() model.Vec3 { return t.pos }

type fakeNav struct {
	dest         model.Vec3
	destinations []model.Vec3
	remaining    float64

	sampleOK      bool
	sampleOffset  model.Vec3
	sampleQueries []model.Vec3
	sampleTol     float64
}

func newFakeNav() *fakeNav {
	return &fakeNav{remaining: math.Inf(1), sampleOK: true}
}

func (n *fakeNav) SetDestination(p model.Vec3) {
	n.dest = p
	n.destinations = append(n.destinations, p)
}

func (n *fakeNav) RemainingDistance() float64 { return n.remaining }

func (n *fakeNav) SamplePosition(near model.Vec3, tolerance float64) (model.Vec3, bool) {
	n.sampleQueries = append(n.sampleQueries, near)
	n.sampleTol = tolerance
	if !n.sampleOK {
		return model.Vec3{}, false
	}
	return near.Add(n.sampleOffset), true
}

type rayCall struct {
	origin, dir model.Vec3
	maxDist     float64
}

type fakeRay struct {
	hit   Hit
	ok    bool
	calls []rayCall
}

func (r *fakeRay) Raycast(origin, dir model.Vec3, maxDist float64) (Hit, bool) {
	r.calls = append(r.calls, rayCall{origin, dir, maxDist})
	return r.hit, r.ok
}

type fakeLocator map[string]Target

func (l fakeLocator) FindEntityByTag(tag string) (Target, bool) {
	t, ok := l[tag]
	return t, ok
}

type drawCall struct {
	kind   string
	color  string
	a, b   model.Vec3
	radius float64
}

type fakeDrawer struct {
	calls []drawCall
}

func (d *fakeDrawer) DrawWireCube(color string, center, size model.Vec3) {
	d.calls = append(d.calls, drawCall{kind: "cube", color: color, a: center, b: size})
}

func (d *fakeDrawer) DrawWireSphere(color string, center model.Vec3, radius float64) {
	d.calls = append(d.calls, drawCall{kind: "sphere", color: color, a: center, radius: radius})
}

func (d *fakeDrawer) DrawLine(color string, from, to model.Vec3) {
	d.calls = append(d.calls, drawCall{kind: "line", color: color, a: from, b: to})
}
