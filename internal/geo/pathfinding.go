package geo

import (
	"container/heap"
	"math"

	"github.com/udisondev/warden/internal/model"
)

// FindPath finds a path from start to end using A* over grid cells.
// Returns waypoints after start, the last one being end itself, or nil if
// end is not walkable or unreachable within MaxPathfindIterations.
func (g *Grid) FindPath(start, end model.Vec3) []model.Vec3 {
	if !g.WalkableAt(end) {
		return nil
	}

	sx, sz := g.CellOf(start)
	ex, ez := g.CellOf(end)

	// Same cell — walk straight there
	if sx == ex && sz == ez {
		return []model.Vec3{end}
	}

	result := g.astar(sx, sz, ex, ez)
	if result == nil {
		return nil // No path found
	}

	// Convert to world coordinates, skipping the start cell
	path := make([]model.Vec3, 0, 32)
	for n := result; n != nil && n.parent != nil; n = n.parent {
		path = append(path, g.CellCenter(n.x, n.z))
	}

	// Reverse (A* builds path backward)
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	path[len(path)-1] = end

	return g.smoothPath(start, path)
}

// CanMoveToTarget checks if direct movement from a to b is possible
// (every cell on the line walkable, no corner cutting).
func (g *Grid) CanMoveToTarget(a, b model.Vec3) bool {
	ax, az := g.CellOf(a)
	bx, bz := g.CellOf(b)

	it := NewLineIterator(ax, az, bx, bz)
	it.Next() // Skip start

	prevX, prevZ := ax, az
	for it.Next() {
		cx, cz := it.X(), it.Z()
		if !g.Walkable(cx, cz) {
			return false
		}
		// Diagonal step: both adjacent cardinals must be passable
		if cx != prevX && cz != prevZ {
			if !g.Walkable(prevX, cz) || !g.Walkable(cx, prevZ) {
				return false
			}
		}
		prevX, prevZ = cx, cz
	}

	return true
}

// smoothPath removes unnecessary intermediate waypoints from an A* path.
// If waypoint N can be reached directly from the previous kept point,
// waypoint N-1 is removed. Runs up to MaxSmoothPasses passes.
func (g *Grid) smoothPath(start model.Vec3, path []model.Vec3) []model.Vec3 {
	for range MaxSmoothPasses {
		if len(path) <= 1 {
			return path
		}

		changed := false
		smoothed := make([]model.Vec3, 0, len(path))
		prev := start

		for i := 0; i < len(path)-1; i++ {
			if g.CanMoveToTarget(prev, path[i+1]) {
				// Skip intermediate point path[i]
				changed = true
				continue
			}
			smoothed = append(smoothed, path[i])
			prev = path[i]
		}
		smoothed = append(smoothed, path[len(path)-1])
		path = smoothed

		if !changed {
			break
		}
	}
	return path
}

// gridNode represents a node in the A* search graph.
type gridNode struct {
	x, z   int32
	parent *gridNode
	gCost  float64 // Actual cost from start
	hCost  float64 // Heuristic cost to target
	fCost  float64 // gCost + hCost
	index  int     // heap index
}

// astar implements the A* algorithm on grid cells.
func (g *Grid) astar(sx, sz, tx, tz int32) *gridNode {
	start := &gridNode{x: sx, z: sz}
	start.hCost = heuristic(sx, sz, tx, tz)
	start.fCost = start.hCost

	openList := &nodeHeap{}
	heap.Init(openList)
	heap.Push(openList, start)

	closed := make(map[nodeKey]struct{}, 256)

	for range MaxPathfindIterations {
		if openList.Len() == 0 {
			return nil
		}

		current := heap.Pop(openList).(*gridNode)

		if current.x == tx && current.z == tz {
			return current
		}

		key := nodeKey{current.x, current.z}
		if _, exists := closed[key]; exists {
			continue
		}
		closed[key] = struct{}{}

		g.expandNeighbors(current, tx, tz, openList, closed)
	}

	return nil // Max iterations exceeded
}

// expandNeighbors adds valid adjacent cells to the open list.
func (g *Grid) expandNeighbors(current *gridNode, tx, tz int32, openList *nodeHeap, closed map[nodeKey]struct{}) {
	// Cardinal directions: N, E, S, W
	cardinals := [4][2]int32{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}
	var passable [4]bool

	push := func(nx, nz int32, weight float64) {
		if _, exists := closed[nodeKey{nx, nz}]; exists {
			return
		}
		node := &gridNode{
			x: nx, z: nz,
			parent: current,
			gCost:  current.gCost + weight,
			hCost:  heuristic(nx, nz, tx, tz),
		}
		node.fCost = node.gCost + node.hCost
		heap.Push(openList, node)
	}

	for i, d := range cardinals {
		nx, nz := current.x+d[0], current.z+d[1]
		if !g.Walkable(nx, nz) {
			continue
		}
		passable[i] = true
		push(nx, nz, WeightLow)
	}

	// Diagonal directions (anti-corner-cut: both adjacent cardinals must be passable)
	diagonals := [4]struct {
		dx, dz     int32
		adj1, adj2 int
	}{
		{1, -1, 0, 1},  // NE: need N(0) and E(1)
		{1, 1, 1, 2},   // SE: need E(1) and S(2)
		{-1, 1, 2, 3},  // SW: need S(2) and W(3)
		{-1, -1, 3, 0}, // NW: need W(3) and N(0)
	}

	for _, d := range diagonals {
		if !passable[d.adj1] || !passable[d.adj2] {
			continue
		}
		nx, nz := current.x+d.dx, current.z+d.dz
		if !g.Walkable(nx, nz) {
			continue
		}
		push(nx, nz, WeightDiagonal)
	}
}

// heuristic is the Euclidean cell distance.
func heuristic(x, z, tx, tz int32) float64 {
	dx := float64(x - tx)
	dz := float64(z - tz)
	return math.Sqrt(dx*dx + dz*dz)
}

// nodeKey uniquely identifies a cell for the closed set.
type nodeKey struct {
	x, z int32
}

// nodeHeap implements container/heap for A* open list (min-heap by fCost).
type nodeHeap []*gridNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].fCost < h[j].fCost }
func (h nodeHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i]; h[i].index = i; h[j].index = j }
func (h *nodeHeap) Push(x any)        { n := x.(*gridNode); n.index = len(*h); *h = append(*h, n) }
func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil // GC
	node.index = -1
	*h = old[:n-1]
	return node
}
