package navigation

import (
	"container/heap"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// AStarPlanner provides A* pathfinding over a navigation grid.
type AStarPlanner struct {
	grid *NavGrid

	// Reusable data structures (cleared between searches)
	openHeap  *nodeHeap
	closedSet map[int]struct{}
	cameFrom  map[int]int
	gScore    map[int]float64
}

// astarNode is a node in the A* search.
type astarNode struct {
	gx, gz int     // Grid coordinates
	f      float64 // f = g + h (priority)
	index  int     // Heap index
}

// nodeHeap implements heap.Interface for A* open set.
type nodeHeap []*astarNode

func (h nodeHeap) Len() int           { return len(h) }
func (h nodeHeap) Less(i, j int) bool { return h[i].f < h[j].f }
func (h nodeHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *nodeHeap) Push(x any) {
	n := x.(*astarNode)
	n.index = len(*h)
	*h = append(*h, n)
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*h = old[0 : n-1]
	return node
}

// NewAStarPlanner creates an A* planner over grid.
func NewAStarPlanner(grid *NavGrid) *AStarPlanner {
	return &AStarPlanner{
		grid:      grid,
		openHeap:  &nodeHeap{},
		closedSet: make(map[int]struct{}, 256),
		cameFrom:  make(map[int]int, 256),
		gScore:    make(map[int]float64, 256),
	}
}

// Grid returns the planner's navigation grid.
func (a *AStarPlanner) Grid() *NavGrid {
	return a.grid
}

// FindPath computes a path from start to goal using A*.
// Returns cell-center waypoints starting at the start cell, or nil if no
// path exists.
func (a *AStarPlanner) FindPath(start, goal r3.Vec) []r3.Vec {
	grid := a.grid

	startGX, startGZ := grid.WorldToGrid(start)
	goalGX, goalGZ := grid.WorldToGrid(goal)

	// Blocked endpoints snap to the nearest open cell
	if grid.IsBlocked(startGX, startGZ) {
		startGX, startGZ = a.findNearestOpen(startGX, startGZ)
		if startGX < 0 {
			return nil
		}
	}
	if grid.IsBlocked(goalGX, goalGZ) {
		goalGX, goalGZ = a.findNearestOpen(goalGX, goalGZ)
		if goalGX < 0 {
			return nil
		}
	}

	// Same cell - no search needed
	if startGX == goalGX && startGZ == goalGZ {
		return []r3.Vec{grid.GridToWorld(goalGX, goalGZ)}
	}

	// Clear reusable data structures
	*a.openHeap = (*a.openHeap)[:0]
	clear(a.closedSet)
	clear(a.cameFrom)
	clear(a.gScore)

	startID := startGZ*grid.width + startGX
	goalID := goalGZ*grid.width + goalGX

	a.gScore[startID] = 0
	heap.Push(a.openHeap, &astarNode{gx: startGX, gz: startGZ, f: heuristic(startGX, startGZ, goalGX, goalGZ)})

	maxIterations := 8 * grid.width * grid.depth
	iterations := 0

	for a.openHeap.Len() > 0 && iterations < maxIterations {
		iterations++

		current := heap.Pop(a.openHeap).(*astarNode)
		currentID := current.gz*grid.width + current.gx

		if currentID == goalID {
			return a.reconstructPath(startID, goalID)
		}

		// Stale heap entry for an already expanded cell
		if _, done := a.closedSet[currentID]; done {
			continue
		}
		a.closedSet[currentID] = struct{}{}

		// 8-connected neighbors, cardinals first
		neighbors := [8][2]int{
			{current.gx - 1, current.gz},
			{current.gx + 1, current.gz},
			{current.gx, current.gz - 1},
			{current.gx, current.gz + 1},
			{current.gx - 1, current.gz - 1},
			{current.gx + 1, current.gz - 1},
			{current.gx - 1, current.gz + 1},
			{current.gx + 1, current.gz + 1},
		}

		for i, n := range neighbors {
			ngx, ngz := n[0], n[1]

			if grid.IsBlocked(ngx, ngz) {
				continue
			}

			// Diagonals need both adjacent cells open (no corner cutting)
			if i >= 4 {
				dx := ngx - current.gx
				dz := ngz - current.gz
				if grid.IsBlocked(current.gx+dx, current.gz) || grid.IsBlocked(current.gx, current.gz+dz) {
					continue
				}
			}

			neighborID := ngz*grid.width + ngx
			if _, ok := a.closedSet[neighborID]; ok {
				continue
			}

			moveCost := 1.0
			if i >= 4 {
				moveCost = math.Sqrt2
			}
			tentativeG := a.gScore[currentID] + moveCost

			if existingG, exists := a.gScore[neighborID]; exists && tentativeG >= existingG {
				continue
			}

			a.cameFrom[neighborID] = currentID
			a.gScore[neighborID] = tentativeG
			heap.Push(a.openHeap, &astarNode{
				gx: ngx,
				gz: ngz,
				f:  tentativeG + heuristic(ngx, ngz, goalGX, goalGZ),
			})
		}
	}

	return nil
}

// heuristic is the Euclidean distance between two cells.
func heuristic(gx1, gz1, gx2, gz2 int) float64 {
	return math.Hypot(float64(gx2-gx1), float64(gz2-gz1))
}

// reconstructPath builds the path from the cameFrom map.
func (a *AStarPlanner) reconstructPath(startID, goalID int) []r3.Vec {
	grid := a.grid

	var pathIDs []int
	current := goalID
	for current != startID {
		pathIDs = append(pathIDs, current)
		var ok bool
		current, ok = a.cameFrom[current]
		if !ok {
			break
		}
	}
	pathIDs = append(pathIDs, startID)

	path := make([]r3.Vec, len(pathIDs))
	for i := range pathIDs {
		id := pathIDs[len(pathIDs)-1-i]
		path[i] = grid.GridToWorld(id%grid.width, id/grid.width)
	}

	return a.simplifyPath(path)
}

// simplifyPath removes waypoints that can be skipped in a straight line.
func (a *AStarPlanner) simplifyPath(path []r3.Vec) []r3.Vec {
	if len(path) <= 2 {
		return path
	}

	simplified := make([]r3.Vec, 0, len(path))
	simplified = append(simplified, path[0])

	anchor := path[0]
	for i := 1; i < len(path)-1; i++ {
		if !a.hasLineOfSight(anchor, path[i+1]) {
			simplified = append(simplified, path[i])
			anchor = path[i]
		}
	}

	simplified = append(simplified, path[len(path)-1])
	return simplified
}

// hasLineOfSight checks if the straight line between two points crosses
// only open cells.
func (a *AStarPlanner) hasLineOfSight(from, to r3.Vec) bool {
	d := r3.Sub(to, from)
	d.Y = 0
	dist := r3.Norm(d)
	if dist < 0.01 {
		return true
	}

	stepSize := a.grid.cellSize * 0.25
	steps := int(dist/stepSize) + 1
	dir := r3.Scale(1/dist, d)

	for i := 0; i <= steps; i++ {
		step := math.Min(float64(i)*stepSize, dist)
		if a.grid.IsBlockedWorld(r3.Add(from, r3.Scale(step, dir))) {
			return false
		}
	}
	return true
}

// findNearestOpen finds the nearest unblocked cell around (gx, gz) by
// searching outward ring by ring. Returns (-1, -1) if none is found.
func (a *AStarPlanner) findNearestOpen(gx, gz int) (int, int) {
	for radius := 1; radius < 10; radius++ {
		for dz := -radius; dz <= radius; dz++ {
			for dx := -radius; dx <= radius; dx++ {
				if abs(dx) != radius && abs(dz) != radius {
					continue
				}
				if !a.grid.IsBlocked(gx+dx, gz+dz) {
					return gx + dx, gz + dz
				}
			}
		}
	}
	return -1, -1
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
