// Package navigation is the reference movement provider: an obstacle grid
// over the ground plane, an A* planner on top of it and a path-following
// agent that the behavior controller drives.
package navigation

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/config"
)

// NavGrid stores a navigation grid over the XZ plane.
// Cells are marked as blocked (true) or open (false).
type NavGrid struct {
	cells    []bool  // true = blocked
	cellSize float64 // world units per cell
	width    int     // grid width in cells (X)
	depth    int     // grid depth in cells (Z)
}

// NewNavGrid creates a grid covering [0, worldW] x [0, worldD] and blocks
// every cell whose center falls inside an obstacle box grown by inflation.
func NewNavGrid(worldW, worldD, cellSize float64, obstacles []config.Box, inflation float64) *NavGrid {
	if cellSize <= 0 {
		cellSize = 1
	}
	w := int(math.Ceil(worldW / cellSize))
	d := int(math.Ceil(worldD / cellSize))
	if w < 1 {
		w = 1
	}
	if d < 1 {
		d = 1
	}

	grid := &NavGrid{
		cells:    make([]bool, w*d),
		cellSize: cellSize,
		width:    w,
		depth:    d,
	}

	for gz := 0; gz < d; gz++ {
		for gx := 0; gx < w; gx++ {
			c := grid.GridToWorld(gx, gz)

			blocked := false
			for _, b := range obstacles {
				if c.X >= b.Min.X-inflation && c.X <= b.Max.X+inflation &&
					c.Z >= b.Min.Z-inflation && c.Z <= b.Max.Z+inflation {
					blocked = true
					break
				}
			}

			// Keep agents off the world edge
			if c.X < inflation || c.X > worldW-inflation || c.Z < inflation || c.Z > worldD-inflation {
				blocked = true
			}

			grid.cells[gz*w+gx] = blocked
		}
	}

	return grid
}

// IsBlocked returns true if the given cell is blocked.
func (g *NavGrid) IsBlocked(gx, gz int) bool {
	if gx < 0 || gx >= g.width || gz < 0 || gz >= g.depth {
		return true // Out of bounds is blocked
	}
	return g.cells[gz*g.width+gx]
}

// IsBlockedWorld returns true if the world position is in a blocked cell.
func (g *NavGrid) IsBlockedWorld(p r3.Vec) bool {
	return g.IsBlocked(g.WorldToGrid(p))
}

// WorldToGrid converts a world position to grid coordinates.
func (g *NavGrid) WorldToGrid(p r3.Vec) (gx, gz int) {
	gx = int(math.Floor(p.X / g.cellSize))
	gz = int(math.Floor(p.Z / g.cellSize))
	return
}

// GridToWorld converts grid coordinates to the cell center on the ground.
func (g *NavGrid) GridToWorld(gx, gz int) r3.Vec {
	return r3.Vec{
		X: (float64(gx) + 0.5) * g.cellSize,
		Z: (float64(gz) + 0.5) * g.cellSize,
	}
}

// Size returns the grid dimensions in cells.
func (g *NavGrid) Size() (width, depth int) {
	return g.width, g.depth
}

// CellSize returns the world size of one cell.
func (g *NavGrid) CellSize() float64 {
	return g.cellSize
}
