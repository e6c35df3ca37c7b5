package game

import (
	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/npcbrain/geom"
	"github.com/pthm-cable/npcbrain/perception"
)

var _ perception.Query = (*TagIndex)(nil)

// tagEntry is one indexed entity.
type tagEntry struct {
	e   ecs.Entity
	tag string
	pos r3.Vec
}

// TagIndex is a uniform grid over the XZ plane answering tag range queries.
// It is rebuilt from the ECS world every tick.
type TagIndex struct {
	cellSize float64
	cols     int
	rows     int
	cells    [][]tagEntry // flat grid of entry lists
}

// NewTagIndex creates an index covering a width x depth world.
func NewTagIndex(width, depth, cellSize float64) *TagIndex {
	cols := int(width/cellSize) + 1
	rows := int(depth/cellSize) + 1

	cells := make([][]tagEntry, cols*rows)
	for i := range cells {
		cells[i] = make([]tagEntry, 0, 4)
	}

	return &TagIndex{
		cellSize: cellSize,
		cols:     cols,
		rows:     rows,
		cells:    cells,
	}
}

// Clear removes all entries.
func (ti *TagIndex) Clear() {
	for i := range ti.cells {
		ti.cells[i] = ti.cells[i][:0]
	}
}

// Insert adds an entity carrying tag at pos.
func (ti *TagIndex) Insert(e ecs.Entity, tag string, pos r3.Vec) {
	col, row := ti.cellOf(pos)
	idx := row*ti.cols + col
	ti.cells[idx] = append(ti.cells[idx], tagEntry{e: e, tag: tag, pos: pos})
}

// InRange reports whether any entity tagged tag lies within radius of origin
// (inclusive).
func (ti *TagIndex) InRange(tag string, origin r3.Vec, radius float64) bool {
	found := false
	ti.visit(tag, origin, radius, func(tagEntry) bool {
		found = true
		return false
	})
	return found
}

// visit calls fn for matching entries until it returns false.
func (ti *TagIndex) visit(tag string, origin r3.Vec, radius float64, fn func(tagEntry) bool) {
	if radius < 0 {
		return
	}
	minCol, minRow := ti.cellOf(r3.Vec{X: origin.X - radius, Z: origin.Z - radius})
	maxCol, maxRow := ti.cellOf(r3.Vec{X: origin.X + radius, Z: origin.Z + radius})

	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			for _, te := range ti.cells[row*ti.cols+col] {
				if te.tag != tag || geom.Distance(origin, te.pos) > radius {
					continue
				}
				if !fn(te) {
					return
				}
			}
		}
	}
}

// cellOf returns the clamped cell containing pos.
func (ti *TagIndex) cellOf(pos r3.Vec) (col, row int) {
	col = int(pos.X / ti.cellSize)
	row = int(pos.Z / ti.cellSize)
	col = max(0, min(col, ti.cols-1))
	row = max(0, min(row, ti.rows-1))
	return col, row
}
