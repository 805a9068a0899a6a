// Package trace generates lines by following a vector field.
package trace

import (
	"math"

	"github.com/pthm-cable/plotflow/geom"
)

// cellKey addresses one bucket of the proximity grid.
type cellKey struct {
	col, row int
}

// Grid is a uniform spatial hash over placed points. Fill and swarm
// tracing issue a proximity query on every step, so lookups must stay
// O(1) amortized rather than scanning every placed point. Points are
// only ever added; the grid lives for one generation run.
type Grid struct {
	cellSize float64
	cells    map[cellKey][]geom.Point
}

// NewGrid creates a proximity grid with the given cell size.
func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	return &Grid{
		cellSize: cellSize,
		cells:    make(map[cellKey][]geom.Point),
	}
}

// Add inserts a point into its bucket.
func (g *Grid) Add(p geom.Point) {
	k := g.key(p.X, p.Y)
	g.cells[k] = append(g.cells[k], p)
}

// AddLine inserts every point of a line.
func (g *Grid) AddLine(l geom.Line) {
	for _, p := range l {
		g.Add(p)
	}
}

// HasNearby reports whether any placed point lies strictly closer than
// dist to (x, y). Scans the ceil(dist/cellSize) ring of buckets and
// exits on the first hit.
func (g *Grid) HasNearby(x, y, dist float64) bool {
	if dist <= 0 {
		return false
	}
	reach := int(math.Ceil(dist / g.cellSize))
	center := g.key(x, y)
	distSq := dist * dist

	for dc := -reach; dc <= reach; dc++ {
		for dr := -reach; dr <= reach; dr++ {
			bucket := g.cells[cellKey{center.col + dc, center.row + dr}]
			for _, p := range bucket {
				dx := p.X - x
				dy := p.Y - y
				if dx*dx+dy*dy < distSq {
					return true
				}
			}
		}
	}
	return false
}

func (g *Grid) key(x, y float64) cellKey {
	return cellKey{
		col: int(math.Floor(x / g.cellSize)),
		row: int(math.Floor(y / g.cellSize)),
	}
}
