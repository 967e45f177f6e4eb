package engine

import "math"

// SpatialGrid is a hash-bucketed broad-phase index. Entities insert
// their bounding square into every cell it overlaps; queries return
// the de-duplicated candidate set for a region.
type SpatialGrid struct {
	invCell float64
	cells   map[[2]int][]int
}

// NewSpatialGrid creates a grid with the given cell size in world
// units.
func NewSpatialGrid(cellSize float64) *SpatialGrid {
	return &SpatialGrid{
		invCell: 1 / cellSize,
		cells:   make(map[[2]int][]int, 256),
	}
}

func (g *SpatialGrid) cellOf(x, y float64) (int, int) {
	return int(math.Floor(x * g.invCell)), int(math.Floor(y * g.invCell))
}

// Clear drops all entries but keeps bucket capacity.
func (g *SpatialGrid) Clear() {
	for k := range g.cells {
		g.cells[k] = g.cells[k][:0]
	}
}

// Insert registers id in every cell overlapped by the bounding square
// [pos-radius, pos+radius].
func (g *SpatialGrid) Insert(id int, pos Vec2, radius float64) {
	minX, minY := g.cellOf(pos.X()-radius, pos.Y()-radius)
	maxX, maxY := g.cellOf(pos.X()+radius, pos.Y()+radius)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			key := [2]int{cx, cy}
			g.cells[key] = append(g.cells[key], id)
		}
	}
}

// Query returns the ids whose bounding squares may overlap the given
// region, each at most once.
func (g *SpatialGrid) Query(pos Vec2, radius float64) []int {
	return g.QueryBuf(pos, radius, nil)
}

// QueryBuf appends results to buf and returns the extended slice,
// avoiding per-call allocation in hot paths.
func (g *SpatialGrid) QueryBuf(pos Vec2, radius float64, buf []int) []int {
	minX, minY := g.cellOf(pos.X()-radius, pos.Y()-radius)
	maxX, maxY := g.cellOf(pos.X()+radius, pos.Y()+radius)
	start := len(buf)
	for cx := minX; cx <= maxX; cx++ {
		for cy := minY; cy <= maxY; cy++ {
			for _, id := range g.cells[[2]int{cx, cy}] {
				if !containsID(buf[start:], id) {
					buf = append(buf, id)
				}
			}
		}
	}
	return buf
}

// Candidate sets are small; a linear scan beats a map here.
func containsID(ids []int, id int) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
