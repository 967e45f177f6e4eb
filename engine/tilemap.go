package engine

import "math/rand"

const (
	MapW = 32
	MapH = 32
)

// Tile codes. Anything non-zero is solid; the code selects the wall
// texture.
const (
	TileOpen   = 0
	TileBrick  = 1 // outer walls
	TileStone  = 2 // room walls
	TilePillar = 3
	TileCrate  = 4
)

const (
	procPillars   = 40
	procRectRooms = 8
)

// TileMap is the wall grid. It is mutated only by whole-grid
// operations: the constructor, Generate, and Restore.
type TileMap struct {
	cells [MapW * MapH]int
	saved *[MapW * MapH]int
}

// NewArenaMap builds the fixed designed layout: bordered arena, four
// walled rooms with single-tile doors, a central pillar cluster and
// scattered crates.
func NewArenaMap() *TileMap {
	m := &TileMap{}

	for x := 0; x < MapW; x++ {
		m.cells[x] = TileBrick
		m.cells[x+(MapH-1)*MapW] = TileBrick
	}
	for y := 0; y < MapH; y++ {
		m.cells[y*MapW] = TileBrick
		m.cells[MapW-1+y*MapW] = TileBrick
	}

	// Top-left room
	for x := 5; x < 10; x++ {
		m.cells[x+5*MapW] = TileStone
		m.cells[x+10*MapW] = TileStone
	}
	for y := 5; y < 10; y++ {
		m.cells[5+y*MapW] = TileStone
		m.cells[10+y*MapW] = TileStone
	}
	m.cells[7+10*MapW] = TileOpen // door

	// Top-right room
	for x := 22; x < 28; x++ {
		m.cells[x+5*MapW] = TileStone
		m.cells[x+10*MapW] = TileStone
	}
	for y := 5; y < 10; y++ {
		m.cells[22+y*MapW] = TileStone
		m.cells[28+y*MapW] = TileStone
	}
	m.cells[25+10*MapW] = TileOpen

	// Bottom-left room
	for x := 5; x < 10; x++ {
		m.cells[x+22*MapW] = TileStone
		m.cells[x+27*MapW] = TileStone
	}
	for y := 22; y < 27; y++ {
		m.cells[5+y*MapW] = TileStone
		m.cells[10+y*MapW] = TileStone
	}
	m.cells[7+22*MapW] = TileOpen

	// Bottom-right room
	for x := 22; x < 28; x++ {
		m.cells[x+22*MapW] = TileStone
		m.cells[x+27*MapW] = TileStone
	}
	for y := 22; y < 27; y++ {
		m.cells[22+y*MapW] = TileStone
		m.cells[28+y*MapW] = TileStone
	}
	m.cells[25+22*MapW] = TileOpen

	// Central 2x2 pillar cluster
	for x := 15; x <= 16; x++ {
		for y := 15; y <= 16; y++ {
			m.cells[x+y*MapW] = TilePillar
		}
	}

	// Scattered crates
	m.cells[12+8*MapW] = TileCrate
	m.cells[20+8*MapW] = TileCrate
	m.cells[12+24*MapW] = TileCrate
	m.cells[20+24*MapW] = TileCrate
	m.cells[8+16*MapW] = TileCrate
	m.cells[24+16*MapW] = TileCrate

	return m
}

// Tile returns the code at world coordinates. Anything outside the
// grid reads as solid brick, so rays and bodies can never escape.
func (m *TileMap) Tile(x, y float64) int {
	if x < 0 || y < 0 {
		return TileBrick
	}
	xi, yi := int(x), int(y)
	if xi >= MapW || yi >= MapH {
		return TileBrick
	}
	return m.cells[xi+yi*MapW]
}

// Solid reports whether the integer cell blocks movement and rays.
func (m *TileMap) Solid(ix, iy int) bool {
	if ix < 0 || iy < 0 || ix >= MapW || iy >= MapH {
		return true
	}
	return m.cells[ix+iy*MapW] != TileOpen
}

// Set writes a tile code. Out-of-range writes are dropped.
func (m *TileMap) Set(ix, iy, code int) {
	if ix < 0 || iy < 0 || ix >= MapW || iy >= MapH {
		return
	}
	m.cells[ix+iy*MapW] = code
}

// Generate replaces the grid with a procedural layout: solid fill,
// carved interior, random pillars, random crate-walled room outlines
// and a cleared center spawn block. The first call snapshots the
// current grid; repeat calls without a Restore keep that first
// snapshot so the original layout stays recoverable.
func (m *TileMap) Generate(rng *rand.Rand) {
	if m.saved == nil {
		saved := m.cells
		m.saved = &saved
	}

	for i := range m.cells {
		m.cells[i] = TileBrick
	}
	for y := 1; y < MapH-1; y++ {
		for x := 1; x < MapW-1; x++ {
			m.cells[x+y*MapW] = TileOpen
		}
	}

	for i := 0; i < procPillars; i++ {
		x := 2 + int(rng.Float64()*(MapW-4))
		y := 2 + int(rng.Float64()*(MapH-4))
		m.cells[x+y*MapW] = TilePillar
	}

	for i := 0; i < procRectRooms; i++ {
		rw := 4 + int(rng.Float64()*6)
		rh := 4 + int(rng.Float64()*6)
		rx := 2 + int(rng.Float64()*float64(MapW-rw-4))
		ry := 2 + int(rng.Float64()*float64(MapH-rh-4))
		for x := rx; x < rx+rw; x++ {
			m.cells[x+ry*MapW] = TileCrate
			m.cells[x+(ry+rh-1)*MapW] = TileCrate
		}
		for y := ry; y < ry+rh; y++ {
			m.cells[rx+y*MapW] = TileCrate
			m.cells[rx+rw-1+y*MapW] = TileCrate
		}
	}

	// Clear spawn block
	for y := 14; y < 18; y++ {
		for x := 14; x < 18; x++ {
			m.cells[x+y*MapW] = TileOpen
		}
	}
}

// Restore swaps the pre-procedural snapshot back in and discards it.
// No-op when no snapshot is held.
func (m *TileMap) Restore() {
	if m.saved == nil {
		return
	}
	m.cells = *m.saved
	m.saved = nil
}
