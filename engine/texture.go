package engine

import "math"

// Wall textures are 64x64 RGB, monster textures 32x32 RGB, all
// generated procedurally so the repo ships no image assets. The set
// is built once per renderer, never at package init.
const (
	texW  = 64
	texH  = 64
	texMW = 32
	texMH = 32

	numWallTextures    = 5
	numMonsterTextures = 2
)

// Wall texture slots.
const (
	texBrick = iota
	texStone
	texMetal
	texWood
	texMarble
)

type textureSet struct {
	walls    [numWallTextures][]uint8
	monsters [numMonsterTextures][]uint8
}

func newTextureSet() *textureSet {
	t := &textureSet{}
	for i := range t.walls {
		t.walls[i] = make([]uint8, texW*texH*3)
	}
	for i := range t.monsters {
		t.monsters[i] = make([]uint8, texMW*texMH*3)
	}

	for y := 0; y < texH; y++ {
		for x := 0; x < texW; x++ {
			idx := (y*texW + x) * 3

			// Brick: red courses with light mortar lines
			var r, g, b uint8
			if y%16 == 15 || x%16 == 15 {
				r, g, b = 180, 175, 170
			} else {
				r, g, b = 150+uint8(x%16), 40, 40
			}
			t.walls[texBrick][idx] = r
			t.walls[texBrick][idx+1] = g
			t.walls[texBrick][idx+2] = b

			// Stone: xor-hash shading
			shade := 120 + uint8((x^y)&15)
			t.walls[texStone][idx] = shade
			t.walls[texStone][idx+1] = shade - 10
			t.walls[texStone][idx+2] = shade - 20

			// Metal: vertical stripes with a blue cast
			base := uint8(110)
			if (x/8)%2 == 0 {
				base = 160
			}
			t.walls[texMetal][idx] = base
			t.walls[texMetal][idx+1] = base
			t.walls[texMetal][idx+2] = base + 20

			// Crate wood: sine grain
			grain := int(math.Sin(float64(x)*0.3)*10) + int(math.Cos(float64(y)*0.15)*8)
			if grain < -20 {
				grain = -20
			} else if grain > 30 {
				grain = 30
			}
			wood := uint8(100 + grain)
			t.walls[texWood][idx] = wood + 30
			t.walls[texWood][idx+1] = wood + 10
			t.walls[texWood][idx+2] = wood

			// Marble: swirl
			swirl := (math.Sin(float64(x)*0.2)+math.Cos(float64(y)*0.3))*0.5 + 0.5
			m := uint8(200 * swirl)
			t.walls[texMarble][idx] = m
			t.walls[texMarble][idx+1] = m
			t.walls[texMarble][idx+2] = m - 10
		}
	}

	for y := 0; y < texMH; y++ {
		for x := 0; x < texMW; x++ {
			idx := (y*texMW + x) * 3
			edge := x < 2 || x > texMW-3 || y < 2 || y > texMH-3

			// Basic: red demon, darker edges
			if edge {
				t.monsters[MonsterBasic][idx] = 120
				t.monsters[MonsterBasic][idx+1] = 20
				t.monsters[MonsterBasic][idx+2] = 20
			} else {
				t.monsters[MonsterBasic][idx] = 200 - uint8(y)/2
				t.monsters[MonsterBasic][idx+1] = 40 + uint8(x)/4
				t.monsters[MonsterBasic][idx+2] = 30
			}

			// Elite: purple
			if edge {
				t.monsters[MonsterElite][idx] = 80
				t.monsters[MonsterElite][idx+2] = 120
			} else {
				t.monsters[MonsterElite][idx] = 150 + uint8((x^y)&15)
				t.monsters[MonsterElite][idx+2] = 200 - uint8(x)/2
			}
			t.monsters[MonsterElite][idx+1] = 40 + uint8(y)/3
		}
	}

	return t
}

// wallTexture maps a tile code to its texture slot.
func wallTexture(code int) int {
	switch code {
	case TileStone:
		return texStone
	case TilePillar:
		return texMarble
	case TileCrate:
		return texWood
	default:
		return texBrick
	}
}
