package engine

import "math"

// Near-axis ray components are replaced by a huge inverse so the DDA
// never steps along that axis.
const (
	rayDirEps = 0.00001
	rayInvInf = 1e30
)

// RayHit is the result of a grid raycast.
type RayHit struct {
	Hit  bool
	Dist float64 // perpendicular distance to the hit face
	MapX int
	MapY int
	Side int     // 0 = vertical grid line crossed, 1 = horizontal
	WallX float64 // fractional hit coordinate along the face, [0,1)
}

// CastRay walks the grid from pos along dir using DDA, crossing one
// grid line per step on whichever axis has the smaller accumulated
// side distance. It stops at the first cell for which solid returns
// true, or reports a miss capped at maxDist.
func CastRay(pos, dir Vec2, maxDist float64, solid func(ix, iy int) bool) RayHit {
	mapX, mapY := int(pos.X()), int(pos.Y())

	invX, invY := rayInvInf, rayInvInf
	if math.Abs(dir.X()) > rayDirEps {
		invX = 1 / dir.X()
	}
	if math.Abs(dir.Y()) > rayDirEps {
		invY = 1 / dir.Y()
	}
	deltaX := math.Abs(invX)
	deltaY := math.Abs(invY)

	var stepX, stepY int
	var sideX, sideY float64
	if dir.X() < 0 {
		stepX = -1
		sideX = (pos.X() - float64(mapX)) * deltaX
	} else {
		stepX = 1
		sideX = (float64(mapX) + 1 - pos.X()) * deltaX
	}
	if dir.Y() < 0 {
		stepY = -1
		sideY = (pos.Y() - float64(mapY)) * deltaY
	} else {
		stepY = 1
		sideY = (float64(mapY) + 1 - pos.Y()) * deltaY
	}

	var side int
	var dist float64
	for {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = 0
			dist = sideX - deltaX
		} else {
			sideY += deltaY
			mapY += stepY
			side = 1
			dist = sideY - deltaY
		}

		if solid(mapX, mapY) {
			var wallX float64
			if side == 0 {
				wallX = pos.Y() + dist*dir.Y()
			} else {
				wallX = pos.X() + dist*dir.X()
			}
			wallX -= math.Floor(wallX)
			return RayHit{
				Hit:   true,
				Dist:  dist,
				MapX:  mapX,
				MapY:  mapY,
				Side:  side,
				WallX: wallX,
			}
		}

		if dist > maxDist {
			return RayHit{Dist: maxDist, MapX: mapX, MapY: mapY, Side: side}
		}
	}
}
