package engine

import (
	"math"
	"strconv"
)

const (
	maxViewDist = 50.0
	fogDensity  = 0.18
	sideShade   = 0.65 // darken walls hit on horizontal grid lines
	starCount   = 30
)

// Renderer rasterizes a session into a surface: sky and floor bands,
// per-column raycast walls, z-clipped billboard sprites, then the HUD.
// It owns the procedural texture set and the per-column depth buffer.
type Renderer struct {
	tex  *textureSet
	zbuf []float64
}

func NewRenderer() *Renderer {
	return &Renderer{tex: newTextureSet()}
}

// Render draws one frame and presents it.
func (r *Renderer) Render(s *Session, surf Surface) error {
	fb := surf.Frame()
	w, h := fb.W, fb.H
	if w < 10 || h < 10 {
		fb.Clear(RGB{})
		return surf.Present()
	}

	r.drawSky(fb, s.TimeOfDay())
	r.drawFloor(fb)
	r.drawWalls(fb, s)

	// Back-to-front billboards; monsters last so they read as
	// foreground.
	for i := range s.Pickups {
		r.drawDiamond(fb, s, s.Pickups[i].Pos, 10, 2, 12, RGB{30, 144, 255}, 20)
	}
	for i := range s.Peers {
		r.drawDiamond(fb, s, s.Peers[i].Body.Pos, 14, 2, 16, RGB{0, 220, 80}, 25)
	}
	r.drawParticles(fb, s)
	r.drawProjectiles(fb, s)
	r.drawMonsters(fb, s)

	r.drawHUD(fb, s)
	return surf.Present()
}

// skyColor interpolates the four time-of-day stops: midnight 0.0,
// dawn 0.25, noon 0.5, dusk 0.75.
func skyColor(tod float64) RGB {
	switch {
	case tod < 0.25:
		t := tod * 4
		return RGB{uint8(20 + t*80), uint8(30 + t*120), uint8(60 + t*160)}
	case tod < 0.5:
		t := (tod - 0.25) * 4
		return RGB{uint8(100 + t*35), uint8(150 + t*50), 220}
	case tod < 0.75:
		t := (tod - 0.5) * 4
		return RGB{uint8(135 - t*35), uint8(200 - t*80), uint8(220 - t*80)}
	default:
		t := (tod - 0.75) * 4
		return RGB{uint8(100 - t*80), uint8(120 - t*90), uint8(140 - t*80)}
	}
}

// ambientLight dims the world at night: full brightness through the
// day, fading through dawn and dusk.
func ambientLight(tod float64) float64 {
	switch {
	case tod < 0.25:
		return 0.3 + tod*2.8
	case tod < 0.75:
		return 1.0
	default:
		return 1.0 - (tod-0.75)*2.8
	}
}

func (r *Renderer) drawSky(fb *FrameBuffer, tod float64) {
	halfH := fb.H / 2
	sky := skyColor(tod)
	for y := 0; y < halfH; y++ {
		gradient := float64(y) / float64(halfH)
		c := RGB{
			scale8(sky.R, 1-gradient*0.3),
			scale8(sky.G, 1-gradient*0.3),
			scale8(sky.B, 1-gradient*0.2),
		}
		fb.HLine(0, fb.W-1, y, c)
	}

	if tod >= 0.2 && tod <= 0.8 {
		return
	}
	brightness := (0.2 - tod) * 5
	if tod > 0.8 {
		brightness = (tod - 0.8) * 5
	}
	if brightness > 1 {
		brightness = 1
	}
	v := uint8(255 * brightness)
	for i := 0; i < starCount; i++ {
		fb.SetPixel((i*73)%fb.W, (i*37)%halfH, RGB{v, v, v})
	}
}

func (r *Renderer) drawFloor(fb *FrameBuffer) {
	halfH := fb.H / 2
	for y := halfH; y < fb.H; y++ {
		shade := 30 + (fb.H-y)*20/halfH
		if shade > 255 {
			shade = 255
		}
		fb.HLine(0, fb.W-1, y, RGB{uint8(shade / 3), uint8(shade / 4), uint8(shade / 5)})
	}
}

func (r *Renderer) drawWalls(fb *FrameBuffer, s *Session) {
	w, h := fb.W, fb.H
	halfH := h / 2
	if len(r.zbuf) != w {
		r.zbuf = make([]float64, w)
	}
	for i := range r.zbuf {
		r.zbuf[i] = math.MaxFloat64
	}

	light := ambientLight(s.TimeOfDay())
	p := &s.Player

	for x := 0; x < w; x++ {
		cameraX := 2*float64(x)/float64(w) - 1
		rayDir := p.Dir.Add(p.Plane.Mul(cameraX))

		hit := CastRay(p.Body.Pos, rayDir, maxViewDist, s.Map.Solid)
		if !hit.Hit || hit.Dist <= 0 {
			continue
		}
		r.zbuf[x] = hit.Dist

		lineHeight := int(math.Min(float64(h)/hit.Dist, float64(h)*2))
		drawStart := halfH - lineHeight/2
		if drawStart < 0 {
			drawStart = 0
		}
		drawEnd := halfH + lineHeight/2
		if drawEnd > h {
			drawEnd = h
		}
		if drawEnd <= drawStart {
			continue
		}

		tex := r.tex.walls[wallTexture(s.Map.Tile(float64(hit.MapX), float64(hit.MapY)))]
		texX := int(hit.WallX*texW) & (texW - 1)
		shade := light / (1 + hit.Dist*fogDensity)
		if hit.Side == 1 {
			shade *= sideShade
		}

		// Column bounds validated above; the inner loop takes the
		// unchecked path.
		span := float64(drawEnd - drawStart)
		for sy := drawStart; sy < drawEnd; sy++ {
			texY := int(float64(sy-drawStart)/span*texH) & (texH - 1)
			base := (texY*texW + texX) * 3
			fb.put(x, sy, RGB{
				uint8(float64(tex[base]) * shade),
				uint8(float64(tex[base+1]) * shade),
				uint8(float64(tex[base+2]) * shade),
			})
		}
	}
}

// cameraTransform maps a world point into camera space: tx is the
// horizontal offset, ty the depth used for scaling and z-clipping.
func cameraTransform(p *Player, world Vec2) (tx, ty float64) {
	sp := world.Sub(p.Body.Pos)
	invDet := 1 / (p.Plane.X()*p.Dir.Y() - p.Dir.X()*p.Plane.Y())
	tx = invDet * (p.Dir.Y()*sp.X() - p.Dir.X()*sp.Y())
	ty = invDet * (-p.Plane.Y()*sp.X() + p.Plane.X()*sp.Y())
	return
}

func (r *Renderer) drawDiamond(fb *FrameBuffer, s *Session, world Vec2, scale float64, minSize, maxSize int, c RGB, maxDepth float64) {
	tx, ty := cameraTransform(&s.Player, world)
	if ty <= 0.1 || ty >= maxDepth {
		return
	}
	w, h := fb.W, fb.H
	halfH := h / 2
	screenX := int(float64(w) / 2 * (1 + tx/ty))
	if screenX < 0 || screenX >= w {
		return
	}
	size := int(math.Abs(scale / ty))
	if size < minSize {
		size = minSize
	} else if size > maxSize {
		size = maxSize
	}
	for dy := -size; dy <= size; dy++ {
		for dx := -size; dx <= size; dx++ {
			if abs(dx)+abs(dy) >= size {
				continue
			}
			px := screenX + dx
			if px < 0 || px >= w || ty >= r.zbuf[px] {
				continue
			}
			fb.SetPixel(px, halfH+dy, c)
		}
	}
}

func (r *Renderer) drawParticles(fb *FrameBuffer, s *Session) {
	w, h := fb.W, fb.H
	halfH := h / 2
	for i := range s.Particles {
		pt := &s.Particles[i]
		tx, ty := cameraTransform(&s.Player, pt.Pos)
		if ty <= 0.1 || ty >= 20 {
			continue
		}
		screenX := int(float64(w) / 2 * (1 + tx/ty))
		if screenX < 0 || screenX >= w {
			continue
		}
		size := int(math.Abs(8 / ty))
		if size < 1 {
			size = 1
		} else if size > 10 {
			size = 10
		}
		c := pt.Color.Scale(pt.Alpha())
		for dy := -size; dy <= size; dy++ {
			for dx := -size; dx <= size; dx++ {
				px := screenX + dx
				if px < 0 || px >= w || ty >= r.zbuf[px] {
					continue
				}
				fb.SetPixel(px, halfH+dy, c)
			}
		}
	}
}

func (r *Renderer) drawProjectiles(fb *FrameBuffer, s *Session) {
	w, h := fb.W, fb.H
	halfH := h / 2
	for i := range s.Projectiles {
		tx, ty := cameraTransform(&s.Player, s.Projectiles[i].Body.Pos)
		if ty <= 0.1 || ty >= 20 {
			continue
		}
		screenX := int(float64(w) / 2 * (1 + tx/ty))
		if screenX < 0 || screenX >= w {
			continue
		}
		size := int(math.Abs(12 / ty))
		if size < 2 {
			size = 2
		}
		for dy := -size; dy <= size; dy++ {
			for dx := -size; dx <= size; dx++ {
				if dx*dx+dy*dy > size*size {
					continue
				}
				px := screenX + dx
				if px < 0 || px >= w || ty >= r.zbuf[px] {
					continue
				}
				fb.SetPixel(px, halfH+dy, RGB{255, 255, 0})
			}
		}
	}
}

func (r *Renderer) drawMonsters(fb *FrameBuffer, s *Session) {
	w, h := fb.W, fb.H
	halfH := h / 2
	light := ambientLight(s.TimeOfDay())

	type depthRef struct {
		depth float64
		m     *Monster
	}
	order := make([]depthRef, 0, len(s.Monsters))
	for i := range s.Monsters {
		m := &s.Monsters[i]
		if !m.Alive() {
			continue
		}
		_, ty := cameraTransform(&s.Player, m.Body.Pos)
		if ty > 0.1 {
			order = append(order, depthRef{ty, m})
		}
	}
	// Back to front
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && order[j].depth > order[j-1].depth; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}

	for _, ref := range order {
		m := ref.m
		ty := ref.depth
		tx, _ := cameraTransform(&s.Player, m.Body.Pos)

		screenX := int(float64(w) / 2 * (1 + tx/ty))
		spriteH := int(math.Abs(float64(h) / ty))
		if spriteH > h*2 {
			spriteH = h * 2
		}
		spriteW := spriteH
		if spriteW <= 0 {
			continue
		}

		startY := halfH - spriteH/2
		if startY < 0 {
			startY = 0
		}
		endY := halfH + spriteH/2
		if endY > h-1 {
			endY = h - 1
		}
		startX := screenX - spriteW/2
		if startX < 0 {
			startX = 0
		}
		endX := screenX + spriteW/2
		if endX > w-1 {
			endX = w - 1
		}
		if endY <= startY || endX <= startX {
			continue
		}

		tex := r.tex.monsters[m.Kind&1]
		for stripe := startX; stripe <= endX; stripe++ {
			if ty >= r.zbuf[stripe] {
				continue
			}
			u := float64(stripe-(screenX-spriteW/2)) / float64(spriteW)
			if u < 0 || u > 1 {
				continue
			}
			sx := int(u*texMW) & (texMW - 1)
			for y := startY; y <= endY; y++ {
				v := float64(y-(halfH-spriteH/2)) / float64(spriteH)
				if v < 0 || v > 1 {
					continue
				}
				sy := int(v*texMH) & (texMH - 1)
				base := (sy*texMW + sx) * 3
				fb.put(stripe, y, RGB{
					uint8(float64(tex[base]) * light),
					uint8(float64(tex[base+1]) * light),
					uint8(float64(tex[base+2]) * light),
				})
			}
		}

		// Overhead health bar, also depth-clipped
		if startY > 10 {
			const barWidth = 30
			barY := startY - 5
			barX := screenX - barWidth/2
			if barX < 0 {
				barX = 0
			}
			pct := float64(m.Health) / float64(m.MaxHealth)
			if pct < 0 {
				pct = 0
			}
			filled := int(barWidth * pct)
			for x := 0; x < barWidth; x++ {
				bx := barX + x
				if bx >= w || ty >= r.zbuf[bx] {
					continue
				}
				if x < filled {
					fb.SetPixel(bx, barY, RGB{0, 255, 0})
				} else {
					fb.SetPixel(bx, barY, RGB{50, 50, 50})
				}
			}
		}
	}
}

func (r *Renderer) drawHUD(fb *FrameBuffer, s *Session) {
	w, h := fb.W, fb.H

	// Health bar, red below half
	const barW, barH = 200, 20
	barX, barY := 20, h-50
	pct := float64(s.Player.Health) / float64(s.Player.MaxHealth)
	if pct < 0 {
		pct = 0
	}
	fb.FillRect(barX, barY, barW, barH, RGB{30, 30, 30})
	if filled := int(barW * pct); filled > 0 {
		c := RGB{0, 200, 0}
		if pct <= 0.5 {
			c = RGB{255, uint8(math.Min(pct*400, 255)), 0}
		}
		fb.FillRect(barX, barY, filled, barH, c)
	}

	// Ammo readout; the pistol is marked infinite
	ammoX, ammoY := w-140, h-55
	DrawText(fb, "AMMO", ammoX, ammoY, RGB{200, 200, 200})
	if s.Player.Weapon == WeaponPistol {
		DrawText(fb, "INF", ammoX, ammoY+16, RGB{255, 255, 0})
	} else {
		DrawNumber(fb, s.Player.Ammo, ammoX, ammoY+16)
		if s.Player.Ammo < 10 {
			fb.DrawRect(ammoX-4, ammoY+12, 70, 22, RGB{255, 0, 0})
		}
	}

	DrawNumber(fb, s.Score, w/2-60, 20)

	diffColor := RGB{255, 255, 0}
	switch s.Difficulty {
	case Easy:
		diffColor = RGB{0, 255, 0}
	case Hard:
		diffColor = RGB{255, 0, 0}
	}
	DrawText(fb, s.Difficulty.String(), 20, 20, diffColor)

	if len(s.Peers) > 0 {
		DrawText(fb, "MP:", 20, 38, RGB{0, 180, 255})
		DrawText(fb, strconv.Itoa(len(s.Peers)), 20+3*GlyphAdvance, 38, RGB{0, 180, 255})
	}

	// Crosshair
	cx, cy := w/2, h/2
	fb.HLine(cx-10, cx+10, cy, RGB{255, 255, 255})
	fb.VLine(cx, cy-10, cy+10, RGB{255, 255, 255})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
