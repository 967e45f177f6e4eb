package engine

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// Scale multiplies each channel by f, clamped to [0,255].
func (c RGB) Scale(f float64) RGB {
	return RGB{scale8(c.R, f), scale8(c.G, f), scale8(c.B, f)}
}

func scale8(v uint8, f float64) uint8 {
	s := float64(v) * f
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}

// FrameBuffer is an addressable RGBA pixel buffer (alpha always 255).
// All exported drawing operations are bounds-checked; the single
// unchecked path is put, used by callers that validated a whole run
// up front.
type FrameBuffer struct {
	W, H int
	Pix  []uint8 // RGBA, stride W*4
}

// NewFrameBuffer allocates an opaque black buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	fb := &FrameBuffer{W: w, H: h, Pix: make([]uint8, w*h*4)}
	fb.Clear(RGB{})
	return fb
}

// Clear fills the whole buffer with one color.
func (f *FrameBuffer) Clear(c RGB) {
	for i := 0; i < len(f.Pix); i += 4 {
		f.Pix[i] = c.R
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.B
		f.Pix[i+3] = 255
	}
}

// SetPixel writes one pixel; out-of-bounds writes are dropped.
func (f *FrameBuffer) SetPixel(x, y int, c RGB) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	f.put(x, y, c)
}

// put writes without bounds checks. Caller guarantees 0<=x<W, 0<=y<H.
func (f *FrameBuffer) put(x, y int, c RGB) {
	i := (y*f.W + x) * 4
	f.Pix[i] = c.R
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.B
	f.Pix[i+3] = 255
}

// At reads a pixel, returning black outside the buffer.
func (f *FrameBuffer) At(x, y int) RGB {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return RGB{}
	}
	i := (y*f.W + x) * 4
	return RGB{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// HLine fills the horizontal run [x0,x1] on row y.
func (f *FrameBuffer) HLine(x0, x1, y int, c RGB) {
	if y < 0 || y >= f.H {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	if x0 < 0 {
		x0 = 0
	}
	if x1 >= f.W {
		x1 = f.W - 1
	}
	for x := x0; x <= x1; x++ {
		f.put(x, y, c)
	}
}

// VLine fills the vertical run [y0,y1] in column x.
func (f *FrameBuffer) VLine(x, y0, y1 int, c RGB) {
	if x < 0 || x >= f.W {
		return
	}
	if y0 > y1 {
		y0, y1 = y1, y0
	}
	if y0 < 0 {
		y0 = 0
	}
	if y1 >= f.H {
		y1 = f.H - 1
	}
	for y := y0; y <= y1; y++ {
		f.put(x, y, c)
	}
}

// FillRect fills the w x h rectangle anchored at (x, y).
func (f *FrameBuffer) FillRect(x, y, w, h int, c RGB) {
	for yy := y; yy < y+h; yy++ {
		f.HLine(x, x+w-1, yy, c)
	}
}

// DrawRect outlines the rectangle.
func (f *FrameBuffer) DrawRect(x, y, w, h int, c RGB) {
	f.HLine(x, x+w-1, y, c)
	f.HLine(x, x+w-1, y+h-1, c)
	f.VLine(x, y, y+h-1, c)
	f.VLine(x+w-1, y, y+h-1, c)
}

// DrawLine draws a Bresenham line segment.
func (f *FrameBuffer) DrawLine(x0, y0, x1, y1 int, c RGB) {
	dx := x1 - x0
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y0
	if dy < 0 {
		dy = -dy
	}
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx - dy
	for {
		f.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// DrawCircle outlines a circle using the midpoint algorithm.
func (f *FrameBuffer) DrawCircle(cx, cy, r int, c RGB) {
	x, y := r, 0
	err := 1 - r
	for x >= y {
		f.SetPixel(cx+x, cy+y, c)
		f.SetPixel(cx-x, cy+y, c)
		f.SetPixel(cx+x, cy-y, c)
		f.SetPixel(cx-x, cy-y, c)
		f.SetPixel(cx+y, cy+x, c)
		f.SetPixel(cx-y, cy+x, c)
		f.SetPixel(cx+y, cy-x, c)
		f.SetPixel(cx-y, cy-x, c)
		y++
		if err < 0 {
			err += 2*y + 1
		} else {
			x--
			err += 2*(y-x) + 1
		}
	}
}
