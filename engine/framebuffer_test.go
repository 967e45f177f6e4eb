package engine

import "testing"

func TestSetPixelOutOfBoundsDropped(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	for _, p := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {-100, 100}} {
		fb.SetPixel(p[0], p[1], RGB{255, 0, 0}) // must not panic
	}
	for i := 0; i < len(fb.Pix); i += 4 {
		if fb.Pix[i] != 0 {
			t.Fatal("out-of-bounds write leaked into the buffer")
		}
	}
}

func TestAtOutOfBoundsBlack(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.SetPixel(3, 3, RGB{10, 20, 30})
	if fb.At(3, 3) != (RGB{10, 20, 30}) {
		t.Error("round-trip failed")
	}
	if fb.At(-1, 3) != (RGB{}) || fb.At(3, 8) != (RGB{}) {
		t.Error("out-of-bounds read should be black")
	}
}

func TestClearSetsOpaqueAlpha(t *testing.T) {
	fb := NewFrameBuffer(4, 4)
	fb.Clear(RGB{1, 2, 3})
	if fb.Pix[0] != 1 || fb.Pix[1] != 2 || fb.Pix[2] != 3 || fb.Pix[3] != 255 {
		t.Errorf("first pixel after clear = %v", fb.Pix[:4])
	}
}

func TestHLineSwapsAndClamps(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.HLine(20, -5, 2, RGB{255, 255, 255}) // reversed and overflowing
	for x := 0; x < 8; x++ {
		if fb.At(x, 2) != (RGB{255, 255, 255}) {
			t.Fatalf("row 2 pixel %d not filled", x)
		}
	}
	if fb.At(0, 1) != (RGB{}) || fb.At(0, 3) != (RGB{}) {
		t.Error("neighboring rows should be untouched")
	}
}

func TestVLineClamps(t *testing.T) {
	fb := NewFrameBuffer(8, 8)
	fb.VLine(3, -10, 100, RGB{9, 9, 9})
	if fb.At(3, 0) != (RGB{9, 9, 9}) || fb.At(3, 7) != (RGB{9, 9, 9}) {
		t.Error("clamped column should span the full height")
	}
	fb.VLine(-1, 0, 7, RGB{255, 0, 0}) // dropped
	fb.VLine(8, 0, 7, RGB{255, 0, 0})
}

func TestFillAndDrawRect(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	fb.FillRect(2, 2, 3, 3, RGB{50, 50, 50})
	if fb.At(2, 2) != (RGB{50, 50, 50}) || fb.At(4, 4) != (RGB{50, 50, 50}) {
		t.Error("fill rect interior missing")
	}
	if fb.At(5, 5) != (RGB{}) {
		t.Error("fill rect overshot")
	}

	fb.DrawRect(0, 0, 10, 10, RGB{255, 255, 255})
	if fb.At(0, 0) != (RGB{255, 255, 255}) || fb.At(9, 9) != (RGB{255, 255, 255}) {
		t.Error("outline corners missing")
	}
	if fb.At(5, 1) == (RGB{255, 255, 255}) && fb.At(5, 2) == (RGB{255, 255, 255}) {
		t.Error("outline should not fill the interior")
	}
}

func TestDrawLineEndpoints(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	fb.DrawLine(1, 1, 8, 6, RGB{200, 0, 0})
	if fb.At(1, 1) != (RGB{200, 0, 0}) || fb.At(8, 6) != (RGB{200, 0, 0}) {
		t.Error("line endpoints missing")
	}
	// Off-buffer segments clip rather than panic
	fb.DrawLine(-5, -5, 15, 15, RGB{0, 200, 0})
}

func TestDrawCircleCardinalPoints(t *testing.T) {
	fb := NewFrameBuffer(16, 16)
	fb.DrawCircle(8, 8, 4, RGB{0, 0, 200})
	for _, p := range [][2]int{{12, 8}, {4, 8}, {8, 12}, {8, 4}} {
		if fb.At(p[0], p[1]) != (RGB{0, 0, 200}) {
			t.Errorf("circle missing cardinal point (%d,%d)", p[0], p[1])
		}
	}
	if fb.At(8, 8) != (RGB{}) {
		t.Error("circle center should stay empty")
	}
}

func TestRGBScaleClamps(t *testing.T) {
	c := RGB{200, 100, 50}
	if got := c.Scale(2); got != (RGB{255, 200, 100}) {
		t.Errorf("scale up = %v", got)
	}
	if got := c.Scale(0); got != (RGB{}) {
		t.Errorf("scale to zero = %v", got)
	}
	if got := c.Scale(-1); got != (RGB{}) {
		t.Errorf("negative scale should clamp to zero, got %v", got)
	}
}
