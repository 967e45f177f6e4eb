package engine

import "testing"

func TestDrawTextGlyphPixels(t *testing.T) {
	fb := NewFrameBuffer(40, 20)
	DrawText(fb, "I", 0, 0, RGB{255, 255, 255})

	// 'I' has a full top row: pattern bit (0,0) scales to a 2x2 block
	if fb.At(0, 0) != (RGB{255, 255, 255}) || fb.At(1, 1) != (RGB{255, 255, 255}) {
		t.Error("scaled glyph block missing")
	}
	// Row 1 of the pattern is '00100'; pattern (0,1) is empty
	if fb.At(0, 2) != (RGB{}) {
		t.Error("empty pattern bit should stay blank")
	}
}

func TestDrawTextUnknownRuneAdvances(t *testing.T) {
	fb := NewFrameBuffer(60, 20)
	DrawText(fb, "ZI", 0, 0, RGB{255, 255, 255})

	// 'Z' is not in the font: its cell stays blank
	blank := true
	for x := 0; x < GlyphAdvance; x++ {
		for y := 0; y < fontH*FontScale; y++ {
			if fb.At(x, y) != (RGB{}) {
				blank = false
			}
		}
	}
	if !blank {
		t.Error("unknown rune should render nothing")
	}
	// but the following glyph still lands one advance over
	if fb.At(GlyphAdvance, 0) != (RGB{255, 255, 255}) {
		t.Error("glyph after unknown rune misplaced")
	}
}

func TestDrawNumber(t *testing.T) {
	fb := NewFrameBuffer(80, 20)
	DrawNumber(fb, 10, 0, 0)

	// '1' pattern row 0 is '00100': the lit block starts at x=4
	if fb.At(4, 0) != (RGB{255, 255, 0}) {
		t.Error("number should render in HUD yellow")
	}
	// '0' top row is full, so the second cell starts lit
	if fb.At(GlyphAdvance, 0) != (RGB{255, 255, 0}) {
		t.Error("second digit missing")
	}
}

func TestDrawTextClipsAtEdges(t *testing.T) {
	fb := NewFrameBuffer(10, 10)
	DrawText(fb, "888", -5, -5, RGB{255, 255, 255}) // partly off-buffer
	DrawText(fb, "888", 8, 8, RGB{255, 255, 255})
}
