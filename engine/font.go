package engine

import "strconv"

// 5x7 bitmap font drawn at integer scale. Each glyph is 35 chars of
// '1'/'0', row-major. Only the characters the HUD needs are present;
// unknown characters render as blanks.
const (
	fontW     = 5
	fontH     = 7
	FontScale = 2
	// GlyphAdvance is the scaled horizontal step per character.
	GlyphAdvance = (fontW + 1) * FontScale
)

var fontGlyphs = map[rune]string{
	'0': "11111100011001110101110011000111111",
	'1': "00100011000010000100001000010001110",
	'2': "11111000010000111111100001000011111",
	'3': "11111000010000111111000010000111111",
	'4': "10001100011000111111000010000100001",
	'5': "11111100001000011111000010000111111",
	'6': "11111100001000011111100011000111111",
	'7': "11111000010000100010000100010000100",
	'8': "11111100011000111111100011000111111",
	'9': "11111100011000111111000010000111111",
	'A': "01110100011000111111100011000110001",
	'D': "11110100011000110001100011000111110",
	'E': "11111100001000011111100001000011111",
	'F': "11111100001000011111100001000010000",
	'H': "10001100011000111111100011000110001",
	'I': "11111001000010000100001000010011111",
	'L': "10000100001000010000100001000011111",
	'M': "10001110111010110101100011000110001",
	'N': "10001110011010110011100011000110001",
	'O': "01110100011000110001100011000101110",
	'P': "11110100011000111110100001000010000",
	'R': "11110100011000111110101001001010001",
	'S': "01111100001000001110000010000111110",
	'Y': "10001100010101000100001000010000100",
	':': "00000001000010000000001000010000000",
}

// DrawText renders uppercase text at (x, y) in the given color.
func DrawText(fb *FrameBuffer, text string, x, y int, c RGB) {
	offset := 0
	for _, ch := range text {
		pat, ok := fontGlyphs[ch]
		if ok {
			for fy := 0; fy < fontH; fy++ {
				for fx := 0; fx < fontW; fx++ {
					if pat[fy*fontW+fx] != '1' {
						continue
					}
					for sy := 0; sy < FontScale; sy++ {
						for sx := 0; sx < FontScale; sx++ {
							fb.SetPixel(x+offset+fx*FontScale+sx, y+fy*FontScale+sy, c)
						}
					}
				}
			}
		}
		offset += GlyphAdvance
	}
}

// DrawNumber renders a decimal integer in HUD yellow.
func DrawNumber(fb *FrameBuffer, n, x, y int) {
	DrawText(fb, strconv.Itoa(n), x, y, RGB{255, 255, 0})
}
