package engine

import (
	"bytes"
	"fmt"
	"io"
)

// Surface is the engine's output: an addressable pixel buffer plus a
// once-per-frame Present. The simulation is agnostic to what backs
// it; a failed Present skips that frame only.
type Surface interface {
	Size() (w, h int)
	Frame() *FrameBuffer
	Present() error
}

// BufferSurface is a pure software surface. Present hands the frame
// to an optional callback (encoder, test probe, window blitter).
type BufferSurface struct {
	fb        *FrameBuffer
	onPresent func(*FrameBuffer) error
}

// NewBufferSurface creates a software surface. onPresent may be nil.
func NewBufferSurface(w, h int, onPresent func(*FrameBuffer) error) *BufferSurface {
	return &BufferSurface{fb: NewFrameBuffer(w, h), onPresent: onPresent}
}

func (s *BufferSurface) Size() (int, int)    { return s.fb.W, s.fb.H }
func (s *BufferSurface) Frame() *FrameBuffer { return s.fb }

func (s *BufferSurface) Present() error {
	if s.onPresent == nil {
		return nil
	}
	return s.onPresent(s.fb)
}

// TermSurface renders the frame as truecolor ANSI half-block cells,
// two pixel rows per text row. Good enough to play in a terminal.
type TermSurface struct {
	fb  *FrameBuffer
	out io.Writer
	buf bytes.Buffer
}

// NewTermSurface creates a terminal surface of w x h pixels; h should
// be even so rows pair up.
func NewTermSurface(w, h int, out io.Writer) *TermSurface {
	return &TermSurface{fb: NewFrameBuffer(w, h), out: out}
}

func (s *TermSurface) Size() (int, int)    { return s.fb.W, s.fb.H }
func (s *TermSurface) Frame() *FrameBuffer { return s.fb }

// Present writes the whole frame in one syscall: cursor home, then
// one half-block glyph per pixel pair.
func (s *TermSurface) Present() error {
	s.buf.Reset()
	s.buf.WriteString("\x1b[H")
	for y := 0; y+1 < s.fb.H; y += 2 {
		for x := 0; x < s.fb.W; x++ {
			top := s.fb.At(x, y)
			bot := s.fb.At(x, y+1)
			fmt.Fprintf(&s.buf, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				top.R, top.G, top.B, bot.R, bot.G, bot.B)
		}
		s.buf.WriteString("\x1b[0m\n")
	}
	if _, err := s.out.Write(s.buf.Bytes()); err != nil {
		return fmt.Errorf("present: %w", err)
	}
	return nil
}
