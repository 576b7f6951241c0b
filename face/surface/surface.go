// Package surface draws clock widgets straight into a HAL framebuffer.
package surface

import (
	"errors"
	"fmt"
	"image/color"

	"clockface/face/clockmath"
	"clockface/face/component"
	"clockface/face/fonts/sysfont"
	"clockface/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinydraw"
	"tinygo.org/x/tinyfont"
)

var (
	ErrNoFramebuffer = errors.New("surface: no framebuffer")
	ErrPixelFormat   = errors.New("surface: unsupported pixel format")
)

// Framebuffer is a render.Surface over an RGB565 little-endian framebuffer.
//
// Colors are written as raw pixel values (low 16 bits). Drawing outside the
// logical area is clipped.
type Framebuffer struct {
	fb       hal.Framebuffer
	rotation drivers.Rotation
}

func New(fb hal.Framebuffer) *Framebuffer {
	return &Framebuffer{fb: fb}
}

func (s *Framebuffer) check() error {
	if s.fb == nil {
		return ErrNoFramebuffer
	}
	if s.fb.Format() != hal.PixelFormatRGB565 {
		return fmt.Errorf("%w: %d", ErrPixelFormat, s.fb.Format())
	}
	if need := s.fb.StrideBytes() * s.fb.Height(); len(s.fb.Buffer()) < need {
		return fmt.Errorf("surface: buffer holds %d bytes, need %d", len(s.fb.Buffer()), need)
	}
	return nil
}

// Size is the logical size after rotation.
func (s *Framebuffer) Size() (w, h int) {
	if s.fb == nil {
		return 0, 0
	}
	w, h = s.fb.Width(), s.fb.Height()
	if s.rotation == drivers.Rotation90 || s.rotation == drivers.Rotation270 {
		return h, w
	}
	return w, h
}

func (s *Framebuffer) Rotation() drivers.Rotation { return s.rotation }

// SetRotation selects one of four quarter turns (0..3).
func (s *Framebuffer) SetRotation(code int) error {
	if code < 0 || code > 3 {
		return fmt.Errorf("surface: rotation %d out of range 0..3", code)
	}
	s.rotation = drivers.Rotation(code)
	return s.check()
}

// physical maps logical coordinates onto the panel.
func (s *Framebuffer) physical(x, y int) (int, int) {
	w, h := s.fb.Width(), s.fb.Height()
	switch s.rotation {
	case drivers.Rotation90:
		return w - 1 - y, x
	case drivers.Rotation180:
		return w - 1 - x, h - 1 - y
	case drivers.Rotation270:
		return y, h - 1 - x
	}
	return x, y
}

func (s *Framebuffer) plot(x, y int, pixel uint16) {
	lw, lh := s.Size()
	if x < 0 || y < 0 || x >= lw || y >= lh {
		return
	}
	px, py := s.physical(x, y)
	buf := s.fb.Buffer()
	off := py*s.fb.StrideBytes() + px*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (s *Framebuffer) fill(x, y, w, h int, pixel uint16) {
	lw, lh := s.Size()
	x0 := clampInt(x, 0, lw)
	y0 := clampInt(y, 0, lh)
	x1 := clampInt(x+w, 0, lw)
	y1 := clampInt(y+h, 0, lh)
	for py := y0; py < y1; py++ {
		for px := x0; px < x1; px++ {
			s.plot(px, py, pixel)
		}
	}
}

func (s *Framebuffer) Clear(c component.Color) error {
	if err := s.check(); err != nil {
		return err
	}
	pixel := uint16(c)
	buf := s.fb.Buffer()
	for i := 0; i+1 < len(buf); i += 2 {
		buf[i] = byte(pixel)
		buf[i+1] = byte(pixel >> 8)
	}
	return nil
}

func (s *Framebuffer) FillRect(x, y, w, h int, c component.Color) error {
	if err := s.check(); err != nil {
		return err
	}
	s.fill(x, y, w, h, uint16(c))
	return nil
}

func (s *Framebuffer) DrawRectOutline(x, y, w, h int, c component.Color) error {
	if err := s.check(); err != nil {
		return err
	}
	if w <= 0 || h <= 0 {
		return nil
	}
	pixel := uint16(c)
	s.fill(x, y, w, 1, pixel)
	s.fill(x, y+h-1, w, 1, pixel)
	s.fill(x, y, 1, h, pixel)
	s.fill(x+w-1, y, 1, h, pixel)
	return nil
}

func (s *Framebuffer) DrawLine(from, to clockmath.Point, c component.Color) error {
	if err := s.check(); err != nil {
		return err
	}
	p := &pen{s: s, pixel: uint16(c), scale: 1}
	tinydraw.Line(p, int16(from.X), int16(from.Y), int16(to.X), int16(to.Y), color.RGBA{})
	return nil
}

func (s *Framebuffer) DrawCircle(center clockmath.Point, radius int, c component.Color) error {
	if err := s.check(); err != nil {
		return err
	}
	p := &pen{s: s, pixel: uint16(c), scale: 1}
	tinydraw.Circle(p, int16(center.X), int16(center.Y), int16(radius), color.RGBA{})
	return nil
}

// DrawText renders s with its top-left corner at origin. Each font pixel
// becomes a scale x scale block.
func (s *Framebuffer) DrawText(origin clockmath.Point, text string, c component.Color, scale int) error {
	if err := s.check(); err != nil {
		return err
	}
	if scale < 1 {
		scale = 1
	}
	p := &pen{s: s, pixel: uint16(c), origin: origin, scale: scale}
	tinyfont.WriteLine(p, sysfont.Font, 0, sysfont.GlyphHeight-1, text, color.RGBA{})
	return nil
}

// Present flushes the framebuffer to the panel.
func (s *Framebuffer) Present() error {
	if err := s.check(); err != nil {
		return err
	}
	return s.fb.Present()
}

// pen adapts the surface to drivers.Displayer for tinydraw and tinyfont.
// The RGBA handed in by those packages is ignored in favour of the raw pixel.
type pen struct {
	s      *Framebuffer
	pixel  uint16
	origin clockmath.Point
	scale  int
}

func (p *pen) Size() (x, y int16) {
	w, h := p.s.Size()
	return int16(w), int16(h)
}

func (p *pen) SetPixel(x, y int16, _ color.RGBA) {
	if p.scale == 1 {
		p.s.plot(p.origin.X+int(x), p.origin.Y+int(y), p.pixel)
		return
	}
	p.s.fill(p.origin.X+int(x)*p.scale, p.origin.Y+int(y)*p.scale, p.scale, p.scale, p.pixel)
}

func (p *pen) Display() error { return nil }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
