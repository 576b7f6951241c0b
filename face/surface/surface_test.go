package surface

import (
	"errors"
	"testing"

	"clockface/face/clockmath"
	"clockface/hal"

	"tinygo.org/x/drivers"
)

func pixelAt(fb hal.Framebuffer, x, y int) uint16 {
	buf := fb.Buffer()
	off := y*fb.StrideBytes() + x*2
	return uint16(buf[off]) | uint16(buf[off+1])<<8
}

func countPixels(fb hal.Framebuffer, want uint16) int {
	n := 0
	for y := 0; y < fb.Height(); y++ {
		for x := 0; x < fb.Width(); x++ {
			if pixelAt(fb, x, y) == want {
				n++
			}
		}
	}
	return n
}

func TestMissingFramebuffer(t *testing.T) {
	s := New(nil)
	if err := s.FillRect(0, 0, 1, 1, 1); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("expected ErrNoFramebuffer, got %v", err)
	}
	if err := s.DrawText(clockmath.Point{}, "x", 1, 1); !errors.Is(err, ErrNoFramebuffer) {
		t.Fatalf("expected ErrNoFramebuffer, got %v", err)
	}
}

func TestClearWritesRawPixel(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(4, 3)
	s := New(fb)
	if err := s.Clear(0xF800); err != nil {
		t.Fatalf("Clear: %v", err)
	}
	buf := fb.Buffer()
	if buf[0] != 0x00 || buf[1] != 0xF8 {
		t.Fatalf("expected little-endian 0xF800, got %#x %#x", buf[0], buf[1])
	}
	if got := countPixels(fb, 0xF800); got != 12 {
		t.Fatalf("expected 12 pixels, got %d", got)
	}
}

func TestRotationMapsOrigin(t *testing.T) {
	cases := []struct {
		code   int
		w, h   int
		px, py int
	}{
		{0, 128, 160, 0, 0},
		{1, 160, 128, 127, 0},
		{2, 128, 160, 127, 159},
		{3, 160, 128, 0, 159},
	}
	for _, tc := range cases {
		fb := hal.NewMemoryFramebuffer(128, 160)
		s := New(fb)
		if err := s.SetRotation(tc.code); err != nil {
			t.Fatalf("SetRotation(%d): %v", tc.code, err)
		}
		if s.Rotation() != drivers.Rotation(tc.code) {
			t.Fatalf("rotation %d not recorded", tc.code)
		}
		if w, h := s.Size(); w != tc.w || h != tc.h {
			t.Fatalf("rotation %d: size %dx%d", tc.code, w, h)
		}
		if err := s.FillRect(0, 0, 1, 1, 0x1234); err != nil {
			t.Fatalf("FillRect: %v", err)
		}
		if got := pixelAt(fb, tc.px, tc.py); got != 0x1234 {
			t.Fatalf("rotation %d: origin not at (%d,%d)", tc.code, tc.px, tc.py)
		}
	}
}

func TestSetRotationRejectsUnknownCode(t *testing.T) {
	if err := New(hal.NewMemoryFramebuffer(2, 2)).SetRotation(4); err == nil {
		t.Fatal("expected error")
	}
}

func TestFillRectClips(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(8, 8)
	s := New(fb)
	if err := s.FillRect(-2, -2, 4, 4, 7); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	if err := s.FillRect(7, 7, 10, 10, 7); err != nil {
		t.Fatalf("FillRect: %v", err)
	}
	if got := countPixels(fb, 7); got != 5 {
		t.Fatalf("expected 5 clipped pixels, got %d", got)
	}
}

func TestDrawRectOutline(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(8, 8)
	s := New(fb)
	if err := s.DrawRectOutline(1, 1, 4, 3, 9); err != nil {
		t.Fatalf("DrawRectOutline: %v", err)
	}
	if got := countPixels(fb, 9); got != 10 {
		t.Fatalf("expected 10 border pixels, got %d", got)
	}
	if pixelAt(fb, 2, 2) != 0 {
		t.Fatal("outline filled its interior")
	}
}

func TestDrawLineAndCircle(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(16, 16)
	s := New(fb)
	if err := s.DrawLine(clockmath.Point{X: 0, Y: 0}, clockmath.Point{X: 3, Y: 0}, 5); err != nil {
		t.Fatalf("DrawLine: %v", err)
	}
	if got := countPixels(fb, 5); got != 4 {
		t.Fatalf("expected 4 line pixels, got %d", got)
	}

	if err := s.DrawCircle(clockmath.Point{X: 8, Y: 8}, 4, 6); err != nil {
		t.Fatalf("DrawCircle: %v", err)
	}
	for _, p := range [][2]int{{12, 8}, {4, 8}, {8, 12}, {8, 4}} {
		if pixelAt(fb, p[0], p[1]) != 6 {
			t.Fatalf("circle misses cardinal point %v", p)
		}
	}
	if pixelAt(fb, 8, 8) == 6 {
		t.Fatal("circle filled its center")
	}
}

func TestDrawTextScales(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(32, 32)
	s := New(fb)
	if err := s.DrawText(clockmath.Point{X: 1, Y: 1}, "|", 3, 2); err != nil {
		t.Fatalf("DrawText: %v", err)
	}
	// '|' is a single seven-pixel column at x=2 of the glyph.
	if got := countPixels(fb, 3); got != 7*2*2 {
		t.Fatalf("expected %d pixels, got %d", 7*2*2, got)
	}
	for y := 1; y < 15; y++ {
		if pixelAt(fb, 5, y) != 3 || pixelAt(fb, 6, y) != 3 {
			t.Fatalf("missing scaled pixel on row %d", y)
		}
	}
}
