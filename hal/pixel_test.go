//go:build !tinygo

package hal

import (
	"image/color"
	"testing"
)

func TestToRGBAExpandsRGB565(t *testing.T) {
	fb := newHostFramebuffer(4, 2)
	fb.ClearRGB(0xFF, 0x00, 0x00)

	// Pixel (3,1) white.
	off := 1*fb.stride + 3*2
	fb.buf[off] = 0xFF
	fb.buf[off+1] = 0xFF

	img := ToRGBA(fb)
	if img == nil {
		t.Fatal("expected image")
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{R: 0xFF, A: 0xFF}) {
		t.Fatalf("expected red, got %+v", got)
	}
	if got := img.RGBAAt(3, 1); got != (color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}) {
		t.Fatalf("expected white, got %+v", got)
	}
}

func TestRGB565RoundTripPrimaries(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    uint16
	}{
		{0xFF, 0xFF, 0xFF, 0xFFFF},
		{0xFF, 0x00, 0x00, 0xF800},
		{0x00, 0xFF, 0x00, 0x07E0},
		{0x00, 0x00, 0xFF, 0x001F},
		{0x00, 0x00, 0x00, 0x0000},
	}
	for _, tc := range cases {
		p := rgb565(tc.r, tc.g, tc.b)
		if p != tc.want {
			t.Fatalf("rgb565(%d,%d,%d) = %#04x, want %#04x", tc.r, tc.g, tc.b, p, tc.want)
		}
		r, g, b := rgb888From565(p)
		if r != tc.r || g != tc.g || b != tc.b {
			t.Fatalf("rgb888From565(%#04x) = %d,%d,%d", p, r, g, b)
		}
	}
}
