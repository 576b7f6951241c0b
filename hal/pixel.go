package hal

import (
	"image"
	"image/color"
)

func rgb565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

func rgb888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// ToRGBA expands an RGB565 framebuffer into an image for previews.
//
// Returns nil for other pixel formats.
func ToRGBA(fb Framebuffer) *image.RGBA {
	if fb == nil || fb.Format() != PixelFormatRGB565 {
		return nil
	}
	img := image.NewRGBA(image.Rect(0, 0, fb.Width(), fb.Height()))
	copyRGB565(img, fb.Buffer(), fb.StrideBytes())
	return img
}

func copyRGB565(dst *image.RGBA, src []byte, stride int) {
	w := dst.Bounds().Dx()
	h := dst.Bounds().Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			off := y*stride + x*2
			if off+1 >= len(src) {
				return
			}
			r, g, b := rgb888From565(uint16(src[off]) | uint16(src[off+1])<<8)
			dst.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 0xFF})
		}
	}
}
