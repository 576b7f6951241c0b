// Package sysfont is the 5x8 column-major system font used by the clock
// face. Glyph cells are 8 pixels tall and advance 6 pixels.
package sysfont

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	// GlyphWidth is the inked width of every glyph.
	GlyphWidth = 5
	// GlyphHeight is the cell height.
	GlyphHeight = 8
	// Advance is the horizontal pen advance per character.
	Advance = 6

	first = 0x20
	last  = 0x7e
)

// Font implements tinyfont.Fonter for printable ASCII; other runes draw '?'.
// Concurrent access is not safe due to internal glyph reuse.
var Font tinyfont.Fonter = &font5x8{}

type font5x8 struct {
	g glyph
}

type glyph struct {
	r rune
}

// Draw plots the glyph with its top row at y-7, matching YOffset.
func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	cols := Columns(g.r)
	for col, bits := range cols {
		for row := 0; row < GlyphHeight; row++ {
			if bits&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y-int16(GlyphHeight-1-row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    GlyphWidth,
		Height:   GlyphHeight,
		XAdvance: Advance,
		YOffset:  -(GlyphHeight - 1),
	}
}

func (f *font5x8) GetYAdvance() uint8 { return GlyphHeight }

func (f *font5x8) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

// Columns returns the five column bitmaps of r, least significant bit on top.
func Columns(r rune) []byte {
	if r < first || r > last {
		r = '?'
	}
	base := int(r-first) * GlyphWidth
	return glyphData[base : base+GlyphWidth]
}
