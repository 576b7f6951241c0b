package app

import (
	"strings"
	"unicode/utf8"

	"clockface/face/clockmath"
	"clockface/face/component"
	"clockface/face/fonts/sysfont"
	"clockface/face/surface"
	"clockface/hal"
)

const (
	faultBackground component.Color = 0xFFFF
	faultForeground component.Color = 0x0000
)

// ShowFault logs err and paints it, word-wrapped, on the panel.
func ShowFault(h hal.HAL, err error) {
	if h == nil || err == nil {
		return
	}
	if l := h.Logger(); l != nil {
		l.WriteLineString("clockface fault: " + err.Error())
	}
	fb, ferr := framebuffer(h)
	if ferr != nil {
		return
	}
	_ = DrawFault(surface.New(fb), err)
}

// DrawFault paints err onto s as black text on white.
func DrawFault(s *surface.Framebuffer, err error) error {
	if err := s.Clear(faultBackground); err != nil {
		return err
	}
	w, h := s.Size()
	cols := w / sysfont.Advance
	if cols <= 0 {
		cols = 1
	}

	lines := append([]string{"clockface fault:"}, strings.Split(err.Error(), "\n")...)
	y := 0
	for _, line := range lines {
		for len(line) > 0 {
			if y+sysfont.GlyphHeight > h {
				return s.Present()
			}
			chunk, rest := takeRunes(line, cols)
			if err := s.DrawText(clockmath.Point{X: 0, Y: y}, chunk, faultForeground, 1); err != nil {
				return err
			}
			y += sysfont.GlyphHeight
			line = strings.TrimLeft(rest, " ")
		}
	}
	return s.Present()
}

func takeRunes(s string, n int) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if utf8.RuneCountInString(s) <= n {
		return s, ""
	}
	i := 0
	for count := 0; i < len(s) && count < n; count++ {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
	}
	return s[:i], s[i:]
}
