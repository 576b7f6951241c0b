// Package render draws clock face widgets onto a Surface.
package render

import (
	"fmt"
	"math"
	"strconv"

	"clockface/face/clockmath"
	"clockface/face/component"
)

// Glyph cell used to size the clear rectangles in front of text widgets.
const (
	CharWidth  = 5
	CharHeight = 8
)

// Surface is the drawing target. Coordinates are logical (after rotation).
type Surface interface {
	SetRotation(code int) error
	Clear(c component.Color) error
	FillRect(x, y, w, h int, c component.Color) error
	DrawRectOutline(x, y, w, h int, c component.Color) error
	DrawLine(from, to clockmath.Point, c component.Color) error
	DrawCircle(center clockmath.Point, radius int, c component.Color) error
	DrawText(origin clockmath.Point, s string, c component.Color, scale int) error
}

// RenderError is a failed draw of one widget.
type RenderError struct {
	Kind  component.Kind
	Index int
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("render %s #%d: %v", e.Kind, e.Index, e.Err)
}

func (e *RenderError) Unwrap() error { return e.Err }

// Context is the mutable drawing state of one face.
type Context struct {
	Surface    Surface
	Background component.Color

	hands map[*component.AnalogHand]float64
}

func NewContext(s Surface, background component.Color) *Context {
	return &Context{
		Surface:    s,
		Background: background,
		hands:      make(map[*component.AnalogHand]float64),
	}
}

// PreviousAngle returns the angle h was last drawn at.
func (ctx *Context) PreviousAngle(h *component.AnalogHand) (float64, bool) {
	a, ok := ctx.hands[h]
	return a, ok
}

// Draw paints c for the instant snap.
func Draw(ctx *Context, c component.Component, snap clockmath.Snapshot) error {
	switch c := c.(type) {
	case *component.DigitalDateTime:
		return DigitalDateTime(ctx, c, snap)
	case *component.CountdownTimer:
		return CountdownTimer(ctx, c, snap)
	case *component.BarCountdown:
		return BarCountdown(ctx, c, snap)
	case *component.PercentCountdown:
		return PercentCountdown(ctx, c, snap)
	case *component.AnalogHand:
		return AnalogHand(ctx, c, snap)
	case *component.FaceCircle:
		return FaceCircle(ctx, c)
	}
	return fmt.Errorf("render: unknown component %T", c)
}

func scaleOf(s int) int {
	if s < 1 {
		return 1
	}
	return s
}

func clearText(ctx *Context, at clockmath.Point, chars, scale int) error {
	return ctx.Surface.FillRect(at.X, at.Y, chars*CharWidth*scale, CharHeight*scale, ctx.Background)
}

func DigitalDateTime(ctx *Context, c *component.DigitalDateTime, snap clockmath.Snapshot) error {
	scale := scaleOf(c.Scale)
	if err := clearText(ctx, c.Position, len(c.Format), scale); err != nil {
		return err
	}
	text := clockmath.FormatDateTime(c.Format, snap, c.TimezoneOffset)
	return ctx.Surface.DrawText(c.Position, text, c.Color, scale)
}

// CountdownTimer shows the time left until the deadline. An expired
// deadline without repetition reads as all zeros.
func CountdownTimer(ctx *Context, c *component.CountdownTimer, snap clockmath.Snapshot) error {
	scale := scaleOf(c.Scale)
	if err := clearText(ctx, c.Position, len(c.Format), scale); err != nil {
		return err
	}
	remaining, err := c.Deadline.Remaining(snap.Epoch, c.TimezoneOffset)
	if err != nil {
		return err
	}
	d, h, m, s := clockmath.SplitDuration(remaining)
	return ctx.Surface.DrawText(c.Position, clockmath.FormatCountdown(c.Format, d, h, m, s), c.Color, scale)
}

// BarFill returns the filled sub-rectangle of a bar for the given fullness.
// Direction 0 grows bottom-up, 1 left-to-right, 2 top-down, 3 right-to-left.
func BarFill(at clockmath.Point, size component.Size, direction int, fullness float64) (x, y, w, h int) {
	x, y, w, h = at.X, at.Y, size.W, size.H
	switch ((direction % 4) + 4) % 4 {
	case 0:
		h = clockmath.Pixels(size.H, fullness)
		y = at.Y + size.H - h
	case 1:
		w = clockmath.Pixels(size.W, fullness)
	case 2:
		h = clockmath.Pixels(size.H, fullness)
	case 3:
		w = clockmath.Pixels(size.W, fullness)
		x = at.X + size.W - w
	}
	return x, y, w, h
}

func BarCountdown(ctx *Context, c *component.BarCountdown, snap clockmath.Snapshot) error {
	at, size := c.Position, c.Size
	if err := ctx.Surface.FillRect(at.X, at.Y, size.W, size.H, ctx.Background); err != nil {
		return err
	}
	remaining, err := c.Deadline.Remaining(snap.Epoch, c.TimezoneOffset)
	if err != nil {
		return err
	}
	f := clockmath.Fullness(remaining, c.RepetitionDays, c.Countup)
	if x, y, w, h := BarFill(at, size, c.Direction, f); w > 0 && h > 0 {
		if err := ctx.Surface.FillRect(x, y, w, h, c.Color); err != nil {
			return err
		}
	}
	return ctx.Surface.DrawRectOutline(at.X, at.Y, size.W, size.H, c.BorderColor)
}

// PercentCountdown prints fullness as a percentage. The clear box fits
// "100." plus the decimals.
func PercentCountdown(ctx *Context, c *component.PercentCountdown, snap clockmath.Snapshot) error {
	scale := scaleOf(c.Scale)
	at := c.Position
	if err := ctx.Surface.FillRect(at.X, at.Y, (24+c.Decimals*8)*scale, CharHeight*scale, ctx.Background); err != nil {
		return err
	}
	remaining, err := c.Deadline.Remaining(snap.Epoch, c.TimezoneOffset)
	if err != nil {
		return err
	}
	f := clockmath.Fullness(remaining, c.RepetitionDays, c.Countup)
	return ctx.Surface.DrawText(at, clockmath.FormatPercent(f, c.Decimals), c.Color, scale)
}

// AnalogHand erases the hand at its previous angle and draws it at the
// current one.
func AnalogHand(ctx *Context, c *component.AnalogHand, snap clockmath.Snapshot) error {
	if prev, ok := ctx.hands[c]; ok {
		if err := drawHand(ctx.Surface, c, prev, ctx.Background); err != nil {
			return err
		}
	}
	angle := clockmath.HandAngle(snap, c.TimezoneOffset, c.DurationSeconds)
	if err := drawHand(ctx.Surface, c, angle, c.Color); err != nil {
		return err
	}
	ctx.hands[c] = angle
	return nil
}

func drawHand(s Surface, c *component.AnalogHand, angle float64, color component.Color) error {
	tip := clockmath.PolarPoint(c.Position, float64(c.Length), angle)
	width := c.Width
	if width <= 1 {
		return s.DrawLine(c.Position, tip, color)
	}
	// Parallel strokes offset along the normal of the hand.
	rad := clockmath.NormalizeAngle(angle+90) * math.Pi / 180
	nx, ny := math.Cos(rad), math.Sin(rad)
	for i := 0; i < width; i++ {
		k := float64(i) - float64(width-1)/2
		dx := int(math.Round(nx * k))
		dy := int(math.Round(ny * k))
		from := clockmath.Point{X: c.Position.X + dx, Y: c.Position.Y + dy}
		to := clockmath.Point{X: tip.X + dx, Y: tip.Y + dy}
		if err := s.DrawLine(from, to, color); err != nil {
			return err
		}
	}
	return nil
}

// FaceCircle draws the dial: the circle, then radial ticks starting at
// 3 o'clock, then hour labels starting one step after 12 o'clock.
func FaceCircle(ctx *Context, c *component.FaceCircle) error {
	s := ctx.Surface
	if err := s.DrawCircle(c.Position, c.Radius, c.Color); err != nil {
		return err
	}
	if c.Notches <= 0 {
		return nil
	}
	step := 360 / float64(c.Notches)
	if c.Style.Ticks() {
		inner := float64(c.Radius - c.Length)
		for i := 0; i < c.Notches; i++ {
			a := step * float64(i)
			from := clockmath.PolarPoint(c.Position, inner, a)
			to := clockmath.PolarPoint(c.Position, float64(c.Radius), a)
			if err := s.DrawLine(from, to, c.Color); err != nil {
				return err
			}
		}
	}
	if c.Style.Labels() {
		r := float64(c.Radius - c.Length - 5)
		for i := 1; i <= c.Notches; i++ {
			p := clockmath.PolarPoint(c.Position, r, step*float64(i)-90)
			at := clockmath.Point{X: p.X - 2, Y: p.Y - 4}
			if err := s.DrawText(at, strconv.Itoa(i), c.Color, 1); err != nil {
				return err
			}
		}
	}
	return nil
}
