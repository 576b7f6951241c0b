// Package component defines the typed widgets a clock face is built from.
//
// Component is a closed set: only the six types in this package implement it,
// and consumers dispatch with an exhaustive type switch.
package component

import "clockface/face/clockmath"

// Color is an opaque display color (RGB565 on the reference panel).
type Color uint32

// Kind names a widget type as it appears in configuration.
type Kind string

const (
	KindDigitalDateTime  Kind = "digital_datetime"
	KindCountdownTimer   Kind = "countdown_timer"
	KindBarCountdown     Kind = "bar_countdown"
	KindPercentCountdown Kind = "percent_countdown"
	KindAnalogHand       Kind = "analog_hand"
	KindFaceCircle       Kind = "face_circle"
)

// Kinds lists every widget kind.
var Kinds = []Kind{
	KindDigitalDateTime,
	KindCountdownTimer,
	KindBarCountdown,
	KindPercentCountdown,
	KindAnalogHand,
	KindFaceCircle,
}

// Size is a width and height in pixels.
type Size struct {
	W int
	H int
}

// Common holds the attributes every widget has.
type Common struct {
	Position       clockmath.Point
	Color          Color
	TimezoneOffset int
}

func (c *Common) common() *Common { return c }

// Component is one independently configured widget.
type Component interface {
	Kind() Kind
	common() *Common
}

// Base returns the shared attributes of c.
func Base(c Component) Common { return *c.common() }

// Deadline is the target of the countdown widgets.
type Deadline struct {
	EndDate        clockmath.DateTime
	RepetitionDays int
}

// Remaining returns the seconds left at epoch now, honoring the repetition window.
func (d Deadline) Remaining(now int64, timezoneOffset int) (int64, error) {
	end, err := clockmath.ToEpoch(d.EndDate, timezoneOffset)
	if err != nil {
		return 0, err
	}
	return clockmath.Remaining(end, now, d.RepetitionDays), nil
}

type DigitalDateTime struct {
	Common
	Format string
	Scale  int
}

type CountdownTimer struct {
	Common
	Deadline
	Format string
	Scale  int
}

type BarCountdown struct {
	Common
	Deadline
	Size        Size
	Direction   int
	Countup     bool
	BorderColor Color
}

type PercentCountdown struct {
	Common
	Deadline
	Decimals int
	Countup  bool
	Scale    int
}

type AnalogHand struct {
	Common
	Length          int
	Width           int
	DurationSeconds int
}

// FaceStyle selects the optional dial markings.
type FaceStyle int

const (
	StyleLabels FaceStyle = 1 << iota
	StyleTicks
)

func (s FaceStyle) Labels() bool { return s&StyleLabels != 0 }
func (s FaceStyle) Ticks() bool  { return s&StyleTicks != 0 }

type FaceCircle struct {
	Common
	Radius  int
	Notches int
	Style   FaceStyle
	Length  int
}

func (*DigitalDateTime) Kind() Kind  { return KindDigitalDateTime }
func (*CountdownTimer) Kind() Kind   { return KindCountdownTimer }
func (*BarCountdown) Kind() Kind     { return KindBarCountdown }
func (*PercentCountdown) Kind() Kind { return KindPercentCountdown }
func (*AnalogHand) Kind() Kind       { return KindAnalogHand }
func (*FaceCircle) Kind() Kind       { return KindFaceCircle }

// IsStatic reports whether c is painted once instead of every tick.
func IsStatic(c Component) bool {
	_, ok := c.(*FaceCircle)
	return ok
}

// SleepWindow turns the backlight off for hours in [Start,End) after
// shifting the local hour by TimezoneOffset.
type SleepWindow struct {
	Start          int
	End            int
	TimezoneOffset int
}

// Asleep reports whether the backlight should be off at the given local hour.
func (w SleepWindow) Asleep(localHour int) bool {
	return clockmath.InSleepWindow(clockmath.WrapHour(localHour, w.TimezoneOffset), w.Start, w.End)
}

// Network holds the credentials used for the startup clock sync.
type Network struct {
	SSID     string
	Password string
}

// ClockConfig is a validated clock face.
type ClockConfig struct {
	Orientation int
	Background  Color
	Components  []Component
	Sleep       *SleepWindow
	Network     *Network
}
