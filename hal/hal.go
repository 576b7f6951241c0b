package hal

import (
	"context"
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// Backlight switches the panel backlight.
type Backlight interface {
	Set(on bool)
}

var ErrNotImplemented = errors.New("not implemented")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Time provides a base tick stream plus the wall clock.
//
// Ticks are monotonic milliseconds. Now returns local calendar time and may be
// wrong until the clock has been synchronized.
type Time interface {
	Ticks() <-chan uint64
	Now() time.Time
}

// Credentials identify the network to join.
type Credentials struct {
	SSID     string
	Password string
}

// Network joins a network and synchronizes the wall clock (optional).
type Network interface {
	Connect(ctx context.Context, creds Credentials) error
	SyncClock(ctx context.Context) error
}

// HAL provides the only contact point between the clock and the outside world.
type HAL interface {
	Logger() Logger
	Backlight() Backlight
	Display() Display
	Time() Time
	Network() Network
}
