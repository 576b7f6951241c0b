//go:build !tinygo

package hal

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// HostConfig sizes the emulated panel and selects where HAL logs go.
type HostConfig struct {
	Width  int
	Height int
	Log    io.Writer
}

const (
	defaultHostWidth  = 128
	defaultHostHeight = 160
)

type hostHAL struct {
	logger    *hostLogger
	backlight *pinBacklight
	fb        *hostFramebuffer
	t         *hostTime
	net       Network
}

// New returns a host HAL implementation with the default 128x160 panel.
func New() HAL {
	return NewHost(HostConfig{})
}

// NewHost returns a host HAL implementation.
func NewHost(cfg HostConfig) HAL {
	return newHostHAL(cfg)
}

func newHostHAL(cfg HostConfig) *hostHAL {
	if cfg.Width <= 0 {
		cfg.Width = defaultHostWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHostHeight
	}
	if cfg.Log == nil {
		cfg.Log = os.Stderr
	}
	logger := &hostLogger{l: log.NewWithOptions(cfg.Log, log.Options{Prefix: "hal"})}
	pin := newVirtualPin("BL", GPIOCapOutput)
	_ = pin.Configure(GPIOModeOutput, GPIOPullNone)
	return &hostHAL{
		logger:    logger,
		backlight: newPinBacklight(pin, logger),
		fb:        newHostFramebuffer(cfg.Width, cfg.Height),
		t:         newHostTime(),
		net:       hostNetwork{},
	}
}

func (h *hostHAL) Logger() Logger       { return h.logger }
func (h *hostHAL) Backlight() Backlight { return h.backlight }
func (h *hostHAL) Display() Display     { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Time() Time           { return h.t }
func (h *hostHAL) Network() Network     { return h.net }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostLogger struct {
	l *log.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	l.l.Print(s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.l.Print(string(b))
}

// hostNetwork relies on the operating system for connectivity and NTP.
type hostNetwork struct{}

func (hostNetwork) Connect(ctx context.Context, creds Credentials) error {
	_ = creds
	return ctx.Err()
}

func (hostNetwork) SyncClock(ctx context.Context) error {
	return ctx.Err()
}
