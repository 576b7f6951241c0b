// Package app wires a HAL and a clock face configuration into a running
// engine.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clockface/face/component"
	"clockface/face/engine"
	"clockface/face/surface"
	"clockface/hal"
)

// DefaultSyncTimeout bounds the startup network join and clock sync.
const DefaultSyncTimeout = 30 * time.Second

type Config struct {
	Face *component.ClockConfig

	// Logger defaults to a LineLogger over the HAL logger.
	Logger  engine.Logger
	Metrics engine.Metrics

	Period      time.Duration
	Idle        time.Duration
	SyncTimeout time.Duration
}

// TimeSyncError reports a failed network join or clock sync. Startup
// continues with the unsynchronized clock.
type TimeSyncError struct {
	Op  string
	Err error
}

func (e *TimeSyncError) Error() string { return "time sync: " + e.Op + ": " + e.Err.Error() }

func (e *TimeSyncError) Unwrap() error { return e.Err }

// New builds and starts the engine and returns its step function.
func New(h hal.HAL, cfg Config) (func() error, error) {
	e, err := NewEngine(h, cfg)
	if err != nil {
		return nil, err
	}
	return e.Step, nil
}

// NewEngine syncs the clock, paints the static face and returns the engine.
func NewEngine(h hal.HAL, cfg Config) (*engine.Engine, error) {
	if h == nil {
		return nil, errors.New("app: nil hal")
	}
	if cfg.Face == nil {
		return nil, errors.New("app: no clock face configured")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = NewLineLogger(h.Logger())
	}

	timeout := cfg.SyncTimeout
	if timeout <= 0 {
		timeout = DefaultSyncTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	err := SyncClock(ctx, h.Network(), cfg.Face.Network)
	cancel()
	if err != nil {
		logger.Warn("continuing without time sync", "err", err)
	}

	fb, err := framebuffer(h)
	if err != nil {
		return nil, err
	}
	var backlight engine.Backlight
	if bl := h.Backlight(); bl != nil {
		backlight = bl
	}
	e, err := engine.New(cfg.Face, engine.Options{
		Clock:     NewTickClock(h.Time()),
		Surface:   surface.New(fb),
		Backlight: backlight,
		Logger:    logger,
		Metrics:   cfg.Metrics,
		Period:    cfg.Period,
		Idle:      cfg.Idle,
	})
	if err != nil {
		return nil, err
	}
	if err := e.Start(); err != nil {
		return nil, fmt.Errorf("app: start face: %w", err)
	}
	return e, nil
}

// Run starts the face and blocks (TinyGo/native entrypoint). Startup errors
// are shown on the panel before halting.
func Run(h hal.HAL, cfg Config) {
	e, err := NewEngine(h, cfg)
	if err != nil {
		ShowFault(h, err)
		select {}
	}
	defer func() {
		if r := recover(); r != nil {
			ShowFault(h, fmt.Errorf("panic: %v", r))
			select {}
		}
	}()
	_ = e.Run(context.Background())
	select {}
}

// SyncClock joins the configured network, if any, and syncs the wall clock.
func SyncClock(ctx context.Context, n hal.Network, creds *component.Network) error {
	if n == nil {
		return nil
	}
	if creds != nil {
		err := n.Connect(ctx, hal.Credentials{SSID: creds.SSID, Password: creds.Password})
		if err != nil {
			return &TimeSyncError{Op: "connect " + creds.SSID, Err: err}
		}
	}
	if err := n.SyncClock(ctx); err != nil {
		return &TimeSyncError{Op: "sync", Err: err}
	}
	return nil
}

func framebuffer(h hal.HAL) (hal.Framebuffer, error) {
	d := h.Display()
	if d == nil {
		return nil, surface.ErrNoFramebuffer
	}
	fb := d.Framebuffer()
	if fb == nil {
		return nil, surface.ErrNoFramebuffer
	}
	return fb, nil
}
