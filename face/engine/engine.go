// Package engine drives a clock face: it paints the static dial once, then
// redraws the time-dependent widgets on a fixed period and keeps the
// backlight in step with the sleep window.
package engine

import (
	"context"
	"errors"
	"time"

	"clockface/face/clockmath"
	"clockface/face/component"
	"clockface/face/render"
)

const (
	DefaultPeriod = time.Second
	DefaultIdle   = 10 * time.Millisecond
)

// Clock samples the current instant.
type Clock interface {
	Now() clockmath.Snapshot
}

// Backlight switches the panel light.
type Backlight interface {
	Set(on bool)
}

// Logger is the subset of github.com/charmbracelet/log the engine uses.
type Logger interface {
	Debug(msg any, keyvals ...any)
	Info(msg any, keyvals ...any)
	Warn(msg any, keyvals ...any)
	Error(msg any, keyvals ...any)
}

// Metrics receives engine events.
type Metrics interface {
	Redraw(d time.Duration)
	StaticPaint(kind component.Kind)
	RenderFailure(kind component.Kind)
	Backlight(on bool)
}

// Presenter is implemented by surfaces that buffer drawing.
type Presenter interface {
	Present() error
}

type Options struct {
	Clock     Clock
	Surface   render.Surface
	Backlight Backlight
	Logger    Logger
	Metrics   Metrics

	// Period between redraws, measured on the monotonic tick.
	Period time.Duration
	// Idle is the wait between iterations in Run.
	Idle time.Duration
	// MaxIterations stops Run after that many steps; zero runs until cancelled.
	MaxIterations int
}

// Stats is a snapshot of engine counters.
type Stats struct {
	Iterations     int
	Redraws        int
	StaticPaints   int
	RenderFailures []int // per component index
	BacklightOn    bool
	BacklightSet   bool
}

type Engine struct {
	cfg  *component.ClockConfig
	opts Options
	rc   *render.Context

	started    bool
	redrawn    bool
	lastRedraw uint64

	stats Stats
}

func New(cfg *component.ClockConfig, opts Options) (*Engine, error) {
	if cfg == nil {
		return nil, errors.New("engine: nil config")
	}
	if opts.Clock == nil {
		return nil, errors.New("engine: nil clock")
	}
	if opts.Surface == nil {
		return nil, errors.New("engine: nil surface")
	}
	if opts.Period <= 0 {
		opts.Period = DefaultPeriod
	}
	if opts.Idle <= 0 {
		opts.Idle = DefaultIdle
	}
	if opts.Logger == nil {
		opts.Logger = nopLogger{}
	}
	if opts.Metrics == nil {
		opts.Metrics = nopMetrics{}
	}
	return &Engine{
		cfg:   cfg,
		opts:  opts,
		rc:    render.NewContext(opts.Surface, cfg.Background),
		stats: Stats{RenderFailures: make([]int, len(cfg.Components))},
	}, nil
}

// Start rotates and clears the surface and paints every static widget once.
// It is a no-op after the first call.
func (e *Engine) Start() error {
	if e.started {
		return nil
	}
	s := e.opts.Surface
	if err := s.SetRotation(e.cfg.Orientation); err != nil {
		return err
	}
	if err := s.Clear(e.cfg.Background); err != nil {
		return err
	}
	e.started = true

	snap := e.opts.Clock.Now()
	for i, c := range e.cfg.Components {
		if !component.IsStatic(c) {
			continue
		}
		if err := render.Draw(e.rc, c, snap); err != nil {
			e.failed(i, c, err)
			continue
		}
		e.stats.StaticPaints++
		e.opts.Metrics.StaticPaint(c.Kind())
	}
	e.present()
	e.opts.Logger.Info("face started", "components", len(e.cfg.Components), "static", e.stats.StaticPaints)
	return nil
}

// Step runs one iteration: the backlight task always, the redraw task when
// a period has elapsed on the monotonic tick.
func (e *Engine) Step() error {
	if err := e.Start(); err != nil {
		return err
	}
	e.stats.Iterations++
	snap := e.opts.Clock.Now()
	e.backlightTask(snap)
	if e.due(snap.Tick) {
		e.redrawTask(snap)
	}
	return nil
}

// Run calls Step until ctx is cancelled or MaxIterations is reached.
func (e *Engine) Run(ctx context.Context) error {
	if err := e.Start(); err != nil {
		return err
	}
	for n := 0; ; {
		if ctx.Err() != nil {
			return nil
		}
		if err := e.Step(); err != nil {
			return err
		}
		if n++; e.opts.MaxIterations > 0 && n >= e.opts.MaxIterations {
			return nil
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(e.opts.Idle):
		}
	}
}

// Redraw paints every dynamic widget for snap and returns the failures
// joined. Failures are also logged and counted.
func (e *Engine) Redraw(snap clockmath.Snapshot) error {
	var errs []error
	for i, c := range e.cfg.Components {
		if component.IsStatic(c) {
			continue
		}
		if err := render.Draw(e.rc, c, snap); err != nil {
			errs = append(errs, e.failed(i, c, err))
		}
	}
	e.present()
	return errors.Join(errs...)
}

// Stats returns a copy of the counters.
func (e *Engine) Stats() Stats {
	s := e.stats
	s.RenderFailures = append([]int(nil), e.stats.RenderFailures...)
	return s
}

func (e *Engine) due(tick uint64) bool {
	if !e.redrawn || tick < e.lastRedraw {
		return true
	}
	return tick-e.lastRedraw >= uint64(e.opts.Period/time.Millisecond)
}

func (e *Engine) redrawTask(snap clockmath.Snapshot) {
	e.redrawn = true
	e.lastRedraw = snap.Tick

	start := time.Now()
	_ = e.Redraw(snap)
	e.stats.Redraws++
	e.opts.Metrics.Redraw(time.Since(start))
}

func (e *Engine) backlightTask(snap clockmath.Snapshot) {
	if e.opts.Backlight == nil {
		return
	}
	on := e.cfg.Sleep == nil || !e.cfg.Sleep.Asleep(snap.Hour)
	if e.stats.BacklightSet && e.stats.BacklightOn == on {
		return
	}
	e.opts.Backlight.Set(on)
	e.stats.BacklightOn = on
	e.stats.BacklightSet = true
	e.opts.Metrics.Backlight(on)
	e.opts.Logger.Info("backlight", "on", on, "hour", snap.Hour)
}

func (e *Engine) failed(i int, c component.Component, err error) error {
	re := &render.RenderError{Kind: c.Kind(), Index: i, Err: err}
	e.stats.RenderFailures[i]++
	e.opts.Metrics.RenderFailure(c.Kind())
	e.opts.Logger.Error("render failed", "kind", c.Kind(), "index", i, "err", err)
	return re
}

func (e *Engine) present() {
	p, ok := e.opts.Surface.(Presenter)
	if !ok {
		return
	}
	if err := p.Present(); err != nil {
		e.opts.Logger.Warn("present failed", "err", err)
	}
}

type nopLogger struct{}

func (nopLogger) Debug(any, ...any) {}
func (nopLogger) Info(any, ...any)  {}
func (nopLogger) Warn(any, ...any)  {}
func (nopLogger) Error(any, ...any) {}

type nopMetrics struct{}

func (nopMetrics) Redraw(time.Duration)         {}
func (nopMetrics) StaticPaint(component.Kind)   {}
func (nopMetrics) RenderFailure(component.Kind) {}
func (nopMetrics) Backlight(bool)               {}
