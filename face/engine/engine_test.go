package engine

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"clockface/face/clockmath"
	"clockface/face/component"
	"clockface/face/render"
)

var _ Logger = (*log.Logger)(nil)

type fakeClock struct {
	snap  clockmath.Snapshot
	step  uint64
	hours []int
	calls int
}

func (c *fakeClock) Now() clockmath.Snapshot {
	s := c.snap
	s.Tick = uint64(c.calls) * c.step
	if len(c.hours) > 0 {
		s.Hour = c.hours[min(c.calls, len(c.hours)-1)]
	}
	c.calls++
	return s
}

type countSurface struct {
	rotation  int
	clears    int
	circles   int
	lines     int
	texts     int
	presents  int
	failText  error
	failClear error
}

func (s *countSurface) SetRotation(code int) error { s.rotation = code; return nil }
func (s *countSurface) Clear(component.Color) error {
	s.clears++
	return s.failClear
}
func (s *countSurface) FillRect(int, int, int, int, component.Color) error        { return nil }
func (s *countSurface) DrawRectOutline(int, int, int, int, component.Color) error { return nil }
func (s *countSurface) DrawLine(clockmath.Point, clockmath.Point, component.Color) error {
	s.lines++
	return nil
}
func (s *countSurface) DrawCircle(clockmath.Point, int, component.Color) error {
	s.circles++
	return nil
}
func (s *countSurface) DrawText(clockmath.Point, string, component.Color, int) error {
	s.texts++
	return s.failText
}
func (s *countSurface) Present() error { s.presents++; return nil }

type recordBacklight struct{ calls []bool }

func (b *recordBacklight) Set(on bool) { b.calls = append(b.calls, on) }

func testFace() *component.ClockConfig {
	center := clockmath.Point{X: 80, Y: 64}
	return &component.ClockConfig{
		Orientation: 1,
		Components: []component.Component{
			&component.DigitalDateTime{Common: component.Common{Color: 0xFFFF}, Format: "HH:mm", Scale: 1},
			&component.AnalogHand{Common: component.Common{Position: center, Color: 0xFFFF}, Length: 40, Width: 1, DurationSeconds: 60},
			&component.FaceCircle{Common: component.Common{Position: center, Color: 0xFFFF}, Radius: 60},
		},
	}
}

func TestStaticWidgetsPaintedOnce(t *testing.T) {
	surf := &countSurface{}
	clock := &fakeClock{step: 100}
	e, err := New(testFace(), Options{Clock: clock, Surface: surf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 0; i < 50; i++ {
		if err := e.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if surf.circles != 1 {
		t.Fatalf("expected dial painted once, got %d", surf.circles)
	}
	if surf.rotation != 1 || surf.clears != 1 {
		t.Fatalf("expected one rotate+clear, got rotation=%d clears=%d", surf.rotation, surf.clears)
	}
	st := e.Stats()
	if st.StaticPaints != 1 || st.Iterations != 50 {
		t.Fatalf("unexpected stats %+v", st)
	}
	// Ticks advance 100ms per sample; redraws land on 100, 1100, ..., 4100.
	if st.Redraws != 5 {
		t.Fatalf("expected 5 redraws, got %d", st.Redraws)
	}
	if surf.texts != 5 {
		t.Fatalf("expected digital widget drawn 5 times, got %d", surf.texts)
	}
	// First hand draw has nothing to erase.
	if surf.lines != 1+2*4 {
		t.Fatalf("expected 9 hand strokes, got %d", surf.lines)
	}
	if surf.presents != 1+5 {
		t.Fatalf("expected 6 presents, got %d", surf.presents)
	}
}

func TestRedrawPeriod(t *testing.T) {
	clock := &fakeClock{step: 250}
	e, err := New(testFace(), Options{Clock: clock, Surface: &countSurface{}, Period: 500 * time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 8; i++ {
		_ = e.Step()
	}
	// Samples at 250..2000 every 250ms; redraws at 250, 750, 1250, 1750.
	if got := e.Stats().Redraws; got != 4 {
		t.Fatalf("expected 4 redraws, got %d", got)
	}
}

func TestBacklightSetOnlyOnChange(t *testing.T) {
	cfg := testFace()
	cfg.Sleep = &component.SleepWindow{Start: 0, End: 10}
	bl := &recordBacklight{}
	// The first sample feeds Start.
	clock := &fakeClock{step: 10, hours: []int{23, 23, 23, 0, 5, 9, 10, 10, 22}}
	e, err := New(cfg, Options{Clock: clock, Surface: &countSurface{}, Backlight: bl})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 8; i++ {
		_ = e.Step()
	}
	want := []bool{true, false, true}
	if len(bl.calls) != len(want) {
		t.Fatalf("expected %v, got %v", want, bl.calls)
	}
	for i := range want {
		if bl.calls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, bl.calls)
		}
	}
	if st := e.Stats(); !st.BacklightSet || !st.BacklightOn {
		t.Fatalf("unexpected backlight stats %+v", st)
	}
}

func TestBacklightStaysOnWithoutSleepWindow(t *testing.T) {
	bl := &recordBacklight{}
	e, err := New(testFace(), Options{Clock: &fakeClock{step: 1, hours: []int{3}}, Surface: &countSurface{}, Backlight: bl})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 3; i++ {
		_ = e.Step()
	}
	if len(bl.calls) != 1 || !bl.calls[0] {
		t.Fatalf("expected a single on, got %v", bl.calls)
	}
}

func TestRenderFailureDoesNotStopTick(t *testing.T) {
	surf := &countSurface{failText: errors.New("spi")}
	e, err := New(testFace(), Options{Clock: &fakeClock{step: 1000}, Surface: surf, Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	err = e.Redraw(clockmath.Snapshot{})
	var re *render.RenderError
	if !errors.As(err, &re) || re.Index != 0 || re.Kind != component.KindDigitalDateTime {
		t.Fatalf("expected render error for widget 0, got %v", err)
	}
	if surf.lines != 1 {
		t.Fatalf("hand after the failing widget was not drawn")
	}

	if err := e.Step(); err != nil {
		t.Fatalf("Step must not fail on render errors: %v", err)
	}
	if got := e.Stats().RenderFailures; got[0] != 2 || got[1] != 0 {
		t.Fatalf("unexpected failure counts %v", got)
	}
}

func TestStartFailsWhenSurfaceCannotClear(t *testing.T) {
	surf := &countSurface{failClear: errors.New("no framebuffer")}
	e, err := New(testFace(), Options{Clock: &fakeClock{}, Surface: surf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Step(); err == nil {
		t.Fatal("expected Step to report the start failure")
	}
	if surf.circles != 0 {
		t.Fatal("static pass ran on a failed start")
	}
}

func TestRunStopsAfterMaxIterations(t *testing.T) {
	e, err := New(testFace(), Options{Clock: &fakeClock{step: 10}, Surface: &countSurface{}, Idle: time.Millisecond, MaxIterations: 3})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := e.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got := e.Stats().Iterations; got != 3 {
		t.Fatalf("expected 3 iterations, got %d", got)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e, err := New(testFace(), Options{Clock: &fakeClock{step: 10}, Surface: &countSurface{}, Idle: time.Millisecond})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancellation")
	}
}

func TestNewValidates(t *testing.T) {
	if _, err := New(nil, Options{Clock: &fakeClock{}, Surface: &countSurface{}}); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := New(testFace(), Options{Surface: &countSurface{}}); err == nil {
		t.Fatal("expected error for nil clock")
	}
	if _, err := New(testFace(), Options{Clock: &fakeClock{}}); err == nil {
		t.Fatal("expected error for nil surface")
	}
}
