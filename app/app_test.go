package app

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"clockface/face/component"
	"clockface/face/config/configfile"
	"clockface/face/metrics"
	"clockface/face/surface"
	"clockface/hal"
)

type recordLogger struct{ lines []string }

func (l *recordLogger) WriteLineString(s string) { l.lines = append(l.lines, s) }
func (l *recordLogger) WriteLineBytes(b []byte)  { l.lines = append(l.lines, string(b)) }

type fakeNetwork struct {
	connectErr error
	syncErr    error
	connected  []hal.Credentials
	synced     int
}

func (n *fakeNetwork) Connect(_ context.Context, c hal.Credentials) error {
	n.connected = append(n.connected, c)
	return n.connectErr
}

func (n *fakeNetwork) SyncClock(context.Context) error {
	n.synced++
	return n.syncErr
}

// withNetwork swaps the network of a host HAL.
type withNetwork struct {
	hal.HAL
	net hal.Network
	log hal.Logger
}

func (h withNetwork) Network() hal.Network { return h.net }
func (h withNetwork) Logger() hal.Logger   { return h.log }

type chanTime struct {
	ch  chan uint64
	now time.Time
}

func (t chanTime) Ticks() <-chan uint64 { return t.ch }
func (t chanTime) Now() time.Time       { return t.now }

func defaultFace(t *testing.T) *component.ClockConfig {
	t.Helper()
	face, err := configfile.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	return face
}

func nonZeroPixels(fb hal.Framebuffer) int {
	n := 0
	buf := fb.Buffer()
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] != 0 || buf[i+1] != 0 {
			n++
		}
	}
	return n
}

func TestNewStartsFaceAndSteps(t *testing.T) {
	h := hal.NewHost(hal.HostConfig{Log: io.Discard})
	step, err := New(h, Config{Face: defaultFace(t)})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	fb := h.Display().Framebuffer()
	if nonZeroPixels(fb) == 0 {
		t.Fatal("static dial was not painted")
	}
	for i := 0; i < 3; i++ {
		if err := step(); err != nil {
			t.Fatalf("step: %v", err)
		}
	}
}

func TestNewRequiresFace(t *testing.T) {
	if _, err := New(hal.NewHost(hal.HostConfig{Log: io.Discard}), Config{}); err == nil {
		t.Fatal("expected error without a face")
	}
}

func TestTimeSyncFailureIsLoggedAndStartupContinues(t *testing.T) {
	face := defaultFace(t)
	face.Network = &component.Network{SSID: "home", Password: "pw"}
	net := &fakeNetwork{connectErr: errors.New("no carrier")}
	logs := &recordLogger{}
	h := withNetwork{HAL: hal.NewHost(hal.HostConfig{Log: io.Discard}), net: net, log: logs}

	if _, err := New(h, Config{Face: face}); err != nil {
		t.Fatalf("New: %v", err)
	}
	if len(net.connected) != 1 || net.connected[0].SSID != "home" {
		t.Fatalf("unexpected connects %+v", net.connected)
	}
	var warned bool
	for _, l := range logs.lines {
		if strings.HasPrefix(l, "WARN continuing without time sync") && strings.Contains(l, "no carrier") {
			warned = true
		}
	}
	if !warned {
		t.Fatalf("expected time sync warning, got %q", logs.lines)
	}
}

func TestSyncClock(t *testing.T) {
	net := &fakeNetwork{}
	if err := SyncClock(context.Background(), net, nil); err != nil {
		t.Fatalf("SyncClock: %v", err)
	}
	if len(net.connected) != 0 || net.synced != 1 {
		t.Fatalf("expected sync without connect, got %+v", net)
	}

	net = &fakeNetwork{syncErr: hal.ErrNotImplemented}
	err := SyncClock(context.Background(), net, &component.Network{SSID: "x"})
	var tse *TimeSyncError
	if !errors.As(err, &tse) || tse.Op != "sync" {
		t.Fatalf("expected sync TimeSyncError, got %v", err)
	}
	if !errors.Is(err, hal.ErrNotImplemented) {
		t.Fatalf("expected wrapped ErrNotImplemented, got %v", err)
	}

	if err := SyncClock(context.Background(), nil, nil); err != nil {
		t.Fatalf("nil network: %v", err)
	}
}

func TestTickClockDrainsToNewestTick(t *testing.T) {
	at := time.Date(2024, 10, 31, 12, 30, 15, 0, time.UTC)
	ct := chanTime{ch: make(chan uint64, 8), now: at}
	ct.ch <- 10
	ct.ch <- 11
	ct.ch <- 12

	c := NewTickClock(ct)
	s := c.Now()
	if s.Tick != 12 {
		t.Fatalf("expected tick 12, got %d", s.Tick)
	}
	if s.Hour != 12 || s.Minute != 30 || s.Second != 15 || s.Epoch != at.Unix() {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if again := c.Now(); again.Tick != 12 {
		t.Fatalf("tick moved without new ticks: %d", again.Tick)
	}
}

func TestLineLogger(t *testing.T) {
	out := &recordLogger{}
	l := NewLineLogger(out)
	l.Info("backlight", "on", true, "hour", 7)
	l.Debug("hidden")
	l.Error("odd", "key")

	want := []string{"INFO backlight on=true hour=7", "ERRO odd key=MISSING"}
	if strings.Join(out.lines, "|") != strings.Join(want, "|") {
		t.Fatalf("got %q want %q", out.lines, want)
	}

	l.Verbose = true
	l.Debug("shown")
	if out.lines[len(out.lines)-1] != "DEBU shown" {
		t.Fatalf("debug line missing: %q", out.lines)
	}
}

func TestDrawFault(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(60, 40)
	if err := DrawFault(surface.New(fb), errors.New("config: components[3].end_date: invalid")); err != nil {
		t.Fatalf("DrawFault: %v", err)
	}
	var black int
	buf := fb.Buffer()
	for i := 0; i+1 < len(buf); i += 2 {
		if buf[i] == 0 && buf[i+1] == 0 {
			black++
		}
	}
	if black == 0 || black == len(buf)/2 {
		t.Fatalf("expected mixed fault text, got %d black pixels", black)
	}
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo world", 5)
	if p != "héllo" || r != " world" {
		t.Fatalf("got %q %q", p, r)
	}
	if p, r := takeRunes("ab", 5); p != "ab" || r != "" {
		t.Fatalf("got %q %q", p, r)
	}
}

func TestRenderFrame(t *testing.T) {
	fb := hal.NewMemoryFramebuffer(128, 160)
	at := time.Date(2024, 10, 1, 10, 15, 30, 0, time.UTC)
	if err := RenderFrame(defaultFace(t), fb, at, nil); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	if nonZeroPixels(fb) == 0 {
		t.Fatal("frame is empty")
	}
}

func TestMetricsRouter(t *testing.T) {
	m := metrics.New()
	m.Redraw(time.Millisecond)
	r := MetricsRouter(m)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != 200 || rec.Body.String() != "ok\n" {
		t.Fatalf("healthz: %d %q", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), "clockface_redraws_total") {
		t.Fatalf("metrics: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("POST", "/metrics", nil))
	if rec.Code != 405 {
		t.Fatalf("expected 405 for POST, got %d", rec.Code)
	}
}
