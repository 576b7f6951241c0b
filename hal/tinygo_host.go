//go:build tinygo && !baremetal

package hal

import (
	"time"
)

type tinyGoHostHAL struct {
	logger    *tinyGoHostLogger
	backlight *pinBacklight
	fb        *tinyGoHostFramebuffer
	t         *tinyGoHostTime
	net       Network
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no
// panel: drawing lands in memory and the backlight is a virtual pin.
func New() HAL {
	l := &tinyGoHostLogger{}
	bl := newVirtualPin("BL", GPIOCapOutput)
	_ = bl.Configure(GPIOModeOutput, GPIOPullNone)
	return &tinyGoHostHAL{
		logger:    l,
		backlight: newPinBacklight(bl, l),
		fb:        newTinyGoHostFramebuffer(128, 160),
		t:         newTinyGoHostTime(),
		net:       nullNetwork{},
	}
}

func (h *tinyGoHostHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHostHAL) Backlight() Backlight { return h.backlight }
func (h *tinyGoHostHAL) Display() Display     { return tinyGoHostDisplay{fb: h.fb} }
func (h *tinyGoHostHAL) Time() Time           { return h.t }
func (h *tinyGoHostHAL) Network() Network     { return h.net }

type tinyGoHostDisplay struct {
	fb Framebuffer
}

func (d tinyGoHostDisplay) Framebuffer() Framebuffer { return d.fb }

type tinyGoHostTime struct {
	ch    chan uint64
	start time.Time
}

func newTinyGoHostTime() *tinyGoHostTime {
	t := &tinyGoHostTime{ch: make(chan uint64, 16), start: time.Now()}
	go func() {
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for now := range ticker.C {
			select {
			case t.ch <- uint64(now.Sub(t.start) / time.Millisecond):
			default:
			}
		}
	}()
	return t
}

func (t *tinyGoHostTime) Ticks() <-chan uint64 { return t.ch }
func (t *tinyGoHostTime) Now() time.Time       { return time.Now() }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type tinyGoHostFramebuffer struct {
	w, h   int
	stride int
	buf    []byte
}

func newTinyGoHostFramebuffer(w, h int) *tinyGoHostFramebuffer {
	return &tinyGoHostFramebuffer{w: w, h: h, stride: w * 2, buf: make([]byte, w*2*h)}
}

func (f *tinyGoHostFramebuffer) Width() int          { return f.w }
func (f *tinyGoHostFramebuffer) Height() int         { return f.h }
func (f *tinyGoHostFramebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *tinyGoHostFramebuffer) StrideBytes() int    { return f.stride }
func (f *tinyGoHostFramebuffer) Buffer() []byte      { return f.buf }
func (f *tinyGoHostFramebuffer) Present() error      { return nil }

func (f *tinyGoHostFramebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(pixel)
		f.buf[i+1] = byte(pixel >> 8)
	}
}
