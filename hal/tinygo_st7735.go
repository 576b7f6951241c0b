//go:build tinygo && baremetal

package hal

import (
	"errors"
	"machine"

	"tinygo.org/x/drivers/st7735"
)

const (
	st7735Width  = 128
	st7735Height = 160

	// st7735Rows is how many panel rows one SPI burst carries.
	st7735Rows = 8
)

// st7735Framebuffer keeps the frame in little-endian RGB565 memory and
// pushes it to the panel on Present. Rotation is applied by the drawing
// surface, so the panel itself stays in its native orientation.
type st7735Framebuffer struct {
	w      int
	h      int
	stride int
	buf    []byte

	lcd   *st7735.Device
	txBuf []byte
}

func newST7735Framebuffer() (*st7735Framebuffer, error) {
	if machine.SPI1 == nil {
		return nil, errors.New("SPI1 unavailable")
	}
	if err := machine.SPI1.Configure(machine.SPIConfig{
		SCK:       machine.GP10,
		SDO:       machine.GP11,
		Frequency: 20_000_000,
	}); err != nil {
		return nil, err
	}

	// The backlight pin belongs to the HAL backlight, not the panel driver.
	lcd := st7735.New(machine.SPI1, machine.GP17, machine.GP16, machine.GP18, machine.NoPin)
	lcd.Configure(st7735.Config{
		Width:  st7735Width,
		Height: st7735Height,
		Model:  st7735.GREENTAB,
	})

	return &st7735Framebuffer{
		w:      st7735Width,
		h:      st7735Height,
		stride: st7735Width * 2,
		buf:    make([]byte, st7735Width*st7735Height*2),
		lcd:    &lcd,
		txBuf:  make([]byte, st7735Width*2*st7735Rows),
	}, nil
}

func (f *st7735Framebuffer) Width() int          { return f.w }
func (f *st7735Framebuffer) Height() int         { return f.h }
func (f *st7735Framebuffer) Format() PixelFormat { return PixelFormatRGB565 }
func (f *st7735Framebuffer) StrideBytes() int    { return f.stride }
func (f *st7735Framebuffer) Buffer() []byte      { return f.buf }

func (f *st7735Framebuffer) ClearRGB(r, g, b uint8) {
	pixel := rgb565(r, g, b)
	lo := byte(pixel)
	hi := byte(pixel >> 8)
	for i := 0; i < len(f.buf); i += 2 {
		f.buf[i] = lo
		f.buf[i+1] = hi
	}
}

func (f *st7735Framebuffer) Present() error {
	if f.lcd == nil {
		return ErrNotImplemented
	}
	for y := 0; y < f.h; y += st7735Rows {
		rows := min(st7735Rows, f.h-y)
		src := f.buf[y*f.stride : (y+rows)*f.stride]
		chunk := f.txBuf[:len(src)]

		// Framebuffer is little-endian RGB565, the panel wants big-endian.
		for i := 0; i+1 < len(src); i += 2 {
			chunk[i] = src[i+1]
			chunk[i+1] = src[i]
		}
		if err := f.lcd.DrawRGBBitmap8(0, int16(y), chunk, int16(f.w), int16(rows)); err != nil {
			return err
		}
	}
	return nil
}

// stubFramebuffer stands in when the panel cannot be initialized.
type stubFramebuffer struct {
	w      int
	h      int
	format PixelFormat
}

func (f *stubFramebuffer) Width() int          { return f.w }
func (f *stubFramebuffer) Height() int         { return f.h }
func (f *stubFramebuffer) Format() PixelFormat { return f.format }
func (f *stubFramebuffer) StrideBytes() int    { return f.w * 2 }
func (f *stubFramebuffer) Buffer() []byte      { return nil }
func (f *stubFramebuffer) ClearRGB(r, g, b uint8) {}
func (f *stubFramebuffer) Present() error      { return ErrNotImplemented }
