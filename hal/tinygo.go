//go:build tinygo && baremetal

package hal

import (
	"machine"
)

type tinyGoHAL struct {
	logger    *uartLogger
	backlight *pinBacklight
	fb        Framebuffer
	t         *tinyGoTime
	net       Network
}

// New returns a Raspberry Pi Pico HAL driving a 128x160 ST7735 panel.
//
// UART: UART0 on GP0 (TX) / GP1 (RX), 115200 8N1.
// LCD: SPI1 SCK=GP10 SDO=GP11, DC=GP16, RST=GP17, CS=GP18, backlight GP15.
func New() HAL {
	uart := machine.UART0
	uart.Configure(machine.UARTConfig{
		BaudRate: 115200,
		TX:       machine.GP0,
		RX:       machine.GP1,
	})
	logger := &uartLogger{uart: uart}

	bl := &machinePin{name: "BL", pin: machine.GP15}
	_ = bl.Configure(GPIOModeOutput, GPIOPullNone)

	var fb Framebuffer
	if disp, err := newST7735Framebuffer(); err == nil {
		fb = disp
	} else {
		logger.WriteLineString("lcd: " + err.Error())
		fb = &stubFramebuffer{w: st7735Width, h: st7735Height, format: PixelFormatRGB565}
	}

	return &tinyGoHAL{
		logger:    logger,
		backlight: newPinBacklight(bl, logger),
		fb:        fb,
		t:         newTinyGoTime(),
		net:       nullNetwork{},
	}
}

func (h *tinyGoHAL) Logger() Logger       { return h.logger }
func (h *tinyGoHAL) Backlight() Backlight { return h.backlight }
func (h *tinyGoHAL) Display() Display     { return tinyGoDisplay{fb: h.fb} }
func (h *tinyGoHAL) Time() Time           { return h.t }
func (h *tinyGoHAL) Network() Network     { return h.net }
