//go:build tinygo

package main

import (
	"clockface/app"
	"clockface/face/config/configfile"
	"clockface/hal"
)

func main() {
	h := hal.New()
	face, err := configfile.Default()
	if err != nil {
		app.ShowFault(h, err)
		select {}
	}
	app.Run(h, app.Config{Face: face})
}
