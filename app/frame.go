package app

import (
	"time"

	"clockface/face/clockmath"
	"clockface/face/component"
	"clockface/face/engine"
	"clockface/face/surface"
	"clockface/hal"
)

type fixedClock struct{ snap clockmath.Snapshot }

func (c fixedClock) Now() clockmath.Snapshot { return c.snap }

// RenderFrame paints one complete frame of face for the instant at into fb.
// Widget failures are returned joined after the whole frame is drawn.
func RenderFrame(face *component.ClockConfig, fb hal.Framebuffer, at time.Time, logger engine.Logger) error {
	snap := clockmath.SnapshotOf(at, 0)
	e, err := engine.New(face, engine.Options{
		Clock:   fixedClock{snap: snap},
		Surface: surface.New(fb),
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	if err := e.Start(); err != nil {
		return err
	}
	return e.Redraw(snap)
}
