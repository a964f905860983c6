package engine2D

import (
	"time"

	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/surface"
)

// Instance binds one effect to its own surface. Instances share nothing:
// every one has its own generator, clock and pixels.
type Instance struct {
	Label    string
	Effect   effects.Effect
	Surface  *surface.Surface
	Throttle time.Duration

	// offscreen is the oversized target of a supersampled instance. Each
	// frame is scaled down into Surface.
	offscreen *surface.Surface
	factor    int

	lastFrame time.Time
	frames    uint64
	stopped   bool
}

// Driver advances a set of instances once per display tick.
type Driver struct {
	instances []*Instance
}
