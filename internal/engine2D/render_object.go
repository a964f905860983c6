package engine2D

import (
	"math/rand/v2"
	"time"

	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/surface"
)

// NewInstance creates a surface of the given size and an effect bound to it.
func NewInstance(id effects.ID, width, height int, throttle time.Duration, rng *rand.Rand) *Instance {
	return NewSupersampledInstance(id, width, height, 1, throttle, rng)
}

// NewSupersampledInstance renders the effect factor times larger than the
// visible surface and downscales every frame into it. A factor below two
// renders directly.
func NewSupersampledInstance(id effects.ID, width, height, factor int, throttle time.Duration, rng *rand.Rand) *Instance {
	inst := &Instance{
		Label:    string(id),
		Surface:  surface.New(width, height),
		Throttle: throttle,
		factor:   max(factor, 1),
	}
	target := inst.Surface
	if inst.factor > 1 {
		inst.offscreen = surface.New(width*inst.factor, height*inst.factor)
		target = inst.offscreen
	}
	inst.Effect = effects.Create(id, target, rng)
	return inst
}

// render draws the effect and scales a supersampled frame into Surface.
func (inst *Instance) render() {
	inst.Effect.Render()
	if inst.offscreen != nil {
		inst.offscreen.BlitTo(inst.Surface, 0, 0, inst.Surface.Width(), inst.Surface.Height())
	}
}

// Tick runs one update and render unless the instance is stopped or
// throttled. It reports whether a frame was produced.
func (inst *Instance) Tick(now time.Time) bool {
	if inst.stopped || !due(inst.lastFrame, now, inst.Throttle) {
		return false
	}
	inst.Effect.Update()
	inst.render()
	inst.lastFrame = now
	inst.frames++
	return true
}

// Resize reallocates the surface and reinitializes the effect. Call it
// between ticks only.
func (inst *Instance) Resize(width, height int) {
	inst.Surface.Resize(width, height)
	target := inst.Surface
	if inst.offscreen != nil {
		inst.offscreen.Resize(inst.Surface.Width()*inst.factor, inst.Surface.Height()*inst.factor)
		target = inst.offscreen
	}
	inst.Effect.Resize(target.Width(), target.Height())
	// Redraw immediately so a presenter never uploads a blank buffer.
	inst.render()
}

// Supersample is the offscreen scale factor, 1 when rendering directly.
func (inst *Instance) Supersample() int { return max(inst.factor, 1) }

// Stop ends the instance. No further ticks reach the effect.
func (inst *Instance) Stop() { inst.stopped = true }

func (inst *Instance) Stopped() bool  { return inst.stopped }
func (inst *Instance) Frames() uint64 { return inst.frames }
