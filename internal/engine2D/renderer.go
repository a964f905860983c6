package engine2D

import (
	"slices"
	"time"

	"linux-visualgallery/internal/utils"
)

func NewDriver() *Driver {
	return &Driver{}
}

// Add registers inst and renders its first frame so it has content before
// its first tick.
func (d *Driver) Add(inst *Instance) *Instance {
	inst.render()
	d.instances = append(d.instances, inst)
	utils.Debug("Driver: added %s (%dx%d, throttle %s)", inst.Label, inst.Surface.Width(), inst.Surface.Height(), inst.Throttle)
	return inst
}

// Remove stops inst and drops it from the driver.
func (d *Driver) Remove(inst *Instance) {
	inst.Stop()
	d.instances = slices.DeleteFunc(d.instances, func(other *Instance) bool { return other == inst })
	utils.Debug("Driver: removed %s after %d frames", inst.Label, inst.frames)
}

// Instances returns the live instances in insertion order.
func (d *Driver) Instances() []*Instance {
	return slices.Clone(d.instances)
}

// Len is the number of instances, stopped ones included.
func (d *Driver) Len() int { return len(d.instances) }

// Tick gives every instance a chance to produce a frame and returns how
// many did.
func (d *Driver) Tick(now time.Time) int {
	rendered := 0
	for _, inst := range d.instances {
		if inst.Tick(now) {
			rendered++
		}
	}
	return rendered
}

// Prune drops stopped instances and returns them so the caller can release
// their resources.
func (d *Driver) Prune() []*Instance {
	var gone []*Instance
	d.instances = slices.DeleteFunc(d.instances, func(inst *Instance) bool {
		if inst.stopped {
			gone = append(gone, inst)
			return true
		}
		return false
	})
	return gone
}

// Clear stops and drops every instance.
func (d *Driver) Clear() []*Instance {
	gone := d.instances
	for _, inst := range gone {
		inst.Stop()
	}
	d.instances = nil
	return gone
}
