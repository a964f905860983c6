package effects

import (
	"math"
	"math/rand/v2"
)

const (
	smokeMinCount  = 20
	smokeMaxCount  = 80
	smokeBaseCount = 50

	smokeFade     = 0.998
	smokeGrow     = 1.001
	smokeMinAlpha = 0.01
	smokeJitter   = 0.3
	smokeJitterHz = 2.0
)

type smokeParticle struct {
	x, y    float64
	vx, vy  float64
	radius  float64
	opacity float64
	phase   float64
}

// Smoke is a plume of soft particles that rise, fade and swell until they
// are recycled at the bottom of the surface.
type Smoke struct {
	Base
	particles []smokeParticle
}

// NewSmoke creates a smoke plume on s.
func NewSmoke(s Surface, rng *rand.Rand) *Smoke {
	sm := &Smoke{Base: newBase(s, rng)}
	sm.generate()
	return sm
}

func (sm *Smoke) ID() ID { return SmokeID }

func (sm *Smoke) Resize(width, height int) {
	sm.setSize(width, height)
	sm.generate()
}

func (sm *Smoke) generate() {
	n := Density(smokeMinCount, smokeMaxCount, smokeBaseCount, sm.Scale)
	sm.particles = make([]smokeParticle, n)
	for i := range sm.particles {
		sm.spawn(&sm.particles[i], true)
	}
}

// spawn resets p. Initial particles are scattered over the whole surface,
// recycled ones start just below the bottom edge.
func (sm *Smoke) spawn(p *smokeParticle, scatter bool) {
	p.radius = sm.between(20, 50) * sm.Scale
	p.x = sm.between(0, sm.Width)
	if scatter {
		p.y = sm.between(0, sm.Height)
	} else {
		p.y = sm.Height + p.radius
	}
	p.vx = sm.between(-0.2, 0.2) * sm.Scale
	p.vy = -sm.between(0.3, 1.0) * sm.Scale
	p.opacity = sm.between(0.2, 0.5)
	p.phase = sm.between(0, 2*math.Pi)
}

func (sm *Smoke) Update() {
	sm.advance()
	for i := range sm.particles {
		p := &sm.particles[i]
		p.x += p.vx + math.Sin(sm.Time*smokeJitterHz+p.phase)*smokeJitter*sm.Scale
		p.y += p.vy
		p.opacity *= smokeFade
		p.radius *= smokeGrow

		if p.y < -p.radius || p.opacity < smokeMinAlpha {
			sm.spawn(p, false)
		}
	}
}

func (sm *Smoke) Render() {
	cv := sm.cv()

	bg := cv.CreateLinearGradient(0, 0, 0, sm.Height)
	bg.AddColorStop(0, "#10131c")
	bg.AddColorStop(1, "#262d3b")
	cv.SetFillStyle(bg)
	cv.FillRect(0, 0, sm.Width, sm.Height)

	for i := range sm.particles {
		p := &sm.particles[i]
		if p.radius <= 0 {
			continue
		}
		g := cv.CreateRadialGradient(p.x, p.y, 0, p.x, p.y, p.radius)
		g.AddColorStop(0, rgba(206, 214, 230, p.opacity))
		g.AddColorStop(0.5, rgba(182, 192, 214, p.opacity*0.5))
		g.AddColorStop(1, rgba(160, 170, 195, 0))
		cv.SetFillStyle(g)
		cv.BeginPath()
		cv.Arc(p.x, p.y, p.radius, 0, 2*math.Pi, false)
		cv.Fill()
	}
}
