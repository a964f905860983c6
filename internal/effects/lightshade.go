package effects

import (
	"math"
	"math/rand/v2"
)

type lightPool struct {
	x, y   float64
	vx, vy float64
	radius float64
	hue    float64
}

// LightShade moves a handful of large coloured light pools across a dark
// room. Pools bounce off the edges and slowly cycle their hue.
type LightShade struct {
	Base
	pools []lightPool
}

// NewLightShade creates the light pools for s.
func NewLightShade(s Surface, rng *rand.Rand) *LightShade {
	ls := &LightShade{Base: newBase(s, rng)}
	ls.generate()
	return ls
}

func (ls *LightShade) ID() ID { return LightShadeID }

func (ls *LightShade) Resize(width, height int) {
	ls.setSize(width, height)
	ls.generate()
}

func (ls *LightShade) generate() {
	n := Density(3, 7, 5, ls.Scale)
	ls.pools = make([]lightPool, n)
	for i := range ls.pools {
		p := &ls.pools[i]
		p.x = ls.between(0, ls.Width)
		p.y = ls.between(0, ls.Height)
		p.radius = ls.between(60, 140) * ls.Scale
		p.vx = ls.signed(0.3, 1.2) * ls.Scale
		p.vy = ls.signed(0.3, 1.2) * ls.Scale
		p.hue = ls.between(0, 360)
	}
}

func (ls *LightShade) signed(lo, hi float64) float64 {
	v := ls.between(lo, hi)
	if ls.chance(0.5) {
		return -v
	}
	return v
}

// bounce reflects the velocity when pos leaves [0, limit].
func bounce(pos, vel, limit float64) (float64, float64) {
	if pos < 0 {
		return 0, math.Abs(vel)
	}
	if pos > limit {
		return limit, -math.Abs(vel)
	}
	return pos, vel
}

func (ls *LightShade) Update() {
	ls.advance()
	for i := range ls.pools {
		p := &ls.pools[i]
		p.x, p.vx = bounce(p.x+p.vx, p.vx, ls.Width)
		p.y, p.vy = bounce(p.y+p.vy, p.vy, ls.Height)
		p.hue = math.Mod(p.hue+0.3, 360)
	}
}

func (ls *LightShade) Render() {
	cv := ls.cv()
	cv.SetFillStyle("#050508")
	cv.FillRect(0, 0, ls.Width, ls.Height)

	for i := range ls.pools {
		p := &ls.pools[i]
		if p.radius <= 0 {
			continue
		}
		g := cv.CreateRadialGradient(p.x, p.y, 0, p.x, p.y, p.radius)
		g.AddColorStop(0, hsla(p.hue, 0.9, 0.62, 0.55))
		g.AddColorStop(0.45, hsla(p.hue, 0.85, 0.5, 0.25))
		g.AddColorStop(1, hsla(p.hue, 0.8, 0.4, 0))
		cv.SetFillStyle(g)
		cv.BeginPath()
		cv.Arc(p.x, p.y, p.radius, 0, 2*math.Pi, false)
		cv.Fill()
	}

	// Vignette darkens the corners so the pools read as light in a room.
	cx, cy := ls.Width/2, ls.Height/2
	outer := math.Hypot(cx, cy)
	if outer <= 0 {
		return
	}
	v := cv.CreateRadialGradient(cx, cy, outer*0.4, cx, cy, outer)
	v.AddColorStop(0, rgba(0, 0, 0, 0))
	v.AddColorStop(1, rgba(0, 0, 0, 0.6))
	cv.SetFillStyle(v)
	cv.FillRect(0, 0, ls.Width, ls.Height)
}
