package effects

import (
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
)

const (
	windowSpacing   = 30.0
	windowColumnGap = 14.0
	windowLitChance = 0.7
	windowToggle    = 0.001
)

type cityWindow struct {
	x, y  float64
	lit   bool
	phase float64
}

type building struct {
	x, w, h float64
	color   string
	windows []cityWindow
}

type star struct {
	x, y   float64
	radius float64
	phase  float64
}

// Urbanity is a night skyline: a drifting far silhouette layer behind a
// row of buildings whose windows flicker and occasionally switch.
type Urbanity struct {
	Base
	buildings []building
	far       []building
	stars     []star
}

// NewUrbanity generates a skyline wide enough to cover s.
func NewUrbanity(s Surface, rng *rand.Rand) *Urbanity {
	u := &Urbanity{Base: newBase(s, rng)}
	u.generate()
	return u
}

func (u *Urbanity) ID() ID { return UrbanityID }

func (u *Urbanity) Resize(width, height int) {
	u.setSize(width, height)
	u.generate()
}

func (u *Urbanity) generate() {
	// Low-frequency noise groups tall towers into a downtown cluster.
	envelope := perlin.NewPerlin(2, 2, 3, u.rng.Int64())

	u.buildings = u.skyline(envelope, 0.25, 0.75, true)
	u.far = u.skyline(envelope, 0.35, 0.85, false)

	u.stars = make([]star, Density(20, 200, 60, u.Scale))
	for i := range u.stars {
		u.stars[i] = star{
			x:      u.between(0, u.Width),
			y:      u.between(0, u.Height*0.6),
			radius: u.between(0.4, 1.4) * math.Max(u.Scale, 0.5),
			phase:  u.between(0, 2*math.Pi),
		}
	}
}

// skyline places buildings left to right until the width is covered.
func (u *Urbanity) skyline(envelope *perlin.Perlin, lo, hi float64, windows bool) []building {
	var out []building
	minW := math.Max(2, 30*u.Scale)
	x := 0.0
	for x < u.Width {
		w := math.Max(minW, u.between(30, 80)*u.Scale)
		shape := 1 + envelope.Noise1D(x/math.Max(u.Width, 1)*2)
		h := u.Height * clamp(u.between(lo, hi)*shape, 0.12, 0.92)

		b := building{x: x, w: w, h: h}
		if windows {
			b.color = hsla(u.between(210, 250), 0.25, u.between(0.1, 0.18), 1)
			b.windows = u.windowsFor(&b)
		} else {
			b.color = mix("#1a1d3a", "#2b2450", u.rng.Float64())
		}
		out = append(out, b)
		x += w
	}
	return out
}

func (u *Urbanity) windowsFor(b *building) []cityWindow {
	spacing := windowSpacing * math.Max(u.Scale, 0.2)
	gap := windowColumnGap * math.Max(u.Scale, 0.2)
	top := u.Height - b.h

	var out []cityWindow
	for y := top + spacing*0.5; y < u.Height-spacing*0.5; y += spacing {
		for x := b.x + gap*0.5; x < b.x+b.w-gap*0.5; x += gap {
			out = append(out, cityWindow{
				x:     x,
				y:     y,
				lit:   u.chance(windowLitChance),
				phase: u.between(0, 2*math.Pi),
			})
		}
	}
	return out
}

func (u *Urbanity) Update() {
	u.advance()
	for i := range u.buildings {
		ws := u.buildings[i].windows
		for k := range ws {
			if u.chance(windowToggle) {
				ws[k].lit = !ws[k].lit
			}
		}
	}
}

func (u *Urbanity) Render() {
	cv := u.cv()
	w, h := u.Width, u.Height

	sky := cv.CreateLinearGradient(0, 0, 0, h)
	sky.AddColorStop(0, "#05060f")
	sky.AddColorStop(0.7, "#151a3a")
	sky.AddColorStop(1, "#2d2350")
	cv.SetFillStyle(sky)
	cv.FillRect(0, 0, w, h)

	for i := range u.stars {
		s := &u.stars[i]
		cv.SetFillStyle(rgba(255, 255, 240, 0.5+0.5*math.Sin(u.Time*2+s.phase)))
		cv.BeginPath()
		cv.Arc(s.x, s.y, s.radius, 0, 2*math.Pi, false)
		cv.Fill()
	}

	// The far layer drifts slowly and wraps for parallax.
	if w > 0 {
		shift := math.Mod(u.Time*4*u.Scale, w)
		for i := range u.far {
			b := &u.far[i]
			cv.SetFillStyle(b.color)
			for _, off := range []float64{-shift, w - shift} {
				cv.FillRect(b.x+off, h-b.h, b.w+0.5, b.h)
			}
		}
	}

	winW := 6 * math.Max(u.Scale, 0.2)
	winH := 9 * math.Max(u.Scale, 0.2)
	for i := range u.buildings {
		b := &u.buildings[i]
		cv.SetFillStyle(b.color)
		cv.FillRect(b.x, h-b.h, b.w+0.5, b.h)

		for k := range b.windows {
			win := &b.windows[k]
			if win.lit {
				glow := 0.85 + 0.15*math.Sin(u.Time*3+win.phase)
				cv.SetFillStyle(rgba(255, 214, 120, glow))
			} else {
				cv.SetFillStyle(rgba(30, 34, 60, 1))
			}
			cv.FillRect(win.x, win.y, winW, winH)
		}
	}
}
