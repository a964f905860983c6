package effects

import (
	"math"
	"math/rand/v2"
)

// DefaultCloudSeed fixes the cloud layout of every Sunset built by the registry.
const DefaultCloudSeed uint32 = 7

type cloudBlob struct {
	x, y    float64
	radius  float64
	opacity float64
}

// Sunset draws a fixed sky gradient, a bobbing sun and a cloud field. The
// clouds are a pure function of the seed and the clock so the same seed
// always yields the same sky.
type Sunset struct {
	Base
	seed uint32
}

// NewSunset creates a sunset on s with DefaultCloudSeed. The generator is
// accepted for symmetry with the other effects and never consumed.
func NewSunset(s Surface, rng *rand.Rand) *Sunset {
	return NewSunsetWithSeed(s, DefaultCloudSeed)
}

// NewSunsetWithSeed creates a sunset whose clouds derive from seed.
func NewSunsetWithSeed(s Surface, seed uint32) *Sunset {
	b := Base{surface: s}
	b.setSize(s.Width(), s.Height())
	return &Sunset{Base: b, seed: seed}
}

func (su *Sunset) ID() ID { return SunsetID }

// Resize only updates dimensions: the clouds are derived every frame.
func (su *Sunset) Resize(width, height int) {
	su.setSize(width, height)
}

func (su *Sunset) Update() {
	su.advance()
}

// hash01 maps (seed, n) to [0, 1) with an integer avalanche.
func hash01(seed, n uint32) float64 {
	h := seed*0x9e3779b1 ^ n*0x85ebca77
	h ^= h >> 16
	h *= 0x7feb352d
	h ^= h >> 15
	h *= 0x846ca68b
	h ^= h >> 16
	return float64(h) / (1 << 32)
}

func (su *Sunset) cloudCount() int {
	return Density(3, 12, 5, su.Scale)
}

// clouds lays out every blob for the current clock.
func (su *Sunset) clouds() []cloudBlob {
	n := su.cloudCount()
	margin := 200 * su.Scale
	span := su.Width + margin
	blobs := make([]cloudBlob, 0, n*7)

	for c := 0; c < n; c++ {
		k := uint32(c) * 32
		baseX := hash01(su.seed, k) * span
		cy := su.Height * (0.08 + 0.4*hash01(su.seed, k+1))
		speed := (10 + 20*hash01(su.seed, k+2)) * su.Scale
		width := (60 + 80*hash01(su.seed, k+3)) * su.Scale
		count := 4 + int(hash01(su.seed, k+4)*4)

		cx := baseX + su.Time*speed
		if span > 0 {
			cx = math.Mod(cx, span)
		}
		cx -= margin / 2

		for b := 0; b < count; b++ {
			bk := k + 8 + uint32(b)*3
			blobs = append(blobs, cloudBlob{
				x:       cx + (hash01(su.seed, bk)-0.5)*width,
				y:       cy + (hash01(su.seed, bk+1)-0.5)*width*0.25,
				radius:  (14 + 16*hash01(su.seed, bk+2)) * su.Scale,
				opacity: 0.25 + 0.3*hash01(su.seed, bk+2),
			})
		}
	}
	return blobs
}

func (su *Sunset) sunY() float64 {
	return su.Height*0.55 + math.Sin(su.Time*0.3)*su.Height*0.05
}

func (su *Sunset) Render() {
	cv := su.cv()
	w, h := su.Width, su.Height

	sky := cv.CreateLinearGradient(0, 0, 0, h)
	sky.AddColorStop(0, "#1b1447")
	sky.AddColorStop(0.3, "#4c2a85")
	sky.AddColorStop(0.55, "#b83b5e")
	sky.AddColorStop(0.75, "#f07b3f")
	sky.AddColorStop(1, "#ffd460")
	cv.SetFillStyle(sky)
	cv.FillRect(0, 0, w, h)

	sx, sy := w/2, su.sunY()
	sr := 28 * su.Scale
	if sr > 0 {
		glow := cv.CreateRadialGradient(sx, sy, sr*0.5, sx, sy, sr*4)
		glow.AddColorStop(0, rgba(255, 214, 120, 0.55))
		glow.AddColorStop(1, rgba(255, 140, 60, 0))
		cv.SetFillStyle(glow)
		cv.BeginPath()
		cv.Arc(sx, sy, sr*4, 0, 2*math.Pi, false)
		cv.Fill()

		cv.SetFillStyle("#fff1c1")
		cv.BeginPath()
		cv.Arc(sx, sy, sr, 0, 2*math.Pi, false)
		cv.Fill()
	}

	for _, b := range su.clouds() {
		if b.radius <= 0 {
			continue
		}
		g := cv.CreateRadialGradient(b.x, b.y, 0, b.x, b.y, b.radius)
		g.AddColorStop(0, rgba(255, 200, 210, b.opacity))
		g.AddColorStop(1, rgba(240, 150, 170, 0))
		cv.SetFillStyle(g)
		cv.BeginPath()
		cv.Arc(b.x, b.y, b.radius, 0, 2*math.Pi, false)
		cv.Fill()
	}

	// Sea below the horizon reflects the sky in a darker band.
	horizon := h * 0.78
	sea := cv.CreateLinearGradient(0, horizon, 0, h)
	sea.AddColorStop(0, rgba(90, 40, 90, 0.85))
	sea.AddColorStop(1, rgba(20, 12, 40, 0.95))
	cv.SetFillStyle(sea)
	cv.FillRect(0, horizon, w, h-horizon)

	cv.SetFillStyle(rgba(255, 220, 150, 0.35))
	for i := 0; i < 6; i++ {
		yy := horizon + float64(i+1)*(h-horizon)/8
		half := sr * (1.6 - float64(i)*0.2) * (1 + 0.1*math.Sin(su.Time*2+float64(i)))
		cv.FillRect(sx-half, yy, half*2, math.Max(1, su.Scale))
	}
}
