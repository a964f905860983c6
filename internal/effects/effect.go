package effects

import (
	"math"
	"math/rand/v2"

	"github.com/tfriedel6/canvas"
)

const (
	// ReferenceWidth and ReferenceHeight are the canonical preview size.
	// Every effect is tuned to look right at this size and scales from it.
	ReferenceWidth  = 280
	ReferenceHeight = 200
	ReferenceArea   = ReferenceWidth * ReferenceHeight

	// Step is the logical clock increment of a single update.
	Step = 1.0 / 60.0
)

// Surface is the drawing target an effect renders into.
type Surface interface {
	Width() int
	Height() int
	Canvas() *canvas.Canvas
}

// Effect is the lifecycle every visual implements.
type Effect interface {
	ID() ID
	Resize(width, height int)
	Update()
	Render()
}

// Scale maps a surface area to a density multiplier relative to ReferenceArea.
func Scale(width, height int) float64 {
	if width <= 0 || height <= 0 {
		return 0
	}
	return math.Sqrt(float64(width) * float64(height) / ReferenceArea)
}

// Density returns base*scale rounded and clamped into [lo, hi].
func Density(lo, hi int, base, scale float64) int {
	n := int(math.Round(base * scale))
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// Base carries the state shared by every effect: dimensions, the logical
// clock, the derived scale and the injected generator.
type Base struct {
	Width  float64
	Height float64
	Time   float64
	Scale  float64

	surface Surface
	rng     *rand.Rand
}

func newBase(s Surface, rng *rand.Rand) Base {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	b := Base{surface: s, rng: rng}
	b.setSize(s.Width(), s.Height())
	return b
}

func (b *Base) setSize(width, height int) {
	b.Width = float64(max(width, 0))
	b.Height = float64(max(height, 0))
	b.Scale = Scale(width, height)
}

func (b *Base) advance() {
	b.Time += Step
}

func (b *Base) cv() *canvas.Canvas {
	return b.surface.Canvas()
}

// between returns a uniform value in [lo, hi).
func (b *Base) between(lo, hi float64) float64 {
	return lo + b.rng.Float64()*(hi-lo)
}

func (b *Base) chance(p float64) bool {
	return b.rng.Float64() < p
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clamp01(v float64) float64 {
	return clamp(v, 0, 1)
}

// normalizeAngle folds a into (-Pi, Pi].
func normalizeAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}
