package effects

import (
	"math"
	"math/rand/v2"
)

const (
	bloomForms       = 3
	bloomInnerPetals = 6
	bloomOuterPetals = 10
	bloomLag         = 0.05
	bloomFilaments   = 14
)

// Hue bands run cool to warm from left to right.
var bloomZones = [bloomForms][2]float64{{190, 230}, {280, 320}, {10, 40}}

type bloomForm struct {
	x, y     float64
	hue      float64
	size     float64
	rotation float64
	lag      float64
	speed    float64
	phases   [bloomInnerPetals + bloomOuterPetals]float64
}

type petal struct {
	angle  float64
	length float64
	width  float64
}

// Bloom draws three mandala-like flowers. The outer petal ring trails the
// inner ring's rotation, which gives a visible twist as the flower turns.
type Bloom struct {
	Base
	forms []bloomForm
}

// NewBloom creates the flowers for s.
func NewBloom(s Surface, rng *rand.Rand) *Bloom {
	bl := &Bloom{Base: newBase(s, rng)}
	bl.generate()
	return bl
}

func (bl *Bloom) ID() ID { return BloomID }

func (bl *Bloom) Resize(width, height int) {
	bl.setSize(width, height)
	bl.generate()
}

func (bl *Bloom) generate() {
	bl.forms = make([]bloomForm, bloomForms)
	for i := range bl.forms {
		f := &bl.forms[i]
		zone := bloomZones[i]
		f.x = bl.Width * (0.2 + 0.3*float64(i))
		f.y = bl.Height * (0.5 + bl.between(-0.05, 0.05))
		f.hue = bl.between(zone[0], zone[1]) + bl.between(-10, 10)
		f.size = math.Min(bl.between(40, 60)*bl.Scale, bl.Width*0.15)
		f.rotation = bl.between(0, 2*math.Pi)
		f.lag = f.rotation
		f.speed = bl.between(0.002, 0.006)
		if bl.chance(0.5) {
			f.speed = -f.speed
		}
		for k := range f.phases {
			f.phases[k] = bl.between(0, 2*math.Pi)
		}
	}
}

func (bl *Bloom) Update() {
	bl.advance()
	for i := range bl.forms {
		f := &bl.forms[i]
		f.rotation = normalizeAngle(f.rotation + f.speed)
		f.lag = normalizeAngle(f.lag + normalizeAngle(f.rotation-f.lag)*bloomLag)
	}
}

// petals derives one ring of petals for the current frame.
func (bl *Bloom) petals(f *bloomForm, outer bool) []petal {
	count, reach, width, rot, offset := bloomInnerPetals, 0.6, 0.22, f.rotation, 0
	if outer {
		count, reach, width, rot, offset = bloomOuterPetals, 1.0, 0.2, f.lag, bloomInnerPetals
	}
	ring := make([]petal, count)
	for i := range ring {
		breathe := 1 + 0.08*math.Sin(bl.Time*2+f.phases[offset+i])
		ring[i] = petal{
			angle:  rot + float64(i)*2*math.Pi/float64(count),
			length: f.size * reach * breathe,
			width:  f.size * width,
		}
	}
	return ring
}

func (bl *Bloom) Render() {
	cv := bl.cv()
	bg := cv.CreateLinearGradient(0, 0, 0, bl.Height)
	bg.AddColorStop(0, "#0d1021")
	bg.AddColorStop(1, "#1f1030")
	cv.SetFillStyle(bg)
	cv.FillRect(0, 0, bl.Width, bl.Height)

	for i := range bl.forms {
		f := &bl.forms[i]
		if f.size <= 0 {
			continue
		}
		bl.drawRing(f, bl.petals(f, true), 0)
		bl.drawRing(f, bl.petals(f, false), 15)
		bl.drawCore(f)
	}
}

func (bl *Bloom) drawRing(f *bloomForm, ring []petal, hueShift float64) {
	cv := bl.cv()
	for _, p := range ring {
		cv.Save()
		cv.Translate(f.x, f.y)
		cv.Rotate(p.angle)

		g := cv.CreateLinearGradient(0, 0, 0, -p.length)
		g.AddColorStop(0, hsla(f.hue+hueShift, 0.85, 0.52, 0.95))
		g.AddColorStop(1, hsla(f.hue+hueShift, 0.6, 0.92, 0.35))
		cv.SetFillStyle(g)

		cv.BeginPath()
		cv.MoveTo(0, 0)
		cv.QuadraticCurveTo(p.width, -p.length*0.5, 0, -p.length)
		cv.QuadraticCurveTo(-p.width, -p.length*0.5, 0, 0)
		cv.ClosePath()
		cv.Fill()

		cv.SetStrokeStyle(rgba(255, 255, 255, 0.45))
		cv.SetLineWidth(math.Max(0.5, bl.Scale))
		cv.Stroke()
		cv.Restore()
	}
}

func (bl *Bloom) drawCore(f *bloomForm) {
	cv := bl.cv()
	r := f.size * 0.16

	core := cv.CreateRadialGradient(f.x-r*0.3, f.y-r*0.3, r*0.1, f.x, f.y, r)
	core.AddColorStop(0, hsla(f.hue+40, 0.9, 0.8, 1))
	core.AddColorStop(1, hsla(f.hue+20, 0.8, 0.35, 1))
	cv.SetFillStyle(core)
	cv.BeginPath()
	cv.Arc(f.x, f.y, r, 0, 2*math.Pi, false)
	cv.Fill()

	cv.SetStrokeStyle(hsla(f.hue+50, 0.9, 0.85, 0.8))
	cv.SetLineWidth(math.Max(0.5, 0.7*bl.Scale))
	for i := 0; i < bloomFilaments; i++ {
		a := f.rotation*1.5 + float64(i)*2*math.Pi/bloomFilaments
		reach := r * (1.6 + 0.3*math.Sin(bl.Time*3+float64(i)))
		ex, ey := f.x+math.Cos(a)*reach, f.y+math.Sin(a)*reach
		cv.BeginPath()
		cv.MoveTo(f.x+math.Cos(a)*r*0.8, f.y+math.Sin(a)*r*0.8)
		cv.LineTo(ex, ey)
		cv.Stroke()

		cv.SetFillStyle(hsla(f.hue+60, 1, 0.9, 0.9))
		cv.BeginPath()
		cv.Arc(ex, ey, math.Max(0.6, 1.2*bl.Scale), 0, 2*math.Pi, false)
		cv.Fill()
	}
}
