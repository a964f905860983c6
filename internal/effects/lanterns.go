package effects

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
)

const (
	lanternMinCount   = 8
	lanternMaxCount   = 40
	lanternBaseCount  = 14
	branchMinCount    = 3
	branchMaxCount    = 8
	branchBaseCount   = 4
	branchMinDepth    = 0.15
	branchMaxDepth    = 0.85
	lanternBodyAspect = 1.25
)

type lantern struct {
	x, y      float64
	baseX     float64
	radius    float64
	rise      float64
	swayAmp   float64
	swaySpeed float64
	swayPhase float64
	hue       float64
	flicker   float64
	depth     float64
}

type point struct{ x, y float64 }

type twig struct {
	from, ctrl, to point
	width          float64
}

// branch is an occluder with a fixed paint depth.
type branch struct {
	depth float64
	from  point
	ctrl  point
	to    point
	width float64
	twigs []twig
	buds  []point
}

type drawableKind int

const (
	drawBranch drawableKind = iota
	drawLantern
)

type drawable struct {
	depth float64
	kind  drawableKind
	index int
}

// Lanterns floats paper lanterns upward through a canopy of branches.
// Lanterns and branches share one paint order sorted by depth, so a lantern
// can pass behind one branch and in front of another.
type Lanterns struct {
	Base
	lanterns []lantern
	branches []branch
}

// NewLanterns creates lanterns and branches for s.
func NewLanterns(s Surface, rng *rand.Rand) *Lanterns {
	l := &Lanterns{Base: newBase(s, rng)}
	l.generate()
	return l
}

func (l *Lanterns) ID() ID { return LanternsID }

func (l *Lanterns) Resize(width, height int) {
	l.setSize(width, height)
	l.generate()
}

func (l *Lanterns) generate() {
	l.branches = make([]branch, Density(branchMinCount, branchMaxCount, branchBaseCount, l.Scale))
	for i := range l.branches {
		l.branches[i] = l.newBranch(i%2 == 0)
	}

	l.lanterns = make([]lantern, Density(lanternMinCount, lanternMaxCount, lanternBaseCount, l.Scale))
	for i := range l.lanterns {
		lt := &l.lanterns[i]
		l.spawn(lt)
		lt.y = l.between(0, l.Height)
		lt.depth = l.depthAt(lt.y)
	}
}

func (l *Lanterns) newBranch(fromLeft bool) branch {
	y := l.between(0.05, 0.7) * l.Height
	reach := l.between(0.3, 0.7) * l.Width
	from := point{0, y}
	to := point{reach, y + l.between(-0.15, 0.2)*l.Height}
	if !fromLeft {
		from.x = l.Width
		to.x = l.Width - reach
	}
	ctrl := point{
		x: (from.x + to.x) / 2,
		y: math.Min(from.y, to.y) - l.between(0.05, 0.2)*l.Height,
	}

	b := branch{
		depth: l.between(branchMinDepth, branchMaxDepth),
		from:  from,
		ctrl:  ctrl,
		to:    to,
		width: l.between(4, 9) * l.Scale,
	}

	twigs := 2 + l.rng.IntN(3)
	for k := 0; k < twigs; k++ {
		t := l.between(0.3, 0.9)
		base := quadPoint(from, ctrl, to, t)
		length := l.between(20, 45) * l.Scale
		angle := l.between(-math.Pi*0.9, -math.Pi*0.1)
		end := point{base.x + math.Cos(angle)*length, base.y + math.Sin(angle)*length}
		b.twigs = append(b.twigs, twig{
			from:  base,
			ctrl:  point{(base.x+end.x)/2 + l.between(-8, 8)*l.Scale, (base.y+end.y)/2 + l.between(-8, 8)*l.Scale},
			to:    end,
			width: b.width * l.between(0.3, 0.5),
		})
		b.buds = append(b.buds, end)
	}
	return b
}

func quadPoint(a, c, b point, t float64) point {
	u := 1 - t
	return point{
		x: u*u*a.x + 2*u*t*c.x + t*t*b.x,
		y: u*u*a.y + 2*u*t*c.y + t*t*b.y,
	}
}

// spawn gives lt a fresh horizontal track just below the bottom edge.
func (l *Lanterns) spawn(lt *lantern) {
	lt.radius = l.between(8, 16) * l.Scale
	lt.baseX = l.between(0, l.Width)
	lt.y = l.Height + lt.radius*3
	lt.rise = l.between(0.25, 0.7) * l.Scale
	lt.swayAmp = l.between(6, 18) * l.Scale
	lt.swaySpeed = l.between(0.01, 0.03)
	lt.swayPhase = l.between(0, 2*math.Pi)
	lt.hue = l.between(15, 45)
	lt.flicker = l.between(0, 2*math.Pi)
	lt.x = lt.baseX + math.Sin(lt.swayPhase)*lt.swayAmp
	lt.depth = l.depthAt(lt.y)
}

// depthAt maps a vertical position to paint depth: lower is nearer.
func (l *Lanterns) depthAt(y float64) float64 {
	if l.Height <= 0 {
		return 1
	}
	return clamp01(y / l.Height)
}

func (l *Lanterns) Update() {
	l.advance()
	for i := range l.lanterns {
		lt := &l.lanterns[i]
		lt.y -= lt.rise
		lt.swayPhase += lt.swaySpeed
		lt.x = lt.baseX + math.Sin(lt.swayPhase)*lt.swayAmp
		if lt.y < -lt.radius*3 {
			l.spawn(lt)
		}
		lt.depth = l.depthAt(lt.y)
	}
}

// paintOrder merges branches and lanterns into one list sorted by depth.
// Ties draw the branch first.
func (l *Lanterns) paintOrder() []drawable {
	order := make([]drawable, 0, len(l.branches)+len(l.lanterns))
	for i := range l.branches {
		order = append(order, drawable{depth: l.branches[i].depth, kind: drawBranch, index: i})
	}
	for i := range l.lanterns {
		order = append(order, drawable{depth: l.lanterns[i].depth, kind: drawLantern, index: i})
	}
	slices.SortStableFunc(order, func(a, b drawable) int {
		if c := cmp.Compare(a.depth, b.depth); c != 0 {
			return c
		}
		return cmp.Compare(a.kind, b.kind)
	})
	return order
}

func (l *Lanterns) Render() {
	cv := l.cv()
	sky := cv.CreateLinearGradient(0, 0, 0, l.Height)
	sky.AddColorStop(0, "#070b1f")
	sky.AddColorStop(0.6, "#161233")
	sky.AddColorStop(1, "#2a1836")
	cv.SetFillStyle(sky)
	cv.FillRect(0, 0, l.Width, l.Height)

	for _, d := range l.paintOrder() {
		switch d.kind {
		case drawBranch:
			l.drawBranch(&l.branches[d.index])
		case drawLantern:
			l.drawLantern(&l.lanterns[d.index])
		}
	}
}

func (l *Lanterns) drawBranch(b *branch) {
	cv := l.cv()
	// Far branches fade into the night sky.
	alpha := 0.55 + 0.45*b.depth
	bark := rgba(18, 12, 10, alpha)

	cv.SetStrokeStyle(bark)
	cv.SetLineWidth(b.width)
	cv.BeginPath()
	cv.MoveTo(b.from.x, b.from.y)
	cv.QuadraticCurveTo(b.ctrl.x, b.ctrl.y, b.to.x, b.to.y)
	cv.Stroke()

	for _, tw := range b.twigs {
		cv.SetLineWidth(tw.width)
		cv.BeginPath()
		cv.MoveTo(tw.from.x, tw.from.y)
		cv.QuadraticCurveTo(tw.ctrl.x, tw.ctrl.y, tw.to.x, tw.to.y)
		cv.Stroke()
	}

	cv.SetFillStyle(rgba(40, 22, 30, alpha))
	for _, bud := range b.buds {
		cv.BeginPath()
		cv.Ellipse(bud.x, bud.y, 4*l.Scale, 2.5*l.Scale, 0.6, 0, 2*math.Pi, false)
		cv.Fill()
	}
}

func (l *Lanterns) drawLantern(lt *lantern) {
	r := lt.radius
	if r <= 0 {
		return
	}
	cv := l.cv()
	x, y := lt.x, lt.y
	ry := r * lanternBodyAspect
	glow := 0.85 + 0.15*math.Sin(l.Time*6+lt.flicker)
	swing := math.Sin(lt.swayPhase)

	spill := cv.CreateRadialGradient(x, y, 0, x, y, r*6)
	spill.AddColorStop(0, hsla(lt.hue, 0.9, 0.6, 0.12*glow))
	spill.AddColorStop(1, hsla(lt.hue, 0.9, 0.5, 0))
	cv.SetFillStyle(spill)
	cv.BeginPath()
	cv.Arc(x, y, r*6, 0, 2*math.Pi, false)
	cv.Fill()

	halo := cv.CreateRadialGradient(x, y, r*0.8, x, y, r*2.2)
	halo.AddColorStop(0, hsla(lt.hue+5, 1, 0.7, 0.35*glow))
	halo.AddColorStop(1, hsla(lt.hue, 1, 0.6, 0))
	cv.SetFillStyle(halo)
	cv.BeginPath()
	cv.Arc(x, y, r*2.2, 0, 2*math.Pi, false)
	cv.Fill()

	// Hot spot leans toward the side the lantern swings to.
	hx, hy := x-r*0.3+swing*r*0.15, y-r*0.2
	body := cv.CreateRadialGradient(hx, hy, r*0.1, x, y, r*1.3)
	body.AddColorStop(0, hsla(lt.hue+12, 1, 0.86*glow, 1))
	body.AddColorStop(0.5, hsla(lt.hue, 0.95, 0.58*glow, 1))
	body.AddColorStop(1, hsla(lt.hue-10, 0.9, 0.32, 1))
	cv.SetFillStyle(body)
	cv.BeginPath()
	cv.Ellipse(x, y, r, ry, 0, 0, 2*math.Pi, false)
	cv.Fill()

	// Ribs are meridians of the paper sphere seen from the side.
	cv.SetStrokeStyle(hsla(lt.hue-15, 0.8, 0.28, 0.28))
	cv.SetLineWidth(math.Max(0.5, 0.6*l.Scale))
	for k := -2; k <= 2; k++ {
		theta := float64(k)*math.Pi/6 + swing*0.3
		rx := math.Abs(math.Sin(theta)) * r
		if rx < 0.5 {
			cv.BeginPath()
			cv.MoveTo(x, y-ry)
			cv.LineTo(x, y+ry)
			cv.Stroke()
			continue
		}
		cv.BeginPath()
		cv.Ellipse(x, y, rx, ry, 0, 0, 2*math.Pi, false)
		cv.Stroke()
	}

	capW, capH := r*0.9, r*0.25
	cv.SetFillStyle("#3a1d12")
	cv.FillRect(x-capW/2, y-ry-capH*0.6, capW, capH)

	cv.SetStrokeStyle("#4a2616")
	cv.SetLineWidth(math.Max(0.8, 1.2*l.Scale))
	cv.BeginPath()
	cv.Ellipse(x, y+ry, r*0.4, r*0.12, 0, 0, 2*math.Pi, false)
	cv.Stroke()

	// Tassels trail the swing.
	angle := -swing * 0.35
	length := r * 1.2
	cv.SetStrokeStyle(hsla(lt.hue-5, 0.9, 0.42, 0.9))
	cv.SetLineWidth(math.Max(0.5, 0.8*l.Scale))
	for k := -1; k <= 1; k++ {
		sx := x + float64(k)*r*0.18
		sy := y + ry + r*0.1
		cv.BeginPath()
		cv.MoveTo(sx, sy)
		cv.LineTo(sx+math.Sin(angle)*length, sy+math.Cos(angle)*length)
		cv.Stroke()
	}
}
