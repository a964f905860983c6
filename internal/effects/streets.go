package effects

import (
	"cmp"
	"math"
	"math/rand/v2"
	"slices"
)

const (
	streetHorizon  = 0.32
	streetRoadL    = 0.28
	streetRoadR    = 0.72
	streetWalkL    = 0.12
	streetWalkR    = 0.88
	streetDashes   = 14
	facadesPerSide = 4
)

type vehicle struct {
	lane  float64 // depth in (0, 1], 1 is the bottom of the surface
	phase float64 // in [0, 2)
	speed float64
	dir   int
	hue   float64
	tall  bool
}

// facade is a building front along one side of the street, spanning the
// depth range [near, far] of the perspective.
type facade struct {
	left     bool
	near     float64
	far      float64
	height   float64
	floors   int
	columns  int
	hue      float64
	awning   bool
	awningHu float64
	door     bool
}

// Streets is a single-point perspective street with shop fronts, a gate
// and cross traffic.
type Streets struct {
	Base
	vehicles []vehicle
	facades  []facade
}

// NewStreets creates the street scene for s.
func NewStreets(s Surface, rng *rand.Rand) *Streets {
	st := &Streets{Base: newBase(s, rng)}
	st.generate()
	return st
}

func (st *Streets) ID() ID { return StreetsID }

func (st *Streets) Resize(width, height int) {
	st.setSize(width, height)
	st.generate()
}

func (st *Streets) generate() {
	st.facades = st.facades[:0]
	for _, left := range []bool{true, false} {
		near := 1.0
		for k := 0; k < facadesPerSide; k++ {
			far := near * st.between(0.55, 0.75)
			st.facades = append(st.facades, facade{
				left:     left,
				near:     near,
				far:      far,
				height:   st.between(0.55, 0.95),
				floors:   3 + st.rng.IntN(4),
				columns:  3 + st.rng.IntN(3),
				hue:      st.between(10, 50),
				awning:   st.chance(0.6),
				awningHu: st.between(0, 360),
				door:     st.chance(0.7),
			})
			near = far
		}
	}

	n := Density(3, 8, 5, st.Scale)
	st.vehicles = make([]vehicle, n)
	for i := range st.vehicles {
		dir := 1
		if i%2 == 1 {
			dir = -1
		}
		st.vehicles[i] = vehicle{
			lane:  st.between(0.45, 0.95),
			phase: st.between(0, 2),
			speed: st.between(0.002, 0.006),
			dir:   dir,
			hue:   st.between(0, 360),
			tall:  st.chance(0.3),
		}
	}
}

func (st *Streets) Update() {
	st.advance()
	for i := range st.vehicles {
		v := &st.vehicles[i]
		v.phase = math.Mod(v.phase+v.speed, 2)
	}
}

func (st *Streets) vanishing() (float64, float64) {
	return st.Width / 2, st.Height * streetHorizon
}

// depthY converts a perspective depth t (0 at the horizon, 1 at the bottom)
// into a screen y.
func (st *Streets) depthY(t float64) float64 {
	_, vy := st.vanishing()
	return vy + t*(st.Height-vy)
}

// project maps a normalised horizontal position and a screen y to screen x.
// Positions converge on the vanishing point as y approaches the horizon.
func (st *Streets) project(nx, y float64) float64 {
	vx, vy := st.vanishing()
	span := st.Height - vy
	if span <= 0 {
		return vx
	}
	t := clamp01((y - vy) / span)
	return vx + (nx-0.5)*st.Width*t
}

func (st *Streets) Render() {
	cv := st.cv()
	w, h := st.Width, st.Height
	vx, vy := st.vanishing()

	sky := cv.CreateLinearGradient(0, 0, 0, vy)
	sky.AddColorStop(0, "#2b3a67")
	sky.AddColorStop(1, "#f2a65a")
	cv.SetFillStyle(sky)
	cv.FillRect(0, 0, w, vy+1)

	cv.SetFillStyle("#3b3a40")
	cv.FillRect(0, vy, w, h-vy)

	for i := range st.facades {
		st.drawFacade(&st.facades[i])
	}

	st.fillQuad(streetWalkL, streetRoadL, "#8d8a86")
	st.fillQuad(streetRoadR, streetWalkR, "#8d8a86")
	st.fillQuad(streetRoadL, streetRoadR, "#2c2c31")

	// Centre markings: spacing and width shrink toward the horizon.
	cv.SetFillStyle("#e9e3c9")
	for k := 0; k < streetDashes; k++ {
		t0 := 1 / (1 + float64(k)*0.45)
		t1 := t0 * 0.9
		y0, y1 := st.depthY(t0), st.depthY(t1)
		half0 := 0.006 * w * t0
		half1 := 0.006 * w * t1
		cv.BeginPath()
		cv.MoveTo(vx-half0, y0)
		cv.LineTo(vx+half0, y0)
		cv.LineTo(vx+half1, y1)
		cv.LineTo(vx-half1, y1)
		cv.ClosePath()
		cv.Fill()
	}

	st.drawGate()

	order := make([]int, len(st.vehicles))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		return cmp.Compare(st.vehicles[a].lane, st.vehicles[b].lane)
	})
	for _, i := range order {
		st.drawVehicle(&st.vehicles[i])
	}
}

// fillQuad fills the ground strip between two normalised positions from
// the horizon to the bottom edge.
func (st *Streets) fillQuad(from, to float64, fill string) {
	cv := st.cv()
	_, vy := st.vanishing()
	cv.SetFillStyle(fill)
	cv.BeginPath()
	cv.MoveTo(st.project(from, vy), vy)
	cv.LineTo(st.project(to, vy), vy)
	cv.LineTo(st.project(to, st.Height), st.Height)
	cv.LineTo(st.project(from, st.Height), st.Height)
	cv.ClosePath()
	cv.Fill()
}

func (st *Streets) drawFacade(f *facade) {
	cv := st.cv()
	nx := streetWalkL
	if !f.left {
		nx = streetWalkR
	}
	fullH := st.Height * f.height

	// Corner points of the wall at its near and far edges.
	at := func(t, up float64) (float64, float64) {
		y := st.depthY(t)
		return st.project(nx, y), y - fullH*t*up
	}
	quad := func(t0, t1, u0, u1 float64) {
		x0, y0 := at(t0, u0)
		x1, y1 := at(t1, u0)
		x2, y2 := at(t1, u1)
		x3, y3 := at(t0, u1)
		cv.BeginPath()
		cv.MoveTo(x0, y0)
		cv.LineTo(x1, y1)
		cv.LineTo(x2, y2)
		cv.LineTo(x3, y3)
		cv.ClosePath()
	}

	quad(f.near, f.far, 0, 1)
	cv.SetFillStyle(hsla(f.hue, 0.35, 0.42, 1))
	cv.Fill()
	cv.SetStrokeStyle(hsla(f.hue, 0.3, 0.25, 1))
	cv.SetLineWidth(math.Max(0.5, st.Scale))
	cv.Stroke()

	floorH := 1 / float64(f.floors)
	colW := (f.near - f.far) / float64(f.columns)
	for fl := 1; fl < f.floors; fl++ {
		for c := 0; c < f.columns; c++ {
			t0 := f.near - float64(c)*colW - colW*0.25
			t1 := t0 - colW*0.5
			u0 := float64(fl)*floorH + floorH*0.25
			u1 := u0 + floorH*0.5
			quad(t0, t1, u0, u1)
			cv.SetFillStyle(hsla(45, 0.6, 0.35+0.3*math.Mod(float64(fl*7+c*3), 5)/5, 1))
			cv.Fill()
		}
		quad(f.near, f.far, float64(fl)*floorH, float64(fl)*floorH)
		cv.Stroke()
	}

	if f.door {
		mid := (f.near + f.far) / 2
		quad(mid+colW*0.2, mid-colW*0.2, 0, floorH*0.8)
		cv.SetFillStyle("#2a1a12")
		cv.Fill()
	}
	if f.awning {
		quad(f.near, f.far, floorH*0.85, floorH)
		cv.SetFillStyle(hsla(f.awningHu, 0.7, 0.5, 0.95))
		cv.Fill()
	}
}

func (st *Streets) drawGate() {
	cv := st.cv()
	t := 0.35
	y := st.depthY(t)
	left, right := st.project(streetRoadL-0.04, y), st.project(streetRoadR+0.04, y)
	height := st.Height * 0.55 * t
	pillar := math.Max(1, (right-left)*0.06)

	cv.SetFillStyle("#8e1b1b")
	cv.FillRect(left-pillar/2, y-height, pillar, height)
	cv.FillRect(right-pillar/2, y-height, pillar, height)

	// Two lintels, the upper one with upturned ends.
	cv.FillRect(left-pillar, y-height*0.8, right-left+pillar*2, pillar*0.7)
	cv.BeginPath()
	cv.MoveTo(left-pillar*2, y-height-pillar*0.8)
	cv.QuadraticCurveTo((left+right)/2, y-height+pillar*0.6, right+pillar*2, y-height-pillar*0.8)
	cv.LineTo(right+pillar*2, y-height+pillar*0.2)
	cv.QuadraticCurveTo((left+right)/2, y-height+pillar*1.6, left-pillar*2, y-height+pillar*0.2)
	cv.ClosePath()
	cv.SetFillStyle("#5c1010")
	cv.Fill()

	sign := (right - left) * 0.18
	cv.SetFillStyle("#d4a017")
	cv.FillRect((left+right)/2-sign/2, y-height*0.98, sign, height*0.16)
}

func (st *Streets) drawVehicle(v *vehicle) {
	cv := st.cv()
	nx := v.phase - 0.5
	if v.dir < 0 {
		nx = 1.5 - v.phase
	}
	y := st.depthY(v.lane)
	x := st.project(nx, y)

	// Size follows perspective depth.
	length := 46 * st.Scale * v.lane
	height := 14 * st.Scale * v.lane
	if v.tall {
		height *= 1.6
	}
	if length <= 0 {
		return
	}
	wheel := height * 0.28

	cv.SetFillStyle(rgba(0, 0, 0, 0.3))
	cv.BeginPath()
	cv.Ellipse(x, y, length*0.55, wheel*0.8, 0, 0, 2*math.Pi, false)
	cv.Fill()

	bodyTop := y - wheel - height
	cv.SetFillStyle(hsla(v.hue, 0.65, 0.5, 1))
	cv.FillRect(x-length/2, bodyTop+height*0.4, length, height*0.6)
	cabin := length * 0.55
	if v.tall {
		cabin = length * 0.9
	}
	cv.FillRect(x-cabin/2, bodyTop, cabin, height*0.45)

	cv.SetFillStyle(rgba(190, 225, 255, 0.85))
	cv.FillRect(x-cabin/2+length*0.05, bodyTop+height*0.07, cabin-length*0.1, height*0.28)

	cv.SetFillStyle("#141414")
	for _, off := range []float64{-0.32, 0.32} {
		cv.BeginPath()
		cv.Arc(x+off*length, y-wheel, wheel, 0, 2*math.Pi, false)
		cv.Fill()
	}

	front := x + float64(v.dir)*length/2
	lamp := cv.CreateRadialGradient(front, bodyTop+height*0.65, 0, front, bodyTop+height*0.65, height)
	lamp.AddColorStop(0, rgba(255, 245, 200, 0.9))
	lamp.AddColorStop(1, rgba(255, 245, 200, 0))
	cv.SetFillStyle(lamp)
	cv.BeginPath()
	cv.Arc(front, bodyTop+height*0.65, height, 0, 2*math.Pi, false)
	cv.Fill()
}
