package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const boundsEps = 1e-9

func within(t *testing.T, v, lo, hi float64, what string) {
	t.Helper()
	if v < lo-boundsEps || v > hi+boundsEps {
		t.Errorf("%s = %v outside [%v, %v]", what, v, lo, hi)
	}
}

// generationBounds checks that every entity of e sits where its generator
// places entities on the current surface size.
var generationBounds = map[ID]func(t *testing.T, e Effect){
	MosaicID: func(t *testing.T, e Effect) {
		m := e.(*Mosaic)
		within(t, m.cell, math.Max(mosaicMinCell, (mosaicCellBase-mosaicCellSpread)*m.Scale), math.Max(mosaicMinCell, (mosaicCellBase+mosaicCellSpread)*m.Scale), "cell")
		require.Len(t, m.nodes, m.cols*m.rows)
		for j := 0; j < m.rows; j++ {
			for i := 0; i < m.cols; i++ {
				n := m.node(i, j)
				within(t, n.baseX, (float64(i-mosaicMargin)-mosaicJitter)*m.cell, (float64(i-mosaicMargin)+mosaicJitter)*m.cell, "node x")
				within(t, n.baseY, (float64(j-mosaicMargin)-mosaicJitter)*m.cell, (float64(j-mosaicMargin)+mosaicJitter)*m.cell, "node y")
				within(t, n.amplitude, 4*m.Scale, 14*m.Scale, "amplitude")
			}
		}
	},
	SmokeID: func(t *testing.T, e Effect) {
		sm := e.(*Smoke)
		for _, p := range sm.particles {
			within(t, p.x, 0, sm.Width, "smoke x")
			within(t, p.y, 0, sm.Height, "smoke y")
			within(t, p.radius, 20*sm.Scale, 50*sm.Scale, "smoke radius")
			within(t, p.opacity, 0.2, 0.5, "smoke opacity")
		}
	},
	LightShadeID: func(t *testing.T, e Effect) {
		ls := e.(*LightShade)
		for _, p := range ls.pools {
			within(t, p.x, 0, ls.Width, "pool x")
			within(t, p.y, 0, ls.Height, "pool y")
			within(t, p.radius, 60*ls.Scale, 140*ls.Scale, "pool radius")
		}
	},
	LanternsID: func(t *testing.T, e Effect) {
		l := e.(*Lanterns)
		for _, lt := range l.lanterns {
			within(t, lt.baseX, 0, l.Width, "lantern base x")
			within(t, lt.x, lt.baseX-lt.swayAmp, lt.baseX+lt.swayAmp, "lantern x")
			within(t, lt.y, 0, l.Height, "lantern y")
			within(t, lt.depth, 0, 1, "lantern depth")
		}
		for _, b := range l.branches {
			within(t, b.depth, branchMinDepth, branchMaxDepth, "branch depth")
			within(t, b.from.x, 0, l.Width, "branch root x")
			within(t, b.from.y, 0.05*l.Height, 0.7*l.Height, "branch root y")
			within(t, b.to.x, 0, l.Width, "branch tip x")
		}
	},
	SunsetID: func(t *testing.T, e Effect) {
		su := e.(*Sunset)
		margin := 200 * su.Scale
		halfWidth := 70 * su.Scale
		for _, c := range su.clouds() {
			within(t, c.x, -margin/2-halfWidth, su.Width+margin/2+halfWidth, "cloud x")
			within(t, c.y, su.Height*0.08-halfWidth*0.25, su.Height*0.48+halfWidth*0.25, "cloud y")
			within(t, c.radius, 14*su.Scale, 30*su.Scale, "cloud radius")
		}
	},
	BloomID: func(t *testing.T, e Effect) {
		bl := e.(*Bloom)
		require.Len(t, bl.forms, bloomForms)
		for i, f := range bl.forms {
			assert.InDelta(t, bl.Width*(0.2+0.3*float64(i)), f.x, 1e-9)
			within(t, f.y, bl.Height*0.45, bl.Height*0.55, "bloom y")
			within(t, f.size, 0, bl.Width*0.15, "bloom size")
			within(t, f.hue, bloomZones[i][0]-10, bloomZones[i][1]+10, "bloom hue")
		}
	},
	StreetsID: func(t *testing.T, e Effect) {
		st := e.(*Streets)
		for _, v := range st.vehicles {
			within(t, v.lane, 0.45, 0.95, "vehicle lane")
			within(t, v.phase, 0, 2, "vehicle phase")
		}
		for _, f := range st.facades {
			within(t, f.near, 0, 1, "facade near")
			within(t, f.far, 0, f.near, "facade far")
			within(t, f.height, 0.55, 0.95, "facade height")
		}
	},
	UrbanityID: func(t *testing.T, e Effect) {
		u := e.(*Urbanity)
		for _, b := range append(append([]building(nil), u.buildings...), u.far...) {
			within(t, b.x, 0, u.Width, "building x")
			within(t, b.h, 0.12*u.Height, 0.92*u.Height, "building height")
			for _, w := range b.windows {
				within(t, w.x, b.x, b.x+b.w, "window x")
				within(t, w.y, u.Height-b.h, u.Height, "window y")
			}
		}
		for _, s := range u.stars {
			within(t, s.x, 0, u.Width, "star x")
			within(t, s.y, 0, u.Height*0.6, "star y")
		}
	},
}

func TestResizeKeepsEntitiesInGenerationBounds(t *testing.T) {
	for _, id := range IDs() {
		check, ok := generationBounds[id]
		require.True(t, ok, "no bounds for %s", id)

		t.Run(string(id), func(t *testing.T) {
			e := Create(id, sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(21))
			for i := 0; i < 20; i++ {
				e.Update()
			}
			for _, size := range testSizes {
				e.Resize(size[0], size[1])
				check(t, e)

				// A same-size resize regenerates within the same ranges.
				e.Resize(size[0], size[1])
				check(t, e)
			}
		})
	}
}
