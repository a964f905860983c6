package effects

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tfriedel6/canvas"

	"linux-visualgallery/internal/surface"
)

// sizedSurface satisfies Surface for tests that never render.
type sizedSurface struct{ w, h int }

func (s sizedSurface) Width() int             { return s.w }
func (s sizedSurface) Height() int            { return s.h }
func (s sizedSurface) Canvas() *canvas.Canvas { return nil }

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

var testSizes = [][2]int{
	{1, 1},
	{64, 48},
	{ReferenceWidth, ReferenceHeight},
	{640, 360},
	{1920, 1080},
	{3840, 2160},
}

func TestScaleMatchesFormula(t *testing.T) {
	assert.InDelta(t, 1.0, Scale(ReferenceWidth, ReferenceHeight), 1e-12)
	assert.InDelta(t, math.Sqrt(2073600.0/56000.0), Scale(1920, 1080), 1e-12)
	assert.InDelta(t, 6.085, Scale(1920, 1080), 1e-3)
	assert.Zero(t, Scale(0, 100))
	assert.Zero(t, Scale(100, -1))
}

func TestScaleIsMonotonicInArea(t *testing.T) {
	prevArea, prev := 0, 0.0
	for w := 0; w <= 2000; w += 50 {
		h := w / 2
		area := w * h
		s := Scale(w, h)
		require.GreaterOrEqual(t, area, prevArea)
		require.GreaterOrEqual(t, s, prev, "scale dropped at %dx%d", w, h)
		prevArea, prev = area, s
	}
}

func TestDensityClamps(t *testing.T) {
	assert.Equal(t, 50, Density(20, 80, 50, 1))
	assert.Equal(t, 80, Density(20, 80, 50, Scale(1920, 1080)))
	assert.Equal(t, 20, Density(20, 80, 50, 0))
	assert.Equal(t, 25, Density(20, 80, 50, 0.5))
}

func TestNormalizeAngle(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{0, 0},
		{math.Pi, math.Pi},
		{-math.Pi, math.Pi},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
		{0.25, 0.25},
	}
	for _, c := range cases {
		got := normalizeAngle(c.in)
		assert.InDelta(t, c.want, got, 1e-9, "normalizeAngle(%v)", c.in)
		assert.Greater(t, got, -math.Pi)
		assert.LessOrEqual(t, got, math.Pi+1e-12)
	}
}

func TestUpdateAdvancesFixedStep(t *testing.T) {
	for _, id := range IDs() {
		e := Create(id, sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(1))
		for i := 0; i < 30; i++ {
			e.Update()
		}
		base := baseOf(t, e)
		assert.InDelta(t, 30*Step, base.Time, 1e-9, string(id))
	}
}

func TestResizeRecomputesScale(t *testing.T) {
	for _, id := range IDs() {
		e := Create(id, sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(2))
		e.Resize(1920, 1080)
		base := baseOf(t, e)
		assert.Equal(t, 1920.0, base.Width, string(id))
		assert.Equal(t, 1080.0, base.Height, string(id))
		assert.InDelta(t, Scale(1920, 1080), base.Scale, 1e-12, string(id))
	}
}

// TestRenderIsIdempotent renders twice without an update in between and
// expects identical pixels.
func TestRenderIsIdempotent(t *testing.T) {
	for _, id := range IDs() {
		t.Run(string(id), func(t *testing.T) {
			s := surface.New(140, 100)
			e := Create(id, s, testRand(3))
			for i := 0; i < 5; i++ {
				e.Update()
			}
			e.Render()
			first := s.Snapshot()
			e.Render()
			second := s.Snapshot()
			require.Equal(t, first.Pix, second.Pix)
		})
	}
}

func baseOf(t *testing.T, e Effect) *Base {
	t.Helper()
	switch v := e.(type) {
	case *Mosaic:
		return &v.Base
	case *Smoke:
		return &v.Base
	case *LightShade:
		return &v.Base
	case *Lanterns:
		return &v.Base
	case *Sunset:
		return &v.Base
	case *Bloom:
		return &v.Base
	case *Streets:
		return &v.Base
	case *Urbanity:
		return &v.Base
	}
	t.Fatalf("unexpected effect type %T", e)
	return nil
}
