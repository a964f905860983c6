package effects

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBloomFormsFollowHueZones(t *testing.T) {
	bl := NewBloom(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(1))
	require.Len(t, bl.forms, bloomForms)
	for i, f := range bl.forms {
		assert.GreaterOrEqual(t, f.hue, bloomZones[i][0]-10)
		assert.LessOrEqual(t, f.hue, bloomZones[i][1]+10)
		assert.LessOrEqual(t, f.size, bl.Width*0.15)
	}
	assert.Less(t, bl.forms[0].x, bl.forms[1].x)
	assert.Less(t, bl.forms[1].x, bl.forms[2].x)
}

func TestBloomAnglesStayNormalized(t *testing.T) {
	bl := NewBloom(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(2))
	for i := range bl.forms {
		bl.forms[i].speed = 0.3
	}
	for step := 0; step < 5000; step++ {
		bl.Update()
		for _, f := range bl.forms {
			require.Greater(t, f.rotation, -math.Pi)
			require.LessOrEqual(t, f.rotation, math.Pi)
			require.Greater(t, f.lag, -math.Pi)
			require.LessOrEqual(t, f.lag, math.Pi)
		}
	}
}

func TestBloomLagConverges(t *testing.T) {
	bl := NewBloom(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(3))
	f := &bl.forms[0]
	f.speed = 0
	f.rotation = 3
	f.lag = -3
	for step := 0; step < 400; step++ {
		bl.Update()
	}
	assert.InDelta(t, 0, normalizeAngle(f.rotation-f.lag), 1e-6)
	assert.InDelta(t, 3.0, f.rotation, 1e-9)
}

func TestBloomRingsUseTheirOwnAngle(t *testing.T) {
	bl := NewBloom(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(4))
	f := &bl.forms[1]
	f.rotation, f.lag = 1, 0.5

	inner := bl.petals(f, false)
	outer := bl.petals(f, true)
	require.Len(t, inner, bloomInnerPetals)
	require.Len(t, outer, bloomOuterPetals)
	assert.Equal(t, 1.0, inner[0].angle)
	assert.Equal(t, 0.5, outer[0].angle)
	assert.InDelta(t, 0.5+2*math.Pi/bloomOuterPetals, outer[1].angle, 1e-12)
}
