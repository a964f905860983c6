package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreetsVehiclesAlternateDirection(t *testing.T) {
	st := NewStreets(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(1))
	require.Len(t, st.vehicles, 5)
	for i, v := range st.vehicles {
		if i%2 == 0 {
			assert.Equal(t, 1, v.dir)
		} else {
			assert.Equal(t, -1, v.dir)
		}
	}
	assert.Len(t, st.facades, 2*facadesPerSide)
}

func TestStreetsPhaseWraps(t *testing.T) {
	st := NewStreets(sizedSurface{640, 360}, testRand(2))
	for step := 0; step < 5000; step++ {
		st.Update()
		for _, v := range st.vehicles {
			require.GreaterOrEqual(t, v.phase, 0.0)
			require.Less(t, v.phase, 2.0)
		}
	}
}

func TestStreetsProjection(t *testing.T) {
	st := NewStreets(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(3))
	vx, vy := st.vanishing()
	assert.Equal(t, st.Width/2, vx)
	assert.Equal(t, vy, st.depthY(0))
	assert.Equal(t, st.Height, st.depthY(1))

	// Everything converges on the vanishing point at the horizon.
	assert.Equal(t, vx, st.project(0, vy))
	assert.Equal(t, vx, st.project(1, vy))
	// At the bottom edge normalised x spans the full width.
	assert.InDelta(t, 0, st.project(0, st.Height), 1e-9)
	assert.InDelta(t, st.Width, st.project(1, st.Height), 1e-9)
}

func TestStreetsFacadesRecede(t *testing.T) {
	st := NewStreets(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(4))
	for side := 0; side < 2; side++ {
		row := st.facades[side*facadesPerSide : (side+1)*facadesPerSide]
		assert.Equal(t, 1.0, row[0].near)
		for k, f := range row {
			assert.Less(t, f.far, f.near)
			if k > 0 {
				assert.Equal(t, row[k-1].far, f.near)
			}
		}
	}
}
