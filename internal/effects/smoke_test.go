package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeDensityFollowsArea(t *testing.T) {
	sm := NewSmoke(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(1))
	assert.Len(t, sm.particles, 50)

	sm.Resize(1920, 1080)
	assert.Len(t, sm.particles, 80)

	sm.Resize(10, 10)
	assert.Len(t, sm.particles, 20)
}

func TestSmokeParticlesStartInsideSurface(t *testing.T) {
	for _, size := range testSizes {
		sm := NewSmoke(sizedSurface{size[0], size[1]}, testRand(2))
		for _, p := range sm.particles {
			require.GreaterOrEqual(t, p.x, 0.0)
			require.LessOrEqual(t, p.x, sm.Width)
			require.GreaterOrEqual(t, p.y, 0.0)
			require.LessOrEqual(t, p.y, sm.Height)
			require.Less(t, p.vy, 0.0)
		}
	}
}

func TestSmokeRecyclesBelowBottomEdge(t *testing.T) {
	sm := NewSmoke(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(3))
	for step := 0; step < 2000; step++ {
		sm.Update()
		for _, p := range sm.particles {
			require.GreaterOrEqual(t, p.y, -p.radius)
			require.LessOrEqual(t, p.y, sm.Height+p.radius)
			require.GreaterOrEqual(t, p.opacity, smokeMinAlpha)
			require.LessOrEqual(t, p.opacity, 0.5)
		}
	}
}

func TestSmokeFadesAndGrows(t *testing.T) {
	sm := NewSmoke(sizedSurface{ReferenceWidth, ReferenceHeight}, testRand(4))
	before := sm.particles[0]
	sm.Update()
	after := sm.particles[0]
	if after.y < before.y {
		assert.InDelta(t, before.opacity*smokeFade, after.opacity, 1e-12)
		assert.InDelta(t, before.radius*smokeGrow, after.radius, 1e-12)
	}
}
