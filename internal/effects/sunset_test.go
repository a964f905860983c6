package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSunsetCloudsAreDeterministic(t *testing.T) {
	s := sizedSurface{640, 360}
	a := NewSunsetWithSeed(s, DefaultCloudSeed)
	b := NewSunset(s, testRand(99))
	for i := 0; i < 250; i++ {
		a.Update()
		b.Update()
	}
	require.Equal(t, a.clouds(), b.clouds())

	other := NewSunsetWithSeed(s, 8)
	for i := 0; i < 250; i++ {
		other.Update()
	}
	assert.NotEqual(t, a.clouds(), other.clouds())
}

func TestSunsetCloudsDriftAndWrap(t *testing.T) {
	su := NewSunsetWithSeed(sizedSurface{ReferenceWidth, ReferenceHeight}, DefaultCloudSeed)
	margin := 200 * su.Scale
	for i := 0; i < 5000; i++ {
		su.Update()
		if i%50 != 0 {
			continue
		}
		for _, blob := range su.clouds() {
			// Blob offsets reach half a cluster width beyond the centre.
			require.GreaterOrEqual(t, blob.x, -margin/2-70*su.Scale)
			require.LessOrEqual(t, blob.x, su.Width+margin/2+70*su.Scale)
		}
	}
}

func TestSunsetCloudCount(t *testing.T) {
	su := NewSunset(sizedSurface{ReferenceWidth, ReferenceHeight}, nil)
	assert.Equal(t, 5, su.cloudCount())
	su.Resize(3840, 2160)
	assert.Equal(t, 12, su.cloudCount())
	su.Resize(1, 1)
	assert.Equal(t, 3, su.cloudCount())
}

func TestHash01Range(t *testing.T) {
	for n := uint32(0); n < 10000; n++ {
		v := hash01(DefaultCloudSeed, n)
		require.GreaterOrEqual(t, v, 0.0)
		require.Less(t, v, 1.0)
	}
	assert.NotEqual(t, hash01(1, 1), hash01(2, 1))
}
