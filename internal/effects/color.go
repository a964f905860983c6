package effects

import (
	"fmt"
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// hsla builds a canvas colour from hue in degrees and saturation,
// lightness and alpha in [0, 1].
func hsla(h, s, l, a float64) string {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	r, g, b := colorful.Hsl(h, clamp01(s), clamp01(l)).Clamped().RGB255()
	return rgba(r, g, b, a)
}

// rgba formats #rrggbbaa. The canvas parses only hex strings as colours;
// anything else is loaded as an image pattern.
func rgba(r, g, b uint8, a float64) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", r, g, b, uint8(math.Round(clamp01(a)*255)))
}

// mix blends two hex colours in Lab space.
func mix(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return from
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return from
	}
	return a.BlendLab(b, clamp01(t)).Clamped().Hex()
}
