// Package surface provides the raster drawing target effects render into.
//
// A Surface wraps a canvas backed by the pure Go software rasterizer, so
// effects can be rendered headless (tests, clip capture, export) and the
// window host only has to upload the resulting pixels.
package surface

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/backend/softwarebackend"
	xdraw "golang.org/x/image/draw"
)

type Surface struct {
	backend *softwarebackend.SoftwareBackend
	cv      *canvas.Canvas
	width   int
	height  int
}

// New allocates a surface. Dimensions below one pixel are raised to one.
func New(width, height int) *Surface {
	s := &Surface{}
	s.allocate(width, height)
	return s
}

func (s *Surface) allocate(width, height int) {
	s.width = max(width, 1)
	s.height = max(height, 1)
	s.backend = softwarebackend.New(s.width, s.height)
	s.cv = canvas.New(s.backend)
}

func (s *Surface) Width() int             { return s.width }
func (s *Surface) Height() int            { return s.height }
func (s *Surface) Canvas() *canvas.Canvas { return s.cv }

// Image returns the live backing store. It changes on every render.
func (s *Surface) Image() *image.RGBA {
	return s.backend.Image
}

// Resize reallocates the backing store. The content is discarded.
func (s *Surface) Resize(width, height int) {
	if max(width, 1) == s.width && max(height, 1) == s.height {
		return
	}
	s.allocate(width, height)
}

// Clear fills the whole surface with c.
func (s *Surface) Clear(c color.Color) {
	img := s.Image()
	draw.Draw(img, img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Snapshot copies the current pixels.
func (s *Surface) Snapshot() *image.RGBA {
	src := s.Image()
	out := image.NewRGBA(src.Bounds())
	copy(out.Pix, src.Pix)
	return out
}

// BlitTo draws the whole surface scaled into the rectangle (x, y, w, h) of
// dst. Previews render oversized and are downsampled this way.
func (s *Surface) BlitTo(dst *Surface, x, y, w, h int) {
	rect := image.Rect(x, y, x+w, y+h)
	xdraw.ApproxBiLinear.Scale(dst.Image(), rect, s.Image(), s.Image().Bounds(), xdraw.Over, nil)
}

// Downsample returns a w×h copy of the surface.
func (s *Surface) Downsample(w, h int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	xdraw.CatmullRom.Scale(out, out.Bounds(), s.Image(), s.Image().Bounds(), xdraw.Src, nil)
	return out
}
