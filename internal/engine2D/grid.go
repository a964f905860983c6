package engine2D

import "math"

type ScalingMode string

const (
	ScaleFit  ScalingMode = "fit"
	ScaleFill ScalingMode = "fill"
)

// Viewport maps content of a fixed size onto the screen, centred.
type Viewport struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// NewViewport fits (or fills) content into the screen, keeping the aspect.
func NewViewport(contentW, contentH, screenW, screenH int, mode ScalingMode) Viewport {
	if contentW <= 0 || contentH <= 0 {
		return Viewport{}
	}
	scaleW := float64(screenW) / float64(contentW)
	scaleH := float64(screenH) / float64(contentH)

	var v Viewport
	if mode == ScaleFill {
		v.Scale = math.Max(scaleW, scaleH)
	} else {
		v.Scale = math.Min(scaleW, scaleH)
	}
	v.OffsetX = (float64(screenW) - float64(contentW)*v.Scale) / 2
	v.OffsetY = (float64(screenH) - float64(contentH)*v.Scale) / 2
	return v
}

// ToContent converts a screen position into content coordinates.
func (v Viewport) ToContent(x, y float64) (float64, float64) {
	if v.Scale == 0 {
		return 0, 0
	}
	return (x - v.OffsetX) / v.Scale, (y - v.OffsetY) / v.Scale
}

// Tile is one preview slot in screen pixels. The caption band sits below
// the tile and is not part of it.
type Tile struct {
	Index      int
	X, Y, W, H float64
	CaptionH   float64
}

func (t Tile) Contains(x, y float64) bool {
	return x >= t.X && x < t.X+t.W && y >= t.Y && y < t.Y+t.H+t.CaptionH
}

// Grid lays preview tiles out in rows at their design size, then scales the
// whole block to fit the window.
type Grid struct {
	Columns  int
	TileW    int
	TileH    int
	Gap      int
	CaptionH int
}

func (g Grid) columns(count int) int {
	return max(1, min(g.Columns, count))
}

// ContentSize is the unscaled size of a grid holding count tiles.
func (g Grid) ContentSize(count int) (int, int) {
	if count <= 0 {
		return 0, 0
	}
	cols := g.columns(count)
	rows := (count + cols - 1) / cols
	w := cols*g.TileW + (cols+1)*g.Gap
	h := rows*(g.TileH+g.CaptionH) + (rows+1)*g.Gap
	return w, h
}

// Layout returns count tiles in row-major order scaled into the screen.
func (g Grid) Layout(count, screenW, screenH int) []Tile {
	if count <= 0 || screenW <= 0 || screenH <= 0 {
		return nil
	}
	cols := g.columns(count)
	contentW, contentH := g.ContentSize(count)
	v := NewViewport(contentW, contentH, screenW, screenH, ScaleFit)

	tiles := make([]Tile, count)
	for i := range tiles {
		col, row := i%cols, i/cols
		x := g.Gap + col*(g.TileW+g.Gap)
		y := g.Gap + row*(g.TileH+g.CaptionH+g.Gap)
		tiles[i] = Tile{
			Index:    i,
			X:        v.OffsetX + float64(x)*v.Scale,
			Y:        v.OffsetY + float64(y)*v.Scale,
			W:        float64(g.TileW) * v.Scale,
			H:        float64(g.TileH) * v.Scale,
			CaptionH: float64(g.CaptionH) * v.Scale,
		}
	}
	return tiles
}

// HitTest returns the index of the tile under (x, y), or -1.
func HitTest(tiles []Tile, x, y float64) int {
	for _, t := range tiles {
		if t.Contains(x, y) {
			return t.Index
		}
	}
	return -1
}
