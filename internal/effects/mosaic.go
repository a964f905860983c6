package effects

import (
	"math"
	"math/rand/v2"
)

const (
	mosaicCellBase   = 36.0
	mosaicCellSpread = 24.0
	mosaicMinCell    = 4.0
	mosaicJitter     = 0.45
	mosaicMargin     = 2
)

type meshNode struct {
	baseX, baseY float64
	offX, offY   float64
	phaseX       float64
	phaseY       float64
	amplitude    float64
	speed        float64
}

func (n *meshNode) pos() (float64, float64) {
	return n.baseX + n.offX, n.baseY + n.offY
}

// Mosaic is an animated low-poly mesh. Nodes sit on a jittered grid that
// overhangs the surface by two cells on every side and wobble around their
// base positions; every quad is split into two triangles.
type Mosaic struct {
	Base
	cell  float64
	cols  int
	rows  int
	nodes []meshNode
}

// NewMosaic creates a mosaic covering s.
func NewMosaic(s Surface, rng *rand.Rand) *Mosaic {
	m := &Mosaic{Base: newBase(s, rng)}
	m.generate()
	return m
}

func (m *Mosaic) ID() ID { return MosaicID }

func (m *Mosaic) Resize(width, height int) {
	m.setSize(width, height)
	m.generate()
}

func (m *Mosaic) generate() {
	m.cell = math.Max(mosaicMinCell, (mosaicCellBase+m.between(-mosaicCellSpread, mosaicCellSpread))*m.Scale)
	m.cols = int(math.Ceil(m.Width/m.cell)) + 2*mosaicMargin + 1
	m.rows = int(math.Ceil(m.Height/m.cell)) + 2*mosaicMargin + 1
	m.nodes = make([]meshNode, 0, m.cols*m.rows)

	for j := 0; j < m.rows; j++ {
		for i := 0; i < m.cols; i++ {
			n := meshNode{
				baseX:     float64(i-mosaicMargin)*m.cell + m.between(-mosaicJitter, mosaicJitter)*m.cell,
				baseY:     float64(j-mosaicMargin)*m.cell + m.between(-mosaicJitter, mosaicJitter)*m.cell,
				phaseX:    m.between(0, 2*math.Pi),
				phaseY:    m.between(0, 2*math.Pi),
				amplitude: m.between(4, 14) * m.Scale,
				speed:     m.between(0.6, 1.4),
			}
			n.offX = math.Sin(n.phaseX) * n.amplitude
			n.offY = math.Cos(n.phaseY) * n.amplitude
			m.nodes = append(m.nodes, n)
		}
	}
}

func (m *Mosaic) node(i, j int) *meshNode {
	return &m.nodes[j*m.cols+i]
}

func (m *Mosaic) Update() {
	m.advance()
	for k := range m.nodes {
		n := &m.nodes[k]
		n.offX = math.Sin(m.Time*n.speed+n.phaseX) * n.amplitude
		n.offY = math.Cos(m.Time*n.speed+n.phaseY) * n.amplitude
	}
}

// triangles calls fn for every mesh triangle in paint order. Diagonals
// alternate with cell parity so the mesh reads as a checkerboard of folds.
func (m *Mosaic) triangles(fn func(index int, a, b, c *meshNode)) {
	index := 0
	for j := 0; j < m.rows-1; j++ {
		for i := 0; i < m.cols-1; i++ {
			tl, tr := m.node(i, j), m.node(i+1, j)
			bl, br := m.node(i, j+1), m.node(i+1, j+1)
			if (i+j)%2 == 0 {
				fn(index, tl, tr, br)
				fn(index+1, tl, br, bl)
			} else {
				fn(index, tl, tr, bl)
				fn(index+1, tr, br, bl)
			}
			index += 2
		}
	}
}

func (m *Mosaic) Render() {
	cv := m.cv()
	cv.SetFillStyle("#0c0a18")
	cv.FillRect(0, 0, m.Width, m.Height)

	globalHue := m.Time * 8
	cv.SetLineWidth(1)
	m.triangles(func(index int, a, b, c *meshNode) {
		ax, ay := a.pos()
		bx, by := b.pos()
		cx, cy := c.pos()

		centroidX := (ax + bx + cx) / 3
		centroidY := (ay + by + cy) / 3
		hue := 200 + centroidX/math.Max(m.Width, 1)*120 + centroidY/math.Max(m.Height, 1)*60 + globalHue + float64(index%7)*3
		light := 0.45 + 0.08*math.Sin(m.Time*1.5+float64(index)*0.37)
		fill := hsla(hue, 0.55, light, 1)

		cv.BeginPath()
		cv.MoveTo(ax, ay)
		cv.LineTo(bx, by)
		cv.LineTo(cx, cy)
		cv.ClosePath()
		cv.SetFillStyle(fill)
		cv.Fill()
		// Same-colour hairline hides anti-aliasing seams between neighbours.
		cv.SetStrokeStyle(fill)
		cv.Stroke()
	})
}
