// Package present uploads instance surfaces to GPU textures and draws them
// with raylib.
package present

import (
	"image/color"
	"unsafe"

	"linux-visualgallery/internal/engine2D"
	"linux-visualgallery/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type texture struct {
	tex           rl.Texture2D
	width, height int
	uploaded      bool
	frames        uint64
}

// Presenter owns one GPU texture per instance and blits surface pixels to
// the window. It must be used from the thread that owns the GL context.
type Presenter struct {
	textures map[*engine2D.Instance]*texture
}

func NewPresenter() *Presenter {
	return &Presenter{textures: make(map[*engine2D.Instance]*texture)}
}

func (p *Presenter) textureFor(inst *engine2D.Instance) *texture {
	w, h := inst.Surface.Width(), inst.Surface.Height()
	t := p.textures[inst]
	if t != nil && t.width == w && t.height == h {
		return t
	}
	if t != nil {
		rl.UnloadTexture(t.tex)
	}

	img := rl.GenImageColor(w, h, rl.Black)
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)

	t = &texture{tex: tex, width: w, height: h}
	p.textures[inst] = t
	utils.Debug("Presenter: texture %dx%d for %s", w, h, inst.Label)
	return t
}

// Upload copies the instance's pixels to its texture when a new frame was
// rendered since the last upload.
func (p *Presenter) Upload(inst *engine2D.Instance) {
	t := p.textureFor(inst)
	if t.uploaded && t.frames == inst.Frames() {
		return
	}
	img := inst.Surface.Image()
	if len(img.Pix) == 0 {
		return
	}
	pixels := unsafe.Slice((*color.RGBA)(unsafe.Pointer(&img.Pix[0])), len(img.Pix)/4)
	rl.UpdateTexture(t.tex, pixels)
	t.uploaded = true
	t.frames = inst.Frames()
}

// Invalidate forces the next Upload of inst to copy its pixels.
func (p *Presenter) Invalidate(inst *engine2D.Instance) {
	if t, ok := p.textures[inst]; ok {
		t.uploaded = false
	}
}

// Draw stretches the instance's texture over dst.
func (p *Presenter) Draw(inst *engine2D.Instance, dst rl.Rectangle) {
	t := p.textureFor(inst)
	src := rl.NewRectangle(0, 0, float32(t.width), float32(t.height))
	rl.DrawTexturePro(t.tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

// DrawTile draws the instance into a grid tile.
func (p *Presenter) DrawTile(inst *engine2D.Instance, tile engine2D.Tile) {
	p.Draw(inst, rl.NewRectangle(float32(tile.X), float32(tile.Y), float32(tile.W), float32(tile.H)))
}

// Release frees the texture of a removed instance.
func (p *Presenter) Release(inst *engine2D.Instance) {
	if t, ok := p.textures[inst]; ok {
		rl.UnloadTexture(t.tex)
		delete(p.textures, inst)
	}
}

func (p *Presenter) Close() {
	for inst := range p.textures {
		p.Release(inst)
	}
}
