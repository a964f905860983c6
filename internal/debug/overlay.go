// Package debug draws the F8 performance overlay.
package debug

import (
	"fmt"
	"math"
	"runtime"
	"time"

	"linux-visualgallery/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Stats is what the host reports to the overlay each frame.
type Stats struct {
	Mode        string
	Effect      string
	Instances   int
	Rendered    int
	SurfaceW    int
	SurfaceH    int
	RenderScale float64
	FrameTime   time.Duration
	Inhibited   bool
}

type DebugOverlay struct {
	fontHeight int
	lineHeight int
	panelWidth int
	uiScale    float64
	font       rl.Font
	hasFont    bool

	lastSample time.Time
	memStats   runtime.MemStats
}

func NewDebugOverlay() *DebugOverlay {
	d := &DebugOverlay{}
	d.updateLayout()

	fontPaths := []string{
		"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
		"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
		"/usr/share/fonts/liberation/LiberationMono-Regular.ttf",
		"/usr/share/fonts/truetype/liberation/LiberationMono-Regular.ttf",
	}
	for _, path := range fontPaths {
		if utils.FileExists(path) {
			d.font = rl.LoadFontEx(path, 64, nil, 0)
			rl.SetTextureFilter(d.font.Texture, rl.FilterBilinear)
			d.hasFont = true
			break
		}
	}
	return d
}

func (d *DebugOverlay) updateLayout() {
	scale := math.Max(1.0, float64(rl.GetScreenHeight())/1080.0)
	d.fontHeight = int(16 * scale)
	d.lineHeight = int(22 * scale)
	d.panelWidth = int(360 * scale)
	d.uiScale = scale
}

// Update refreshes memory statistics twice a second.
func (d *DebugOverlay) Update() {
	d.updateLayout()
	now := time.Now()
	if now.Sub(d.lastSample) >= 500*time.Millisecond {
		runtime.ReadMemStats(&d.memStats)
		d.lastSample = now
	}
}

func (d *DebugOverlay) lines(s Stats) []string {
	out := []string{
		fmt.Sprintf("FPS: %d", rl.GetFPS()),
		fmt.Sprintf("Frame Time: %.2f ms", float64(s.FrameTime.Microseconds())/1000),
		fmt.Sprintf("Mode: %s", s.Mode),
	}
	if s.Effect != "" {
		out = append(out, fmt.Sprintf("Effect: %s", s.Effect))
	}
	out = append(out,
		fmt.Sprintf("Instances: %d (%d rendered)", s.Instances, s.Rendered),
		fmt.Sprintf("Surface: %dx%d", s.SurfaceW, s.SurfaceH),
	)
	if s.RenderScale != 1 {
		out = append(out, fmt.Sprintf("Render Scale: %.2fx", s.RenderScale))
	}
	if s.Inhibited {
		out = append(out, "Screensaver: inhibited")
	}
	out = append(out,
		fmt.Sprintf("Window: %dx%d", rl.GetScreenWidth(), rl.GetScreenHeight()),
		fmt.Sprintf("Heap Alloc: %.2f MB", float64(d.memStats.HeapAlloc)/1024/1024),
		fmt.Sprintf("Process Total: %.2f MB", float64(d.memStats.Sys)/1024/1024),
		fmt.Sprintf("Goroutines: %d", runtime.NumGoroutine()),
	)
	return out
}

func (d *DebugOverlay) drawText(text string, x, y int32, color rl.Color) {
	if d.hasFont {
		rl.DrawTextEx(d.font, text, rl.NewVector2(float32(x), float32(y)), float32(d.fontHeight), 1, color)
		return
	}
	rl.DrawText(text, x, y, int32(d.fontHeight), color)
}

// Draw paints the panel in the top left corner.
func (d *DebugOverlay) Draw(s Stats) {
	lines := d.lines(s)
	pad := int32(8 * d.uiScale)
	h := int32(len(lines)*d.lineHeight) + 2*pad

	rl.DrawRectangle(0, 0, int32(d.panelWidth), h, rl.NewColor(0, 0, 0, 180))
	for i, line := range lines {
		d.drawText(line, pad, pad+int32(i*d.lineHeight), rl.White)
	}
}

func (d *DebugOverlay) Close() {
	if d.hasFont {
		rl.UnloadFont(d.font)
	}
}
