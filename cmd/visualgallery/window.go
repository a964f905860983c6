package main

import (
	"math/rand/v2"
	"time"

	"linux-visualgallery/internal/config"
	"linux-visualgallery/internal/debug"
	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/engine2D"
	"linux-visualgallery/internal/engine2D/present"
	"linux-visualgallery/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type viewMode int

const (
	modeGallery viewMode = iota
	modeFullscreen
)

const captionHeight = 24

var (
	backgroundColor = rl.NewColor(12, 12, 18, 255)
	captionColor    = rl.NewColor(220, 220, 230, 255)
	hoverColor      = rl.NewColor(255, 214, 120, 255)
)

type Window struct {
	cfg  config.Config
	seed uint64
	// streams hands every new instance its own generator stream.
	streams uint64

	mode      viewMode
	driver    *engine2D.Driver
	presenter *present.Presenter
	grid      engine2D.Grid
	tiles     []engine2D.Tile
	previews  []*engine2D.Instance
	full      *engine2D.Instance

	clock        engine2D.FrameClock
	rendered     int
	screenW      int
	screenH      int
	quit         bool
	inhibitor    utils.SleepInhibitor
	inhibitFails bool
	debugOverlay *debug.DebugOverlay
}

func NewWindow(cfg config.Config, seed uint64) *Window {
	window := &Window{
		cfg:       cfg,
		seed:      seed,
		driver:    engine2D.NewDriver(),
		presenter: present.NewPresenter(),
		grid: engine2D.Grid{
			Columns:  cfg.Gallery.Columns,
			TileW:    cfg.Gallery.PreviewWidth,
			TileH:    cfg.Gallery.PreviewHeight,
			Gap:      cfg.Gallery.Gap,
			CaptionH: captionHeight,
		},
		screenW:      rl.GetScreenWidth(),
		screenH:      rl.GetScreenHeight(),
		debugOverlay: debug.NewDebugOverlay(),
	}

	// Esc goes back to the gallery instead of closing the window.
	rl.SetExitKey(rl.KeyNull)
	if cfg.Display.Fullscreen {
		rl.ToggleFullscreen()
	}

	window.showGallery()
	return window
}

func (window *Window) newRand() *rand.Rand {
	window.streams++
	return rand.New(rand.NewPCG(window.seed, window.streams))
}

func (window *Window) showGallery() {
	window.mode = modeGallery
	for _, id := range effects.IDs() {
		inst := engine2D.NewSupersampledInstance(id, window.cfg.Gallery.PreviewWidth, window.cfg.Gallery.PreviewHeight,
			window.cfg.Gallery.Supersample, window.cfg.Throttle(), window.newRand())
		window.driver.Add(inst)
		window.previews = append(window.previews, inst)
	}
	utils.Info("Gallery: %d previews (supersample x%d)", len(window.previews), window.cfg.Gallery.Supersample)
}

// hideGallery stops the previews. Update prunes them and frees their
// textures.
func (window *Window) hideGallery() {
	for _, inst := range window.previews {
		inst.Stop()
	}
	window.previews = nil
	window.tiles = nil
}

func (window *Window) fullscreenSize() (int, int) {
	scale := window.cfg.Display.RenderScale
	return max(1, int(float64(window.screenW)*scale)), max(1, int(float64(window.screenH)*scale))
}

// OpenEffect replaces the gallery with a new fullscreen instance of id.
func (window *Window) OpenEffect(id effects.ID) {
	if window.full != nil {
		window.closeFullscreen()
	}
	window.hideGallery()

	w, h := window.fullscreenSize()
	window.full = window.driver.Add(engine2D.NewInstance(id, w, h, 0, window.newRand()))
	window.mode = modeFullscreen
	utils.Info("Fullscreen: %s at %dx%d", id, w, h)

	if window.cfg.Display.InhibitSleep {
		if err := window.inhibitor.Acquire(); err != nil && !window.inhibitFails {
			utils.Warn("Could not inhibit screensaver: %v", err)
			window.inhibitFails = true
		}
	}
}

func (window *Window) closeFullscreen() {
	window.driver.Remove(window.full)
	window.presenter.Release(window.full)
	window.full = nil
	window.inhibitor.Release()
}

// CloseEffect returns to the gallery.
func (window *Window) CloseEffect() {
	if window.full == nil {
		return
	}
	window.closeFullscreen()
	window.showGallery()
}

func (window *Window) Run() {
	rl.SetTargetFPS(int32(window.cfg.Display.TargetFPS))

	for !rl.WindowShouldClose() && !window.quit {
		window.Update()

		rl.BeginDrawing()
		window.Draw()
		rl.EndDrawing()
	}
}

func (window *Window) handleResize() {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
	if w == window.screenW && h == window.screenH {
		return
	}
	window.screenW, window.screenH = w, h
	utils.Debug("Window resized to %dx%d", w, h)

	if window.full != nil {
		fw, fh := window.fullscreenSize()
		window.full.Resize(fw, fh)
		window.presenter.Invalidate(window.full)
	}
}

func (window *Window) handleInput() {
	if rl.IsKeyPressed(rl.KeyF8) {
		utils.ShowDebugUI = !utils.ShowDebugUI
	}
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	switch window.mode {
	case modeGallery:
		if rl.IsKeyPressed(rl.KeyEscape) {
			window.quit = true
			return
		}
		ids := effects.IDs()
		for i := range ids {
			if rl.IsKeyPressed(rl.KeyOne + int32(i)) {
				window.OpenEffect(ids[i])
				return
			}
		}
		if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
			pos := rl.GetMousePosition()
			if i := engine2D.HitTest(window.tiles, float64(pos.X), float64(pos.Y)); i >= 0 && i < len(ids) {
				window.OpenEffect(ids[i])
			}
		}
	case modeFullscreen:
		if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyBackspace) || rl.IsMouseButtonPressed(rl.MouseButtonRight) {
			window.CloseEffect()
		}
	}
}

func (window *Window) Update() {
	now := time.Now()
	window.clock.Tick(now)

	window.handleResize()
	window.handleInput()

	for _, inst := range window.driver.Prune() {
		window.presenter.Release(inst)
	}
	if window.mode == modeGallery {
		window.tiles = window.grid.Layout(len(window.previews), window.screenW, window.screenH)
	}

	window.rendered = window.driver.Tick(now)
	for _, inst := range window.driver.Instances() {
		window.presenter.Upload(inst)
	}

	if window.inhibitor.Held() {
		if err := window.inhibitor.Poke(now); err != nil {
			utils.Debug("Inhibitor: %v", err)
		}
	}

	if utils.ShowDebugUI {
		window.debugOverlay.Update()
	}
}

func (window *Window) Draw() {
	rl.ClearBackground(backgroundColor)

	switch window.mode {
	case modeGallery:
		window.drawGallery()
	case modeFullscreen:
		if window.full != nil {
			window.presenter.Draw(window.full, rl.NewRectangle(0, 0, float32(window.screenW), float32(window.screenH)))
		}
	}

	if utils.ShowDebugUI {
		window.debugOverlay.Draw(window.stats())
	}
}

func (window *Window) drawGallery() {
	mouse := rl.GetMousePosition()
	hovered := engine2D.HitTest(window.tiles, float64(mouse.X), float64(mouse.Y))

	for i, tile := range window.tiles {
		if i >= len(window.previews) {
			break
		}
		inst := window.previews[i]
		window.presenter.DrawTile(inst, tile)

		fontSize := int32(max(10, tile.CaptionH*0.7))
		label := inst.Label
		if i < 9 {
			label = string(rune('1'+i)) + "  " + label
		}
		rl.DrawText(label, int32(tile.X), int32(tile.Y+tile.H+tile.CaptionH*0.15), fontSize, captionColor)

		if i == hovered {
			rect := rl.NewRectangle(float32(tile.X), float32(tile.Y), float32(tile.W), float32(tile.H))
			rl.DrawRectangleLinesEx(rect, 2, hoverColor)
		}
	}
}

func (window *Window) stats() debug.Stats {
	s := debug.Stats{
		Mode:        "gallery",
		Instances:   window.driver.Len(),
		Rendered:    window.rendered,
		RenderScale: 1,
		FrameTime:   window.clock.Average(),
		Inhibited:   window.inhibitor.Held(),
	}
	inst := window.full
	if window.mode == modeFullscreen && inst != nil {
		s.Mode = "fullscreen"
		s.Effect = inst.Label
		s.RenderScale = window.cfg.Display.RenderScale
	} else if len(window.previews) > 0 {
		inst = window.previews[0]
	}
	if inst != nil {
		s.SurfaceW, s.SurfaceH = inst.Surface.Width(), inst.Surface.Height()
	}
	return s
}

func (window *Window) Close() {
	window.driver.Clear()
	window.presenter.Close()
	window.inhibitor.Release()
	window.debugOverlay.Close()
}
