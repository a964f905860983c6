package main

import (
	"flag"
	"math/rand/v2"
	"os"
	"strings"

	"linux-visualgallery/internal/capture"
	"linux-visualgallery/internal/config"
	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/surface"
	"linux-visualgallery/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func main() {
	configFlag := flag.String("config", "", "Path to config.toml (default ~/.config/visualgallery/config.toml)")
	effectFlag := flag.String("effect", "", "Open this effect fullscreen instead of the gallery")
	debugFlag := flag.Bool("debug", false, "Enable verbose debug logging")
	seedFlag := flag.Uint64("seed", 0, "Seed for every effect generator (0 picks one)")
	recordFlag := flag.String("record", "", "Record -frames frames of -effect into a clip file and exit")
	framesFlag := flag.Int("frames", 120, "Frames to record, or ticks to run before -export")
	sizeFlag := flag.String("size", "", "Surface size WxH for -record and -export")
	inspectFlag := flag.String("inspect", "", "Print a clip's header and dump its frames to test_out/")
	exportFlag := flag.String("export", "", "Render every effect to <dir>/<effect>.png and exit")
	writeConfigFlag := flag.Bool("write-config", false, "Write the effective config to the config path and exit")
	flag.Parse()

	utils.DebugMode = *debugFlag

	cfg := loadConfig(*configFlag)
	if level, err := utils.ParseLevel(cfg.Log.Level); err == nil {
		utils.CurrentLevel = level
	}
	if utils.DebugMode {
		utils.CurrentLevel = utils.LevelDebug
	}

	seed := *seedFlag
	if seed == 0 {
		seed = rand.Uint64()
	}
	utils.Debug("Seed: %d", seed)

	switch {
	case *writeConfigFlag:
		runWriteConfig(*configFlag, cfg)
		return
	case *inspectFlag != "":
		runInspect(*inspectFlag)
		return
	case *recordFlag != "":
		w, h := sideModeSize(*sizeFlag, cfg.Display.Width, cfg.Display.Height)
		runRecord(*recordFlag, resolveEffect(*effectFlag), w, h, *framesFlag, seed)
		return
	case *exportFlag != "":
		w, h := sideModeSize(*sizeFlag, cfg.Gallery.PreviewWidth, cfg.Gallery.PreviewHeight)
		runExport(*exportFlag, w, h, *framesFlag, cfg.Gallery.Supersample, seed)
		return
	}

	start := cfg.Display.StartEffect
	if *effectFlag != "" {
		start = string(resolveEffect(*effectFlag))
	}

	utils.Info("--- Visual Gallery Start ---")
	rl.SetTraceLogCallback(utils.RaylibLogCallback)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagVsyncHint | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(cfg.Display.Width), int32(cfg.Display.Height), "Visual Gallery")
	defer rl.CloseWindow()

	window := NewWindow(cfg, seed)
	defer window.Close()
	if start != "" {
		window.OpenEffect(effects.Parse(start))
	}

	utils.Info("Starting render loop...")
	window.Run()
}

func loadConfig(flagValue string) config.Config {
	path, err := config.Path(flagValue)
	if err != nil {
		utils.Warn("Could not resolve config path: %v", err)
		return config.Default()
	}
	cfg, err := config.Load(path)
	if err != nil {
		utils.Error("Failed to load config, using defaults: %v", err)
	}
	return cfg
}

// resolveEffect parses name and warns when it falls back to the default.
func resolveEffect(name string) effects.ID {
	id := effects.Parse(name)
	if !strings.EqualFold(string(id), strings.TrimSpace(name)) {
		utils.Warn("Unknown effect %q, using %s. Available: %v", name, id, effects.RegisteredIDs())
	}
	return id
}

func runWriteConfig(flagValue string, cfg config.Config) {
	path, err := config.Path(flagValue)
	if err != nil {
		utils.Error("Could not resolve config path: %v", err)
		os.Exit(1)
	}
	if utils.FileExists(path) {
		utils.Warn("Overwriting %s", path)
	}
	if err := config.Save(path, cfg); err != nil {
		utils.Error("Failed to write config: %v", err)
		os.Exit(1)
	}
	utils.Info("Config written to %s", path)
}

func sideModeSize(flagValue string, defW, defH int) (int, int) {
	if flagValue == "" {
		return defW, defH
	}
	w, h, err := utils.ParseSize(flagValue)
	if err != nil {
		utils.Error("Invalid -size: %v", err)
		os.Exit(1)
	}
	return w, h
}

func runRecord(path string, id effects.ID, w, h, frames int, seed uint64) {
	out, err := utils.ExpandPath(path)
	if err != nil {
		utils.Error("Invalid record path: %v", err)
		os.Exit(1)
	}
	utils.Info("Recording %d frames of %s at %dx%d to %s", frames, id, w, h, out)

	s := surface.New(w, h)
	e := effects.Create(id, s, rand.New(rand.NewPCG(seed, 0)))
	if err := capture.RecordFile(out, e, s, frames); err != nil {
		utils.Error("Record failed: %v", err)
		os.Exit(1)
	}
	utils.Info("Record successful! Saved to: %s", out)
}

func runInspect(path string) {
	clip, err := capture.OpenClip(path)
	if err != nil {
		utils.Error("Inspect failed: %v", err)
		os.Exit(1)
	}
	utils.Info("Clip %s: effect=%s size=%dx%d frames=%d", path, clip.Effect, clip.Width, clip.Height, clip.Count)

	paths, err := capture.WriteFrames(clip, "test_out")
	if err != nil {
		utils.Error("Failed to write frames: %v", err)
		os.Exit(1)
	}
	utils.Info("Inspect successful! Wrote %d frames to test_out", len(paths))
}

func runExport(dir string, w, h, ticks, supersample int, seed uint64) {
	out, err := utils.ExpandPath(dir)
	if err != nil {
		utils.Error("Invalid export path: %v", err)
		os.Exit(1)
	}
	n, err := capture.ExportGallery(out, effects.IDs(), capture.ExportOptions{
		Width:       w,
		Height:      h,
		Ticks:       ticks,
		Supersample: supersample,
		Seed:        seed,
	})
	if err != nil {
		utils.Error("Export finished with errors (%d written): %v", n, err)
		os.Exit(1)
	}
}
