package capture

import (
	"errors"
	"fmt"
	"image/png"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/surface"
	"linux-visualgallery/internal/utils"
)

// MaxConcurrency bounds how many effects render at once during export.
const MaxConcurrency = 4

// ExportOptions configures ExportGallery.
type ExportOptions struct {
	Width, Height int
	Ticks         int
	// Supersample renders each effect this many times larger and
	// downsamples the final frame. Values below two render directly.
	Supersample int
	Seed        uint64
}

// ExportGallery renders each effect for opts.Ticks frames on its own
// surface and saves the final frame to dir/<id>.png. Effects run in
// parallel; each one gets its own generator derived from the seed and its
// position in ids. It returns how many images were written.
func ExportGallery(dir string, ids []effects.ID, opts ExportOptions) (int, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return 0, err
	}
	utils.Info("Exporting %d effects at %dx%d to %s...", len(ids), opts.Width, opts.Height, dir)

	var (
		exported int32
		wg       sync.WaitGroup
		mu       sync.Mutex
		errs     []error
	)
	sem := make(chan struct{}, MaxConcurrency)

	for i, id := range ids {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, id effects.ID) {
			defer wg.Done()
			defer func() { <-sem }()

			rng := rand.New(rand.NewPCG(opts.Seed, uint64(i)))
			path := filepath.Join(dir, string(id)+".png")
			if err := exportOne(path, id, opts, rng); err != nil {
				utils.Error("Failed to export %s: %v", id, err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", id, err))
				mu.Unlock()
				return
			}
			atomic.AddInt32(&exported, 1)
		}(i, id)
	}

	wg.Wait()
	utils.Info("Export finished. Wrote %d images.", exported)
	return int(exported), errors.Join(errs...)
}

func exportOne(path string, id effects.ID, opts ExportOptions, rng *rand.Rand) error {
	factor := max(opts.Supersample, 1)
	s := surface.New(opts.Width*factor, opts.Height*factor)
	e := effects.Create(id, s, rng)
	for t := 0; t < opts.Ticks; t++ {
		e.Update()
	}
	e.Render()

	img := s.Image()
	if factor > 1 {
		img = s.Downsample(opts.Width, opts.Height)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
