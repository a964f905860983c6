package capture

import (
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/surface"
	"linux-visualgallery/internal/utils"
)

// Record drives e for frames ticks and writes every rendered frame to w.
// e must be bound to s.
func Record(w io.Writer, e effects.Effect, s *surface.Surface, frames int) error {
	cw, err := NewWriter(w, Header{
		Effect: string(e.ID()),
		Width:  s.Width(),
		Height: s.Height(),
		Count:  frames,
	})
	if err != nil {
		return err
	}
	for i := 0; i < frames; i++ {
		e.Update()
		e.Render()
		if err := cw.WriteFrame(s.Image()); err != nil {
			return err
		}
		if i%60 == 0 {
			utils.Debug("Record: %s frame %d/%d", e.ID(), i+1, frames)
		}
	}
	return cw.Close()
}

// RecordFile records into path, creating parent directories.
func RecordFile(path string, e effects.Effect, s *surface.Surface, frames int) error {
	if err := utils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Record(f, e, s, frames); err != nil {
		f.Close()
		return fmt.Errorf("record %s: %w", path, err)
	}
	return f.Close()
}

// OpenClip reads a clip file from disk.
func OpenClip(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadClip(f)
}

// WriteFrames saves every frame of clip as <effect>_<index>.png in dir.
func WriteFrames(clip *Clip, dir string) ([]string, error) {
	if err := utils.EnsureDir(dir); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(clip.Frames))
	for i, img := range clip.Frames {
		path := filepath.Join(dir, fmt.Sprintf("%s_%04d.png", clip.Effect, i))
		f, err := os.Create(path)
		if err != nil {
			return paths, err
		}
		err = png.Encode(f, img)
		f.Close()
		if err != nil {
			return paths, fmt.Errorf("encode %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
