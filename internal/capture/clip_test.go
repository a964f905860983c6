package capture

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linux-visualgallery/internal/effects"
	"linux-visualgallery/internal/surface"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func noise(w, h int, seed uint64) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	rng := rand.New(rand.NewPCG(seed, seed))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.UintN(256))
	}
	return img
}

func TestClipPreservesFrames(t *testing.T) {
	frames := []*image.RGBA{
		solid(32, 16, color.RGBA{10, 20, 30, 255}),
		noise(32, 16, 1),
		solid(32, 16, color.RGBA{200, 0, 0, 255}),
	}

	var buf bytes.Buffer
	cw, err := NewWriter(&buf, Header{Effect: "smoke", Width: 32, Height: 16, Count: len(frames)})
	require.NoError(t, err)
	for _, f := range frames {
		require.NoError(t, cw.WriteFrame(f))
	}
	require.NoError(t, cw.Close())

	// Only the noise frame keeps its raw size.
	assert.Less(t, buf.Len(), 2*32*16*4)

	clip, err := ReadClip(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, Header{Effect: "smoke", Width: 32, Height: 16, Count: 3}, clip.Header)
	require.Len(t, clip.Frames, 3)
	for i := range frames {
		assert.Equal(t, frames[i].Pix, clip.Frames[i].Pix, "frame %d", i)
	}
}

func TestIncompressibleFrameIsStoredRaw(t *testing.T) {
	var buf bytes.Buffer
	cw, err := NewWriter(&buf, Header{Effect: "noise", Width: 16, Height: 16, Count: 1})
	require.NoError(t, err)
	require.NoError(t, cw.WriteFrame(noise(16, 16, 7)))

	headerLen := len(Magic) + 4 + len("noise") + 12
	isLZ4 := buf.Bytes()[headerLen]
	assert.Equal(t, byte(0), isLZ4)
	assert.Equal(t, headerLen+12+16*16*4, buf.Len())
}

func TestWriterRejectsMismatches(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewWriter(&buf, Header{Width: 0, Height: 10, Count: 1})
	assert.Error(t, err)

	cw, err := NewWriter(&buf, Header{Width: 4, Height: 4, Count: 1})
	require.NoError(t, err)
	assert.Error(t, cw.WriteFrame(solid(5, 4, color.RGBA{})))
	assert.ErrorIs(t, cw.Close(), ErrFrameCount)

	require.NoError(t, cw.WriteFrame(solid(4, 4, color.RGBA{})))
	assert.ErrorIs(t, cw.WriteFrame(solid(4, 4, color.RGBA{})), ErrFrameCount)
	assert.NoError(t, cw.Close())
}

func TestPackedDropsRowPadding(t *testing.T) {
	big := solid(8, 8, color.RGBA{1, 2, 3, 4})
	sub := big.SubImage(image.Rect(2, 2, 5, 4)).(*image.RGBA)
	raw := packed(sub)
	assert.Len(t, raw, 3*2*4)
	assert.Equal(t, []byte{1, 2, 3, 4}, raw[:4])
}

func TestReadClipErrors(t *testing.T) {
	_, err := ReadClip(bytes.NewReader([]byte("NOTACLIP")))
	assert.ErrorIs(t, err, ErrBadMagic)

	_, err = ReadClip(bytes.NewReader([]byte("VG")))
	assert.ErrorIs(t, err, ErrBadMagic)

	var buf bytes.Buffer
	cw, err := NewWriter(&buf, Header{Effect: "mosaic", Width: 8, Height: 8, Count: 2})
	require.NoError(t, err)
	require.NoError(t, cw.WriteFrame(noise(8, 8, 3)))

	_, err = ReadClip(bytes.NewReader(buf.Bytes()))
	assert.Error(t, err, "second frame is missing")

	data := append([]byte(nil), buf.Bytes()...)
	headerLen := len(Magic) + 4 + len("mosaic") + 12
	data[headerLen+4] = 0xff // decompressed size no longer matches 8x8
	_, err = ReadClip(bytes.NewReader(data))
	assert.ErrorIs(t, err, ErrBadFrame)
}

func rawHeader(t *testing.T, w, h, count uint32) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString(Magic)
	require.NoError(t, writeString(&buf, "smoke"))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, [3]uint32{w, h, count}))
	return buf.Bytes()
}

func TestReadHeaderRejectsOversizedFrames(t *testing.T) {
	_, err := ReadHeader(bytes.NewReader(rawHeader(t, 16384, 16384, 1)))
	assert.ErrorIs(t, err, ErrBadFrame)

	_, err = ReadHeader(bytes.NewReader(rawHeader(t, 8192, 8192, 1)))
	assert.ErrorIs(t, err, ErrBadFrame, "over the pixel cap")

	h, err := ReadHeader(bytes.NewReader(rawHeader(t, 7680, 4320, 1)))
	require.NoError(t, err)
	assert.Equal(t, 7680, h.Width)

	_, err = NewWriter(io.Discard, Header{Width: 8192, Height: 8192, Count: 1})
	assert.Error(t, err)
}

func TestReadClipRejectsCountBeyondLength(t *testing.T) {
	_, err := ReadClip(bytes.NewReader(rawHeader(t, 7680, 4320, 1000)))
	assert.ErrorIs(t, err, ErrFrameCount)

	var buf bytes.Buffer
	cw, err := NewWriter(&buf, Header{Effect: "smoke", Width: 4, Height: 4, Count: 1})
	require.NoError(t, err)
	require.NoError(t, cw.WriteFrame(solid(4, 4, color.RGBA{R: 9, A: 255})))
	require.NoError(t, cw.Close())

	clip, err := ReadClip(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Len(t, clip.Frames, 1)
}

func TestRecordEffect(t *testing.T) {
	s := surface.New(48, 32)
	e := effects.Create(effects.LightShadeID, s, rand.New(rand.NewPCG(1, 1)))

	path := filepath.Join(t.TempDir(), "clips", "lightshade.vgclip")
	require.NoError(t, RecordFile(path, e, s, 4))

	clip, err := OpenClip(path)
	require.NoError(t, err)
	assert.Equal(t, "lightshade", clip.Effect)
	assert.Equal(t, 48, clip.Width)
	require.Len(t, clip.Frames, 4)
	assert.Equal(t, s.Image().Pix, clip.Frames[3].Pix)

	out, err := WriteFrames(clip, filepath.Join(t.TempDir(), "frames"))
	require.NoError(t, err)
	require.Len(t, out, 4)
	assert.Equal(t, "lightshade_0003.png", filepath.Base(out[3]))
}

func TestExportGallery(t *testing.T) {
	dir := t.TempDir()
	ids := effects.IDs()
	n, err := ExportGallery(dir, ids, ExportOptions{Width: 56, Height: 40, Ticks: 3, Seed: 42})
	require.NoError(t, err)
	assert.Equal(t, len(ids), n)

	for _, id := range ids {
		f, err := os.Open(filepath.Join(dir, string(id)+".png"))
		require.NoError(t, err, id)
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		require.NoError(t, err, id)
		assert.Equal(t, 56, cfg.Width)
		assert.Equal(t, 40, cfg.Height)
	}
}

func TestExportGallerySupersampledKeepsOutputSize(t *testing.T) {
	dir := t.TempDir()
	ids := []effects.ID{effects.SmokeID, effects.UrbanityID}
	n, err := ExportGallery(dir, ids, ExportOptions{Width: 48, Height: 32, Ticks: 2, Supersample: 3, Seed: 7})
	require.NoError(t, err)
	assert.Equal(t, len(ids), n)

	for _, id := range ids {
		f, err := os.Open(filepath.Join(dir, string(id)+".png"))
		require.NoError(t, err, id)
		cfg, _, err := image.DecodeConfig(f)
		f.Close()
		require.NoError(t, err, id)
		assert.Equal(t, 48, cfg.Width)
		assert.Equal(t, 32, cfg.Height)
	}
}
