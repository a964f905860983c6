// Package capture records effect frames into compact clip files and
// exports still images of the gallery.
package capture

import (
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/pierrec/lz4/v4"

	"linux-visualgallery/internal/utils"
)

// Magic opens every clip file.
const Magic = "VGCLIP01"

const (
	maxDimension = 8192
	// maxFramePixels caps one frame at 8K UHD, about 130 MiB decoded.
	maxFramePixels = 7680 * 4320
	// minFrameBlock is the smallest encoded frame: block header plus one byte.
	minFrameBlock = 13
)

var (
	ErrBadMagic   = errors.New("capture: not a clip file")
	ErrBadFrame   = errors.New("capture: corrupt frame")
	ErrFrameCount = errors.New("capture: frame count mismatch")
)

// Header describes a clip. All frames share the same dimensions.
type Header struct {
	Effect string
	Width  int
	Height int
	Count  int
}

func (h Header) frameBytes() int { return h.Width * h.Height * 4 }

func (h Header) validSize() bool {
	return h.Width > 0 && h.Height > 0 && h.Width <= maxDimension && h.Height <= maxDimension &&
		h.Width*h.Height <= maxFramePixels
}

// Clip is a decoded clip file.
type Clip struct {
	Header
	Frames []*image.RGBA
}

func writeString(w io.Writer, s string) error {
	if err := binary.Write(w, binary.LittleEndian, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	var size uint32
	if err := binary.Read(r, binary.LittleEndian, &size); err != nil {
		return "", err
	}
	if size > 256 {
		return "", fmt.Errorf("%w: name of %d bytes", ErrBadFrame, size)
	}
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// Writer streams frames into a clip. The frame count is fixed up front.
type Writer struct {
	w       io.Writer
	header  Header
	written int
	comp    lz4.Compressor
	buf     []byte
}

// NewWriter writes the clip header. h.Count frames must follow.
func NewWriter(w io.Writer, h Header) (*Writer, error) {
	if h.Count < 0 {
		return nil, fmt.Errorf("capture: negative frame count %d", h.Count)
	}
	if !h.validSize() {
		return nil, fmt.Errorf("capture: invalid clip size %dx%d", h.Width, h.Height)
	}
	if _, err := io.WriteString(w, Magic); err != nil {
		return nil, err
	}
	if err := writeString(w, h.Effect); err != nil {
		return nil, err
	}
	for _, v := range []uint32{uint32(h.Width), uint32(h.Height), uint32(h.Count)} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return nil, err
		}
	}
	return &Writer{
		w:      w,
		header: h,
		buf:    make([]byte, lz4.CompressBlockBound(h.frameBytes())),
	}, nil
}

// WriteFrame appends one frame. Frames that do not compress are stored raw.
func (cw *Writer) WriteFrame(img *image.RGBA) error {
	if cw.written >= cw.header.Count {
		return ErrFrameCount
	}
	b := img.Bounds()
	if b.Dx() != cw.header.Width || b.Dy() != cw.header.Height {
		return fmt.Errorf("capture: frame is %dx%d, clip is %dx%d", b.Dx(), b.Dy(), cw.header.Width, cw.header.Height)
	}

	raw := packed(img)
	n, err := cw.comp.CompressBlock(raw, cw.buf)
	if err != nil {
		return fmt.Errorf("compress frame %d: %w", cw.written, err)
	}

	isLZ4, data := uint32(1), cw.buf[:n]
	if n == 0 || n >= len(raw) {
		isLZ4, data = 0, raw
	}
	for _, v := range []uint32{isLZ4, uint32(len(raw)), uint32(len(data))} {
		if err := binary.Write(cw.w, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if _, err := cw.w.Write(data); err != nil {
		return err
	}
	cw.written++
	return nil
}

// Close checks that every announced frame was written.
func (cw *Writer) Close() error {
	if cw.written != cw.header.Count {
		return fmt.Errorf("%w: wrote %d of %d", ErrFrameCount, cw.written, cw.header.Count)
	}
	return nil
}

// packed returns the pixels without row padding.
func packed(img *image.RGBA) []byte {
	b := img.Bounds()
	rowBytes := b.Dx() * 4
	if img.Stride == rowBytes && len(img.Pix) == rowBytes*b.Dy() {
		return img.Pix
	}
	out := make([]byte, 0, rowBytes*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		start := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[start:start+rowBytes]...)
	}
	return out
}

// ReadHeader reads and validates the clip header.
func ReadHeader(r io.Reader) (Header, error) {
	var h Header
	magic := make([]byte, len(Magic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return h, fmt.Errorf("%w: %v", ErrBadMagic, err)
	}
	if string(magic) != Magic {
		return h, ErrBadMagic
	}

	name, err := readString(r)
	if err != nil {
		return h, fmt.Errorf("read effect name: %w", err)
	}
	var dims [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &dims); err != nil {
		return h, fmt.Errorf("read dimensions: %w", err)
	}
	h = Header{Effect: name, Width: int(dims[0]), Height: int(dims[1]), Count: int(dims[2])}
	if !h.validSize() {
		return h, fmt.Errorf("%w: size %dx%d", ErrBadFrame, h.Width, h.Height)
	}
	return h, nil
}

// ReadClip decodes a whole clip.
func ReadClip(r io.Reader) (*Clip, error) {
	h, err := ReadHeader(r)
	if err != nil {
		return nil, err
	}
	utils.Debug("Clip: %s %dx%d, %d frames", h.Effect, h.Width, h.Height, h.Count)
	if left, ok := remaining(r); ok && left < int64(h.Count)*minFrameBlock {
		return nil, fmt.Errorf("%w: %d frames declared, %d bytes left", ErrFrameCount, h.Count, left)
	}

	clip := &Clip{Header: h}
	for i := 0; i < h.Count; i++ {
		img, err := readFrame(r, h)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
		clip.Frames = append(clip.Frames, img)
	}
	return clip, nil
}

// remaining reports how many bytes a seekable reader has left.
func remaining(r io.Reader) (int64, bool) {
	s, ok := r.(io.Seeker)
	if !ok {
		return 0, false
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, false
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, false
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return 0, false
	}
	return end - cur, true
}

func readFrame(r io.Reader, h Header) (*image.RGBA, error) {
	var block [3]uint32
	if err := binary.Read(r, binary.LittleEndian, &block); err != nil {
		return nil, err
	}
	isLZ4, decompressedSize, dataSize := block[0] == 1, int(block[1]), int(block[2])
	if decompressedSize != h.frameBytes() || dataSize > lz4.CompressBlockBound(decompressedSize) {
		return nil, fmt.Errorf("%w: sizes %d/%d", ErrBadFrame, decompressedSize, dataSize)
	}

	data := make([]byte, dataSize)
	if _, err := io.ReadFull(r, data); err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, h.Width, h.Height))
	if !isLZ4 {
		if dataSize != decompressedSize {
			return nil, fmt.Errorf("%w: raw frame of %d bytes", ErrBadFrame, dataSize)
		}
		copy(img.Pix, data)
		return img, nil
	}
	n, err := lz4.UncompressBlock(data, img.Pix)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFrame, err)
	}
	if n != decompressedSize {
		return nil, fmt.Errorf("%w: decoded %d of %d bytes", ErrBadFrame, n, decompressedSize)
	}
	return img, nil
}
