package render

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrFormat is returned by Save for an unsupported file extension.
var ErrFormat = errors.New("render: unsupported image format")

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// tgaHeader is the 18-byte header of an uncompressed true-colour TGA.
type tgaHeader struct {
	IDLength     uint8
	ColorMapType uint8
	ImageType    uint8 // 2: uncompressed true-colour
	CMapStart    uint16
	CMapLength   uint16
	CMapDepth    uint8
	XOrigin      uint16
	YOrigin      uint16
	Width        uint16
	Height       uint16
	BPP          uint8
	Descriptor   uint8 // 0: bottom-left origin
}

// WriteTGA encodes img as a 24-bit uncompressed TGA with a bottom-left
// origin (rows written bottom-up, pixels as B,G,R).
func WriteTGA(w io.Writer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > 0xffff || b.Dy() > 0xffff {
		return fmt.Errorf("%w: TGA dimensions %dx%d exceed 65535", ErrFormat, b.Dx(), b.Dy())
	}
	bw := bufio.NewWriter(w)
	hdr := tgaHeader{
		ImageType: 2,
		Width:     uint16(b.Dx()),
		Height:    uint16(b.Dy()),
		BPP:       24,
	}
	if err := binary.Write(bw, binary.LittleEndian, hdr); err != nil {
		return err
	}
	row := make([]byte, 3*b.Dx())
	for y := b.Max.Y - 1; y >= b.Min.Y; y-- {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			i := 3 * (x - b.Min.X)
			row[i], row[i+1], row[i+2] = byte(bl>>8), byte(g>>8), byte(r>>8)
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Save writes img to path as PNG (.png) or TGA (.tga).
func Save(path string, img image.Image) (err error) {
	var enc func(io.Writer, image.Image) error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = WritePNG
	case ".tga":
		enc = WriteTGA
	default:
		return fmt.Errorf("%w: %q", ErrFormat, path)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("render: create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return enc(f, img)
}
