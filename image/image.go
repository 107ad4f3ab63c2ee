// SPDX-License-Identifier: GPL-2.0-or-later

package image

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
)

// Format is the channel layout of pixel data. Every channel is 8 bit.
type Format int

const (
	FormatUnknown Format = iota
	RGB888
	RGBA8888
)

// Channels returns the number of bytes per pixel or 0 for unknown formats.
func (f Format) Channels() int {
	switch f {
	case RGB888:
		return 3
	case RGBA8888:
		return 4
	}
	return 0
}

func (f Format) String() string {
	switch f {
	case RGB888:
		return "rgb888"
	case RGBA8888:
		return "rgba8888"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

var (
	ErrUnknownFormat = errors.New("unknown image format")
	ErrShortData     = errors.New("not enough pixel data")
	ErrBadSize       = errors.New("image size must be positive")
)

// ImageData is a contiguous, row-major, unpadded pixel buffer.
type ImageData struct {
	format Format
	width  int
	height int
	data   []byte
}

// New wraps data. It needs at least width*height*format.Channels() bytes,
// any extra bytes are cut off.
func New(format Format, width, height int, data []byte) (*ImageData, error) {
	c := format.Channels()
	if c == 0 {
		return nil, errors.Wrapf(ErrUnknownFormat, "%v", format)
	}
	if width <= 0 || height <= 0 {
		return nil, errors.Wrapf(ErrBadSize, "%dx%d", width, height)
	}
	n := width * height * c
	if len(data) < n {
		return nil, errors.Wrapf(ErrShortData, "%dx%d %v needs %d bytes, got %d", width, height, format, n, len(data))
	}
	return &ImageData{
		format: format,
		width:  width,
		height: height,
		data:   data[:n],
	}, nil
}

func (i *ImageData) Format() Format {
	return i.format
}

func (i *ImageData) Width() int {
	return i.width
}

func (i *ImageData) Height() int {
	return i.height
}

// Data returns the underlying buffer, not a copy.
func (i *ImageData) Data() []byte {
	return i.data
}

// NRGBA returns an image sharing the pixel buffer if the format is RGBA8888
// and a converted copy otherwise.
func (i *ImageData) NRGBA() *image.NRGBA {
	r := image.Rect(0, 0, i.width, i.height)
	if i.format == RGBA8888 {
		return &image.NRGBA{
			Pix:    i.data,
			Stride: 4 * i.width,
			Rect:   r,
		}
	}
	img := image.NewNRGBA(r)
	for p := 0; p < i.width*i.height; p++ {
		img.Pix[p*4+0] = i.data[p*3+0]
		img.Pix[p*4+1] = i.data[p*3+1]
		img.Pix[p*4+2] = i.data[p*3+2]
		img.Pix[p*4+3] = 255
	}
	return img
}

// FromImage converts any image into RGBA8888 data.
func FromImage(src image.Image) (*ImageData, error) {
	b := src.Bounds()
	if nrgba, ok := src.(*image.NRGBA); ok && nrgba.Stride == 4*b.Dx() && b.Min == (image.Point{}) {
		return New(RGBA8888, b.Dx(), b.Dy(), nrgba.Pix)
	}
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return New(RGBA8888, b.Dx(), b.Dy(), dst.Pix)
}

// Write expects RGBA 8bit data
func Write(name string, data []byte, width, height int) error {
	img, err := New(RGBA8888, width, height, data)
	if err != nil {
		return errors.Wrap(err, "tried to write an image")
	}

	f, err := os.Create(name)
	if err != nil {
		log.Println(err)
		return err
	}
	defer f.Close()

	if err := png.Encode(f, img.NRGBA()); err != nil {
		log.Println(err)
		return err
	}
	return nil
}

// Load reads a png, bmp or tga file.
func Load(name string) (*ImageData, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		img, err := png.Decode(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load %v", name)
		}
		return FromImage(img)
	case ".bmp":
		img, err := bmp.Decode(f)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to load %v", name)
		}
		return FromImage(img)
	case ".tga":
		return decodeTGA(f)
	default:
		return nil, errors.Errorf("image %v has unsupported extension %q", name, ext)
	}
}

type tgaHeader struct {
	IDLength       uint8
	ColormapType   uint8
	ImageType      uint8
	ColormapIndex  uint16
	ColormapLength uint16
	ColormapSize   uint8
	XOrigin        uint16
	YOrigin        uint16
	Width          uint16
	Height         uint16
	PixelSize      uint8
	Attributes     uint8
}

// decodeTGA handles uncompressed true color images. Pixels are stored BGR(A)
// and bottom-up unless bit 5 of the attributes is set.
func decodeTGA(r io.Reader) (*ImageData, error) {
	var header tgaHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, errors.Wrap(err, "invalid tga header")
	}
	if header.ImageType != 2 {
		return nil, errors.Errorf("tga image type %d is not supported", header.ImageType)
	}
	if header.ColormapType != 0 || (header.PixelSize != 32 && header.PixelSize != 24) {
		return nil, errors.New("tga is not 24bit or 32bit")
	}
	if header.IDLength != 0 {
		// skip Image ID
		if _, err := io.CopyN(io.Discard, r, int64(header.IDLength)); err != nil {
			return nil, errors.Wrap(err, "failed to skip tga id")
		}
	}

	width, height := int(header.Width), int(header.Height)
	if width == 0 || height == 0 {
		return nil, errors.Wrapf(ErrBadSize, "%dx%d", width, height)
	}
	topDown := header.Attributes&0x20 != 0
	bpp := int(header.PixelSize) / 8
	pix := make([]byte, width*height*4)
	row := make([]byte, width*bpp)
	for y := 0; y < height; y++ {
		if _, err := io.ReadFull(r, row); err != nil {
			return nil, errors.Wrap(err, "not enough pixels")
		}
		dy := y
		if !topDown {
			dy = height - 1 - y
		}
		for x := 0; x < width; x++ {
			s := row[x*bpp:]
			d := pix[(dy*width+x)*4:]
			d[0] = s[2]
			d[1] = s[1]
			d[2] = s[0]
			if bpp == 4 {
				d[3] = s[3]
			} else {
				d[3] = 255
			}
		}
	}
	return New(RGBA8888, width, height, pix)
}
