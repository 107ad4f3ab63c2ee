// SPDX-License-Identifier: GPL-2.0-or-later

// Package memdriver keeps textures in main memory. It behaves like an OpenGL
// implementation for the calls in driver.Driver and records enough state to
// inspect what a caller did.
package memdriver

import (
	"sync"

	"github.com/pkg/errors"

	"voxelcore/driver"
	"voxelcore/image"
)

type Op int

const (
	OpGenTexture Op = iota
	OpTexImage2D
	OpGenerateMipmap
	OpGetTexImage
)

var ErrUnknownTexture = errors.New("unknown texture")

type texture struct {
	format    image.Format
	width     int
	height    int
	pix       []byte
	params    map[driver.Param]int32
	mipLevels int
	deletes   int
}

// Driver is safe for concurrent use.
type Driver struct {
	mu        sync.Mutex
	next      driver.Handle
	bound     driver.Handle
	alignment int
	maxSize   int
	textures  map[driver.Handle]*texture
	failures  map[Op]error
}

var _ driver.Driver = (*Driver)(nil)

func New(maxTextureSize int) *Driver {
	return &Driver{
		alignment: 4,
		maxSize:   maxTextureSize,
		textures:  make(map[driver.Handle]*texture),
		failures:  make(map[Op]error),
	}
}

// Fail makes the next call of op return err.
func (d *Driver) Fail(op Op, err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.failures[op] = err
}

func (d *Driver) failure(op Op) error {
	err, ok := d.failures[op]
	if !ok {
		return nil
	}
	delete(d.failures, op)
	return err
}

func (d *Driver) GenTexture() (driver.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure(OpGenTexture); err != nil {
		return driver.NoTexture, err
	}
	d.next++
	d.textures[d.next] = &texture{
		// GL defaults
		params: map[driver.Param]int32{
			driver.MinFilter: int32(driver.NearestMipmapLinear),
			driver.MagFilter: int32(driver.Linear),
			driver.MaxLevel:  1000,
		},
	}
	return d.next, nil
}

// DeleteTexture ignores unknown handles like glDeleteTextures does. Deleting
// the bound texture resets the binding.
func (d *Driver) DeleteTexture(h driver.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[h]
	if !ok {
		return
	}
	t.deletes++
	if d.bound == h {
		d.bound = driver.NoTexture
	}
}

func (d *Driver) BindTexture(h driver.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.bound = h
}

func (d *Driver) BoundTexture() driver.Handle {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bound
}

func (d *Driver) SetUnpackAlignment(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.alignment = n
}

func (d *Driver) UnpackAlignment() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.alignment
}

// current must be called with mu held.
func (d *Driver) current() (*texture, error) {
	if d.bound == driver.NoTexture {
		return nil, driver.ErrNoTexture
	}
	t, ok := d.textures[d.bound]
	if !ok || t.deletes > 0 {
		return nil, errors.Wrapf(ErrUnknownTexture, "handle %d", d.bound)
	}
	return t, nil
}

// rowSize returns the size of a row including the unpack alignment padding.
func rowSize(width, channels, alignment int) int {
	n := width * channels
	if alignment > 1 {
		n = (n + alignment - 1) / alignment * alignment
	}
	return n
}

func (d *Driver) TexImage2D(format image.Format, width, height int, data []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure(OpTexImage2D); err != nil {
		return err
	}
	t, err := d.current()
	if err != nil {
		return err
	}
	c := format.Channels()
	if c == 0 {
		return errors.Wrapf(image.ErrUnknownFormat, "%v", format)
	}
	if width <= 0 || height <= 0 || width > d.maxSize || height > d.maxSize {
		return errors.Errorf("invalid texture size %dx%d", width, height)
	}
	stride := rowSize(width, c, d.alignment)
	if len(data) < stride*(height-1)+width*c {
		return errors.Wrapf(image.ErrShortData, "%dx%d %v", width, height, format)
	}
	pix := make([]byte, width*height*c)
	for y := 0; y < height; y++ {
		copy(pix[y*width*c:(y+1)*width*c], data[y*stride:])
	}
	t.format = format
	t.width = width
	t.height = height
	t.pix = pix
	t.mipLevels = 0
	return nil
}

// GenerateMipmap records how many levels below the base a full chain has,
// limited by MAX_LEVEL.
func (d *Driver) GenerateMipmap() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure(OpGenerateMipmap); err != nil {
		return err
	}
	t, err := d.current()
	if err != nil {
		return err
	}
	if t.pix == nil {
		return errors.New("texture has no image")
	}
	levels := 0
	for s := max(t.width, t.height); s > 1; s >>= 1 {
		levels++
	}
	t.mipLevels = min(levels, int(t.params[driver.MaxLevel]))
	return nil
}

func (d *Driver) TexParameter(p driver.Param, v int32) {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.current()
	if err != nil {
		return
	}
	t.params[p] = v
	if p == driver.MaxLevel && t.mipLevels > int(v) {
		t.mipLevels = int(v)
	}
}

func (d *Driver) GetTexParameter(p driver.Param) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, err := d.current()
	if err != nil {
		return 0
	}
	return t.params[p]
}

// GetTexImage packs rows tightly. Missing alpha reads as 255.
func (d *Driver) GetTexImage(format image.Format, dst []byte) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.failure(OpGetTexImage); err != nil {
		return err
	}
	t, err := d.current()
	if err != nil {
		return err
	}
	c := format.Channels()
	if c == 0 {
		return errors.Wrapf(image.ErrUnknownFormat, "%v", format)
	}
	n := t.width * t.height
	if len(dst) < n*c {
		return errors.Wrapf(image.ErrShortData, "readback of %dx%d %v", t.width, t.height, format)
	}
	sc := t.format.Channels()
	for p := 0; p < n; p++ {
		s := t.pix[p*sc:]
		o := dst[p*c:]
		for i := 0; i < c; i++ {
			switch {
			case i < sc:
				o[i] = s[i]
			case i == 3:
				o[i] = 255
			default:
				o[i] = 0
			}
		}
	}
	return nil
}

func (d *Driver) MaxTextureSize() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxSize
}

// Deletes returns how often h was deleted.
func (d *Driver) Deletes(h driver.Handle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.textures[h]; ok {
		return t.deletes
	}
	return 0
}

// Exists reports whether h was generated and not deleted.
func (d *Driver) Exists(h driver.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[h]
	return ok && t.deletes == 0
}

// Textures returns the number of textures not yet deleted.
func (d *Driver) Textures() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := 0
	for _, t := range d.textures {
		if t.deletes == 0 {
			n++
		}
	}
	return n
}

// Pixels returns a copy of level 0 in its stored format.
func (d *Driver) Pixels(h driver.Handle) []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	t, ok := d.textures[h]
	if !ok {
		return nil
	}
	return append([]byte(nil), t.pix...)
}

func (d *Driver) MipLevels(h driver.Handle) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.textures[h]; ok {
		return t.mipLevels
	}
	return 0
}

func (d *Driver) Param(h driver.Handle, p driver.Param) int32 {
	d.mu.Lock()
	defer d.mu.Unlock()
	if t, ok := d.textures[h]; ok {
		return t.params[p]
	}
	return 0
}
