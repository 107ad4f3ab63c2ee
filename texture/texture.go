// SPDX-License-Identifier: GPL-2.0-or-later

// Package texture wraps 2D GPU textures.
package texture

import (
	"runtime"

	"github.com/pkg/errors"

	"voxelcore/conlog"
	"voxelcore/driver"
	"voxelcore/image"
)

var (
	ErrInvalidDimension = errors.New("invalid texture dimension")
	ErrResolutionLocked = errors.New("resolution cap is fixed once textures exist")
	ErrInvalidHandle    = errors.New("invalid texture handle")
	ErrUnknownFormat    = image.ErrUnknownFormat
	ErrShortData        = image.ErrShortData
)

// Texture owns one driver texture. It must not be copied, pass *Texture.
type Texture struct {
	noCopy noCopy

	ctx     *Context
	handle  driver.Handle
	width   int
	height  int
	format  image.Format
	cleanup runtime.Cleanup
}

func (c *Context) own(h driver.Handle, width, height int, format image.Format) *Texture {
	t := &Texture{
		ctx:    c,
		handle: h,
		width:  width,
		height: height,
		format: format,
	}
	c.acquire()
	t.cleanup = runtime.AddCleanup(t, func(h driver.Handle) {
		c.post(func() {
			conlog.Printf("texture %d was not destroyed, releasing it\n", h)
			c.release(h)
		})
	}, h)
	return t
}

// FromHandle takes ownership of an existing driver texture. No driver calls
// are made. On error the handle stays with the caller.
func FromHandle(ctx *Context, h driver.Handle, width, height int) (*Texture, error) {
	if h == driver.NoTexture {
		return nil, ErrInvalidHandle
	}
	if err := ctx.checkSize(width, height); err != nil {
		return nil, err
	}
	return ctx.own(h, width, height, image.RGBA8888), nil
}

// New uploads data as a new texture. data is row-major without row padding.
// The texture minifies with LINEAR_MIPMAP_NEAREST over a single mip level
// and magnifies with NEAREST, which keeps pixel art sharp up close.
// Nothing is bound afterwards.
func New(ctx *Context, data []byte, width, height int, format image.Format) (*Texture, error) {
	if err := ctx.checkSize(width, height); err != nil {
		return nil, err
	}
	c := format.Channels()
	if c == 0 {
		return nil, errors.Wrapf(ErrUnknownFormat, "%v", format)
	}
	if n := width * height * c; len(data) < n {
		return nil, errors.Wrapf(ErrShortData, "%dx%d %v needs %d bytes, got %d", width, height, format, n, len(data))
	}

	d := ctx.drv
	h, err := d.GenTexture()
	if err != nil {
		return nil, errors.Wrap(err, "could not allocate texture")
	}
	fail := func(err error, msg string) (*Texture, error) {
		d.BindTexture(driver.NoTexture)
		d.DeleteTexture(h)
		return nil, errors.Wrap(err, msg)
	}
	d.BindTexture(h)
	d.SetUnpackAlignment(1)
	if err := d.TexImage2D(format, width, height, data); err != nil {
		return fail(err, "could not upload texture")
	}
	d.TexParameter(driver.MinFilter, int32(driver.LinearMipmapNearest))
	d.TexParameter(driver.MagFilter, int32(driver.Nearest))
	if err := d.GenerateMipmap(); err != nil {
		return fail(err, "could not generate mipmaps")
	}
	d.TexParameter(driver.MaxLevel, 1)
	d.BindTexture(driver.NoTexture)

	return ctx.own(h, width, height, format), nil
}

// FromImage creates a texture with the size, format and pixels of img.
// img is not modified.
func FromImage(ctx *Context, img *image.ImageData) (*Texture, error) {
	return New(ctx, img.Data(), img.Width(), img.Height(), img.Format())
}

// Destroy releases the driver texture. Calling it again does nothing, any
// other use afterwards is a bug.
func (t *Texture) Destroy() {
	if t.handle == driver.NoTexture {
		return
	}
	t.cleanup.Stop()
	t.ctx.release(t.handle)
	t.handle = driver.NoTexture
}

func (t *Texture) Bind() {
	t.ctx.drv.BindTexture(t.handle)
}

// Unbind leaves no texture bound. It does not restore an earlier binding.
func (t *Texture) Unbind() {
	t.ctx.Unbind()
}

// ReloadImage replaces size and content with those of img.
func (t *Texture) ReloadImage(img *image.ImageData) error {
	return t.reload(img.Width(), img.Height(), img.Data())
}

// Reload replaces the content with RGBA8888 data of the current size. This
// is independent of the format the texture was created with.
// Nothing is bound afterwards.
func (t *Texture) Reload(data []byte) error {
	return t.reload(t.width, t.height, data)
}

func (t *Texture) reload(width, height int, data []byte) error {
	if err := t.ctx.checkSize(width, height); err != nil {
		return err
	}
	if n := width * height * 4; len(data) < n {
		return errors.Wrapf(ErrShortData, "reload of %dx%d needs %d bytes, got %d", width, height, n, len(data))
	}
	d := t.ctx.drv
	t.Bind()
	err := d.TexImage2D(image.RGBA8888, width, height, data)
	d.BindTexture(driver.NoTexture)
	if err != nil {
		return errors.Wrap(err, "could not reload texture")
	}
	t.width = width
	t.height = height
	return nil
}

// ReadData returns a copy of the content as RGBA8888.
func (t *Texture) ReadData() (*image.ImageData, error) {
	data := make([]byte, t.width*t.height*4)
	d := t.ctx.drv
	t.Bind()
	err := d.GetTexImage(image.RGBA8888, data)
	d.BindTexture(driver.NoTexture)
	if err != nil {
		return nil, errors.Wrap(err, "could not read texture")
	}
	return image.New(image.RGBA8888, t.width, t.height, data)
}

func (t *Texture) SetNearestFilter() {
	d := t.ctx.drv
	t.Bind()
	d.TexParameter(driver.MinFilter, int32(driver.Nearest))
	d.TexParameter(driver.MagFilter, int32(driver.Nearest))
	d.BindTexture(driver.NoTexture)
}

// SetMipMapping selects the minification filter. pixelated always wins and
// gives NEAREST. The magnification filter is left alone.
func (t *Texture) SetMipMapping(enabled, pixelated bool) {
	f := driver.Linear
	switch {
	case pixelated:
		f = driver.Nearest
	case enabled:
		f = driver.LinearMipmapNearest
	}
	d := t.ctx.drv
	t.Bind()
	d.TexParameter(driver.MinFilter, int32(f))
	d.BindTexture(driver.NoTexture)
}

// Handle is meant for code issuing its own driver calls.
func (t *Texture) Handle() driver.Handle {
	return t.handle
}

func (t *Texture) Width() int {
	return t.width
}

func (t *Texture) Height() int {
	return t.height
}

// Format is the format the texture was created with.
func (t *Texture) Format() image.Format {
	return t.format
}
