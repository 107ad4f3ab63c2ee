// SPDX-License-Identifier: GPL-2.0-or-later
package glh

import (
	"fmt"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gopxl/mainthread/v2"
	"github.com/pkg/errors"

	"voxelcore/driver"
	"voxelcore/image"
)

// Error is a value returned by glGetError.
type Error uint32

func (e Error) Error() string {
	switch e {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	}
	return fmt.Sprintf("GL error 0x%x", uint32(e))
}

// checkError returns the first pending error and drains the rest.
func checkError() error {
	var first uint32
	for e := gl.GetError(); e != gl.NO_ERROR; e = gl.GetError() {
		if first == 0 {
			first = e
		}
	}
	if first == 0 {
		return nil
	}
	return Error(first)
}

// Post runs f on the main thread without waiting for it. Use it as the
// texture.Context poster.
func Post(f func()) {
	mainthread.CallNonBlock(f)
}

// Driver talks to the current OpenGL context. Only use it from the main
// thread, after gl.Init.
type Driver struct{}

var _ driver.Driver = Driver{}

func glFormat(f image.Format) (uint32, error) {
	switch f {
	case image.RGB888:
		return gl.RGB, nil
	case image.RGBA8888:
		return gl.RGBA, nil
	}
	return 0, errors.Wrapf(image.ErrUnknownFormat, "%v", f)
}

func (Driver) GenTexture() (driver.Handle, error) {
	var id uint32
	gl.GenTextures(1, &id)
	if err := checkError(); err != nil {
		return driver.NoTexture, err
	}
	return driver.Handle(id), nil
}

func (Driver) DeleteTexture(h driver.Handle) {
	id := uint32(h)
	gl.DeleteTextures(1, &id)
}

func (Driver) BindTexture(h driver.Handle) {
	gl.BindTexture(gl.TEXTURE_2D, uint32(h))
}

func (Driver) BoundTexture() driver.Handle {
	var id int32
	gl.GetIntegerv(gl.TEXTURE_BINDING_2D, &id)
	return driver.Handle(id)
}

func (Driver) SetUnpackAlignment(n int) {
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, int32(n))
}

func (Driver) TexImage2D(format image.Format, width, height int, data []byte) error {
	f, err := glFormat(format)
	if err != nil {
		return err
	}
	if len(data) < width*height*format.Channels() {
		return errors.Wrapf(image.ErrShortData, "%dx%d %v", width, height, format)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(f), int32(width), int32(height), 0,
		f, gl.UNSIGNED_BYTE, gl.Ptr(data))
	return checkError()
}

func (Driver) GenerateMipmap() error {
	gl.GenerateMipmap(gl.TEXTURE_2D)
	return checkError()
}

func (Driver) TexParameter(p driver.Param, v int32) {
	gl.TexParameteri(gl.TEXTURE_2D, uint32(p), v)
}

func (Driver) GetTexParameter(p driver.Param) int32 {
	var v int32
	gl.GetTexParameteriv(gl.TEXTURE_2D, uint32(p), &v)
	return v
}

func (Driver) GetTexImage(format image.Format, dst []byte) error {
	f, err := glFormat(format)
	if err != nil {
		return err
	}
	var w, h int32
	gl.GetTexLevelParameteriv(gl.TEXTURE_2D, 0, gl.TEXTURE_WIDTH, &w)
	gl.GetTexLevelParameteriv(gl.TEXTURE_2D, 0, gl.TEXTURE_HEIGHT, &h)
	if len(dst) < int(w*h)*format.Channels() || len(dst) == 0 {
		return errors.Wrapf(image.ErrShortData, "readback of %dx%d %v", w, h, format)
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.GetTexImage(gl.TEXTURE_2D, 0, f, gl.UNSIGNED_BYTE, gl.Ptr(dst))
	return checkError()
}

func (Driver) MaxTextureSize() int {
	var s int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &s)
	return int(s)
}
