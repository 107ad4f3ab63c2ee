// SPDX-License-Identifier: GPL-2.0-or-later

// Package driver describes the graphics driver capabilities a texture needs.
package driver

import (
	"github.com/pkg/errors"

	"voxelcore/image"
)

// Handle identifies a GPU texture. The zero value is NoTexture.
type Handle uint32

// NoTexture is bound to mean "no texture".
const NoTexture Handle = 0

// Param is an integer sampling parameter of the bound texture.
type Param uint32

// Values match the GL enums so OpenGL backends can pass them through.
const (
	MagFilter Param = 0x2800
	MinFilter Param = 0x2801
	MaxLevel  Param = 0x813D
)

func (p Param) String() string {
	switch p {
	case MagFilter:
		return "MAG_FILTER"
	case MinFilter:
		return "MIN_FILTER"
	case MaxLevel:
		return "MAX_LEVEL"
	}
	return "UNKNOWN_PARAM"
}

type Filter int32

const (
	Nearest              Filter = 0x2600
	Linear               Filter = 0x2601
	NearestMipmapNearest Filter = 0x2700
	LinearMipmapNearest  Filter = 0x2701
	NearestMipmapLinear  Filter = 0x2702
	LinearMipmapLinear   Filter = 0x2703
)

func (f Filter) String() string {
	switch f {
	case Nearest:
		return "NEAREST"
	case Linear:
		return "LINEAR"
	case NearestMipmapNearest:
		return "NEAREST_MIPMAP_NEAREST"
	case LinearMipmapNearest:
		return "LINEAR_MIPMAP_NEAREST"
	case NearestMipmapLinear:
		return "NEAREST_MIPMAP_LINEAR"
	case LinearMipmapLinear:
		return "LINEAR_MIPMAP_LINEAR"
	}
	return "UNKNOWN_FILTER"
}

var ErrNoTexture = errors.New("no texture bound")

// Driver is the 2D texture subset of a graphics API. Except for GenTexture,
// DeleteTexture and BindTexture every call acts on the bound texture.
// Implementations are not safe for concurrent use unless they say so.
type Driver interface {
	GenTexture() (Handle, error)
	DeleteTexture(h Handle)
	BindTexture(h Handle)
	BoundTexture() Handle
	SetUnpackAlignment(n int)
	// TexImage2D replaces level 0 of the bound texture. data holds at least
	// width*height*format.Channels() bytes.
	TexImage2D(format image.Format, width, height int, data []byte) error
	GenerateMipmap() error
	TexParameter(p Param, v int32)
	GetTexParameter(p Param) int32
	// GetTexImage reads level 0 of the bound texture converted into format.
	GetTexImage(format image.Format, dst []byte) error
	MaxTextureSize() int
}
