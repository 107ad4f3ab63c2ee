// SPDX-License-Identifier: GPL-2.0-or-later

package texture

import (
	"strconv"
	"sync/atomic"

	"github.com/pkg/errors"

	"voxelcore/cvar"
	"voxelcore/driver"
)

// DefaultMaxResolution is the resolution cap until the window code knows
// better.
const DefaultMaxResolution = 1024

// noCopy makes go vet complain about copies of values embedding it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Context is the texture binding state of one graphics context.
//
// A Context and every Texture created from it must only be used from the
// thread owning the graphics context. Nothing in here locks; locking would
// not make concurrent use of the driver safe anyway.
type Context struct {
	noCopy noCopy

	drv    driver.Driver
	maxRes *cvar.Cvar
	post   func(func())
	live   atomic.Int32
}

type Option func(*Context)

// WithMaxResolution sets the initial resolution cap.
func WithMaxResolution(n int) Option {
	return func(c *Context) {
		c.maxRes.SetValue(float32(n))
	}
}

// WithPoster sets how releases of leaked textures get to the context thread.
// For OpenGL this is glh.Post.
func WithPoster(post func(func())) Option {
	return func(c *Context) {
		c.post = post
	}
}

func NewContext(drv driver.Driver, opts ...Option) *Context {
	c := &Context{
		drv:    drv,
		maxRes: cvar.New("r_maxresolution", strconv.Itoa(DefaultMaxResolution), cvar.NONE),
		post:   func(f func()) { f() },
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Context) Driver() driver.Driver {
	return c.drv
}

// MaxResolution returns the largest accepted texture width or height.
func (c *Context) MaxResolution() int {
	return c.maxRes.Int()
}

// SetMaxResolution changes the resolution cap. This is only possible before
// the first texture was created.
func (c *Context) SetMaxResolution(n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidDimension, "resolution cap %d", n)
	}
	if !c.maxRes.SetValue(float32(n)) {
		return errors.Wrapf(ErrResolutionLocked, "keeping %d", c.MaxResolution())
	}
	return nil
}

// Bound returns the texture the driver has bound.
func (c *Context) Bound() driver.Handle {
	return c.drv.BoundTexture()
}

// Unbind leaves no texture bound, whatever was bound before.
func (c *Context) Unbind() {
	c.drv.BindTexture(driver.NoTexture)
}

// Live returns the number of textures owned through this context that were
// not released yet.
func (c *Context) Live() int {
	return int(c.live.Load())
}

func (c *Context) checkSize(width, height int) error {
	m := c.MaxResolution()
	if width <= 0 || height <= 0 || width > m || height > m {
		return errors.Wrapf(ErrInvalidDimension, "%dx%d with cap %d", width, height, m)
	}
	return nil
}

func (c *Context) acquire() {
	c.maxRes.Lock()
	c.live.Add(1)
}

func (c *Context) release(h driver.Handle) {
	c.drv.DeleteTexture(h)
	c.live.Add(-1)
}
