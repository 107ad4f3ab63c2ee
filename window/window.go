package window

import (
	"log"
	"unsafe"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/pkg/errors"
	"github.com/veandco/go-sdl2/sdl"

	"voxelcore/conlog"
	"voxelcore/glh"
	"voxelcore/texture"
)

var (
	window  *sdl.Window
	context sdl.GLContext
)

func Get() *sdl.Window {
	return window
}

// Init opens a hidden window with an OpenGL 4.6 core context made current on
// the calling thread. Call it from the main thread.
func Init(width, height int) error {
	if window != nil {
		return nil
	}
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return errors.Wrap(err, "couldn't init sdl video")
	}
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 6)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_FLAGS, sdl.GL_CONTEXT_DEBUG_FLAG)

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_HIDDEN)
	w, err := sdl.CreateWindow("VoxelCore", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(width), int32(height), flags)
	if err != nil {
		sdl.Quit()
		return errors.Wrap(err, "couldn't create window")
	}
	c, err := w.GLCreateContext()
	if err != nil {
		w.Destroy()
		sdl.Quit()
		return errors.Wrap(err, "couldn't create GL context")
	}
	// Initialize Glow
	if err := gl.Init(); err != nil {
		sdl.GLDeleteContext(c)
		w.Destroy()
		sdl.Quit()
		return errors.Wrap(err, "couldn't init gl")
	}
	gl.DebugMessageCallback(debugCb, unsafe.Pointer(nil))
	window = w
	context = c
	conlog.Printf("GL_VERSION: %s\n", gl.GoStr(gl.GetString(gl.VERSION)))
	return nil
}

// NewContext returns a texture context for the GL context opened by Init,
// capped at what the implementation supports.
func NewContext() (*texture.Context, error) {
	if window == nil {
		return nil, errors.New("window not initialized")
	}
	ctx := texture.NewContext(glh.Driver{}, texture.WithPoster(glh.Post))
	if err := InitContext(ctx); err != nil {
		return nil, err
	}
	return ctx, nil
}

// InitContext replaces the default resolution cap with the driver limit.
func InitContext(ctx *texture.Context) error {
	m := ctx.Driver().MaxTextureSize()
	if m <= 0 {
		return errors.Errorf("driver reports max texture size %d", m)
	}
	return ctx.SetMaxResolution(m)
}

func Shutdown() {
	if window == nil {
		return
	}
	sdl.GLDeleteContext(context)
	context = nil
	window.Destroy()
	window = nil
	sdl.Quit()
}

func debugCb(
	source uint32,
	gltype uint32,
	id uint32,
	severity uint32,
	length int32,
	message string,
	userParam unsafe.Pointer) {
	if severity == gl.DEBUG_SEVERITY_HIGH {
		log.Panicf("[GL_DEBUG] source %d gltype %d id %d severity %d length %d: %s", source, gltype, id, severity, length, message)
	} else {
		log.Printf("[GL_DEBUG] source %d gltype %d id %d severity %d length %d: %s", source, gltype, id, severity, length, message)
	}
}
