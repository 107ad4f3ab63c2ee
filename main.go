package main

import (
	"flag"
	"log"

	"github.com/gopxl/mainthread/v2"

	"voxelcore/conlog"
	"voxelcore/image"
	"voxelcore/memdriver"
	"voxelcore/texture"
	"voxelcore/window"
)

var (
	inFile    = flag.String("in", "", "image to upload (png, bmp or tga)")
	outFile   = flag.String("out", "readback.png", "where to write the texture content")
	maxRes    = flag.Int("maxres", 0, "resolution cap, 0 keeps the driver limit")
	nearest   = flag.Bool("nearest", false, "use nearest filtering")
	mipmap    = flag.Bool("mipmap", true, "use mipmaps for minification")
	pixelated = flag.Bool("pixelated", false, "use nearest minification")
	headless  = flag.Bool("headless", false, "use the in-memory driver instead of OpenGL")
)

func newContext() (*texture.Context, func(), error) {
	if *headless {
		return texture.NewContext(memdriver.New(16384)), func() {}, nil
	}
	if err := window.Init(64, 64); err != nil {
		return nil, nil, err
	}
	ctx, err := window.NewContext()
	if err != nil {
		window.Shutdown()
		return nil, nil, err
	}
	return ctx, window.Shutdown, nil
}

func run() {
	img, err := image.Load(*inFile)
	if err != nil {
		log.Fatalf("Could not load image: %v", err)
	}
	ctx, shutdown, err := newContext()
	if err != nil {
		log.Fatalf("Could not create graphics context: %v", err)
	}
	defer shutdown()
	if *maxRes > 0 {
		if err := ctx.SetMaxResolution(*maxRes); err != nil {
			log.Fatalf("Could not set resolution cap: %v", err)
		}
	}

	tex, err := texture.FromImage(ctx, img)
	if err != nil {
		log.Fatalf("Could not create texture: %v", err)
	}
	defer tex.Destroy()
	conlog.Printf("uploaded %s as texture %d (%dx%d %v, cap %d)\n",
		*inFile, tex.Handle(), tex.Width(), tex.Height(), tex.Format(), ctx.MaxResolution())

	if *nearest {
		tex.SetNearestFilter()
	} else {
		tex.SetMipMapping(*mipmap, *pixelated)
	}

	data, err := tex.ReadData()
	if err != nil {
		log.Fatalf("Could not read texture: %v", err)
	}
	if err := image.Write(*outFile, data.Data(), data.Width(), data.Height()); err != nil {
		log.Fatalf("Could not write %s: %v", *outFile, err)
	}
	conlog.SafePrintf("wrote %s\n", *outFile)
}

func main() {
	flag.Parse()
	if *inFile == "" {
		flag.Usage()
		log.Fatalf("-in is required")
	}
	// SDL and GL calls have to happen on the main thread.
	mainthread.Run(func() {
		mainthread.Call(run)
	})
}
