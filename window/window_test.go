package window

import (
	"errors"
	"testing"

	"voxelcore/memdriver"
	"voxelcore/texture"
)

func TestInitContextUsesDriverLimit(t *testing.T) {
	ctx := texture.NewContext(memdriver.New(16384))
	if err := InitContext(ctx); err != nil {
		t.Fatalf("InitContext: %v", err)
	}
	if got := ctx.MaxResolution(); got != 16384 {
		t.Errorf("MaxResolution = %d, want 16384", got)
	}
}

func TestInitContextAfterFirstTexture(t *testing.T) {
	ctx := texture.NewContext(memdriver.New(16384))
	d := ctx.Driver().(*memdriver.Driver)
	h, err := d.GenTexture()
	if err != nil {
		t.Fatal(err)
	}
	owned, err := texture.FromHandle(ctx, h, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	defer owned.Destroy()
	if err := InitContext(ctx); !errors.Is(err, texture.ErrResolutionLocked) {
		t.Errorf("InitContext after first texture: got %v, want ErrResolutionLocked", err)
	}
}

func TestNewContextNeedsInit(t *testing.T) {
	if _, err := NewContext(); err == nil {
		t.Errorf("NewContext without Init succeeded")
	}
}
