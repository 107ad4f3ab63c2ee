// SPDX-License-Identifier: GPL-2.0-or-later

package memdriver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"voxelcore/driver"
	"voxelcore/image"
)

func TestHandlesAreNotReused(t *testing.T) {
	d := New(64)
	a, err := d.GenTexture()
	if err != nil {
		t.Fatal(err)
	}
	d.DeleteTexture(a)
	b, err := d.GenTexture()
	if err != nil {
		t.Fatal(err)
	}
	if a == b || a == driver.NoTexture || b == driver.NoTexture {
		t.Errorf("GenTexture returned %d and %d", a, b)
	}
	if d.Exists(a) || !d.Exists(b) {
		t.Errorf("Exists(%d)=%v Exists(%d)=%v", a, d.Exists(a), b, d.Exists(b))
	}
}

func TestNeedsBoundTexture(t *testing.T) {
	d := New(64)
	if err := d.TexImage2D(image.RGBA8888, 1, 1, make([]byte, 4)); !errors.Is(err, driver.ErrNoTexture) {
		t.Errorf("TexImage2D without binding: got %v, want ErrNoTexture", err)
	}
	if err := d.GetTexImage(image.RGBA8888, make([]byte, 4)); !errors.Is(err, driver.ErrNoTexture) {
		t.Errorf("GetTexImage without binding: got %v, want ErrNoTexture", err)
	}
}

func TestUnpackAlignment(t *testing.T) {
	d := New(64)
	h, _ := d.GenTexture()
	d.BindTexture(h)
	// 1 pixel rgb rows are padded to 4 bytes with the default alignment.
	padded := []byte{1, 2, 3, 0, 4, 5, 6}
	if err := d.TexImage2D(image.RGB888, 1, 2, padded); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 4, 5, 6}, d.Pixels(h)); diff != "" {
		t.Errorf("alignment 4 mismatch (-want +got):\n%s", diff)
	}
	d.SetUnpackAlignment(1)
	if err := d.TexImage2D(image.RGB888, 1, 2, []byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 4, 5, 6}, d.Pixels(h)); diff != "" {
		t.Errorf("alignment 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestReadbackConvertsToRGBA(t *testing.T) {
	d := New(64)
	h, _ := d.GenTexture()
	d.BindTexture(h)
	d.SetUnpackAlignment(1)
	if err := d.TexImage2D(image.RGB888, 2, 1, []byte{1, 2, 3, 4, 5, 6}); err != nil {
		t.Fatal(err)
	}
	got := make([]byte, 8)
	if err := d.GetTexImage(image.RGBA8888, got); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]byte{1, 2, 3, 255, 4, 5, 6, 255}, got); diff != "" {
		t.Errorf("GetTexImage mismatch (-want +got):\n%s", diff)
	}
}

func TestMipmapMaxLevel(t *testing.T) {
	d := New(64)
	h, _ := d.GenTexture()
	d.BindTexture(h)
	d.SetUnpackAlignment(1)
	if err := d.TexImage2D(image.RGBA8888, 8, 4, make([]byte, 8*4*4)); err != nil {
		t.Fatal(err)
	}
	if err := d.GenerateMipmap(); err != nil {
		t.Fatal(err)
	}
	if got := d.MipLevels(h); got != 3 {
		t.Errorf("MipLevels after full chain = %d, want 3", got)
	}
	d.TexParameter(driver.MaxLevel, 1)
	if got := d.MipLevels(h); got != 1 {
		t.Errorf("MipLevels after MAX_LEVEL 1 = %d, want 1", got)
	}
}

func TestMaxTextureSize(t *testing.T) {
	d := New(4)
	h, _ := d.GenTexture()
	d.BindTexture(h)
	if err := d.TexImage2D(image.RGBA8888, 5, 1, make([]byte, 20)); err == nil {
		t.Errorf("TexImage2D above the max size succeeded")
	}
}

func TestFail(t *testing.T) {
	d := New(64)
	boom := errors.New("boom")
	d.Fail(OpGenTexture, boom)
	if _, err := d.GenTexture(); err != boom {
		t.Errorf("GenTexture = %v, want %v", err, boom)
	}
	if _, err := d.GenTexture(); err != nil {
		t.Errorf("second GenTexture = %v, want success", err)
	}
}

func TestDeleteBoundResetsBinding(t *testing.T) {
	d := New(64)
	h, _ := d.GenTexture()
	d.BindTexture(h)
	d.DeleteTexture(h)
	if got := d.BoundTexture(); got != driver.NoTexture {
		t.Errorf("BoundTexture after delete = %d, want NoTexture", got)
	}
	if got := d.Deletes(h); got != 1 {
		t.Errorf("Deletes = %d, want 1", got)
	}
}
