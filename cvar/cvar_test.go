// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import "testing"

func TestSetValue(t *testing.T) {
	cv := New("r_test", "1024", NONE)
	if cv.Int() != 1024 || cv.String() != "1024" {
		t.Fatalf("New = %q %v, want 1024", cv.String(), cv.Value())
	}
	cv.SetValue(16)
	if cv.String() != "16" {
		t.Errorf("SetValue(16).String() = %q", cv.String())
	}
	cv.SetValue(0.5)
	if cv.String() != "0.5" || cv.Value() != 0.5 {
		t.Errorf("SetValue(0.5) = %q %v", cv.String(), cv.Value())
	}
	cv.Reset()
	if cv.Int() != 1024 {
		t.Errorf("Reset = %v, want 1024", cv.Value())
	}
}

func TestLock(t *testing.T) {
	cv := New("r_test", "8", NONE)
	calls := 0
	cv.SetCallback(func(*Cvar) { calls++ })
	if !cv.SetByString("9") {
		t.Errorf("SetByString on unlocked cvar failed")
	}
	cv.Lock()
	if cv.SetByString("10") {
		t.Errorf("SetByString on locked cvar succeeded")
	}
	if cv.Int() != 9 || calls != 1 {
		t.Errorf("after lock value = %v calls = %d, want 9 and 1", cv.Value(), calls)
	}
	if !cv.Locked() {
		t.Errorf("Locked() = false")
	}
}

func TestROM(t *testing.T) {
	cv := New("r_rom", "3", ROM)
	if cv.Int() != 3 {
		t.Errorf("ROM cvar initial value = %v, want 3", cv.Value())
	}
	if cv.SetValue(4) {
		t.Errorf("SetValue on ROM cvar succeeded")
	}
}
