// SPDX-License-Identifier: GPL-2.0-or-later

package cvar

import (
	"strconv"
)

type flag uint64

const (
	// cvar flags bitfield
	NONE flag = 0
	ROM  flag = 1 << 6
)

type CallbackFunc func(cv *Cvar)

type Cvar struct {
	rom      bool
	callback CallbackFunc
	name     string
	// stringValue is the truth, value the derived one
	stringValue  string
	value        float32
	defaultValue string
}

func New(name, value string, flags flag) *Cvar {
	cv := &Cvar{name: name, defaultValue: value}
	cv.SetByString(value)
	if flags&ROM != 0 {
		cv.rom = true
	}
	return cv
}

func (cv *Cvar) SetCallback(cb CallbackFunc) {
	cv.callback = cb
}

// SetByString reports false if the cvar is read only.
func (cv *Cvar) SetByString(s string) bool {
	if cv.rom {
		return false
	}
	cv.stringValue = s
	pf, _ := strconv.ParseFloat(cv.stringValue, 32)
	cv.value = float32(pf)
	if cv.callback != nil {
		cv.callback(cv)
	}
	return true
}

// Lock makes the cvar read only.
func (cv *Cvar) Lock() {
	cv.rom = true
}

func (cv *Cvar) Locked() bool {
	return cv.rom
}

func (cv *Cvar) Reset() bool {
	return cv.SetByString(cv.defaultValue)
}

func (cv *Cvar) String() string {
	return cv.stringValue
}

func (cv *Cvar) Name() string {
	return cv.name
}

func (cv *Cvar) Value() float32 {
	return cv.value
}

func (cv *Cvar) Int() int {
	return int(cv.value)
}

func (cv *Cvar) SetValue(value float32) bool {
	if float32(int(value)) == value {
		v := strconv.FormatInt(int64(value), 10)
		return cv.SetByString(v)
	}
	v := strconv.FormatFloat(float64(value), 'f', -1, 32)
	return cv.SetByString(v)
}
