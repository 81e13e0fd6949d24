// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestRawKeybindChange_Layout(t *testing.T) {
	assert.Equal(t, uintptr(20), unsafe.Sizeof(RawKeybindChange{}))
	assert.Equal(t, uintptr(4), unsafe.Offsetof(RawKeybindChange{}.KeyIndex))
	assert.Equal(t, uintptr(8), unsafe.Offsetof(RawKeybindChange{}.SingleKey))
}

func TestKeyModifier(t *testing.T) {
	tests := []struct {
		mod  KeyModifier
		want string
	}{
		{0, "none"},
		{ModifierShift, "shift"},
		{ModifierCtrl | ModifierAlt, "ctrl+alt"},
		{ModifierShift | ModifierCtrl | ModifierAlt, "shift+ctrl+alt"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.mod.String())
		})
	}

	assert.True(t, (ModifierCtrl | ModifierAlt).Has(ModifierAlt))
	assert.False(t, ModifierCtrl.Has(ModifierCtrl|ModifierShift))
}

func TestDeviceType_String(t *testing.T) {
	assert.Equal(t, "unset", DeviceUnset.String())
	assert.Equal(t, "mouse", DeviceMouse.String())
	assert.Equal(t, "keyboard", DeviceKeyboard.String())
	assert.Equal(t, "unset", DeviceType(9).String())
}
