// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"strings"
	"unsafe"
)

// GameBind identifies a game control, e.g. a skill slot or movement key.
// Values follow the game client's control enumeration.
type GameBind int32

// DeviceType is the input device a key belongs to.
type DeviceType int32

// DeviceType values.
const (
	DeviceUnset DeviceType = iota
	DeviceMouse
	DeviceKeyboard
)

func (d DeviceType) String() string {
	switch d {
	case DeviceMouse:
		return "mouse"
	case DeviceKeyboard:
		return "keyboard"
	default:
		return "unset"
	}
}

// KeyModifier is a bit set of modifier keys held with a key.
type KeyModifier int32

// KeyModifier bits.
const (
	ModifierShift KeyModifier = 1 << iota
	ModifierCtrl
	ModifierAlt
)

// Has reports whether every bit of m is set.
func (k KeyModifier) Has(m KeyModifier) bool {
	return k&m == m
}

func (k KeyModifier) String() string {
	var parts []string
	if k.Has(ModifierShift) {
		parts = append(parts, "shift")
	}
	if k.Has(ModifierCtrl) {
		parts = append(parts, "ctrl")
	}
	if k.Has(ModifierAlt) {
		parts = append(parts, "alt")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "+")
}

// RawSingleKey is one key binding as the extras subsystem reports it.
type RawSingleKey struct {
	DeviceType int32
	Code       int32
	Modifier   int32
}

// RawKeybindChange is the extras keybind change record. The host passes it
// by value; on x64 a record of this size arrives as a pointer to a copy.
type RawKeybindChange struct {
	KeyControl int32
	KeyIndex   uint32
	SingleKey  RawSingleKey
}

var _ [20]byte = [unsafe.Sizeof(RawKeybindChange{})]byte{}

// SingleKey is the owned form of RawSingleKey.
type SingleKey struct {
	Device   DeviceType
	Code     int32
	Modifier KeyModifier
}

// KeybindChange is an owned copy of a keybind change.
type KeybindChange struct {
	Control GameBind
	// Index is 0 for the primary and 1 for the secondary binding.
	Index uint32
	Key   SingleKey
}

func newKeybindChange(raw *RawKeybindChange) KeybindChange {
	return KeybindChange{
		Control: GameBind(raw.KeyControl),
		Index:   raw.KeyIndex,
		Key: SingleKey{
			Device:   DeviceType(raw.SingleKey.DeviceType),
			Code:     raw.SingleKey.Code,
			Modifier: KeyModifier(raw.SingleKey.Modifier),
		},
	}
}

// ExtrasKeybindChangedCallback receives changes to the game's key bindings.
type ExtrasKeybindChangedCallback func(changed KeybindChange)
