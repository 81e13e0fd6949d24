// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"runtime"
	"unsafe"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/samber/oops"
)

// ConfigPath returns the path of the host's ini config file.
func ConfigPath() (string, error) {
	h, ok := Instance()
	if !ok {
		return "", errHostUnavailable(symConfigPath)
	}
	path, err := utf16String((*uint16)(h.configPath()))
	if err != nil {
		return "", oops.Code(CodeHostUnavailable).
			With("function", symConfigPath).
			Wrapf(err, "decode config path")
	}
	return path, nil
}

// Log writes msg to the host's log file.
func Log(msg string) error {
	h, ok := Instance()
	if !ok {
		return errHostUnavailable(symLog)
	}
	buf := cString(msg)
	h.log(&buf[0])
	runtime.KeepAlive(buf)
	return nil
}

// LogWindow writes msg to the host's log window. The window understands
// color markup of the form <c=#RRGGBB>text</c>; see package markup.
func LogWindow(msg string) error {
	h, ok := Instance()
	if !ok {
		return errHostUnavailable(symLogWindow)
	}
	buf := cString(msg)
	h.logWindow(&buf[0])
	runtime.KeepAlive(buf)
	return nil
}

// AddEvent injects a combat event into the host's event processing. The
// host sets IsStateChange to the extension value and the pad bytes to sig.
func AddEvent(event *RawCombatEvent, sig uint32) error {
	h, ok := Instance()
	if !ok {
		return errHostUnavailable(symAddEvent)
	}
	h.addEvent(event, sig)
	runtime.KeepAlive(event)
	return nil
}

// UISettings is the host's UI settings bitmask.
type UISettings uint64

// UISettings flags.
const (
	UIHidden            UISettings = 1 << 0
	UIDrawAlways        UISettings = 1 << 1
	UIModulesMoveLock   UISettings = 1 << 2
	UIModulesClickLock  UISettings = 1 << 3
	UIModulesCloseOnEsc UISettings = 1 << 4
)

// Has reports whether all bits of flag are set.
func (s UISettings) Has(flag UISettings) bool {
	return s&flag == flag
}

// CurrentUISettings returns the host's UI settings.
func CurrentUISettings() (UISettings, error) {
	h, ok := Instance()
	if !ok {
		return 0, errHostUnavailable(symUISettings)
	}
	return UISettings(h.uiSettings()), nil
}

// Modifiers holds the virtual-key codes of the host's modifier keys.
type Modifiers struct {
	Modifier1     uint16
	Modifier2     uint16
	ModifierMulti uint16
}

func decodeModifiers(raw uint64) Modifiers {
	return Modifiers{
		Modifier1:     uint16(raw),
		Modifier2:     uint16(raw >> 16),
		ModifierMulti: uint16(raw >> 32),
	}
}

// CurrentModifiers returns the host's modifier key bindings.
func CurrentModifiers() (Modifiers, error) {
	h, ok := Instance()
	if !ok {
		return Modifiers{}, errHostUnavailable(symModifiers)
	}
	return decodeModifiers(h.modifiers()), nil
}

// ImVec4 is the host's RGBA color in the 0..1 range.
type ImVec4 struct {
	X, Y, Z, W float32
}

// Sizes of the color arrays the host exposes.
const (
	coreColorCount  = 10
	profColorCount  = 10
	groupColorCount = 16
)

// CoreColor indexes the host's core palette.
type CoreColor int

// Core palette entries.
const (
	CoreTransparent CoreColor = iota
	CoreWhite
	CoreLightWhite
	CoreLightGrey
	CoreLightYellow
	CoreLightGreen
	CoreLightRed
	CoreLightTeal
	CoreMediumGrey
	CoreDarkGrey
)

// Colors is an owned snapshot of the host's color palettes. Missing arrays
// leave their entries unset.
type Colors struct {
	core          [coreColorCount]*ImVec4
	profBase      [profColorCount]*ImVec4
	profHighlight [profColorCount]*ImVec4
	subBase       [groupColorCount]*ImVec4
	subHighlight  [groupColorCount]*ImVec4
}

// CurrentColors copies the host's color palettes.
func CurrentColors() (Colors, error) {
	h, ok := Instance()
	if !ok {
		return Colors{}, errHostUnavailable(symColors)
	}
	var out [5]*ImVec4
	h.colors(unsafe.Pointer(&out))
	return newColors(out), nil
}

func newColors(out [5]*ImVec4) Colors {
	var c Colors
	copyColors(c.core[:], out[0])
	copyColors(c.profBase[:], out[1])
	copyColors(c.profHighlight[:], out[2])
	copyColors(c.subBase[:], out[3])
	copyColors(c.subHighlight[:], out[4])
	return c
}

func copyColors(dst []*ImVec4, src *ImVec4) {
	if src == nil {
		return
	}
	for i, v := range unsafe.Slice(src, len(dst)) {
		dst[i] = &v
	}
}

func pick(list []*ImVec4, i int) (colorful.Color, bool) {
	if i < 0 || i >= len(list) || list[i] == nil {
		return colorful.Color{}, false
	}
	return list[i].Color(), true
}

// Core returns a core palette color.
func (c Colors) Core(color CoreColor) (colorful.Color, bool) {
	return pick(c.core[:], int(color))
}

// ProfBase returns the base color of a profession.
func (c Colors) ProfBase(prof uint32) (colorful.Color, bool) {
	return pick(c.profBase[:], int(prof))
}

// ProfHighlight returns the highlight color of a profession.
func (c Colors) ProfHighlight(prof uint32) (colorful.Color, bool) {
	return pick(c.profHighlight[:], int(prof))
}

// SubgroupBase returns the base color of a squad subgroup.
func (c Colors) SubgroupBase(group uint8) (colorful.Color, bool) {
	return pick(c.subBase[:], int(group))
}

// SubgroupHighlight returns the highlight color of a squad subgroup.
func (c Colors) SubgroupHighlight(group uint8) (colorful.Color, bool) {
	return pick(c.subHighlight[:], int(group))
}

// Color converts v to a clamped colorful.Color, dropping alpha.
func (v ImVec4) Color() colorful.Color {
	return colorful.Color{R: float64(v.X), G: float64(v.Y), B: float64(v.Z)}.Clamped()
}
