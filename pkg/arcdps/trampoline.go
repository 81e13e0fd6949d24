// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"unsafe"
)

// Trampolines are the only place raw host memory is read. Every parameter is
// uintptr-sized and every trampoline returns one uintptr, which is the shape
// purego.NewCallback (and syscall.NewCallback on Windows) accepts. Void slots
// return 0, which the host ignores.

// Window messages that carry key transitions.
const (
	wmKeyDown    uint32 = 0x0100
	wmKeyUp      uint32 = 0x0101
	wmSysKeyDown uint32 = 0x0104
	wmSysKeyUp   uint32 = 0x0105
)

// combatTrampoline marshals combat_area and combat_local events.
func combatTrampoline(cb CombatCallback) func(event, src, dst, skillName unsafe.Pointer, id, revision uint64) uintptr {
	return func(event, src, dst, skillName unsafe.Pointer, id, revision uint64) uintptr {
		cb(
			newCombatEvent((*RawCombatEvent)(event)),
			newAgent((*RawAgent)(src)),
			newAgent((*RawAgent)(dst)),
			goString(skillName),
			id,
			revision,
		)
		return 0
	}
}

func imguiTrampoline(cb ImguiCallback) func(notCharSelOrLoading uint32) uintptr {
	return func(notCharSelOrLoading uint32) uintptr {
		cb(CurrentUI(), notCharSelOrLoading != 0)
		return 0
	}
}

func optionsEndTrampoline(cb OptionsEndCallback) func() uintptr {
	return func() uintptr {
		cb(CurrentUI())
		return 0
	}
}

func optionsWindowsTrampoline(cb OptionsWindowsCallback) func(windowName unsafe.Pointer) uintptr {
	return func(windowName unsafe.Pointer) uintptr {
		if cb(CurrentUI(), goString(windowName)) {
			return 1
		}
		return 0
	}
}

// wndProcTrampoline serves both wnd_filter and wnd_nofilter. Only key
// transitions reach the callback; everything else passes through.
func wndProcTrampoline(cb WndProcCallback) func(hwnd unsafe.Pointer, msg uint32, wParam, lParam uintptr) uintptr {
	return func(_ unsafe.Pointer, msg uint32, wParam, lParam uintptr) uintptr {
		switch msg {
		case wmKeyDown, wmKeyUp, wmSysKeyDown, wmSysKeyUp:
			keyDown := msg&1 == 0
			prevKeyDown := (lParam>>30)&1 == 1
			if cb(uint(wParam), keyDown, prevKeyDown) {
				return uintptr(msg)
			}
			return 0
		default:
			return uintptr(msg)
		}
	}
}

func squadUpdateTrampoline(cb ExtrasSquadUpdateCallback) func(users unsafe.Pointer, count uint64) uintptr {
	return func(users unsafe.Pointer, count uint64) uintptr {
		cb(NewUserInfoIter((*RawUserInfo)(users), count))
		return 0
	}
}

func languageChangedTrampoline(cb ExtrasLanguageChangedCallback) func(lang int32) uintptr {
	return func(lang int32) uintptr {
		cb(Language(lang))
		return 0
	}
}

// keybindChangedTrampoline receives the by-value keybind record, which the
// x64 calling convention passes as a pointer to a caller-owned copy.
func keybindChangedTrampoline(cb ExtrasKeybindChangedCallback) func(changed unsafe.Pointer) uintptr {
	return func(changed unsafe.Pointer) uintptr {
		if changed == nil {
			return 0
		}
		cb(newKeybindChange((*RawKeybindChange)(changed)))
		return 0
	}
}
