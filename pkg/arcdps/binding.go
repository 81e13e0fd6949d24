// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"github.com/ebitengine/purego"
)

// bindingKind records which authoring choice filled a table slot.
type bindingKind uint8

const (
	bindingAbsent bindingKind = iota
	bindingRaw
	bindingTrampoline
)

func (k bindingKind) String() string {
	switch k {
	case bindingRaw:
		return "raw"
	case bindingTrampoline:
		return "trampoline"
	default:
		return "absent"
	}
}

// binding is the resolved value of one table slot.
type binding struct {
	kind bindingKind
	addr uintptr
}

// newCallback turns a Go trampoline into a C function pointer. Callbacks are
// never released; each slot creates at most one per process.
var newCallback = purego.NewCallback

// resolveBinding picks raw over safe over absent. tramp is only invoked when
// the safe callback is used.
func resolveBinding(raw uintptr, hasSafe bool, tramp func() any) binding {
	switch {
	case raw != 0:
		return binding{kind: bindingRaw, addr: raw}
	case hasSafe:
		return binding{kind: bindingTrampoline, addr: newCallback(tramp())}
	default:
		return binding{}
	}
}

// slotBindings holds every resolved slot of an addon.
type slotBindings struct {
	combat                binding
	combatLocal           binding
	imgui                 binding
	optionsEnd            binding
	optionsWindows        binding
	wndFilter             binding
	wndNofilter           binding
	extrasSquadUpdate     binding
	extrasLanguageChanged binding
	extrasKeybindChanged  binding
}

// bindAddon resolves every slot of a.
func bindAddon(a *Addon) slotBindings {
	return slotBindings{
		combat: resolveBinding(a.RawCombat, a.Combat != nil, func() any {
			return combatTrampoline(a.Combat)
		}),
		combatLocal: resolveBinding(a.RawCombatLocal, a.CombatLocal != nil, func() any {
			return combatTrampoline(a.CombatLocal)
		}),
		imgui: resolveBinding(a.RawImgui, a.Imgui != nil, func() any {
			return imguiTrampoline(a.Imgui)
		}),
		optionsEnd: resolveBinding(a.RawOptionsEnd, a.OptionsEnd != nil, func() any {
			return optionsEndTrampoline(a.OptionsEnd)
		}),
		optionsWindows: resolveBinding(a.RawOptionsWindows, a.OptionsWindows != nil, func() any {
			return optionsWindowsTrampoline(a.OptionsWindows)
		}),
		wndFilter: resolveBinding(a.RawWndFilter, a.WndFilter != nil, func() any {
			return wndProcTrampoline(a.WndFilter)
		}),
		wndNofilter: resolveBinding(a.RawWndNofilter, a.WndNofilter != nil, func() any {
			return wndProcTrampoline(a.WndNofilter)
		}),
		extrasSquadUpdate: resolveBinding(a.RawExtrasSquadUpdate, a.ExtrasSquadUpdate != nil, func() any {
			return squadUpdateTrampoline(a.ExtrasSquadUpdate)
		}),
		extrasLanguageChanged: resolveBinding(a.RawExtrasLanguageChanged, a.ExtrasLanguageChanged != nil, func() any {
			return languageChangedTrampoline(a.ExtrasLanguageChanged)
		}),
		extrasKeybindChanged: resolveBinding(a.RawExtrasKeybindChanged, a.ExtrasKeybindChanged != nil, func() any {
			return keybindChangedTrampoline(a.ExtrasKeybindChanged)
		}),
	}
}
