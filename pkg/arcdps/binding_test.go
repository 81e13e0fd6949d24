// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveBinding(t *testing.T) {
	cbs := useFakeCallbacks(t)
	trampCalls := 0
	tramp := func() any {
		trampCalls++
		return func() uintptr { return 0 }
	}

	t.Run("raw wins over safe", func(t *testing.T) {
		b := resolveBinding(0xdead, true, tramp)
		assert.Equal(t, bindingRaw, b.kind)
		assert.Equal(t, uintptr(0xdead), b.addr)
		assert.Zero(t, trampCalls, "no trampoline is built when raw wins")
	})

	t.Run("safe builds a trampoline", func(t *testing.T) {
		b := resolveBinding(0, true, tramp)
		assert.Equal(t, bindingTrampoline, b.kind)
		assert.NotZero(t, b.addr)
		assert.Equal(t, 1, trampCalls)
		_, ok := cbs.fn(t, b.addr).(func() uintptr)
		assert.True(t, ok)
	})

	t.Run("neither leaves the slot absent", func(t *testing.T) {
		b := resolveBinding(0, false, tramp)
		assert.Equal(t, bindingAbsent, b.kind)
		assert.Zero(t, b.addr)
	})
}

func TestBindingKind_String(t *testing.T) {
	assert.Equal(t, "absent", bindingAbsent.String())
	assert.Equal(t, "raw", bindingRaw.String())
	assert.Equal(t, "trampoline", bindingTrampoline.String())
}

func TestBindAddon_MixedSlots(t *testing.T) {
	cbs := useFakeCallbacks(t)

	var gotKey uint
	a := &Addon{
		Name:          "mixed",
		RawCombat:     0x1111,
		Combat:        func(*CombatEvent, *Agent, *Agent, *string, uint64, uint64) {},
		CombatLocal:   func(*CombatEvent, *Agent, *Agent, *string, uint64, uint64) {},
		RawImgui:      0x2222,
		RawOptionsEnd: 0x3333,
		ExtrasInit:    func(ExtrasAddonInfo, *string) {},
		WndNofilter: func(key uint, _, _ bool) bool {
			gotKey = key
			return true
		},
	}

	b := bindAddon(a)

	assert.Equal(t, binding{kind: bindingRaw, addr: 0x1111}, b.combat)
	assert.Equal(t, bindingTrampoline, b.combatLocal.kind)
	assert.Equal(t, binding{kind: bindingRaw, addr: 0x2222}, b.imgui)
	assert.Equal(t, binding{kind: bindingRaw, addr: 0x3333}, b.optionsEnd)
	assert.Equal(t, binding{}, b.optionsWindows)
	assert.Equal(t, binding{}, b.wndFilter)
	assert.Equal(t, bindingTrampoline, b.wndNofilter.kind)
	assert.Equal(t, binding{}, b.extrasSquadUpdate)
	assert.Equal(t, binding{}, b.extrasLanguageChanged)
	assert.Equal(t, binding{}, b.extrasKeybindChanged)

	wnd, ok := cbs.fn(t, b.wndNofilter.addr).(func(hwnd unsafe.Pointer, msg uint32, wParam, lParam uintptr) uintptr)
	require.True(t, ok)
	assert.Equal(t, uintptr(wmKeyDown), wnd(nil, wmKeyDown, 0x70, 0))
	assert.Equal(t, uint(0x70), gotKey)
}

func TestBindAddon_EmptyAddonHasNoSlots(t *testing.T) {
	useFakeCallbacks(t)

	assert.Equal(t, slotBindings{}, bindAddon(&Addon{Name: "empty"}))
}
