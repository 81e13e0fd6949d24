// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExportTable_Layout(t *testing.T) {
	assert.Equal(t, uintptr(88), exportTableSize)
	assert.Equal(t, uintptr(8), unsafe.Offsetof(ExportTable{}.Sig))
	assert.Equal(t, uintptr(12), unsafe.Offsetof(ExportTable{}.ImguiVersion))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(ExportTable{}.OutBuild))
	assert.Equal(t, uintptr(24), unsafe.Offsetof(ExportTable{}.OutName))
	assert.Equal(t, uintptr(32), unsafe.Offsetof(ExportTable{}.Combat))
	assert.Equal(t, uintptr(80), unsafe.Offsetof(ExportTable{}.WndNofilter))
}

func TestNewAddonNames(t *testing.T) {
	t.Run("uses version as build", func(t *testing.T) {
		n := newAddonNames(&Addon{Name: "squadlog", Version: "1.2.0"})
		assert.Equal(t, "squadlog", readCString(&n.name[0]))
		assert.Equal(t, "1.2.0", readCString(&n.build[0]))
	})

	t.Run("defaults empty version", func(t *testing.T) {
		n := newAddonNames(&Addon{Name: "squadlog"})
		assert.Equal(t, defaultBuild, readCString(&n.build[0]))
	})
}

func TestAssembleTables_NormalTable(t *testing.T) {
	names := newAddonNames(&Addon{Name: "squadlog", Version: "0.3.1"})
	b := slotBindings{
		combat:         binding{kind: bindingTrampoline, addr: 0x100},
		combatLocal:    binding{kind: bindingRaw, addr: 0x200},
		imgui:          binding{kind: bindingTrampoline, addr: 0x300},
		optionsEnd:     binding{kind: bindingTrampoline, addr: 0x400},
		optionsWindows: binding{kind: bindingTrampoline, addr: 0x500},
		wndFilter:      binding{kind: bindingTrampoline, addr: 0x600},
		wndNofilter:    binding{kind: bindingTrampoline, addr: 0x700},
	}

	tb := assembleTables(names, 0xc0ffee, b)
	n := tb.normal

	assert.Equal(t, exportTableSize, n.Size)
	assert.Equal(t, uint32(0xc0ffee), n.Sig)
	assert.Equal(t, ImguiVersion, n.ImguiVersion)
	assert.Equal(t, "squadlog", readCString((*byte)(unsafe.Pointer(n.OutName))))
	assert.Equal(t, "0.3.1", readCString((*byte)(unsafe.Pointer(n.OutBuild))))
	assert.Equal(t, uintptr(0x100), n.Combat)
	assert.Equal(t, uintptr(0x200), n.CombatLocal)
	assert.Equal(t, uintptr(0x300), n.Imgui)
	assert.Equal(t, uintptr(0x400), n.OptionsEnd)
	assert.Equal(t, uintptr(0x500), n.OptionsWindows)
	assert.Equal(t, uintptr(0x600), n.WndFilter)
	assert.Equal(t, uintptr(0x700), n.WndNofilter)
}

func TestAssembleTables_AbsentSlotsStayNull(t *testing.T) {
	names := newAddonNames(&Addon{Name: "quiet"})
	tb := assembleTables(names, 1, slotBindings{imgui: binding{kind: bindingTrampoline, addr: 0x42}})

	assert.Equal(t, uintptr(0x42), tb.normal.Imgui)
	assert.Zero(t, tb.normal.Combat)
	assert.Zero(t, tb.normal.CombatLocal)
	assert.Zero(t, tb.normal.OptionsEnd)
	assert.Zero(t, tb.normal.OptionsWindows)
	assert.Zero(t, tb.normal.WndFilter)
	assert.Zero(t, tb.normal.WndNofilter)
}

func TestAssembleTables_ErrorTable(t *testing.T) {
	names := newAddonNames(&Addon{Name: "squadlog", Version: "0.3.1"})
	b := slotBindings{
		combat: binding{kind: bindingTrampoline, addr: 0x100},
		imgui:  binding{kind: bindingRaw, addr: 0x300},
	}
	tb := assembleTables(names, 0xc0ffee, b)

	_, ok := tb.errorMessage()
	assert.False(t, ok, "no message before fail")
	assert.Zero(t, tb.ErrorMessagePointer())

	failed := tb.fail("boom")

	require.Same(t, &tb.failed, failed)
	assert.Zero(t, failed.Sig)
	assert.Equal(t, ImguiVersion, failed.ImguiVersion)
	assert.Equal(t, tb.normal.OutName, failed.OutName)
	assert.Equal(t, tb.normal.OutBuild, failed.OutBuild)
	assert.Zero(t, failed.Combat)
	assert.Zero(t, failed.CombatLocal)
	assert.Zero(t, failed.Imgui)
	assert.Zero(t, failed.OptionsEnd)
	assert.Zero(t, failed.OptionsWindows)
	assert.Zero(t, failed.WndFilter)
	assert.Zero(t, failed.WndNofilter)

	msg, ok := tb.errorMessage()
	require.True(t, ok)
	assert.Equal(t, "boom", msg)
	assert.Equal(t, uintptr(unsafe.Pointer(&tb.errorMsg[0])), failed.Size)
	assert.Equal(t, failed.Size, tb.ErrorMessagePointer())
	assert.Equal(t, "boom", readCString((*byte)(unsafe.Pointer(failed.Size))))

	assert.Equal(t, exportTableSize, tb.normal.Size, "normal table keeps its size")
}
