// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"unsafe"
)

// ImguiVersion is the UI protocol version the host checks in every table.
const ImguiVersion uint32 = 18000

// defaultBuild is reported when the addon sets no version.
const defaultBuild = "0.0.0"

// ExportTable is the capability table handed to the host. Field order and
// widths are fixed by the host ABI.
//
// When Sig is zero the host treats the table as a failed load and, if Size
// is non-zero, reads Size as a pointer to a NUL-terminated error message.
// Only the error table uses Size that way; see ErrorMessagePointer.
type ExportTable struct {
	Size           uintptr
	Sig            uint32
	ImguiVersion   uint32
	OutBuild       uintptr
	OutName        uintptr
	Combat         uintptr
	CombatLocal    uintptr
	Imgui          uintptr
	OptionsEnd     uintptr
	OptionsWindows uintptr
	WndFilter      uintptr
	WndNofilter    uintptr
}

// exportTableSize is the byte size the host expects in Size.
const exportTableSize = unsafe.Sizeof(ExportTable{})

// Compile-time layout check against the host ABI (64-bit only).
var _ [88]byte = [exportTableSize]byte{}

// addonNames holds the NUL-terminated strings the tables point at. The
// buffers are referenced from package state for the life of the process.
type addonNames struct {
	name  []byte
	build []byte
}

func newAddonNames(a *Addon) addonNames {
	build := a.Version
	if build == "" {
		build = defaultBuild
	}
	return addonNames{
		name:  cString(a.Name),
		build: cString(build),
	}
}

// tables holds the normal and error capability tables of one load.
type tables struct {
	names    addonNames
	normal   ExportTable
	failed   ExportTable
	errorMsg []byte
}

// assembleTables builds both tables. The error table shares the metadata
// but has every callback slot null and a zero signature.
func assembleTables(names addonNames, sig uint32, b slotBindings) *tables {
	t := &tables{names: names}
	t.normal = ExportTable{
		Size:           exportTableSize,
		Sig:            sig,
		ImguiVersion:   ImguiVersion,
		OutBuild:       bufPtr(names.build),
		OutName:        bufPtr(names.name),
		Combat:         b.combat.addr,
		CombatLocal:    b.combatLocal.addr,
		Imgui:          b.imgui.addr,
		OptionsEnd:     b.optionsEnd.addr,
		OptionsWindows: b.optionsWindows.addr,
		WndFilter:      b.wndFilter.addr,
		WndNofilter:    b.wndNofilter.addr,
	}
	t.failed = ExportTable{
		ImguiVersion: ImguiVersion,
		OutBuild:     bufPtr(names.build),
		OutName:      bufPtr(names.name),
	}
	return t
}

// fail records msg and returns the error table with Size pointing at it.
func (t *tables) fail(msg string) *ExportTable {
	t.errorMsg = cString(msg)
	t.failed.Size = bufPtr(t.errorMsg)
	return &t.failed
}

// ErrorMessagePointer returns the address stored in the error table's Size
// field, or zero if no error was recorded.
func (t *tables) ErrorMessagePointer() uintptr {
	return t.failed.Size
}

// errorMessage returns the recorded error text.
func (t *tables) errorMessage() (string, bool) {
	if len(t.errorMsg) == 0 {
		return "", false
	}
	return string(t.errorMsg[:len(t.errorMsg)-1]), true
}
