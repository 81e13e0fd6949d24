// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

// UI carries the host's rendering context. It is handed to every UI-related
// safe callback; the rendering library itself lives outside this package and
// consumes the raw handles.
type UI struct {
	// Context is the host's ImGuiContext pointer.
	Context uintptr
	// D3D is the host's Direct3D device pointer.
	D3D uintptr
	// D3DVersion is 9 or 11.
	D3DVersion uint32
	// Malloc and Free are the host's allocator functions, zero if absent.
	Malloc uintptr
	Free   uintptr
}

// currentUI is written once by InitAddr.
var currentUI *UI

// CurrentUI returns the UI context captured at init, or nil before init.
func CurrentUI() *UI {
	return currentUI
}

func setUI(p InitParams) {
	currentUI = &UI{
		Context:    p.ImguiContext,
		D3D:        p.D3D,
		D3DVersion: p.D3DVersion,
		Malloc:     p.Malloc,
		Free:       p.Free,
	}
}
