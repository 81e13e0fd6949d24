// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package export exports the two entry points arcdps looks up in an addon
// DLL. Import it for its side effect from the addon's main package and build
// with -buildmode=c-shared:
//
//	import _ "github.com/holomush/arcdps-go/pkg/arcdps/export"
//
// The exported functions:
//
//   - get_init_addr(char* arcversion, void* imguictx, void* id3dptr,
//     HANDLE arcdll, void* mallocfn, void* freefn, uint32_t d3dversion)
//     returns a function that yields the addon's capability table.
//   - get_release_addr() returns the addon's teardown function.
package export

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/holomush/arcdps-go/pkg/arcdps"
)

//export get_init_addr
func get_init_addr(arcVersion *C.char, imguiCtx, id3d, arcDLL, mallocFn, freeFn unsafe.Pointer, d3dVersion C.uint32_t) C.uintptr_t { //nolint:revive // exported name is fixed by the host
	return C.uintptr_t(arcdps.InitAddr(arcdps.InitParams{
		ArcVersion:   (*byte)(unsafe.Pointer(arcVersion)),
		ImguiContext: uintptr(imguiCtx),
		D3D:          uintptr(id3d),
		Module:       uintptr(arcDLL),
		Malloc:       uintptr(mallocFn),
		Free:         uintptr(freeFn),
		D3DVersion:   uint32(d3dVersion),
	}))
}

//export get_release_addr
func get_release_addr() C.uintptr_t { //nolint:revive // exported name is fixed by the host
	return C.uintptr_t(arcdps.ReleaseAddr())
}
