// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build windows

package arcdps

import (
	"golang.org/x/sys/windows"
)

// procResolver resolves symbols with GetProcAddress.
type procResolver struct{}

func (procResolver) Resolve(module uintptr, name string) (uintptr, error) {
	//nolint:wrapcheck // resolveHost reports missing symbols by name
	return windows.GetProcAddress(windows.Handle(module), name)
}

var defaultResolver SymbolResolver = procResolver{}
