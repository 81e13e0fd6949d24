// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build darwin || freebsd || linux || netbsd

package arcdps

import (
	"github.com/ebitengine/purego"
)

// dlsymResolver resolves symbols with dlsym, for hosts running under a
// compatibility layer and for tests against a shared object.
type dlsymResolver struct{}

func (dlsymResolver) Resolve(module uintptr, name string) (uintptr, error) {
	//nolint:wrapcheck // resolveHost reports missing symbols by name
	return purego.Dlsym(module, name)
}

var defaultResolver SymbolResolver = dlsymResolver{}
