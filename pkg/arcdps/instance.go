// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/samber/oops"
)

// Host function symbols exported by the host module.
const (
	symConfigPath = "e0"
	symLog        = "e3"
	symColors     = "e5"
	symUISettings = "e6"
	symModifiers  = "e7"
	symLogWindow  = "e8"
	symAddEvent   = "e9"
)

// hostSymbols is every symbol that must resolve for init to succeed.
var hostSymbols = []string{
	symConfigPath,
	symLog,
	symColors,
	symUISettings,
	symModifiers,
	symLogWindow,
	symAddEvent,
}

// SymbolResolver looks up an exported function in a loaded module.
type SymbolResolver interface {
	// Resolve returns the function's address, or an error if it is absent.
	Resolve(module uintptr, name string) (uintptr, error)
}

// registerFunc binds a C function pointer to a typed Go function variable.
var registerFunc = purego.RegisterFunc

// HostInstance holds the host module handle and its resolved functions. It
// is either fully populated or not available at all.
type HostInstance struct {
	Module uintptr
	// Version is the host's version string, nil if it passed none.
	Version *string

	configPath func() unsafe.Pointer
	log        func(msg *byte)
	colors     func(out unsafe.Pointer)
	uiSettings func() uint64
	modifiers  func() uint64
	logWindow  func(msg *byte)
	addEvent   func(event *RawCombatEvent, sig uint32)
}

// instance is written once by initHost.
var instance *HostInstance

// Instance returns the host instance, or false before a successful init.
func Instance() (*HostInstance, bool) {
	return instance, instance != nil
}

// resolveHost resolves every host symbol. It returns an error naming all
// missing symbols if any one of them is absent; nothing is bound then.
func resolveHost(r SymbolResolver, module uintptr, version *string) (*HostInstance, error) {
	addrs := make(map[string]uintptr, len(hostSymbols))
	var missing []string
	for _, name := range hostSymbols {
		addr, err := r.Resolve(module, name)
		if err != nil || addr == 0 {
			missing = append(missing, name)
			continue
		}
		addrs[name] = addr
	}
	if len(missing) > 0 {
		return nil, oops.Code(CodeHostSymbolMissing).
			With("symbols", missing).
			Errorf("failed to resolve host functions: %s", strings.Join(missing, ", "))
	}

	h := &HostInstance{Module: module, Version: version}
	registerFunc(&h.configPath, addrs[symConfigPath])
	registerFunc(&h.log, addrs[symLog])
	registerFunc(&h.colors, addrs[symColors])
	registerFunc(&h.uiSettings, addrs[symUISettings])
	registerFunc(&h.modifiers, addrs[symModifiers])
	registerFunc(&h.logWindow, addrs[symLogWindow])
	registerFunc(&h.addEvent, addrs[symAddEvent])
	return h, nil
}

// initHost populates the process-wide instance.
func initHost(r SymbolResolver, module uintptr, version *string) error {
	h, err := resolveHost(r, module, version)
	if err != nil {
		return err
	}
	instance = h
	return nil
}
