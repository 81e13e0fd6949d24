// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"errors"
	"log"
	"log/slog"
	"os"
	"reflect"
	"testing"
	"unicode/utf16"
	"unsafe"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeCallbacks replaces purego.NewCallback with a registry of Go functions
// keyed by fake addresses.
type fakeCallbacks struct {
	next uintptr
	fns  map[uintptr]any
}

func useFakeCallbacks(t *testing.T) *fakeCallbacks {
	t.Helper()
	f := &fakeCallbacks{next: 0x10000, fns: make(map[uintptr]any)}
	orig := newCallback
	newCallback = func(fn any) uintptr {
		f.next += 0x10
		f.fns[f.next] = fn
		return f.next
	}
	t.Cleanup(func() { newCallback = orig })
	return f
}

func (f *fakeCallbacks) fn(t *testing.T, addr uintptr) any {
	t.Helper()
	fn, ok := f.fns[addr]
	require.True(t, ok, "no callback registered at %#x", addr)
	return fn
}

// fakeHost stands in for the host module: every symbol maps to a Go
// function with the signature the host ABI defines.
type fakeHost struct {
	missing    map[string]bool
	configPath []uint16
	logged     []string
	windowLog  []string
	uiSettings uint64
	modifiers  uint64
	palette    [5][]ImVec4
	events     []RawCombatEvent
	eventSigs  []uint32
}

func newFakeHost() *fakeHost {
	return &fakeHost{missing: make(map[string]bool)}
}

func (h *fakeHost) symbols() map[string]any {
	return map[string]any{
		symConfigPath: func() unsafe.Pointer {
			if len(h.configPath) == 0 {
				return nil
			}
			return unsafe.Pointer(&h.configPath[0])
		},
		symLog: func(msg *byte) {
			h.logged = append(h.logged, readCString(msg))
		},
		symColors: func(out unsafe.Pointer) {
			arr := (*[5]*ImVec4)(out)
			for i := range h.palette {
				if len(h.palette[i]) > 0 {
					arr[i] = &h.palette[i][0]
				}
			}
		},
		symUISettings: func() uint64 { return h.uiSettings },
		symModifiers:  func() uint64 { return h.modifiers },
		symLogWindow: func(msg *byte) {
			h.windowLog = append(h.windowLog, readCString(msg))
		},
		symAddEvent: func(event *RawCombatEvent, sig uint32) {
			h.events = append(h.events, *event)
			h.eventSigs = append(h.eventSigs, sig)
		},
	}
}

func (h *fakeHost) setConfigPath(path string) {
	h.configPath = append(utf16.Encode([]rune(path)), 0)
}

// install routes symbol resolution and function binding to h for the
// duration of the test.
func (h *fakeHost) install(t *testing.T) {
	t.Helper()
	syms := h.symbols()
	addrs := make(map[string]uintptr, len(syms))
	byAddr := make(map[uintptr]any, len(syms))
	base := uintptr(0xe000)
	for i, name := range hostSymbols {
		addr := base + uintptr(i)*8
		addrs[name] = addr
		byAddr[addr] = syms[name]
	}

	origResolver := defaultResolver
	origRegister := registerFunc
	defaultResolver = resolverFunc(func(_ uintptr, name string) (uintptr, error) {
		if h.missing[name] {
			return 0, errors.New("symbol not found")
		}
		return addrs[name], nil
	})
	registerFunc = func(fptr any, cfn uintptr) {
		reflect.ValueOf(fptr).Elem().Set(reflect.ValueOf(byAddr[cfn]))
	}
	t.Cleanup(func() {
		defaultResolver = origResolver
		registerFunc = origRegister
	})
}

type resolverFunc func(module uintptr, name string) (uintptr, error)

func (f resolverFunc) Resolve(module uintptr, name string) (uintptr, error) {
	return f(module, name)
}

// resetState clears all process-wide state before and after a test.
func resetState(t *testing.T) {
	t.Helper()
	logger := slog.Default()
	reset := func() {
		lc = lifecycle{}
		registered = nil
		instance = nil
		currentUI = nil
		extrasExported = false
		slog.SetDefault(logger)
		// SetDefault redirects the log package; undo that as well.
		log.SetOutput(os.Stderr)
		log.SetFlags(log.LstdFlags)
	}
	reset()
	t.Cleanup(reset)
}

// cstr returns a NUL-terminated buffer and its pointer.
func cstr(s string) (unsafe.Pointer, []byte) {
	buf := cString(s)
	return unsafe.Pointer(&buf[0]), buf
}

func strPtr(s string) *string {
	return &s
}
