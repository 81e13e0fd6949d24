// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"log/slog"
	"sync"
	"unsafe"

	"github.com/samber/oops"

	"github.com/holomush/arcdps-go/pkg/errutil"
)

// unregisteredName is reported to the host when no addon was registered.
const unregisteredName = "arcdps-go"

// InitParams carries the arguments the host passes to get_init_addr.
type InitParams struct {
	// ArcVersion points at the host's NUL-terminated version string.
	ArcVersion   *byte
	ImguiContext uintptr
	D3D          uintptr
	// Module is the host's module handle used to resolve host functions.
	Module     uintptr
	Malloc     uintptr
	Free       uintptr
	D3DVersion uint32
}

// lifecycle is the process-wide load state. Every field is written during
// the first InitAddr (or the first extras negotiation for the bindings) and
// read-only afterwards.
type lifecycle struct {
	bindOnce sync.Once
	slots    slotBindings
	text     addonNames

	initOnce sync.Once
	tables   *tables
	selected *ExportTable
	loadAddr uintptr

	releaseAddrOnce sync.Once
	releaseAddr     uintptr
	releaseOnce     sync.Once
}

var lc lifecycle

// bindings resolves the addon's slots once per process.
func (l *lifecycle) bindings(a *Addon) slotBindings {
	l.bindOnce.Do(func() {
		l.slots = bindAddon(a)
		l.text = newAddonNames(a)
	})
	return l.slots
}

func (l *lifecycle) names(a *Addon) addonNames {
	l.bindings(a)
	return l.text
}

// InitAddr implements get_init_addr. It resolves the host functions, runs
// the addon's Init and returns a C function pointer that yields the selected
// capability table. Failures never abort: they select the error table.
//
// Only the first call does any work; later calls return the same pointer.
func InitAddr(p InitParams) uintptr {
	lc.initOnce.Do(func() {
		lc.load(registered, p)
	})
	return lc.loadAddr
}

func (l *lifecycle) load(a *Addon, p InitParams) {
	setUI(p)

	if a == nil {
		a = &Addon{Name: unregisteredName}
		l.tables = assembleTables(l.names(a), 0, l.bindings(a))
		err := oops.Code(CodeAddonNotRegistered).Errorf("no addon registered; call arcdps.Register from an init function")
		l.selected = l.tables.fail(err.Error())
		l.loadAddr = newCallback(l.exportTable)
		return
	}

	l.tables = assembleTables(l.names(a), a.Sig, l.bindings(a))
	l.selected = &l.tables.normal

	version := goString(unsafe.Pointer(p.ArcVersion))
	if err := initHost(defaultResolver, p.Module, version); err != nil {
		errutil.LogError(slog.Default(), "arcdps host resolution failed", err)
		l.selected = l.tables.fail(err.Error())
	} else {
		installLogger(a)
		if a.participatesInExtras() && !extrasExported {
			slog.Warn("addon sets extras callbacks but the extras entry point is not linked",
				"addon", a.Name,
				"import", "github.com/holomush/arcdps-go/pkg/arcdps/export/extras")
		}
		if err := runInit(a); err != nil {
			errutil.LogError(slog.Default(), "addon init failed",
				oops.Code(CodeAddonInitFailed).With("addon", a.Name).Wrap(err))
			l.selected = l.tables.fail(err.Error())
		}
	}

	l.loadAddr = newCallback(l.exportTable)
}

// exportTable is the function the host calls to fetch the table.
func (l *lifecycle) exportTable() uintptr {
	return uintptr(unsafe.Pointer(l.selected))
}

// runInit calls the addon's Init, turning a panic into an error.
func runInit(a *Addon) (err error) {
	if a.Init == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = errutil.Recovered(r)
		}
	}()
	return a.Init()
}

// ReleaseAddr implements get_release_addr. The returned function runs the
// addon's Release at most once.
func ReleaseAddr() uintptr {
	lc.releaseAddrOnce.Do(func() {
		lc.releaseAddr = newCallback(lc.unload)
	})
	return lc.releaseAddr
}

func (l *lifecycle) unload() uintptr {
	l.releaseOnce.Do(func() {
		a := registered
		if a == nil || a.Release == nil {
			return
		}
		defer func() {
			if r := recover(); r != nil {
				errutil.LogError(slog.Default(), "addon release panicked", errutil.Recovered(r))
			}
		}()
		a.Release()
	})
	return 0
}

// LastError returns the text recorded when init failed.
func LastError() (string, bool) {
	if lc.tables == nil {
		return "", false
	}
	return lc.tables.errorMessage()
}

// ErrorMessagePointer returns the address the error table carries in its
// Size field, or zero when init succeeded or has not run.
func ErrorMessagePointer() uintptr {
	if lc.tables == nil {
		return 0
	}
	return lc.tables.ErrorMessagePointer()
}

// SelectedTable returns the table the host receives, or nil before init.
func SelectedTable() *ExportTable {
	return lc.selected
}
