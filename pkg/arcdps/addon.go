// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

// InitFunc runs once when the host loads the addon. A returned error
// disables every callback and is reported to the host.
type InitFunc func() error

// ReleaseFunc runs once when the host unloads the addon.
type ReleaseFunc func()

// CombatCallback receives area or local combat events. A nil event, agent or
// skill name means the host passed a null pointer.
type CombatCallback func(event *CombatEvent, src, dst *Agent, skillName *string, id, revision uint64)

// ImguiCallback runs every frame the host renders its UI.
type ImguiCallback func(ui *UI, notCharSelOrLoading bool)

// OptionsEndCallback renders the addon's section at the end of the host's
// options window.
type OptionsEndCallback func(ui *UI)

// OptionsWindowsCallback is called for each named panel checkbox in the
// host's options window. windowName is nil once per frame for the addon's own
// entries. Returning true hides the host's default checkbox.
type OptionsWindowsCallback func(ui *UI, windowName *string) bool

// WndProcCallback receives key transitions. Returning false swallows the
// message.
type WndProcCallback func(key uint, keyDown, prevKeyDown bool) bool

// Addon describes an addon to the host.
//
// Each event category has a raw and a safe field. A non-zero raw address is
// placed in the host table as is and must match the host ABI exactly; it
// wins over a safe callback given for the same category. A safe callback is
// wrapped in a generated trampoline. With neither set the slot stays null.
type Addon struct {
	// Name is shown by the host and used as the extras subscriber name.
	Name string
	// Version is reported to the host as the build string.
	Version string
	// Sig is the addon's unique signature. Zero is reserved by the host.
	Sig uint32

	Init    InitFunc
	Release ReleaseFunc

	RawCombat uintptr
	Combat    CombatCallback

	RawCombatLocal uintptr
	CombatLocal    CombatCallback

	RawImgui uintptr
	Imgui    ImguiCallback

	RawOptionsEnd uintptr
	OptionsEnd    OptionsEndCallback

	RawOptionsWindows uintptr
	OptionsWindows    OptionsWindowsCallback

	RawWndFilter uintptr
	WndFilter    WndProcCallback

	RawWndNofilter uintptr
	WndNofilter    WndProcCallback

	// RawExtrasInit takes over the whole extras negotiation.
	RawExtrasInit RawExtrasSubscriberInit
	ExtrasInit    ExtrasInitFunc

	RawExtrasSquadUpdate uintptr
	ExtrasSquadUpdate    ExtrasSquadUpdateCallback

	RawExtrasLanguageChanged uintptr
	ExtrasLanguageChanged    ExtrasLanguageChangedCallback

	RawExtrasKeybindChanged uintptr
	ExtrasKeybindChanged    ExtrasKeybindChangedCallback
}

// participatesInExtras reports whether the addon registers anything with
// the extras subsystem.
func (a *Addon) participatesInExtras() bool {
	return a.RawExtrasInit != nil || a.ExtrasInit != nil ||
		a.RawExtrasSquadUpdate != 0 || a.ExtrasSquadUpdate != nil ||
		a.RawExtrasLanguageChanged != 0 || a.ExtrasLanguageChanged != nil ||
		a.RawExtrasKeybindChanged != 0 || a.ExtrasKeybindChanged != nil
}

// registered is written by Register from the addon's init function, before
// the host can call any entry point.
var registered *Addon

// Register records the addon definition. It must be called exactly once,
// from an init function of the addon's main package. It panics on a nil
// addon or a second registration.
func Register(a *Addon) {
	if a == nil {
		panic("arcdps.Register: addon is required")
	}
	if registered != nil {
		panic("arcdps.Register: addon already registered as " + registered.Name)
	}
	registered = a
}

// Registered returns the registered addon, or nil.
func Registered() *Addon {
	return registered
}
