// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package arcdps provides the SDK for building arcdps addons in Go.
//
// arcdps loads an addon DLL, looks up two exported functions, and receives a
// fixed-layout table of C function pointers from it. This package builds that
// table from ordinary typed Go callbacks: for every event category an addon
// may supply a raw, ABI-exact function pointer, a typed "safe" callback, or
// nothing. Safe callbacks are wrapped in a generated trampoline that decodes
// the host's raw pointers into Go values before calling them.
//
// Example usage:
//
//	package main
//
//	import (
//		"github.com/holomush/arcdps-go/pkg/arcdps"
//		_ "github.com/holomush/arcdps-go/pkg/arcdps/export"
//	)
//
//	func init() {
//		arcdps.Register(&arcdps.Addon{
//			Name:    "squadlog",
//			Version: "1.0.0",
//			Sig:     0x2a1b3c4d,
//			Init:    func() error { return nil },
//			Combat: func(ev *arcdps.CombatEvent, src, dst *arcdps.Agent, skill *string, id, rev uint64) {
//				// handle area combat
//			},
//		})
//	}
//
//	func main() {}
//
// Build with:
//
//	go build -buildmode=c-shared -o squadlog.dll
//
// # Lifetime and threading
//
// The host calls the init accessor once, then event slots from whatever
// thread it chooses, then the release accessor. None of these calls are
// serialized here: the exported tables and the host instance are written once
// during init and only read afterwards. Calling the init accessor
// concurrently from several threads is a caller error.
//
// Pointers handed to safe callbacks never outlive the call: every raw view is
// copied into an owned Go value before the callback runs.
package arcdps
