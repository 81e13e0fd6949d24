// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"github.com/samber/oops"
)

// Error codes attached to errors returned by this package.
const (
	CodeHostUnavailable    = "HOST_UNAVAILABLE"
	CodeHostSymbolMissing  = "HOST_SYMBOL_MISSING"
	CodeAddonInitFailed    = "ADDON_INIT_FAILED"
	CodeAddonNotRegistered = "ADDON_NOT_REGISTERED"
	CodeExtrasIncompatible = "EXTRAS_INCOMPATIBLE"
)

// errHostUnavailable is returned by host wrappers before init resolved the
// host functions.
func errHostUnavailable(fn string) error {
	return oops.Code(CodeHostUnavailable).
		With("function", fn).
		Errorf("arcdps host functions are not available")
}
