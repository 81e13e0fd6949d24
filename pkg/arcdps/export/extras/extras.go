// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package extras exports arcdps_unofficial_extras_subscriber_init, the entry
// point the unofficial extras addon looks for. Import it for its side effect
// only when the addon sets an extras callback; without the import the symbol
// is absent and extras treats the addon as not participating.
package extras

/*
#include <stdint.h>
*/
import "C"

import (
	"unsafe"

	"github.com/holomush/arcdps-go/pkg/arcdps"
)

func init() {
	arcdps.ExportsExtras()
}

//export arcdps_unofficial_extras_subscriber_init
func arcdps_unofficial_extras_subscriber_init(info, sub unsafe.Pointer) { //nolint:revive // exported name is fixed by the host
	arcdps.SubscriberInit((*arcdps.RawExtrasAddonInfo)(info), (*arcdps.ExtrasSubscriberInfo)(sub))
}
