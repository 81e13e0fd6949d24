// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestRawLayouts(t *testing.T) {
	assert.Equal(t, uintptr(40), unsafe.Offsetof(RawCombatEvent{}.SrcInstanceID))
	assert.Equal(t, uintptr(48), unsafe.Offsetof(RawCombatEvent{}.Iff))
	assert.Equal(t, uintptr(56), unsafe.Offsetof(RawCombatEvent{}.IsStateChange))
	assert.Equal(t, uintptr(60), unsafe.Offsetof(RawCombatEvent{}.Pad61))
	assert.Equal(t, uintptr(28), unsafe.Offsetof(RawAgent{}.Team))
	assert.Equal(t, uintptr(16), unsafe.Offsetof(RawUserInfo{}.Role))
}

func TestNewAgent_Nil(t *testing.T) {
	assert.Nil(t, newAgent(nil))
	assert.Nil(t, newCombatEvent(nil))
}

func TestAffinity_String(t *testing.T) {
	assert.Equal(t, "friend", AffinityFriend.String())
	assert.Equal(t, "foe", AffinityFoe.String())
	assert.Equal(t, "unknown", AffinityUnknown.String())
}
