// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"fmt"
	"unsafe"
)

// RawCombatEvent is the host's combat event record. The layout is fixed by
// the host and must not be reordered.
type RawCombatEvent struct {
	Time                uint64
	SrcAgent            uint64
	DstAgent            uint64
	Value               int32
	BuffDmg             int32
	OverstackValue      uint32
	SkillID             uint32
	SrcInstanceID       uint16
	DstInstanceID       uint16
	SrcMasterInstanceID uint16
	DstMasterInstanceID uint16
	Iff                 uint8
	Buff                uint8
	Result              uint8
	IsActivation        uint8
	IsBuffRemove        uint8
	IsNinety            uint8
	IsFifty             uint8
	IsMoving            uint8
	IsStateChange       uint8
	IsFlanking          uint8
	IsShields           uint8
	IsOffCycle          uint8
	Pad61               uint8
	Pad62               uint8
	Pad63               uint8
	Pad64               uint8
}

// RawAgent is the host's agent record.
type RawAgent struct {
	Name  *byte
	ID    uintptr
	Prof  uint32
	Elite uint32
	Self  uint32
	Team  uint16
	_     uint16
}

// Compile-time layout checks against the host ABI (64-bit only).
var (
	_ [64]byte = [unsafe.Sizeof(RawCombatEvent{})]byte{}
	_ [32]byte = [unsafe.Sizeof(RawAgent{})]byte{}
)

// Affinity describes whether the source agent is friendly to the destination.
type Affinity uint8

// Affinity values.
const (
	AffinityFriend Affinity = iota
	AffinityFoe
	AffinityUnknown
)

func (a Affinity) String() string {
	switch a {
	case AffinityFriend:
		return "friend"
	case AffinityFoe:
		return "foe"
	case AffinityUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("affinity(%d)", uint8(a))
	}
}

// Activation describes skill activation state.
type Activation uint8

// Activation values.
const (
	ActivationNone Activation = iota
	ActivationStart
	ActivationQuicknessUnused
	ActivationCancelFire
	ActivationCancelCancel
	ActivationReset
)

// BuffRemove describes how a buff was removed.
type BuffRemove uint8

// BuffRemove values.
const (
	BuffRemoveNone BuffRemove = iota
	BuffRemoveAll
	BuffRemoveSingle
	BuffRemoveManual
)

// StateChange identifies non-damage combat events.
type StateChange uint8

// StateChange values.
const (
	StateChangeNone StateChange = iota
	StateChangeEnterCombat
	StateChangeExitCombat
	StateChangeChangeUp
	StateChangeChangeDead
	StateChangeChangeDown
	StateChangeSpawn
	StateChangeDespawn
	StateChangeHealthUpdate
	StateChangeLogStart
	StateChangeLogEnd
	StateChangeWeaponSwap
	StateChangeMaxHealthUpdate
	StateChangePointOfView
	StateChangeLanguage
	StateChangeGWBuild
	StateChangeShardID
	StateChangeReward
	StateChangeBuffInitial
	StateChangePosition
	StateChangeVelocity
	StateChangeFacing
	StateChangeTeamChange
	StateChangeAttackTarget
	StateChangeTargetable
	StateChangeMapID
	StateChangeReplInfo
	StateChangeStackActive
	StateChangeStackReset
	StateChangeGuild
	StateChangeBuffInfo
	StateChangeBuffFormula
	StateChangeSkillInfo
	StateChangeSkillTiming
	StateChangeBreakbarState
	StateChangeBreakbarPercent
	StateChangeError
	StateChangeTag
	StateChangeBarrierUpdate
	StateChangeStatReset
	StateChangeExtension
	StateChangeAPIDelayed
	StateChangeInstanceStart
	StateChangeTickRate
	StateChangeLast90BeforeDown
	StateChangeEffect
	StateChangeIDToGUID
	StateChangeLogNPCUpdate
)

// CombatEvent is an owned copy of a host combat event.
type CombatEvent struct {
	Time                uint64
	SrcAgent            uint64
	DstAgent            uint64
	Value               int32
	BuffDmg             int32
	OverstackValue      uint32
	SkillID             uint32
	SrcInstanceID       uint16
	DstInstanceID       uint16
	SrcMasterInstanceID uint16
	DstMasterInstanceID uint16
	Iff                 Affinity
	Buff                bool
	Result              uint8
	IsActivation        Activation
	IsBuffRemove        BuffRemove
	IsNinety            bool
	IsFifty             bool
	IsMoving            bool
	IsStateChange       StateChange
	IsFlanking          bool
	IsShields           bool
	IsOffCycle          bool
	Pad                 [4]uint8
}

// Agent is an owned copy of a host agent record.
type Agent struct {
	// Name is nil when the host supplied no name.
	Name   *string
	ID     uint64
	Prof   uint32
	Elite  uint32
	IsSelf bool
	Team   uint16
}

// newCombatEvent copies a raw event. A nil raw event yields nil.
func newCombatEvent(raw *RawCombatEvent) *CombatEvent {
	if raw == nil {
		return nil
	}
	return &CombatEvent{
		Time:                raw.Time,
		SrcAgent:            raw.SrcAgent,
		DstAgent:            raw.DstAgent,
		Value:               raw.Value,
		BuffDmg:             raw.BuffDmg,
		OverstackValue:      raw.OverstackValue,
		SkillID:             raw.SkillID,
		SrcInstanceID:       raw.SrcInstanceID,
		DstInstanceID:       raw.DstInstanceID,
		SrcMasterInstanceID: raw.SrcMasterInstanceID,
		DstMasterInstanceID: raw.DstMasterInstanceID,
		Iff:                 Affinity(raw.Iff),
		Buff:                raw.Buff != 0,
		Result:              raw.Result,
		IsActivation:        Activation(raw.IsActivation),
		IsBuffRemove:        BuffRemove(raw.IsBuffRemove),
		IsNinety:            raw.IsNinety != 0,
		IsFifty:             raw.IsFifty != 0,
		IsMoving:            raw.IsMoving != 0,
		IsStateChange:       StateChange(raw.IsStateChange),
		IsFlanking:          raw.IsFlanking != 0,
		IsShields:           raw.IsShields != 0,
		IsOffCycle:          raw.IsOffCycle != 0,
		Pad:                 [4]uint8{raw.Pad61, raw.Pad62, raw.Pad63, raw.Pad64},
	}
}

// newAgent copies a raw agent. A nil raw agent yields nil.
func newAgent(raw *RawAgent) *Agent {
	if raw == nil {
		return nil
	}
	return &Agent{
		Name:   goString(unsafe.Pointer(raw.Name)),
		ID:     uint64(raw.ID),
		Prof:   raw.Prof,
		Elite:  raw.Elite,
		IsSelf: raw.Self != 0,
		Team:   raw.Team,
	}
}
