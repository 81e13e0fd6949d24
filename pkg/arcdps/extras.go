// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"iter"
	"log/slog"
	"unsafe"

	"github.com/Masterminds/semver/v3"
)

// Extras protocol versions this package speaks.
const (
	ExtrasAPIVersion     uint32 = 2
	extrasMinInfoVersion uint32 = 1
	extrasInfoVersion2   uint32 = 2
)

// RawExtrasAddonInfo is the extras subsystem's self description.
type RawExtrasAddonInfo struct {
	APIVersion      uint32
	MaxInfoVersion  uint32
	StringVersion   *byte
	SelfAccountName *byte
	ExtrasHandle    uintptr
}

// CheckCompat reports whether the extras subsystem speaks a protocol this
// package can subscribe with.
func (r *RawExtrasAddonInfo) CheckCompat() bool {
	return r.APIVersion == ExtrasAPIVersion && r.MaxInfoVersion >= extrasMinInfoVersion
}

// ExtrasSubscriberInfo is the record an addon fills in to subscribe to
// extras events. The language and keybind callbacks belong to info version 2
// and are only written when the subsystem allocated a version 2 record.
type ExtrasSubscriberInfo struct {
	InfoVersion         uint32
	_                   uint32
	SubscriberName      *byte
	SquadUpdateCallback uintptr

	// Info version 2.
	LanguageChangedCallback uintptr
	KeybindChangedCallback  uintptr
}

// ExtrasAddonInfo is the owned form of RawExtrasAddonInfo.
type ExtrasAddonInfo struct {
	APIVersion     uint32
	MaxInfoVersion uint32
	// VersionString is the subsystem's version as reported, nil if absent.
	VersionString *string
	// Version is VersionString parsed as semver, nil if absent or unparsable.
	Version *semver.Version
	Handle  uintptr
}

// Compatible reports whether the subscription could be registered.
func (e ExtrasAddonInfo) Compatible() bool {
	return e.APIVersion == ExtrasAPIVersion && e.MaxInfoVersion >= extrasMinInfoVersion
}

func newExtrasAddonInfo(raw *RawExtrasAddonInfo) ExtrasAddonInfo {
	info := ExtrasAddonInfo{
		APIVersion:     raw.APIVersion,
		MaxInfoVersion: raw.MaxInfoVersion,
		VersionString:  goString(unsafe.Pointer(raw.StringVersion)),
		Handle:         raw.ExtrasHandle,
	}
	if info.VersionString != nil {
		if v, err := semver.NewVersion(*info.VersionString); err == nil {
			info.Version = v
		}
	}
	return info
}

// Language is the game client language reported by extras.
type Language int32

// Language values.
const (
	LanguageEnglish Language = 0
	LanguageFrench  Language = 2
	LanguageGerman  Language = 3
	LanguageSpanish Language = 4
	LanguageChinese Language = 5
)

func (l Language) String() string {
	switch l {
	case LanguageEnglish:
		return "english"
	case LanguageFrench:
		return "french"
	case LanguageGerman:
		return "german"
	case LanguageSpanish:
		return "spanish"
	case LanguageChinese:
		return "chinese"
	default:
		return "unknown"
	}
}

// UserRole is a squad member's role.
type UserRole uint8

// UserRole values.
const (
	UserRoleSquadLeader UserRole = iota
	UserRoleLieutenant
	UserRoleMember
	UserRoleInvitee
	UserRoleApplicant
	UserRoleNone
	UserRoleInvalid
)

// RawUserInfo is one element of the extras squad update array.
type RawUserInfo struct {
	AccountName *byte
	JoinTime    uint64
	Role        uint8
	Subgroup    uint8
	ReadyStatus uint8
	_           uint8
	_           uint32
}

var _ [24]byte = [unsafe.Sizeof(RawUserInfo{})]byte{}

// UserInfo is an owned copy of a squad member update.
type UserInfo struct {
	// AccountName has the host's leading ':' removed; nil if absent.
	AccountName *string
	// JoinTime is zero when the user left the squad.
	JoinTime    uint64
	Role        UserRole
	Subgroup    uint8
	ReadyStatus bool
}

func newUserInfo(raw *RawUserInfo) UserInfo {
	return UserInfo{
		AccountName: stripAccountPrefix(goString(unsafe.Pointer(raw.AccountName))),
		JoinTime:    raw.JoinTime,
		Role:        UserRole(raw.Role),
		Subgroup:    raw.Subgroup,
		ReadyStatus: raw.ReadyStatus != 0,
	}
}

// UserInfoIter is a lazy view over the host's squad update array. It is only
// valid for the duration of the callback it was passed to.
type UserInfoIter struct {
	raw   *RawUserInfo
	count uint64
}

// NewUserInfoIter wraps a raw pointer and element count.
func NewUserInfoIter(users *RawUserInfo, count uint64) UserInfoIter {
	if users == nil {
		count = 0
	}
	return UserInfoIter{raw: users, count: count}
}

// Len returns the number of updated users.
func (it UserInfoIter) Len() int {
	return int(it.count)
}

// All yields each updated user, decoding one element at a time.
func (it UserInfoIter) All() iter.Seq[UserInfo] {
	return func(yield func(UserInfo) bool) {
		if it.count == 0 {
			return
		}
		users := unsafe.Slice(it.raw, it.count)
		for i := range users {
			if !yield(newUserInfo(&users[i])) {
				return
			}
		}
	}
}

// RawExtrasSubscriberInit takes over extras negotiation entirely.
type RawExtrasSubscriberInit func(info *RawExtrasAddonInfo, sub *ExtrasSubscriberInfo)

// ExtrasInitFunc is called once the extras subsystem loaded. accountName is
// the local account without the leading ':', nil if unknown.
type ExtrasInitFunc func(info ExtrasAddonInfo, accountName *string)

// ExtrasSquadUpdateCallback receives squad membership changes.
type ExtrasSquadUpdateCallback func(users UserInfoIter)

// ExtrasLanguageChangedCallback receives client language changes.
type ExtrasLanguageChangedCallback func(lang Language)

// subscribe fills sub when info is compatible. The version 2 tail (language
// and keybind slots) is only written when the subsystem allocated it and the
// addon binds one of them; an unbound slot in the tail is written as null.
func subscribe(info *RawExtrasAddonInfo, sub *ExtrasSubscriberInfo, name []byte, b slotBindings) bool {
	if !info.CheckCompat() {
		slog.Warn("extras subsystem incompatible, not subscribing",
			"code", CodeExtrasIncompatible,
			"api_version", info.APIVersion,
			"max_info_version", info.MaxInfoVersion)
		return false
	}
	sub.InfoVersion = extrasMinInfoVersion
	sub.SubscriberName = &name[0]
	sub.SquadUpdateCallback = b.extrasSquadUpdate.addr
	lang, keys := b.extrasLanguageChanged, b.extrasKeybindChanged
	if info.MaxInfoVersion >= extrasInfoVersion2 && (lang.kind != bindingAbsent || keys.kind != bindingAbsent) {
		sub.InfoVersion = extrasInfoVersion2
		sub.LanguageChangedCallback = lang.addr
		sub.KeybindChangedCallback = keys.addr
	}
	return true
}

// extrasExported is set when the extras entry point is linked into the DLL.
var extrasExported bool

// ExportsExtras records that the extras entry point is linked in. The
// export/extras package calls it from its init function.
func ExportsExtras() {
	extrasExported = true
}

// SubscriberInit runs the extras negotiation for the registered addon. It is
// called by the exported arcdps_unofficial_extras_subscriber_init.
func SubscriberInit(info *RawExtrasAddonInfo, sub *ExtrasSubscriberInfo) {
	a := registered
	if a == nil || info == nil || sub == nil {
		return
	}
	negotiateExtras(a, lc.bindings(a), lc.names(a).name, info, sub)
}

func negotiateExtras(a *Addon, b slotBindings, name []byte, info *RawExtrasAddonInfo, sub *ExtrasSubscriberInfo) {
	if a.RawExtrasInit != nil {
		a.RawExtrasInit(info, sub)
		return
	}

	hasSubscription := b.extrasSquadUpdate.kind != bindingAbsent ||
		b.extrasLanguageChanged.kind != bindingAbsent ||
		b.extrasKeybindChanged.kind != bindingAbsent
	if hasSubscription {
		subscribe(info, sub, name, b)
	}

	if a.ExtrasInit != nil {
		account := stripAccountPrefix(goString(unsafe.Pointer(info.SelfAccountName)))
		a.ExtrasInit(newExtrasAddonInfo(info), account)
	}
}
