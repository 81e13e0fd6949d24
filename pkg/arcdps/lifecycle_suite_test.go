// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

//go:build integration

package arcdps

import (
	"log/slog"
	"path/filepath"
	"runtime"
	"testing"
	"unsafe"

	. "github.com/onsi/ginkgo/v2" //nolint:revive // ginkgo convention
	. "github.com/onsi/gomega"    //nolint:revive // gomega convention
)

// loadCycle is the state one simulated host session shares across specs.
type loadCycle struct {
	callbacks *fakeCallbacks
	host      *fakeHost
	iniPath   string
	keep      [][]byte

	table    *ExportTable
	combat   []string
	keys     []uint
	members  []UserInfo
	language Language
	account  *string
	releases int
}

var cycle *loadCycle

func TestLoadCycle(t *testing.T) {
	resetState(t)
	cycle = &loadCycle{
		callbacks: useFakeCallbacks(t),
		host:      newFakeHost(),
		iniPath:   filepath.Join(t.TempDir(), "addons", "arcdps", "arcdps.ini"),
	}
	cycle.host.setConfigPath(cycle.iniPath)
	cycle.host.install(t)
	t.Cleanup(func() { runtime.KeepAlive(cycle.keep) })

	RegisterFailHandler(Fail)
	RunSpecs(t, "Load Cycle Suite")
}

// cbytes returns a NUL-terminated buffer kept alive for the whole suite.
func (c *loadCycle) cbytes(s string) *byte {
	buf := cString(s)
	c.keep = append(c.keep, buf)
	return &buf[0]
}

func (c *loadCycle) callback(addr uintptr) any {
	fn, ok := c.callbacks.fns[addr]
	Expect(ok).To(BeTrue(), "no callback at %#x", addr)
	return fn
}

func (c *loadCycle) addon() *Addon {
	return &Addon{
		Name:    "squadlog",
		Version: "0.3.1",
		Sig:     0x5a11,
		Init: func() error {
			slog.Info("squadlog loaded")
			return nil
		},
		Release: func() { c.releases++ },
		Combat: func(_ *CombatEvent, src, _ *Agent, skill *string, _, _ uint64) {
			if src != nil && src.Name != nil && skill != nil {
				c.combat = append(c.combat, *src.Name+": "+*skill)
			}
		},
		WndNofilter: func(key uint, keyDown, _ bool) bool {
			if keyDown {
				c.keys = append(c.keys, key)
			}
			return key != 0x4c
		},
		ExtrasInit: func(_ ExtrasAddonInfo, account *string) { c.account = account },
		ExtrasSquadUpdate: func(users UserInfoIter) {
			for u := range users.All() {
				c.members = append(c.members, u)
			}
		},
		ExtrasLanguageChanged: func(lang Language) { c.language = lang },
	}
}

var _ = Describe("a full host session", Ordered, func() {
	var sub ExtrasSubscriberInfo

	It("registers from init", func() {
		ExportsExtras()
		Register(cycle.addon())
		Expect(Registered().Name).To(Equal("squadlog"))
	})

	It("negotiates extras before the host loads the table", func() {
		info := &RawExtrasAddonInfo{
			APIVersion:      2,
			MaxInfoVersion:  2,
			StringVersion:   cycle.cbytes("1.9.2.1"),
			SelfAccountName: cycle.cbytes(":Commander.4242"),
		}
		SubscriberInit(info, &sub)

		Expect(sub.InfoVersion).To(Equal(uint32(2)))
		Expect(readCString(sub.SubscriberName)).To(Equal("squadlog"))
		Expect(sub.SquadUpdateCallback).NotTo(BeZero())
		Expect(sub.LanguageChangedCallback).NotTo(BeZero())
		Expect(sub.KeybindChangedCallback).To(BeZero())
		Expect(cycle.account).To(HaveValue(Equal("Commander.4242")))
	})

	It("hands the host a populated table", func() {
		addr := InitAddr(InitParams{
			ArcVersion:   cycle.cbytes("20260901.123456-789-x64"),
			ImguiContext: 0x1c,
			Module:       0x4000,
			D3DVersion:   11,
		})
		Expect(InitAddr(InitParams{})).To(Equal(addr), "later calls return the same pointer")

		get, ok := cycle.callback(addr).(func() uintptr)
		Expect(ok).To(BeTrue())
		cycle.table = (*ExportTable)(unsafe.Pointer(get()))

		Expect(cycle.table.Sig).To(Equal(uint32(0x5a11)))
		Expect(cycle.table.Size).To(Equal(exportTableSize))
		Expect(cycle.table.ImguiVersion).To(Equal(ImguiVersion))
		Expect(readCString((*byte)(unsafe.Pointer(cycle.table.OutName)))).To(Equal("squadlog"))
		Expect(readCString((*byte)(unsafe.Pointer(cycle.table.OutBuild)))).To(Equal("0.3.1"))
		Expect(cycle.table.Combat).NotTo(BeZero())
		Expect(cycle.table.WndNofilter).NotTo(BeZero())
		Expect(cycle.table.Imgui).To(BeZero())
		Expect(cycle.table.WndFilter).To(BeZero())
	})

	It("routes addon logging into the host sinks", func() {
		Expect(cycle.host.logged).To(ContainElement(ContainSubstring("msg=\"squadlog loaded\"")))
		Expect(cycle.host.logged).To(ContainElement(ContainSubstring("session=" + LoadSession())))
		Expect(cycle.host.windowLog).To(BeEmpty())
	})

	It("resolves the host config path", func() {
		Expect(ConfigPath()).To(Equal(cycle.iniPath))
	})

	It("dispatches combat events", func() {
		combat, ok := cycle.callback(cycle.table.Combat).(func(event, src, dst, skillName unsafe.Pointer, id, revision uint64) uintptr)
		Expect(ok).To(BeTrue())

		ev := RawCombatEvent{Time: 1000, SkillID: 5491}
		src := RawAgent{Name: cycle.cbytes("Rytlock"), ID: 7, Self: 1}
		combat(unsafe.Pointer(&ev), unsafe.Pointer(&src), nil, unsafe.Pointer(cycle.cbytes("Fireball")), 1, 1)
		combat(nil, unsafe.Pointer(&src), nil, nil, 2, 1)

		Expect(cycle.combat).To(Equal([]string{"Rytlock: Fireball"}))
	})

	It("filters key presses", func() {
		wnd, ok := cycle.callback(cycle.table.WndNofilter).(func(hwnd unsafe.Pointer, msg uint32, wParam, lParam uintptr) uintptr)
		Expect(ok).To(BeTrue())

		Expect(wnd(nil, 0x0100, 0x4c, 0)).To(BeZero(), "hotkey is swallowed")
		Expect(wnd(nil, 0x0100, 0x41, 0)).To(Equal(uintptr(0x0100)))
		Expect(wnd(nil, 0x0200, 0, 0)).To(Equal(uintptr(0x0200)), "mouse messages pass through")
		Expect(cycle.keys).To(Equal([]uint{0x4c, 0x41}))
	})

	It("delivers squad and language updates", func() {
		squad, ok := cycle.callback(sub.SquadUpdateCallback).(func(users unsafe.Pointer, count uint64) uintptr)
		Expect(ok).To(BeTrue())
		lang, ok := cycle.callback(sub.LanguageChangedCallback).(func(lang int32) uintptr)
		Expect(ok).To(BeTrue())

		users := []RawUserInfo{
			{AccountName: cycle.cbytes(":Commander.4242"), JoinTime: 1, Role: uint8(UserRoleSquadLeader), Subgroup: 1},
			{AccountName: cycle.cbytes(":Ally.2000"), JoinTime: 2, Role: uint8(UserRoleMember), Subgroup: 2, ReadyStatus: 1},
		}
		squad(unsafe.Pointer(&users[0]), uint64(len(users)))
		lang(int32(LanguageFrench))

		Expect(cycle.members).To(HaveLen(2))
		Expect(cycle.members[1].AccountName).To(HaveValue(Equal("Ally.2000")))
		Expect(cycle.members[1].ReadyStatus).To(BeTrue())
		Expect(cycle.language).To(Equal(LanguageFrench))
	})

	It("releases exactly once", func() {
		release, ok := cycle.callback(ReleaseAddr()).(func() uintptr)
		Expect(ok).To(BeTrue())
		Expect(ReleaseAddr()).To(Equal(ReleaseAddr()))

		release()
		release()

		Expect(cycle.releases).To(Equal(1))
	})
})
