// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package squadlog is an example arcdps addon. It tracks squad membership
// through the unofficial extras protocol, counts the local player's combat
// events and toggles its window with a hotkey.
//
// Build the DLL from the generated main package:
//
//	go generate ./plugins/squadlog
//	go build -buildmode=c-shared -o squadlog.dll ./plugins/squadlog/cmd/squadlog
package squadlog

//go:generate go run ../../cmd/arcdps-gen generate -m addon.yaml -o cmd/squadlog

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/holomush/arcdps-go/pkg/arcdps"
	"github.com/holomush/arcdps-go/pkg/arcdps/markup"
	"github.com/holomush/arcdps-go/pkg/arcdps/settings"
)

const addonName = "squadlog"

// Config is persisted next to arcdps.ini as squadlog.yaml.
type Config struct {
	ShowWindow   bool   `yaml:"show_window"`
	AnnounceJoin bool   `yaml:"announce_join"`
	ToggleKey    uint16 `yaml:"toggle_key"`

	// Quiet lists account glob patterns whose joins and leaves are not
	// announced, e.g. "*.1234" or "Guild*".
	Quiet []string `yaml:"quiet"`
}

// DefaultConfig is used when no settings file exists.
func DefaultConfig() Config {
	return Config{
		ShowWindow:   true,
		AnnounceJoin: true,
		ToggleKey:    0x4c, // L
	}
}

// Member is a squad member as last reported by extras.
type Member struct {
	Account  string
	Role     arcdps.UserRole
	Subgroup uint8
	Ready    bool
}

// tracker holds the addon state. Callbacks arrive on host threads.
type tracker struct {
	mu       sync.Mutex
	store    *settings.Store[Config]
	cfg      Config
	self     string
	members  map[string]Member
	language arcdps.Language
	events   map[uint64]int
	held     map[uint]bool
	quiet    []glob.Glob
	frames   uint64
	rebinds  []arcdps.KeybindChange

	// logWindow writes to the host log window; replaced in tests.
	logWindow func(string) error
}

// New returns the addon definition. The generated main package fills in
// name, version and signature from addon.yaml.
func New() *arcdps.Addon {
	return newTracker().addon()
}

func newTracker() *tracker {
	return &tracker{
		cfg:       DefaultConfig(),
		members:   make(map[string]Member),
		events:    make(map[uint64]int),
		held:      make(map[uint]bool),
		logWindow: arcdps.LogWindow,
	}
}

func (s *tracker) addon() *arcdps.Addon {
	return &arcdps.Addon{
		Name:                  addonName,
		Init:                  s.init,
		Release:               s.release,
		Combat:                s.combat,
		Imgui:                 s.imgui,
		OptionsEnd:            s.optionsEnd,
		WndNofilter:           s.wndNofilter,
		ExtrasInit:            s.extrasInit,
		ExtrasSquadUpdate:     s.squadUpdate,
		ExtrasLanguageChanged: s.languageChanged,
		ExtrasKeybindChanged:  s.keybindChanged,
	}
}

func (s *tracker) init() error {
	store, err := settings.Open(addonName, DefaultConfig())
	if err != nil {
		return oops.With("addon", addonName).Wrapf(err, "open settings")
	}
	cfg, err := store.Load()
	if err != nil {
		slog.Warn("settings unreadable, using defaults", "path", store.Path(), "error", err)
	}

	s.mu.Lock()
	s.store = store
	s.cfg = cfg
	s.quiet = compileQuiet(cfg.Quiet)
	s.mu.Unlock()

	slog.Info("squadlog loaded", "settings", store.Path())
	return nil
}

func (s *tracker) release() {
	s.mu.Lock()
	store, cfg := s.store, s.cfg
	s.mu.Unlock()

	if store == nil {
		return
	}
	if err := store.Save(cfg); err != nil {
		slog.Error("saving settings failed", "error", err)
	}
}

func (s *tracker) combat(event *arcdps.CombatEvent, src, _ *arcdps.Agent, _ *string, _, _ uint64) {
	if event == nil || src == nil || !src.IsSelf {
		return
	}
	s.mu.Lock()
	s.events[src.ID]++
	s.mu.Unlock()
}

func (s *tracker) imgui(_ *arcdps.UI, notCharSelOrLoading bool) {
	if !notCharSelOrLoading {
		return
	}
	s.mu.Lock()
	if s.cfg.ShowWindow {
		s.frames++
	}
	s.mu.Unlock()
}

func (s *tracker) optionsEnd(_ *arcdps.UI) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slog.Debug("options rendered", "members", len(s.members), "show_window", s.cfg.ShowWindow)
}

// wndNofilter toggles the window when the configured key is pressed while
// the host's modifier keys are held. The toggling key press is swallowed.
func (s *tracker) wndNofilter(key uint, keyDown, prevKeyDown bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.held[key] = keyDown
	if key != uint(s.cfg.ToggleKey) || !keyDown || prevKeyDown {
		return true
	}
	if mods, err := arcdps.CurrentModifiers(); err == nil && !s.modifiersHeld(mods) {
		return true
	}
	s.cfg.ShowWindow = !s.cfg.ShowWindow
	return false
}

// modifiersHeld must be called with mu held.
func (s *tracker) modifiersHeld(mods arcdps.Modifiers) bool {
	for _, k := range []uint16{mods.Modifier1, mods.Modifier2} {
		if k != 0 && !s.held[uint(k)] {
			return false
		}
	}
	return true
}

func (s *tracker) extrasInit(info arcdps.ExtrasAddonInfo, accountName *string) {
	attrs := []any{"api_version", info.APIVersion, "compatible", info.Compatible()}
	if info.Version != nil {
		attrs = append(attrs, "extras_version", info.Version.String())
	}
	slog.Info("unofficial extras loaded", attrs...)

	if accountName == nil {
		return
	}
	s.mu.Lock()
	s.self = *accountName
	s.mu.Unlock()
}

func (s *tracker) squadUpdate(users arcdps.UserInfoIter) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for u := range users.All() {
		if u.AccountName == nil {
			continue
		}
		account := *u.AccountName
		_, known := s.members[account]

		if u.Role == arcdps.UserRoleNone {
			delete(s.members, account)
			if known {
				s.announce(account, markup.Color("orange", account).AppendText(" left the squad"))
			}
			continue
		}

		s.members[account] = Member{
			Account:  account,
			Role:     u.Role,
			Subgroup: u.Subgroup,
			Ready:    u.ReadyStatus,
		}
		if !known && account != s.self {
			s.announce(account, markup.Color("green", account).AppendText(fmt.Sprintf(" joined subgroup %d", u.Subgroup)))
		}
	}
}

// compileQuiet skips invalid patterns.
func compileQuiet(patterns []string) []glob.Glob {
	out := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			slog.Warn("ignoring invalid quiet pattern", "pattern", p, "error", err)
			continue
		}
		out = append(out, g)
	}
	return out
}

// announce must be called with mu held.
func (s *tracker) announce(account string, text markup.StyledText) {
	if !s.cfg.AnnounceJoin {
		return
	}
	for _, g := range s.quiet {
		if g.Match(account) {
			return
		}
	}
	if err := s.logWindow(text.Render()); err != nil {
		slog.Debug("log window unavailable", "error", err)
	}
}

func (s *tracker) languageChanged(lang arcdps.Language) {
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	slog.Info("client language changed", "language", lang.String())
}

func (s *tracker) keybindChanged(c arcdps.KeybindChange) {
	s.mu.Lock()
	s.rebinds = append(s.rebinds, c)
	s.mu.Unlock()
	slog.Debug("game keybind changed",
		"control", int32(c.Control),
		"index", c.Index,
		"device", c.Key.Device.String(),
		"code", c.Key.Code,
		"modifier", c.Key.Modifier.String())
}

// memberList returns the current squad sorted by account name.
func (s *tracker) memberList() []Member {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Member, 0, len(s.members))
	for _, m := range s.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Account < out[j].Account })
	return out
}

// windowShown reports whether the window is toggled on.
func (s *tracker) windowShown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.ShowWindow
}

// clientLanguage returns the last client language reported by extras.
func (s *tracker) clientLanguage() arcdps.Language {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// eventCount returns the number of combat events seen for the local agent id.
func (s *tracker) eventCount(id uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events[id]
}

// frameCount returns the number of frames drawn with the window shown.
func (s *tracker) frameCount() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
