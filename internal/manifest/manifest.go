// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package manifest parses and validates addon.yaml files.
package manifest

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"gopkg.in/yaml.v3"
)

// CodeInvalid is the error code of every validation failure.
const CodeInvalid = "MANIFEST_INVALID"

// Callback names a host callback category the addon implements.
type Callback string

// Callback categories.
const (
	CallbackCombat                Callback = "combat"
	CallbackCombatLocal           Callback = "combat-local"
	CallbackImgui                 Callback = "imgui"
	CallbackOptionsEnd            Callback = "options-end"
	CallbackOptionsWindows        Callback = "options-windows"
	CallbackWndFilter             Callback = "wnd-filter"
	CallbackWndNofilter           Callback = "wnd-nofilter"
	CallbackExtrasInit            Callback = "extras-init"
	CallbackExtrasSquadUpdate     Callback = "extras-squad-update"
	CallbackExtrasLanguageChanged Callback = "extras-language-changed"
	CallbackExtrasKeybindChanged  Callback = "extras-keybind-changed"
)

// Callbacks lists every known category.
var Callbacks = []Callback{
	CallbackCombat,
	CallbackCombatLocal,
	CallbackImgui,
	CallbackOptionsEnd,
	CallbackOptionsWindows,
	CallbackWndFilter,
	CallbackWndNofilter,
	CallbackExtrasInit,
	CallbackExtrasSquadUpdate,
	CallbackExtrasLanguageChanged,
	CallbackExtrasKeybindChanged,
}

// Extras reports whether the category belongs to the extras protocol.
func (c Callback) Extras() bool {
	return strings.HasPrefix(string(c), "extras-")
}

// DefaultConstructor is used when the manifest names none.
const DefaultConstructor = "New"

// Manifest represents an addon.yaml file.
type Manifest struct {
	Name    string `yaml:"name" jsonschema:"minLength=1,maxLength=64,pattern=^[a-z]([a-z0-9-]*[a-z0-9])?$"`
	Version string `yaml:"version" jsonschema:"minLength=1"`
	Sig     uint32 `yaml:"sig" jsonschema:"minimum=1"`
	// Package is the import path of the package that builds the addon.
	Package string `yaml:"package" jsonschema:"minLength=1"`
	// Constructor is the exported func() *arcdps.Addon in Package.
	Constructor string     `yaml:"constructor,omitempty"`
	Callbacks   []Callback `yaml:"callbacks,omitempty"`
}

// maxNameLength is the maximum allowed length for addon names.
const maxNameLength = 64

// namePattern validates addon names: must start with lowercase letter,
// followed by lowercase letters, digits, or hyphens.
// Cannot end with a hyphen.
var namePattern = regexp.MustCompile(`^[a-z]([a-z0-9-]*[a-z0-9])?$`)

var (
	importPathPattern = regexp.MustCompile(`^[A-Za-z0-9._~-]+(/[A-Za-z0-9._~-]+)*$`)
	identifierPattern = regexp.MustCompile(`^[A-Z][A-Za-z0-9_]*$`)
)

// Parse parses and validates an addon.yaml file.
func Parse(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, oops.Code(CodeInvalid).Errorf("manifest data is empty")
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, oops.Code(CodeInvalid).Wrapf(err, "invalid YAML")
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks manifest constraints.
func (m *Manifest) Validate() error {
	if m.Name == "" || !namePattern.MatchString(m.Name) {
		return invalid("name", "name %q must start with a-z, contain only a-z, 0-9, hyphens, and not end with a hyphen", m.Name)
	}
	if len(m.Name) > maxNameLength {
		return invalid("name", "name must be %d characters or less, got %d", maxNameLength, len(m.Name))
	}

	if m.Version == "" {
		return invalid("version", "version is required")
	}
	if _, err := semver.StrictNewVersion(m.Version); err != nil {
		return invalid("version", "version %q is not a semantic version: %v", m.Version, err)
	}

	if m.Sig == 0 {
		return invalid("sig", "sig is required and must not be zero")
	}

	if m.Package == "" || !importPathPattern.MatchString(m.Package) {
		return invalid("package", "package %q is not a valid import path", m.Package)
	}
	if m.Constructor != "" && !identifierPattern.MatchString(m.Constructor) {
		return invalid("constructor", "constructor %q must be an exported Go identifier", m.Constructor)
	}

	seen := make(map[Callback]bool, len(m.Callbacks))
	for _, cb := range m.Callbacks {
		if !slices.Contains(Callbacks, cb) {
			return invalid("callbacks", "unknown callback %q", cb)
		}
		if seen[cb] {
			return invalid("callbacks", "callback %q listed twice", cb)
		}
		seen[cb] = true
	}

	return nil
}

// ConstructorName returns the constructor, defaulting to DefaultConstructor.
func (m *Manifest) ConstructorName() string {
	if m.Constructor == "" {
		return DefaultConstructor
	}
	return m.Constructor
}

// UsesExtras reports whether any declared callback belongs to the extras
// protocol.
func (m *Manifest) UsesExtras() bool {
	return slices.ContainsFunc(m.Callbacks, Callback.Extras)
}

// SigHex returns the signature formatted for display and generated code.
func (m *Manifest) SigHex() string {
	return fmt.Sprintf("0x%08x", m.Sig)
}

func invalid(field, format string, args ...any) error {
	return oops.Code(CodeInvalid).With("field", field).Errorf(format, args...)
}
