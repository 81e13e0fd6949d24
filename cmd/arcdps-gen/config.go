// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"

	"github.com/holomush/arcdps-go/internal/manifest"
)

// addManifestFlags registers flags that override manifest keys. Flag names
// match the manifest's YAML keys.
func addManifestFlags(flags *pflag.FlagSet) {
	flags.String("name", "", "override the addon name")
	flags.String("version", "", "override the addon version")
	flags.String("sig", "", "override the addon signature (decimal or 0x hex)")
	flags.String("package", "", "override the import path of the addon package")
	flags.String("constructor", "", "override the addon constructor name")
}

// loadManifest reads the manifest at path and applies changed flags on top.
func loadManifest(path string, flags *pflag.FlagSet) (*manifest.Manifest, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, oops.Code(manifest.CodeInvalid).With("path", path).Wrapf(err, "load manifest")
	}
	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return nil, oops.Code(manifest.CodeInvalid).Wrapf(err, "apply flag overrides")
		}
	}

	var m manifest.Manifest
	if err := k.UnmarshalWithConf("", &m, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return nil, oops.Code(manifest.CodeInvalid).With("path", path).Wrapf(err, "decode manifest")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}
