// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package settings persists an addon's own settings as YAML next to the
// host's arcdps.ini.
//
//	type Config struct {
//		ShowWindow bool    `yaml:"show_window"`
//		Opacity    float64 `yaml:"opacity"`
//	}
//
//	store, err := settings.Open("squadlog", Config{ShowWindow: true, Opacity: 0.8})
//	cfg, err := store.Load()
//	...
//	err = store.Save(cfg)
package settings

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/sethvargo/go-retry"
	"gopkg.in/yaml.v3"

	"github.com/holomush/arcdps-go/pkg/arcdps"
)

// Error codes.
const (
	CodeLoadFailed = "SETTINGS_LOAD_FAILED"
	CodeSaveFailed = "SETTINGS_SAVE_FAILED"
)

// renameBackoff bounds retries of the final rename, which fails on Windows
// while another process holds the old file open.
func renameBackoff() retry.Backoff {
	return retry.WithMaxRetries(4, retry.NewExponential(10*time.Millisecond))
}

// Store loads and saves settings of type T. Fields use yaml struct tags.
type Store[T any] struct {
	path     string
	defaults T
}

// Open returns a store for <dir of arcdps.ini>/<addon>.yaml. It fails with
// arcdps.CodeHostUnavailable before the host functions are resolved.
func Open[T any](addon string, defaults T) (*Store[T], error) {
	ini, err := arcdps.ConfigPath()
	if err != nil {
		return nil, err
	}
	if ini == "" {
		return nil, oops.Code(CodeLoadFailed).With("addon", addon).Errorf("host reported no config path")
	}
	return NewStore(filepath.Join(filepath.Dir(ini), addon+".yaml"), defaults), nil
}

// NewStore returns a store for an explicit path.
func NewStore[T any](path string, defaults T) *Store[T] {
	return &Store[T]{path: path, defaults: defaults}
}

// Path returns the settings file path.
func (s *Store[T]) Path() string {
	return s.path
}

// Load reads the settings file over a copy of the defaults. A missing file
// yields the defaults. The copy is shallow: maps and slices in the defaults
// are shared with the result until the file overrides them.
//
// Save writes nil slices as empty lists, so a nil slice that went through
// Save and Load comes back empty but non-nil.
func (s *Store[T]) Load() (T, error) {
	out := s.defaults

	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(s.path), kyaml.Parser()); err != nil {
		return out, oops.Code(CodeLoadFailed).With("path", s.path).Wrapf(err, "read settings")
	}

	if err := k.UnmarshalWithConf("", &out, koanf.UnmarshalConf{Tag: "yaml"}); err != nil {
		return s.defaults, oops.Code(CodeLoadFailed).With("path", s.path).Wrapf(err, "decode settings")
	}
	return out, nil
}

// Save writes v to the settings file, replacing it atomically.
func (s *Store[T]) Save(v T) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return oops.Code(CodeSaveFailed).With("path", s.path).Wrapf(err, "encode settings")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return oops.Code(CodeSaveFailed).With("path", s.path).Wrapf(err, "create settings directory")
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return oops.Code(CodeSaveFailed).With("path", s.path).Wrapf(err, "create temp file")
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return oops.Code(CodeSaveFailed).With("path", s.path).Wrapf(err, "write settings")
	}
	if err := tmp.Close(); err != nil {
		return oops.Code(CodeSaveFailed).With("path", s.path).Wrapf(err, "close settings")
	}
	err = retry.Do(context.Background(), renameBackoff(), func(context.Context) error {
		return retry.RetryableError(os.Rename(tmp.Name(), s.path))
	})
	if err != nil {
		return oops.Code(CodeSaveFailed).With("path", s.path).Wrapf(err, "replace settings")
	}
	return nil
}
