// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package codegen generates the main package of an addon DLL from its
// manifest. The generated file registers the addon and links the host entry
// points; the extras entry point is only linked when the manifest declares an
// extras callback.
package codegen

import (
	"bytes"
	_ "embed"
	"go/format"
	"os"
	"path/filepath"
	"text/template"

	"github.com/samber/oops"

	"github.com/holomush/arcdps-go/internal/manifest"
)

// CodeFailed is the error code of generation failures.
const CodeFailed = "CODEGEN_FAILED"

// FileName is the name of the generated file.
const FileName = "addon_gen.go"

// Import paths of the packages the generated file links in.
const (
	ArcdpsImport = "github.com/holomush/arcdps-go/pkg/arcdps"
	ExportImport = ArcdpsImport + "/export"
	ExtrasImport = ExportImport + "/extras"
)

//go:embed main.go.tmpl
var mainTemplate string

var tmpl = template.Must(template.New("main").Parse(mainTemplate))

type templateData struct {
	Manifest     *manifest.Manifest
	ArcdpsImport string
	ExportImport string
	ExtrasImport string
}

// Generate renders the main package source for m.
func Generate(m *manifest.Manifest) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	data := templateData{
		Manifest:     m,
		ArcdpsImport: ArcdpsImport,
		ExportImport: ExportImport,
	}
	if m.UsesExtras() {
		data.ExtrasImport = ExtrasImport
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, oops.Code(CodeFailed).With("addon", m.Name).Wrapf(err, "render template")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, oops.Code(CodeFailed).With("addon", m.Name).Wrapf(err, "format generated source")
	}
	return src, nil
}

// WriteFile generates the main package for m into dir.
func WriteFile(m *manifest.Manifest, dir string) (string, error) {
	src, err := Generate(m)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", oops.Code(CodeFailed).With("dir", dir).Wrapf(err, "create output directory")
	}
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, src, 0o600); err != nil {
		return "", oops.Code(CodeFailed).With("path", path).Wrapf(err, "write generated file")
	}
	return path, nil
}
