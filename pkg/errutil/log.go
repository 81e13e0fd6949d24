// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package errutil holds helpers for oops errors shared by the addon runtime
// and the build tooling.
package errutil

import (
	"fmt"
	"log/slog"

	"github.com/samber/oops"
)

// CodePanic marks errors built from a recovered panic.
const CodePanic = "PANIC"

// Attrs returns slog key/value pairs describing err. Oops errors contribute
// their code and context; other errors only their text.
func Attrs(err error) []any {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return []any{"error", err}
	}
	attrs := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if ctx := oopsErr.Context(); len(ctx) > 0 {
		attrs = append(attrs, "context", ctx)
	}
	return attrs
}

// LogError logs err at error level with the attributes from Attrs.
func LogError(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, Attrs(err)...)
}

// Code returns the oops code carried by err, or "" if there is none.
func Code(err error) string {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return ""
	}
	code, _ := oopsErr.Code().(string)
	return code
}

// Recovered converts a value returned by recover into an error coded
// CodePanic. Error values stay reachable through errors.Is and errors.As.
func Recovered(v any) error {
	b := oops.Code(CodePanic).With("panic_type", fmt.Sprintf("%T", v))
	if err, ok := v.(error); ok {
		return b.Wrapf(err, "panic")
	}
	return b.Errorf("panic: %v", v)
}
