// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package arcdps

import (
	"log/slog"

	"github.com/oklog/ulid/v2"

	"github.com/holomush/arcdps-go/internal/logging"
)

// hostSinks routes slog output to the host's log functions.
type hostSinks struct{}

func (hostSinks) Log(msg string) error       { return Log(msg) }
func (hostSinks) LogWindow(msg string) error { return LogWindow(msg) }

// loadSession identifies this load in the host log, which is appended to
// across game sessions.
var loadSession = ulid.Make()

// installLogger makes the host's log sinks the default slog destination.
// It runs after the host functions resolved.
func installLogger(a *Addon) {
	logger := logging.Setup(a.Name, a.Version, "", hostSinks{}, nil)
	slog.SetDefault(logger.With("session", loadSession.String()))
}

// LoadSession returns the id attached to every record logged through the
// host sinks.
func LoadSession() string {
	return loadSession.String()
}
