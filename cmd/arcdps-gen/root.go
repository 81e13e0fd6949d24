// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/arcdps-go/internal/logging"
)

// Global flags available to all subcommands.
var (
	manifestFile string
	logFormat    string
)

// NewRootCmd creates the root command for the arcdps-gen CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "arcdps-gen",
		Short: "arcdps-gen - build tooling for Go arcdps addons",
		Long: `arcdps-gen reads an addon.yaml manifest and generates the main package
that registers the addon and exports the arcdps entry points.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logging.Setup("arcdps-gen", version, logFormat, nil, cmd.ErrOrStderr()))
		},
	}

	cmd.PersistentFlags().StringVarP(&manifestFile, "manifest", "m", "addon.yaml", "addon manifest path")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (json, text)")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}
