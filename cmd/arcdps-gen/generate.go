// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/arcdps-go/internal/codegen"
)

// NewGenerateCmd creates the generate subcommand.
func NewGenerateCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the addon's main package",
		Long: `Generate writes ` + codegen.FileName + ` into the output directory. The file
registers the addon with the manifest's name, version and signature and links
the arcdps entry points. The extras entry point is linked only when the
manifest declares an extras callback.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := loadManifest(manifestFile, cmd.Flags())
			if err != nil {
				return err
			}
			slog.Debug("manifest loaded",
				"name", m.Name,
				"version", m.Version,
				"sig", m.SigHex(),
				"extras", m.UsesExtras())

			path, err := codegen.WriteFile(m, outDir)
			if err != nil {
				return err
			}
			cmd.Printf("Generated %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory")
	addManifestFlags(cmd.Flags())

	return cmd
}
