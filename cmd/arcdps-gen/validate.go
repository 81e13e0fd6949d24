// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"log/slog"
	"os"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/arcdps-go/internal/manifest"
	"github.com/holomush/arcdps-go/pkg/errutil"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate an addon manifest",
		Long:  `Validate checks the manifest against the addon JSON Schema and the manifest rules.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := os.ReadFile(manifestFile)
			if err != nil {
				return oops.Code(manifest.CodeInvalid).With("path", manifestFile).Wrapf(err, "read manifest")
			}

			if err := manifest.ValidateSchema(data); err != nil {
				errutil.LogError(slog.Default(), "manifest does not match schema", err)
				cmd.PrintErrf("%s: %s\n", manifestFile, manifest.FormatSchemaError(err))
				return err
			}
			m, err := manifest.Parse(data)
			if err != nil {
				errutil.LogError(slog.Default(), "manifest is invalid", err)
				return err
			}

			cmd.Printf("%s: %s %s sig %s ok\n", manifestFile, m.Name, m.Version, m.SigHex())
			return nil
		},
	}
}
