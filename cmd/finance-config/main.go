// SPDX-License-Identifier: Apache-2.0

// finance-config inspects and validates the layered configuration:
// it prints the effective configuration after applying override files
// and checks override files against the base configuration and the
// non-overridable declaration.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/LukeTonin/finance/internal/config"
	"github.com/LukeTonin/finance/internal/logger"
)

func main() {
	log := logger.NewLogger("finance-config")

	if err := newRootCmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}

func newRootCmd() *cobra.Command {
	var rootDir string

	cmd := &cobra.Command{
		Use:          "finance-config",
		Short:        "Inspect and validate the layered finance configuration",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if rootDir != "" {
				return os.Setenv("FINANCE_ROOT_DIR", rootDir)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&rootDir, "root", "", "process root directory (defaults to the working directory)")
	cmd.AddCommand(newPrintCmd(), newValidateCmd())

	return cmd
}

func newPrintCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "print [override-file...]",
		Short: "Print the effective configuration after applying the given override files",
		RunE: func(cmd *cobra.Command, args []string) error {
			merged, err := config.Generate(fileSources(args)...)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(merged, "", "    ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [override-file...]",
		Short: "Check override files against the base configuration and the non-overridable declaration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := config.Generate(fileSources(args)...); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "configuration is valid")
			return nil
		},
	}
}

func fileSources(args []string) []config.Source {
	sources := make([]config.Source, 0, len(args))
	for _, arg := range args {
		sources = append(sources, config.FileSource(arg))
	}
	return sources
}
