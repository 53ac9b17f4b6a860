// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 SportEvents Contributors

package main

import (
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the sportevents CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sportevents",
		Short: "sportevents - an events-listing application",
		Long: `sportevents serves an events-listing application with
username/password authentication and Redis-backed sessions.`,
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewMigrateCmd())
	cmd.AddCommand(NewStatusCmd())

	return cmd
}
