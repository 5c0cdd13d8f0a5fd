// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/walteh/pyimports/cmd/pyimports/commands"
	"github.com/walteh/pyimports/cmd/pyimports/opts"
	"github.com/walteh/pyimports/pkg/log"
)

// newRootCmd builds the command tree with fresh options
func newRootCmd() *cobra.Command {
	rootOpts := &opts.RootOpts{}

	cmd := &cobra.Command{
		Use:   "pyimports",
		Short: "Rewrite relative Python imports into absolute imports",
		Long: `pyimports turns "from .module import name" into "from <package>.module import name"
across a Python package, line by line, leaving everything else untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			rootOpts.ConfigExplicit = cmd.Flags().Changed("config")
			zlog := setupLogging(cmd, rootOpts.Debug)
			ctx := zlog.WithContext(cmd.Context())
			cmd.SetContext(log.NewContext(ctx, log.New(cmd.OutOrStdout(), zlog)))
		},
	}

	addRootFlags(cmd, rootOpts)

	cmd.AddCommand(
		commands.NewConvertCmd(rootOpts),
		commands.NewCheckCmd(rootOpts),
		newVersionCmd(),
	)

	return cmd
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command, o *opts.RootOpts) {
	cmd.PersistentFlags().StringVarP(&o.ConfigFile, "config", "c", ".pyimports.hcl", "config file path (.hcl, .yaml, .yml or .json)")
	cmd.PersistentFlags().BoolVarP(&o.Debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags. Per-file progress is
// printed to stdout, so structured logs stay at warn unless debugging.
func setupLogging(cmd *cobra.Command, debug bool) zerolog.Logger {
	level := zerolog.WarnLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), NoColor: os.Getenv("NO_COLOR") != ""}).
		Level(level).
		With().
		Timestamp().
		Logger()
}
