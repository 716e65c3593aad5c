// Copyright 2025 ticktools LLC
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
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/ticktools/doctick/pkg/annotate"
	"github.com/ticktools/doctick/pkg/config"
	"github.com/ticktools/doctick/pkg/log"
	"github.com/ticktools/doctick/pkg/operation"
	"github.com/ticktools/doctick/pkg/walker"
	"gitlab.com/tozd/go/errors"
)

// 🎛️ rootFlags holds the command line flag values
type rootFlags struct {
	configFile string
	root       string
	include    []string
	ignore     []string
	marker     string
	dryRun     bool
	async      bool
	debug      bool
}

// 🏭 newRootCmd creates the root command. The report is written to console.
func newRootCmd(console io.Writer) *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "doctick",
		Short: "Wrap identifier-like tokens in doc comments with backticks",
		Long: `doctick scans source files for documentation comment lines (/// by
default) and wraps recognizable tokens in backticks: call-like tokens such
as fish_add_path(), snake_case identifiers, and PascalCase type names.
Files are only rewritten when at least one line changed, so running
doctick twice in a row reports zero updates the second time.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd, console, flags)
		},
	}
	addRootFlags(cmd, flags)
	return cmd
}

// 🎛️ addRootFlags adds the flags to the root command
func addRootFlags(cmd *cobra.Command, flags *rootFlags) {
	cmd.Flags().StringVarP(&flags.configFile, "config", "c", ".doctick.yaml", "config file path")
	cmd.Flags().StringVar(&flags.root, "root", "", "directory to walk (overrides config)")
	cmd.Flags().StringSliceVar(&flags.include, "include", nil, "globs for files to process (overrides config)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "globs for files to skip (overrides config)")
	cmd.Flags().StringVar(&flags.marker, "marker", "", "doc comment marker (overrides config)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "count changes without writing files")
	cmd.Flags().BoolVar(&flags.async, "async", false, "process files in parallel")
	cmd.Flags().BoolVarP(&flags.debug, "debug", "d", false, "enable debug logging")
}

// 🏃 runAnnotate loads config, applies flag overrides, and runs the
// annotate operation.
func runAnnotate(cmd *cobra.Command, console io.Writer, flags *rootFlags) error {
	ctx := cmd.Context()
	zlog := zerolog.Ctx(ctx)
	if flags.debug {
		*zlog = zlog.Level(zerolog.DebugLevel)
	}

	cfg, err := config.Load(ctx, flags.configFile)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}

	// Flags beat the config file, but only when actually set.
	if cmd.Flags().Changed("root") {
		cfg.Root = flags.root
	}
	if cmd.Flags().Changed("include") {
		cfg.Include = flags.include
	}
	if cmd.Flags().Changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if cmd.Flags().Changed("marker") {
		cfg.Marker = flags.marker
	}
	if cmd.Flags().Changed("dry-run") {
		cfg.DryRun = flags.dryRun
	}
	if cmd.Flags().Changed("async") {
		cfg.Async = flags.async
	}
	if err := cfg.Validate(); err != nil {
		return errors.Errorf("validating config: %w", err)
	}

	w, err := walker.New(walker.Options{
		Root:      cfg.Root,
		Include:   cfg.Include,
		Ignore:    cfg.Ignore,
		DryRun:    cfg.DryRun,
		Annotator: annotate.New(cfg.Marker),
	})
	if err != nil {
		return errors.Errorf("creating walker: %w", err)
	}

	op, err := operation.NewAnnotateOperation(operation.Options{
		Config: cfg,
		Walker: w,
		Logger: log.New(console, *zlog),
	})
	if err != nil {
		return errors.Errorf("creating operation: %w", err)
	}

	return op.Execute(ctx)
}
