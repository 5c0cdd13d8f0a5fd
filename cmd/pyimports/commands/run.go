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

package commands

import (
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/walteh/pyimports/cmd/pyimports/opts"
	"github.com/walteh/pyimports/pkg/convert"
	"github.com/walteh/pyimports/pkg/log"
	"github.com/walteh/pyimports/pkg/scan"
	"github.com/walteh/pyimports/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// 🔧 convertFlags are the flags shared by convert and check
type convertFlags struct {
	workers int
	exclude []string
	dryRun  bool
}

func (f *convertFlags) register(cmd *cobra.Command, withDryRun bool) {
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 1, "number of files processed at once")
	cmd.Flags().StringArrayVarP(&f.exclude, "exclude", "x", nil, "glob of files to skip, relative to each directory (repeatable)")
	if withDryRun {
		cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, "report changes without writing files")
	}
}

// 📋 totals aggregates the summaries of every directory
type totals struct {
	directories int
	skipped     int
	files       int
	modified    int
	unmodified  int
	failed      int
	lines       int
}

func (t *totals) add(s *convert.Summary) {
	t.directories++
	if s.Skipped {
		t.skipped++
	}
	t.files += len(s.Results)
	t.modified += s.Count(convert.OutcomeModified)
	t.unmodified += s.Count(convert.OutcomeUnmodified)
	t.failed += s.Count(convert.OutcomeFailed)
	t.lines += s.Changes()
}

// 🏃 runConversion resolves settings from flags and config, then converts
// every directory in turn. Only fatal errors are returned.
func runConversion(cmd *cobra.Command, o *opts.RootOpts, args []string, flags *convertFlags, forceDryRun bool) (*totals, error) {
	ctx := cmd.Context()

	cfg, err := o.LoadConfig(ctx)
	if err != nil {
		return nil, err
	}

	dirs := args
	if len(dirs) == 0 {
		dirs = cfg.ResolvedDirectories()
	}

	workers := cfg.Workers
	if cmd.Flags().Changed("workers") {
		workers = flags.workers
	}

	dryRun := forceDryRun || flags.dryRun || cfg.DryRun

	conv, err := convert.New(convert.Options{
		FileUtil: source.NewDisk(),
		Workers:  workers,
		Exclude:  append(append([]string(nil), cfg.Exclude...), flags.exclude...),
		DryRun:   dryRun,
	})
	if err != nil {
		return nil, errors.Errorf("creating converter: %w", err)
	}

	logger := log.FromContext(ctx)
	if dryRun {
		logger.Header("checking relative imports")
	} else {
		logger.Header("converting relative imports")
	}

	t := &totals{}
	for _, dir := range dirs {
		summary, err := conv.ConvertRelativeImports(ctx, dir)
		if summary != nil {
			logger.LogSummary(summary)
			logger.LogNewline()
			t.add(summary)
		}
		if err != nil {
			return t, errors.Errorf("converting %s: %w", dir, err)
		}
	}

	if err := renderTotals(cmd, t, dryRun); err != nil {
		return t, err
	}

	reportTotals(logger, t, dryRun)

	return t, nil
}

// 📣 reportTotals prints the closing status lines
func reportTotals(logger *log.Logger, t *totals, dryRun bool) {
	if t.skipped > 0 {
		logger.Warningf("%d of %d directories skipped, no %s found", t.skipped, t.directories, scan.PackageMarker)
	}

	switch {
	case t.failed > 0:
		logger.Errorf("%d of %d file(s) failed", t.failed, t.files)
	case dryRun && t.modified > 0:
		logger.Infof("%d import(s) in %d file(s) would be rewritten", t.lines, t.modified)
	case dryRun:
		logger.Success("no relative imports found")
	default:
		logger.Successf("%d import(s) rewritten in %d file(s)", t.lines, t.modified)
	}
}

// 📊 renderTotals prints the final table
func renderTotals(cmd *cobra.Command, t *totals, dryRun bool) error {
	modifiedLabel := "updated"
	if dryRun {
		modifiedLabel = "would update"
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(pterm.TableData{
		{"directories", "skipped", "files", modifiedLabel, "unchanged", "failed", "imports"},
		{
			strconv.Itoa(t.directories),
			strconv.Itoa(t.skipped),
			strconv.Itoa(t.files),
			strconv.Itoa(t.modified),
			strconv.Itoa(t.unmodified),
			strconv.Itoa(t.failed),
			strconv.Itoa(t.lines),
		},
	}).Srender()
	if err != nil {
		return errors.Errorf("rendering summary: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), table)
	return nil
}
