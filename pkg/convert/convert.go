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

// Package convert rewrites relative imports across a Python package tree.
package convert

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/pyimports/pkg/rewrite"
	"github.com/walteh/pyimports/pkg/scan"
	"github.com/walteh/pyimports/pkg/source"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"
)

// 🔧 Options contains configuration for the converter
type Options struct {
	// FileUtil reads and writes source files
	FileUtil source.FileUtil
	// Workers is the number of files processed at once, 0 means 1
	Workers int
	// Exclude holds globs, relative to the target directory, of files to skip
	Exclude []string
	// DryRun reports changes without writing them
	DryRun bool
}

// 🎮 Converter rewrites relative imports into absolute ones
type Converter struct {
	files   source.FileUtil
	workers int
	exclude []string
	dryRun  bool
}

// 🏭 New creates a new converter with the given options
func New(opts Options) (*Converter, error) {
	if opts.FileUtil == nil {
		return nil, errors.Errorf("file util is required")
	}
	if opts.Workers < 0 {
		return nil, errors.Errorf("workers must not be negative, got %d", opts.Workers)
	}
	if err := scan.ValidatePatterns(opts.Exclude); err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers == 0 {
		workers = 1
	}

	return &Converter{
		files:   opts.FileUtil,
		workers: workers,
		exclude: opts.Exclude,
		dryRun:  opts.DryRun,
	}, nil
}

// 🔄 ConvertRelativeImports rewrites every single-dot relative import in the
// .py files under directory into an absolute import of the directory's
// package.
//
// It fails with scan.ErrDirectoryNotFound before touching any file when
// directory is missing, and does nothing when directory has no __init__.py.
// Errors on individual files are recorded in the summary and never returned.
// On cancellation the partial summary is returned along with the context
// error.
func (c *Converter) ConvertRelativeImports(ctx context.Context, directory string) (*Summary, error) {
	logger := zerolog.Ctx(ctx).With().Str("directory", directory).Logger()

	if err := scan.ValidateDirectory(directory); err != nil {
		logger.Error().Err(err).Msg("directory does not exist")
		return nil, err
	}

	summary := &Summary{
		Directory: directory,
		DryRun:    c.dryRun,
	}

	ok, err := scan.IsPackageRoot(ctx, c.files, directory)
	if err != nil {
		return nil, errors.Errorf("checking %s: %w", directory, err)
	}
	if !ok {
		logger.Warn().Msgf("skipping %s (no %s found)", directory, scan.PackageMarker)
		summary.Skipped = true
		return summary, nil
	}

	summary.Package, err = scan.PackageName(directory)
	if err != nil {
		return nil, err
	}

	files, err := scan.PythonFiles(ctx, directory, c.exclude)
	if err != nil {
		return nil, errors.Errorf("listing python files: %w", err)
	}

	logger.Debug().Str("package", summary.Package).Int("files", len(files)).Int("workers", c.workers).Msg("converting relative imports")

	results := make([]Result, len(files))
	done := make([]bool, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = c.convertFile(logger.WithContext(gctx), path, summary.Package)
			done[i] = true
			return nil
		})
	}
	_ = g.Wait()

	for i := range results {
		if done[i] {
			summary.Results = append(summary.Results, results[i])
		}
	}

	if err := ctx.Err(); err != nil {
		logger.Warn().Int("processed", len(summary.Results)).Int("total", len(files)).Msg("conversion cancelled")
		return summary, errors.Errorf("converting %s: %w", directory, err)
	}

	return summary, nil
}

// 📄 convertFile rewrites a single file. Failures are logged and reported in
// the result.
func (c *Converter) convertFile(ctx context.Context, path, packageName string) Result {
	logger := zerolog.Ctx(ctx)

	doc, err := c.files.ReadLines(ctx, path)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("error processing file")
		return Result{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	lines, changes := rewrite.Lines(doc.Lines, packageName)
	for _, change := range changes {
		logger.Debug().
			Str("file", path).
			Int("line", change.Index+1).
			Str("original", strings.TrimSpace(change.Before)).
			Str("modified", strings.TrimSpace(change.After)).
			Msg("modified line")
	}

	if len(changes) == 0 {
		logger.Info().Str("file", path).Msg("no changes needed")
		return Result{Path: path, Outcome: OutcomeUnmodified}
	}

	if c.dryRun {
		logger.Info().Str("file", path).Int("changes", len(changes)).Msg("would update")
		return Result{Path: path, Outcome: OutcomeModified, Changes: changes}
	}

	updated, err := doc.WithLines(lines)
	if err != nil {
		logger.Error().Err(err).Str("file", path).Msg("error processing file")
		return Result{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	if err := c.files.WriteLines(ctx, path, updated); err != nil {
		logger.Error().Err(err).Str("file", path).Msg("error processing file")
		return Result{Path: path, Outcome: OutcomeFailed, Err: err}
	}

	logger.Info().Str("file", path).Int("changes", len(changes)).Msg("updated")
	return Result{Path: path, Outcome: OutcomeModified, Changes: changes}
}
