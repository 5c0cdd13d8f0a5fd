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

// Package scan validates a target directory and enumerates the Python files
// beneath it.
package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// PackageMarker is the file that makes a directory a Python package.
const PackageMarker = "__init__.py"

// pythonPattern selects every Python source file at any depth.
const pythonPattern = "**/*.py"

var (
	// ErrDirectoryNotFound is returned when the target directory is missing.
	ErrDirectoryNotFound = errors.Base("directory not found")
	// ErrBadExcludePattern is returned for an exclude glob that can't be parsed.
	ErrBadExcludePattern = errors.Base("bad exclude pattern")
)

// 🔍 Checker reports whether a path exists
type Checker interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// ✅ ValidateDirectory fails with ErrDirectoryNotFound unless dir is an
// existing directory.
func ValidateDirectory(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.Errorf("%w: %s", ErrDirectoryNotFound, dir)
		}
		return errors.Errorf("checking directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return errors.Errorf("%w: %s is not a directory", ErrDirectoryNotFound, dir)
	}
	return nil
}

// 📦 IsPackageRoot reports whether dir holds an __init__.py directly.
func IsPackageRoot(ctx context.Context, checker Checker, dir string) (bool, error) {
	ok, err := checker.Exists(ctx, filepath.Join(dir, PackageMarker))
	if err != nil {
		return false, errors.Errorf("checking package marker: %w", err)
	}
	return ok, nil
}

// PackageName derives the package name from the base name of dir's absolute
// path, so "." and ".." name the directories they point at.
func PackageName(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Errorf("resolving %s: %w", dir, err)
	}
	return filepath.Base(abs), nil
}

// ValidatePatterns checks that every exclude glob is well formed.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return errors.Errorf("%w: %q", ErrBadExcludePattern, p)
		}
	}
	return nil
}

// 📂 PythonFiles returns every .py file under root, skipping paths that match
// one of the exclude globs. Exclude globs are matched against the
// slash-separated path relative to root. Any directory that can't be read
// fails the whole scan. No ordering is guaranteed.
func PythonFiles(ctx context.Context, root string, exclude []string) ([]string, error) {
	logger := zerolog.Ctx(ctx)

	if err := ValidatePatterns(exclude); err != nil {
		return nil, err
	}

	var files []string
	err := doublestar.GlobWalk(os.DirFS(root), pythonPattern, func(path string, d fs.DirEntry) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		for _, pattern := range exclude {
			matched, err := doublestar.Match(pattern, path)
			if err != nil {
				return errors.Errorf("matching %q: %w", pattern, err)
			}
			if matched {
				logger.Debug().Str("file", path).Str("pattern", pattern).Msg("file ignored by pattern")
				return nil
			}
		}

		files = append(files, filepath.Join(root, filepath.FromSlash(path)))
		return nil
	}, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, errors.Errorf("scanning %s: %w", root, err)
	}

	logger.Debug().Str("root", root).Int("files", len(files)).Msg("scanned python files")

	return files, nil
}
