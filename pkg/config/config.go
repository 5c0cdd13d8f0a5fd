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

package config

import (
	"context"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/walteh/pyimports/pkg/scan"
	"gitlab.com/tozd/go/errors"
)

// 📚 Config is the pyimports configuration file
type Config struct {
	Directories []string `json:"directories,omitempty" yaml:"directories,omitempty" hcl:"directories,optional"` // package roots to convert
	Exclude     []string `json:"exclude,omitempty" yaml:"exclude,omitempty" hcl:"exclude,optional"`             // globs relative to each directory
	Workers     int      `json:"workers,omitempty" yaml:"workers,omitempty" hcl:"workers,optional"`             // files processed at once
	DryRun      bool     `json:"dry_run,omitempty" yaml:"dry_run,omitempty" hcl:"dry_run,optional"`             // report without writing

	location string
}

// 🏭 Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Directories: []string{"."},
		Workers:     1,
	}
}

// Location returns the path the config was loaded from, empty for Default.
func (cfg *Config) Location() string {
	return cfg.location
}

// 🔍 Validate checks the configuration and fills in defaults
func Validate(ctx context.Context, cfg *Config) error {
	if cfg.Workers < 0 {
		return errors.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	if err := scan.ValidatePatterns(cfg.Exclude); err != nil {
		return err
	}

	if len(cfg.Directories) == 0 {
		cfg.Directories = []string{"."}
	}
	for i, dir := range cfg.Directories {
		if dir == "" {
			return errors.Errorf("directories[%d] is empty", i)
		}
		cfg.Directories[i] = filepath.Clean(dir)
	}

	zerolog.Ctx(ctx).Debug().
		Strs("directories", cfg.Directories).
		Strs("exclude", cfg.Exclude).
		Int("workers", cfg.Workers).
		Bool("dry_run", cfg.DryRun).
		Msg("validated config")

	return nil
}

// ResolvedDirectories returns Directories with relative entries resolved
// against the directory holding the config file.
func (cfg *Config) ResolvedDirectories() []string {
	base := ""
	if cfg.location != "" {
		base = filepath.Dir(cfg.location)
	}

	dirs := make([]string, 0, len(cfg.Directories))
	for _, dir := range cfg.Directories {
		if base != "" && !filepath.IsAbs(dir) {
			dir = filepath.Join(base, dir)
		}
		dirs = append(dirs, dir)
	}
	return dirs
}
