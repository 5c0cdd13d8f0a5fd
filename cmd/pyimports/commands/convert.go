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
	"github.com/spf13/cobra"
	"github.com/walteh/pyimports/cmd/pyimports/opts"
	"gitlab.com/tozd/go/errors"
)

// NewConvertCmd creates a new convert command
func NewConvertCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [directory...]",
		Short: "Rewrite relative imports into absolute imports",
		Long: `Convert rewrites single-line relative imports in every .py file below each
package directory:

  from .helpers import foo   ->  from <package>.helpers import foo
  from . import bar          ->  from <package> import bar

<package> is the directory's name. Directories without an __init__.py are
skipped. Imports with two or more leading dots and multi-line imports are left
untouched. Files without changes are never written.

Directories default to the config file's "directories", or ".".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := runConversion(cmd, opts, args, flags, false)
			if err != nil {
				return err
			}
			if t.failed > 0 {
				return errors.Errorf("%d file(s) could not be converted", t.failed)
			}
			return nil
		},
	}

	flags.register(cmd, true)

	return cmd
}
