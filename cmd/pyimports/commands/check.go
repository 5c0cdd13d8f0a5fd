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

// NewCheckCmd creates a new check command
func NewCheckCmd(opts *opts.RootOpts) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "check [directory...]",
		Short: "Report relative imports that convert would rewrite",
		Long: `Check runs convert without writing any file. It fails when a file would be
rewritten or could not be read, which makes it usable as a CI gate.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := runConversion(cmd, opts, args, flags, true)
			if err != nil {
				return err
			}
			if t.failed > 0 {
				return errors.Errorf("%d file(s) could not be read", t.failed)
			}
			if t.modified > 0 {
				return errors.Errorf("%d file(s) contain relative imports", t.modified)
			}
			return nil
		},
	}

	flags.register(cmd, false)

	return cmd
}
