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

package convert

import (
	"github.com/walteh/pyimports/pkg/rewrite"
)

// 📊 Outcome is what happened to a single file
type Outcome int

const (
	OutcomeUnmodified Outcome = iota // nothing to rewrite, file untouched
	OutcomeModified                  // at least one line rewritten
	OutcomeFailed                    // read, decode or write failed
)

// String returns a string representation of Outcome
func (o Outcome) String() string {
	switch o {
	case OutcomeUnmodified:
		return "unchanged"
	case OutcomeModified:
		return "updated"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// 📄 Result is the outcome for one file
type Result struct {
	Path    string
	Outcome Outcome
	Changes []rewrite.Change // rewritten lines, empty unless modified
	Err     error            // set when Outcome is OutcomeFailed
}

// 📋 Summary aggregates the results of one ConvertRelativeImports call
type Summary struct {
	Directory string
	Package   string   // derived package name, empty when skipped
	Skipped   bool     // directory is not a package root
	DryRun    bool     // nothing was written
	Results   []Result // in scan order
}

// Count returns the number of files with the given outcome.
func (s *Summary) Count(o Outcome) int {
	n := 0
	for _, r := range s.Results {
		if r.Outcome == o {
			n++
		}
	}
	return n
}

// Failures returns the results of files that could not be processed.
func (s *Summary) Failures() []Result {
	var failed []Result
	for _, r := range s.Results {
		if r.Outcome == OutcomeFailed {
			failed = append(failed, r)
		}
	}
	return failed
}

// Changes returns the total number of rewritten lines.
func (s *Summary) Changes() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Changes)
	}
	return n
}
