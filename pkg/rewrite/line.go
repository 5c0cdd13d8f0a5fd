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

// Package rewrite turns single-dot relative Python imports into absolute ones,
// one line at a time.
package rewrite

import (
	"regexp"
	"strings"
	"unicode"
)

// space matches any Unicode white space, \v and no-break spaces included.
const space = `[\s\v\x{85}\p{Z}]`

// importPattern matches single-line "from .foo import bar" and "from . import bar".
var importPattern = regexp.MustCompile(
	`^(?P<indent>` + space + `*)from` + space + `+(?P<dots>\.+)(?P<module>[A-Za-z_][A-Za-z0-9_.]*)?` +
		space + `+import` + space + `+(?P<imported>.*?)(?P<comment>` + space + `*#.*)?` + space + `*$`,
)

var (
	groupIndent   = importPattern.SubexpIndex("indent")
	groupDots     = importPattern.SubexpIndex("dots")
	groupModule   = importPattern.SubexpIndex("module")
	groupImported = importPattern.SubexpIndex("imported")
	groupComment  = importPattern.SubexpIndex("comment")
)

// 📦 ImportLine is a relative import split into its parts
type ImportLine struct {
	Indent   string // leading whitespace
	Dots     string // "." or ".." or ...
	Module   string // dotted module after the dots, empty for "from . import x"
	Imported string // imported names, trimmed
	Comment  string // trailing comment including its leading whitespace
}

// DotCount returns the number of leading dots of the module reference.
func (l ImportLine) DotCount() int {
	return len(l.Dots)
}

// Target returns the absolute module this import resolves to inside packageName.
func (l ImportLine) Target(packageName string) string {
	if l.Module == "" {
		return packageName
	}
	return packageName + "." + l.Module
}

// Absolute renders the line as an absolute import of packageName.
func (l ImportLine) Absolute(packageName string) string {
	return l.Indent + "from " + l.Target(packageName) + " import " + l.Imported + l.Comment
}

// 🔍 Parse splits a single-line relative import. It reports false for any line
// that is not one, or that is part of a multi-line statement.
func Parse(line string) (ImportLine, bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, "from .") {
		return ImportLine{}, false
	}

	// continuations and parenthesized lists span lines
	if strings.Contains(line, `\`) || strings.Contains(line, "import (") || strings.HasSuffix(strings.TrimRightFunc(trimmed, unicode.IsSpace), "(") {
		return ImportLine{}, false
	}

	m := importPattern.FindStringSubmatch(line)
	if m == nil {
		return ImportLine{}, false
	}

	parsed := ImportLine{
		Indent:   m[groupIndent],
		Dots:     m[groupDots],
		Module:   m[groupModule],
		Imported: strings.TrimRightFunc(m[groupImported], unicode.IsSpace),
		Comment:  m[groupComment],
	}

	if strings.TrimSpace(parsed.Imported) == "" {
		return ImportLine{}, false
	}

	return parsed, true
}

// 🔄 Line rewrites a single-dot relative import into an absolute import of
// packageName. The bool is true only when the returned text differs from line.
func Line(line, packageName string) (string, bool) {
	parsed, ok := Parse(line)
	if !ok {
		return line, false
	}

	// ".." and deeper point above the package and can't be flattened
	if parsed.DotCount() != 1 {
		return line, false
	}

	rewritten := parsed.Absolute(packageName)
	if rewritten == line {
		return line, false
	}
	return rewritten, true
}

// 📝 Change records one rewritten line
type Change struct {
	Index  int    // zero-based line index
	Before string // original text
	After  string // rewritten text
}

// Lines applies Line to every entry and returns a new slice with the result.
// The input is not modified; len(out) == len(lines) always.
func Lines(lines []string, packageName string) ([]string, []Change) {
	out := make([]string, len(lines))
	var changes []Change
	for i, line := range lines {
		rewritten, changed := Line(line, packageName)
		out[i] = rewritten
		if changed {
			changes = append(changes, Change{Index: i, Before: line, After: rewritten})
		}
	}
	return out, changes
}
