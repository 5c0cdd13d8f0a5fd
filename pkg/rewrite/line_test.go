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

package rewrite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLine(t *testing.T) {
	tests := []struct {
		name        string
		line        string
		want        string
		wantChanged bool
	}{
		{
			name:        "module_with_comment_and_indent",
			line:        "    from .helpers import foo, bar  # note",
			want:        "    from mypkg.helpers import foo, bar  # note",
			wantChanged: true,
		},
		{
			name:        "bare_dot",
			line:        "from . import shared",
			want:        "from mypkg import shared",
			wantChanged: true,
		},
		{
			name:        "dotted_module",
			line:        "\tfrom .a.b import c",
			want:        "\tfrom mypkg.a.b import c",
			wantChanged: true,
		},
		{
			name:        "no_break_space_indent",
			line:        "\u00a0\u00a0from .helpers import foo",
			want:        "\u00a0\u00a0from mypkg.helpers import foo",
			wantChanged: true,
		},
		{
			name:        "vertical_tab_indent",
			line:        "\vfrom .helpers import foo",
			want:        "\vfrom mypkg.helpers import foo",
			wantChanged: true,
		},
		{
			name:        "unicode_space_before_comment",
			line:        "from .helpers\u2003import foo\u00a0# note",
			want:        "from mypkg.helpers import foo\u00a0# note",
			wantChanged: true,
		},
		{
			name:        "star_import",
			line:        "from .foo import *",
			want:        "from mypkg.foo import *",
			wantChanged: true,
		},
		{
			name:        "alias",
			line:        "from .foo import bar as baz",
			want:        "from mypkg.foo import bar as baz",
			wantChanged: true,
		},
		{
			name:        "comment_without_space",
			line:        "from .foo import bar#c",
			want:        "from mypkg.foo import bar#c",
			wantChanged: true,
		},
		{
			name:        "extra_whitespace_is_normalized",
			line:        "from .foo  import  bar",
			want:        "from mypkg.foo import bar",
			wantChanged: true,
		},
		{
			name:        "trailing_whitespace_dropped",
			line:        "from .foo import bar   ",
			want:        "from mypkg.foo import bar",
			wantChanged: true,
		},
		{
			name:        "comment_keeps_trailing_whitespace",
			line:        "from .foo import bar  # keep   ",
			want:        "from mypkg.foo import bar  # keep   ",
			wantChanged: true,
		},
		{
			name: "two_dots_bare",
			line: "from .. import shared",
			want: "from .. import shared",
		},
		{
			name: "two_dots_module",
			line: "from ..util import x",
			want: "from ..util import x",
		},
		{
			name: "three_dots",
			line: "    from ...core.base import Model",
			want: "    from ...core.base import Model",
		},
		{
			name: "absolute_import",
			line: "from os import path",
			want: "from os import path",
		},
		{
			name: "plain_import",
			line: "import os",
			want: "import os",
		},
		{
			name: "commented_out",
			line: "# from .foo import bar",
			want: "# from .foo import bar",
		},
		{
			name: "open_paren",
			line: "from .foo import (",
			want: "from .foo import (",
		},
		{
			name: "parenthesized_list",
			line: "from .foo import (a, b)",
			want: "from .foo import (a, b)",
		},
		{
			name: "trailing_paren_after_name",
			line: "from .foo import bar, (  ",
			want: "from .foo import bar, (  ",
		},
		{
			name: "backslash_continuation",
			line: `from .foo import a, \`,
			want: `from .foo import a, \`,
		},
		{
			name: "empty_payload",
			line: "from .foo import ",
			want: "from .foo import ",
		},
		{
			name: "payload_only_comment",
			line: "from .foo import # nothing",
			want: "from .foo import # nothing",
		},
		{
			name: "module_starting_with_digit",
			line: "from .1foo import x",
			want: "from .1foo import x",
		},
		{
			name: "already_absolute",
			line: "from mypkg.helpers import foo",
			want: "from mypkg.helpers import foo",
		},
		{
			name: "empty_line",
			line: "",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Line(tt.line, "mypkg")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestLine_Idempotent(t *testing.T) {
	first, changed := Line("  from .models import User  # db", "app")
	require.True(t, changed)

	second, changed := Line(first, "app")
	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestParse(t *testing.T) {
	parsed, ok := Parse("  from ..pkg.mod import a, b  # why")
	require.True(t, ok)

	assert.Equal(t, ImportLine{
		Indent:   "  ",
		Dots:     "..",
		Module:   "pkg.mod",
		Imported: "a, b",
		Comment:  "  # why",
	}, parsed)
	assert.Equal(t, 2, parsed.DotCount())
	assert.Equal(t, "root.pkg.mod", parsed.Target("root"))

	bare, ok := Parse("from . import x")
	require.True(t, ok)
	assert.Empty(t, bare.Module)
	assert.Empty(t, bare.Comment)
	assert.Equal(t, "root", bare.Target("root"))

	_, ok = Parse("import x")
	assert.False(t, ok)
}

func TestLines(t *testing.T) {
	lines := []string{
		"import os",
		"from .a import b",
		"",
		"from .. import c",
		"    from . import d  # d",
	}
	original := append([]string(nil), lines...)

	out, changes := Lines(lines, "pkg")

	require.Len(t, out, len(lines))
	assert.Equal(t, original, lines, "input must not be mutated")
	assert.Equal(t, []string{
		"import os",
		"from pkg.a import b",
		"",
		"from .. import c",
		"    from pkg import d  # d",
	}, out)
	assert.Equal(t, []Change{
		{Index: 1, Before: "from .a import b", After: "from pkg.a import b"},
		{Index: 4, Before: "    from . import d  # d", After: "    from pkg import d  # d"},
	}, changes)
}

func TestLines_NoMatches(t *testing.T) {
	out, changes := Lines([]string{"x = 1", "print(x)"}, "pkg")
	assert.Equal(t, []string{"x = 1", "print(x)"}, out)
	assert.Empty(t, changes)
}
