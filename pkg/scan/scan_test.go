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

package scan_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/pyimports/pkg/scan"
	"github.com/walteh/pyimports/pkg/source"
	"gitlab.com/tozd/go/errors"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func TestValidateDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, scan.ValidateDirectory(dir))

	err := scan.ValidateDirectory(filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, scan.ErrDirectoryNotFound))

	file := filepath.Join(dir, "file.py")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	err = scan.ValidateDirectory(file)
	require.Error(t, err)
	assert.True(t, errors.Is(err, scan.ErrDirectoryNotFound))
}

func TestIsPackageRoot(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	disk := source.NewDisk()

	ok, err := scan.IsPackageRoot(ctx, disk, dir)
	require.NoError(t, err)
	assert.False(t, ok)

	// a nested marker does not count
	writeFiles(t, dir, map[string]string{"sub/__init__.py": ""})
	ok, err = scan.IsPackageRoot(ctx, disk, dir)
	require.NoError(t, err)
	assert.False(t, ok)

	writeFiles(t, dir, map[string]string{"__init__.py": ""})
	ok, err = scan.IsPackageRoot(ctx, disk, dir)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsPackageRoot_MarkerIsDirectory(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, scan.PackageMarker), 0o755))

	ok, err := scan.IsPackageRoot(ctx, source.NewDisk(), dir)
	require.NoError(t, err)
	assert.False(t, ok, "a directory named %s is not a package marker", scan.PackageMarker)
}

// chdir switches the working directory for the rest of the test
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		require.NoError(t, os.Chdir(wd))
	})
}

func TestPackageName(t *testing.T) {
	root := filepath.Join(t.TempDir(), "mypkg")
	writeFiles(t, root, map[string]string{"sub/__init__.py": ""})
	chdir(t, filepath.Join(root, "sub"))

	tests := []struct {
		name string
		dir  string
		want string
	}{
		{name: "relative_path", dir: filepath.Join("src", "mypkg"), want: "mypkg"},
		{name: "trailing_separator", dir: filepath.Join("src", "mypkg") + string(filepath.Separator), want: "mypkg"},
		{name: "absolute_path", dir: root, want: "mypkg"},
		{name: "dot", dir: ".", want: "sub"},
		{name: "dot_slash", dir: "." + string(filepath.Separator), want: "sub"},
		{name: "parent", dir: "..", want: "mypkg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scan.PackageName(tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPythonFiles(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		exclude []string
		want    []string
	}{
		{
			name: "nested",
			files: map[string]string{
				"__init__.py":      "",
				"a.py":             "",
				"sub/b.py":         "",
				"sub/deeper/c.py":  "",
				"README.md":        "",
				"sub/data.pyc":     "",
				"sub/notes.py.txt": "",
			},
			want: []string{"__init__.py", "a.py", "sub/b.py", "sub/deeper/c.py"},
		},
		{
			name: "exclude",
			files: map[string]string{
				"a.py":                    "",
				"migrations/0001_init.py": "",
				"tests/test_a.py":         "",
			},
			exclude: []string{"migrations/**", "**/test_*.py"},
			want:    []string{"a.py"},
		},
		{
			name:  "no_python_files",
			files: map[string]string{"README.md": ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)

			got, err := scan.PythonFiles(testContext(t), root, tt.exclude)
			require.NoError(t, err)

			want := make([]string, 0, len(tt.want))
			for _, w := range tt.want {
				want = append(want, filepath.Join(root, filepath.FromSlash(w)))
			}
			sort.Strings(got)
			sort.Strings(want)
			if len(want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, want, got)
		})
	}
}

func TestPythonFiles_DirectoryNamedLikePython(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"odd.py/inner.py": ""})

	got, err := scan.PythonFiles(testContext(t), root, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(root, "odd.py", "inner.py")}, got)
}

func TestPythonFiles_BadPattern(t *testing.T) {
	_, err := scan.PythonFiles(testContext(t), t.TempDir(), []string{"[unclosed"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, scan.ErrBadExcludePattern))
}

func TestPythonFiles_UnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("permissions are not enforced for root")
	}

	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.py": "", "locked/b.py": ""})
	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Chmod(locked, 0o000))
	t.Cleanup(func() { os.Chmod(locked, 0o755) })

	_, err := scan.PythonFiles(testContext(t), root, nil)
	require.Error(t, err)
}

func TestPythonFiles_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{"a.py": ""})

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	_, err := scan.PythonFiles(ctx, root, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
