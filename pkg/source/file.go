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

// Package source reads and writes Python source files line by line, keeping
// line terminators, byte order marks and encoding intact.
package source

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileUtil is the file capability the converter depends on
type FileUtil interface {
	// Exists reports whether a file, not a directory, exists at path
	Exists(ctx context.Context, path string) (bool, error)
	// ReadLines reads path, detecting its encoding
	ReadLines(ctx context.Context, path string) (*Document, error)
	// WriteLines replaces path with doc, in doc's encoding
	WriteLines(ctx context.Context, path string, doc *Document) error
}

var _ FileUtil = (*Disk)(nil)

// 🗄️ Disk implements FileUtil on the local filesystem
type Disk struct{}

// 🏭 NewDisk creates a new Disk
func NewDisk() *Disk {
	return &Disk{}
}

func (d *Disk) Exists(ctx context.Context, path string) (bool, error) {
	info, err := os.Stat(path)
	if err == nil {
		return !info.IsDir(), nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (d *Disk) ReadLines(ctx context.Context, path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}

	text, enc, err := Decode(data)
	if err != nil {
		return nil, errors.Errorf("reading %s: %w", path, err)
	}

	zerolog.Ctx(ctx).Trace().Str("path", path).Stringer("encoding", enc).Msg("read file")

	return NewDocument(text, enc), nil
}

func (d *Disk) WriteLines(ctx context.Context, path string, doc *Document) error {
	content, err := Encode(doc.String(), doc.Encoding)
	if err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	if err := WriteFileAtomic(path, content); err != nil {
		return errors.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// 🔒 WriteFileAtomic writes content to a temp file next to path and renames it
// over path, so readers see either the old or the new content. The file mode
// of an existing path is kept.
func WriteFileAtomic(path string, content []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking file existence: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tempPath)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		cleanup()
		return errors.Errorf("setting file mode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}
