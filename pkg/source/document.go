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

package source

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// 📄 Document is a text file split into lines. Each line keeps its own
// terminator so untouched lines round-trip byte for byte.
type Document struct {
	Lines    []string // line content without terminator
	Endings  []string // "\n", "\r\n" or "" for a final unterminated line
	Encoding Encoding // on-disk encoding, reused when writing
}

// 🏭 NewDocument splits text into lines.
func NewDocument(text string, enc Encoding) *Document {
	doc := &Document{Encoding: enc}
	for len(text) > 0 {
		idx := strings.IndexByte(text, '\n')
		if idx < 0 {
			doc.Lines = append(doc.Lines, text)
			doc.Endings = append(doc.Endings, "")
			break
		}
		line, ending := text[:idx], "\n"
		if strings.HasSuffix(line, "\r") {
			line, ending = line[:len(line)-1], "\r\n"
		}
		doc.Lines = append(doc.Lines, line)
		doc.Endings = append(doc.Endings, ending)
		text = text[idx+1:]
	}
	return doc
}

// String joins the lines back with their original terminators.
func (d *Document) String() string {
	var sb strings.Builder
	for i, line := range d.Lines {
		sb.WriteString(line)
		if i < len(d.Endings) {
			sb.WriteString(d.Endings[i])
		}
	}
	return sb.String()
}

// WithLines returns a copy of the document holding lines instead. The line
// count must not change.
func (d *Document) WithLines(lines []string) (*Document, error) {
	if len(lines) != len(d.Lines) {
		return nil, errors.Errorf("line count changed from %d to %d", len(d.Lines), len(lines))
	}
	return &Document{
		Lines:    append([]string(nil), lines...),
		Endings:  append([]string(nil), d.Endings...),
		Encoding: d.Encoding,
	}, nil
}
