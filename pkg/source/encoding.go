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
	"bytes"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidEncoding is returned for content that is not valid text in the
// detected encoding.
var ErrInvalidEncoding = errors.Base("invalid text encoding")

// 🔤 Encoding identifies how a file is stored on disk
type Encoding int

const (
	EncodingUTF8    Encoding = iota // no byte order mark
	EncodingUTF8BOM                 // EF BB BF
	EncodingUTF16LE                 // FF FE
	EncodingUTF16BE                 // FE FF
)

// String returns a string representation of Encoding
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8BOM:
		return "utf-8-bom"
	case EncodingUTF16LE:
		return "utf-16le"
	case EncodingUTF16BE:
		return "utf-16be"
	default:
		return "utf-8"
	}
}

func (e Encoding) codec() encoding.Encoding {
	switch e {
	case EncodingUTF8BOM:
		return unicode.UTF8BOM
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM)
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM)
	default:
		return unicode.UTF8
	}
}

// 🔍 DetectEncoding inspects the byte order mark, if any.
func DetectEncoding(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return EncodingUTF8BOM
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return EncodingUTF16LE
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return EncodingUTF16BE
	default:
		return EncodingUTF8
	}
}

// Decode converts raw file content into a UTF-8 string and reports the
// encoding it was stored in.
func Decode(data []byte) (string, Encoding, error) {
	enc := DetectEncoding(data)
	if enc == EncodingUTF8 {
		if !utf8.Valid(data) {
			return "", enc, errors.Errorf("decoding %s: %w", enc, ErrInvalidEncoding)
		}
		return string(data), enc, nil
	}

	// the utf-8 decoder substitutes bad bytes instead of failing
	if enc == EncodingUTF8BOM && !utf8.Valid(data[3:]) {
		return "", enc, errors.Errorf("decoding %s: %w", enc, ErrInvalidEncoding)
	}

	decoded, err := enc.codec().NewDecoder().Bytes(data)
	if err != nil {
		return "", enc, errors.Errorf("decoding %s: %w", enc, err)
	}
	return string(decoded), enc, nil
}

// Encode converts text back into enc, restoring its byte order mark.
func Encode(text string, enc Encoding) ([]byte, error) {
	if enc == EncodingUTF8 {
		return []byte(text), nil
	}
	encoded, err := enc.codec().NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.Errorf("encoding %s: %w", enc, err)
	}
	return encoded, nil
}
