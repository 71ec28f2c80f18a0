// Copyright 2020 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xmlpull

import (
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// Decoder turns event bytes into strings. The reader's output is always
// UTF-8, so decoding is validation plus a copy; Decode rejects invalid
// sequences, DecodeLossy replaces them with U+FFFD.
type Decoder struct{}

// Decode validates b as UTF-8 and returns it as a string.
func (Decoder) Decode(b []byte) (string, error) {
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return "", &EncodingError{Offset: i}
		}
		i += size
	}
	return string(b), nil
}

// DecodeLossy returns b as a string with invalid sequences replaced by the
// Unicode replacement character.
func (Decoder) DecodeLossy(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	out := make([]rune, 0, len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			size = 1
		}
		out = append(out, r)
		i += size
	}
	return string(out)
}

// NewReaderWithCharset wraps src so that content in the charset named by
// contentType (a MIME content type, possibly with a charset parameter, or
// "") is transcoded to UTF-8 before scanning. Without a charset parameter
// the first bytes are sniffed for a byte order mark or an HTML <meta>
// charset, falling back to UTF-8 or windows-1252; an encoding named only in
// the <?xml ... ?> declaration is not consulted.
func NewReaderWithCharset(src io.Reader, contentType string) (*Reader, error) {
	cr, err := charset.NewReader(src, contentType)
	if err != nil {
		return nil, err
	}
	return NewReader(cr), nil
}
