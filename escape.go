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
	"bytes"
	"unicode/utf8"
)

// EntityResolver maps an entity name (without '&' and ';') to its
// replacement text. It is consulted only after the five predefined entities
// and numeric character references, so it never sees lt, gt, amp, apos,
// quot, or names starting with '#'.
type EntityResolver func(name []byte) ([]byte, bool)

// Escape replaces '<', '>', '&', '\'' and '"' with their named references.
// The input slice is returned unchanged when nothing needs escaping.
func Escape(b []byte) []byte {
	return escapeWith(b, func(c byte) bool {
		return c == '<' || c == '>' || c == '&' || c == '\'' || c == '"'
	})
}

// PartialEscape replaces '<', '>' and '&'. Sufficient for text nodes that
// must stay readable while remaining well formed.
func PartialEscape(b []byte) []byte {
	return escapeWith(b, func(c byte) bool {
		return c == '<' || c == '>' || c == '&'
	})
}

// MinimalEscape replaces only '<' and '&', the smallest set that keeps a
// text node well formed.
func MinimalEscape(b []byte) []byte {
	return escapeWith(b, func(c byte) bool {
		return c == '<' || c == '&'
	})
}

// escapeAttrValue escapes an attribute value for wrapping in quote. On top
// of the minimal set the quote character itself must be escaped.
func escapeAttrValue(b []byte, quote byte) []byte {
	return escapeWith(b, func(c byte) bool {
		return c == '<' || c == '&' || c == quote
	})
}

func escapeWith(b []byte, needs func(byte) bool) []byte {
	i := 0
	for ; i < len(b); i++ {
		if needs(b[i]) {
			break
		}
	}
	if i == len(b) {
		return b
	}
	out := make([]byte, 0, len(b)+8)
	out = append(out, b[:i]...)
	for ; i < len(b); i++ {
		c := b[i]
		if !needs(c) {
			out = append(out, c)
			continue
		}
		switch c {
		case '<':
			out = append(out, "&lt;"...)
		case '>':
			out = append(out, "&gt;"...)
		case '&':
			out = append(out, "&amp;"...)
		case '\'':
			out = append(out, "&apos;"...)
		case '"':
			out = append(out, "&quot;"...)
		}
	}
	return out
}

// Unescape resolves the five predefined entities and numeric character
// references. The input slice is returned unchanged when it contains no
// '&'. Unknown entity names fail with an EscapeError.
func Unescape(b []byte) ([]byte, error) {
	return UnescapeWith(b, nil)
}

// UnescapeWith is Unescape with a custom resolver for entity names beyond
// the predefined five. resolve may be nil.
func UnescapeWith(b []byte, resolve EntityResolver) ([]byte, error) {
	amp := bytes.IndexByte(b, '&')
	if amp < 0 {
		return b, nil
	}
	out := make([]byte, 0, len(b))
	begin := 0
	for amp >= 0 {
		out = append(out, b[begin:amp]...)
		semi := bytes.IndexByte(b[amp:], ';')
		if semi < 0 {
			return nil, &EscapeError{Kind: EntityUnterminated, Name: string(b[amp+1:]), Offset: amp}
		}
		ref := b[amp+1 : amp+semi]
		if len(ref) > 0 && ref[0] == '#' {
			r, err := parseCharRef(ref[1:], amp)
			if err != nil {
				return nil, err
			}
			var enc [utf8.UTFMax]byte
			n := utf8.EncodeRune(enc[:], r)
			out = append(out, enc[:n]...)
		} else if c, ok := predefinedEntity(ref); ok {
			out = append(out, c)
		} else if rep, ok := resolveEntity(resolve, ref); ok {
			out = append(out, rep...)
		} else {
			return nil, &EscapeError{Kind: EntityUnrecognized, Name: string(ref), Offset: amp}
		}
		begin = amp + semi + 1
		if i := bytes.IndexByte(b[begin:], '&'); i >= 0 {
			amp = begin + i
		} else {
			amp = -1
		}
	}
	out = append(out, b[begin:]...)
	return out, nil
}

func resolveEntity(resolve EntityResolver, name []byte) ([]byte, bool) {
	if resolve == nil {
		return nil, false
	}
	return resolve(name)
}

func predefinedEntity(name []byte) (byte, bool) {
	switch string(name) {
	case "lt":
		return '<', true
	case "gt":
		return '>', true
	case "amp":
		return '&', true
	case "apos":
		return '\'', true
	case "quot":
		return '"', true
	}
	return 0, false
}

// parseCharRef parses the payload of `&#...;` (after the '#'). Decimal by
// default, hexadecimal after a leading 'x'. Leading zeroes are fine, any
// length is fine as long as the value stays a valid Unicode scalar.
func parseCharRef(payload []byte, offset int) (rune, error) {
	hex := false
	if len(payload) > 0 && payload[0] == 'x' {
		hex = true
		payload = payload[1:]
	}
	if len(payload) == 0 {
		return 0, &CharRefError{Reason: CharRefEmpty, Offset: offset}
	}
	var v uint32
	for _, c := range payload {
		var d uint32
		switch {
		case c >= '0' && c <= '9':
			d = uint32(c - '0')
		case hex && c >= 'a' && c <= 'f':
			d = uint32(c-'a') + 10
		case hex && c >= 'A' && c <= 'F':
			d = uint32(c-'A') + 10
		default:
			return 0, &CharRefError{Reason: CharRefBadDigit, Ref: string(payload), Offset: offset}
		}
		if hex {
			v = v*16 + d
		} else {
			v = v*10 + d
		}
		if v > utf8.MaxRune {
			return 0, &CharRefError{Reason: CharRefOutOfRange, Ref: string(payload), Offset: offset}
		}
	}
	r := rune(v)
	if !utf8.ValidRune(r) {
		return 0, &CharRefError{Reason: CharRefOutOfRange, Ref: string(payload), Offset: offset}
	}
	return r, nil
}
