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

import "bytes"

// Attr is one attribute of a start or empty tag. Key and Value are
// sub-slices of the tag content; Value excludes the quotes. Quote is the
// quote character, or 0 for a valueless or unquoted attribute in HTML mode.
type Attr struct {
	Key   QName
	Value []byte
	Quote byte
}

// UnescapeValue resolves entity and character references in the value.
func (a Attr) UnescapeValue() ([]byte, error) {
	return Unescape(a.Value)
}

// UnescapeValueWith is UnescapeValue with a custom entity resolver.
func (a Attr) UnescapeValueWith(resolve EntityResolver) ([]byte, error) {
	return UnescapeWith(a.Value, resolve)
}

// Attributes iterates lazily over the attributes of a tag. It follows the
// bufio.Scanner shape:
//
//	it := start.Attributes()
//	for it.Next() {
//	    a := it.Attr()
//	    ...
//	}
//	if err := it.Err(); err != nil { ... }
//
// The iterator is fused: after the first error Next keeps returning false.
// Offsets in errors are relative to the tag content (the byte after '<').
type Attributes struct {
	buf  []byte // everything between the element name and '>' (or '/>')
	pos  int    // cursor into buf
	base int    // offset of buf within the tag content, for error offsets
	attr Attr
	err  error

	html      bool
	dupChecks bool
	seen      [][2]int // key spans already returned, as (start, end) in buf
}

func newAttributes(buf []byte, base int) *Attributes {
	return &Attributes{buf: buf, base: base}
}

// HTML switches the iterator to HTML compatibility: unquoted values and
// valueless attributes are accepted instead of rejected.
func (it *Attributes) HTML() *Attributes {
	it.html = true
	return it
}

// WithChecks enables or disables duplicate-key detection. Off by default:
// detection costs a scan over every previously returned key.
func (it *Attributes) WithChecks(on bool) *Attributes {
	it.dupChecks = on
	if !on {
		it.seen = nil
	}
	return it
}

// Attr returns the attribute produced by the last successful Next.
func (it *Attributes) Attr() Attr { return it.attr }

// Err returns the malformation that stopped iteration, or nil after a
// clean end.
func (it *Attributes) Err() error { return it.err }

// Next advances to the next attribute. It returns false at the end of the
// tag or on the first malformed attribute.
func (it *Attributes) Next() bool {
	if it.err != nil {
		return false
	}
	it.skipSpace()
	if it.pos >= len(it.buf) {
		return false
	}
	if c := it.buf[it.pos]; c == '"' || c == '\'' || c == '=' || c == '/' {
		it.fail(&AttrError{Kind: InvalidCharacter, Offset: it.base + it.pos})
		return false
	}
	keyStart := it.pos
	for it.pos < len(it.buf) && !isSpaceByte(it.buf[it.pos]) && it.buf[it.pos] != '=' {
		it.pos++
	}
	keyEnd := it.pos
	key := it.buf[keyStart:keyEnd]
	it.skipSpace()
	if it.pos >= len(it.buf) || it.buf[it.pos] != '=' {
		// Valueless attribute. Fine in HTML, an error in XML.
		if !it.html {
			it.fail(&AttrError{Kind: ExpectedEq, Offset: it.base + keyStart, Key: string(key)})
			return false
		}
		return it.emit(key, keyStart, keyEnd, nil, 0)
	}
	it.pos++ // '='
	it.skipSpace()
	if it.pos >= len(it.buf) {
		it.fail(&AttrError{Kind: ExpectedQuote, Offset: it.base + it.pos})
		return false
	}
	quote := it.buf[it.pos]
	if quote != '"' && quote != '\'' {
		if !it.html {
			it.fail(&AttrError{Kind: UnquotedValue, Offset: it.base + it.pos})
			return false
		}
		valStart := it.pos
		for it.pos < len(it.buf) && !isSpaceByte(it.buf[it.pos]) {
			it.pos++
		}
		return it.emit(key, keyStart, keyEnd, it.buf[valStart:it.pos], 0)
	}
	openQuote := it.pos
	it.pos++
	rel := bytes.IndexByte(it.buf[it.pos:], quote)
	if rel < 0 {
		it.fail(&AttrError{Kind: ExpectedQuote, Offset: it.base + openQuote})
		return false
	}
	value := it.buf[it.pos : it.pos+rel]
	it.pos += rel + 1
	return it.emit(key, keyStart, keyEnd, value, quote)
}

func (it *Attributes) emit(key []byte, keyStart, keyEnd int, value []byte, quote byte) bool {
	if it.dupChecks {
		for _, span := range it.seen {
			if bytes.Equal(it.buf[span[0]:span[1]], key) {
				it.fail(&AttrError{
					Kind:        Duplicated,
					Offset:      it.base + keyStart,
					Key:         string(key),
					FirstOffset: it.base + span[0],
				})
				return false
			}
		}
		it.seen = append(it.seen, [2]int{keyStart, keyEnd})
	}
	it.attr = Attr{Key: QName(key), Value: value, Quote: quote}
	return true
}

func (it *Attributes) fail(err *AttrError) {
	it.err = err
	it.pos = len(it.buf)
}

func (it *Attributes) skipSpace() {
	for it.pos < len(it.buf) && isSpaceByte(it.buf[it.pos]) {
		it.pos++
	}
}

// isSpaceByte reports XML whitespace: space, tab, CR, LF.
func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}
