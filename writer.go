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
	"io"
)

// QuoteLevel selects how much the writer escapes when it serializes text
// on behalf of the caller (element-builder content). Attribute values
// additionally always escape their quote character.
type QuoteLevel int

const (
	// QuotePartial escapes '<' and '&', the minimum for well-formed text.
	QuotePartial QuoteLevel = iota
	// QuoteFull escapes '<', '>', '&', '\'' and '"'.
	QuoteFull
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer serializes events to an underlying io.Writer as UTF-8 XML. Events
// are written exactly once, in call order; with indentation enabled the
// writer inserts a newline and the per-depth prefix before each tag that is
// not adjacent to character data.
type Writer struct {
	// QuoteLevel controls element-builder text escaping. QuotePartial by
	// default.
	QuoteLevel QuoteLevel

	w      io.Writer
	indent []byte // one depth level of prefix; nil disables pretty-printing
	depth  int

	wrote     bool // anything written yet, suppresses the leading newline
	afterText bool // last payload was character data, suppresses indent

	attrs attrBuffer // recycled by CreateElement
}

// NewWriter writes compact XML with no insignificant whitespace.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewWriterIndent writes pretty-printed XML, indenting each depth level
// with indentSize copies of indentChar.
func NewWriterIndent(w io.Writer, indentChar byte, indentSize int) *Writer {
	return &Writer{w: w, indent: bytes.Repeat([]byte{indentChar}, indentSize)}
}

// Inner returns the underlying io.Writer.
func (w *Writer) Inner() io.Writer { return w.w }

// WriteEvent serializes one event. Text and CData bytes are written
// verbatim; tags, comments, instructions and declarations get their
// delimiters back.
func (w *Writer) WriteEvent(e Event) error {
	switch e := e.(type) {
	case *Start:
		if err := w.maybeIndent(); err != nil {
			return err
		}
		w.depth++
		return w.writeAll([]byte("<"), e.buf, []byte(">"))
	case *Empty:
		if err := w.maybeIndent(); err != nil {
			return err
		}
		return w.writeAll([]byte("<"), e.buf, []byte("/>"))
	case *End:
		if w.depth > 0 {
			w.depth--
		}
		if err := w.maybeIndent(); err != nil {
			return err
		}
		return w.writeAll([]byte("</"), e.name, []byte(">"))
	case *Text:
		if len(e.Data) == 0 {
			return nil
		}
		w.afterText = true
		return w.writeAll(e.Data)
	case *CData:
		w.afterText = true
		return w.writeAll([]byte("<![CDATA["), e.Data, []byte("]]>"))
	case *Comment:
		if err := w.maybeIndent(); err != nil {
			return err
		}
		return w.writeAll([]byte("<!--"), e.Data, []byte("-->"))
	case *PI:
		if err := w.maybeIndent(); err != nil {
			return err
		}
		return w.writeAll([]byte("<?"), e.Data, []byte("?>"))
	case *Decl:
		if err := w.maybeIndent(); err != nil {
			return err
		}
		return w.writeAll([]byte("<?"), e.buf, []byte("?>"))
	case *DocType:
		if err := w.maybeIndent(); err != nil {
			return err
		}
		return w.writeAll([]byte("<!DOCTYPE "), e.Data, []byte(">"))
	case *Eof:
		return nil
	}
	return nil
}

// WriteBOM emits the UTF-8 byte order mark. Call before any event; it does
// not count as written content for indentation purposes.
func (w *Writer) WriteBOM() error {
	_, err := w.w.Write(utf8BOM)
	return err
}

// WriteRaw appends bytes without any escaping or delimiting. The caller
// vouches for well-formedness.
func (w *Writer) WriteRaw(b []byte) error {
	w.afterText = true
	return w.writeAll(b)
}

// WriteIndent emits a newline and the indentation prefix for the current
// depth. Only meaningful when indentation is enabled.
func (w *Writer) WriteIndent() error {
	if w.indent == nil {
		return nil
	}
	return w.newline()
}

// escapeText escapes element-builder text per the configured quote level.
func (w *Writer) escapeText(b []byte) []byte {
	if w.QuoteLevel == QuoteFull {
		return Escape(b)
	}
	return MinimalEscape(b)
}

// maybeIndent writes the line break before a tag, unless pretty-printing
// is off, nothing has been written yet, or the tag hugs character data.
func (w *Writer) maybeIndent() error {
	defer func() { w.afterText = false }()
	if w.indent == nil || !w.wrote || w.afterText {
		return nil
	}
	return w.newline()
}

func (w *Writer) newline() error {
	if err := w.writeAll([]byte("\n")); err != nil {
		return err
	}
	for i := 0; i < w.depth; i++ {
		if err := w.writeAll(w.indent); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) writeAll(chunks ...[]byte) error {
	for _, c := range chunks {
		if _, err := w.w.Write(c); err != nil {
			return err
		}
	}
	w.wrote = true
	return nil
}
