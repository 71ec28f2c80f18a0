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

type attrPair struct {
	key   string
	value string
}

// attrBuffer is a reusable backing array for element-builder attributes,
// inspired on bytes buffer. One instance lives on the Writer so chained
// CreateElement calls stop allocating once it is warm.
type attrBuffer struct {
	buf []attrPair
	pos int
}

func (buf *attrBuffer) growBy(n int) {
	buf.buf = append(buf.buf, make([]attrPair, n)...)
}

func (buf *attrBuffer) reset() {
	buf.pos = 0
}

func (buf *attrBuffer) add(p attrPair) {
	if buf.pos+1 >= len(buf.buf) {
		buf.growBy(len(buf.buf)*2/3 + 8)
	}
	buf.buf[buf.pos] = p
	buf.pos++
}

func (buf *attrBuffer) pairs() []attrPair {
	return buf.buf[:buf.pos]
}

// ElementWriter builds one element: attributes are collected with chained
// WithAttr calls and the element is written by one of the finalizers.
//
//	w.CreateElement("user").
//	    WithAttr("id", "123").
//	    WriteTextContent("Alice")
type ElementWriter struct {
	w    *Writer
	name string
}

// CreateElement starts building an element. Only one element may be in
// flight per Writer; the previous builder is finished the moment one of
// its finalizers runs.
func (w *Writer) CreateElement(name string) *ElementWriter {
	w.attrs.reset()
	return &ElementWriter{w: w, name: name}
}

// WithAttr adds one attribute. The value is escaped for double quoting.
func (e *ElementWriter) WithAttr(key, value string) *ElementWriter {
	e.w.attrs.add(attrPair{key: key, value: value})
	return e
}

// WriteEmpty finalizes the element as self-closing: <name .../>.
func (e *ElementWriter) WriteEmpty() error {
	return e.w.WriteEvent(&Empty{e.startTag()})
}

// WriteTextContent finalizes the element with escaped text content:
// <name ...>text</name>.
func (e *ElementWriter) WriteTextContent(text string) error {
	if err := e.w.WriteEvent(&Start{e.startTag()}); err != nil {
		return err
	}
	if err := e.w.WriteEvent(&Text{Data: e.w.escapeText([]byte(text))}); err != nil {
		return err
	}
	return e.w.WriteEvent(NewEnd(e.name))
}

// WriteCDataContent finalizes the element with a CDATA section:
// <name ...><![CDATA[text]]></name>.
func (e *ElementWriter) WriteCDataContent(text string) error {
	if err := e.w.WriteEvent(&Start{e.startTag()}); err != nil {
		return err
	}
	if err := e.w.WriteEvent(NewCData(text)); err != nil {
		return err
	}
	return e.w.WriteEvent(NewEnd(e.name))
}

// WriteInnerContent writes the start tag, hands the writer to fn for
// arbitrary nested events, and writes the matching end tag when fn
// returns.
func (e *ElementWriter) WriteInnerContent(fn func(*Writer) error) error {
	if err := e.w.WriteEvent(&Start{e.startTag()}); err != nil {
		return err
	}
	if err := fn(e.w); err != nil {
		return err
	}
	return e.w.WriteEvent(NewEnd(e.name))
}

// startTag assembles the tag content from the name and collected
// attributes. The builder's attributes are consumed.
func (e *ElementWriter) startTag() tag {
	t := tag{buf: []byte(e.name), nameLen: len(e.name)}
	for _, p := range e.w.attrs.pairs() {
		t.AddAttr(p.key, p.value)
	}
	e.w.attrs.reset()
	return t
}
