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

// Event is one lexical unit of an XML document:
//
//	Start:   <foo> or <foo bar="baz">
//	End:     </foo>
//	Empty:   <foo/> (optionally expanded into Start + End by the reader)
//	Text:    character data between tags, in its escaped source form
//	CData:   contents of <![CDATA[ ... ]]>
//	Comment: contents of <!-- ... -->
//	PI:      processing instruction contents, without <? and ?>
//	Decl:    the <?xml ... ?> declaration
//	DocType: the <!DOCTYPE ... > body
//	Eof:     end of input
//
// Events returned by a reader borrow from its buffer and stay valid only
// until the next ReadEvent call. Copy produces an owning clone for the
// unlikely case when an event must be kept longer.
type Event interface {
	event()
	Copy() Event
}

// tag is the shared payload of Start, Empty and Decl: the content between
// the angle brackets, with the name occupying the first nameLen bytes.
type tag struct {
	buf     []byte
	nameLen int
}

// Name returns the element name.
func (t *tag) Name() QName { return QName(t.buf[:t.nameLen]) }

// Attributes returns a lazy iterator over the attributes.
func (t *tag) Attributes() *Attributes {
	return newAttributes(t.buf[t.nameLen:], t.nameLen)
}

func (t *tag) copyTag() tag {
	buf := make([]byte, len(t.buf))
	copy(buf, t.buf)
	return tag{buf: buf, nameLen: t.nameLen}
}

// AddAttr appends an attribute to the tag, escaping the value. Intended for
// building events to feed a Writer; parsed events should not be mutated.
func (t *tag) AddAttr(key, value string) {
	t.buf = append(t.buf, ' ')
	t.buf = append(t.buf, key...)
	t.buf = append(t.buf, '=', '"')
	t.buf = append(t.buf, escapeAttrValue([]byte(value), '"')...)
	t.buf = append(t.buf, '"')
}

// Start is an opening tag.
type Start struct{ tag }

func (*Start) event() {}

func (e *Start) Copy() Event { return &Start{e.copyTag()} }

// ToEnd returns the matching end tag event.
func (e *Start) ToEnd() *End { return &End{name: e.Name()} }

// NewStart builds a Start event for writing.
func NewStart(name string) *Start {
	return &Start{tag{buf: []byte(name), nameLen: len(name)}}
}

// Empty is a self-closing tag.
type Empty struct{ tag }

func (*Empty) event() {}

func (e *Empty) Copy() Event { return &Empty{e.copyTag()} }

// NewEmpty builds an Empty event for writing.
func NewEmpty(name string) *Empty {
	return &Empty{tag{buf: []byte(name), nameLen: len(name)}}
}

// End is a closing tag.
type End struct {
	name QName
}

func (*End) event() {}

// Name returns the element name, without any trailing junk the relaxed
// end-tag tolerance may have skipped.
func (e *End) Name() QName { return e.name }

func (e *End) Copy() Event {
	name := make(QName, len(e.name))
	copy(name, e.name)
	return &End{name: name}
}

// NewEnd builds an End event for writing.
func NewEnd(name string) *End { return &End{name: QName(name)} }

// Text is character data between tags. Data holds the bytes exactly as
// they appear in the source, so entity references are still escaped; call
// Unescape to resolve them. The writer emits Data verbatim, which is what
// keeps parse-then-write round trips byte identical.
type Text struct {
	Data []byte
}

func (*Text) event() {}

func (e *Text) Copy() Event {
	data := make([]byte, len(e.Data))
	copy(data, e.Data)
	return &Text{Data: data}
}

// Unescape resolves entity and character references.
func (e *Text) Unescape() ([]byte, error) { return Unescape(e.Data) }

// UnescapeWith is Unescape with a custom entity resolver.
func (e *Text) UnescapeWith(resolve EntityResolver) ([]byte, error) {
	return UnescapeWith(e.Data, resolve)
}

// NewText builds a Text event for writing, escaping '<' and '&' in s.
func NewText(s string) *Text { return &Text{Data: MinimalEscape([]byte(s))} }

// NewRawText builds a Text event whose bytes are written verbatim. The
// caller vouches that s is already well formed.
func NewRawText(s string) *Text { return &Text{Data: []byte(s)} }

// CData is the contents of a CDATA section. Never unescaped.
type CData struct {
	Data []byte
}

func (*CData) event() {}

func (e *CData) Copy() Event {
	data := make([]byte, len(e.Data))
	copy(data, e.Data)
	return &CData{Data: data}
}

// Escape converts the section into an equivalent Text event by escaping
// its content.
func (e *CData) Escape() *Text { return &Text{Data: MinimalEscape(e.Data)} }

// NewCData builds a CData event for writing.
func NewCData(s string) *CData { return &CData{Data: []byte(s)} }

// Comment is the contents of a comment, without <!-- and -->.
type Comment struct {
	Data []byte
}

func (*Comment) event() {}

func (e *Comment) Copy() Event {
	data := make([]byte, len(e.Data))
	copy(data, e.Data)
	return &Comment{Data: data}
}

// NewComment builds a Comment event for writing.
func NewComment(s string) *Comment { return &Comment{Data: []byte(s)} }

// PI is a processing instruction, without <? and ?>.
type PI struct {
	Data []byte
}

func (*PI) event() {}

func (e *PI) Copy() Event {
	data := make([]byte, len(e.Data))
	copy(data, e.Data)
	return &PI{Data: data}
}

// Target returns the instruction target, the name right after <?.
func (e *PI) Target() []byte {
	for i, c := range e.Data {
		if isSpaceByte(c) {
			return e.Data[:i]
		}
	}
	return e.Data
}

// Instruction returns everything after the target and its whitespace.
func (e *PI) Instruction() []byte {
	for i, c := range e.Data {
		if isSpaceByte(c) {
			j := i
			for j < len(e.Data) && isSpaceByte(e.Data[j]) {
				j++
			}
			return e.Data[j:]
		}
	}
	return nil
}

// NewPI builds a PI event for writing.
func NewPI(s string) *PI { return &PI{Data: []byte(s)} }

// Decl is the XML declaration. Its pseudo-attributes are parsed on demand.
type Decl struct{ tag }

func (*Decl) event() {}

func (e *Decl) Copy() Event { return &Decl{e.copyTag()} }

// Version returns the declared version. The declaration is ill formed when
// version is missing or not the first pseudo-attribute.
func (e *Decl) Version() ([]byte, error) {
	it := e.Attributes()
	if !it.Next() {
		if err := it.Err(); err != nil {
			return nil, err
		}
		return nil, &IllFormedError{Kind: MissingDeclVersion}
	}
	a := it.Attr()
	if !bytes.Equal(a.Key, []byte("version")) {
		return nil, &IllFormedError{Kind: MissingDeclVersion}
	}
	return a.Value, nil
}

// Encoding returns the declared encoding, or ok == false when the
// declaration has none.
func (e *Decl) Encoding() (value []byte, ok bool, err error) {
	return e.pseudoAttr("encoding")
}

// Standalone returns the standalone flag, or ok == false when the
// declaration has none.
func (e *Decl) Standalone() (value []byte, ok bool, err error) {
	return e.pseudoAttr("standalone")
}

func (e *Decl) pseudoAttr(key string) ([]byte, bool, error) {
	it := e.Attributes()
	for it.Next() {
		a := it.Attr()
		if bytes.Equal(a.Key, []byte(key)) {
			return a.Value, true, nil
		}
	}
	return nil, false, it.Err()
}

// NewDecl builds an XML declaration. encoding and standalone are omitted
// when empty.
func NewDecl(version, encoding, standalone string) *Decl {
	d := &Decl{tag{buf: []byte("xml"), nameLen: 3}}
	d.AddAttr("version", version)
	if encoding != "" {
		d.AddAttr("encoding", encoding)
	}
	if standalone != "" {
		d.AddAttr("standalone", standalone)
	}
	return d
}

// DocType is the body of a <!DOCTYPE ...> declaration, shallow: the
// internal subset is kept verbatim, not parsed.
type DocType struct {
	Data []byte
}

func (*DocType) event() {}

func (e *DocType) Copy() Event {
	data := make([]byte, len(e.Data))
	copy(data, e.Data)
	return &DocType{Data: data}
}

// Name returns the document type name, the first token of the body.
func (e *DocType) Name() []byte {
	for i, c := range e.Data {
		if isSpaceByte(c) {
			return e.Data[:i]
		}
	}
	return e.Data
}

// NewDocType builds a DocType event for writing.
func NewDocType(s string) *DocType { return &DocType{Data: []byte(s)} }

// Eof is the terminal event. Reading past it keeps returning Eof.
type Eof struct{}

func (*Eof) event() {}

func (e *Eof) Copy() Event { return &Eof{} }

var eofEvent = &Eof{}
