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

// Config holds the reader's policy knobs. Set fields before the first
// ReadEvent; defaults are the XML-canonical behavior except where noted.
type Config struct {
	// TrimTextStart strips leading whitespace from each Text event.
	TrimTextStart bool
	// TrimTextEnd strips trailing whitespace from each Text event.
	TrimTextEnd bool
	// ExpandEmptyElements replaces each Empty with Start plus a synthetic
	// End.
	ExpandEmptyElements bool
	// CheckEndNames enforces that </name> matches the open <name>. On by
	// default.
	CheckEndNames bool
	// CheckComments rejects '--' inside comments.
	CheckComments bool
	// AllowUnmatchedEnds tolerates end tags with no open element.
	AllowUnmatchedEnds bool
	// RelaxedEndTags tolerates attribute junk after an end tag name, as
	// written by legacy Adobe Flash encoders.
	RelaxedEndTags bool
}

// EnableAllChecks switches every well-formedness check on or off at once.
func (c *Config) EnableAllChecks(on bool) {
	c.CheckEndNames = on
	c.CheckComments = on
}

// Reader pulls events out of an XML byte stream. It is single threaded;
// each returned event borrows from the reader's buffer and stays valid
// until the next ReadEvent call.
type Reader struct {
	Config

	br byteReader

	// Names of currently open elements, packed into one arena so pushing a
	// tag never allocates once the slices are warm.
	opened       []byte
	openedStarts []int

	// pendingEnd is set after an Empty was expanded into a Start; the next
	// ReadEvent emits the synthetic End for the name on top of the stack.
	pendingEnd bool

	// lastMarkupStart is the absolute position of the '<' of the most
	// recently consumed markup item.
	lastMarkupStart int64

	errPos  int64
	hasErr  bool
	started bool
	done    bool
}

// NewReader reads incrementally from src with an internally grown buffer.
func NewReader(src io.Reader) *Reader {
	return NewReaderBuf(src, nil)
}

// NewReaderBuf is NewReader with a caller-provided buffer, so repeated
// parses can recycle one allocation. The buffer is grown as needed.
func NewReaderBuf(src io.Reader, buf []byte) *Reader {
	return &Reader{
		Config: Config{CheckEndNames: true},
		br:     streamByteReader(src, buf),
	}
}

// NewReaderFromBytes reads from b directly. Events borrow from b itself and
// stay valid for the life of the slice, not just until the next call.
func NewReaderFromBytes(b []byte) *Reader {
	return &Reader{
		Config: Config{CheckEndNames: true},
		br:     sliceByteReader(b),
	}
}

// BufferPosition returns the absolute offset just past the last consumed
// byte, that is the number of input bytes consumed so far. It never
// decreases.
func (r *Reader) BufferPosition() int64 { return r.br.pos() }

// ErrorPosition returns the offset where the current error's markup
// starts, or BufferPosition when the last read succeeded. For a failed
// read the range [ErrorPosition, BufferPosition) spans the offending
// markup.
func (r *Reader) ErrorPosition() int64 {
	if r.hasErr {
		return r.errPos
	}
	return r.br.pos()
}

// ReadEvent returns the next event. At the end of input it returns Eof and
// keeps returning Eof. After an error the reader remains usable: it has
// advanced past the offending markup and the next call resumes there.
func (r *Reader) ReadEvent() (Event, error) {
	if r.pendingEnd {
		r.pendingEnd = false
		name := r.topOpened()
		ev := &End{name: QName(name)}
		r.popOpened()
		return ev, nil
	}
	if r.done {
		return eofEvent, nil
	}
	if !r.started {
		r.started = true
		r.br.skipBOM()
	} else {
		r.br.compact()
	}
	r.hasErr = false

	for {
		w := r.br.window()
		if len(w) == 0 {
			if r.br.extend() == 0 {
				return r.finish()
			}
			continue
		}
		if w[0] != '<' {
			text, err := r.scanText()
			if err != nil && err != io.EOF {
				r.setErr(r.br.pos())
				return nil, err
			}
			if text = r.trimText(text); len(text) > 0 {
				return &Text{Data: text}, nil
			}
			continue
		}
		r.lastMarkupStart = r.br.pos()
		ev, err := r.scanMarkup(r.lastMarkupStart)
		if err != nil {
			return nil, err
		}
		ev, err = r.postProcess(ev)
		if err != nil {
			return nil, err
		}
		if ev != nil {
			return ev, nil
		}
	}
}

// finish handles the end of input: report elements left open, then settle
// on Eof.
func (r *Reader) finish() (Event, error) {
	if err := r.br.err; err != io.EOF {
		r.setErr(r.br.pos())
		return nil, err
	}
	r.done = true
	if len(r.openedStarts) > 0 && !r.AllowUnmatchedEnds {
		expected := string(r.topOpened())
		r.opened = r.opened[:0]
		r.openedStarts = r.openedStarts[:0]
		r.setErr(r.br.pos())
		return nil, &IllFormedError{Kind: MissingEndTag, Expected: expected, Offset: r.br.pos()}
	}
	return eofEvent, nil
}

// postProcess applies the reader's well-formedness policy to a scanned
// event. A nil event with nil error means "skip, keep scanning".
func (r *Reader) postProcess(ev Event) (Event, error) {
	switch ev := ev.(type) {
	case *Start:
		r.pushOpened(ev.Name())
		return ev, nil
	case *Empty:
		if !r.ExpandEmptyElements {
			return ev, nil
		}
		r.pushOpened(ev.Name())
		r.pendingEnd = true
		return &Start{ev.tag}, nil
	case *End:
		return r.closeElement(ev)
	default:
		return ev, nil
	}
}

// closeElement checks an end tag against the open-element stack.
func (r *Reader) closeElement(ev *End) (Event, error) {
	if len(r.openedStarts) == 0 {
		if r.AllowUnmatchedEnds {
			return ev, nil
		}
		r.setErr(r.lastMarkupStart)
		return nil, &IllFormedError{
			Kind:   UnmatchedEndTag,
			Found:  string(ev.Name()),
			Offset: r.lastMarkupStart,
		}
	}
	expected := r.topOpened()
	r.popOpened()
	if r.CheckEndNames && !bytes.Equal(expected, ev.Name()) {
		r.setErr(r.lastMarkupStart)
		return nil, &IllFormedError{
			Kind:     MismatchedEndTag,
			Expected: string(expected),
			Found:    string(ev.Name()),
			Offset:   r.lastMarkupStart,
		}
	}
	return ev, nil
}

// ReadToEnd skips over the balanced content of the open element name and
// returns the absolute span [start, end) of everything between the current
// position and the '<' of the matching end tag.
func (r *Reader) ReadToEnd(name QName) (start, end int64, err error) {
	start = r.br.pos()
	depth := 0
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return start, 0, err
		}
		switch ev := ev.(type) {
		case *Start:
			depth++
		case *End:
			if depth > 0 {
				depth--
				continue
			}
			if !bytes.Equal(ev.Name(), name) {
				r.setErr(r.lastMarkupStart)
				return start, 0, &IllFormedError{
					Kind:     MismatchedEndTag,
					Expected: string(name),
					Found:    string(ev.Name()),
					Offset:   r.lastMarkupStart,
				}
			}
			if end = r.lastMarkupStart; end < start {
				// Synthetic End of an expanded empty element: no content.
				end = start
			}
			return start, end, nil
		case *Eof:
			r.setErr(r.br.pos())
			return start, 0, &IllFormedError{
				Kind:     MissingEndTag,
				Expected: string(name),
				Offset:   r.br.pos(),
			}
		}
	}
}

// ReadText returns the raw bytes between the current position and the
// matching end tag of the open element name, nested markup included
// verbatim. The returned slice is owned by the caller.
func (r *Reader) ReadText(name QName) ([]byte, error) {
	r.br.capture = make([]byte, 0, 64)
	defer func() { r.br.capture = nil }()
	depth := 0
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			return nil, err
		}
		switch ev := ev.(type) {
		case *Start:
			depth++
		case *End:
			if depth > 0 {
				depth--
				continue
			}
			if !bytes.Equal(ev.Name(), name) {
				r.setErr(r.lastMarkupStart)
				return nil, &IllFormedError{
					Kind:     MismatchedEndTag,
					Expected: string(name),
					Found:    string(ev.Name()),
					Offset:   r.lastMarkupStart,
				}
			}
			captured := r.br.capture
			if n := len(captured) - r.br.lastAdvance; n > 0 {
				return captured[:n], nil
			}
			// Synthetic End of an expanded empty element: no content.
			return nil, nil
		case *Eof:
			r.setErr(r.br.pos())
			return nil, &IllFormedError{
				Kind:     MissingEndTag,
				Expected: string(name),
				Offset:   r.br.pos(),
			}
		}
	}
}

// Decoder returns the handle used to turn event bytes into strings.
func (r *Reader) Decoder() Decoder { return Decoder{} }

func (r *Reader) trimText(text []byte) []byte {
	if r.TrimTextStart {
		for len(text) > 0 && isSpaceByte(text[0]) {
			text = text[1:]
		}
	}
	if r.TrimTextEnd {
		for len(text) > 0 && isSpaceByte(text[len(text)-1]) {
			text = text[:len(text)-1]
		}
	}
	return text
}

func (r *Reader) pushOpened(name QName) {
	r.openedStarts = append(r.openedStarts, len(r.opened))
	r.opened = append(r.opened, name...)
}

func (r *Reader) topOpened() []byte {
	start := r.openedStarts[len(r.openedStarts)-1]
	return r.opened[start:]
}

func (r *Reader) popOpened() {
	start := r.openedStarts[len(r.openedStarts)-1]
	r.openedStarts = r.openedStarts[:len(r.openedStarts)-1]
	r.opened = r.opened[:start]
}
