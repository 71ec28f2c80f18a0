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

	"github.com/Goodwine/triemap"
)

// Resolution classifies the outcome of resolving a qualified name.
type Resolution int

const (
	// Bound means the prefix (or the default namespace) maps to a URI.
	Bound Resolution = iota
	// Unbound means the name has no prefix and no default namespace is in
	// scope. Attributes without a prefix are always Unbound.
	Unbound
	// Unknown means the prefix is not declared in scope.
	Unknown
)

// nsBinding is one prefix declaration. Bindings live in a flat stack
// indexed by element depth; resolution is a reverse linear scan, which
// beats a per-element map for the shallow stacks real documents have.
type nsBinding struct {
	level  int
	prefix []byte
	uri    []byte // empty means the prefix is explicitly unbound (xmlns="")
}

// PrefixBinding is one visible declaration as reported by Prefixes.
type PrefixBinding struct {
	Prefix []byte
	URI    []byte
}

// NsReader is a Reader that additionally tracks namespace declarations.
// Each Start pushes the bindings declared in its tag, the matching End pops
// them, restoring whatever they shadowed.
type NsReader struct {
	*Reader

	bindings []nsBinding
	depth    int

	// pendingPop defers popping an unexpanded Empty element's bindings
	// until the next event, so the caller can still resolve names against
	// the tag that declared them.
	pendingPop bool

	// names interns qualified-name splits so resolving the same name twice
	// returns the same *Name pointer and allocates nothing.
	names triemap.RuneSliceMap
}

// NewNsReader is NewReader with namespace tracking.
func NewNsReader(src io.Reader) *NsReader {
	return &NsReader{Reader: NewReader(src)}
}

// NewNsReaderFromBytes is NewReaderFromBytes with namespace tracking.
func NewNsReaderFromBytes(b []byte) *NsReader {
	return &NsReader{Reader: NewReaderFromBytes(b)}
}

// ReadEvent returns the next event and keeps the namespace stack in sync
// with it.
func (r *NsReader) ReadEvent() (Event, error) {
	if r.pendingPop {
		r.pendingPop = false
		r.popLevel()
	}
	ev, err := r.Reader.ReadEvent()
	if err != nil {
		return nil, err
	}
	switch ev := ev.(type) {
	case *Start:
		r.depth++
		if err := r.declare(&ev.tag); err != nil {
			return nil, err
		}
	case *Empty:
		r.depth++
		r.pendingPop = true
		if err := r.declare(&ev.tag); err != nil {
			return nil, err
		}
	case *End:
		r.popLevel()
	}
	return ev, nil
}

// ReadResolvedEvent is ReadEvent plus the resolution of the event's name.
// For events without a name the resolution is Unbound with a nil Name.
func (r *NsReader) ReadResolvedEvent() (Resolution, []byte, *Name, Event, error) {
	ev, err := r.ReadEvent()
	if err != nil {
		return Unbound, nil, nil, nil, err
	}
	switch ev := ev.(type) {
	case *Start:
		res, uri, name := r.ResolveElement(ev.Name())
		return res, uri, name, ev, nil
	case *Empty:
		res, uri, name := r.ResolveElement(ev.Name())
		return res, uri, name, ev, nil
	case *End:
		res, uri, name := r.ResolveElement(ev.Name())
		return res, uri, name, ev, nil
	}
	return Unbound, nil, nil, ev, nil
}

// ResolveElement resolves a qualified element name against the bindings in
// scope. Unprefixed elements take the default namespace. The returned URI
// is non-nil only for Bound; the *Name is interned.
func (r *NsReader) ResolveElement(q QName) (Resolution, []byte, *Name) {
	return r.resolve(q, true)
}

// ResolveAttribute resolves a qualified attribute name. Unprefixed
// attributes never take the default namespace.
func (r *NsReader) ResolveAttribute(q QName) (Resolution, []byte, *Name) {
	return r.resolve(q, false)
}

func (r *NsReader) resolve(q QName, useDefault bool) (Resolution, []byte, *Name) {
	name := r.internName(q)
	prefix := q.Prefix()
	switch string(prefix) {
	case "xml":
		return Bound, []byte(XMLNamespace), name
	case "xmlns":
		return Bound, []byte(XMLNSNamespace), name
	}
	if prefix == nil && !useDefault {
		return Unbound, nil, name
	}
	uri, ok := r.lookup(prefix)
	if !ok {
		if prefix == nil {
			return Unbound, nil, name
		}
		return Unknown, nil, name
	}
	if len(uri) == 0 {
		return Unbound, nil, name
	}
	return Bound, uri, name
}

// lookup scans the binding stack newest first, so shadowing declarations
// win.
func (r *NsReader) lookup(prefix []byte) ([]byte, bool) {
	for i := len(r.bindings) - 1; i >= 0; i-- {
		if bytes.Equal(r.bindings[i].prefix, prefix) {
			return r.bindings[i].uri, true
		}
	}
	return nil, false
}

// Prefixes returns the declarations visible at the current position, one
// entry per distinct prefix, shadowing already applied. Explicitly unbound
// prefixes are omitted.
func (r *NsReader) Prefixes() []PrefixBinding {
	var out []PrefixBinding
	for i, b := range r.bindings {
		shadowed := false
		for _, later := range r.bindings[i+1:] {
			if bytes.Equal(later.prefix, b.prefix) {
				shadowed = true
				break
			}
		}
		if shadowed || len(b.uri) == 0 {
			continue
		}
		out = append(out, PrefixBinding{Prefix: b.prefix, URI: b.uri})
	}
	return out
}

// declare records the xmlns declarations of a start tag. Declaration
// values may contain entity references, so they are unescaped before being
// stored.
func (r *NsReader) declare(t *tag) error {
	it := t.Attributes()
	for it.Next() {
		a := it.Attr()
		var prefix []byte
		switch {
		case bytes.Equal(a.Key, []byte("xmlns")):
			prefix = nil
		case bytes.Equal(a.Key.Prefix(), []byte("xmlns")):
			prefix = a.Key.Local()
		default:
			continue
		}
		uri, err := Unescape(a.Value)
		if err != nil {
			return err
		}
		if err := checkPrefixBind(prefix, uri); err != nil {
			return err
		}
		r.push(prefix, uri)
	}
	return it.Err()
}

func (r *NsReader) push(prefix, uri []byte) {
	b := nsBinding{level: r.depth}
	b.prefix = append(b.prefix, prefix...)
	b.uri = append(b.uri, uri...)
	r.bindings = append(r.bindings, b)
}

// popLevel drops the bindings declared at the current depth, restoring
// whatever they shadowed.
func (r *NsReader) popLevel() {
	for len(r.bindings) > 0 && r.bindings[len(r.bindings)-1].level == r.depth {
		r.bindings = r.bindings[:len(r.bindings)-1]
	}
	if r.depth > 0 {
		r.depth--
	}
}

// internName returns the one *Name for this qualified name, splitting and
// allocating only the first time it is seen.
func (r *NsReader) internName(q QName) *Name {
	runes := []rune(string(q))
	if n, ok := r.names.Get(runes); ok {
		return n.(*Name)
	}
	n := &Name{prefix: string(q.Prefix()), local: string(q.Local())}
	r.names.Put(runes, n)
	return n
}
