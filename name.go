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

// Namespace URIs that carry reserved meaning and cannot be rebound.
const (
	// XMLNamespace is permanently bound to the `xml` prefix.
	XMLNamespace = "http://www.w3.org/XML/1998/namespace"
	// XMLNSNamespace is the URI of the declaration mechanism itself; it
	// cannot be bound to any prefix other than `xmlns`.
	XMLNSNamespace = "http://www.w3.org/2000/xmlns/"
)

// QName is a qualified name as it appears in the source, optionally
// `prefix:local`. A QName borrows from the reader's buffer like any other
// event payload.
type QName []byte

// Local returns the part after the first ':', or the whole name when there
// is no colon.
func (q QName) Local() []byte {
	if i := bytes.IndexByte(q, ':'); i >= 0 {
		return q[i+1:]
	}
	return q
}

// Prefix returns the part before the first ':', or nil when there is no
// colon.
func (q QName) Prefix() []byte {
	if i := bytes.IndexByte(q, ':'); i >= 0 {
		return q[:i]
	}
	return nil
}

// String implements fmt.Stringer for diagnostics.
func (q QName) String() string { return string(q) }

// Name is an interned, owning form of a QName split into its parts. The
// namespace reader hands out the same *Name instance every time a qualified
// name repeats, so comparing names across events is a pointer comparison.
type Name struct {
	prefix string
	local  string
}

// Prefix returns the namespace prefix, empty when the name has none.
func (n *Name) Prefix() string {
	if n == nil {
		return ""
	}
	return n.prefix
}

// Local returns the local part of the name.
func (n *Name) Local() string {
	if n == nil {
		return ""
	}
	return n.local
}

// String returns the name in its source form.
func (n *Name) String() string {
	if n == nil {
		return ""
	}
	if n.prefix == "" {
		return n.local
	}
	return n.prefix + ":" + n.local
}

// checkPrefixBind validates a declaration `xmlns:prefix="uri"` (prefix is
// empty for the default namespace) against the reserved rules. The `xml`
// prefix may only carry its fixed URI, `xmlns` may not be declared at all,
// and neither reserved URI may be given to another prefix.
func checkPrefixBind(prefix, uri []byte) error {
	switch string(prefix) {
	case "xmlns":
		return &NamespaceError{Prefix: string(prefix), URI: string(uri)}
	case "xml":
		if string(uri) != XMLNamespace {
			return &NamespaceError{Prefix: string(prefix), URI: string(uri)}
		}
		return nil
	}
	if string(uri) == XMLNamespace || string(uri) == XMLNSNamespace {
		return &NamespaceError{Prefix: string(prefix), URI: string(uri)}
	}
	return nil
}
