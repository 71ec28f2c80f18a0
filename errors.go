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

import "fmt"

// SyntaxError is an unrecoverable structural problem in the byte stream,
// such as an unterminated construct or an unexpected byte where markup was
// expected. Offset is the absolute position of the markup that failed.
type SyntaxError struct {
	Msg    string
	Offset int64
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at byte %d: %s", e.Offset, e.Msg)
}

// IllFormedKind enumerates structural rules an input can violate.
type IllFormedKind int

const (
	// MismatchedEndTag is returned when </b> closes an open <a>.
	MismatchedEndTag IllFormedKind = iota
	// UnmatchedEndTag is returned for an end tag with no open element.
	UnmatchedEndTag
	// MissingEndTag is returned when the document (or a ReadToEnd scan)
	// finishes while elements are still open.
	MissingEndTag
	// DoubleHyphenInComment is returned for `--` inside a comment body when
	// CheckComments is enabled.
	DoubleHyphenInComment
	// MissingDeclVersion is returned when an XML declaration does not start
	// with a version pseudo-attribute.
	MissingDeclVersion
	// MissingDoctypeName is returned for `<!DOCTYPE>` with no name.
	MissingDoctypeName
)

// IllFormedError reports a violated well-formedness rule. The reader stays
// usable: it has already consumed the offending markup and the next
// ReadEvent resumes after it.
type IllFormedError struct {
	Kind     IllFormedKind
	Expected string
	Found    string
	Offset   int64
}

func (e *IllFormedError) Error() string {
	switch e.Kind {
	case MismatchedEndTag:
		return fmt.Sprintf("ill-formed document at byte %d: expected </%s>, found </%s>", e.Offset, e.Expected, e.Found)
	case UnmatchedEndTag:
		return fmt.Sprintf("ill-formed document at byte %d: end tag </%s> has no matching start tag", e.Offset, e.Found)
	case MissingEndTag:
		return fmt.Sprintf("ill-formed document at byte %d: missing end tag </%s>", e.Offset, e.Expected)
	case DoubleHyphenInComment:
		return fmt.Sprintf("ill-formed document at byte %d: '--' is not allowed inside a comment", e.Offset)
	case MissingDeclVersion:
		return fmt.Sprintf("ill-formed document at byte %d: XML declaration has no version", e.Offset)
	case MissingDoctypeName:
		return fmt.Sprintf("ill-formed document at byte %d: DOCTYPE has no name", e.Offset)
	}
	return fmt.Sprintf("ill-formed document at byte %d", e.Offset)
}

// EscapeKind classifies a failed entity reference.
type EscapeKind int

const (
	// EntityUnrecognized means the entity name is not one of the five
	// predefined names and the resolver (if any) did not know it either.
	EntityUnrecognized EscapeKind = iota
	// EntityUnterminated means a '&' was never followed by ';'.
	EntityUnterminated
)

// EscapeError reports a bad entity reference. Offset is the position of the
// introducing '&' within the unescaped input.
type EscapeError struct {
	Kind   EscapeKind
	Name   string
	Offset int
}

func (e *EscapeError) Error() string {
	if e.Kind == EntityUnterminated {
		return fmt.Sprintf("unterminated entity reference at byte %d", e.Offset)
	}
	return fmt.Sprintf("unrecognized entity &%s; at byte %d", e.Name, e.Offset)
}

// CharRefReason classifies a failed numeric character reference.
type CharRefReason int

const (
	// CharRefEmpty means the payload between `&#` and `;` was empty.
	CharRefEmpty CharRefReason = iota
	// CharRefBadDigit means the payload held a non-digit for its base.
	CharRefBadDigit
	// CharRefOutOfRange means the code point is not a valid Unicode scalar.
	CharRefOutOfRange
)

// CharRefError reports a bad `&#N;` or `&#xN;` reference. Offset is the
// position of the introducing '&' within the unescaped input.
type CharRefError struct {
	Reason CharRefReason
	Ref    string
	Offset int
}

func (e *CharRefError) Error() string {
	switch e.Reason {
	case CharRefEmpty:
		return fmt.Sprintf("empty character reference at byte %d", e.Offset)
	case CharRefBadDigit:
		return fmt.Sprintf("invalid digit in character reference &#%s; at byte %d", e.Ref, e.Offset)
	}
	return fmt.Sprintf("character reference &#%s; is not a Unicode character at byte %d", e.Ref, e.Offset)
}

// AttrErrorKind enumerates attribute malformations.
type AttrErrorKind int

const (
	// ExpectedEq means a key was not followed by '='.
	ExpectedEq AttrErrorKind = iota
	// ExpectedQuote means a value was opened but never closed, or nothing
	// followed '='.
	ExpectedQuote
	// UnquotedValue means the value was not wrapped in quotes (rejected
	// unless HTML mode is enabled).
	UnquotedValue
	// Duplicated means the key already appeared in the same tag (reported
	// only when duplicate checking is enabled).
	Duplicated
	// InvalidCharacter means a byte that cannot start an attribute key.
	InvalidCharacter
)

// AttrError reports a malformed attribute. Offset is relative to the start
// of the tag content (the byte after '<'). For Duplicated, FirstOffset is
// where the key first appeared.
type AttrError struct {
	Kind        AttrErrorKind
	Offset      int
	Key         string
	FirstOffset int
}

func (e *AttrError) Error() string {
	switch e.Kind {
	case ExpectedEq:
		return fmt.Sprintf("attribute %q at position %d is missing '='", e.Key, e.Offset)
	case ExpectedQuote:
		return fmt.Sprintf("attribute value at position %d is missing a closing quote", e.Offset)
	case UnquotedValue:
		return fmt.Sprintf("attribute value at position %d is not quoted", e.Offset)
	case Duplicated:
		return fmt.Sprintf("attribute %q at position %d duplicates the key at position %d", e.Key, e.Offset, e.FirstOffset)
	case InvalidCharacter:
		return fmt.Sprintf("invalid character at position %d, expected an attribute key", e.Offset)
	}
	return fmt.Sprintf("malformed attribute at position %d", e.Offset)
}

// NamespaceError reports an attempt to bind a reserved prefix or URI.
type NamespaceError struct {
	Prefix string
	URI    string
}

func (e *NamespaceError) Error() string {
	return fmt.Sprintf("invalid prefix binding xmlns:%s=%q", e.Prefix, e.URI)
}

// EncodingError reports bytes that are not valid UTF-8 where UTF-8 text was
// expected.
type EncodingError struct {
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("invalid UTF-8 sequence at byte %d", e.Offset)
}
