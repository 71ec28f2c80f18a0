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

// Package xmlpull is a pull-mode XML reader and event writer.
//
// The reader scans a byte stream and produces a lazy sequence of lexical
// events: start tags, end tags, empty (self-closing) tags, character data,
// CDATA sections, comments, processing instructions, the XML declaration,
// and DOCTYPE. Events borrow their bytes from the reader's buffer, so a
// whole document can be walked without copying anything the caller does not
// ask for. Attributes and unescaped strings are computed on demand.
//
// The writer consumes the same event vocabulary and appends well-formed
// UTF-8 XML to an io.Writer, with optional indentation and an element
// builder for convenience.
//
// Input is assumed to be UTF-8 after an optional BOM. Non-UTF-8 sources can
// be transcoded upstream, see NewReaderWithCharset.
package xmlpull
