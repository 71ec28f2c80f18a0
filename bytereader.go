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

import "io"

const defaultBufSize = 4 * 1024

// byteReader serves bytes to the tokenizer from either a fixed slice
// (r == nil) or an io.Reader appended into a growable buffer. The window is
// the not-yet-consumed part of the buffer; event payloads are sub-slices of
// it and stay valid until the next compact.
type byteReader struct {
	data []byte
	r    io.Reader // nil in slice mode
	off  int       // consumed bytes within data
	base int64     // absolute stream offset of data[0]
	err  error     // sticky source error, io.EOF once exhausted

	// capture, when non-nil, accumulates every consumed byte. Used by
	// ReadText to hand back raw content spanning several events.
	capture []byte
	// lastAdvance is the size of the most recent advance, so a capture can
	// drop the trailing end tag again.
	lastAdvance int
}

func sliceByteReader(b []byte) byteReader {
	return byteReader{data: b}
}

func streamByteReader(r io.Reader, buf []byte) byteReader {
	if buf == nil {
		buf = make([]byte, 0, defaultBufSize)
	}
	return byteReader{data: buf[:0], r: r}
}

// window returns the unconsumed bytes currently buffered.
func (br *byteReader) window() []byte { return br.data[br.off:] }

// pos returns the absolute stream offset of the next unconsumed byte.
func (br *byteReader) pos() int64 { return br.base + int64(br.off) }

// advance consumes n bytes from the window.
func (br *byteReader) advance(n int) {
	if br.capture != nil {
		br.capture = append(br.capture, br.data[br.off:br.off+n]...)
	}
	br.lastAdvance = n
	br.off += n
}

// compact discards consumed bytes so the buffer can be refilled from the
// front. A no-op in slice mode: slice events stay valid for the life
// of the input. Calling it invalidates previously returned events, which is
// why the reader only compacts at the top of ReadEvent.
func (br *byteReader) compact() {
	if br.r == nil || br.off == 0 {
		return
	}
	n := copy(br.data, br.data[br.off:])
	br.data = br.data[:n]
	br.base += int64(br.off)
	br.off = 0
}

// extend pulls more bytes from the source into the buffer. It returns the
// number of bytes added; zero means br.err is set.
func (br *byteReader) extend() int {
	if br.err != nil {
		return 0
	}
	if br.r == nil {
		br.err = io.EOF
		return 0
	}
	if len(br.data) == cap(br.data) {
		grown := make([]byte, len(br.data), 2*cap(br.data)+defaultBufSize)
		copy(grown, br.data)
		br.data = grown
	}
	for {
		n, err := br.r.Read(br.data[len(br.data):cap(br.data)])
		br.data = br.data[:len(br.data)+n]
		if err != nil {
			br.err = err
		}
		if n > 0 || err != nil {
			return n
		}
	}
}

// skipBOM consumes a UTF-8 byte order mark at the very start of the input.
func (br *byteReader) skipBOM() {
	for len(br.window()) < 3 {
		if br.extend() == 0 {
			break
		}
	}
	w := br.window()
	if len(w) >= 3 && w[0] == 0xEF && w[1] == 0xBB && w[2] == 0xBF {
		br.off += 3
	}
}
