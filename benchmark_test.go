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
	"errors"
	"fmt"
	"io"
	"testing"

	stdxml "encoding/xml"
)

func benchmarkDoc() []byte {
	var b bytes.Buffer
	b.WriteString(`<?xml version="1.0"?><catalog>`)
	for i := 0; i < 1000; i++ {
		fmt.Fprintf(&b, `<item sku="sku-%d" qty="%d">name &amp; detail %d</item>`, i, i%7, i)
	}
	b.WriteString(`</catalog>`)
	return b.Bytes()
}

func BenchmarkReadAll(b *testing.B) {
	doc := benchmarkDoc()

	testCases := []struct {
		desc    string
		readAll func() error
	}{
		{"go-xmlpull_slice",
			func() error {
				r := NewReaderFromBytes(doc)
				for {
					ev, err := r.ReadEvent()
					if err != nil {
						return err
					}
					if _, ok := ev.(*Eof); ok {
						return nil
					}
				}
			},
		},
		{"go-xmlpull_stream",
			func() error {
				r := NewReader(bytes.NewReader(doc))
				for {
					ev, err := r.ReadEvent()
					if err != nil {
						return err
					}
					if _, ok := ev.(*Eof); ok {
						return nil
					}
				}
			},
		},
		{"encoding_xml",
			func() error {
				decoder := stdxml.NewDecoder(bytes.NewReader(doc))
				for {
					_, err := decoder.RawToken()
					if err != nil {
						if errors.Is(err, io.EOF) {
							return nil
						}
						return err
					}
				}
			},
		},
	}

	for _, tc := range testCases {
		b.Run(tc.desc, func(b *testing.B) {
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := tc.readAll(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkUnescape(b *testing.B) {
	in := []byte("a &amp; b &#x41; plain tail without references")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Unescape(in); err != nil {
			b.Fatal(err)
		}
	}
}
