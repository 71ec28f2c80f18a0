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

package xmlpull_test

import (
	"bytes"
	"fmt"
	"log"

	xmlpull "github.com/Goodwine/go-xmlpull"
)

// This example walks a document event by event. Text arrives in its
// escaped source form and is unescaped on demand.
func Example_pullParsing() {
	const data = `<inventory><item sku="A-1">Bat &amp; ball</item><item sku="B-2"/></inventory>`

	r := xmlpull.NewReaderFromBytes([]byte(data))
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			log.Fatal(err)
		}
		switch ev := ev.(type) {
		case *xmlpull.Start:
			fmt.Printf("open %s\n", ev.Name())
		case *xmlpull.Empty:
			fmt.Printf("empty %s\n", ev.Name())
		case *xmlpull.Text:
			text, err := ev.Unescape()
			if err != nil {
				log.Fatal(err)
			}
			fmt.Printf("text %s\n", text)
		case *xmlpull.End:
			fmt.Printf("close %s\n", ev.Name())
		case *xmlpull.Eof:
			return
		}
	}

	// Output:
	// open inventory
	// open item
	// text Bat & ball
	// close item
	// empty item
	// close inventory
}

// This example builds a small document with the element builder and
// pretty-printing.
func ExampleWriter_CreateElement() {
	var buf bytes.Buffer
	w := xmlpull.NewWriterIndent(&buf, ' ', 2)

	err := w.CreateElement("user").
		WithAttr("id", "123").
		WriteInnerContent(func(w *xmlpull.Writer) error {
			return w.CreateElement("name").WriteTextContent("Alice & Bob")
		})
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(buf.String())
	// Output:
	// <user id="123">
	//   <name>Alice &amp; Bob</name>
	// </user>
}

// This example resolves qualified names while reading.
func ExampleNsReader() {
	const data = `<r xmlns:p="http://example.com/p"><p:c/></r>`

	r := xmlpull.NewNsReaderFromBytes([]byte(data))
	for {
		ev, err := r.ReadEvent()
		if err != nil {
			log.Fatal(err)
		}
		switch ev := ev.(type) {
		case *xmlpull.Empty:
			res, uri, name := r.ResolveElement(ev.Name())
			if res == xmlpull.Bound {
				fmt.Printf("%s -> {%s}%s\n", ev.Name(), uri, name.Local())
			}
		case *xmlpull.Eof:
			return
		}
	}

	// Output:
	// p:c -> {http://example.com/p}c
}
