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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteEvents(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	events := []Event{
		NewDecl("1.0", "UTF-8", ""),
		NewDocType(`note SYSTEM "note.dtd"`),
		NewComment(" intro "),
		NewStart("note"),
		NewText("a < b & c"),
		NewCData("raw <stuff>"),
		NewPI("page break"),
		NewEmpty("hr"),
		NewEnd("note"),
		&Eof{},
	}
	for _, ev := range events {
		require.NoError(t, w.WriteEvent(ev))
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>` +
		`<!DOCTYPE note SYSTEM "note.dtd">` +
		`<!-- intro -->` +
		`<note>` +
		`a &lt; b &amp; c` +
		`<![CDATA[raw <stuff>]]>` +
		`<?page break?>` +
		`<hr/>` +
		`</note>`
	assert.Equal(t, want, buf.String())
}

func TestWriteStartWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	start := NewStart("item")
	start.AddAttr("sku", "A-1")
	start.AddAttr("note", `5 "quoted" & <tagged>`)
	require.NoError(t, w.WriteEvent(start))
	require.NoError(t, w.WriteEvent(start.ToEnd()))

	assert.Equal(t,
		`<item sku="A-1" note="5 &quot;quoted&quot; &amp; &lt;tagged>"></item>`,
		buf.String())
}

func TestWriteIndented(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterIndent(&buf, ' ', 2)

	for _, ev := range []Event{
		NewStart("a"),
		NewStart("b"),
		NewText("x"),
		NewEnd("b"),
		NewEnd("a"),
	} {
		require.NoError(t, w.WriteEvent(ev))
	}

	assert.Equal(t, "<a>\n  <b>x</b>\n</a>", buf.String())
}

func TestWriteIndentedDeeper(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterIndent(&buf, '\t', 1)

	for _, ev := range []Event{
		NewStart("a"),
		NewComment("c"),
		NewStart("b"),
		NewEmpty("leaf"),
		NewEnd("b"),
		NewEnd("a"),
	} {
		require.NoError(t, w.WriteEvent(ev))
	}

	assert.Equal(t, "<a>\n\t<!--c-->\n\t<b>\n\t\t<leaf/>\n\t</b>\n</a>", buf.String())
}

func TestWriteIndentedCDataInline(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterIndent(&buf, ' ', 2)

	for _, ev := range []Event{
		NewStart("a"),
		NewCData("x\ny"),
		NewEnd("a"),
	} {
		require.NoError(t, w.WriteEvent(ev))
	}

	// CDATA hugs its element like text does.
	assert.Equal(t, "<a><![CDATA[x\ny]]></a>", buf.String())
}

func TestWriteBOM(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterIndent(&buf, ' ', 2)
	require.NoError(t, w.WriteBOM())
	require.NoError(t, w.WriteEvent(NewEmpty("a")))

	// No newline between the BOM and the first tag.
	assert.Equal(t, "\xEF\xBB\xBF<a/>", buf.String())
}

func TestWriteRaw(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteEvent(NewStart("a")))
	require.NoError(t, w.WriteRaw([]byte("<already&escaped>")))
	require.NoError(t, w.WriteEvent(NewEnd("a")))
	assert.Equal(t, "<a><already&escaped></a>", buf.String())
}

func TestElementWriterEmpty(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.CreateElement("ping").
		WithAttr("seq", "1").
		WithAttr("src", `a"b`).
		WriteEmpty()
	require.NoError(t, err)
	assert.Equal(t, `<ping seq="1" src="a&quot;b"/>`, buf.String())
}

func TestElementWriterTextContent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.CreateElement("msg").
		WithAttr("id", "7").
		WriteTextContent("x < y & z")
	require.NoError(t, err)
	assert.Equal(t, `<msg id="7">x &lt; y &amp; z</msg>`, buf.String())
}

func TestElementWriterTextContentFullQuote(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	w.QuoteLevel = QuoteFull
	err := w.CreateElement("msg").WriteTextContent(`'quoted' > "text"`)
	require.NoError(t, err)
	assert.Equal(t, `<msg>&apos;quoted&apos; &gt; &quot;text&quot;</msg>`, buf.String())
}

func TestElementWriterCDataContent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	err := w.CreateElement("blob").WriteCDataContent("a<b&c")
	require.NoError(t, err)
	assert.Equal(t, `<blob><![CDATA[a<b&c]]></blob>`, buf.String())
}

func TestElementWriterInnerContent(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriterIndent(&buf, ' ', 2)
	err := w.CreateElement("list").
		WithAttr("n", "2").
		WriteInnerContent(func(w *Writer) error {
			if err := w.CreateElement("li").WriteTextContent("one"); err != nil {
				return err
			}
			return w.CreateElement("li").WriteTextContent("two")
		})
	require.NoError(t, err)
	assert.Equal(t,
		"<list n=\"2\">\n  <li>one</li>\n  <li>two</li>\n</list>",
		buf.String())
}

func TestElementWriterReusesAttrBuffer(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.CreateElement("a").WithAttr("k", "1").WriteEmpty())
	require.NoError(t, w.CreateElement("b").WithAttr("q", "2").WriteEmpty())
	// The second element must not inherit the first one's attributes.
	assert.Equal(t, `<a k="1"/><b q="2"/>`, buf.String())
}

func TestWriteParsedEventsVerbatim(t *testing.T) {
	// Text from the reader is already in escaped form; the writer must not
	// escape it again.
	r := NewReaderFromBytes([]byte(`<t>a &amp; b</t>`))
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for {
		ev, err := r.ReadEvent()
		require.NoError(t, err)
		if _, ok := ev.(*Eof); ok {
			break
		}
		require.NoError(t, w.WriteEvent(ev))
	}
	assert.Equal(t, `<t>a &amp; b</t>`, buf.String())
}
