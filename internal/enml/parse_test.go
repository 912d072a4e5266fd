// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package enml

import (
	"testing"

	"github.com/MKhiriev/go-enml/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_FullDocument(t *testing.T) {
	content := Header + `<en-note style="color:red"><div>Hello&nbsp;<b>world</b></div><en-todo checked="true"/> buy milk</en-note>`

	doc, err := Parse(content)
	require.NoError(t, err)
	require.NotNil(t, doc.Root)

	assert.Equal(t, "en-note", doc.Root.Name)
	style, ok := doc.Root.Attr("style")
	assert.True(t, ok)
	assert.Equal(t, "color:red", style)

	require.Len(t, doc.Root.Children, 3)
	div := doc.Root.Children[0]
	assert.Equal(t, "Hello\u00a0world", div.InnerText())
	assert.True(t, doc.Root.Children[1].IsElement(models.TagTodo))
	assert.Equal(t, " buy milk", doc.Root.Children[2].Text)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not xml", content: `<en-note><div></en-note>`},
		{name: "no root", content: `<div>text</div>`},
		{name: "empty", content: ``},
		{name: "trailing element", content: `<en-note/><div/>`},
		{name: "unknown entity", content: `<en-note>&bogus;</en-note>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.content)
			require.Error(t, err)
			var syntaxErr *SyntaxError
			assert.ErrorAs(t, err, &syntaxErr)
		})
	}
}

func TestParse_NamespacedAttributes(t *testing.T) {
	doc, err := Parse(`<en-note xmlns="http://xml.evernote.com/pub/enml2.dtd"><p xml:lang="en">x</p></en-note>`)
	require.NoError(t, err)

	xmlns, ok := doc.Root.Attr("xmlns")
	assert.True(t, ok)
	assert.Equal(t, "http://xml.evernote.com/pub/enml2.dtd", xmlns)

	lang, ok := doc.Root.Children[0].Attr("xml:lang")
	assert.True(t, ok)
	assert.Equal(t, "en", lang)
}

func TestSerialize_RoundTrip(t *testing.T) {
	tests := []string{
		`<en-note><en-todo checked="true"/> buy milk</en-note>`,
		`<en-note><div>a &lt; b &amp;&amp; c &gt; d</div></en-note>`,
		`<en-note><a href="http://example.com/?a=1&amp;b=&quot;2&quot;">link</a></en-note>`,
		`<en-note><en-crypt cipher="AES" length="128" hint="pet">RU5DMA==</en-crypt></en-note>`,
		`<en-note/>`,
	}
	for _, content := range tests {
		t.Run(content, func(t *testing.T) {
			doc, err := Parse(content)
			require.NoError(t, err)
			assert.Equal(t, content, Serialize(doc))
		})
	}
}

func TestSerializeDocument_AddsProlog(t *testing.T) {
	doc, err := Parse(`<en-note/>`)
	require.NoError(t, err)

	out := SerializeDocument(doc)
	assert.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, out, `<!DOCTYPE en-note SYSTEM "http://xml.evernote.com/pub/enml2.dtd">`)

	again, err := Parse(out)
	require.NoError(t, err)
	assert.True(t, doc.Equal(again))
}

func TestParseFragment(t *testing.T) {
	nodes, err := ParseFragment(`secret <b>bold</b>`)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, "secret ", nodes[0].Text)
	assert.True(t, nodes[1].IsElement("b"))
	assert.Equal(t, `secret <b>bold</b>`, SerializeFragment(nodes))

	_, err = ParseFragment(`a < b`)
	assert.Error(t, err)
}
