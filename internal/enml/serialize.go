// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package enml

import (
	"strings"

	"github.com/MKhiriev/go-enml/models"
)

// Header is the prolog of a persisted ENML document.
const Header = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
	`<!DOCTYPE en-note SYSTEM "http://xml.evernote.com/pub/enml2.dtd">` + "\n"

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Serialize renders the document body, starting at the en-note element.
// Elements without children are written in self-closing form.
func Serialize(doc *models.Document) string {
	if doc == nil || doc.Root == nil {
		return ""
	}
	var b strings.Builder
	writeNode(&b, doc.Root)
	return b.String()
}

// SerializeDocument renders the document with the XML declaration and DOCTYPE.
func SerializeDocument(doc *models.Document) string {
	return Header + Serialize(doc)
}

// SerializeFragment renders a node sequence without a wrapping element.
func SerializeFragment(nodes []*models.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		writeNode(&b, n)
	}
	return b.String()
}

// EscapeText escapes character data for use in ENML.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}

func writeNode(b *strings.Builder, n *models.Node) {
	if n.Type == models.TextNode {
		b.WriteString(textEscaper.Replace(n.Text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.Name)
	for _, a := range n.Attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		b.WriteString(attrEscaper.Replace(a.Value))
		b.WriteByte('"')
	}
	if len(n.Children) == 0 {
		b.WriteString("/>")
		return
	}
	b.WriteByte('>')
	for _, c := range n.Children {
		writeNode(b, c)
	}
	b.WriteString("</")
	b.WriteString(n.Name)
	b.WriteByte('>')
}
