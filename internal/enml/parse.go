// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package enml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MKhiriev/go-enml/models"
)

// SyntaxError describes why note content is not well-formed XML.
type SyntaxError struct {
	Line int
	Msg  string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Parse reads a complete ENML document. The XML declaration and DOCTYPE are
// optional; the root element must be en-note. HTML named entities such as
// &nbsp; are accepted.
func Parse(content string) (*models.Document, error) {
	nodes, err := parseNodes(content)
	if err != nil {
		return nil, err
	}

	var root *models.Node
	for _, n := range nodes {
		switch {
		case n.Type == models.TextNode && strings.TrimSpace(n.Text) == "":
			continue
		case root == nil && n.IsElement(models.TagNote):
			root = n
		default:
			return nil, &SyntaxError{Msg: "content outside of the en-note root element"}
		}
	}
	if root == nil {
		return nil, &SyntaxError{Msg: "missing en-note root element"}
	}
	return &models.Document{Root: root}, nil
}

// ParseFragment reads a sequence of ENML nodes without a root element, as
// stored inside an encrypted block.
func ParseFragment(fragment string) ([]*models.Node, error) {
	const wrapper = "en-fragment"
	nodes, err := parseNodes("<" + wrapper + ">" + fragment + "</" + wrapper + ">")
	if err != nil {
		return nil, err
	}
	if len(nodes) != 1 || !nodes[0].IsElement(wrapper) {
		return nil, &SyntaxError{Msg: "malformed fragment"}
	}
	return nodes[0].Children, nil
}

func parseNodes(content string) ([]*models.Node, error) {
	dec := xml.NewDecoder(strings.NewReader(content))
	dec.Strict = true
	dec.Entity = xml.HTMLEntity

	var (
		top   []*models.Node
		stack []*models.Node
	)
	appendNode := func(n *models.Node) {
		if len(stack) == 0 {
			top = append(top, n)
			return
		}
		stack[len(stack)-1].AppendChild(n)
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var syntaxErr *xml.SyntaxError
			if errors.As(err, &syntaxErr) {
				return nil, &SyntaxError{Line: syntaxErr.Line, Msg: syntaxErr.Msg}
			}
			return nil, &SyntaxError{Msg: err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			n := models.NewElement(qualifiedName(t.Name))
			for _, a := range t.Attr {
				n.SetAttr(qualifiedName(a.Name), a.Value)
			}
			appendNode(n)
			stack = append(stack, n)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			text := string(t)
			if len(stack) == 0 && strings.TrimSpace(text) == "" {
				continue
			}
			parent := top
			if len(stack) > 0 {
				parent = stack[len(stack)-1].Children
			}
			if last := len(parent) - 1; last >= 0 && parent[last].Type == models.TextNode {
				parent[last].Text += text
				continue
			}
			appendNode(models.NewText(text))
		}
	}

	if len(stack) != 0 {
		return nil, &SyntaxError{Msg: fmt.Sprintf("unclosed element %q", stack[len(stack)-1].Name)}
	}
	return top, nil
}

// qualifiedName restores the prefix form of names the decoder resolved,
// e.g. xml:lang, and keeps xmlns as a plain attribute.
func qualifiedName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	case "http://www.w3.org/XML/1998/namespace", "xml":
		return "xml:" + name.Local
	default:
		return name.Local
	}
}
