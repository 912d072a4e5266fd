// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package sanitizer turns arbitrary editor HTML into a balanced node tree
// free of active content.
package sanitizer

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Fragment is sanitized body content.
type Fragment struct {
	// BodyAttrs are the surviving attributes of <body>; the editor keeps
	// the en-note attributes there.
	BodyAttrs []html.Attribute
	Nodes     []*html.Node
}

// HTMLSanitizer is stateless and safe for concurrent use.
type HTMLSanitizer struct {
	policy *bluemonday.Policy
}

// Elements outside of ENML that editors commonly produce. They survive
// sanitizing so skip rules can match them; grammar enforcement unwraps them
// afterwards.
var editorElements = []string{
	"article", "aside", "details", "figcaption", "figure", "footer", "header",
	"main", "mark", "nav", "section", "summary", "time",
}

// NewHTMLSanitizer builds the policy from the ENML grammar.
func NewHTMLSanitizer() *HTMLSanitizer {
	return &HTMLSanitizer{policy: newPolicy(enml.Default())}
}

var customElement = regexp.MustCompile(`^[a-z]+-[a-z0-9-]*$`)

func newPolicy(g *enml.Grammar) *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	elements := g.Elements()
	for _, name := range elements {
		rule, _ := g.Rule(name)
		p.AllowElements(name)
		if len(rule.Attributes) == 0 {
			continue
		}
		attrs := make([]string, 0, len(rule.Attributes))
		for a := range rule.Attributes {
			attrs = append(attrs, a)
		}
		p.AllowAttrs(attrs...).OnElements(name)
	}
	// <body> is sanitized as a div and carries the en-note attributes
	if note, ok := g.Rule("en-note"); ok {
		for a := range note.Attributes {
			p.AllowAttrs(a).OnElements("div")
		}
	}
	p.AllowElements(editorElements...)
	p.AllowElementsMatching(customElement)

	// bluemonday drops bare <a>, <en-todo> and friends unless told otherwise
	p.AllowNoAttrs().OnElements(elements...)
	p.AllowNoAttrs().OnElements(editorElements...)
	p.AllowNoAttrs().OnElementsMatching(customElement)

	// checkbox of a rendered to-do
	p.AllowElements("input")
	p.AllowAttrs("type", "checked").OnElements("input")

	// editor scaffolding attributes, needed by skip rules and collapsing
	p.AllowAttrs("class", "id", "style", "title", "lang", "dir", "contenteditable").Globally()
	p.AllowDataAttributes()

	p.RequireParseableURLs(true)
	p.AllowURLSchemes("http", "https", "mailto", "ftp", "file", "evernote")
	p.AllowRelativeURLs(true)
	p.AllowDataURIImages()

	return p
}

// Sanitize parses an editor document, removes active content and returns
// the body as a node list. Both full documents and bare body markup are
// accepted.
func (s *HTMLSanitizer) Sanitize(input string) (*Fragment, error) {
	if !utf8.ValidString(input) {
		return nil, ErrInvalidUTF8
	}

	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	body := findBody(doc)
	if body == nil {
		return nil, fmt.Errorf("%w: no body", ErrParse)
	}

	// Body is rendered as a div so its attributes pass the same policy.
	body.Data, body.DataAtom = "div", atom.Div
	var buf bytes.Buffer
	if err = html.Render(&buf, body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	clean := s.policy.Sanitize(buf.String())

	nodes, err := html.ParseFragment(strings.NewReader(clean), &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}

	for _, n := range nodes {
		if n.Type == html.ElementNode && n.DataAtom == atom.Div {
			return &Fragment{BodyAttrs: n.Attr, Nodes: detach(n)}, nil
		}
	}
	return &Fragment{}, nil
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

func detach(parent *html.Node) []*html.Node {
	var out []*html.Node
	for c := parent.FirstChild; c != nil; {
		next := c.NextSibling
		parent.RemoveChild(c)
		out = append(out, c)
		c = next
	}
	return out
}
