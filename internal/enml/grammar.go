// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package enml holds the ENML grammar and the XML reader and writer for
// persisted note content.
//
// The grammar is a static table. It must stay in agreement with the embedded
// ENML DTD ([SchemaDTD]); [ParseDTD] derives a grammar from the DTD so tests
// can compare the two.
package enml

import (
	"sort"
	"strings"
)

// Content classifies what an element may contain.
type Content int

const (
	// ContentFlow allows text and any element listed in Children.
	ContentFlow Content = iota + 1

	// ContentElements allows only the listed child elements (and whitespace).
	ContentElements

	// ContentText allows character data only.
	ContentText

	// ContentEmpty allows nothing.
	ContentEmpty
)

// ElementRule is the grammar entry of one element.
type ElementRule struct {
	Attributes map[string]struct{}
	Required   []string
	Defaults   map[string]string
	Content    Content
	Children   map[string]struct{}
}

// AllowsAttribute reports whether name is declared for the element.
func (r ElementRule) AllowsAttribute(name string) bool {
	_, ok := r.Attributes[name]
	return ok
}

// AllowsChild reports whether an element named child may appear inside.
func (r ElementRule) AllowsChild(child string) bool {
	if r.Content == ContentEmpty || r.Content == ContentText {
		return false
	}
	_, ok := r.Children[child]
	return ok
}

// Grammar is the allow-list of ENML elements and attributes.
// A Grammar is read-only after construction and safe to share.
type Grammar struct {
	elements          map[string]ElementRule
	forbiddenElements map[string]struct{}
	forbiddenAttrs    map[string]struct{}
}

// Rule returns the grammar entry of the element.
func (g *Grammar) Rule(element string) (ElementRule, bool) {
	r, ok := g.elements[element]
	return r, ok
}

// IsAllowedElement reports whether element may appear in ENML.
func (g *Grammar) IsAllowedElement(element string) bool {
	_, ok := g.elements[element]
	return ok
}

// IsForbiddenElement reports whether element is explicitly banned
// (as opposed to merely unknown).
func (g *Grammar) IsForbiddenElement(element string) bool {
	_, ok := g.forbiddenElements[element]
	return ok
}

// IsAllowedAttribute reports whether attr may appear on element.
// Event handlers and the globally forbidden attributes are never allowed.
func (g *Grammar) IsAllowedAttribute(element, attr string) bool {
	if g.IsForbiddenAttribute(attr) {
		return false
	}
	r, ok := g.elements[element]
	if !ok {
		return false
	}
	return r.AllowsAttribute(attr)
}

// IsForbiddenAttribute reports whether attr is banned on every element.
func (g *Grammar) IsForbiddenAttribute(attr string) bool {
	attr = strings.ToLower(attr)
	if strings.HasPrefix(attr, "on") {
		return true
	}
	_, ok := g.forbiddenAttrs[attr]
	return ok
}

// Elements returns the sorted names of all allowed elements.
func (g *Grammar) Elements() []string {
	out := make([]string, 0, len(g.elements))
	for name := range g.elements {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

var forbiddenElements = []string{
	"applet", "base", "basefont", "bgsound", "blink", "body", "button", "dir",
	"embed", "fieldset", "form", "frame", "frameset", "head", "html", "iframe",
	"ilayer", "input", "isindex", "label", "layer", "legend", "link", "marquee",
	"menu", "meta", "noframes", "noscript", "object", "optgroup", "option",
	"param", "plaintext", "script", "select", "style", "textarea", "xml",
}

var forbiddenAttrs = []string{"id", "class", "accesskey", "data", "dynsrc", "tabindex"}

var (
	coreAttrs  = []string{"style", "title"}
	i18nAttrs  = []string{"lang", "xml:lang", "dir"}
	cellHAlign = []string{"align", "char", "charoff"}
	cellVAlign = []string{"valign"}

	inlineElements = []string{
		"a", "abbr", "acronym", "b", "bdo", "big", "br", "cite", "code", "dfn",
		"del", "em", "en-crypt", "en-media", "en-todo", "font", "i", "img", "ins",
		"kbd", "map", "q", "s", "samp", "small", "span", "strike", "strong", "sub",
		"sup", "tt", "u", "var",
	}
	blockElements = []string{
		"address", "blockquote", "center", "div", "dl", "h1", "h2", "h3", "h4",
		"h5", "h6", "hr", "ol", "p", "pre", "table", "ul", "xmp",
	}
)

func set(groups ...[]string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, g := range groups {
		for _, v := range g {
			out[v] = struct{}{}
		}
	}
	return out
}

func attrs(extra ...string) []string {
	return append(append(append([]string{}, coreAttrs...), i18nAttrs...), extra...)
}

func flow(attributes []string, defaults map[string]string) ElementRule {
	return ElementRule{
		Attributes: set(attributes),
		Defaults:   defaults,
		Content:    ContentFlow,
		Children:   set(inlineElements, blockElements),
	}
}

func onlyChildren(attributes []string, defaults map[string]string, children ...string) ElementRule {
	return ElementRule{
		Attributes: set(attributes),
		Defaults:   defaults,
		Content:    ContentElements,
		Children:   set(children),
	}
}

func empty(attributes []string, defaults map[string]string, required ...string) ElementRule {
	return ElementRule{
		Attributes: set(attributes),
		Required:   required,
		Defaults:   defaults,
		Content:    ContentEmpty,
	}
}

func cellAttrs(extra ...string) []string {
	return attrs(append(append(append([]string{}, cellHAlign...), cellVAlign...), extra...)...)
}

func newDefaultGrammar() *Grammar {
	elements := map[string]ElementRule{
		"en-note": flow(attrs("bgcolor", "text", "xmlns"), nil),
		"en-crypt": {
			Attributes: set([]string{"hint", "cipher", "length"}),
			Defaults:   map[string]string{"cipher": "RC2", "length": "64"},
			Content:    ContentText,
		},
		"en-todo": empty([]string{"checked"}, map[string]string{"checked": "false"}),
		"en-media": empty(attrs("type", "hash", "height", "width", "usemap", "align",
			"border", "hspace", "vspace", "longdesc", "alt"), nil, "type", "hash"),

		"address":    flow(attrs(), nil),
		"center":     flow(attrs(), nil),
		"blockquote": flow(attrs("cite"), nil),
		"pre":        flow(attrs("width", "xml:space"), nil),
		"xmp":        flow(attrs(), nil),
		"hr":         empty(attrs("align", "noshade", "size", "width"), nil),

		"ul": onlyChildren(attrs("type", "compact"), nil, "li"),
		"ol": onlyChildren(attrs("type", "compact", "start"), nil, "li"),
		"li": flow(attrs("type", "value"), nil),
		"dl": onlyChildren(attrs("compact"), nil, "dt", "dd"),
		"dt": flow(attrs(), nil),
		"dd": flow(attrs(), nil),

		"a": flow(attrs("charset", "type", "name", "href", "hreflang", "rel", "rev",
			"shape", "coords", "target"), map[string]string{"shape": "rect"}),
		"bdo":  flow(attrs(), nil),
		"br":   empty(append([]string{"clear"}, coreAttrs...), map[string]string{"clear": "none"}),
		"q":    flow(attrs("cite"), nil),
		"ins":  flow(attrs("cite", "datetime"), nil),
		"del":  flow(attrs("cite", "datetime"), nil),
		"font": flow(attrs("size", "color", "face"), nil),

		"img": empty(attrs("src", "alt", "name", "longdesc", "height", "width", "usemap",
			"ismap", "align", "border", "hspace", "vspace"), nil, "src"),
		"map":  onlyChildren(append([]string{"title", "name"}, i18nAttrs...), nil, "area"),
		"area": empty(attrs("shape", "coords", "href", "nohref", "alt", "target"), map[string]string{"shape": "rect"}, "alt"),

		"table": onlyChildren(attrs("summary", "width", "border", "frame", "rules",
			"cellspacing", "cellpadding", "align", "bgcolor"), nil,
			"caption", "col", "colgroup", "thead", "tfoot", "tbody", "tr"),
		"caption":  flow(attrs("align"), nil),
		"colgroup": onlyChildren(cellAttrs("span", "width"), map[string]string{"span": "1"}, "col"),
		"col":      empty(cellAttrs("span", "width"), map[string]string{"span": "1"}),
		"thead":    onlyChildren(cellAttrs(), nil, "tr"),
		"tfoot":    onlyChildren(cellAttrs(), nil, "tr"),
		"tbody":    onlyChildren(cellAttrs(), nil, "tr"),
		"tr":       onlyChildren(cellAttrs("bgcolor"), nil, "th", "td"),
		"th": flow(cellAttrs("abbr", "rowspan", "colspan", "nowrap", "bgcolor", "width", "height"),
			map[string]string{"rowspan": "1", "colspan": "1"}),
		"td": flow(cellAttrs("abbr", "rowspan", "colspan", "nowrap", "bgcolor", "width", "height"),
			map[string]string{"rowspan": "1", "colspan": "1"}),
	}

	for _, name := range []string{"div", "p", "h1", "h2", "h3", "h4", "h5", "h6"} {
		elements[name] = flow(attrs("align"), nil)
	}
	for _, name := range []string{"span", "em", "strong", "dfn", "code", "samp", "kbd",
		"var", "cite", "abbr", "acronym", "sub", "sup", "tt", "i", "b", "big", "small",
		"u", "s", "strike"} {
		elements[name] = flow(attrs(), nil)
	}

	return &Grammar{
		elements:          elements,
		forbiddenElements: set(forbiddenElements),
		forbiddenAttrs:    set(forbiddenAttrs),
	}
}

var defaultGrammar = newDefaultGrammar()

// Default returns the shared ENML grammar.
func Default() *Grammar {
	return defaultGrammar
}
