// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "strings"

// NodeType distinguishes element nodes from text nodes in a note content tree.
type NodeType int

const (
	// ElementNode is a tag with attributes and children.
	ElementNode NodeType = iota + 1

	// TextNode carries character data in Text. It never has children.
	TextNode
)

// Well-known ENML element names.
const (
	TagNote  = "en-note"
	TagTodo  = "en-todo"
	TagMedia = "en-media"
	TagCrypt = "en-crypt"
)

// Attr is a single attribute of an element. Names are unique within an element.
type Attr struct {
	Name  string
	Value string
}

// Node is a node of an ordered ENML tree.
type Node struct {
	Type     NodeType
	Name     string
	Attrs    []Attr
	Children []*Node
	Text     string
}

// Document is a parsed ENML note. Root is always the en-note element.
// Conversions never mutate a Document; they build a new one.
type Document struct {
	Root *Node
}

// NewElement returns an element node with the given name and attributes.
func NewElement(name string, attrs ...Attr) *Node {
	return &Node{Type: ElementNode, Name: name, Attrs: attrs}
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// IsElement reports whether n is an element with the given name.
func (n *Node) IsElement(name string) bool {
	return n != nil && n.Type == ElementNode && n.Name == name
}

// Attr returns the value of the named attribute and whether it is present.
func (n *Node) Attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr adds or replaces the named attribute keeping the original position.
func (n *Node) SetAttr(name, value string) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			n.Attrs[i].Value = value
			return
		}
	}
	n.Attrs = append(n.Attrs, Attr{Name: name, Value: value})
}

// AppendChild appends child to n's children.
func (n *Node) AppendChild(child *Node) {
	n.Children = append(n.Children, child)
}

// InnerText concatenates the text of all descendant text nodes.
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	if n.Type == TextNode {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.InnerText())
	}
	return b.String()
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{Type: n.Type, Name: n.Name, Text: n.Text}
	if len(n.Attrs) > 0 {
		out.Attrs = append([]Attr(nil), n.Attrs...)
	}
	for _, c := range n.Children {
		out.Children = append(out.Children, c.Clone())
	}
	return out
}

// Equal reports whether n and other describe the same tree. Attribute order is
// ignored and adjacent text nodes are compared as one.
func (n *Node) Equal(other *Node) bool {
	if n == nil || other == nil {
		return n == other
	}
	if n.Type != other.Type {
		return false
	}
	if n.Type == TextNode {
		return n.Text == other.Text
	}
	if n.Name != other.Name || len(n.Attrs) != len(other.Attrs) {
		return false
	}
	for _, a := range n.Attrs {
		v, ok := other.Attr(a.Name)
		if !ok || v != a.Value {
			return false
		}
	}

	left, right := coalesceText(n.Children), coalesceText(other.Children)
	if len(left) != len(right) {
		return false
	}
	for i := range left {
		if !left[i].Equal(right[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two documents have equal trees.
func (d *Document) Equal(other *Document) bool {
	if d == nil || other == nil {
		return d == other
	}
	return d.Root.Equal(other.Root)
}

// coalesceText merges runs of adjacent text nodes and drops empty ones.
func coalesceText(nodes []*Node) []*Node {
	out := make([]*Node, 0, len(nodes))
	for _, c := range nodes {
		if c.Type != TextNode {
			out = append(out, c)
			continue
		}
		if c.Text == "" {
			continue
		}
		if last := len(out) - 1; last >= 0 && out[last].Type == TextNode {
			out[last] = NewText(out[last].Text + c.Text)
			continue
		}
		out = append(out, c)
	}
	return out
}
