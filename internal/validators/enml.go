// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/MKhiriev/go-enml/models"
)

// Field names understood by ENMLValidator.
const (
	// FieldRoot checks that the document root is en-note.
	FieldRoot = "root"

	// FieldElements reports unknown and forbidden elements.
	FieldElements = "elements"

	// FieldAttributes reports attributes not allowed on their element.
	FieldAttributes = "attributes"

	// FieldRequired reports missing required attributes.
	FieldRequired = "required"

	// FieldContent reports children an element may not contain.
	FieldContent = "content"
)

var allENMLFields = []string{FieldRoot, FieldElements, FieldAttributes, FieldRequired, FieldContent}

// ENMLValidator walks a document and reports every deviation from the
// grammar. It is stateless and safe for concurrent use.
type ENMLValidator struct {
	grammar *enml.Grammar
}

// NewENMLValidator returns a validator for the default ENML grammar.
func NewENMLValidator() *ENMLValidator {
	return &ENMLValidator{grammar: enml.Default()}
}

// Validate accepts a *models.Document, models.Document or raw ENML string.
// It returns nil for a valid document, otherwise ErrInvalidENML joined with
// one error per issue. Unparseable content yields the parse error.
func (v *ENMLValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var doc *models.Document
	switch value := obj.(type) {
	case *models.Document:
		doc = value
	case models.Document:
		doc = &value
	case string:
		parsed, err := enml.Parse(value)
		if err != nil {
			return err
		}
		doc = parsed
	default:
		return ErrUnsupportedType
	}

	for _, f := range fields {
		if !slices.Contains(allENMLFields, f) {
			return ErrUnknownField
		}
	}

	issues := v.issues(doc, fields)
	if len(issues) == 0 {
		return nil
	}
	errs := make([]error, 0, len(issues)+1)
	errs = append(errs, ErrInvalidENML)
	for _, issue := range issues {
		errs = append(errs, errors.New(issue.String()))
	}
	return errors.Join(errs...)
}

// Issues returns every grammar deviation of doc. An empty result means the
// document is valid.
func (v *ENMLValidator) Issues(doc *models.Document) []models.ValidationIssue {
	return v.issues(doc, nil)
}

func (v *ENMLValidator) issues(doc *models.Document, fields []string) []models.ValidationIssue {
	if len(fields) == 0 {
		fields = allENMLFields
	}
	w := &walker{grammar: v.grammar}
	for _, f := range fields {
		w.checks |= 1 << slices.Index(allENMLFields, f)
	}

	if doc == nil || doc.Root == nil {
		w.report("/", "", "", "missing en-note root element", FieldRoot)
		return w.issues
	}
	if !doc.Root.IsElement(models.TagNote) {
		w.report("/"+doc.Root.Name+"[0]", doc.Root.Name, "", "root element must be en-note", FieldRoot)
	}
	w.walk(doc.Root, "/"+doc.Root.Name+"[0]")
	return w.issues
}

type walker struct {
	grammar *enml.Grammar
	checks  int
	issues  []models.ValidationIssue
}

func (w *walker) enabled(field string) bool {
	return w.checks&(1<<slices.Index(allENMLFields, field)) != 0
}

func (w *walker) report(path, element, attr, reason, field string) {
	if !w.enabled(field) {
		return
	}
	w.issues = append(w.issues, models.ValidationIssue{
		Path:      path,
		Element:   element,
		Attribute: attr,
		Reason:    reason,
	})
}

func (w *walker) walk(n *models.Node, path string) {
	rule, known := w.grammar.Rule(n.Name)
	switch {
	case w.grammar.IsForbiddenElement(n.Name):
		w.report(path, n.Name, "", "forbidden element", FieldElements)
	case !known:
		w.report(path, n.Name, "", "unknown element", FieldElements)
	}

	if known {
		w.checkAttributes(n, rule, path)
		w.checkContent(n, rule, path)
	}

	counts := make(map[string]int)
	for _, c := range n.Children {
		if c.Type != models.ElementNode {
			continue
		}
		childPath := fmt.Sprintf("%s/%s[%d]", path, c.Name, counts[c.Name])
		counts[c.Name]++
		w.walk(c, childPath)
	}
}

func (w *walker) checkAttributes(n *models.Node, rule enml.ElementRule, path string) {
	for _, a := range n.Attrs {
		switch {
		case w.grammar.IsForbiddenAttribute(a.Name):
			w.report(path, n.Name, a.Name, "forbidden attribute", FieldAttributes)
		case !rule.AllowsAttribute(a.Name):
			w.report(path, n.Name, a.Name, "attribute not allowed on "+n.Name, FieldAttributes)
		}
	}
	for _, req := range rule.Required {
		if v, ok := n.Attr(req); !ok || strings.TrimSpace(v) == "" {
			w.report(path, n.Name, req, "missing required attribute", FieldRequired)
		}
	}
	if n.IsElement(models.TagCrypt) && strings.TrimSpace(n.InnerText()) == "" {
		w.report(path, n.Name, "", "encrypted block has no ciphertext", FieldRequired)
	}
}

func (w *walker) checkContent(n *models.Node, rule enml.ElementRule, path string) {
	for _, c := range n.Children {
		if c.Type == models.TextNode {
			if rule.Content == enml.ContentEmpty || rule.Content == enml.ContentElements {
				if strings.TrimSpace(c.Text) != "" {
					w.report(path, n.Name, "", "text not allowed in "+n.Name, FieldContent)
					return
				}
			}
			continue
		}
		if !rule.AllowsChild(c.Name) && w.grammar.IsAllowedElement(c.Name) {
			w.report(path, n.Name, "", fmt.Sprintf("element %s not allowed in %s", c.Name, n.Name), FieldContent)
		}
	}
}
