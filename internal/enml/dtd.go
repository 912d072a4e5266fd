// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package enml

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"
)

// SchemaDTD is the authoritative ENML 2 document type definition.
//
//go:embed enml2.dtd
var SchemaDTD string

var (
	dtdComment   = regexp.MustCompile(`(?s)<!--.*?-->`)
	dtdEntity    = regexp.MustCompile(`(?s)<!ENTITY\s+%\s+([\w.-]+)\s+"([^"]*)"\s*>`)
	dtdElement   = regexp.MustCompile(`(?s)<!ELEMENT\s+([\w:.-]+)\s+(.*?)>`)
	dtdAttlist   = regexp.MustCompile(`(?s)<!ATTLIST\s+([\w:.-]+)\s+(.*?)>`)
	dtdEntityRef = regexp.MustCompile(`%([\w.-]+);`)
	dtdName      = regexp.MustCompile(`[A-Za-z][\w:.-]*`)
)

// ParseDTD derives a grammar from DTD source: element names, content
// classes, declared and required attributes, and literal attribute defaults.
// #FIXED values are not treated as defaults. Forbidden element and attribute
// lists are not part of a DTD and are taken from the default grammar.
func ParseDTD(src string) (*Grammar, error) {
	src = dtdComment.ReplaceAllString(src, "")

	entities := make(map[string]string)
	for _, m := range dtdEntity.FindAllStringSubmatch(src, -1) {
		entities[m[1]] = m[2]
	}
	expand := func(s string) (string, error) {
		for i := 0; i < 16; i++ {
			if !dtdEntityRef.MatchString(s) {
				return s, nil
			}
			var missing string
			s = dtdEntityRef.ReplaceAllStringFunc(s, func(ref string) string {
				name := ref[1 : len(ref)-1]
				v, ok := entities[name]
				if !ok {
					missing = name
				}
				return v
			})
			if missing != "" {
				return "", fmt.Errorf("undefined parameter entity %q", missing)
			}
		}
		return "", fmt.Errorf("parameter entity expansion too deep")
	}

	elements := make(map[string]ElementRule)
	for _, m := range dtdElement.FindAllStringSubmatch(src, -1) {
		model, err := expand(m[2])
		if err != nil {
			return nil, fmt.Errorf("element %s: %w", m[1], err)
		}
		elements[m[1]] = parseContentModel(model)
	}

	for _, m := range dtdAttlist.FindAllStringSubmatch(src, -1) {
		rule, ok := elements[m[1]]
		if !ok {
			return nil, fmt.Errorf("attribute list for undeclared element %q", m[1])
		}
		body, err := expand(m[2])
		if err != nil {
			return nil, fmt.Errorf("attlist %s: %w", m[1], err)
		}
		if err := parseAttlist(&rule, tokenizeAttlist(body)); err != nil {
			return nil, fmt.Errorf("attlist %s: %w", m[1], err)
		}
		elements[m[1]] = rule
	}

	if len(elements) == 0 {
		return nil, fmt.Errorf("no element declarations found")
	}

	return &Grammar{
		elements:          elements,
		forbiddenElements: set(forbiddenElements),
		forbiddenAttrs:    set(forbiddenAttrs),
	}, nil
}

func parseContentModel(model string) ElementRule {
	model = strings.TrimSpace(model)
	rule := ElementRule{Attributes: map[string]struct{}{}}
	if model == "EMPTY" {
		rule.Content = ContentEmpty
		return rule
	}

	children := make(map[string]struct{})
	for _, name := range dtdName.FindAllString(strings.ReplaceAll(model, "#PCDATA", ""), -1) {
		children[name] = struct{}{}
	}

	switch {
	case strings.Contains(model, "#PCDATA") && len(children) == 0:
		rule.Content = ContentText
	case strings.Contains(model, "#PCDATA"):
		rule.Content = ContentFlow
		rule.Children = children
	default:
		rule.Content = ContentElements
		rule.Children = children
	}
	return rule
}

// tokenizeAttlist splits an attribute list body into whitespace separated
// tokens, keeping parenthesised enumerations and quoted literals whole.
func tokenizeAttlist(body string) []string {
	var (
		tokens []string
		cur    strings.Builder
		depth  int
		quote  rune
	)
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}
	for _, r := range body {
		switch {
		case quote != 0:
			cur.WriteRune(r)
			if r == quote {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
			cur.WriteRune(r)
		case r == '(':
			depth++
			cur.WriteRune(r)
		case r == ')':
			depth--
			cur.WriteRune(r)
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return tokens
}

func parseAttlist(rule *ElementRule, tokens []string) error {
	for i := 0; i < len(tokens); {
		if i+2 >= len(tokens) {
			return fmt.Errorf("truncated attribute definition near %q", tokens[i])
		}
		name, def := tokens[i], tokens[i+2]
		i += 3

		rule.Attributes[name] = struct{}{}
		switch {
		case def == "#REQUIRED":
			rule.Required = append(rule.Required, name)
		case def == "#IMPLIED":
		case def == "#FIXED":
			if i >= len(tokens) {
				return fmt.Errorf("attribute %q: #FIXED without value", name)
			}
			i++
		case strings.HasPrefix(def, `"`) || strings.HasPrefix(def, `'`):
			if rule.Defaults == nil {
				rule.Defaults = make(map[string]string)
			}
			rule.Defaults[name] = strings.Trim(def, `"'`)
		default:
			return fmt.Errorf("attribute %q: unexpected default %q", name, def)
		}
	}
	return nil
}
