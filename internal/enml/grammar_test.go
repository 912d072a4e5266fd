// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package enml

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// TestGrammar_MatchesDTD verifies that the static grammar table and the
// embedded DTD describe exactly the same language.
func TestGrammar_MatchesDTD(t *testing.T) {
	fromDTD, err := ParseDTD(SchemaDTD)
	require.NoError(t, err)

	table := Default()
	assert.Equal(t, fromDTD.Elements(), table.Elements(), "element sets differ")

	for _, name := range table.Elements() {
		want, _ := fromDTD.Rule(name)
		got, _ := table.Rule(name)

		assert.Equal(t, keys(want.Attributes), keys(got.Attributes), "attributes of %s", name)
		assert.ElementsMatch(t, want.Required, got.Required, "required attributes of %s", name)
		assert.Equal(t, len(want.Defaults), len(got.Defaults), "defaults of %s", name)
		for attr, v := range want.Defaults {
			assert.Equal(t, v, got.Defaults[attr], "default of %s@%s", name, attr)
		}
		assert.Equal(t, want.Content, got.Content, "content class of %s", name)
		assert.Equal(t, keys(want.Children), keys(got.Children), "children of %s", name)
	}
}

func TestGrammar_ForbiddenMarkup(t *testing.T) {
	g := Default()

	for _, el := range []string{"script", "iframe", "form", "input", "style", "object"} {
		assert.False(t, g.IsAllowedElement(el), el)
		assert.True(t, g.IsForbiddenElement(el), el)
	}

	assert.False(t, g.IsAllowedAttribute("div", "id"))
	assert.False(t, g.IsAllowedAttribute("div", "class"))
	assert.False(t, g.IsAllowedAttribute("div", "onclick"))
	assert.False(t, g.IsAllowedAttribute("a", "onMouseOver"))
	assert.False(t, g.IsAllowedAttribute("img", "tabindex"))
	assert.True(t, g.IsAllowedAttribute("div", "style"))
	assert.True(t, g.IsAllowedAttribute("a", "href"))
	assert.True(t, g.IsAllowedAttribute("en-crypt", "hint"))
	assert.False(t, g.IsAllowedAttribute("en-crypt", "style"))
	assert.False(t, g.IsAllowedAttribute("blink", "style"))
}

func TestGrammar_ApplicationElements(t *testing.T) {
	g := Default()

	media, ok := g.Rule("en-media")
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"type", "hash"}, media.Required)
	assert.Equal(t, ContentEmpty, media.Content)

	crypt, ok := g.Rule("en-crypt")
	require.True(t, ok)
	assert.Equal(t, ContentText, crypt.Content)
	assert.Equal(t, "RC2", crypt.Defaults["cipher"])
	assert.Equal(t, "64", crypt.Defaults["length"])

	todo, ok := g.Rule("en-todo")
	require.True(t, ok)
	assert.True(t, todo.AllowsAttribute("checked"))
	assert.False(t, todo.AllowsChild("b"))

	ul, _ := g.Rule("ul")
	assert.True(t, ul.AllowsChild("li"))
	assert.False(t, ul.AllowsChild("div"))
}

func TestParseDTD_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{name: "empty", src: ""},
		{name: "undefined entity", src: `<!ELEMENT x %nope;>`},
		{name: "attlist for unknown element", src: `<!ELEMENT x EMPTY><!ATTLIST y a CDATA #IMPLIED>`},
		{name: "bad default", src: `<!ELEMENT x EMPTY><!ATTLIST x a CDATA #WHATEVER>`},
		{name: "truncated", src: `<!ELEMENT x EMPTY><!ATTLIST x a CDATA>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDTD(tt.src)
			assert.Error(t, err)
		})
	}
}
