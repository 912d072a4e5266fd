// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"

	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/MKhiriev/go-enml/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, content string) *models.Document {
	t.Helper()
	doc, err := enml.Parse(content)
	require.NoError(t, err)
	return doc
}

func TestENMLValidator_Issues(t *testing.T) {
	v := NewENMLValidator()

	tests := []struct {
		name    string
		content string
		want    []models.ValidationIssue
	}{
		{
			name:    "valid document",
			content: `<en-note><div style="x">a<b>b</b><en-todo checked="true"/></div><en-media type="image/png" hash="abc"/><en-crypt hint="h">RU5DMA==</en-crypt></en-note>`,
		},
		{
			name:    "script is forbidden",
			content: `<en-note><div><script>alert(1)</script></div></en-note>`,
			want: []models.ValidationIssue{
				{Path: "/en-note[0]/div[0]/script[0]", Element: "script", Reason: "forbidden element"},
			},
		},
		{
			name:    "unknown element",
			content: `<en-note><div/><div><blinky/></div></en-note>`,
			want: []models.ValidationIssue{
				{Path: "/en-note[0]/div[1]/blinky[0]", Element: "blinky", Reason: "unknown element"},
			},
		},
		{
			name:    "forbidden and undeclared attributes",
			content: `<en-note><p class="x" onclick="y" href="z">t</p></en-note>`,
			want: []models.ValidationIssue{
				{Path: "/en-note[0]/p[0]", Element: "p", Attribute: "class", Reason: "forbidden attribute"},
				{Path: "/en-note[0]/p[0]", Element: "p", Attribute: "onclick", Reason: "forbidden attribute"},
				{Path: "/en-note[0]/p[0]", Element: "p", Attribute: "href", Reason: "attribute not allowed on p"},
			},
		},
		{
			name:    "media without hash",
			content: `<en-note><en-media type="image/png"/></en-note>`,
			want: []models.ValidationIssue{
				{Path: "/en-note[0]/en-media[0]", Element: "en-media", Attribute: "hash", Reason: "missing required attribute"},
			},
		},
		{
			name:    "empty encrypted block",
			content: `<en-note><en-crypt/></en-note>`,
			want: []models.ValidationIssue{
				{Path: "/en-note[0]/en-crypt[0]", Element: "en-crypt", Reason: "encrypted block has no ciphertext"},
			},
		},
		{
			name:    "content model",
			content: `<en-note><ul><div>x</div></ul><en-todo>text</en-todo></en-note>`,
			want: []models.ValidationIssue{
				{Path: "/en-note[0]/ul[0]", Element: "ul", Reason: "element div not allowed in ul"},
				{Path: "/en-note[0]/en-todo[0]", Element: "en-todo", Reason: "text not allowed in en-todo"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Issues(mustParse(t, tt.content))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestENMLValidator_Root(t *testing.T) {
	v := NewENMLValidator()

	issues := v.Issues(nil)
	require.Len(t, issues, 1)
	assert.Equal(t, "/", issues[0].Path)

	issues = v.Issues(&models.Document{Root: models.NewElement("div")})
	require.NotEmpty(t, issues)
	assert.Equal(t, "root element must be en-note", issues[0].Reason)
}

func TestENMLValidator_Validate(t *testing.T) {
	v := NewENMLValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, `<en-note><p>ok</p></en-note>`))

	err := v.Validate(ctx, `<en-note><script/></en-note>`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidENML)
	assert.Contains(t, err.Error(), "/en-note[0]/script[0]: forbidden element")

	doc := mustParse(t, `<en-note><p class="x">t</p></en-note>`)
	assert.Error(t, v.Validate(ctx, doc, FieldAttributes))
	assert.NoError(t, v.Validate(ctx, *doc, FieldElements, FieldContent))

	assert.ErrorIs(t, v.Validate(ctx, doc, "bogus"), ErrUnknownField)
	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)

	var syntaxErr *enml.SyntaxError
	assert.ErrorAs(t, v.Validate(ctx, `<en-note>`), &syntaxErr)
}
