// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

import (
	"context"
	"strings"

	"github.com/MKhiriev/go-enml/internal/cache"
	"github.com/MKhiriev/go-enml/internal/crypto"
	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/models"
	"golang.org/x/net/html"
)

// Result is the outcome of ToENML. Warnings list grammar deviations of
// Document; they do not prevent it from being returned.
type Result struct {
	Document *models.Document
	Warnings []models.ValidationIssue
}

// ToENML converts editor markup back into ENML.
//
// The markup is sanitized, skip rules are applied (first matching rule
// wins), editor scaffolding is collapsed into en-crypt, en-todo and
// en-media, and markup outside the grammar is dropped or unwrapped.
//
// A decrypted block whose text is unchanged keeps its original ciphertext.
// An edited block is re-encrypted through dc. Failing that is a
// *ReencryptionError; unrecoverable markup is a *ParseError.
func (c *ENMLConverter) ToENML(ctx context.Context, markup string, dc *cache.DecryptedTextCache, skipRules []models.SkipHTMLElementRule, opts ...Option) (*Result, error) {
	frag, err := c.sanitizer.Sanitize(markup)
	if err != nil {
		return nil, &ParseError{Source: SourceHTML, Err: err}
	}

	w := &enmlWriter{
		conv:      c,
		cache:     dc,
		skipRules: skipRules,
		opts:      newOptions(opts),
		log:       logger.FromContext(ctx),
	}

	root := models.NewElement(models.TagNote)
	for _, a := range frag.BodyAttrs {
		if a.Namespace == "" && c.grammar.IsAllowedAttribute(models.TagNote, a.Key) {
			root.SetAttr(a.Key, a.Val)
		}
	}
	if root.Children, err = w.convertNodes(frag.Nodes); err != nil {
		return nil, err
	}

	doc := &models.Document{Root: root}
	warnings := c.validator.Issues(doc)
	if len(warnings) > 0 {
		w.log.Warn().Int("issues", len(warnings)).Msg("converted note deviates from ENML")
	}
	return &Result{Document: doc, Warnings: warnings}, nil
}

// enmlWriter holds the state of one ToENML call.
type enmlWriter struct {
	conv      *ENMLConverter
	cache     *cache.DecryptedTextCache
	skipRules []models.SkipHTMLElementRule
	opts      *options
	log       *logger.Logger
}

func (w *enmlWriter) convertNodes(nodes []*html.Node) ([]*models.Node, error) {
	var out []*models.Node
	for _, n := range nodes {
		converted, err := w.convertNode(n)
		if err != nil {
			return nil, err
		}
		out = appendMerged(out, converted...)
	}
	return out, nil
}

func (w *enmlWriter) convertNode(n *html.Node) ([]*models.Node, error) {
	switch n.Type {
	case html.TextNode:
		return []*models.Node{models.NewText(n.Data)}, nil
	case html.ElementNode:
	default:
		return nil, nil
	}

	tag, _ := getAttr(n, attrTag)

	// Encrypted content is exempt from skip rules: neither the ciphertext
	// nor the plaintext may be dropped or spliced into the note.
	if tag != tagDecrypted && tag != models.TagCrypt {
		if rule, ok := matchSkipRule(n, w.skipRules); ok {
			if !rule.IncludeElementContents {
				return nil, nil
			}
			return w.convertNodes(children(n))
		}
	}

	switch {
	case tag == tagDecrypted:
		return w.collapseDecrypted(n)
	case tag == models.TagCrypt:
		return w.collapseEncrypted(n)
	case tag == models.TagTodo || isCheckbox(n):
		return []*models.Node{todoElement(n)}, nil
	case tag == models.TagMedia:
		return w.collapseMedia(n), nil
	}

	name := n.Data
	if name == models.TagNote || !w.conv.grammar.IsAllowedElement(name) || impliedTableBody(n) {
		return w.convertNodes(children(n))
	}

	el := models.NewElement(name)
	for _, a := range n.Attr {
		if a.Namespace == "" && w.conv.grammar.IsAllowedAttribute(name, a.Key) {
			el.SetAttr(a.Key, a.Val)
		}
	}
	kids, err := w.convertNodes(children(n))
	if err != nil {
		return nil, err
	}
	el.Children = kids
	return []*models.Node{el}, nil
}

func (w *enmlWriter) collapseDecrypted(n *html.Node) ([]*models.Node, error) {
	b := blockFromMarkup(n)
	if b.Ciphertext == "" {
		return nil, &ReencryptionError{Err: ErrMissingCiphertext}
	}
	fillCipherDefaults(&b)

	inner, err := w.convertNodes(children(n))
	if err != nil {
		return nil, err
	}
	edited := enml.SerializeFragment(inner)

	entry, ok := w.conv.lookupBlock(w.cache, b, w.opts.passphrases, w.log)
	if !ok {
		return nil, &ReencryptionError{Ciphertext: b.Ciphertext, Err: cache.ErrEntryNotFound}
	}

	// An inline container cannot hold block markup. When the plaintext has
	// some, the editor split the container and the text is no longer
	// inside it.
	if n.Data != "div" && !plaintextFitsInline(entry.Plaintext) {
		return nil, &ReencryptionError{Ciphertext: b.Ciphertext, Err: ErrDetachedPlaintext}
	}

	if edited == canonicalPlaintext(entry.Plaintext) {
		out := b
		if entry.Ciphertext != b.Ciphertext {
			// the block was re-encrypted by an earlier save
			out.Ciphertext, out.Cipher, out.KeyLength = entry.Ciphertext, entry.Cipher, entry.KeyLength
		}
		fillCipherDefaults(&out)
		return []*models.Node{cryptElement(out)}, nil
	}

	updated, err := w.cache.Modify(b.Ciphertext, edited, w.opts.passphrases...)
	if err != nil {
		return nil, &ReencryptionError{Ciphertext: b.Ciphertext, Err: err}
	}
	w.log.Info().Int("block", b.Index).Str("cipher", updated.Cipher).Msg("edited block re-encrypted")

	out := b
	out.Ciphertext, out.Cipher, out.KeyLength = updated.Ciphertext, updated.Cipher, updated.KeyLength
	return []*models.Node{cryptElement(out)}, nil
}

// fillCipherDefaults applies the en-crypt defaults to metadata the markup
// lost.
func fillCipherDefaults(b *models.EncryptedBlock) {
	if b.Cipher == "" {
		b.Cipher = crypto.CipherRC2
	}
	if b.KeyLength == 0 {
		b.KeyLength = crypto.LegacyKeyLength
	}
}

func (w *enmlWriter) collapseEncrypted(n *html.Node) ([]*models.Node, error) {
	b := blockFromMarkup(n)
	if b.Ciphertext == "" {
		return nil, &ReencryptionError{Err: ErrMissingCiphertext}
	}
	fillCipherDefaults(&b)
	return []*models.Node{cryptElement(b)}, nil
}

// impliedTableBody reports whether n is a tbody the HTML parser added
// around rows that sit directly under table in the note.
func impliedTableBody(n *html.Node) bool {
	if n.Data != "tbody" || len(n.Attr) > 0 {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "tr" {
			continue
		}
		if _, ok := getAttr(c, attrTableRow); ok {
			return true
		}
	}
	return false
}

func isCheckbox(n *html.Node) bool {
	if n.Data != "input" {
		return false
	}
	t, _ := getAttr(n, "type")
	return strings.EqualFold(t, "checkbox")
}

// todoElement keeps the checked state only; the checkbox id is not persisted.
// An unchecked to-do keeps an explicit checked="false" when the note had one.
func todoElement(n *html.Node) *models.Node {
	el := models.NewElement(models.TagTodo)
	if _, checked := getAttr(n, "checked"); checked {
		el.SetAttr("checked", "true")
	} else if _, explicit := getAttr(n, attrTodoChecked); explicit {
		el.SetAttr("checked", "false")
	}
	return el
}

// collapseMedia references the resource by hash. Preview content such as
// src is never persisted.
func (w *enmlWriter) collapseMedia(n *html.Node) []*models.Node {
	hash, _ := getAttr(n, attrHash)
	mime, _ := getAttr(n, attrType)
	if strings.TrimSpace(hash) == "" {
		w.log.Warn().Msg("resource placeholder without hash dropped")
		return nil
	}

	el := models.NewElement(models.TagMedia, models.Attr{Name: "hash", Value: hash}, models.Attr{Name: "type", Value: mime})
	for _, a := range n.Attr {
		key := a.Key
		if n.Data != "img" {
			if !strings.HasPrefix(key, attrPassthrough) {
				continue
			}
			key = strings.TrimPrefix(key, attrPassthrough)
		}
		if key == "hash" || key == "type" || a.Namespace != "" {
			continue
		}
		if w.conv.grammar.IsAllowedAttribute(models.TagMedia, key) {
			el.SetAttr(key, a.Val)
		}
	}
	return []*models.Node{el}
}

// canonicalPlaintext is the form a plaintext takes after a trip through the
// editor, used to detect edits.
func canonicalPlaintext(p string) string {
	p = strings.ReplaceAll(p, "\r\n", "\n")
	p = strings.ReplaceAll(p, "\r", "\n")
	nodes, err := enml.ParseFragment(p)
	if err != nil {
		return enml.EscapeText(p)
	}
	return enml.SerializeFragment(canonicalNodes(nodes))
}

// canonicalNodes rewrites the application elements the way the editor
// round trip emits them.
func canonicalNodes(nodes []*models.Node) []*models.Node {
	out := make([]*models.Node, 0, len(nodes))
	for _, n := range nodes {
		if n.Type != models.ElementNode {
			out = append(out, n)
			continue
		}
		switch n.Name {
		case models.TagTodo:
			el := models.NewElement(models.TagTodo)
			if v, ok := n.Attr("checked"); strings.EqualFold(strings.TrimSpace(v), "true") {
				el.SetAttr("checked", "true")
			} else if ok {
				el.SetAttr("checked", "false")
			}
			out = append(out, el)
		case models.TagCrypt:
			out = append(out, cryptElement(blockFromENML(n, 0)))
		case models.TagMedia:
			hash, _ := n.Attr("hash")
			mime, _ := n.Attr("type")
			el := models.NewElement(models.TagMedia, models.Attr{Name: "hash", Value: hash}, models.Attr{Name: "type", Value: mime})
			for _, a := range n.Attrs {
				if a.Name != "hash" && a.Name != "type" {
					el.SetAttr(a.Name, a.Value)
				}
			}
			out = append(out, el)
		default:
			el := models.NewElement(n.Name, n.Attrs...)
			el.Children = canonicalNodes(n.Children)
			out = append(out, el)
		}
	}
	return out
}

func children(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, c)
	}
	return out
}

// appendMerged appends nodes, joining adjacent text and dropping empty text.
func appendMerged(dst []*models.Node, nodes ...*models.Node) []*models.Node {
	for _, n := range nodes {
		if n.Type == models.TextNode {
			if n.Text == "" {
				continue
			}
			if last := len(dst) - 1; last >= 0 && dst[last].Type == models.TextNode {
				dst[last] = models.NewText(dst[last].Text + n.Text)
				continue
			}
		}
		dst = append(dst, n)
	}
	return dst
}
