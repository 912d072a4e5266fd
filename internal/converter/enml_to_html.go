// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-enml/internal/cache"
	"github.com/MKhiriev/go-enml/internal/crypto"
	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/models"
	"github.com/dustin/go-humanize"
	"golang.org/x/net/html"
)

// ToHTMLString parses persisted note content and converts it with ToHTML.
// Content that is not well-formed ENML yields a *ParseError.
func (c *ENMLConverter) ToHTMLString(ctx context.Context, content string, dc *cache.DecryptedTextCache, opts ...Option) (string, models.ExtraData, error) {
	doc, err := ParseENML(content)
	if err != nil {
		return "", models.ExtraData{}, err
	}
	return c.ToHTML(ctx, doc, dc, opts...)
}

// ParseENML parses persisted note content. Errors are *ParseError.
func ParseENML(content string) (*models.Document, error) {
	doc, err := enml.Parse(content)
	if err != nil {
		pe := &ParseError{Source: SourceENML, Err: err}
		var syntaxErr *enml.SyntaxError
		if errors.As(err, &syntaxErr) {
			pe.Line = syntaxErr.Line
		}
		return nil, pe
	}
	return doc, nil
}

// ToHTML renders doc as an editor document. doc is not modified.
//
// An en-crypt block is inlined as an editable container when dc holds its
// plaintext, otherwise it becomes a clickable placeholder. Unresolvable
// resources degrade to placeholders; ToHTML only fails on a document
// without an en-note root.
func (c *ENMLConverter) ToHTML(ctx context.Context, doc *models.Document, dc *cache.DecryptedTextCache, opts ...Option) (string, models.ExtraData, error) {
	if doc == nil || !doc.Root.IsElement(models.TagNote) {
		return "", models.ExtraData{}, &ParseError{Source: SourceENML, Err: errors.New("missing en-note root element")}
	}

	w := &htmlWriter{
		ctx:   ctx,
		conv:  c,
		cache: dc,
		opts:  newOptions(opts),
		log:   logger.FromContext(ctx),
	}

	body := element("body", append([]html.Attribute{attr(attrTag, models.TagNote)}, toHTMLAttrs(doc.Root.Attrs)...)...)
	w.appendChildren(body, doc.Root)

	meta := element("meta", attr("charset", "utf-8"))
	head := element("head")
	head.AppendChild(meta)
	page := element("html")
	page.AppendChild(head)
	page.AppendChild(body)

	var buf bytes.Buffer
	if err := html.Render(&buf, page); err != nil {
		return "", models.ExtraData{}, fmt.Errorf("render editor html: %w", err)
	}

	w.log.Debug().
		Int("todos", w.stats.NumTodoNodes).
		Int("links", w.stats.NumHyperlinkNodes).
		Int("encrypted", w.stats.NumEncryptedNodes).
		Int("decrypted", w.stats.NumDecryptedNodes).
		Msg("note rendered for editing")

	return buf.String(), w.stats, nil
}

// RenderEncryptedBlock renders the placeholder of a block that has not been
// decrypted. The editor swaps it in after "encrypt selection".
func (c *ENMLConverter) RenderEncryptedBlock(block models.EncryptedBlock) (string, error) {
	return renderNode(encryptedPlaceholder(block))
}

// RenderDecryptedBlock renders the editable container of a block decrypted
// outside of a full conversion, e.g. after an interactive prompt.
func (c *ENMLConverter) RenderDecryptedBlock(ctx context.Context, block models.EncryptedBlock, plaintext string) (string, error) {
	w := &htmlWriter{ctx: ctx, conv: c, opts: &options{}, log: logger.FromContext(ctx)}
	return renderNode(w.decrypted(block, plaintext, nil))
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("render editor html: %w", err)
	}
	return buf.String(), nil
}

// htmlWriter holds the state of one ToHTML call.
type htmlWriter struct {
	ctx   context.Context
	conv  *ENMLConverter
	cache *cache.DecryptedTextCache
	opts  *options
	log   *logger.Logger

	stats   models.ExtraData
	todoID  int
	cryptID int
}

func (w *htmlWriter) appendChildren(dst *html.Node, src *models.Node) {
	for _, child := range src.Children {
		dst.AppendChild(w.convert(child, src))
	}
}

func (w *htmlWriter) convert(n, parent *models.Node) *html.Node {
	if n.Type == models.TextNode {
		return text(n.Text)
	}

	switch n.Name {
	case models.TagTodo:
		return w.todo(n)
	case models.TagCrypt:
		return w.crypt(n, parent)
	case models.TagMedia:
		return w.media(n, parent)
	case "a":
		w.stats.NumHyperlinkNodes++
	}

	el := element(n.Name, toHTMLAttrs(n.Attrs)...)
	if n.Name == "tr" && parent != nil && parent.Name == "table" {
		// the HTML parser wraps it in an implied tbody
		el.Attr = append(el.Attr, attr(attrTableRow, "true"))
	}
	w.appendChildren(el, n)
	return el
}

func (w *htmlWriter) todo(n *models.Node) *html.Node {
	checked, _ := n.Attr("checked")
	mark := models.ToDoMark{
		Checked: strings.EqualFold(strings.TrimSpace(checked), "true"),
		ID:      w.todoID,
	}
	w.todoID++
	w.stats.NumTodoNodes++

	attrs := []html.Attribute{
		attr("type", "checkbox"),
		attr("class", classTodo),
		attr(attrTag, models.TagTodo),
		attr(attrTodoID, strconv.Itoa(mark.ID)),
	}
	if mark.Checked {
		attrs = append(attrs, attr("checked", "checked"))
	} else if _, ok := n.Attr("checked"); ok {
		attrs = append(attrs, attr(attrTodoChecked, "false"))
	}
	return element("input", attrs...)
}

func (w *htmlWriter) crypt(n, parent *models.Node) *html.Node {
	block := blockFromENML(n, w.cryptID)
	w.cryptID++

	if entry, ok := w.lookup(block); ok {
		if containerFor(parent) == "div" || plaintextFitsInline(entry.Plaintext) {
			w.stats.NumDecryptedNodes++
			return w.decrypted(block, entry.Plaintext, parent)
		}
		// The HTML parser would move block markup out of the span and
		// into the note body.
		w.log.Warn().Int("block", block.Index).Str("parent", parent.Name).
			Msg("decrypted block holds block markup inside inline parent, kept locked")
	}
	w.stats.NumEncryptedNodes++
	return encryptedPlaceholder(block)
}

// blockFromENML applies the DTD defaults for missing cipher and length.
func blockFromENML(n *models.Node, index int) models.EncryptedBlock {
	b := models.EncryptedBlock{
		Ciphertext: strings.TrimSpace(n.InnerText()),
		Cipher:     crypto.CipherRC2,
		KeyLength:  crypto.LegacyKeyLength,
		Index:      index,
	}
	if v, ok := n.Attr("cipher"); ok && v != "" {
		b.Cipher = v
	}
	if v, ok := n.Attr("length"); ok {
		if l, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			b.KeyLength = l
		}
	}
	b.Hint, _ = n.Attr("hint")
	return b
}

// plaintextFitsInline reports whether a decrypted fragment can be shown in
// a span. Plaintext that is not ENML is shown as text and always fits.
func plaintextFitsInline(plaintext string) bool {
	nodes, err := enml.ParseFragment(plaintext)
	if err != nil {
		return true
	}
	return fitsInline(nodes)
}

func (w *htmlWriter) lookup(b models.EncryptedBlock) (cache.Entry, bool) {
	return w.conv.lookupBlock(w.cache, b, w.opts.passphrases, w.log)
}

func encryptedPlaceholder(b models.EncryptedBlock) *html.Node {
	attrs := []html.Attribute{
		attr("class", classCrypt),
		attr("contenteditable", "false"),
		attr(attrTag, models.TagCrypt),
		attr(attrCryptID, strconv.Itoa(b.Index)),
	}
	el := element("span", append(attrs, blockAttrs(b)...)...)
	el.AppendChild(text(decryptAffordance))
	if b.Hint != "" {
		hint := element("span", attr("class", classCryptHint))
		hint.AppendChild(text("Hint: " + b.Hint))
		el.AppendChild(hint)
	}
	return el
}

// decrypted builds the editable container. Plaintext that is an ENML
// fragment is converted like the rest of the note; anything else is text.
func (w *htmlWriter) decrypted(b models.EncryptedBlock, plaintext string, parent *models.Node) *html.Node {
	attrs := []html.Attribute{
		attr("class", classDecrypted),
		attr(attrTag, tagDecrypted),
		attr(attrDecryptedID, strconv.Itoa(b.Index)),
	}
	el := element(containerFor(parent), append(attrs, blockAttrs(b)...)...)

	nodes, err := enml.ParseFragment(plaintext)
	if err != nil {
		el.AppendChild(text(plaintext))
		return el
	}
	w.appendChildren(el, &models.Node{Type: models.ElementNode, Children: nodes})
	return el
}

func (w *htmlWriter) media(n, parent *models.Node) *html.Node {
	hash, _ := n.Attr("hash")
	mime, _ := n.Attr("type")
	preview := w.resolve(hash)

	if preview != nil && preview.IsImage() {
		attrs := []html.Attribute{attr(attrTag, models.TagMedia), attr(attrHash, hash), attr(attrType, mime)}
		for _, a := range n.Attrs {
			if a.Name != "hash" && a.Name != "type" {
				attrs = append(attrs, attr(a.Name, a.Value))
			}
		}
		if src := imageSource(preview); src != "" {
			attrs = append(attrs, attr("src", src))
		}
		return element("img", attrs...)
	}

	class := classMediaBroken
	if preview != nil {
		class = classMediaGeneric
	}
	attrs := []html.Attribute{
		attr("class", class),
		attr("contenteditable", "false"),
		attr(attrTag, models.TagMedia),
		attr(attrHash, hash),
		attr(attrType, mime),
	}
	for _, a := range n.Attrs {
		if a.Name != "hash" && a.Name != "type" {
			attrs = append(attrs, attr(attrPassthrough+a.Name, a.Value))
		}
	}
	el := element(containerFor(parent), attrs...)

	if preview == nil {
		el.AppendChild(text(missingResource))
		return el
	}
	name := preview.FileName
	if name == "" {
		name = "Attachment"
	}
	nameEl := element("span", attr("class", classMediaName))
	nameEl.AppendChild(text(name))
	sizeEl := element("span", attr("class", classMediaSize))
	sizeEl.AppendChild(text(humanize.Bytes(uint64(max(preview.Size, 0)))))
	el.AppendChild(nameEl)
	el.AppendChild(text(" "))
	el.AppendChild(sizeEl)
	return el
}

func (w *htmlWriter) resolve(hash string) *models.ResourcePreview {
	if w.conv.resolver == nil || hash == "" {
		w.log.Warn().Err(ErrResourceUnresolved).Str("hash", hash).Msg("no resource resolver")
		return nil
	}
	preview, err := w.conv.resolver.Resolve(w.ctx, hash)
	if err != nil {
		w.log.Warn().Err(err).Str("hash", hash).Msg("resource lookup failed")
		return nil
	}
	if preview == nil {
		w.log.Warn().Err(ErrResourceUnresolved).Str("hash", hash).Msg("resource not found")
	}
	return preview
}

func imageSource(p *models.ResourcePreview) string {
	if p.SourceURL != "" {
		return p.SourceURL
	}
	if len(p.Data) == 0 {
		return ""
	}
	return "data:" + p.MimeType + ";base64," + base64.StdEncoding.EncodeToString(p.Data)
}
