// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

import (
	"strconv"
	"strings"

	"github.com/MKhiriev/go-enml/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attributes of the editor markup. Both directions depend on these names.
const (
	attrTag           = "data-en-tag"
	attrCryptID       = "data-en-crypt-id"
	attrDecryptedID   = "data-en-decrypted-id"
	attrCipher        = "data-en-cipher"
	attrLength        = "data-en-length"
	attrHint          = "data-en-hint"
	attrEncryptedText = "data-en-encrypted-text"
	attrTodoID        = "data-en-todo-id"
	attrTodoChecked   = "data-en-checked"
	// attrTableRow marks a row the note keeps directly under its table.
	attrTableRow = "data-en-table-row"
	attrHash          = "data-en-hash"
	attrType          = "data-en-type"
	// attrPassthrough prefixes en-media attributes kept on non-image markup.
	attrPassthrough = "data-en-attr-"

	tagDecrypted = "en-decrypted"

	classCrypt        = "en-crypt"
	classCryptHint    = "en-crypt-hint"
	classDecrypted    = "en-decrypted"
	classTodo         = "en-todo"
	classMediaGeneric = "en-media-generic"
	classMediaBroken  = "en-media-broken"
	classMediaName    = "en-media-name"
	classMediaSize    = "en-media-size"

	decryptAffordance = "Click to decrypt"
	missingResource   = "Missing resource"
)

// Parents whose content model is phrasing in HTML. Block containers placed
// inside them would be split apart by the HTML parser, so spans are used.
var phrasingParents = map[string]struct{}{
	"p": {}, "h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {}, "pre": {},
	"address": {}, "a": {}, "abbr": {}, "acronym": {}, "b": {}, "bdo": {}, "big": {},
	"cite": {}, "code": {}, "dfn": {}, "del": {}, "em": {}, "font": {}, "i": {},
	"ins": {}, "kbd": {}, "q": {}, "s": {}, "samp": {}, "small": {}, "span": {},
	"strike": {}, "strong": {}, "sub": {}, "sup": {}, "tt": {}, "u": {}, "var": {},
}

// ENML elements the HTML parser keeps inside a span.
var inlineContent = map[string]struct{}{
	"a": {}, "abbr": {}, "acronym": {}, "area": {}, "b": {}, "bdo": {}, "big": {},
	"br": {}, "cite": {}, "code": {}, "dfn": {}, "del": {}, "em": {}, "en-crypt": {},
	"en-media": {}, "en-todo": {}, "font": {}, "i": {}, "img": {}, "ins": {}, "kbd": {},
	"map": {}, "q": {}, "s": {}, "samp": {}, "small": {}, "span": {}, "strike": {},
	"strong": {}, "sub": {}, "sup": {}, "tt": {}, "u": {}, "var": {},
}

// fitsInline reports whether nodes survive being placed in a span.
func fitsInline(nodes []*models.Node) bool {
	for _, n := range nodes {
		if n.Type != models.ElementNode {
			continue
		}
		if _, ok := inlineContent[n.Name]; !ok {
			return false
		}
		if !fitsInline(n.Children) {
			return false
		}
	}
	return true
}

func containerFor(parent *models.Node) string {
	if parent != nil {
		if _, ok := phrasingParents[parent.Name]; ok {
			return "span"
		}
	}
	return "div"
}

func element(name string, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     name,
		DataAtom: atom.Lookup([]byte(name)),
		Attr:     attrs,
	}
}

func text(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

func getAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func toHTMLAttrs(attrs []models.Attr) []html.Attribute {
	out := make([]html.Attribute, 0, len(attrs))
	for _, a := range attrs {
		out = append(out, attr(a.Name, a.Value))
	}
	return out
}

// blockAttrs are the metadata shared by placeholders and decrypted
// containers.
func blockAttrs(b models.EncryptedBlock) []html.Attribute {
	out := []html.Attribute{
		attr(attrCipher, b.Cipher),
		attr(attrLength, strconv.Itoa(b.KeyLength)),
	}
	if b.Hint != "" {
		out = append(out, attr(attrHint, b.Hint))
	}
	return append(out, attr(attrEncryptedText, b.Ciphertext))
}

// blockFromMarkup reads block metadata back from editor markup.
func blockFromMarkup(n *html.Node) models.EncryptedBlock {
	b := models.EncryptedBlock{}
	b.Ciphertext, _ = getAttr(n, attrEncryptedText)
	b.Ciphertext = strings.TrimSpace(b.Ciphertext)
	b.Cipher, _ = getAttr(n, attrCipher)
	b.Hint, _ = getAttr(n, attrHint)
	if v, ok := getAttr(n, attrLength); ok {
		b.KeyLength, _ = strconv.Atoi(v)
	}
	for _, key := range []string{attrCryptID, attrDecryptedID} {
		if v, ok := getAttr(n, key); ok {
			b.Index, _ = strconv.Atoi(v)
		}
	}
	return b
}

// cryptElement builds the persisted form of a block.
func cryptElement(b models.EncryptedBlock) *models.Node {
	n := models.NewElement(models.TagCrypt)
	n.SetAttr("cipher", b.Cipher)
	n.SetAttr("length", strconv.Itoa(b.KeyLength))
	if b.Hint != "" {
		n.SetAttr("hint", b.Hint)
	}
	n.AppendChild(models.NewText(b.Ciphertext))
	return n
}
