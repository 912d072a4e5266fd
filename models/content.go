// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"strings"
)

// EncryptedBlock is the metadata of an en-crypt element as carried by the
// editor HTML. Index disambiguates blocks with identical ciphertext inside
// one rendered document and is never persisted.
type EncryptedBlock struct {
	Ciphertext string
	Cipher     string
	KeyLength  int
	Hint       string
	Index      int
}

// ToDoMark is an en-todo checkbox. ID is unique within one rendered document
// and is a presentation detail only.
type ToDoMark struct {
	Checked bool
	ID      int
}

// ExtraData aggregates node counts gathered while rendering a note.
// Callers use it for UI and telemetry only.
type ExtraData struct {
	NumTodoNodes      int
	NumHyperlinkNodes int
	NumEncryptedNodes int
	NumDecryptedNodes int
}

// ResourcePreview is what the resource store knows about an en-media hash.
type ResourcePreview struct {
	Hash      string
	MimeType  string
	FileName  string
	Size      int64
	SourceURL string
	Data      []byte
}

// IsImage reports whether the resource can be rendered inline.
func (r ResourcePreview) IsImage() bool {
	return strings.HasPrefix(strings.ToLower(r.MimeType), "image/")
}

// ValidationIssue is a single deviation of a document from the ENML grammar.
type ValidationIssue struct {
	// Path locates the element, e.g. "/en-note[0]/div[1]/en-media[0]".
	Path      string
	Element   string
	Attribute string
	Reason    string
}

// String returns a human-readable description of the issue.
func (v ValidationIssue) String() string {
	if v.Attribute != "" {
		return fmt.Sprintf("%s: attribute %q: %s", v.Path, v.Attribute, v.Reason)
	}
	return fmt.Sprintf("%s: %s", v.Path, v.Reason)
}

// PassphraseAnswer is the result of a passphrase prompt.
type PassphraseAnswer struct {
	Passphrase         string
	RememberForSession bool
}

// PassphraseRequest is what a passphrase prompt shows the user. The
// ciphertext itself is never passed to the prompt.
type PassphraseRequest struct {
	Hint      string
	Cipher    string
	KeyLength int
	// Attempt starts at 1 and grows after every wrong passphrase.
	Attempt int
}
