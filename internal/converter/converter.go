// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package converter translates note content between ENML and the markup of
// the note editor.
//
// ToHTML renders ENML for editing: encrypted blocks already decrypted in the
// session are inlined, to-dos become checkboxes and resources become
// previews. ToENML reverses it, re-collapsing editor scaffolding and
// re-encrypting edited blocks.
//
// The DecryptedTextCache is passed explicitly to every call. Conversions of
// different notes may run in parallel and share one cache.
package converter

import (
	"github.com/MKhiriev/go-enml/internal/crypto"
	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/MKhiriev/go-enml/internal/sanitizer"
	"github.com/MKhiriev/go-enml/internal/validators"
)

// ENMLConverter is stateless apart from its collaborators and safe for
// concurrent use.
type ENMLConverter struct {
	grammar   *enml.Grammar
	sanitizer *sanitizer.HTMLSanitizer
	validator *validators.ENMLValidator
	codec     crypto.Codec
	resolver  ResourceResolver
}

// NewENMLConverter returns a converter. resolver may be nil, in which case
// every resource renders as missing.
func NewENMLConverter(codec crypto.Codec, resolver ResourceResolver) *ENMLConverter {
	return &ENMLConverter{
		grammar:   enml.Default(),
		sanitizer: sanitizer.NewHTMLSanitizer(),
		validator: validators.NewENMLValidator(),
		codec:     codec,
		resolver:  resolver,
	}
}
