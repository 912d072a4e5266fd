// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package service wires the conversion engine, the decrypted text cache and
// the passphrase prompt into the operations of a note editor session.
package service

import (
	"github.com/MKhiriev/go-enml/internal/cache"
	"github.com/MKhiriev/go-enml/internal/config"
	"github.com/MKhiriev/go-enml/internal/converter"
	"github.com/MKhiriev/go-enml/internal/crypto"
	"github.com/MKhiriev/go-enml/internal/logger"
)

type Services struct {
	NoteContentService NoteContentService
	// Cache is the session cache shared by every conversion.
	Cache *cache.DecryptedTextCache
}

// NewServices builds the session services. resolver and prompter may be nil.
func NewServices(resolver converter.ResourceResolver, prompter PassphrasePrompter, cfg config.StructuredConfig, log *logger.Logger) *Services {
	codec := crypto.NewCodec()
	dc := cache.NewDecryptedTextCache(codec)
	conv := converter.NewENMLConverter(codec, resolver)

	return &Services{
		NoteContentService: NewNoteContentService(conv, codec, dc, prompter, cfg.Crypto, log),
		Cache:              dc,
	}
}
