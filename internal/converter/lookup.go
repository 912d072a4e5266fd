// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

import (
	"context"

	"github.com/MKhiriev/go-enml/internal/cache"
	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/models"
)

// lookupBlock finds the plaintext of b. The ciphertext key is checked
// first, then the passphrase context. A passphrase-keyed entry holds the
// last block decrypted with it, so other blocks sharing the passphrase are
// decrypted again with the cached passphrase and the entry is updated.
func (c *ENMLConverter) lookupBlock(dc *cache.DecryptedTextCache, b models.EncryptedBlock, passphrases []string, log *logger.Logger) (cache.Entry, bool) {
	if dc == nil || b.Ciphertext == "" {
		return cache.Entry{}, false
	}
	if e, ok := dc.Find(b.Ciphertext, passphrases...); ok {
		return e, true
	}
	if c.codec == nil {
		return cache.Entry{}, false
	}

	for _, p := range passphrases {
		if _, ok := dc.Get(p); !ok {
			continue
		}
		plaintext, err := c.codec.Decrypt(b.Ciphertext, p, b.Cipher, b.KeyLength)
		if err != nil {
			log.Debug().Err(err).Int("block", b.Index).Msg("cached passphrase does not open block")
			continue
		}
		entry := cache.Entry{
			Plaintext:  plaintext,
			Ciphertext: b.Ciphertext,
			Passphrase: p,
			Cipher:     b.Cipher,
			KeyLength:  b.KeyLength,
		}
		dc.Put(p, entry)
		return entry, true
	}
	return cache.Entry{}, false
}

// LookupBlock reports whether the plaintext of block is available from dc,
// directly or through the passphrase context in opts.
func (c *ENMLConverter) LookupBlock(ctx context.Context, dc *cache.DecryptedTextCache, block models.EncryptedBlock, opts ...Option) (cache.Entry, bool) {
	return c.lookupBlock(dc, block, newOptions(opts).passphrases, logger.FromContext(ctx))
}

// EncryptedBlocks lists the en-crypt elements of doc in document order, with
// the defaults for missing cipher and length applied.
func EncryptedBlocks(doc *models.Document) []models.EncryptedBlock {
	if doc == nil || doc.Root == nil {
		return nil
	}
	var out []models.EncryptedBlock
	var walk func(n *models.Node)
	walk = func(n *models.Node) {
		for _, c := range n.Children {
			if c.IsElement(models.TagCrypt) {
				out = append(out, blockFromENML(c, len(out)))
				continue
			}
			walk(c)
		}
	}
	walk(doc.Root)
	return out
}
