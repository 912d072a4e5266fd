// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package cache keeps plaintext of encrypted note blocks decrypted during
// the current session.
package cache

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-enml/internal/crypto"
)

// Entry is one decrypted block.
//
// The key an entry is stored under is either the ciphertext (the user chose
// to remember the block for the session) or the passphrase (only the key
// derivation is cached, until the note is closed).
type Entry struct {
	Plaintext          string
	RememberForSession bool

	// Decryption context, needed to re-encrypt an edited block.
	Ciphertext string
	Passphrase string
	Cipher     string
	KeyLength  int
}

// DecryptedTextCache is safe for concurrent use. One instance is shared by
// all conversions of a session and passed explicitly to each of them.
type DecryptedTextCache struct {
	mu      sync.RWMutex
	entries map[string]Entry
	// stale forwards a ciphertext replaced by Modify to its successor, so a
	// document rendered before the edit still finds its plaintext.
	stale map[string]string
	codec crypto.Codec
}

// NewDecryptedTextCache returns an empty cache that re-encrypts edited
// blocks with codec.
func NewDecryptedTextCache(codec crypto.Codec) *DecryptedTextCache {
	return &DecryptedTextCache{
		entries: make(map[string]Entry),
		stale:   make(map[string]string),
		codec:   codec,
	}
}

// Put stores entry under key, replacing any previous entry.
func (c *DecryptedTextCache) Put(key string, entry Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry
}

// Get returns the entry stored under key.
func (c *DecryptedTextCache) Get(key string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	return e, ok
}

// Find looks up the plaintext of the block with the given ciphertext.
// The ciphertext key is checked first, then every passphrase key whose entry
// was decrypted from this ciphertext, then the ciphertext it was replaced by.
func (c *DecryptedTextCache) Find(ciphertext string, passphrases ...string) (Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.find(ciphertext, passphrases)
}

func (c *DecryptedTextCache) find(ciphertext string, passphrases []string) (Entry, bool) {
	seen := make(map[string]struct{})
	for ciphertext != "" {
		if _, loop := seen[ciphertext]; loop {
			break
		}
		seen[ciphertext] = struct{}{}

		if e, ok := c.entries[ciphertext]; ok {
			if e.Ciphertext == "" {
				e.Ciphertext = ciphertext
			}
			return e, true
		}
		for _, p := range passphrases {
			if e, ok := c.entries[p]; ok && e.Ciphertext == ciphertext {
				return e, true
			}
		}
		ciphertext = c.stale[ciphertext]
	}
	return Entry{}, false
}

// ClearTransient removes every entry not remembered for the session.
// Called when a note is closed.
func (c *DecryptedTextCache) ClearTransient() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, e := range c.entries {
		if !e.RememberForSession {
			delete(c.entries, k)
		}
	}
}

// Clear removes everything. Called at the end of the session.
func (c *DecryptedTextCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	clear(c.stale)
}

// Len returns the number of entries.
func (c *DecryptedTextCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Modify re-encrypts the block decrypted from oldCiphertext with
// newPlaintext and returns the updated entry.
//
// Encryption runs outside the lock. The update is applied only if the block
// still has the ciphertext it was encrypted against; otherwise Modify
// starts over from the current entry, so concurrent edits of the same block
// are applied one after another.
//
// Entries keyed by the old ciphertext move to the new ciphertext; entries
// keyed by passphrase stay in place with the new ciphertext recorded.
func (c *DecryptedTextCache) Modify(oldCiphertext, newPlaintext string, passphrases ...string) (Entry, error) {
	for {
		entry, ok := c.Find(oldCiphertext, passphrases...)
		if !ok {
			return Entry{}, ErrEntryNotFound
		}

		enc, err := c.codec.Encrypt(newPlaintext, entry.Passphrase)
		if err != nil {
			return Entry{}, fmt.Errorf("re-encrypt block: %w", err)
		}

		updated, swapped, err := c.swap(oldCiphertext, passphrases, entry, newPlaintext, enc)
		if err != nil || swapped {
			return updated, err
		}
	}
}

// swap stores the re-encrypted block if the entry found for oldCiphertext
// is still entry.
func (c *DecryptedTextCache) swap(oldCiphertext string, passphrases []string, entry Entry, newPlaintext string, enc crypto.EncryptedText) (Entry, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	current, ok := c.find(oldCiphertext, passphrases)
	if !ok {
		return Entry{}, false, ErrEntryNotFound
	}
	if current.Ciphertext != entry.Ciphertext || current.Passphrase != entry.Passphrase {
		return Entry{}, false, nil
	}
	entry = current

	updated := entry
	updated.Plaintext = newPlaintext
	updated.Ciphertext = enc.Ciphertext
	updated.Cipher = enc.Cipher
	updated.KeyLength = enc.KeyLength

	for k, e := range c.entries {
		if k != entry.Ciphertext && e.Ciphertext != entry.Ciphertext {
			continue
		}
		if k == entry.Ciphertext {
			delete(c.entries, k)
			c.entries[enc.Ciphertext] = updated
			continue
		}
		c.entries[k] = updated
	}
	if _, ok := c.entries[enc.Ciphertext]; !ok && entry.RememberForSession {
		c.entries[enc.Ciphertext] = updated
	}

	c.stale[entry.Ciphertext] = enc.Ciphertext
	if oldCiphertext != entry.Ciphertext {
		c.stale[oldCiphertext] = enc.Ciphertext
	}
	return updated, true, nil
}
