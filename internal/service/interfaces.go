// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-enml/internal/converter"
	"github.com/MKhiriev/go-enml/models"
)

// NoteContentService is the editor-facing facade over the conversion
// engine. It owns the session's DecryptedTextCache and the passphrases
// entered while a note is open.
type NoteContentService interface {
	// LoadNote converts persisted note content into editor HTML. With a
	// prompter configured, every encrypted block the cache cannot open is
	// offered to DecryptInteractive first.
	// Returns a *converter.ParseError for malformed content.
	LoadNote(ctx context.Context, content string, opts ...converter.Option) (string, models.ExtraData, error)

	// SaveNote converts editor HTML back into ENML. Edited encrypted blocks
	// are re-encrypted; a block that cannot be is a
	// *converter.ReencryptionError and nothing is returned.
	SaveNote(ctx context.Context, markup string, skipRules []models.SkipHTMLElementRule, opts ...converter.Option) (*converter.Result, error)

	// DecryptInteractive prompts for the passphrase of block and caches the
	// plaintext on success: under the ciphertext when the user chose to
	// remember it for the session, under the passphrase otherwise.
	// ok is false when the user cancelled. Wrong passphrases are retried up to
	// the configured limit, then crypto.ErrDecryption is returned.
	DecryptInteractive(ctx context.Context, block models.EncryptedBlock) (plaintext string, remember bool, ok bool, err error)

	// EncryptSelection encrypts text selected in the editor and returns the
	// placeholder markup that replaces it.
	EncryptSelection(ctx context.Context, plaintext, passphrase, hint string, remember bool) (string, error)

	// Validate checks persisted note content against the ENML grammar.
	Validate(ctx context.Context, content string) ([]models.ValidationIssue, error)

	// CloseNote forgets everything not remembered for the session.
	CloseNote()

	// EndSession forgets everything.
	EndSession()
}

// PassphrasePrompter asks the user for the passphrase of an encrypted block.
// It is implemented by the terminal UI.
type PassphrasePrompter interface {
	// Prompt returns the user's answer. ok is false when the user cancelled.
	Prompt(ctx context.Context, req models.PassphraseRequest) (answer models.PassphraseAnswer, ok bool, err error)
}
