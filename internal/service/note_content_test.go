// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-enml/internal/cache"
	"github.com/MKhiriev/go-enml/internal/config"
	"github.com/MKhiriev/go-enml/internal/converter"
	"github.com/MKhiriev/go-enml/internal/crypto"
	"github.com/MKhiriev/go-enml/internal/enml"
	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/internal/mock"
	"github.com/MKhiriev/go-enml/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestNoteSvc builds the service around a real codec and cache.
func newTestNoteSvc(t *testing.T, prompter PassphrasePrompter, cfg config.Crypto) (NoteContentService, *cache.DecryptedTextCache, crypto.Codec) {
	t.Helper()
	codec := crypto.NewCodec()
	dc := cache.NewDecryptedTextCache(codec)
	conv := converter.NewENMLConverter(codec, nil)
	return NewNoteContentService(conv, codec, dc, prompter, cfg, logger.Nop()), dc, codec
}

func encryptedNote(t *testing.T, codec crypto.Codec, plaintext, passphrase string) (string, crypto.EncryptedText) {
	t.Helper()
	enc, err := codec.Encrypt(plaintext, passphrase)
	require.NoError(t, err)
	return `<en-note><div>intro</div><en-crypt cipher="AES" length="128" hint="pet">` +
		enc.Ciphertext + `</en-crypt></en-note>`, enc
}

// ── DecryptInteractive ───────────────────────────────────────────────────────

func TestNoteContentService_DecryptInteractive_NoPrompter(t *testing.T) {
	svc, _, _ := newTestNoteSvc(t, nil, config.Crypto{MaxPassphraseAttempts: 3})

	_, _, ok, err := svc.DecryptInteractive(context.Background(), models.EncryptedBlock{Ciphertext: "Zm9v"})
	require.ErrorIs(t, err, ErrNoPrompter)
	assert.False(t, ok)
}

func TestNoteContentService_DecryptInteractive_RetryThenRemember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, dc, codec := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})
	enc, err := codec.Encrypt("secret", "right")
	require.NoError(t, err)
	block := models.EncryptedBlock{Ciphertext: enc.Ciphertext, Cipher: enc.Cipher, KeyLength: enc.KeyLength, Hint: "pet"}

	gomock.InOrder(
		prompter.EXPECT().Prompt(gomock.Any(), models.PassphraseRequest{Hint: "pet", Cipher: "AES", KeyLength: 128, Attempt: 1}).
			Return(models.PassphraseAnswer{Passphrase: "wrong"}, true, nil),
		prompter.EXPECT().Prompt(gomock.Any(), models.PassphraseRequest{Hint: "pet", Cipher: "AES", KeyLength: 128, Attempt: 2}).
			Return(models.PassphraseAnswer{Passphrase: "right", RememberForSession: true}, true, nil),
	)

	plaintext, remember, ok, err := svc.DecryptInteractive(context.Background(), block)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, remember)
	assert.Equal(t, "secret", plaintext)

	entry, found := dc.Get(enc.Ciphertext)
	require.True(t, found)
	assert.Equal(t, "secret", entry.Plaintext)
	assert.Equal(t, "right", entry.Passphrase)
	assert.True(t, entry.RememberForSession)

	_, found = dc.Get("right")
	assert.False(t, found)
}

func TestNoteContentService_DecryptInteractive_CachesUnderPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, dc, codec := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})
	enc, err := codec.Encrypt("secret", "right")
	require.NoError(t, err)

	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).
		Return(models.PassphraseAnswer{Passphrase: "right"}, true, nil)

	_, remember, ok, err := svc.DecryptInteractive(context.Background(),
		models.EncryptedBlock{Ciphertext: enc.Ciphertext, Cipher: enc.Cipher, KeyLength: enc.KeyLength})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, remember)

	entry, found := dc.Get("right")
	require.True(t, found)
	assert.Equal(t, enc.Ciphertext, entry.Ciphertext)
	assert.False(t, entry.RememberForSession)
}

func TestNoteContentService_DecryptInteractive_Cancelled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, dc, _ := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})

	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return(models.PassphraseAnswer{}, false, nil)

	_, _, ok, err := svc.DecryptInteractive(context.Background(), models.EncryptedBlock{Ciphertext: "Zm9v"})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, dc.Len())
}

func TestNoteContentService_DecryptInteractive_LegacyDefaultsInRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, _, _ := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 1})

	prompter.EXPECT().Prompt(gomock.Any(), models.PassphraseRequest{Cipher: "RC2", KeyLength: 64, Attempt: 1}).
		Return(models.PassphraseAnswer{}, false, nil)

	_, _, ok, err := svc.DecryptInteractive(context.Background(), models.EncryptedBlock{Ciphertext: "Zm9v"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNoteContentService_DecryptInteractive_GivesUp(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, dc, codec := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 2})
	enc, err := codec.Encrypt("secret", "right")
	require.NoError(t, err)

	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).
		Return(models.PassphraseAnswer{Passphrase: "wrong"}, true, nil).Times(2)

	_, _, ok, err := svc.DecryptInteractive(context.Background(),
		models.EncryptedBlock{Ciphertext: enc.Ciphertext, Cipher: enc.Cipher, KeyLength: enc.KeyLength})
	require.ErrorIs(t, err, crypto.ErrDecryption)
	assert.False(t, ok)
	assert.Equal(t, 0, dc.Len())
}

func TestNoteContentService_DecryptInteractive_PromptError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, _, _ := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})

	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return(models.PassphraseAnswer{}, false, errors.New("tty closed"))

	_, _, _, err := svc.DecryptInteractive(context.Background(), models.EncryptedBlock{Ciphertext: "Zm9v"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt for passphrase")
}

func TestNoteContentService_DecryptInteractive_ContextDone(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, _, _ := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, _, err := svc.DecryptInteractive(ctx, models.EncryptedBlock{Ciphertext: "Zm9v"})
	require.ErrorIs(t, err, context.Canceled)
}

// ── LoadNote / SaveNote ──────────────────────────────────────────────────────

func TestNoteContentService_LoadNote_PromptsForLockedBlocks(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, _, codec := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})
	content, enc := encryptedNote(t, codec, "secret", "right")

	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).
		Return(models.PassphraseAnswer{Passphrase: "right"}, true, nil)

	ctx := context.Background()
	markup, extra, err := svc.LoadNote(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, 1, extra.NumDecryptedNodes)
	assert.Contains(t, markup, "secret")
	assert.Contains(t, markup, "en-decrypted")

	res, err := svc.SaveNote(ctx, markup, nil)
	require.NoError(t, err)
	out := enml.Serialize(res.Document)
	assert.Contains(t, out, enc.Ciphertext)
	assert.NotContains(t, out, "secret")
}

func TestNoteContentService_LoadNote_CancelledPromptKeepsPlaceholder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, _, codec := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})
	content, _ := encryptedNote(t, codec, "secret", "right")

	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).Return(models.PassphraseAnswer{}, false, nil)

	markup, extra, err := svc.LoadNote(context.Background(), content)
	require.NoError(t, err)
	assert.Equal(t, 1, extra.NumEncryptedNodes)
	assert.Contains(t, markup, "Click to decrypt")
	assert.NotContains(t, markup, "secret")
}

func TestNoteContentService_LoadNote_WrongPassphrasesLeaveBlockLocked(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, _, codec := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 1})
	content, _ := encryptedNote(t, codec, "secret", "right")

	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).
		Return(models.PassphraseAnswer{Passphrase: "wrong"}, true, nil)

	markup, _, err := svc.LoadNote(context.Background(), content)
	require.NoError(t, err)
	assert.Contains(t, markup, "Click to decrypt")
}

func TestNoteContentService_LoadNote_ConfiguredPassphrase(t *testing.T) {
	svc, dc, codec := newTestNoteSvc(t, nil, config.Crypto{
		MaxPassphraseAttempts: 3,
		Passphrases:           []string{"other", "right"},
	})
	content, _ := encryptedNote(t, codec, "secret", "right")

	markup, _, err := svc.LoadNote(context.Background(), content)
	require.NoError(t, err)
	assert.Contains(t, markup, "secret")

	_, found := dc.Get("right")
	assert.True(t, found)
}

func TestNoteContentService_LoadNote_ParseError(t *testing.T) {
	svc, _, _ := newTestNoteSvc(t, nil, config.Crypto{MaxPassphraseAttempts: 3})

	_, _, err := svc.LoadNote(context.Background(), "<en-note><div></en-note>")
	var pe *converter.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, converter.SourceENML, pe.Source)
}

func TestNoteContentService_SaveNote_SharedPassphrase(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	prompter := mock.NewMockPassphrasePrompter(ctrl)
	svc, _, codec := newTestNoteSvc(t, prompter, config.Crypto{MaxPassphraseAttempts: 3})

	first, err := codec.Encrypt("one", "shared")
	require.NoError(t, err)
	second, err := codec.Encrypt("two", "shared")
	require.NoError(t, err)
	content := `<en-note><div><en-crypt cipher="AES" length="128">` + first.Ciphertext + `</en-crypt></div>` +
		`<div><en-crypt cipher="AES" length="128">` + second.Ciphertext + `</en-crypt></div></en-note>`

	// the second block opens with the passphrase entered for the first
	prompter.EXPECT().Prompt(gomock.Any(), gomock.Any()).
		Return(models.PassphraseAnswer{Passphrase: "shared"}, true, nil).Times(1)

	ctx := context.Background()
	markup, extra, err := svc.LoadNote(ctx, content)
	require.NoError(t, err)
	assert.Equal(t, 2, extra.NumDecryptedNodes)

	res, err := svc.SaveNote(ctx, markup, nil)
	require.NoError(t, err)
	assert.Equal(t, content, enml.Serialize(res.Document))
}

// ── EncryptSelection / session lifetime ─────────────────────────────────────

func TestNoteContentService_EncryptSelection(t *testing.T) {
	svc, dc, codec := newTestNoteSvc(t, nil, config.Crypto{MaxPassphraseAttempts: 3})

	markup, err := svc.EncryptSelection(context.Background(), "top secret", "pw", "usual", false)
	require.NoError(t, err)
	assert.Contains(t, markup, `data-en-tag="en-crypt"`)
	assert.Contains(t, markup, "Click to decrypt")
	assert.NotContains(t, markup, "top secret")

	entry, found := dc.Get("pw")
	require.True(t, found)
	assert.Equal(t, "top secret", entry.Plaintext)
	assert.Equal(t, crypto.CipherAES, entry.Cipher)

	plaintext, err := codec.Decrypt(entry.Ciphertext, "pw", entry.Cipher, entry.KeyLength)
	require.NoError(t, err)
	assert.Equal(t, "top secret", plaintext)
}

func TestNoteContentService_EncryptSelection_EmptyPassphrase(t *testing.T) {
	svc, dc, _ := newTestNoteSvc(t, nil, config.Crypto{MaxPassphraseAttempts: 3})

	_, err := svc.EncryptSelection(context.Background(), "text", "", "", false)
	require.ErrorIs(t, err, crypto.ErrEmptyPassphrase)
	assert.Equal(t, 0, dc.Len())
}

func TestNoteContentService_CloseNoteAndEndSession(t *testing.T) {
	svc, dc, _ := newTestNoteSvc(t, nil, config.Crypto{MaxPassphraseAttempts: 3})
	ctx := context.Background()

	_, err := svc.EncryptSelection(ctx, "transient", "pw1", "", false)
	require.NoError(t, err)
	_, err = svc.EncryptSelection(ctx, "kept", "pw2", "", true)
	require.NoError(t, err)
	require.Equal(t, 2, dc.Len())

	svc.CloseNote()
	assert.Equal(t, 1, dc.Len())
	_, found := dc.Get("pw1")
	assert.False(t, found)

	svc.EndSession()
	assert.Equal(t, 0, dc.Len())
}

// ── Validate ─────────────────────────────────────────────────────────────────

func TestNoteContentService_Validate(t *testing.T) {
	svc, _, _ := newTestNoteSvc(t, nil, config.Crypto{MaxPassphraseAttempts: 3})
	ctx := context.Background()

	issues, err := svc.Validate(ctx, `<en-note><div>fine</div></en-note>`)
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = svc.Validate(ctx, `<en-note><ul><li>a</li>stray</ul></en-note>`)
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "/en-note[0]/ul[0]", issues[0].Path)

	_, err = svc.Validate(ctx, "not xml <")
	var pe *converter.ParseError
	assert.ErrorAs(t, err, &pe)
}
