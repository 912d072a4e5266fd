// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/MKhiriev/go-enml/internal/cache"
	"github.com/MKhiriev/go-enml/internal/config"
	"github.com/MKhiriev/go-enml/internal/converter"
	"github.com/MKhiriev/go-enml/internal/crypto"
	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/internal/utils"
	"github.com/MKhiriev/go-enml/internal/validators"
	"github.com/MKhiriev/go-enml/models"
)

type noteContentService struct {
	converter *converter.ENMLConverter
	codec     crypto.Codec
	cache     *cache.DecryptedTextCache
	validator *validators.ENMLValidator
	prompter  PassphrasePrompter
	ids       *utils.UUIDGenerator
	logger    *logger.Logger

	maxAttempts int
	// configured are tried on every unresolved block before prompting.
	configured []string

	mu sync.Mutex
	// entered holds the passphrases that opened a block of the open note.
	entered []string
}

// NewNoteContentService returns the facade over conv. prompter may be nil,
// which disables interactive decryption.
func NewNoteContentService(
	conv *converter.ENMLConverter,
	codec crypto.Codec,
	dc *cache.DecryptedTextCache,
	prompter PassphrasePrompter,
	cfg config.Crypto,
	log *logger.Logger,
) NoteContentService {
	maxAttempts := cfg.MaxPassphraseAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &noteContentService{
		converter:   conv,
		codec:       codec,
		cache:       dc,
		validator:   validators.NewENMLValidator(),
		prompter:    prompter,
		ids:         utils.NewUUIDGenerator(),
		logger:      log,
		maxAttempts: maxAttempts,
		configured:  slices.Clone(cfg.Passphrases),
	}
}

// conversion tags ctx and the returned logger with a fresh conversion id.
func (s *noteContentService) conversion(ctx context.Context, op string) (context.Context, *logger.Logger) {
	id := s.ids.Generate()
	log := &logger.Logger{Logger: s.logger.With().Str("conversion_id", id).Str("op", op).Logger()}
	ctx = utils.WithConversionID(ctx, id)
	return log.WithContext(ctx), log
}

func (s *noteContentService) LoadNote(ctx context.Context, content string, opts ...converter.Option) (string, models.ExtraData, error) {
	ctx, log := s.conversion(ctx, "load")

	doc, err := converter.ParseENML(content)
	if err != nil {
		log.Error().Err(err).Msg("note content is not valid ENML")
		return "", models.ExtraData{}, err
	}

	for _, block := range converter.EncryptedBlocks(doc) {
		if _, ok := s.converter.LookupBlock(ctx, s.cache, block, s.options(opts)...); ok {
			continue
		}
		if s.tryConfigured(block, log) {
			continue
		}
		if s.prompter == nil {
			continue
		}
		_, _, ok, err := s.decryptInteractive(ctx, block, log)
		switch {
		case errors.Is(err, crypto.ErrDecryption), errors.Is(err, crypto.ErrUnsupportedCipher):
			log.Warn().Err(err).Int("block", block.Index).Msg("encrypted block left locked")
		case err != nil:
			return "", models.ExtraData{}, err
		case !ok:
			log.Debug().Int("block", block.Index).Msg("decryption cancelled")
		}
	}

	markup, extra, err := s.converter.ToHTML(ctx, doc, s.cache, s.options(opts)...)
	if err != nil {
		return "", models.ExtraData{}, fmt.Errorf("render note: %w", err)
	}
	return markup, extra, nil
}

// tryConfigured opens block with one of the configured passphrases and
// caches the result under that passphrase.
func (s *noteContentService) tryConfigured(block models.EncryptedBlock, log *logger.Logger) bool {
	for _, p := range s.configured {
		plaintext, err := s.codec.Decrypt(block.Ciphertext, p, block.Cipher, block.KeyLength)
		if err != nil {
			continue
		}
		s.remember(p, cache.Entry{
			Plaintext:  plaintext,
			Ciphertext: block.Ciphertext,
			Passphrase: p,
			Cipher:     block.Cipher,
			KeyLength:  block.KeyLength,
		})
		log.Debug().Int("block", block.Index).Msg("block opened with configured passphrase")
		return true
	}
	return false
}

func (s *noteContentService) SaveNote(ctx context.Context, markup string, skipRules []models.SkipHTMLElementRule, opts ...converter.Option) (*converter.Result, error) {
	ctx, log := s.conversion(ctx, "save")

	res, err := s.converter.ToENML(ctx, markup, s.cache, skipRules, s.options(opts)...)
	if err != nil {
		log.Error().Err(err).Msg("failed to convert editor markup")
		return nil, err
	}
	return res, nil
}

func (s *noteContentService) DecryptInteractive(ctx context.Context, block models.EncryptedBlock) (string, bool, bool, error) {
	ctx, log := s.conversion(ctx, "decrypt")
	return s.decryptInteractive(ctx, block, log)
}

func (s *noteContentService) decryptInteractive(ctx context.Context, block models.EncryptedBlock, log *logger.Logger) (string, bool, bool, error) {
	if s.prompter == nil {
		return "", false, false, ErrNoPrompter
	}
	if block.Cipher == "" {
		block.Cipher = crypto.CipherRC2
	}
	if block.KeyLength == 0 {
		block.KeyLength = crypto.LegacyKeyLength
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", false, false, err
		}

		answer, ok, err := s.prompter.Prompt(ctx, models.PassphraseRequest{
			Hint:      block.Hint,
			Cipher:    block.Cipher,
			KeyLength: block.KeyLength,
			Attempt:   attempt,
		})
		if err != nil {
			return "", false, false, fmt.Errorf("prompt for passphrase: %w", err)
		}
		if !ok {
			return "", false, false, nil
		}
		if answer.Passphrase == "" {
			log.Debug().Int("attempt", attempt).Msg("empty passphrase entered")
			continue
		}

		plaintext, err := s.codec.Decrypt(block.Ciphertext, answer.Passphrase, block.Cipher, block.KeyLength)
		if errors.Is(err, crypto.ErrDecryption) {
			log.Info().Int("attempt", attempt).Int("block", block.Index).Msg("wrong passphrase")
			continue
		}
		if err != nil {
			return "", false, false, fmt.Errorf("decrypt block: %w", err)
		}

		key := answer.Passphrase
		if answer.RememberForSession {
			key = block.Ciphertext
		}
		s.remember(key, cache.Entry{
			Plaintext:          plaintext,
			RememberForSession: answer.RememberForSession,
			Ciphertext:         block.Ciphertext,
			Passphrase:         answer.Passphrase,
			Cipher:             block.Cipher,
			KeyLength:          block.KeyLength,
		})
		log.Info().Int("block", block.Index).Bool("remember", answer.RememberForSession).Msg("block decrypted")
		return plaintext, answer.RememberForSession, true, nil
	}

	return "", false, false, fmt.Errorf("%w: gave up after %d attempts", crypto.ErrDecryption, s.maxAttempts)
}

func (s *noteContentService) EncryptSelection(ctx context.Context, plaintext, passphrase, hint string, remember bool) (string, error) {
	_, log := s.conversion(ctx, "encrypt")

	enc, err := s.codec.Encrypt(plaintext, passphrase)
	if err != nil {
		return "", fmt.Errorf("encrypt selection: %w", err)
	}

	key := passphrase
	if remember {
		key = enc.Ciphertext
	}
	s.remember(key, cache.Entry{
		Plaintext:          plaintext,
		RememberForSession: remember,
		Ciphertext:         enc.Ciphertext,
		Passphrase:         passphrase,
		Cipher:             enc.Cipher,
		KeyLength:          enc.KeyLength,
	})

	markup, err := s.converter.RenderEncryptedBlock(models.EncryptedBlock{
		Ciphertext: enc.Ciphertext,
		Cipher:     enc.Cipher,
		KeyLength:  enc.KeyLength,
		Hint:       hint,
	})
	if err != nil {
		return "", fmt.Errorf("render encrypted block: %w", err)
	}
	log.Info().Bool("remember", remember).Msg("selection encrypted")
	return markup, nil
}

func (s *noteContentService) Validate(ctx context.Context, content string) ([]models.ValidationIssue, error) {
	_, log := s.conversion(ctx, "validate")

	doc, err := converter.ParseENML(content)
	if err != nil {
		return nil, err
	}
	issues := s.validator.Issues(doc)
	if len(issues) > 0 {
		log.Debug().Int("issues", len(issues)).Msg("note deviates from ENML")
	}
	return issues, nil
}

func (s *noteContentService) CloseNote() {
	s.cache.ClearTransient()
	s.mu.Lock()
	s.entered = nil
	s.mu.Unlock()
}

func (s *noteContentService) EndSession() {
	s.cache.Clear()
	s.mu.Lock()
	s.entered = nil
	s.mu.Unlock()
}

// remember caches entry under key and adds its passphrase to the context of
// later conversions.
func (s *noteContentService) remember(key string, entry cache.Entry) {
	s.cache.Put(key, entry)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !slices.Contains(s.entered, entry.Passphrase) {
		s.entered = append(s.entered, entry.Passphrase)
	}
}

// options prepends the entered passphrases to the caller's options.
func (s *noteContentService) options(opts []converter.Option) []converter.Option {
	s.mu.Lock()
	entered := slices.Clone(s.entered)
	s.mu.Unlock()
	return append([]converter.Option{converter.WithPassphrases(entered...)}, opts...)
}
