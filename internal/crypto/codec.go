// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

// Cipher names as written to the en-crypt cipher attribute.
const (
	CipherAES = "AES"
	CipherRC2 = "RC2"

	// DefaultKeyLength is the AES key length in bits used for new blocks.
	DefaultKeyLength = 128
	// LegacyKeyLength is the effective RC2 key length in bits.
	LegacyKeyLength = 64
)

// Layout of an AES/128 payload before base64 encoding:
//
//	"ENC0" | salt (16) | HMAC salt (16) | IV (16) | AES-128-CBC ciphertext | HMAC-SHA256 (32)
//
// The HMAC covers everything before it.
const (
	formatMarker = "ENC0"
	saltSize     = 16
	ivSize       = aes.BlockSize
	macSize      = sha256.Size
	headerSize   = len(formatMarker) + 2*saltSize + ivSize

	defaultIterations = 50000
)

// codec is the private implementation of [Codec].
type codec struct {
	// PBKDF2-HMAC-SHA256 iteration count. Fixed by the persisted format;
	// stored in the struct so the derivation is visible in one place.
	iterations int
	random     io.Reader
}

// NewCodec constructs a [Codec] using PBKDF2-HMAC-SHA256 with 50 000
// iterations for both the encryption and the HMAC key.
func NewCodec() Codec {
	return &codec{
		iterations: defaultIterations,
		random:     rand.Reader,
	}
}

// Encrypt implements [Codec]. It always produces AES/128.
func (c *codec) Encrypt(plaintext, passphrase string) (EncryptedText, error) {
	if passphrase == "" {
		return EncryptedText{}, ErrEmptyPassphrase
	}

	// 1. Random salts and IV
	header := make([]byte, headerSize)
	copy(header, formatMarker)
	if _, err := io.ReadFull(c.random, header[len(formatMarker):]); err != nil {
		return EncryptedText{}, fmt.Errorf("generate salt: %w", err)
	}
	salt, macSalt, iv := c.split(header)

	// 2. Derive keys
	key := c.deriveKey(passphrase, salt)
	macKey := c.deriveKey(passphrase, macSalt)

	// 3. Encrypt: AES-128-CBC with PKCS#7 padding
	block, err := aes.NewCipher(key)
	if err != nil {
		return EncryptedText{}, fmt.Errorf("create cipher: %w", err)
	}
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	body := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(body, padded)

	// 4. Authenticate header and body
	blob := append(header, body...)
	mac := hmac.New(sha256.New, macKey)
	mac.Write(blob)
	blob = mac.Sum(blob)

	return EncryptedText{
		Ciphertext: base64.StdEncoding.EncodeToString(blob),
		Cipher:     CipherAES,
		KeyLength:  DefaultKeyLength,
	}, nil
}

// Decrypt implements [Codec].
func (c *codec) Decrypt(ciphertext, passphrase, cipherName string, keyLength int) (string, error) {
	switch {
	case strings.EqualFold(cipherName, CipherAES) && keyLength == DefaultKeyLength:
		plaintext, err := c.decryptAES(ciphertext, passphrase)
		if err == nil {
			return plaintext, nil
		}
		// Older clients mislabelled some legacy blocks; try the legacy format
		// before reporting failure.
		if legacy, legacyErr := decryptLegacy(ciphertext, passphrase); legacyErr == nil {
			return legacy, nil
		}
		return "", ErrDecryption
	case strings.EqualFold(cipherName, CipherRC2) && keyLength == LegacyKeyLength:
		return decryptLegacy(ciphertext, passphrase)
	default:
		return "", fmt.Errorf("%w: %s/%d", ErrUnsupportedCipher, cipherName, keyLength)
	}
}

func (c *codec) decryptAES(ciphertext, passphrase string) (string, error) {
	// 1. Decode and check layout
	blob, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return "", ErrDecryption
	}
	if len(blob) < headerSize+aes.BlockSize+macSize || !bytes.HasPrefix(blob, []byte(formatMarker)) {
		return "", ErrDecryption
	}
	bodyEnd := len(blob) - macSize
	if (bodyEnd-headerSize)%aes.BlockSize != 0 {
		return "", ErrDecryption
	}
	salt, macSalt, iv := c.split(blob[:headerSize])

	// 2. Verify HMAC before touching the ciphertext
	mac := hmac.New(sha256.New, c.deriveKey(passphrase, macSalt))
	mac.Write(blob[:bodyEnd])
	if !hmac.Equal(mac.Sum(nil), blob[bodyEnd:]) {
		return "", ErrDecryption
	}

	// 3. Decrypt and unpad
	block, err := aes.NewCipher(c.deriveKey(passphrase, salt))
	if err != nil {
		return "", ErrDecryption
	}
	body := make([]byte, bodyEnd-headerSize)
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(body, blob[headerSize:bodyEnd])

	plaintext, ok := pkcs7Unpad(body, aes.BlockSize)
	if !ok {
		return "", ErrDecryption
	}
	return string(plaintext), nil
}

func (c *codec) split(header []byte) (salt, macSalt, iv []byte) {
	rest := header[len(formatMarker):]
	return rest[:saltSize], rest[saltSize : 2*saltSize], rest[2*saltSize : 2*saltSize+ivSize]
}

func (c *codec) deriveKey(passphrase string, salt []byte) []byte {
	return pbkdf2.Key([]byte(passphrase), salt, c.iterations, DefaultKeyLength/8, sha256.New)
}

func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	return append(append([]byte{}, data...), bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(data []byte, blockSize int) ([]byte, bool) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, false
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize {
		return nil, false
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return nil, false
		}
	}
	return data[:len(data)-n], true
}
