// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/codec_mock.go -package=mock

// Codec encrypts and decrypts the inline text blocks of a note (en-crypt).
// It holds no per-passphrase state and is safe for concurrent use.
//
// Supported cipher/key length combinations:
//
//	AES/128  current format, used for every new encryption
//	RC2/64   legacy format, decryption only
type Codec interface {
	// Encrypt encrypts plaintext with a key derived from passphrase using the
	// default cipher. The ciphertext is self-describing: salts and IV are
	// embedded, so decryption needs only ciphertext, passphrase, cipher and
	// key length.
	Encrypt(plaintext, passphrase string) (EncryptedText, error)

	// Decrypt recovers the plaintext of an encrypted block. A wrong
	// passphrase and corrupt data are indistinguishable: both yield
	// ErrDecryption. When the AES/128 attempt fails the legacy RC2/64 format
	// is tried before giving up.
	Decrypt(ciphertext, passphrase, cipher string, keyLength int) (string, error)
}

// EncryptedText is the output of [Codec.Encrypt].
type EncryptedText struct {
	// Ciphertext is the base64 encoded payload stored as en-crypt text.
	Ciphertext string
	Cipher     string
	KeyLength  int
}
