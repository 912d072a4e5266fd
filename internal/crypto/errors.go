// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrDecryption means the passphrase is wrong or the data is corrupt.
	ErrDecryption = errors.New("wrong passphrase or corrupt data")

	// ErrUnsupportedCipher is returned for an unknown cipher/key length pair.
	ErrUnsupportedCipher = errors.New("unsupported cipher")

	// ErrEmptyPassphrase is returned by Encrypt for an empty passphrase.
	ErrEmptyPassphrase = errors.New("empty passphrase")
)
