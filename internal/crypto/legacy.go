// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"bytes"
	"crypto/md5"
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
	"strings"
	"unicode/utf8"

	"github.com/dgryski/go-rc2"
)

// Legacy RC2/64 blocks are read but never written. Layout after base64
// decoding and RC2 (ECB, 64 effective key bits, key = MD5(passphrase)):
//
//	CRC32 of text, big endian (4) | UTF-8 text | NUL padding to 8 bytes
const rc2BlockSize = 8

func decryptLegacy(ciphertext, passphrase string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil || len(data) < rc2BlockSize || len(data)%rc2BlockSize != 0 {
		return "", ErrDecryption
	}

	key := md5.Sum([]byte(passphrase))
	block, err := rc2.New(key[:], LegacyKeyLength)
	if err != nil {
		return "", ErrDecryption
	}

	// ECB: every block on its own
	plain := make([]byte, len(data))
	for i := 0; i < len(data); i += rc2BlockSize {
		block.Decrypt(plain[i:i+rc2BlockSize], data[i:i+rc2BlockSize])
	}

	sum := binary.BigEndian.Uint32(plain[:4])
	text := bytes.TrimRight(plain[4:], "\x00")
	if crc32.ChecksumIEEE(text) != sum || !utf8.Valid(text) {
		return "", ErrDecryption
	}
	return string(text), nil
}
