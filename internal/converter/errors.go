// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

import (
	"errors"
	"fmt"
)

var (
	// ErrResourceUnresolved is logged when an en-media hash has no resource.
	// The reference degrades to a broken placeholder and is never dropped.
	ErrResourceUnresolved = errors.New("resource cannot be resolved")

	// ErrMissingCiphertext means editor markup lost the ciphertext metadata
	// of an encrypted or decrypted block.
	ErrMissingCiphertext = errors.New("encrypted block carries no ciphertext")

	// ErrDetachedPlaintext means the decrypted text of a block was moved out
	// of its container by the editor and cannot be re-encrypted safely.
	ErrDetachedPlaintext = errors.New("decrypted text is no longer inside its container")
)

// Sources of a ParseError.
const (
	SourceENML = "enml"
	SourceHTML = "html"
)

// ParseError means the input markup could not be turned into a tree.
// The conversion is aborted.
type ParseError struct {
	Source string
	// Line is 1-based; 0 when unknown.
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse %s: line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("parse %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ReencryptionError means a decrypted block could not be turned back into
// an en-crypt element. The conversion is aborted so plaintext never reaches
// the persisted note.
type ReencryptionError struct {
	// Ciphertext is the block's ciphertext as declared by the editor markup.
	Ciphertext string
	Err        error
}

func (e *ReencryptionError) Error() string {
	return fmt.Sprintf("re-encrypt decrypted block: %v", e.Err)
}

func (e *ReencryptionError) Unwrap() error {
	return e.Err
}
