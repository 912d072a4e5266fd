// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "errors"

// Output written for the validate mode.
const (
	// MsgValidDocument is written for a note without ENML deviations.
	MsgValidDocument = "valid ENML"

	// stdinName names standard input in output headers and logs.
	stdinName = "-"
)

var (
	// ErrInvalidDocument is returned by the validate mode when at least one
	// note deviates from ENML.
	ErrInvalidDocument = errors.New("note is not valid ENML")

	// ErrUnknownMode is returned for a mode the runner does not implement.
	ErrUnknownMode = errors.New("unknown conversion mode")
)
