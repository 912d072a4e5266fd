// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrInvalidENML     = errors.New("note content does not conform to ENML")
	ErrEmptySkipRule   = errors.New("skip rule has no criteria")
	ErrInvalidSkipRule = errors.New("invalid skip rule")
)
