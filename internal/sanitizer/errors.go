// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package sanitizer

import "errors"

var (
	ErrInvalidUTF8 = errors.New("markup is not valid UTF-8")
	ErrParse       = errors.New("markup cannot be parsed")
)
