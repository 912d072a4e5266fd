// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package cache

import "errors"

// ErrEntryNotFound means nothing was decrypted for the given ciphertext in
// this session. For Modify this indicates caller misuse.
var ErrEntryNotFound = errors.New("no decrypted text cached for ciphertext")
