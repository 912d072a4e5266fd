// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import "errors"

// ErrNoPrompter is returned by DecryptInteractive when the service was built
// without a PassphrasePrompter.
var ErrNoPrompter = errors.New("no passphrase prompter configured")
