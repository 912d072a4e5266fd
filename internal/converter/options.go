// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

// Option customizes a single conversion.
type Option func(*options)

type options struct {
	passphrases []string
}

// WithPassphrases supplies the "current passphrase" context: passphrases
// the user entered in this session. Cache entries keyed by them are
// consulted after the ciphertext key.
func WithPassphrases(passphrases ...string) Option {
	return func(o *options) {
		for _, p := range passphrases {
			if p != "" {
				o.passphrases = append(o.passphrases, p)
			}
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
