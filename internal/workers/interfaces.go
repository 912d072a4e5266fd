// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs independent conversion jobs on a bounded number of
// goroutines.
package workers

import "context"

// Worker is one conversion job. Run returns the converted output.
//
// Implementations must honour ctx and must not share mutable state with
// other jobs except through concurrency-safe types such as the decrypted
// text cache.
type Worker interface {
	Run(ctx context.Context) (string, error)
}

// WorkerFunc adapts a function to the Worker interface.
type WorkerFunc func(ctx context.Context) (string, error)

// Run calls f(ctx).
func (f WorkerFunc) Run(ctx context.Context) (string, error) {
	return f(ctx)
}
