// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package app

import "context"

// Runner defines the lifecycle contract of a runnable application.
type Runner interface {
	// Run performs the configured work and blocks until it is done.
	Run(ctx context.Context) error
}
