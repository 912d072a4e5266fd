// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app runs one invocation of the enmlconv tool: it reads the input
// notes, converts them on the worker pool and writes the results.
package app
