// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package utils provides general-purpose helpers used across go-enml:
// type-safe context keys, conversion ids and resource hashing.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
type contextKey string

// String returns the string representation of the context key.
func (c contextKey) String() string {
	return string(c)
}

// ConversionIDCtxKey is the key of the correlation id of one conversion.
var ConversionIDCtxKey = contextKey("conversionID")

// WithConversionID returns a copy of ctx carrying id.
func WithConversionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ConversionIDCtxKey, id)
}

// GetConversionIDFromContext retrieves the conversion id from the context.
// ok is false when the value is missing or has an unexpected type.
func GetConversionIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ConversionIDCtxKey).(string)
	return id, ok
}
