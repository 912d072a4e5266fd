// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store persists note resources (the files en-media elements refer
// to) in a local SQLite database.
package store

import (
	"context"

	"github.com/MKhiriev/go-enml/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ResourceRepository stores resources by the MD5 hash of their data.
// It satisfies converter.ResourceResolver.
type ResourceRepository interface {
	// Resolve returns the resource with the given hash, or nil and no error
	// when there is none.
	Resolve(ctx context.Context, hash string) (*models.ResourcePreview, error)

	// SaveResource stores res, replacing a resource with the same data.
	// Hash and Size are computed from res.Data and returned.
	SaveResource(ctx context.Context, res models.ResourcePreview) (models.ResourcePreview, error)

	// DeleteResource removes the resource with the given hash.
	// Returns ErrResourceNotFound when there is none.
	DeleteResource(ctx context.Context, hash string) error
}
