// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package converter

//go:generate mockgen -source=interfaces.go -destination=../mock/resource_resolver_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-enml/models"
)

// ResourceResolver looks up the resources en-media elements refer to.
// It is implemented by the local resource store.
type ResourceResolver interface {
	// Resolve returns the resource with the given hash, or nil and no error
	// when there is none.
	Resolve(ctx context.Context, hash string) (*models.ResourcePreview, error)
}
