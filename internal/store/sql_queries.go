// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-enml/models"
)

const resourcesTable = "resources"

var resourceColumns = []string{"hash", "mime", "file_name", "size", "source_url", "data"}

func buildResolveQuery(hash string) (string, []any, error) {
	query, args, err := sq.Select(resourceColumns...).
		From(resourcesTable).
		Where(sq.Eq{"hash": hash}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

// buildSaveQuery replaces an existing row with the same hash.
func buildSaveQuery(res models.ResourcePreview) (string, []any, error) {
	query, args, err := sq.Insert(resourcesTable).
		Options("OR REPLACE").
		Columns(resourceColumns...).
		Values(res.Hash, res.MimeType, res.FileName, res.Size, res.SourceURL, res.Data).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}

func buildDeleteQuery(hash string) (string, []any, error) {
	query, args, err := sq.Delete(resourcesTable).
		Where(sq.Eq{"hash": hash}).
		ToSql()
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	return query, args, nil
}
