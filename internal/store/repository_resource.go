// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-enml/internal/logger"
	"github.com/MKhiriev/go-enml/internal/utils"
	"github.com/MKhiriev/go-enml/models"
)

// resourceRepository is the SQLite-backed implementation of
// [ResourceRepository]. Every method obtains a context-scoped logger via
// [logger.FromContext] so database calls carry the conversion id.
type resourceRepository struct {
	*DB
	logger *logger.Logger
}

// NewResourceRepository constructs a [ResourceRepository] on db.
func NewResourceRepository(db *DB, logger *logger.Logger) ResourceRepository {
	return &resourceRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *resourceRepository) Resolve(ctx context.Context, hash string) (*models.ResourcePreview, error) {
	log := logger.FromContext(ctx)

	hash = strings.ToLower(strings.TrimSpace(hash))
	if hash == "" {
		return nil, nil
	}

	query, args, err := buildResolveQuery(hash)
	if err != nil {
		log.Err(err).Str("func", "resourceRepository.Resolve").Msg("failed to create query")
		return nil, err
	}

	var res models.ResourcePreview
	err = r.DB.QueryRowContext(ctx, query, args...).Scan(
		&res.Hash,
		&res.MimeType,
		&res.FileName,
		&res.Size,
		&res.SourceURL,
		&res.Data,
	)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug().Str("hash", hash).Msg("resource not stored")
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "resourceRepository.Resolve").
			Str("hash", hash).
			Msg("failed to scan resource row")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return &res, nil
}

func (r *resourceRepository) SaveResource(ctx context.Context, res models.ResourcePreview) (models.ResourcePreview, error) {
	log := logger.FromContext(ctx)

	if len(res.Data) == 0 {
		return models.ResourcePreview{}, ErrEmptyResource
	}
	res.Hash = utils.ResourceHash(res.Data)
	res.Size = int64(len(res.Data))

	query, args, err := buildSaveQuery(res)
	if err != nil {
		log.Err(err).Str("func", "resourceRepository.SaveResource").Msg("failed to create query")
		return models.ResourcePreview{}, err
	}

	if _, err = r.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "resourceRepository.SaveResource").
			Str("hash", res.Hash).
			Msg("failed to save resource")
		return models.ResourcePreview{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	log.Debug().Str("hash", res.Hash).Int64("size", res.Size).Msg("resource saved")
	return res, nil
}

func (r *resourceRepository) DeleteResource(ctx context.Context, hash string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteQuery(strings.ToLower(strings.TrimSpace(hash)))
	if err != nil {
		log.Err(err).Str("func", "resourceRepository.DeleteResource").Msg("failed to create query")
		return err
	}

	result, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "resourceRepository.DeleteResource").
			Str("hash", hash).
			Msg("failed to delete resource")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrResourceNotFound
	}
	return nil
}
