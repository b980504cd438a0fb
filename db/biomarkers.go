/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateBiomarkerInput holds the definition stored for a new biomarker.
type CreateBiomarkerInput struct {
	Name         string
	Category     string
	Unit         *string
	ReferenceMin *float64
	ReferenceMax *float64
	Description  *string
}

// GetOrCreateBiomarker returns the ID of the biomarker with input.Name,
// creating it when missing. Existing definitions are left untouched.
func GetOrCreateBiomarker(ctx context.Context, input CreateBiomarkerInput) (string, bool, error) {
	if pool == nil {
		return "", false, ErrDatabaseConnectionNotInitialized
	}

	category := input.Category
	if category == "" {
		category = "other"
	}

	var id string

	query := `
		INSERT INTO biomarkers (name, display_name, category, unit, reference_min, reference_max, description)
		VALUES ($1, $1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO NOTHING
		RETURNING id
	`

	err := pool.QueryRow(ctx, query,
		input.Name, category, input.Unit, input.ReferenceMin, input.ReferenceMax, input.Description,
	).Scan(&id)
	if err == nil {
		logger.Debug("Created biomarker", "name", input.Name, "id", id)
		return id, true, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return "", false, fmt.Errorf("failed to create biomarker: %w", err)
	}

	err = pool.QueryRow(ctx, `SELECT id FROM biomarkers WHERE name = $1`, input.Name).Scan(&id)
	if err != nil {
		return "", false, fmt.Errorf("failed to get biomarker: %w", err)
	}

	return id, false, nil
}

// GetBiomarkerByName returns a biomarker definition, or nil when none exists.
func GetBiomarkerByName(ctx context.Context, name string) (*Biomarker, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	var biomarker Biomarker

	query := `
		SELECT id, name, display_name, category, unit, reference_min, reference_max, description, created_at, updated_at
		FROM biomarkers
		WHERE name = $1
	`

	err := pool.QueryRow(ctx, query, name).Scan(
		&biomarker.ID, &biomarker.Name, &biomarker.DisplayName, &biomarker.Category,
		&biomarker.Unit, &biomarker.ReferenceMin, &biomarker.ReferenceMax, &biomarker.Description,
		&biomarker.CreatedAt, &biomarker.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get biomarker: %w", err)
	}

	return &biomarker, nil
}
