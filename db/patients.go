/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

const patientColumns = `id, name, date_of_birth, is_primary, created_at, updated_at`

func scanPatient(row pgx.Row) (*Patient, error) {
	var patient Patient

	err := row.Scan(
		&patient.ID, &patient.Name, &patient.DateOfBirth,
		&patient.IsPrimary, &patient.CreatedAt, &patient.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &patient, nil
}

// CreatePatient creates a patient and returns its ID. Marking a patient as
// primary clears the flag on any other patient.
func CreatePatient(ctx context.Context, input CreatePatientInput) (string, error) {
	if pool == nil {
		return "", ErrDatabaseConnectionNotInitialized
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return "", ErrPatientNameRequired
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("Failed to roll back transaction", "error", err)
		}
	}()

	if input.IsPrimary {
		_, err = tx.Exec(ctx, `UPDATE patients SET is_primary = false, updated_at = NOW() WHERE is_primary = true`)
		if err != nil {
			return "", fmt.Errorf("failed to clear existing primary patient: %w", err)
		}
	}

	var id string

	query := `
		INSERT INTO patients (name, date_of_birth, is_primary)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err = tx.QueryRow(ctx, query, name, input.DateOfBirth, input.IsPrimary).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create patient: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return "", fmt.Errorf("failed to commit patient: %w", err)
	}

	logger.Info("Created patient", "id", id, "primary", input.IsPrimary)

	return id, nil
}

// GetPatient returns a patient by ID.
func GetPatient(ctx context.Context, id string) (*Patient, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	patientID, err := parsePatientID(id)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + patientColumns + ` FROM patients WHERE id = $1`

	patient, err := scanPatient(pool.QueryRow(ctx, query, patientID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNoPatient, id)
		}

		return nil, fmt.Errorf("failed to get patient: %w", err)
	}

	return patient, nil
}

// GetPatientByName returns the oldest patient with the given name, or nil
// when there is none.
func GetPatientByName(ctx context.Context, name string) (*Patient, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `SELECT ` + patientColumns + ` FROM patients WHERE name = $1 ORDER BY created_at ASC LIMIT 1`

	patient, err := scanPatient(pool.QueryRow(ctx, query, strings.TrimSpace(name)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get patient by name: %w", err)
	}

	return patient, nil
}

// GetDefaultPatient returns the primary patient, falling back to the oldest
// one. ErrNoPatient is returned when the table is empty.
func GetDefaultPatient(ctx context.Context) (*Patient, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	query := `
		SELECT ` + patientColumns + `
		FROM patients
		ORDER BY is_primary DESC, created_at ASC
		LIMIT 1
	`

	patient, err := scanPatient(pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoPatient
		}

		return nil, fmt.Errorf("failed to get default patient: %w", err)
	}

	return patient, nil
}
