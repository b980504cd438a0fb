/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/humaidq/labextract/importer"
)

const foreignKeyViolation = "23503"

// Store adapts the package-level queries to importer.Store.
type Store struct{}

var _ importer.Store = Store{}

// EnsureBiomarker implements importer.Store.
func (Store) EnsureBiomarker(ctx context.Context, input importer.BiomarkerInput) (string, bool, error) {
	id, created, err := GetOrCreateBiomarker(ctx, CreateBiomarkerInput{
		Name:         input.Name,
		Category:     input.Category,
		Unit:         input.Unit,
		ReferenceMin: input.ReferenceMin,
		ReferenceMax: input.ReferenceMax,
		Description:  input.Description,
	})

	return id, created, classify(err)
}

// UpsertLabResult implements importer.Store.
func (Store) UpsertLabResult(ctx context.Context, input importer.LabResultInput) (string, bool, error) {
	id, created, err := UpsertLabResult(ctx, UpsertLabResultInput{
		PatientID:        input.PatientID,
		BiomarkerID:      input.BiomarkerID,
		TestName:         input.TestName,
		TestDate:         input.TestDate,
		RawValue:         input.RawValue,
		Value:            input.Value,
		Unit:             input.Unit,
		ReferenceMin:     input.ReferenceMin,
		ReferenceMax:     input.ReferenceMax,
		IsCritical:       input.IsCritical,
		Category:         input.Category,
		ExtractionMethod: input.ExtractionMethod,
	})

	return id, created, classify(err)
}

// classify marks errors that no later record can recover from: a missing
// pool or patient, and connection timeouts.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrDatabaseConnectionNotInitialized) ||
		errors.Is(err, ErrInvalidPatientID) ||
		pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", importer.ErrUnrecoverable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation && pgErr.ConstraintName == "lab_results_patient_id_fkey" {
		return fmt.Errorf("%w: %w", importer.ErrUnrecoverable, err)
	}

	return err
}
