/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// UpsertLabResultInput holds one measurement to store.
type UpsertLabResultInput struct {
	PatientID        string
	BiomarkerID      string
	TestName         string
	TestDate         time.Time
	RawValue         string
	Value            *float64
	Unit             *string
	ReferenceMin     *float64
	ReferenceMax     *float64
	IsCritical       bool
	Category         string
	ExtractionMethod string
}

// UpsertLabResult inserts a lab result or updates the existing row for the
// same patient, test name and date. created reports which one happened.
func UpsertLabResult(ctx context.Context, input UpsertLabResultInput) (string, bool, error) {
	if pool == nil {
		return "", false, ErrDatabaseConnectionNotInitialized
	}

	patientID, err := parsePatientID(input.PatientID)
	if err != nil {
		return "", false, err
	}

	var biomarkerID *uuid.UUID

	if input.BiomarkerID != "" {
		parsed, err := parseID("biomarker", input.BiomarkerID)
		if err != nil {
			return "", false, err
		}

		biomarkerID = &parsed
	}

	category := input.Category
	if category == "" {
		category = "other"
	}

	var (
		id       string
		inserted bool
	)

	// xmax is zero only for freshly inserted tuples.
	query := `
		INSERT INTO lab_results (
			patient_id, biomarker_id, test_name, test_date, raw_value, value, unit,
			reference_min, reference_max, is_critical, category, extraction_method
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (patient_id, test_name, test_date) DO UPDATE SET
			biomarker_id = EXCLUDED.biomarker_id,
			raw_value = EXCLUDED.raw_value,
			value = EXCLUDED.value,
			unit = EXCLUDED.unit,
			reference_min = EXCLUDED.reference_min,
			reference_max = EXCLUDED.reference_max,
			is_critical = EXCLUDED.is_critical,
			category = EXCLUDED.category,
			extraction_method = EXCLUDED.extraction_method,
			updated_at = NOW()
		RETURNING id, (xmax = 0)
	`

	err = pool.QueryRow(ctx, query,
		patientID, biomarkerID, input.TestName, input.TestDate, input.RawValue, input.Value, input.Unit,
		input.ReferenceMin, input.ReferenceMax, input.IsCritical, category, input.ExtractionMethod,
	).Scan(&id, &inserted)
	if err != nil {
		return "", false, fmt.Errorf("failed to upsert lab result: %w", err)
	}

	return id, inserted, nil
}

// ListLabResultsByBiomarker returns a patient's results for one test name in
// chronological order.
func ListLabResultsByBiomarker(ctx context.Context, patientID, testName string) ([]LabResult, error) {
	if pool == nil {
		return nil, ErrDatabaseConnectionNotInitialized
	}

	pid, err := parsePatientID(patientID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, patient_id, biomarker_id, test_name, test_date, raw_value, value, unit,
			reference_min, reference_max, is_critical, category, extraction_method,
			created_at, updated_at
		FROM lab_results
		WHERE patient_id = $1 AND test_name = $2
		ORDER BY test_date ASC, created_at ASC
	`

	rows, err := pool.Query(ctx, query, pid, testName)
	if err != nil {
		return nil, fmt.Errorf("failed to list lab results: %w", err)
	}
	defer rows.Close()

	var results []LabResult

	for rows.Next() {
		var result LabResult

		err := rows.Scan(
			&result.ID, &result.PatientID, &result.BiomarkerID, &result.TestName, &result.TestDate,
			&result.RawValue, &result.Value, &result.Unit,
			&result.ReferenceMin, &result.ReferenceMax, &result.IsCritical, &result.Category,
			&result.ExtractionMethod, &result.CreatedAt, &result.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lab result: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lab results: %w", err)
	}

	return results, nil
}

// CountLabResults returns the number of stored results for a patient.
func CountLabResults(ctx context.Context, patientID string) (int, error) {
	if pool == nil {
		return 0, ErrDatabaseConnectionNotInitialized
	}

	pid, err := parsePatientID(patientID)
	if err != nil {
		return 0, err
	}

	var count int

	err = pool.QueryRow(ctx, `SELECT COUNT(*) FROM lab_results WHERE patient_id = $1`, pid).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count lab results: %w", err)
	}

	return count, nil
}
