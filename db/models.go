/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package db

import (
	"time"

	"github.com/google/uuid"
)

// Patient owns a set of lab results.
type Patient struct {
	ID          uuid.UUID  `db:"id"`
	Name        string     `db:"name"`
	DateOfBirth *time.Time `db:"date_of_birth"`
	IsPrimary   bool       `db:"is_primary"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// CreatePatientInput holds the fields for a new patient.
type CreatePatientInput struct {
	Name        string
	DateOfBirth *time.Time
	IsPrimary   bool
}

// Biomarker is a test definition shared across patients, unique by name.
type Biomarker struct {
	ID           uuid.UUID `db:"id"`
	Name         string    `db:"name"`
	DisplayName  string    `db:"display_name"`
	Category     string    `db:"category"`
	Unit         *string   `db:"unit"`
	ReferenceMin *float64  `db:"reference_min"`
	ReferenceMax *float64  `db:"reference_max"`
	Description  *string   `db:"description"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// LabResult is a stored measurement, unique per patient, test and date.
type LabResult struct {
	ID               uuid.UUID  `db:"id"`
	PatientID        uuid.UUID  `db:"patient_id"`
	BiomarkerID      *uuid.UUID `db:"biomarker_id"`
	TestName         string     `db:"test_name"`
	TestDate         time.Time  `db:"test_date"`
	RawValue         string     `db:"raw_value"`
	Value            *float64   `db:"value"`
	Unit             *string    `db:"unit"`
	ReferenceMin     *float64   `db:"reference_min"`
	ReferenceMax     *float64   `db:"reference_max"`
	IsCritical       bool       `db:"is_critical"`
	Category         string     `db:"category"`
	ExtractionMethod string     `db:"extraction_method"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}
