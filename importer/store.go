/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package importer

import (
	"context"
	"time"
)

// Extraction methods recorded on stored lab results.
const (
	MethodPDFText   = "pdf_text"
	MethodCSVImport = "csv_import"
)

// BiomarkerInput describes a biomarker definition, keyed by Name.
type BiomarkerInput struct {
	Name         string
	Category     string
	Unit         *string
	ReferenceMin *float64
	ReferenceMax *float64
	Description  *string
}

// LabResultInput describes one stored measurement. Results are keyed by
// patient, test name and test date.
type LabResultInput struct {
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

// Store persists biomarkers and lab results. Both methods are upserts and
// report whether the row was newly created.
type Store interface {
	EnsureBiomarker(ctx context.Context, input BiomarkerInput) (id string, created bool, err error)
	UpsertLabResult(ctx context.Context, input LabResultInput) (id string, created bool, err error)
}
