/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package importer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/humaidq/labextract/labs"
)

// DefaultBatchSize is the number of records processed between progress logs.
const DefaultBatchSize = 50

// Stage names the step at which a record failed.
type Stage string

// Stage values.
const (
	StageValidate  Stage = "validate"
	StageBiomarker Stage = "biomarker"
	StageLabResult Stage = "lab_result"
)

// ItemError is a per-record failure. The run continues past it.
type ItemError struct {
	Biomarker string `json:"biomarker"`
	Date      string `json:"date"`
	Stage     Stage  `json:"stage"`
	Message   string `json:"message"`
}

// Report summarizes an import run. It is returned even when the run stops
// early, reflecting the records handled so far.
type Report struct {
	RunID              string      `json:"run_id"`
	PatientID          string      `json:"patient_id"`
	StartedAt          time.Time   `json:"started_at"`
	FinishedAt         time.Time   `json:"finished_at"`
	TotalRecords       int         `json:"total_records"`
	Processed          int         `json:"processed"`
	Batches            int         `json:"batches"`
	BiomarkersCreated  int         `json:"biomarkers_created"`
	BiomarkersExisting int         `json:"biomarkers_existing"`
	ResultsCreated     int         `json:"lab_results_created"`
	ResultsUpdated     int         `json:"lab_results_updated"`
	Errors             []ItemError `json:"errors"`
	Aborted            bool        `json:"aborted"`
}

// Importer pushes extracted records into a Store.
type Importer struct {
	store     Store
	patientID string
	batchSize int
	method    string
	logger    *log.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithBatchSize sets the batch size. Values below one fall back to
// DefaultBatchSize.
func WithBatchSize(n int) Option {
	return func(im *Importer) {
		if n > 0 {
			im.batchSize = n
		}
	}
}

// WithExtractionMethod sets the method recorded on each lab result.
func WithExtractionMethod(method string) Option {
	return func(im *Importer) {
		im.method = method
	}
}

// WithLogger replaces the default import logger.
func WithLogger(logger *log.Logger) Option {
	return func(im *Importer) {
		im.logger = logger
	}
}

// New returns an Importer writing results for patientID into store.
func New(store Store, patientID string, opts ...Option) *Importer {
	im := &Importer{
		store:     store,
		patientID: patientID,
		batchSize: DefaultBatchSize,
		method:    MethodPDFText,
		logger:    logger,
	}

	for _, opt := range opts {
		opt(im)
	}

	return im
}

// Run imports records sequentially in batches. Per-record failures are
// collected in the report. The run stops on context cancellation or on a
// store error wrapping ErrUnrecoverable; the partial report is returned with
// the error in both cases.
func (im *Importer) Run(ctx context.Context, records []labs.Record) (*Report, error) {
	report := &Report{
		RunID:        uuid.NewString(),
		PatientID:    im.patientID,
		StartedAt:    time.Now().UTC(),
		TotalRecords: len(records),
		Errors:       []ItemError{},
	}

	if im.store == nil {
		return im.finish(report, ErrNilStore)
	}

	if im.patientID == "" {
		return im.finish(report, ErrPatientRequired)
	}

	biomarkers := make(map[string]string)

	for start := 0; start < len(records); start += im.batchSize {
		end := min(start+im.batchSize, len(records))
		report.Batches++

		im.logger.Info("Processing batch", "run_id", report.RunID, "from", start+1, "to", end, "total", len(records))

		for _, record := range records[start:end] {
			if err := ctx.Err(); err != nil {
				return im.finish(report, fmt.Errorf("import cancelled: %w", err))
			}

			if err := im.importRecord(ctx, record, biomarkers, report); err != nil {
				return im.finish(report, err)
			}

			report.Processed++
		}
	}

	return im.finish(report, nil)
}

// importRecord returns an error only when the run must stop.
func (im *Importer) importRecord(ctx context.Context, record labs.Record, biomarkers map[string]string, report *Report) error {
	if record.Biomarker == "" {
		report.addError(record, StageValidate, errMissingBiomarker)
		return nil
	}

	testDate, ok := record.ParsedDate()
	if !ok {
		report.addError(record, StageValidate, fmt.Errorf("%w: %q", errInvalidDate, record.Date))
		return nil
	}

	biomarkerID, cached := biomarkers[record.Biomarker]
	if cached {
		report.BiomarkersExisting++
	} else {
		id, created, err := im.store.EnsureBiomarker(ctx, biomarkerInput(record))
		if err != nil {
			if stopsRun(err) {
				return fmt.Errorf("failed to ensure biomarker %q: %w", record.Biomarker, err)
			}

			report.addError(record, StageBiomarker, err)

			return nil
		}

		biomarkers[record.Biomarker] = id
		biomarkerID = id

		if created {
			report.BiomarkersCreated++
		} else {
			report.BiomarkersExisting++
		}
	}

	_, created, err := im.store.UpsertLabResult(ctx, im.labResultInput(record, biomarkerID, testDate))
	if err != nil {
		if stopsRun(err) {
			return fmt.Errorf("failed to upsert lab result for %q: %w", record.Biomarker, err)
		}

		report.addError(record, StageLabResult, err)

		return nil
	}

	if created {
		report.ResultsCreated++
	} else {
		report.ResultsUpdated++
	}

	return nil
}

func (im *Importer) finish(report *Report, err error) (*Report, error) {
	report.FinishedAt = time.Now().UTC()
	report.Aborted = err != nil

	if err != nil {
		im.logger.Error("Import stopped", "run_id", report.RunID, "processed", report.Processed, "error", err)
		return report, err
	}

	im.logger.Info("Import finished",
		"run_id", report.RunID,
		"processed", report.Processed,
		"results_created", report.ResultsCreated,
		"results_updated", report.ResultsUpdated,
		"errors", len(report.Errors),
	)

	return report, nil
}

func (r *Report) addError(record labs.Record, stage Stage, err error) {
	r.Errors = append(r.Errors, ItemError{
		Biomarker: record.Biomarker,
		Date:      record.Date,
		Stage:     stage,
		Message:   err.Error(),
	})
}

func stopsRun(err error) bool {
	return errors.Is(err, ErrUnrecoverable) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

func biomarkerInput(record labs.Record) BiomarkerInput {
	description := "Imported from lab data - " + string(record.Category)

	return BiomarkerInput{
		Name:         record.Biomarker,
		Category:     record.Category.Slug(),
		Unit:         record.Units,
		ReferenceMin: record.ReferenceMin,
		ReferenceMax: record.ReferenceMax,
		Description:  &description,
	}
}

func (im *Importer) labResultInput(record labs.Record, biomarkerID string, testDate time.Time) LabResultInput {
	input := LabResultInput{
		PatientID:        im.patientID,
		BiomarkerID:      biomarkerID,
		TestName:         record.Biomarker,
		TestDate:         testDate,
		RawValue:         record.Result,
		Unit:             record.Units,
		ReferenceMin:     record.ReferenceMin,
		ReferenceMax:     record.ReferenceMax,
		IsCritical:       record.Abnormal,
		Category:         record.Category.Slug(),
		ExtractionMethod: im.method,
	}

	if v, ok := record.NumericResult(); ok {
		input.Value = &v
	}

	return input
}
