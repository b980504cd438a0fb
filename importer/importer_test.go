// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package importer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/humaidq/labextract/labs"
)

type resultKey struct {
	patient string
	test    string
	date    time.Time
}

type fakeStore struct {
	biomarkers     map[string]string
	results        map[resultKey]LabResultInput
	ensureCalls    int
	upsertCalls    int
	failBiomarker  map[string]error
	failResult     map[string]error
	cancelAfter    int
	cancel         context.CancelFunc
	seenBiomarkers []BiomarkerInput
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		biomarkers:    make(map[string]string),
		results:       make(map[resultKey]LabResultInput),
		failBiomarker: make(map[string]error),
		failResult:    make(map[string]error),
	}
}

func (s *fakeStore) EnsureBiomarker(_ context.Context, input BiomarkerInput) (string, bool, error) {
	s.ensureCalls++
	s.seenBiomarkers = append(s.seenBiomarkers, input)

	if err, ok := s.failBiomarker[input.Name]; ok {
		return "", false, err
	}

	if id, ok := s.biomarkers[input.Name]; ok {
		return id, false, nil
	}

	id := fmt.Sprintf("bm-%d", len(s.biomarkers)+1)
	s.biomarkers[input.Name] = id

	return id, true, nil
}

func (s *fakeStore) UpsertLabResult(_ context.Context, input LabResultInput) (string, bool, error) {
	s.upsertCalls++

	if s.cancel != nil && s.upsertCalls == s.cancelAfter {
		s.cancel()
	}

	if err, ok := s.failResult[input.TestName]; ok {
		return "", false, err
	}

	key := resultKey{patient: input.PatientID, test: input.TestName, date: input.TestDate}
	_, existed := s.results[key]
	s.results[key] = input

	return "res-" + input.TestName, !existed, nil
}

func testRecords(t *testing.T) []labs.Record {
	t.Helper()

	records := labs.Extract(strings.Join([]string{
		"Análisis bioquímicos (sangre)",
		"Glucosa 06.09.2025 78 70.26 − 99.09 mg/dL",
		"Glucosa 07.06.2025 113* 70.26 − 99.09 mg/dL",
		"Calcio suero 16.09.2025 11.5* 8.8 − 10.2 mg/dL",
		"Análisis general de orina",
		"Nitritos orina cualitativo 06.10.2024 Detected* Undetected —",
	}, "\n"))
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}

	return records
}

func TestRunImportsRecords(t *testing.T) {
	t.Parallel()

	store := newFakeStore()

	report, err := New(store, "patient-1", WithBatchSize(3)).Run(context.Background(), testRecords(t))
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Processed != 4 || report.ResultsCreated != 4 || report.ResultsUpdated != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	if report.Batches != 2 {
		t.Fatalf("expected 2 batches, got %d", report.Batches)
	}

	if report.BiomarkersCreated != 3 || report.BiomarkersExisting != 1 {
		t.Fatalf("expected 3 created and 1 cached biomarker, got %d/%d", report.BiomarkersCreated, report.BiomarkersExisting)
	}

	if store.ensureCalls != 3 {
		t.Fatalf("expected biomarker cache to avoid repeat lookups, got %d calls", store.ensureCalls)
	}

	if len(report.Errors) != 0 || report.Aborted {
		t.Fatalf("expected clean run, got %+v", report.Errors)
	}

	if report.RunID == "" {
		t.Fatal("expected run id")
	}
}

func TestRunMapsRecordFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()

	if _, err := New(store, "patient-1", WithExtractionMethod(MethodCSVImport)).Run(context.Background(), testRecords(t)); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	key := resultKey{patient: "patient-1", test: "Calcio suero", date: time.Date(2025, 9, 16, 0, 0, 0, 0, time.UTC)}

	result, ok := store.results[key]
	if !ok {
		t.Fatal("expected calcium result keyed by patient, test and date")
	}

	if !result.IsCritical || result.RawValue != "11.5" {
		t.Fatalf("unexpected calcium result %+v", result)
	}

	if result.Value == nil || *result.Value != 11.5 {
		t.Fatalf("expected numeric value 11.5, got %v", result.Value)
	}

	if result.Category != "blood_chemistry" || result.ExtractionMethod != MethodCSVImport {
		t.Fatalf("unexpected category/method %q/%q", result.Category, result.ExtractionMethod)
	}

	if result.BiomarkerID != store.biomarkers["Calcio suero"] {
		t.Fatalf("expected biomarker id to be linked, got %q", result.BiomarkerID)
	}

	nitrite := store.results[resultKey{patient: "patient-1", test: "Nitritos orina cualitativo", date: time.Date(2024, 10, 6, 0, 0, 0, 0, time.UTC)}]
	if nitrite.Value != nil || nitrite.RawValue != "Detected" {
		t.Fatalf("expected qualitative result without numeric value, got %+v", nitrite)
	}

	first := store.seenBiomarkers[0]
	if first.Description == nil || *first.Description != "Imported from lab data - Blood Chemistry" {
		t.Fatalf("unexpected biomarker description %v", first.Description)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	records := testRecords(t)

	if _, err := New(store, "patient-1").Run(context.Background(), records); err != nil {
		t.Fatalf("first Run failed: %v", err)
	}

	report, err := New(store, "patient-1").Run(context.Background(), records)
	if err != nil {
		t.Fatalf("second Run failed: %v", err)
	}

	if report.ResultsCreated != 0 || report.ResultsUpdated != 4 {
		t.Fatalf("expected all results updated on rerun, got %+v", report)
	}

	if report.BiomarkersCreated != 0 {
		t.Fatalf("expected no new biomarkers, got %d", report.BiomarkersCreated)
	}

	if len(store.results) != 4 {
		t.Fatalf("expected 4 stored results, got %d", len(store.results))
	}
}

func TestRunCollectsItemErrors(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failBiomarker["Calcio suero"] = errors.New("constraint violation")
	store.failResult["Glucosa"] = errors.New("value out of range")

	records := append(testRecords(t), labs.Record{Biomarker: "Sodio", Date: "32.01.2025", Result: "140"})

	report, err := New(store, "patient-1").Run(context.Background(), records)
	if err != nil {
		t.Fatalf("expected item errors not to stop the run, got %v", err)
	}

	if report.Processed != 5 {
		t.Fatalf("expected all records processed, got %d", report.Processed)
	}

	if len(report.Errors) != 4 {
		t.Fatalf("expected 4 item errors, got %+v", report.Errors)
	}

	stages := map[Stage]int{}
	for _, item := range report.Errors {
		stages[item.Stage]++
	}

	if stages[StageLabResult] != 2 || stages[StageBiomarker] != 1 || stages[StageValidate] != 1 {
		t.Fatalf("unexpected stage counts %v", stages)
	}

	if report.ResultsCreated != 1 {
		t.Fatalf("expected only the urinalysis result stored, got %d", report.ResultsCreated)
	}
}

func TestRunStopsOnUnrecoverableError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	store.failResult["Calcio suero"] = fmt.Errorf("connection reset: %w", ErrUnrecoverable)

	report, err := New(store, "patient-1").Run(context.Background(), testRecords(t))
	if !errors.Is(err, ErrUnrecoverable) {
		t.Fatalf("expected unrecoverable error, got %v", err)
	}

	if report == nil || !report.Aborted {
		t.Fatal("expected partial aborted report")
	}

	if report.Processed != 2 || report.ResultsCreated != 2 {
		t.Fatalf("expected 2 processed records before the failure, got %+v", report)
	}
}

func TestRunStopsOnCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newFakeStore()
	store.cancel = cancel
	store.cancelAfter = 1

	report, err := New(store, "patient-1").Run(ctx, testRecords(t))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}

	if report.Processed != 1 {
		t.Fatalf("expected 1 processed record, got %d", report.Processed)
	}
}

func TestRunRequiresPatientAndStore(t *testing.T) {
	t.Parallel()

	if _, err := New(newFakeStore(), "").Run(context.Background(), nil); !errors.Is(err, ErrPatientRequired) {
		t.Fatalf("expected ErrPatientRequired, got %v", err)
	}

	if _, err := New(nil, "patient-1").Run(context.Background(), nil); !errors.Is(err, ErrNilStore) {
		t.Fatalf("expected ErrNilStore, got %v", err)
	}
}

func TestRunEmptyInput(t *testing.T) {
	t.Parallel()

	report, err := New(newFakeStore(), "patient-1").Run(context.Background(), nil)
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Batches != 0 || report.Processed != 0 || report.Errors == nil {
		t.Fatalf("unexpected empty report %+v", report)
	}
}

func TestNewSharesImportLogger(t *testing.T) {
	t.Parallel()

	first := New(newFakeStore(), "patient")
	second := New(newFakeStore(), "patient")

	if first.logger != logger || second.logger != logger {
		t.Fatal("expected importers to share the package import logger")
	}
}
