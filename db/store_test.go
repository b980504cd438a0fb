// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/humaidq/labextract/importer"
)

func importerBiomarker(name string) importer.BiomarkerInput {
	return importer.BiomarkerInput{Name: name, Category: "blood_chemistry"}
}

func TestClassify(t *testing.T) {
	t.Parallel()

	if classify(nil) != nil {
		t.Fatal("expected nil error to stay nil")
	}

	unrecoverable := []error{
		ErrDatabaseConnectionNotInitialized,
		fmt.Errorf("%w %q", ErrInvalidPatientID, "nope"),
		fmt.Errorf("failed to upsert: %w", context.DeadlineExceeded),
		fmt.Errorf("failed to upsert: %w", &pgconn.PgError{Code: foreignKeyViolation, ConstraintName: "lab_results_patient_id_fkey"}),
	}

	for _, err := range unrecoverable {
		if !errors.Is(classify(err), importer.ErrUnrecoverable) {
			t.Fatalf("expected %v to be unrecoverable", err)
		}
	}

	recoverable := []error{
		errors.New("value out of range"),
		fmt.Errorf("%w: biomarker %q", ErrInvalidID, "x"),
		&pgconn.PgError{Code: "23505", ConstraintName: "biomarkers_name_key"},
	}

	for _, err := range recoverable {
		got := classify(err)
		if errors.Is(got, importer.ErrUnrecoverable) {
			t.Fatalf("expected %v to stay recoverable", err)
		}

		if !errors.Is(got, err) {
			t.Fatalf("expected original error preserved, got %v", got)
		}
	}
}
