// SPDX-FileCopyrightText: 2025 Humaid Alqasimi
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"context"
	"testing"
	"time"
)

func testContext() context.Context {
	return context.Background()
}

func stringPtr(value string) *string {
	return &value
}

func floatPtr(value float64) *float64 {
	return &value
}

func mustCreatePatient(t *testing.T, name string, isPrimary bool) string {
	t.Helper()

	id, err := CreatePatient(testContext(), CreatePatientInput{Name: name, IsPrimary: isPrimary})
	if err != nil {
		t.Fatalf("failed to create patient: %v", err)
	}

	return id
}

func mustCreateBiomarker(t *testing.T, name string) string {
	t.Helper()

	id, _, err := GetOrCreateBiomarker(testContext(), CreateBiomarkerInput{Name: name, Category: "blood_chemistry"})
	if err != nil {
		t.Fatalf("failed to create biomarker: %v", err)
	}

	return id
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}
