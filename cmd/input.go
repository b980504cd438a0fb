/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"fmt"
	"os"

	"github.com/humaidq/labextract/export"
	"github.com/humaidq/labextract/labs"
	"github.com/humaidq/labextract/pdftext"
)

// extractFile loads a PDF or text report and extracts its records.
func extractFile(path string) ([]labs.Record, error) {
	text, err := pdftext.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load report: %w", err)
	}

	records := labs.NewExtractor(labs.WithLogger(extractLogger)).Extract(text)

	extractLogger.Info("Extracted records", "input", path, "records", len(records))

	return records, nil
}

// readCSVFile reads records from a CSV written by the extract command.
func readCSVFile(path string) ([]labs.Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV: %w", err)
	}
	defer f.Close()

	records, err := export.ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV %s: %w", path, err)
	}

	extractLogger.Info("Read records from CSV", "input", path, "records", len(records))

	return records, nil
}

// writeFile creates path and hands it to write, closing it afterwards.
func writeFile(path string, write func(f *os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
