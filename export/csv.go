/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */

// Package export writes extracted lab records as CSV, JSON and charts.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/humaidq/labextract/labs"
)

// Header is the fixed CSV column order.
var Header = []string{
	"category", "biomarker", "date", "result",
	"reference_min", "reference_max", "units", "status",
}

// columnAliases maps alternative header spellings, such as the capitalized
// layout of older exports, onto Header names.
var columnAliases = map[string]string{
	"ref_min": "reference_min",
	"ref_max": "reference_max",
	"unit":    "units",
}

// CSVOptions controls how records are written.
type CSVOptions struct {
	// RawRanges writes reference bounds as printed instead of as numbers.
	RawRanges bool
}

// WriteCSV writes records with a header row. Dates are written in ISO form
// when they parse.
func WriteCSV(w io.Writer, records []labs.Record, options CSVOptions) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, r := range records {
		row := []string{
			string(r.Category),
			r.Biomarker,
			r.ISODate(),
			r.Result,
			formatBound(r.ReferenceMin, r.ReferenceMinText, options.RawRanges),
			formatBound(r.ReferenceMax, r.ReferenceMaxText, options.RawRanges),
			r.UnitString(),
			r.Status(),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", r.Biomarker, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	return nil
}

func formatBound(value *float64, text string, raw bool) string {
	if raw {
		return text
	}

	if value == nil {
		return ""
	}

	return strconv.FormatFloat(*value, 'f', -1, 64)
}

// ReadCSV reads records written by WriteCSV. Columns are matched by name,
// case-insensitively. Rows without a biomarker are skipped.
func ReadCSV(r io.Reader) ([]labs.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := indexColumns(header)
	for _, required := range []string{"biomarker", "date", "result"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	var records []labs.Record

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		get := func(name string) string {
			idx, ok := columns[name]
			if !ok || idx >= len(row) {
				return ""
			}

			return strings.TrimSpace(row[idx])
		}

		if get("biomarker") == "" {
			continue
		}

		records = append(records, recordFromRow(get))
	}

	return records, nil
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))

	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if alias, ok := columnAliases[key]; ok {
			key = alias
		}

		columns[key] = i
	}

	return columns
}

func recordFromRow(get func(string) string) labs.Record {
	result := get("result")
	abnormal := strings.EqualFold(get("status"), labs.StatusAbnormal)

	if strings.HasSuffix(result, labs.AbnormalMarker) {
		abnormal = true
		result = strings.TrimSpace(strings.TrimRight(result, labs.AbnormalMarker))
	}

	raw := result
	if abnormal {
		raw += labs.AbnormalMarker
	}

	date := get("date")
	if t, ok := labs.ParseDate(date); ok {
		date = t.Format(labs.ReportDateLayout)
	}

	category, _ := labs.ParseCategory(get("category"))

	record := labs.Record{
		Category:         category,
		Biomarker:        get("biomarker"),
		Date:             date,
		Result:           result,
		RawResult:        raw,
		Qualitative:      labs.IsQualitative(result),
		ReferenceMin:     labs.ParseBound(get("reference_min")),
		ReferenceMax:     labs.ParseBound(get("reference_max")),
		ReferenceMinText: get("reference_min"),
		ReferenceMaxText: get("reference_max"),
		Abnormal:         abnormal,
	}

	if units := get("units"); units != "" && units != labs.Placeholder {
		record.Units = &units
	}

	return record
}
